package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/changelog"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/config"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/release"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newChangelogCmd(conf *config.Config, logger *zap.Logger) *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "changelog [file]",
		Short: "Parse release notes into categorized sections",
		Long:  "Reads release notes from a file, from stdin with \"-\", or from the registry's latest release when no argument is given, and prints the Added/Changed/Fixed/Removed sections.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := changelogBody(cmd, conf, logger, args)
			if err != nil {
				return err
			}

			section := changelog.ForVersion(body, version)
			if section.Empty() {
				fmt.Println("No recognized changelog sections.")
				return nil
			}
			printSections(section)
			return nil
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Extract a single version block from a multi-version document")
	return cmd
}

func changelogBody(cmd *cobra.Command, conf *config.Config, logger *zap.Logger, args []string) (string, error) {
	if len(args) == 0 {
		fetcher := release.NewFetcher(logger, nil, conf.Registry)
		desc, err := fetcher.FetchLatest(cmd.Context())
		if err != nil {
			return "", err
		}
		return desc.Body, nil
	}
	if args[0] == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
