package changelog

import (
	"regexp"
	"strings"

	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/vercomp"

	"github.com/Masterminds/semver/v3"
)

// Section groups release-note bullets by category. Categories are disjoint
// by construction: each source line belongs to the most recently seen header.
type Section struct {
	Added   []string `json:"added"`
	Changed []string `json:"changed"`
	Fixed   []string `json:"fixed"`
	Removed []string `json:"removed"`
}

func (s Section) Empty() bool {
	return len(s.Added) == 0 && len(s.Changed) == 0 && len(s.Fixed) == 0 && len(s.Removed) == 0
}

// VersionBlock is one version's worth of a multi-version changelog document.
type VersionBlock struct {
	Version  string  `json:"version"`
	Date     string  `json:"date"`
	Sections Section `json:"sections"`
}

var (
	// tolerates #/## markers and an optional leading emoji glyph
	headerRe  = regexp.MustCompile(`(?i)^#{0,6}\s*(?:[^\x00-\x7F]+\s*)?(added|changed|fixed|removed)\s*:?\s*$`)
	versionRe = regexp.MustCompile(`^##\s*\[\s*(v?[^\]\s]+)\s*\]\s*-\s*(\d{4}-\d{2}-\d{2})\s*$`)
)

// Parse extracts categorized bullets from free-text release notes. This is a
// best-effort scan, not a grammar: unrecognized input degrades to empty
// sections and the function never fails.
func Parse(body string) Section {
	var (
		section Section
		current *[]string
	)
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)

		if m := headerRe.FindStringSubmatch(line); m != nil {
			switch strings.ToLower(m[1]) {
			case "added":
				current = &section.Added
			case "changed":
				current = &section.Changed
			case "fixed":
				current = &section.Fixed
			case "removed":
				current = &section.Removed
			}
			continue
		}

		if current == nil || !strings.HasPrefix(line, "- ") {
			continue
		}
		item := strings.TrimSpace(strings.TrimPrefix(line, "- "))
		if item == "" || strings.HasPrefix(item, "**") {
			// bold markers open a sub-heading, not a bullet
			continue
		}
		*current = append(*current, item)
	}
	return section
}

// ParseMultiVersion segments a changelog document on version headers of the
// form "## [X.Y.Z] - YYYY-MM-DD" and extracts one Section per block. Blocks
// whose four lists all come out empty are dropped.
func ParseMultiVersion(body string) []VersionBlock {
	var (
		out     []VersionBlock
		lines   = strings.Split(body, "\n")
		pending []string
		version string
		date    string
	)

	flush := func() {
		if version == "" {
			pending = nil
			return
		}
		sections := Parse(strings.Join(pending, "\n"))
		if !sections.Empty() {
			out = append(out, VersionBlock{
				Version:  version,
				Date:     date,
				Sections: sections,
			})
		}
		pending = nil
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if m := versionRe.FindStringSubmatch(line); m != nil {
			if _, err := semver.NewVersion(strings.TrimPrefix(m[1], "v")); err == nil {
				flush()
				version, date = m[1], m[2]
				continue
			}
		}
		pending = append(pending, raw)
	}
	flush()
	return out
}

// ForVersion returns the section block for one version of a multi-version
// document, falling back to a whole-document parse when the version is empty
// or no block matches.
func ForVersion(body, version string) Section {
	if version != "" {
		for _, block := range ParseMultiVersion(body) {
			if vercomp.Compare(block.Version, version) == vercomp.Equal {
				return block.Sections
			}
		}
	}
	return Parse(body)
}
