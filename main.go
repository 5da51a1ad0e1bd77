package main

import (
	"os"

	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/cmd"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/config"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// tokens and other secrets may live in .env next to the binary
	_ = godotenv.Load()

	conf := config.New()
	log := logger.New(conf)
	defer func() {
		_ = log.Sync()
	}()
	zap.ReplaceGlobals(log)

	if err := cmd.Execute(conf, log); err != nil {
		os.Exit(1)
	}
}
