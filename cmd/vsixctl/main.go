// Package main provides the headless CLI for downloading marketplace packages.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/billshinji/Vsix-Downloader/internal/marketplace"
	"github.com/billshinji/Vsix-Downloader/internal/model"
	"github.com/billshinji/Vsix-Downloader/internal/platform"
)

var (
	// Flags
	publisher      string
	extension      string
	version        string
	targetPlatform string
	outDir         string
	verbose        bool

	rootCmd = &cobra.Command{
		Use:   "vsixctl",
		Short: "Download Visual Studio Marketplace extension packages",
		Long: `vsixctl downloads a packaged extension archive (.vsix) from the Visual
Studio Marketplace gallery endpoint and saves it as
{publisher}.{extension}-{version}[@{platform}].vsix.

Examples:
  vsixctl --publisher ms-vscode --extension cpptools --version 1.20.5
  vsixctl -p ms-vscode -e cpptools -V 1.20.5 --platform darwin-arm64 --out ./pkgs`,
		RunE: runDownload,
	}
)

func init() {
	rootCmd.Flags().StringVarP(&publisher, "publisher", "p", "", "publisher identifier, e.g. ms-vscode")
	rootCmd.Flags().StringVarP(&extension, "extension", "e", "", "extension name, e.g. cpptools")
	rootCmd.Flags().StringVarP(&version, "version", "V", "", "exact extension version, e.g. 1.20.5")
	rootCmd.Flags().StringVar(&targetPlatform, "platform", "", "target platform qualifier, e.g. darwin-arm64 (optional)")
	rootCmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: user Downloads)")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	rootCmd.MarkFlagRequired("publisher")
	rootCmd.MarkFlagRequired("extension")
	rootCmd.MarkFlagRequired("version")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

func runDownload(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	logger := newLogger()

	// Interrupt aborts the in-flight transfer without leaving a partially
	// moved destination file.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := marketplace.NewFetcher()
	if outDir != "" {
		if err := platform.CreateDirectoryIfNotExists(outDir); err != nil {
			logger.Error("cannot create output directory", "dir", outDir, "err", err)
			return err
		}
		fetcher = marketplace.NewFetcherWithDir(outDir)
	}

	req := model.DownloadRequest{
		Publisher:      publisher,
		Extension:      extension,
		Version:        version,
		TargetPlatform: targetPlatform,
	}

	logger.Debug("fetching", "url", marketplace.DownloadURL(req))

	saved, err := fetcher.Fetch(ctx, req)
	if err != nil {
		kind, _ := model.KindOf(err)
		logger.Error("download failed", "kind", kind.String(), "err", err)
		return err
	}

	logger.Info("package saved", "path", saved)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
