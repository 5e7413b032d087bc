// Interpolation Preview - side-by-side 2x magnification viewer
// License: MIT

package main

import (
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"

	"interpolation-preview/internal/config"
	"interpolation-preview/internal/gui"
	"interpolation-preview/internal/logging"
)

const (
	AppName    = "Interpolation Preview"
	AppID      = "com.strauhmanis.interpolation-preview"
	AppVersion = "1.0.0"
)

func main() {
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	configPath := flag.String("config", "", "Path to a TOML configuration file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [image]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(2)
		}
		cfg = loaded
	}

	logger := logging.New(os.Stdout, cfg.Log, *debugMode)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": *debugMode,
		"backend":    cfg.Transform.Backend,
	}).Info("Starting " + AppName)

	myApp := app.NewWithID(AppID)
	myApp.SetIcon(theme.DocumentIcon())

	mainApp, err := gui.NewApplication(myApp, cfg, logger, *debugMode)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create application")
	}

	if path := flag.Arg(0); path != "" {
		if err := mainApp.LoadImageFromPath(path); err != nil {
			logger.WithError(err).Error("Failed to load image from command line")
		}
	}

	mainApp.ShowAndRun()

	logger.Info("Application shutting down gracefully")
}
