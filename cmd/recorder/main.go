package main

import (
	"fmt"
	"os"

	"github.com/hannesa2/AudioRecorder/config"
	"github.com/hannesa2/AudioRecorder/internal/app"
	"github.com/hannesa2/AudioRecorder/internal/cli"
	applog "github.com/hannesa2/AudioRecorder/internal/log"
	"github.com/hannesa2/AudioRecorder/internal/output"
)

func main() {
	if err := run(); err != nil {
		formatter := output.NewFormatter(os.Stderr)
		formatter.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	applog.Configure(applog.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}

	deps := &cli.Dependencies{
		App:    application,
		Config: cfg,
	}

	return cli.NewRootCmd(deps).Execute()
}
