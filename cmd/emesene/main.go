package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Otacon/emesene/internal/app"
	"github.com/Otacon/emesene/internal/cli"
	"github.com/Otacon/emesene/internal/config"
	"github.com/Otacon/emesene/internal/hclcfg"
	"github.com/Otacon/emesene/internal/yamlcfg"
)

// main is the entrypoint for the emesene registry CLI.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical startup errors (bad profile, broken
	// module), so we recover here to provide a clean exit message.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	var loader config.Loader
	if appConfig.ProfileFormat == "yaml" {
		loader = yamlcfg.NewLoader()
	} else {
		loader = hclcfg.NewLoader()
	}
	emeseneApp := app.NewApp(outW, appConfig, loader)

	return emeseneApp.Run(context.Background())
}
