package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Otacon/emesene/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	// A .env file may carry local logging overrides; its absence is fine.
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded .env overrides.")
	}

	flagSet := flag.NewFlagSet("emesene", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
emesene - extension registry inspector.

Usage:
  emesene [options] [PROFILE_PATH]

Arguments:
  PROFILE_PATH
    Path to a profile file or a directory containing profile files.
    Optional; without it the compiled-in defaults apply.

Options:
`)
		flagSet.PrintDefaults()
	}

	profileFlag := flagSet.String("profile", "", "Path to the profile file or directory.")
	pFlag := flagSet.String("p", "", "Path to the profile file or directory (shorthand).")
	profileFormatFlag := flagSet.String("profile-format", "hcl", "Profile file format. Options: 'hcl' or 'yaml'.")
	logFormatFlag := flagSet.String("log-format", envDefault("EMESENE_LOG_FORMAT", "text"), "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envDefault("EMESENE_LOG_LEVEL", "info"), "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *profileFlag != "" {
		path = *profileFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Profile path determined.", "path", path)

	profileFormat := strings.ToLower(*profileFormatFlag)
	if profileFormat != "hcl" && profileFormat != "yaml" {
		return nil, false, &ExitError{Code: 2, Message: "invalid profile-format: must be 'hcl' or 'yaml'"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ProfilePath:   path,
		ProfileFormat: profileFormat,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
