package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Otacon/emesene/internal/config"
	"github.com/Otacon/emesene/internal/ctxlog"
	"github.com/Otacon/emesene/internal/extension"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *extension.Registry
	profile  *config.Profile
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...extension.Module) *App {
	ctx := context.Background()

	// Load the profile first: its settings may adjust the logger.
	profile := config.NewProfile()
	if appConfig.ProfilePath != "" {
		loaded, err := loader.Load(ctx, appConfig.ProfilePath)
		if err != nil {
			// A failure to load the profile is a fatal startup error.
			panic(fmt.Errorf("failed to load profile: %w", err))
		}
		profile = loaded
	}

	logger := newLogger(appConfig, profile.Settings, outW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	// Create the registry and populate it from the compiled-in modules.
	reg := extension.NewRegistry()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		if err := mod.Register(reg); err != nil {
			// This is a programmer error in a module, so we panic.
			panic(fmt.Errorf("failed to register module %T: %w", mod, err))
		}
	}
	logger.Debug("All extension modules registered.", "count", len(modules))

	// Apply the profile's default selections on top of the module defaults.
	applyProfile(ctx, reg, profile)

	// Validate the integrity of the registry.
	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		profile:  profile,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *extension.Registry {
	return a.registry
}

// Profile returns the loaded profile. This is primarily for testing.
func (a *App) Profile() *config.Profile {
	return a.profile
}
