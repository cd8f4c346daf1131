// Package yamlcfg provides the concrete YAML implementation of the profile
// loading interface defined in the `config` package.
package yamlcfg

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Otacon/emesene/internal/config"
	"github.com/Otacon/emesene/internal/ctxlog"
	"github.com/Otacon/emesene/internal/fsutil"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML profile loader.
func NewLoader() *Loader {
	return &Loader{}
}

// yamlProfile mirrors the on-disk YAML profile document.
type yamlProfile struct {
	Settings *struct {
		LogLevel  string `yaml:"log_level"`
		LogFormat string `yaml:"log_format"`
	} `yaml:"settings"`
	Categories map[string]struct {
		Default string `yaml:"default"`
	} `yaml:"categories"`
}

// Load reads every .yaml profile file under the given paths, translates
// each into the format-agnostic model and merges them in order, later
// files winning.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Profile, error) {
	logger := ctxlog.FromContext(ctx)
	profile := config.NewProfile()

	for _, path := range paths {
		filePaths, err := fsutil.FindFilesByExtension(path, ".yaml")
		if err != nil {
			return nil, fmt.Errorf("failed to locate profile files in %s: %w", path, err)
		}
		for _, filePath := range filePaths {
			data, err := os.ReadFile(filePath)
			if err != nil {
				return nil, fmt.Errorf("failed to read profile file %s: %w", filePath, err)
			}
			var doc yamlProfile
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return nil, fmt.Errorf("failed to parse profile file %s: %w", filePath, err)
			}
			profile.Merge(translate(&doc))
			logger.Debug("Loaded profile file.", "file", filePath)
		}
	}

	logger.Debug("Profile loaded.", "category_selections", len(profile.Categories))
	return profile, nil
}

func translate(doc *yamlProfile) *config.Profile {
	profile := config.NewProfile()
	if doc.Settings != nil {
		profile.Settings = &config.Settings{
			LogLevel:  doc.Settings.LogLevel,
			LogFormat: doc.Settings.LogFormat,
		}
	}
	for name, sel := range doc.Categories {
		profile.Categories[name] = &config.CategorySelection{Name: name, Default: sel.Default}
	}
	return profile
}
