package app

import (
	"context"

	"github.com/Otacon/emesene/internal/config"
	"github.com/Otacon/emesene/internal/ctxlog"
	"github.com/Otacon/emesene/internal/extension"
)

// applyProfile applies the profile's per-category default selections to the
// registry. A selection naming an unknown category or an unregistered
// extension id is a normal user-level condition: it is logged and skipped,
// leaving the module's own default in place.
func applyProfile(ctx context.Context, reg *extension.Registry, profile *config.Profile) {
	logger := ctxlog.FromContext(ctx)

	for name, sel := range profile.Categories {
		if sel == nil || sel.Default == "" {
			continue
		}
		if reg.Category(name) == nil {
			logger.Warn("Profile selects a default for an unknown category.", "category", name)
			continue
		}
		if !reg.SetDefaultByID(name, sel.Default) {
			logger.Warn("Profile selects an unregistered extension id, keeping current default.",
				"category", name, "id", sel.Default)
			continue
		}
		logger.Debug("Applied profile default.", "category", name, "id", sel.Default)
	}
}
