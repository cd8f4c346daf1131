package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/Otacon/emesene/internal/ctxlog"
)

// Run prints the category table: every registered category with its
// extensions, the selected default and the system default. This is the
// CLI's inspection surface over the registry; the GUI host resolves the
// same registry programmatically.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	categories := a.registry.Categories()
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cat := categories[name]

		mode := "multi-instance"
		if cat.SingleInstance() {
			mode = "single-instance"
		}
		fmt.Fprintf(a.outW, "category %q (%s)\n", name, mode)

		defaultID := cat.DefaultID()
		if defaultID == "" {
			defaultID = "(none)"
		}
		fmt.Fprintf(a.outW, "  default: %s\n", defaultID)
		if sys := cat.SystemDefault(); sys != nil {
			fmt.Fprintf(a.outW, "  system default: %s\n", sys.ID())
		}

		exts := cat.Extensions()
		ids := make([]string, 0, len(exts))
		for id := range exts {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(a.outW, "  extension: %s\n", id)
		}
	}

	logger.Info("Category table printed.", "categories", len(categories))
	return nil
}
