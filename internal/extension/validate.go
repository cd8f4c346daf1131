package extension

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Otacon/emesene/internal/ctxlog"
)

// Validate performs a strict integrity pass over every category: each
// registered extension must still conform to each of its category's
// interfaces, and a selected default id must resolve to a registered
// extension. Registration already enforces both, so a failure here means
// the registry was corrupted by code bypassing the public operations; the
// app treats that as a programmer error at startup.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for name, cat := range r.Categories() {
		exts := cat.Extensions()
		for id, ext := range exts {
			for _, iface := range cat.Interfaces() {
				if !iface.ConformedBy(ext.Type) {
					errs = append(errs, fmt.Sprintf(
						"category '%s': extension '%s' does not conform to interface '%s'",
						name, id, iface.Name()))
				}
			}
		}
		if id := cat.DefaultID(); id != "" {
			if _, ok := exts[id]; !ok {
				errs = append(errs, fmt.Sprintf(
					"category '%s': default id '%s' is not a registered extension", name, id))
			}
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "categories", len(r.Categories()))
	return nil
}
