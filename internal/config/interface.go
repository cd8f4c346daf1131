package config

import "context"

// Loader is the interface for a format-specific profile loader.
type Loader interface {
	// Load reads profile files from the given paths (files or directories),
	// translates them into the format-agnostic model and merges them in
	// order, later paths winning.
	Load(ctx context.Context, paths ...string) (*Profile, error)
}
