package extension

// Module is the interface all compiled-in extension packages implement to
// be registered. A module creates its categories and registers its
// extensions against the given registry; any registration failure aborts
// startup.
type Module interface {
	Register(r *Registry) error
}
