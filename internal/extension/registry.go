package extension

import (
	"log/slog"
	"maps"
	"sync"
)

// Registry holds every category for a single application instance. It is a
// passive table: callers address categories by name and the registry
// delegates, treating an unknown category as a normal, checkable condition
// (nil or false results) rather than an error.
//
// The registry lives for the process; categories are never removed.
type Registry struct {
	mu         sync.RWMutex
	categories map[string]*Category
}

// NewRegistry creates an empty registry. Each application instance owns
// exactly one, wired through the composition root; there is no package
// global.
func NewRegistry() *Registry {
	return &Registry{categories: make(map[string]*Category)}
}

// RegisterCategory creates and stores the named category on first call.
// If the category already exists the systemDefault and singleInstance
// parameters are ignored and the call degrades to a one-time interface
// upgrade per Category.SetInterfaces. Repeated identical calls are
// idempotent.
func (r *Registry) RegisterCategory(name string, systemDefault *Extension, interfaces []*Interface, singleInstance bool) *Category {
	r.mu.Lock()
	cat, ok := r.categories[name]
	if !ok {
		cat = newCategory(name, systemDefault, interfaces, singleInstance)
		r.categories[name] = cat
		r.mu.Unlock()
		slog.Debug("Registered category.", "category", name, "single_instance", singleInstance)
		return cat
	}
	r.mu.Unlock()

	if len(interfaces) > 0 && !cat.SetInterfaces(interfaces) {
		slog.Debug("Category already constrained, interfaces not applied.", "category", name)
	}
	return cat
}

// RegisterExtension registers ext under the named category. A category seen
// for the first time is created implicitly with ext as its system default;
// the default selection stays unset until an explicit SetDefault. This path
// exists for hosts that register extensions before categories.
func (r *Registry) RegisterExtension(name string, ext *Extension) error {
	r.mu.Lock()
	cat, ok := r.categories[name]
	if !ok {
		cat = newCategory(name, ext, nil, false)
		r.categories[name] = cat
		slog.Debug("Implicitly created category.", "category", name)
	}
	r.mu.Unlock()

	return cat.Register(ext)
}

// Category returns the named category, or nil if it was never registered.
func (r *Registry) Category(name string) *Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.categories[name]
}

// Categories returns a copy of the name → category table.
func (r *Registry) Categories() map[string]*Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.categories)
}

// Extensions returns the named category's id → extension table, or nil for
// an unknown category.
func (r *Registry) Extensions(name string) map[string]*Extension {
	cat := r.Category(name)
	if cat == nil {
		return nil
	}
	return cat.Extensions()
}

// Default returns the named category's selected default. An unknown
// category yields (nil, nil); a known category surfaces Category.Default
// unchanged, including its NoDefaultError.
func (r *Registry) Default(name string) (*Extension, error) {
	cat := r.Category(name)
	if cat == nil {
		return nil, nil
	}
	return cat.Default()
}

// SystemDefault returns the fallback extension designated at category
// creation, or nil for an unknown category. Hosts use it to retry when the
// selected default fails to construct.
func (r *Registry) SystemDefault(name string) *Extension {
	cat := r.Category(name)
	if cat == nil {
		return nil
	}
	return cat.SystemDefault()
}

// Instance returns the named category's cached shared instance, or nil.
func (r *Registry) Instance(name string) any {
	cat := r.Category(name)
	if cat == nil {
		return nil
	}
	return cat.Instance()
}

// GetAndInstantiate resolves the named category and delegates to
// Category.GetAndInstantiate. An unknown category yields (nil, nil);
// constructor failures propagate unchanged.
func (r *Registry) GetAndInstantiate(name string, args ...any) (any, error) {
	cat := r.Category(name)
	if cat == nil {
		return nil, nil
	}
	return cat.GetAndInstantiate(args...)
}

// SetDefault selects ext as the named category's default, registering it
// first if needed. It reports false for an unknown category; a
// ValidationError from the implicit registration is surfaced unchanged.
func (r *Registry) SetDefault(name string, ext *Extension) (bool, error) {
	cat := r.Category(name)
	if cat == nil {
		return false, nil
	}
	if err := cat.SetDefault(ext); err != nil {
		return false, err
	}
	return true, nil
}

// SetDefaultByID selects the named category's default through an extension
// id. It reports false for an unknown category or an unregistered id.
func (r *Registry) SetDefaultByID(name, id string) bool {
	cat := r.Category(name)
	if cat == nil {
		return false
	}
	return cat.SetDefaultByID(id)
}

// Use returns the named category's fan-out view, or an empty view for an
// unknown category.
func (r *Registry) Use(name string) *Broadcast {
	cat := r.Category(name)
	if cat == nil {
		return NewBroadcast(nil)
	}
	return cat.Use()
}
