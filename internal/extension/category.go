package extension

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
)

// Category owns one named extension point: its registered extensions, its
// required interfaces, its selected default and, in single-instance mode,
// one cached shared instance.
//
// All operations are safe for concurrent use. The cached instance is
// invalidated whenever the default moves to a different extension; a
// generation counter resolves the race between a default change and an
// in-flight instantiation (last writer to move the default wins, and an
// instance constructed under a stale default is returned to its caller but
// never cached).
type Category struct {
	mu            sync.RWMutex
	name          string
	systemDefault *Extension
	interfaces    []*Interface
	extensions    map[string]*Extension
	defaultID     string
	single        bool

	// instance is the cached shared instance, present only in
	// single-instance mode and only between an instantiation and the next
	// default change or explicit release. instanceGen records the default
	// generation it was built under.
	instance    any
	instanceGen uint64
	gen         uint64
}

func newCategory(name string, systemDefault *Extension, interfaces []*Interface, singleInstance bool) *Category {
	return &Category{
		name:          name,
		systemDefault: systemDefault,
		interfaces:    slices.Clone(interfaces),
		extensions:    make(map[string]*Extension),
		single:        singleInstance,
	}
}

// Name returns the category's registry key.
func (c *Category) Name() string { return c.name }

// SingleInstance reports whether the category caches one shared instance.
func (c *Category) SingleInstance() bool { return c.single }

// SystemDefault returns the fallback extension designated when the category
// was created. It is independent of the selected default and may be nil.
func (c *Category) SystemDefault() *Extension {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.systemDefault
}

// Interfaces returns a copy of the category's required interfaces.
func (c *Category) Interfaces() []*Interface {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.interfaces)
}

// Register validates ext against every required interface and stores it
// under its id. Re-registering the same extension is a no-op. On a
// ValidationError the category is left unchanged.
func (c *Category) Register(ext *Extension) error {
	if ext == nil || ext.Type == nil || ext.New == nil {
		return fmt.Errorf("category %q: extension descriptor needs both a Type and a New constructor", c.name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registerLocked(ext)
}

func (c *Category) registerLocked(ext *Extension) error {
	for _, iface := range c.interfaces {
		if !iface.ConformedBy(ext.Type) {
			return &ValidationError{Category: c.name, Extension: ext.ID(), Interface: iface.Name()}
		}
	}
	c.extensions[ext.ID()] = ext
	return nil
}

// SetInterfaces performs the one-time interface upgrade. If the category is
// unconstrained it adopts the given interfaces, drops every registered
// extension that no longer conforms, and returns true. If interfaces were
// already set it changes nothing and returns false.
func (c *Category) SetInterfaces(interfaces []*Interface) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.interfaces) > 0 {
		return false
	}
	if len(interfaces) == 0 {
		return true
	}

	c.interfaces = slices.Clone(interfaces)
	for id, ext := range c.extensions {
		for _, iface := range c.interfaces {
			if !iface.ConformedBy(ext.Type) {
				slog.Debug("Dropping extension after interface upgrade.",
					"category", c.name, "id", id, "interface", iface.Name())
				delete(c.extensions, id)
				break
			}
		}
	}
	return true
}

// Extensions returns a copy of the id → extension table.
func (c *Category) Extensions() map[string]*Extension {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.extensions)
}

// SetDefault selects ext as the category's default, registering it first if
// it is not already in the table. Moving the default to a different
// extension invalidates the cached instance; re-selecting the current
// default preserves it.
func (c *Category) SetDefault(ext *Extension) error {
	if ext == nil || ext.Type == nil || ext.New == nil {
		return fmt.Errorf("category %q: extension descriptor needs both a Type and a New constructor", c.name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	id := ext.ID()
	if _, ok := c.extensions[id]; !ok {
		if err := c.registerLocked(ext); err != nil {
			return err
		}
	}
	c.setDefaultLocked(id)
	return nil
}

func (c *Category) setDefaultLocked(id string) {
	if c.defaultID == id {
		return
	}
	c.defaultID = id
	c.instance = nil
	c.gen++
}

// SetDefaultByID selects the default through an already-registered id.
// An unknown id changes nothing and returns false; it is a checkable
// condition, not an error.
func (c *Category) SetDefaultByID(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.extensions[id]; !ok {
		slog.Debug("Extension id not registered on category.", "id", id, "category", c.name)
		return false
	}
	c.setDefaultLocked(id)
	return true
}

// Default returns the currently selected default extension. It fails with a
// NoDefaultError if no default was ever selected, or if the selected id was
// since dropped by an interface upgrade.
func (c *Category) Default() (*Extension, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ext, ok := c.extensions[c.defaultID]
	if c.defaultID == "" || !ok {
		return nil, &NoDefaultError{Category: c.name}
	}
	return ext, nil
}

// DefaultID returns the selected default's id, or "" if none is selected.
func (c *Category) DefaultID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaultID
}

// Instance returns the cached shared instance, or nil when the category is
// not single-instance, no instance was ever produced, or the cache was
// invalidated. Two calls may disagree even without an explicit default
// change in between: the host may have released the instance.
func (c *Category) Instance() any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.single || c.instanceGen != c.gen {
		return nil
	}
	return c.instance
}

// ReleaseInstance drops the cached shared instance, if any. Hosts call this
// when they know the instance is no longer used; the next GetAndInstantiate
// constructs a fresh one.
func (c *Category) ReleaseInstance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instance = nil
}

// GetAndInstantiate returns the cached shared instance if one is live
// (ignoring args; the first caller's arguments win until the cache is
// invalidated). Otherwise it constructs a new instance of the current
// default with args, caching it only in single-instance mode. Constructor
// failures propagate unchanged.
func (c *Category) GetAndInstantiate(args ...any) (any, error) {
	c.mu.RLock()
	if c.single && c.instance != nil {
		inst := c.instance
		c.mu.RUnlock()
		return inst, nil
	}
	ext, ok := c.extensions[c.defaultID]
	unresolved := c.defaultID == "" || !ok
	gen := c.gen
	c.mu.RUnlock()

	if unresolved {
		return nil, &NoDefaultError{Category: c.name}
	}

	// Construction runs outside the lock: a constructor may call back into
	// the registry.
	inst, err := ext.New(args...)
	if err != nil {
		return nil, err
	}
	if !c.single {
		return inst, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.gen != gen:
		// The default moved while we were constructing. The caller keeps
		// the instance it asked for, but the cache stays empty for whoever
		// instantiates under the new default.
		return inst, nil
	case c.instance != nil:
		// A concurrent caller populated the cache first.
		return c.instance, nil
	}
	c.instance = inst
	c.instanceGen = gen
	return inst, nil
}

// Use returns a fan-out view over instances of this category's extensions:
// the default extension only for a single-instance category, every
// registered extension otherwise. Entries are built with zero-argument
// construction (reusing the cached instance for the default when live);
// entries whose constructor fails are dropped.
func (c *Category) Use() *Broadcast {
	c.mu.RLock()
	single := c.single
	defaultID := c.defaultID
	cached := c.instance
	targets := maps.Clone(c.extensions)
	c.mu.RUnlock()

	objects := make(map[string]any)
	if single {
		if cached != nil {
			objects[defaultID] = cached
			return NewBroadcast(objects)
		}
		ext, ok := targets[defaultID]
		if !ok {
			return NewBroadcast(objects)
		}
		targets = map[string]*Extension{defaultID: ext}
	}
	for id, ext := range targets {
		inst, err := ext.New()
		if err != nil {
			slog.Debug("Dropping extension from fan-out view, constructor failed.",
				"category", c.name, "id", id, "error", err)
			continue
		}
		objects[id] = inst
	}
	return NewBroadcast(objects)
}
