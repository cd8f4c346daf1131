package extension

import "reflect"

// Extension describes a registrable implementation of a category: a
// constructible concrete type, not an instance.
type Extension struct {
	// Type is the concrete type New produces, used for interface
	// conformance checks and to derive the extension's identifier.
	Type reflect.Type

	// New constructs a fresh instance. Constructor failures are never
	// swallowed by the registry; they propagate to the caller.
	New func(args ...any) (any, error)
}

// Describe builds a descriptor for the concrete type T.
func Describe[T any](ctor func(args ...any) (any, error)) *Extension {
	return &Extension{Type: reflect.TypeOf((*T)(nil)).Elem(), New: ctor}
}

// ID returns the process-unique, deterministic identifier for this
// extension: "<package-path>:<TypeName>". Two distinct implementations never
// collide and the same implementation always yields the same id.
func (e *Extension) ID() string {
	t := e.Type
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.PkgPath() + ":" + t.Name()
}
