package extension

import (
	"fmt"
	"reflect"
	"slices"
)

// Interface is a structural capability surface: a named set of method names
// every extension of a category must expose. Conformance is checked by name
// only; signatures and semantics are not verified.
type Interface struct {
	name    string
	methods []string
}

// NewInterface builds a surface from an explicit list of required method
// names.
func NewInterface(name string, methods ...string) *Interface {
	return &Interface{name: name, methods: slices.Clone(methods)}
}

// InterfaceOf derives a surface from the Go interface type T, requiring
// every method T declares. Prefer this over NewInterface: the contract then
// lives in a real interface the compiler can also check.
func InterfaceOf[T any](name string) *Interface {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Interface {
		panic(fmt.Sprintf("extension: InterfaceOf requires an interface type, got %s", t))
	}
	methods := make([]string, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		methods = append(methods, t.Method(i).Name)
	}
	return &Interface{name: name, methods: methods}
}

// Name returns the surface's display name.
func (s *Interface) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Methods returns a copy of the required method names.
func (s *Interface) Methods() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.methods)
}

// ConformedBy reports whether t exposes every method the surface requires.
// Methods on both the value and the pointer receiver count. A nil surface,
// or one requiring no methods, is trivially conformed to by everything.
func (s *Interface) ConformedBy(t reflect.Type) bool {
	if s == nil || len(s.methods) == 0 {
		return true
	}
	if t == nil {
		return false
	}
	for _, name := range s.methods {
		if !hasMethod(t, name) {
			return false
		}
	}
	return true
}

func hasMethod(t reflect.Type, name string) bool {
	if _, ok := t.MethodByName(name); ok {
		return true
	}
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		if _, ok := reflect.PointerTo(t).MethodByName(name); ok {
			return true
		}
	}
	return false
}
