package extension

import (
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"sort"
)

// Broadcast is a fan-out view over an id → value mapping. Every operation
// applies per entry and builds a new view of the successful results;
// per-entry failures (missing member, wrong arity, returned error, panic)
// are logged at debug and silently dropped, so callers get partial results
// with no record of which entries failed. That suppression is the view's
// documented contract: it operates over heterogeneous targets where partial
// success is the expected case.
type Broadcast struct {
	objects map[string]any
}

// NewBroadcast wraps the given mapping in a fan-out view.
func NewBroadcast(objects map[string]any) *Broadcast {
	if objects == nil {
		objects = make(map[string]any)
	}
	return &Broadcast{objects: objects}
}

// Results is the terminal accessor: the raw id → value mapping.
func (b *Broadcast) Results() map[string]any {
	return maps.Clone(b.objects)
}

// IDs returns the entry ids in sorted order.
func (b *Broadcast) IDs() []string {
	ids := make([]string, 0, len(b.objects))
	for id := range b.objects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of entries in the view.
func (b *Broadcast) Len() int { return len(b.objects) }

// Get fans out member access: for each entry it resolves a bound method or
// an exported struct field of that name.
func (b *Broadcast) Get(name string) *Broadcast {
	result := make(map[string]any, len(b.objects))
	for id, obj := range b.objects {
		v, err := member(obj, name)
		if err != nil {
			slog.Debug("Dropping entry from fan-out view.", "id", id, "member", name, "error", err)
			continue
		}
		result[id] = v
	}
	return &Broadcast{objects: result}
}

// Invoke fans out a call: every entry is treated as a function and called
// with args.
func (b *Broadcast) Invoke(args ...any) *Broadcast {
	result := make(map[string]any, len(b.objects))
	for id, obj := range b.objects {
		out, err := call(reflect.ValueOf(obj), args)
		if err != nil {
			slog.Debug("Dropping entry from fan-out view.", "id", id, "error", err)
			continue
		}
		result[id] = out
	}
	return &Broadcast{objects: result}
}

// Call fans out a method call on every entry; shorthand for
// Get(method).Invoke(args...).
func (b *Broadcast) Call(method string, args ...any) *Broadcast {
	return b.Get(method).Invoke(args...)
}

// Index fans out an item read over map, slice and array entries.
func (b *Broadcast) Index(key any) *Broadcast {
	result := make(map[string]any, len(b.objects))
	for id, obj := range b.objects {
		v, err := index(obj, key)
		if err != nil {
			slog.Debug("Dropping entry from fan-out view.", "id", id, "key", key, "error", err)
			continue
		}
		result[id] = v
	}
	return &Broadcast{objects: result}
}

// SetIndex fans out an item write over map entries. Failed writes are
// dropped per entry; the view itself is returned unchanged.
func (b *Broadcast) SetIndex(key, value any) *Broadcast {
	for id, obj := range b.objects {
		if err := setIndex(obj, key, value); err != nil {
			slog.Debug("Dropping entry write in fan-out view.", "id", id, "key", key, "error", err)
		}
	}
	return b
}

// member resolves a bound method (value or pointer receiver) or an exported
// struct field.
func member(obj any, name string) (any, error) {
	if obj == nil {
		return nil, fmt.Errorf("nil entry")
	}
	v := reflect.ValueOf(obj)
	if m := v.MethodByName(name); m.IsValid() {
		return m.Interface(), nil
	}
	elem := v
	for elem.Kind() == reflect.Pointer {
		if elem.IsNil() {
			return nil, fmt.Errorf("nil entry")
		}
		elem = elem.Elem()
	}
	if elem.Kind() == reflect.Struct {
		f := elem.FieldByName(name)
		if f.IsValid() && f.CanInterface() {
			return f.Interface(), nil
		}
	}
	return nil, fmt.Errorf("no member %q on %T", name, obj)
}

// call invokes fn with args, converting arguments where Go would allow an
// implicit conversion. A panic inside the target, a trailing non-nil error
// return, or an argument mismatch all count as per-entry failures.
func call(fn reflect.Value, args []any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("target panicked: %v", r)
		}
	}()

	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("entry is not callable")
	}
	t := fn.Type()
	if t.IsVariadic() {
		if len(args) < t.NumIn()-1 {
			return nil, fmt.Errorf("want at least %d args, got %d", t.NumIn()-1, len(args))
		}
	} else if len(args) != t.NumIn() {
		return nil, fmt.Errorf("want %d args, got %d", t.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		pt := paramType(t, i)
		if arg == nil {
			in[i] = reflect.Zero(pt)
			continue
		}
		av := reflect.ValueOf(arg)
		switch {
		case av.Type().AssignableTo(pt):
			in[i] = av
		case av.Type().ConvertibleTo(pt):
			in[i] = av.Convert(pt)
		default:
			return nil, fmt.Errorf("arg %d: cannot use %T", i, arg)
		}
	}

	rets := fn.Call(in)
	if n := len(rets); n > 0 && t.Out(n-1) == errorType {
		if errVal := rets[n-1]; !errVal.IsNil() {
			return nil, errVal.Interface().(error)
		}
		rets = rets[:n-1]
	}
	switch len(rets) {
	case 0:
		return nil, nil
	case 1:
		return rets[0].Interface(), nil
	default:
		vals := make([]any, len(rets))
		for i, rv := range rets {
			vals[i] = rv.Interface()
		}
		return vals, nil
	}
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func paramType(t reflect.Type, i int) reflect.Type {
	if t.IsVariadic() && i >= t.NumIn()-1 {
		return t.In(t.NumIn() - 1).Elem()
	}
	return t.In(i)
}

func index(obj, key any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("index failed: %v", r)
		}
	}()

	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Map:
		e := v.MapIndex(reflect.ValueOf(key))
		if !e.IsValid() {
			return nil, fmt.Errorf("key %v not present", key)
		}
		return e.Interface(), nil
	case reflect.Slice, reflect.Array:
		i, ok := key.(int)
		if !ok {
			return nil, fmt.Errorf("slice index must be int, got %T", key)
		}
		if i < 0 || i >= v.Len() {
			return nil, fmt.Errorf("index %d out of range", i)
		}
		return v.Index(i).Interface(), nil
	default:
		return nil, fmt.Errorf("entry %T is not indexable", obj)
	}
}

func setIndex(obj, key, value any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("index write failed: %v", r)
		}
	}()

	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Map {
		return fmt.Errorf("entry %T does not support item writes", obj)
	}
	v.SetMapIndex(reflect.ValueOf(key), reflect.ValueOf(value))
	return nil
}
