package extension

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtension_ID(t *testing.T) {
	t.Parallel()

	polite := Describe[*politeGreeter](func(args ...any) (any, error) { return &politeGreeter{}, nil })
	value := Describe[valueGreeter](func(args ...any) (any, error) { return valueGreeter{}, nil })

	// Deterministic: same descriptor, same id, every call.
	assert.Equal(t, polite.ID(), polite.ID())

	// Derived from the defining package path plus the type name.
	assert.Equal(t, "github.com/Otacon/emesene/internal/extension:politeGreeter", polite.ID())

	// Pointer and value descriptors of the same concrete type agree.
	politeValue := &Extension{
		Type: reflect.TypeOf(politeGreeter{}),
		New:  func(args ...any) (any, error) { return politeGreeter{}, nil },
	}
	assert.Equal(t, polite.ID(), politeValue.ID())

	// Distinct implementations never collide.
	assert.NotEqual(t, polite.ID(), value.ID())
}
