package extension

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeter interface {
	Greet(name string) string
	Wave()
}

type politeGreeter struct{}

func (g *politeGreeter) Greet(name string) string { return "hello " + name }
func (g *politeGreeter) Wave()                    {}

// valueGreeter declares its methods on the value receiver.
type valueGreeter struct{}

func (g valueGreeter) Greet(name string) string { return name }
func (g valueGreeter) Wave()                    {}

type mute struct{}

func TestInterfaceOf(t *testing.T) {
	t.Parallel()

	iface := InterfaceOf[greeter]("test.Greeter")

	assert.Equal(t, "test.Greeter", iface.Name())
	assert.ElementsMatch(t, []string{"Greet", "Wave"}, iface.Methods())
}

func TestInterfaceOf_PanicsOnConcreteType(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		InterfaceOf[politeGreeter]("not-an-interface")
	})
}

func TestInterface_ConformedBy(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		iface    *Interface
		typ      reflect.Type
		conforms bool
	}{
		{
			name:     "pointer receiver methods conform",
			iface:    InterfaceOf[greeter]("test.Greeter"),
			typ:      reflect.TypeOf(&politeGreeter{}),
			conforms: true,
		},
		{
			name:     "value type with pointer receiver methods conforms",
			iface:    InterfaceOf[greeter]("test.Greeter"),
			typ:      reflect.TypeOf(politeGreeter{}),
			conforms: true,
		},
		{
			name:     "value receiver methods conform",
			iface:    InterfaceOf[greeter]("test.Greeter"),
			typ:      reflect.TypeOf(valueGreeter{}),
			conforms: true,
		},
		{
			name:     "missing methods do not conform",
			iface:    InterfaceOf[greeter]("test.Greeter"),
			typ:      reflect.TypeOf(&mute{}),
			conforms: false,
		},
		{
			name:     "name-only surface checks names, not signatures",
			iface:    NewInterface("test.Names", "Greet"),
			typ:      reflect.TypeOf(&politeGreeter{}),
			conforms: true,
		},
		{
			name:     "empty surface trivially conforms",
			iface:    NewInterface("test.Empty"),
			typ:      reflect.TypeOf(&mute{}),
			conforms: true,
		},
		{
			name:     "nil surface trivially conforms",
			iface:    nil,
			typ:      reflect.TypeOf(&mute{}),
			conforms: true,
		},
		{
			name:     "nil type never conforms to a non-empty surface",
			iface:    NewInterface("test.Names", "Greet"),
			typ:      nil,
			conforms: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.conforms, tc.iface.ConformedBy(tc.typ))
		})
	}
}
