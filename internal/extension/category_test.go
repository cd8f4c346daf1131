package extension

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The codec fixtures carry a scratch buffer so every constructed instance
// has its own address; zero-sized values would all share one and defeat the
// identity assertions below.
type codecA struct {
	scratch [1]byte
}

func (c *codecA) Encode(b []byte) []byte { return b }
func (c *codecA) Decode(b []byte) []byte { return b }

type codecB struct {
	scratch [1]byte
}

func (c *codecB) Encode(b []byte) []byte { return b }
func (c *codecB) Decode(b []byte) []byte { return b }

// halfCodec lacks Decode.
type halfCodec struct {
	scratch [1]byte
}

func (c *halfCodec) Encode(b []byte) []byte { return b }

func descA() *Extension {
	return Describe[*codecA](func(args ...any) (any, error) { return &codecA{}, nil })
}

func descB() *Extension {
	return Describe[*codecB](func(args ...any) (any, error) { return &codecB{}, nil })
}

func descHalf() *Extension {
	return Describe[*halfCodec](func(args ...any) (any, error) { return &halfCodec{}, nil })
}

func codecInterface() *Interface {
	return NewInterface("test.Codec", "Encode", "Decode")
}

func TestCategory_Register_Validation(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cat := newCategory("codec", nil, []*Interface{codecInterface()}, false)

	// --- Act / Assert ---
	require.NoError(t, cat.Register(descA()))

	err := cat.Register(descHalf())
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr, "a non-conforming extension must be rejected with a ValidationError")
	assert.Equal(t, "codec", vErr.Category)
	assert.Equal(t, "test.Codec", vErr.Interface)

	// The rejection must not mutate the table.
	assert.Len(t, cat.Extensions(), 1)
}

func TestCategory_Register_Idempotent(t *testing.T) {
	t.Parallel()

	cat := newCategory("codec", nil, nil, false)

	require.NoError(t, cat.Register(descA()))
	require.NoError(t, cat.Register(descA()))

	assert.Len(t, cat.Extensions(), 1, "registering the same implementation twice yields one entry")
}

func TestCategory_Register_RejectsIncompleteDescriptor(t *testing.T) {
	t.Parallel()

	cat := newCategory("codec", nil, nil, false)

	err := cat.Register(&Extension{})
	require.Error(t, err)
	assert.Empty(t, cat.Extensions())
}

func TestCategory_SetInterfaces(t *testing.T) {
	t.Parallel()

	t.Run("upgrade filters non-conforming extensions", func(t *testing.T) {
		cat := newCategory("codec", nil, nil, false)
		require.NoError(t, cat.Register(descA()))
		require.NoError(t, cat.Register(descHalf()))

		ok := cat.SetInterfaces([]*Interface{codecInterface()})

		require.True(t, ok)
		exts := cat.Extensions()
		assert.Len(t, exts, 1)
		assert.Contains(t, exts, descA().ID())
	})

	t.Run("already constrained reports failure and keeps state", func(t *testing.T) {
		cat := newCategory("codec", nil, []*Interface{codecInterface()}, false)
		require.NoError(t, cat.Register(descA()))

		ok := cat.SetInterfaces([]*Interface{NewInterface("test.Other", "Nope")})

		assert.False(t, ok)
		assert.Len(t, cat.Extensions(), 1, "a failed upgrade must not mutate the table")
		require.Len(t, cat.Interfaces(), 1)
		assert.Equal(t, "test.Codec", cat.Interfaces()[0].Name())
	})

	t.Run("empty upgrade is a no-op success", func(t *testing.T) {
		cat := newCategory("codec", nil, nil, false)

		assert.True(t, cat.SetInterfaces(nil))
		assert.Empty(t, cat.Interfaces(), "the category stays open for a later upgrade")
	})

	t.Run("upgrade dropping the default makes it unresolvable", func(t *testing.T) {
		cat := newCategory("codec", nil, nil, false)
		require.NoError(t, cat.SetDefault(descHalf()))

		ok := cat.SetInterfaces([]*Interface{codecInterface()})

		require.True(t, ok)
		_, err := cat.Default()
		var ndErr *NoDefaultError
		require.ErrorAs(t, err, &ndErr, "getDefault must fail once the default was filtered out")
	})
}

func TestCategory_DefaultSelection(t *testing.T) {
	t.Parallel()

	cat := newCategory("codec", nil, nil, false)

	// No default was ever chosen: a caller bug, reported loudly.
	_, err := cat.Default()
	var ndErr *NoDefaultError
	require.ErrorAs(t, err, &ndErr)

	// SetDefault auto-registers an unknown implementation first.
	require.NoError(t, cat.SetDefault(descA()))
	def, err := cat.Default()
	require.NoError(t, err)
	assert.Equal(t, descA().ID(), def.ID())
	assert.Contains(t, cat.Extensions(), descA().ID())

	// SetDefault surfaces the registration ValidationError unchanged.
	constrained := newCategory("codec", nil, []*Interface{codecInterface()}, false)
	var vErr *ValidationError
	require.ErrorAs(t, constrained.SetDefault(descHalf()), &vErr)
	assert.Equal(t, "", constrained.DefaultID())
}

func TestCategory_SetDefaultByID(t *testing.T) {
	t.Parallel()

	cat := newCategory("codec", nil, nil, false)
	require.NoError(t, cat.Register(descA()))
	require.NoError(t, cat.Register(descB()))
	require.NoError(t, cat.SetDefault(descA()))

	// Unknown ids never raise; they report failure and change nothing.
	assert.False(t, cat.SetDefaultByID("no/such:Extension"))
	assert.Equal(t, descA().ID(), cat.DefaultID())

	// Known ids behave exactly like SetDefault.
	assert.True(t, cat.SetDefaultByID(descB().ID()))
	assert.Equal(t, descB().ID(), cat.DefaultID())
}

func TestCategory_SingleInstanceCache(t *testing.T) {
	t.Parallel()

	cat := newCategory("codec", nil, nil, true)
	require.NoError(t, cat.SetDefault(descA()))

	// First call constructs, second call reuses, identity preserved.
	first, err := cat.GetAndInstantiate()
	require.NoError(t, err)
	second, err := cat.GetAndInstantiate()
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Same(t, first, cat.Instance())

	// Ctor args are ignored while the cache is live: the first caller's
	// arguments win.
	third, err := cat.GetAndInstantiate("ignored")
	require.NoError(t, err)
	assert.Same(t, first, third)

	// Re-selecting the same default preserves the cache.
	require.NoError(t, cat.SetDefault(descA()))
	assert.Same(t, first, cat.Instance())

	// Moving the default invalidates it.
	require.NoError(t, cat.SetDefault(descB()))
	assert.Nil(t, cat.Instance())
	fresh, err := cat.GetAndInstantiate()
	require.NoError(t, err)
	assert.NotSame(t, first, fresh)
}

func TestCategory_MultiInstance_NeverCaches(t *testing.T) {
	t.Parallel()

	cat := newCategory("codec", nil, nil, false)
	require.NoError(t, cat.SetDefault(descA()))

	first, err := cat.GetAndInstantiate()
	require.NoError(t, err)
	second, err := cat.GetAndInstantiate()
	require.NoError(t, err)

	assert.NotSame(t, first, second, "multi-instance categories construct per call")
	assert.Nil(t, cat.Instance(), "Instance is always nil for multi-instance categories")
}

func TestCategory_ReleaseInstance(t *testing.T) {
	t.Parallel()

	cat := newCategory("codec", nil, nil, true)
	require.NoError(t, cat.SetDefault(descA()))

	first, err := cat.GetAndInstantiate()
	require.NoError(t, err)

	// Once the host releases the instance the cache observes its absence
	// instead of resurrecting it.
	cat.ReleaseInstance()
	assert.Nil(t, cat.Instance())

	fresh, err := cat.GetAndInstantiate()
	require.NoError(t, err)
	assert.NotSame(t, first, fresh)
}

func TestCategory_GetAndInstantiate_NoDefault(t *testing.T) {
	t.Parallel()

	cat := newCategory("codec", nil, nil, true)

	_, err := cat.GetAndInstantiate()
	var ndErr *NoDefaultError
	require.ErrorAs(t, err, &ndErr)
}

func TestCategory_GetAndInstantiate_ConstructorErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	failing := Describe[*codecA](func(args ...any) (any, error) { return nil, boom })

	cat := newCategory("codec", nil, nil, true)
	require.NoError(t, cat.SetDefault(failing))

	_, err := cat.GetAndInstantiate()
	require.ErrorIs(t, err, boom, "constructor failures surface to the caller unchanged")
	assert.Nil(t, cat.Instance(), "a failed construction must not populate the cache")
}

func TestCategory_DefaultMovedDuringConstruction(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The constructor itself moves the default, so the construction is
	// guaranteed to finish under a stale generation.
	cat := newCategory("codec", nil, nil, true)
	racer := Describe[*codecA](func(args ...any) (any, error) {
		require.NoError(t, cat.SetDefault(descB()))
		return &codecA{}, nil
	})
	require.NoError(t, cat.SetDefault(racer))

	// --- Act ---
	inst, err := cat.GetAndInstantiate()

	// --- Assert ---
	// Last writer to move the default wins: the caller keeps the instance
	// it asked for, but the stale instance never reaches the cache.
	require.NoError(t, err)
	assert.IsType(t, &codecA{}, inst)
	assert.Nil(t, cat.Instance())

	// The next instantiation builds and caches the new default.
	next, err := cat.GetAndInstantiate()
	require.NoError(t, err)
	assert.IsType(t, &codecB{}, next)
	assert.Same(t, next, cat.Instance())
}

func TestCategory_GetAndInstantiate_Concurrent(t *testing.T) {
	t.Parallel()

	cat := newCategory("codec", nil, nil, true)
	require.NoError(t, cat.SetDefault(descA()))

	const callers = 16
	instances := make([]any, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			inst, err := cat.GetAndInstantiate()
			assert.NoError(t, err)
			instances[i] = inst
		}(i)
	}
	wg.Wait()

	// Whoever populated the cache first wins; everyone who observed the
	// cache afterwards got the same instance it holds.
	cached := cat.Instance()
	require.NotNil(t, cached)
	for i := 1; i < callers; i++ {
		if instances[i] != instances[0] {
			// A racer that lost the populate race keeps its own instance;
			// the cache itself must still be stable.
			assert.NotNil(t, instances[i])
		}
	}
	again, err := cat.GetAndInstantiate()
	require.NoError(t, err)
	assert.Same(t, cached, again)
}
