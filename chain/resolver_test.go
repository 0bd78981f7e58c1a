package chain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greet func(name string) string

type panicResolver struct{}

func (panicResolver) Resolve(Tag, string) (any, error) { panic("boom") }

// emptyResolver reports success without an implementation.
type emptyResolver struct{}

func (emptyResolver) Resolve(Tag, string) (any, error) { return nil, nil }

func greeterChain(t *testing.T) *Chain {
	t.Helper()

	c := New()
	require.NoError(t, c.Register("v1", ""))
	require.NoError(t, c.Register("v2", "v1"))
	require.NoError(t, c.Override("v1", "greet", greet(func(n string) string { return "hello " + n })))
	require.NoError(t, c.Override("v1", "count", 3))
	return c
}

//
// -----------------------------------------------------------------------------
// SafeResolve
// -----------------------------------------------------------------------------

// TestSafeResolve_RecoversFromPanic verifies panics inside a Resolver become errors.
func TestSafeResolve_RecoversFromPanic(t *testing.T) {
	t.Parallel()

	impl, err := SafeResolve(panicResolver{}, "v1", "greet")
	require.Error(t, err)
	assert.Nil(t, impl)
	assert.True(t, errors.Is(err, ErrResolverPanic), "expected ErrResolverPanic wrapping, got: %v", err)
	assert.Contains(t, err.Error(), "boom")
}

// TestSafeResolve_NilChain verifies a nil *Chain is reported, not crashed on.
func TestSafeResolve_NilChain(t *testing.T) {
	t.Parallel()

	var c *Chain
	_, err := SafeResolve(c, "v1", "greet")
	assert.ErrorIs(t, err, ErrResolverPanic)
}

func TestSafeResolve_PassesThrough(t *testing.T) {
	t.Parallel()

	c := greeterChain(t)

	impl, err := SafeResolve(c, "v2", "count")
	require.NoError(t, err)
	assert.Equal(t, 3, impl)

	_, err = SafeResolve(c, "v3", "count")
	var unk UnknownVersionError
	assert.True(t, errors.As(err, &unk))
}

//
// -----------------------------------------------------------------------------
// ResolveAs / TryResolveAs / MustResolveAs
// -----------------------------------------------------------------------------

func TestResolveAs(t *testing.T) {
	t.Parallel()

	c := greeterChain(t)

	g, ok := ResolveAs[greet](c, "v2", "greet")
	require.True(t, ok)
	assert.Equal(t, "hello ada", g("ada"))

	_, ok = ResolveAs[greet](c, "v2", "count")
	assert.False(t, ok)

	_, ok = ResolveAs[greet](c, "v9", "greet")
	assert.False(t, ok)
}

// TestTryResolveAs_WrongType verifies the stored type is reported.
func TestTryResolveAs_WrongType(t *testing.T) {
	t.Parallel()

	c := greeterChain(t)

	_, err := TryResolveAs[greet](c, "v2", "count")
	require.Error(t, err)

	var wt WrongTypeImplementationError
	require.True(t, errors.As(err, &wt))
	assert.Equal(t, Tag("v2"), wt.Tag)
	assert.Equal(t, "count", wt.Operation)
	assert.Equal(t, "int", wt.GotType)
	assert.Equal(t, `chain: implementation of "count" for version "v2" has wrong type (int)`, err.Error())
}

// TestTryResolveAs_PropagatesResolutionError verifies chain errors are returned unchanged.
func TestTryResolveAs_PropagatesResolutionError(t *testing.T) {
	t.Parallel()

	c := greeterChain(t)

	_, err := TryResolveAs[greet](c, "v2", "missing")
	var unres UnresolvedOperationError
	require.True(t, errors.As(err, &unres))
	assert.Equal(t, "missing", unres.Operation)
}

// TestTryResolveAs_NilImplementation verifies a resolver returning (nil, nil)
// yields WrongTypeImplementationError instead of panicking.
func TestTryResolveAs_NilImplementation(t *testing.T) {
	t.Parallel()

	var f func()
	require.NotPanics(t, func() {
		f, _ = TryResolveAs[func()](emptyResolver{}, "v1", "op")
	})
	assert.Nil(t, f)

	_, err := TryResolveAs[func()](emptyResolver{}, "v1", "op")
	var wt WrongTypeImplementationError
	require.True(t, errors.As(err, &wt))
	assert.Equal(t, "<nil>", wt.GotType)

	_, ok := ResolveAs[func()](emptyResolver{}, "v1", "op")
	assert.False(t, ok)

	require.Panics(t, func() {
		_ = MustResolveAs[func()](emptyResolver{}, "v1", "op")
	})
}

func TestIsNil(t *testing.T) {
	t.Parallel()

	var (
		fn  func()
		ptr *int
		err error
	)
	assert.True(t, isNil(nil))
	assert.True(t, isNil(fn))
	assert.True(t, isNil(ptr))
	assert.True(t, isNil(err))
	assert.False(t, isNil(0))
	assert.False(t, isNil(""))
	assert.False(t, isNil(func() {}))
}

func TestMustResolveAs(t *testing.T) {
	t.Parallel()

	c := greeterChain(t)

	assert.Equal(t, 3, MustResolveAs[int](c, "v2", "count"))
	require.PanicsWithError(t, `chain: unknown version "v5"`, func() {
		_ = MustResolveAs[int](c, "v5", "count")
	})
}

//
// -----------------------------------------------------------------------------
// Snapshot internals
// -----------------------------------------------------------------------------

// TestClone_Independent verifies a cloned snapshot does not alias the original index.
func TestClone_Independent(t *testing.T) {
	t.Parallel()

	c := greeterChain(t)
	orig := c.load()
	cp := orig.clone()

	cp.layers["v3"] = &layer{tag: "v3", predecessor: "v2"}
	cp.order = append(cp.order, "v3")

	assert.Len(t, orig.layers, 2)
	assert.Equal(t, []Tag{"v1", "v2"}, orig.order)
	assert.Same(t, orig.layers["v1"], cp.layers["v1"])
}
