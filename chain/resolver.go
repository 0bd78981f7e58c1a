package chain

import (
	"fmt"
)

// Resolver looks up the implementation of an operation for a version.
//
// It is intentionally:
// - read-only
// - side effect free
//
// *Chain implements Resolver.
//
// Expected usage:
//
//	impl, err := r.Resolve("v3", "formatResponse")
type Resolver interface {
	Resolve(tag Tag, op string) (any, error)
}

var _ Resolver = (*Chain)(nil)

// SafeResolve calls r.Resolve and converts panics into errors wrapping ErrResolverPanic.
//
// A nil Resolver is reported the same way rather than crashing the caller.
func SafeResolve(r Resolver, tag Tag, op string) (impl any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			impl = nil
			err = fmt.Errorf("%w: %v", ErrResolverPanic, rec)
		}
	}()
	return r.Resolve(tag, op)
}

// ResolveAs resolves op for tag and returns it typed as F.
//
// ok is false if resolution fails or the implementation is not an F.
func ResolveAs[F any](r Resolver, tag Tag, op string) (F, bool) {
	var zero F
	raw, err := SafeResolve(r, tag, op)
	if err != nil {
		return zero, false
	}
	f, ok := raw.(F)
	return f, ok
}

// TryResolveAs resolves op for tag and returns it typed as F.
//
// It returns the resolution error unchanged, or WrongTypeImplementationError if
// the implementation exists but is not an F.
func TryResolveAs[F any](r Resolver, tag Tag, op string) (F, error) {
	var zero F
	raw, err := SafeResolve(r, tag, op)
	if err != nil {
		return zero, err
	}
	f, ok := raw.(F)
	if !ok {
		return zero, WrongTypeImplementationError{
			Tag:       tag,
			Operation: op,
			GotType:   fmt.Sprintf("%T", raw),
		}
	}
	return f, nil
}

// MustResolveAs is TryResolveAs that panics on error.
// Useful at startup where an unresolvable operation should fail fast.
func MustResolveAs[F any](r Resolver, tag Tag, op string) F {
	f, err := TryResolveAs[F](r, tag, op)
	if err != nil {
		panic(err)
	}
	return f
}
