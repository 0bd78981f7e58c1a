package chain

import (
	"errors"
	"strconv"
)

var (
	// ErrSealed is returned by Register and Override once the chain has been sealed.
	ErrSealed = errors.New("chain: sealed, no further registration allowed")

	// ErrEmptyOperation is returned when an operation name is empty.
	ErrEmptyOperation = errors.New("chain: empty operation name")

	// ErrResolverPanic is returned by SafeResolve if a Resolver panics internally.
	ErrResolverPanic = errors.New("chain: panic during Resolve")
)

// InvalidTagError is returned when a string is not a well-formed version tag.
type InvalidTagError struct{ Value string }

// Error implements the error interface.
func (e InvalidTagError) Error() string {
	// Example: chain: invalid version tag "version-2"
	return "chain: invalid version tag " + strconv.Quote(e.Value)
}

// UnknownVersionError is returned when a referenced version was never registered.
type UnknownVersionError struct{ Tag Tag }

// Error implements the error interface.
func (e UnknownVersionError) Error() string {
	// Example: chain: unknown version "v4"
	return "chain: unknown version " + strconv.Quote(string(e.Tag))
}

// DuplicateVersionError is returned when a version tag is registered twice.
type DuplicateVersionError struct{ Tag Tag }

// Error implements the error interface.
func (e DuplicateVersionError) Error() string {
	return "chain: duplicate version " + strconv.Quote(string(e.Tag))
}

// RootExistsError is returned when a second version without a predecessor is registered.
type RootExistsError struct {
	Tag  Tag
	Root Tag
}

// Error implements the error interface.
func (e RootExistsError) Error() string {
	// Example: chain: cannot register "v2" as root, root is already "v1"
	return "chain: cannot register " + strconv.Quote(string(e.Tag)) +
		" as root, root is already " + strconv.Quote(string(e.Root))
}

// NonLinearChainError is returned when a registration would branch the ladder
// or break its ordering: the predecessor must be the current head and the new
// tag must order after it.
type NonLinearChainError struct {
	Tag         Tag
	Predecessor Tag
	Head        Tag
}

// Error implements the error interface.
func (e NonLinearChainError) Error() string {
	// Example: chain: "v3" must extend head "v2" with a later tag, got predecessor "v1"
	return "chain: " + strconv.Quote(string(e.Tag)) +
		" must extend head " + strconv.Quote(string(e.Head)) +
		" with a later tag, got predecessor " + strconv.Quote(string(e.Predecessor))
}

// DuplicateOverrideError is returned when a (version, operation) pair is overridden twice.
type DuplicateOverrideError struct {
	Tag       Tag
	Operation string
}

// Error implements the error interface.
func (e DuplicateOverrideError) Error() string {
	return "chain: duplicate override of " + strconv.Quote(e.Operation) +
		" in version " + strconv.Quote(string(e.Tag))
}

// NilImplementationError is returned when Override is called with a nil implementation.
type NilImplementationError struct {
	Tag       Tag
	Operation string
}

// Error implements the error interface.
func (e NilImplementationError) Error() string {
	return "chain: nil implementation for " + strconv.Quote(e.Operation) +
		" in version " + strconv.Quote(string(e.Tag))
}

// UnresolvedOperationError is returned when no version from Tag down to the root
// defines Operation. It always indicates a configuration defect.
type UnresolvedOperationError struct {
	Tag       Tag
	Operation string
}

// Error implements the error interface.
func (e UnresolvedOperationError) Error() string {
	// Example: chain: operation "formatResponse" unresolved for version "v3"
	return "chain: operation " + strconv.Quote(e.Operation) +
		" unresolved for version " + strconv.Quote(string(e.Tag))
}

// WrongTypeImplementationError is returned by TryResolveAs when the resolved
// implementation is not of the requested type.
type WrongTypeImplementationError struct {
	Tag       Tag
	Operation string

	// GotType is reflect.TypeOf(impl).String() for the resolved value.
	GotType string
}

// Error implements the error interface.
func (e WrongTypeImplementationError) Error() string {
	return "chain: implementation of " + strconv.Quote(e.Operation) +
		" for version " + strconv.Quote(string(e.Tag)) +
		" has wrong type (" + e.GotType + ")"
}
