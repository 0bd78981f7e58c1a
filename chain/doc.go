// Package chain implements an API version-compatibility ladder.
//
// Each version is a layer {tag, predecessor, overrides}. A version inherits
// every operation of its predecessor unless it overrides it, and resolution is
// an explicit walk from the requested version toward the root:
//
//	v1 (root) -- defines formatResponse, formatValidationErrors
//	 └─ v2    -- overrides nothing (pass-through)
//	     └─ v3 -- overrides formatResponse
//
//	Resolve("v3", "formatResponse")         -> v3 implementation
//	Resolve("v3", "formatValidationErrors") -> v1 implementation
//	Resolve("v2", "formatResponse")         -> v1 implementation
//
// The ladder is strictly linear: every non-root version extends the current
// head and orders after it. Operations are an open, string-keyed set and
// implementations are stored as any; use ResolveAs / TryResolveAs /
// MustResolveAs for typed retrieval.
//
// Registration is expected to happen once at startup. Writers are serialized
// and publish immutable snapshots, so readers never block. Call Seal when
// wiring is complete to reject late registration.
//
// Errors are struct types (UnknownVersionError, DuplicateVersionError,
// DuplicateOverrideError, UnresolvedOperationError, ...) so tests and callers
// can assert on them with errors.As.
//
// Import
//
//	"github.com/sghaida/verchain/chain"
package chain
