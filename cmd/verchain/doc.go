// Command verchain inspects and serves an API version-compatibility ladder.
//
// The ladder comes from a YAML manifest (--manifest or VERCHAIN_MANIFEST); when
// none is given, the embedded v1 -> v2 -> v3 ladder from package contract is used.
//
// Subcommands
//
//	verchain versions                      # ladder, root first, with each version's overrides
//	verchain resolve v3 formatValidationErrors
//	verchain check --manifest ./chain.yaml # validate and print every resolved contract
//	verchain serve --addr :8080            # HTTP API, see internal/httpapi
//
// Example output
//
//	$ verchain resolve v3 formatValidationErrors
//	v3 formatValidationErrors -> v1 (path: v3 > v2 > v1)
//
// Exit codes
//
//   - 0: success
//   - 1: the ladder or the lookup failed (unknown version, unresolved operation, bad manifest)
//   - 2: bad invocation (wrong arguments, unknown flag, malformed version tag)
//
// serve reads VERCHAIN_* environment variables (see internal/config); flags win
// over the environment.
package main
