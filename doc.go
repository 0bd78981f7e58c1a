// Package verchain models API versions as an explicit compatibility ladder.
//
// Each version inherits every behavior of its predecessor and overrides only
// what it changes. Instead of a deep V1 -> V2 -> V3 type hierarchy, versions
// are data records {tag, predecessor, overrides} and resolution is an explicit
// walk toward the root.
//
// Package layout:
//   - chain: tags, the ladder registry (Register / Override / Resolve / Trace) and typed errors
//   - manifest: YAML description of a ladder plus the catalog of named implementations it binds to
//   - contract: the response and validation-error formatters every version exposes,
//     and the default v1 -> v2 -> v3 ladder
//   - internal/httpapi: gin dispatcher selecting the version from /api/:version or X-Api-Version
//   - cmd/verchain: CLI to inspect (versions, resolve, check) and serve a ladder
//   - examples/ladder: hand-wired ladder, runnable
//
// Wiring stays explicit: register versions once at startup, seal the chain,
// and let request handlers resolve lock-free.
package verchain
