// Package contract holds the behavior contract every API version exposes:
// response formatting and validation-error formatting, plus the default
// v1 -> v2 -> v3 ladder built from the embedded chain.yaml.
//
//   - v1 defines both operations.
//   - v2 is a pass-through layer.
//   - v3 overrides formatResponse to attach version metadata.
package contract

import (
	_ "embed"
	"fmt"

	"github.com/sghaida/verchain/chain"
	"github.com/sghaida/verchain/manifest"
)

// Operation names. The namespace is open; these are the ones every version
// resolves.
const (
	OpFormatResponse         = "formatResponse"
	OpFormatValidationErrors = "formatValidationErrors"
)

// Catalog names referenced by chain.yaml.
const (
	ResponseV1   = "response.v1"
	ResponseV3   = "response.v3"
	ValidationV1 = "validation.v1"
)

// ResponseFormatter renders a successful payload for version v.
type ResponseFormatter func(v chain.Tag, payload any) any

// ValidationErrorFormatter renders request validation failures for version v.
type ValidationErrorFormatter func(v chain.Tag, errs ValidationErrors) any

//go:embed chain.yaml
var defaultManifest []byte

// DefaultManifest returns the embedded manifest source.
func DefaultManifest() []byte {
	out := make([]byte, len(defaultManifest))
	copy(out, defaultManifest)
	return out
}

// Catalog returns every implementation this package ships, keyed by catalog name.
func Catalog() *manifest.Catalog {
	return manifest.NewCatalog().
		Provide(ResponseV1, ResponseFormatter(FormatResponseV1)).
		Provide(ResponseV3, ResponseFormatter(FormatResponseV3)).
		Provide(ValidationV1, ValidationErrorFormatter(FormatValidationErrorsV1))
}

// Default builds the embedded ladder and seals it.
func Default() (*chain.Chain, error) {
	return Build("")
}

// Build loads the manifest at path (or the embedded one when path is empty),
// binds it to Catalog, checks every version resolves both operations, and
// seals the result.
func Build(path string) (*chain.Chain, error) {
	var (
		m   *manifest.Manifest
		err error
	)
	if path == "" {
		m, err = manifest.Parse(defaultManifest)
	} else {
		m, err = manifest.Load(path)
	}
	if err != nil {
		return nil, err
	}

	c, err := m.Build(Catalog())
	if err != nil {
		return nil, err
	}
	if err := Check(c); err != nil {
		return nil, err
	}
	c.Seal()
	return c, nil
}

// Check verifies every registered version resolves both contract operations to
// the expected function types.
func Check(r interface {
	chain.Resolver
	Versions() []chain.Tag
}) error {
	for _, v := range r.Versions() {
		if _, err := ResponseFor(r, v); err != nil {
			return fmt.Errorf("contract: %w", err)
		}
		if _, err := ValidationFor(r, v); err != nil {
			return fmt.Errorf("contract: %w", err)
		}
	}
	return nil
}

// ResponseFor resolves the response formatter for version v.
func ResponseFor(r chain.Resolver, v chain.Tag) (ResponseFormatter, error) {
	return chain.TryResolveAs[ResponseFormatter](r, v, OpFormatResponse)
}

// ValidationFor resolves the validation-error formatter for version v.
func ValidationFor(r chain.Resolver, v chain.Tag) (ValidationErrorFormatter, error) {
	return chain.TryResolveAs[ValidationErrorFormatter](r, v, OpFormatValidationErrors)
}
