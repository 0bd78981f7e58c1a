package contract

import (
	"github.com/sghaida/verchain/chain"
)

// Envelope wraps every successful response body.
type Envelope struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta carries response metadata added in v3.
type Meta struct {
	Version string `json:"version"`
}

// ValidationBody is the v1 validation failure body.
type ValidationBody struct {
	Message string           `json:"message"`
	Errors  ValidationErrors `json:"errors"`
}

// ValidationMessage is the summary line of a validation failure.
const ValidationMessage = "The given data was invalid."

// FormatResponseV1 wraps payload in {"data": ...}.
func FormatResponseV1(_ chain.Tag, payload any) any {
	return Envelope{Data: payload}
}

// FormatResponseV3 wraps payload and reports the version that served it.
func FormatResponseV3(v chain.Tag, payload any) any {
	return Envelope{Data: payload, Meta: &Meta{Version: v.String()}}
}

// FormatValidationErrorsV1 renders {"message": ..., "errors": {field: [...]}}.
func FormatValidationErrorsV1(_ chain.Tag, errs ValidationErrors) any {
	if errs == nil {
		errs = ValidationErrors{}
	}
	return ValidationBody{Message: ValidationMessage, Errors: errs}
}
