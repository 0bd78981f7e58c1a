package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sghaida/verchain/chain"
)

// Error codes rendered in the error envelope.
const (
	CodeUnknownVersion      = "unknown_version"
	CodeUnresolvedOperation = "unresolved_operation"
	CodeContractMismatch    = "contract_type_mismatch"
	CodeResolverPanic       = "resolver_panic"
	CodeBadRequest          = "bad_request"
	CodeInternal            = "internal_error"
)

// APIError is the message and machine-readable code of a failed request.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope is the JSON body of every error response.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Error pairs an underlying error with the HTTP status and code it maps to.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// FromChain classifies a resolution error.
//
// An unknown or malformed version is the client's problem (404); every other
// chain error is a configuration defect on our side (500).
func FromChain(err error) *Error {
	var (
		apiErr   *Error
		unknown  chain.UnknownVersionError
		invalid  chain.InvalidTagError
		unres    chain.UnresolvedOperationError
		wrongTyp chain.WrongTypeImplementationError
	)
	switch {
	case err == nil:
		return nil
	case errors.As(err, &apiErr):
		return apiErr
	case errors.As(err, &unknown), errors.As(err, &invalid):
		return &Error{Status: http.StatusNotFound, Code: CodeUnknownVersion, Err: err}
	case errors.As(err, &unres):
		return &Error{Status: http.StatusInternalServerError, Code: CodeUnresolvedOperation, Err: err}
	case errors.As(err, &wrongTyp):
		return &Error{Status: http.StatusInternalServerError, Code: CodeContractMismatch, Err: err}
	case errors.Is(err, chain.ErrResolverPanic):
		return &Error{Status: http.StatusInternalServerError, Code: CodeResolverPanic, Err: err}
	default:
		return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Err: err}
	}
}

// StatusFor returns the HTTP status err maps to.
func StatusFor(err error) int {
	if e := FromChain(err); e != nil {
		return e.Status
	}
	return http.StatusOK
}

// RespondError writes the error envelope.
func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// AbortWithError classifies err, writes the envelope, and stops the handler chain.
// A nil err is a no-op.
func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	e := FromChain(err)
	_ = c.Error(err)
	RespondError(c, e.Status, e.Code, e.Err)
	c.Abort()
}
