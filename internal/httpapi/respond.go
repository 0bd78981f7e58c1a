package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sghaida/verchain/chain"
	"github.com/sghaida/verchain/contract"
	"github.com/sghaida/verchain/internal/logger"
)

// Responder renders bodies through whatever formatter the request's version resolves to.
type Responder struct {
	Resolver chain.Resolver
	Log      *logger.Logger
}

// Respond formats payload with the version's formatResponse and writes it.
func (r *Responder) Respond(c *gin.Context, status int, payload any) {
	v := VersionFrom(c)
	format, err := contract.ResponseFor(r.Resolver, v)
	if err != nil {
		r.fail(c, v, contract.OpFormatResponse, err)
		return
	}
	c.JSON(status, format(v, payload))
}

// RespondBindError renders a binding failure. Validator failures go through the
// version's formatValidationErrors with 422; anything else (malformed JSON,
// wrong content type) is a plain 400.
func (r *Responder) RespondBindError(c *gin.Context, bindErr error) {
	errs, ok := contract.FromValidator(bindErr)
	if !ok {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, bindErr)
		return
	}

	v := VersionFrom(c)
	format, err := contract.ValidationFor(r.Resolver, v)
	if err != nil {
		r.fail(c, v, contract.OpFormatValidationErrors, err)
		return
	}
	c.JSON(http.StatusUnprocessableEntity, format(v, errs))
}

func (r *Responder) fail(c *gin.Context, v chain.Tag, op string, err error) {
	if r.Log != nil {
		r.Log.Error("contract resolution failed",
			"api_version", v.String(),
			"operation", op,
			"error", err,
		)
	}
	AbortWithError(c, err)
}
