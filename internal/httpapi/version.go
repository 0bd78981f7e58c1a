package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sghaida/verchain/chain"
)

const (
	// VersionParam is the path segment carrying the target version: /api/:version/...
	VersionParam = "version"

	// VersionHeader selects a version for routes without a version segment.
	VersionHeader = "X-Api-Version"

	versionKey = "api_version"
)

// Version resolves the request's target version and stores it on the context.
//
// Precedence: the :version path segment, then the X-Api-Version header, then def.
// A malformed or unregistered version aborts with 404 unknown_version.
func Version(c *chain.Chain, def chain.Tag) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw := ctx.Param(VersionParam)
		if raw == "" {
			raw = strings.TrimSpace(ctx.GetHeader(VersionHeader))
		}

		tag := def
		if raw != "" {
			parsed, err := chain.ParseTag(raw)
			if err != nil {
				AbortWithError(ctx, err)
				return
			}
			tag = parsed
		}

		if !c.Has(tag) {
			AbortWithError(ctx, chain.UnknownVersionError{Tag: tag})
			return
		}

		ctx.Set(versionKey, tag)
		ctx.Header(VersionHeader, tag.String())
		ctx.Next()
	}
}

// VersionFrom returns the version stored by Version, or "" if none.
func VersionFrom(ctx *gin.Context) chain.Tag {
	v, ok := ctx.Get(versionKey)
	if !ok {
		return ""
	}
	tag, _ := v.(chain.Tag)
	return tag
}
