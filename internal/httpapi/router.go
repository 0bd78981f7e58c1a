package httpapi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/sghaida/verchain/chain"
	"github.com/sghaida/verchain/internal/logger"
)

// RouterConfig carries the dependencies of the HTTP router.
type RouterConfig struct {
	Chain          *chain.Chain
	Logger         *logger.Logger
	AllowedOrigins []string

	// DefaultVersion serves requests that carry no version. Empty means the head.
	DefaultVersion string
}

var registerTagNames sync.Once

// useJSONFieldNames makes validator report fields by their json name so
// validation bodies use the names clients sent.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// NewRouter builds the gin engine with versioned and unversioned routes.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	if cfg.Chain == nil {
		return nil, errors.New("httpapi: nil chain")
	}
	if cfg.Chain.Root() == "" {
		return nil, errors.New("httpapi: chain has no versions")
	}

	def := cfg.Chain.Head()
	if cfg.DefaultVersion != "" {
		tag, err := chain.ParseTag(cfg.DefaultVersion)
		if err != nil {
			return nil, fmt.Errorf("httpapi: default version: %w", err)
		}
		if !cfg.Chain.Has(tag) {
			return nil, fmt.Errorf("httpapi: default version: %w", chain.UnknownVersionError{Tag: tag})
		}
		def = tag
	}

	useJSONFieldNames()

	h := &Handlers{
		Chain:          cfg.Chain,
		DefaultVersion: def,
		Responder:      &Responder{Resolver: cfg.Chain, Log: cfg.Logger},
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(cfg.Logger))
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(CORS(cfg.AllowedOrigins))
	}

	// ===============
	// || Discovery ||
	// ===============
	router.GET("/healthcheck", HealthCheck)
	router.GET("/versions", h.Versions)

	// ===============
	// || Versioned ||
	// ===============
	versioned := router.Group("/api/:" + VersionParam)
	versioned.Use(Version(cfg.Chain, def))
	versioned.GET("/contract", h.Contract)
	versioned.POST("/echo", h.Echo)

	// Header or default version.
	unversioned := router.Group("/api")
	unversioned.Use(Version(cfg.Chain, def))
	unversioned.GET("/contract", h.Contract)
	unversioned.POST("/echo", h.Echo)

	return router, nil
}
