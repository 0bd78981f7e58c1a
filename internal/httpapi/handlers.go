package httpapi

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/sghaida/verchain/chain"
)

// Handlers serves the version discovery and demo endpoints.
type Handlers struct {
	Chain          *chain.Chain
	DefaultVersion chain.Tag
	Responder      *Responder
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// VersionsResponse is the body of GET /versions.
type VersionsResponse struct {
	Versions []string `json:"versions"`
	Root     string   `json:"root"`
	Latest   string   `json:"latest"`
	Default  string   `json:"default"`
}

// Versions lists the ladder. It is not itself versioned.
func (h *Handlers) Versions(c *gin.Context) {
	tags := h.Chain.Versions()
	out := VersionsResponse{
		Versions: make([]string, len(tags)),
		Root:     h.Chain.Root().String(),
		Latest:   h.Chain.Head().String(),
		Default:  h.DefaultVersion.String(),
	}
	for i, t := range tags {
		out.Versions[i] = t.String()
	}
	c.JSON(http.StatusOK, out)
}

// OperationView describes one resolved operation.
type OperationView struct {
	Name      string   `json:"name"`
	Provider  string   `json:"provider"`
	Inherited bool     `json:"inherited"`
	Path      []string `json:"path"`
}

// ContractView is the payload of GET /api/:version/contract.
type ContractView struct {
	Version     string          `json:"version"`
	Predecessor string          `json:"predecessor,omitempty"`
	Overrides   []string        `json:"overrides"`
	Operations  []OperationView `json:"operations"`
}

// Contract reports which version provides each operation for the requested version.
func (h *Handlers) Contract(c *gin.Context) {
	v := VersionFrom(c)

	resolved, err := h.Chain.Contract(v)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	overrides, err := h.Chain.Overrides(v)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	pred, _ := h.Chain.Predecessor(v)

	view := ContractView{
		Version:     v.String(),
		Predecessor: pred.String(),
		Overrides:   overrides,
		Operations:  make([]OperationView, 0, len(resolved)),
	}
	for name, r := range resolved {
		path := make([]string, len(r.Path))
		for i, t := range r.Path {
			path[i] = t.String()
		}
		view.Operations = append(view.Operations, OperationView{
			Name:      name,
			Provider:  r.Provider.String(),
			Inherited: r.Inherited(),
			Path:      path,
		})
	}
	sort.Slice(view.Operations, func(i, j int) bool {
		return view.Operations[i].Name < view.Operations[j].Name
	})

	h.Responder.Respond(c, http.StatusOK, view)
}

// EchoRequest is validated by gin's binding and echoed back.
type EchoRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Plan  string `json:"plan" binding:"omitempty,oneof=free pro"`
}

// Echo validates the body and returns it through the version's response format.
func (h *Handlers) Echo(c *gin.Context) {
	var req EchoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Responder.RespondBindError(c, err)
		return
	}
	h.Responder.Respond(c, http.StatusOK, req)
}
