package handler

import (
	"net/http"

	"github.com/artermis-ops/agency-mcp/internal/models"
	"github.com/artermis-ops/agency-mcp/internal/registry"
)

// RegistryHandler serves the tool catalog on GET|POST /v1. Discovery is a
// pure read of static data: both verbs return the identical payload.
type RegistryHandler struct {
	catalog *registry.Catalog
}

func NewRegistryHandler(catalog *registry.Catalog) *RegistryHandler {
	return &RegistryHandler{catalog: catalog}
}

type toolList struct {
	Tools []registry.Descriptor `json:"tools"`
}

// List handles GET|POST /v1
func (h *RegistryHandler) List(w http.ResponseWriter, r *http.Request) {
	models.WriteJSON(w, http.StatusOK, toolList{Tools: h.catalog.Descriptors()})
}
