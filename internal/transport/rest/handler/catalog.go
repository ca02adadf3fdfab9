package handler

import (
	"containerquote/internal/engine"
	"containerquote/internal/model"
	"containerquote/internal/service"
	"containerquote/internal/transport/rest/middleware"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

// CatalogHandler handles configuration administration endpoints
type CatalogHandler struct {
	catalogSvc *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogSvc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// Create handles POST /v1/configurations
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAdminID(r.Context()) == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var cfg model.Configuration
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.catalogSvc.Create(r.Context(), &cfg)
	if err != nil {
		if errors.Is(err, engine.ErrMalformedConfig) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"configId": id})
}

// Update handles PUT /v1/configurations/{configId}
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAdminID(r.Context()) == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var cfg model.Configuration
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cfg.ID = mux.Vars(r)["configId"]

	if err := h.catalogSvc.Update(r.Context(), &cfg); err != nil {
		if errors.Is(err, engine.ErrMalformedConfig) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// Get handles GET /v1/configurations/{configId}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.catalogSvc.GetByID(r.Context(), mux.Vars(r)["configId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if cfg == nil {
		writeError(w, http.StatusNotFound, "configuration not found")
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// List handles GET /v1/configurations
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	configs, err := h.catalogSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"configurations": configs})
}

// Delete handles DELETE /v1/configurations/{configId}
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogSvc.Delete(r.Context(), mux.Vars(r)["configId"]); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
