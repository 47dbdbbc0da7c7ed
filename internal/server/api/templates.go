// Package api provides HTTP API handlers for the unistroke recognition service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/raskell/unistroke/internal/app"
	"github.com/raskell/unistroke/internal/store"
	"github.com/raskell/unistroke/internal/stroke"
)

// TemplateHandler handles HTTP requests for template resources.
type TemplateHandler struct {
	app   *app.App
	store *store.Store
}

// NewTemplateHandler creates a new TemplateHandler backed by the given
// application and store.
func NewTemplateHandler(a *app.App, s *store.Store) *TemplateHandler {
	return &TemplateHandler{app: a, store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *TemplateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/templates, /api/templates/{id},
	// /api/templates/{id}/train
	path := strings.TrimPrefix(r.URL.Path, "/api/templates")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/templates
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	parts := strings.Split(path, "/")
	id := parts[0]

	if len(parts) == 2 && parts[1] == "train" {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.train(w, r, id)
		return
	}

	if len(parts) != 1 {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	// Item endpoint: /api/templates/{id}
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createTemplateRequest struct {
	Name   string         `json:"name"`
	Points []stroke.Point `json:"points"`
}

type updateTemplateRequest struct {
	Name string `json:"name"`
}

type templateResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Points    int    `json:"points"`
	Samples   int    `json:"samples"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type listTemplatesResponse struct {
	Templates []templateResponse `json:"templates"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Template to a templateResponse.
func toResponse(t *store.Template) templateResponse {
	return templateResponse{
		ID:        t.ID,
		Name:      t.Name,
		Points:    t.Points,
		Samples:   t.Samples,
		CreatedAt: t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: t.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/templates and returns all templates.
func (h *TemplateHandler) list(w http.ResponseWriter, r *http.Request) {
	templates, err := h.store.Templates().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list templates")
		return
	}

	response := listTemplatesResponse{
		Templates: make([]templateResponse, 0, len(templates)),
	}

	for _, t := range templates {
		response.Templates = append(response.Templates, toResponse(t))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/templates/{id} and returns a single template.
func (h *TemplateHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	template, err := h.store.Templates().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Template not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get template")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(template))
}

// create handles POST /api/templates and registers a new template from a
// raw reference stroke.
func (h *TemplateHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	template, err := h.app.CreateTemplate(req.Name, stroke.Path(req.Points))
	if err != nil {
		if errors.Is(err, stroke.ErrDegeneratePath) {
			writeError(w, http.StatusBadRequest, "Path has too few distinct points")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create template")
		return
	}

	row, err := h.store.Templates().GetByID(template.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get template")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(row))
}

// update handles PUT /api/templates/{id} and renames a template.
func (h *TemplateHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req updateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	if err := h.app.RenameTemplate(id, req.Name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Template not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update template")
		return
	}

	row, err := h.store.Templates().GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get template")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(row))
}

// delete handles DELETE /api/templates/{id} and removes a template.
func (h *TemplateHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.app.DeleteTemplate(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Template not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete template")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// train handles POST /api/templates/{id}/train and rebuilds the
// template's path from its recorded samples.
func (h *TemplateHandler) train(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.Templates().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Template not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get template")
		return
	}

	if err := h.app.TrainTemplate(id); err != nil {
		if errors.Is(err, stroke.ErrNoSamples) {
			writeError(w, http.StatusBadRequest, "Template has no recorded samples")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to train template")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
