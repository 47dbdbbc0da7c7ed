package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/raskell/unistroke/internal/store"
)

// SamplesHandler handles HTTP requests for recorded sample resources.
type SamplesHandler struct {
	store *store.Store
}

// NewSamplesHandler creates a new SamplesHandler with the given store.
func NewSamplesHandler(s *store.Store) *SamplesHandler {
	return &SamplesHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/templates/{id}/samples
func (h *SamplesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/templates/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 || parts[1] != "samples" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	templateID := parts[0]

	switch r.Method {
	case http.MethodGet:
		h.list(w, r, templateID)
	case http.MethodPost:
		h.create(w, r, templateID)
	case http.MethodDelete:
		h.delete(w, r, templateID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request types

type createSamplesRequest struct {
	Samples []json.RawMessage `json:"samples"`
}

// Response types

type sampleResponse struct {
	ID          int64           `json:"id"`
	TemplateID  string          `json:"template_id"`
	SampleIndex int             `json:"sample_index"`
	Data        json.RawMessage `json:"data"`
	CreatedAt   string          `json:"created_at"`
}

type listSamplesResponse struct {
	Samples []sampleResponse `json:"samples"`
}

// list handles GET /api/templates/{id}/samples
func (h *SamplesHandler) list(w http.ResponseWriter, r *http.Request, templateID string) {
	samples, err := h.store.Samples().GetByTemplateID(templateID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list samples")
		return
	}

	response := listSamplesResponse{
		Samples: make([]sampleResponse, 0, len(samples)),
	}

	for _, s := range samples {
		response.Samples = append(response.Samples, sampleResponse{
			ID:          s.ID,
			TemplateID:  s.TemplateID,
			SampleIndex: s.SampleIndex,
			Data:        s.Data,
			CreatedAt:   s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// create handles POST /api/templates/{id}/samples
func (h *SamplesHandler) create(w http.ResponseWriter, r *http.Request, templateID string) {
	// Verify the template exists
	if _, err := h.store.Templates().GetByID(templateID); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "Template not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to verify template")
		return
	}

	var req createSamplesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Samples) == 0 {
		writeError(w, http.StatusBadRequest, "At least one sample is required")
		return
	}

	if err := h.store.Samples().Create(templateID, req.Samples); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save samples")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// delete handles DELETE /api/templates/{id}/samples and clears all
// recorded samples for the template.
func (h *SamplesHandler) delete(w http.ResponseWriter, r *http.Request, templateID string) {
	if _, err := h.store.Templates().GetByID(templateID); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "Template not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to verify template")
		return
	}

	if err := h.store.Samples().DeleteByTemplateID(templateID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete samples")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
