package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/raskell/unistroke/internal/app"
	"github.com/raskell/unistroke/internal/stroke"
)

// RecognizeHandler handles one-shot recognition requests.
type RecognizeHandler struct {
	app *app.App
}

// NewRecognizeHandler creates a new RecognizeHandler backed by the given
// application.
func NewRecognizeHandler(a *app.App) *RecognizeHandler {
	return &RecognizeHandler{app: a}
}

type recognizeRequest struct {
	Points []stroke.Point `json:"points"`
}

type recognizeResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Distance float64 `json:"distance"`
}

// ServeHTTP handles POST /api/recognize.
func (h *RecognizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req recognizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	match, err := h.app.Recognize(stroke.Path(req.Points))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrPathTooShort):
			writeError(w, http.StatusBadRequest, "Path too short to recognize")
		case errors.Is(err, stroke.ErrDegeneratePath):
			writeError(w, http.StatusBadRequest, "Path has too few distinct points")
		case errors.Is(err, stroke.ErrEmptyTemplateSet):
			writeError(w, http.StatusConflict, "No templates registered")
		default:
			writeError(w, http.StatusInternalServerError, "Recognition failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, recognizeResponse{
		ID:       match.Template.ID,
		Name:     match.Template.Name,
		Score:    match.Score,
		Distance: match.Distance,
	})
}
