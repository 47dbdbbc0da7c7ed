package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/raskell/unistroke/internal/app"
	"github.com/raskell/unistroke/internal/server"
	"github.com/raskell/unistroke/internal/store"
	"github.com/raskell/unistroke/internal/stroke"
	"github.com/raskell/unistroke/internal/testutil"
)

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	application := app.New(app.Config{Store: s})
	srv := server.New(server.Config{Store: s, App: application})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	var templateID string

	t.Run("CreateTemplate", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{
			"name":   "circle",
			"points": testutil.Circle(64, 100, 100, 50),
		})
		resp, err := client.Post(ts.URL+"/api/templates", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("create template error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}

		var created struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		json.NewDecoder(resp.Body).Decode(&created)
		if created.ID == "" {
			t.Fatal("expected generated template ID")
		}
		templateID = created.ID
	})

	t.Run("Recognize", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{
			"points": testutil.Circle(48, 0, 0, 120),
		})
		resp, err := client.Post(ts.URL+"/api/recognize", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("recognize error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var match struct {
			ID    string  `json:"id"`
			Name  string  `json:"name"`
			Score float64 `json:"score"`
		}
		json.NewDecoder(resp.Body).Decode(&match)
		if match.Name != "circle" {
			t.Errorf("matched %s, want circle", match.Name)
		}
		if match.Score < 0.9 {
			t.Errorf("score = %g, want > 0.9", match.Score)
		}
	})

	t.Run("RecordSamplesAndTrain", func(t *testing.T) {
		samples := make([]json.RawMessage, 0, 3)
		for _, r := range []float64{45, 50, 55} {
			data, _ := json.Marshal(stroke.RecordedSample{
				Points: testutil.Circle(48, 100, 100, r),
			})
			samples = append(samples, data)
		}
		body, _ := json.Marshal(map[string]any{"samples": samples})

		resp, err := client.Post(
			ts.URL+"/api/templates/"+templateID+"/samples",
			"application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("record samples error = %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("samples status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}

		resp, err = client.Post(ts.URL+"/api/templates/"+templateID+"/train", "application/json", nil)
		if err != nil {
			t.Fatalf("train error = %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("train status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})

	t.Run("RecognizeAfterTraining", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{
			"points": testutil.Circle(48, 300, 300, 60),
		})
		resp, err := client.Post(ts.URL+"/api/recognize", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("recognize error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var match struct {
			ID string `json:"id"`
		}
		json.NewDecoder(resp.Body).Decode(&match)
		if match.ID != templateID {
			t.Errorf("matched %s, want %s", match.ID, templateID)
		}
	})

	t.Run("PersistenceAcrossRestart", func(t *testing.T) {
		reloaded := app.New(app.Config{Store: s})
		if err := reloaded.LoadTemplates(); err != nil {
			t.Fatalf("LoadTemplates() error = %v", err)
		}
		if reloaded.TemplateCount() != 1 {
			t.Fatalf("TemplateCount() = %d, want 1", reloaded.TemplateCount())
		}

		match, err := reloaded.Recognize(testutil.Circle(48, 0, 0, 90))
		if err != nil {
			t.Fatalf("Recognize() error = %v", err)
		}
		if match.Template.ID != templateID {
			t.Errorf("matched %s, want %s", match.Template.ID, templateID)
		}
	})

	t.Run("DeleteTemplate", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/templates/"+templateID, nil)
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("delete error = %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
		}

		body, _ := json.Marshal(map[string]any{
			"points": testutil.Circle(48, 0, 0, 90),
		})
		resp, err = client.Post(ts.URL+"/api/recognize", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("recognize error = %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusConflict {
			t.Fatalf("recognize after delete status = %d, want %d", resp.StatusCode, http.StatusConflict)
		}
	})
}
