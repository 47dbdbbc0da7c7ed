// Package app wires the stroke recognizer to its template store and
// exposes the operations the HTTP surface is built on.
package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/raskell/unistroke/internal/store"
	"github.com/raskell/unistroke/internal/stroke"
	"github.com/raskell/unistroke/pkg/logger"
	"github.com/raskell/unistroke/pkg/metrics"
)

// ErrPathTooShort is returned when a recognition attempt's raw stroke
// is shorter than the configured minimum length.
var ErrPathTooShort = errors.New("path too short to recognize")

// Config holds configuration options for the application.
type Config struct {
	Store   *store.Store
	Log     logger.Logger
	Metrics *metrics.Manager

	// MinPathLength rejects strokes shorter than this, in input units.
	// Zero disables the check.
	MinPathLength float64

	// AngleWindow and AngleTolerance configure the rotation search, in
	// radians. Zero values fall back to the recognizer defaults.
	AngleWindow    float64
	AngleTolerance float64
}

// App owns the in-memory template set and coordinates it with the store.
type App struct {
	config  Config
	log     logger.Logger
	metrics *metrics.Manager
	trainer *stroke.Trainer

	mu  sync.RWMutex
	set *stroke.TemplateSet
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.AngleWindow <= 0 {
		config.AngleWindow = stroke.DefaultAngleWindow
	}
	if config.AngleTolerance <= 0 {
		config.AngleTolerance = stroke.DefaultAngleTolerance
	}

	log := config.Log
	if log == nil {
		log, _ = logger.New("info")
	}
	m := config.Metrics
	if m == nil {
		m = metrics.New()
	}

	return &App{
		config:  config,
		log:     log,
		metrics: m,
		trainer: stroke.NewTrainer(),
		set:     stroke.NewTemplateSet(),
	}
}

// Metrics returns the metrics manager used by this App.
func (a *App) Metrics() *metrics.Manager {
	return a.metrics
}

// LoadTemplates loads stored templates into the matching set. The
// persisted paths are already normalized, so loading does not
// re-normalize. Rows without points are skipped.
func (a *App) LoadTemplates() error {
	if a.config.Store == nil {
		return nil
	}

	rows, err := a.config.Store.Templates().List()
	if err != nil {
		return err
	}

	set := stroke.NewTemplateSet()
	for _, row := range rows {
		path, err := a.config.Store.Templates().GetPath(row.ID)
		if err != nil {
			a.log.Warn("failed to load template path",
				logger.String("template", row.Name), logger.Error(err))
			continue
		}

		template, err := stroke.NewTemplateFromNormalized(row.ID, row.Name, stroke.NormalizedPath(path))
		if err != nil {
			a.log.Warn("skipping template with empty path",
				logger.String("template", row.Name))
			continue
		}
		set.Add(template)
	}

	a.mu.Lock()
	a.set = set
	a.mu.Unlock()

	a.metrics.SetTemplatesLoaded(set.Len())
	a.log.Info("templates loaded", logger.Int("count", set.Len()))
	return nil
}

// TemplateCount returns the number of templates available for matching.
func (a *App) TemplateCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.set.Len()
}

// Recognize normalizes a raw stroke and matches it against the loaded
// templates. Returns ErrPathTooShort, stroke.ErrDegeneratePath, or
// stroke.ErrEmptyTemplateSet for inputs that cannot be matched.
func (a *App) Recognize(path stroke.Path) (stroke.Match, error) {
	start := time.Now()

	if a.config.MinPathLength > 0 && path.Length() < a.config.MinPathLength {
		a.metrics.RecordRecognition(metrics.OutcomeTooShort, time.Since(start))
		return stroke.Match{}, ErrPathTooShort
	}

	candidate, err := stroke.Normalize(path)
	if err != nil {
		a.metrics.RecordRecognition(metrics.OutcomeDegenerate, time.Since(start))
		return stroke.Match{}, err
	}

	a.mu.RLock()
	match, err := stroke.FindMatchingTemplate(candidate, a.set,
		stroke.SquareSize, a.config.AngleWindow, a.config.AngleTolerance)
	a.mu.RUnlock()
	if err != nil {
		a.metrics.RecordRecognition(metrics.OutcomeNoTemplate, time.Since(start))
		return stroke.Match{}, err
	}

	a.metrics.RecordRecognition(metrics.OutcomeMatched, time.Since(start))
	a.log.Debug("stroke recognized",
		logger.String("template", match.Template.Name),
		logger.Float64("score", match.Score))
	return match, nil
}

// CreateTemplate normalizes a reference path, persists it, and adds it
// to the matching set.
func (a *App) CreateTemplate(name string, path stroke.Path) (*stroke.Template, error) {
	template, err := stroke.NewTemplate(name, path)
	if err != nil {
		return nil, err
	}

	if a.config.Store != nil {
		row := &store.Template{
			ID:     template.ID,
			Name:   template.Name,
			Points: len(template.Path),
		}
		if err := a.config.Store.Templates().Create(row); err != nil {
			return nil, fmt.Errorf("failed to persist template: %w", err)
		}
		if err := a.config.Store.Templates().SavePath(template.ID, template.Path); err != nil {
			return nil, fmt.Errorf("failed to persist template path: %w", err)
		}
	}

	a.mu.Lock()
	a.set.Add(template)
	count := a.set.Len()
	a.mu.Unlock()

	a.metrics.SetTemplatesLoaded(count)
	a.log.Info("template created", logger.String("name", name), logger.String("id", template.ID))
	return template, nil
}

// DeleteTemplate removes a template from the store and the matching set.
func (a *App) DeleteTemplate(id string) error {
	if a.config.Store != nil {
		if err := a.config.Store.Templates().Delete(id); err != nil {
			return err
		}
	}

	a.mu.Lock()
	a.set.Remove(id)
	count := a.set.Len()
	a.mu.Unlock()

	a.metrics.SetTemplatesLoaded(count)
	return nil
}

// RenameTemplate changes a template's name in the store and in the
// matching set.
func (a *App) RenameTemplate(id, name string) error {
	if a.config.Store != nil {
		row, err := a.config.Store.Templates().GetByID(id)
		if err != nil {
			return err
		}
		row.Name = name
		if err := a.config.Store.Templates().Update(row); err != nil {
			return err
		}
	}

	// Templates are immutable once in the set; a rename swaps in a copy.
	a.mu.Lock()
	for _, template := range a.set.Templates() {
		if template.ID == id {
			a.set.Replace(&stroke.Template{ID: id, Name: name, Path: template.Path})
			break
		}
	}
	a.mu.Unlock()
	return nil
}

// TrainTemplate rebuilds a template's path from its recorded samples:
// the samples are averaged into one reference stroke, normalized, and
// stored in place of the previous path.
func (a *App) TrainTemplate(id string) error {
	if a.config.Store == nil {
		return store.ErrNotFound
	}

	samples, err := a.config.Store.Samples().GetByTemplateID(id)
	if err != nil {
		return err
	}

	data := make([]json.RawMessage, 0, len(samples))
	for _, sample := range samples {
		data = append(data, sample.Data)
	}

	averaged, err := a.trainer.Train(data)
	if err != nil {
		return fmt.Errorf("failed to train template: %w", err)
	}

	normalized, err := stroke.Normalize(averaged)
	if err != nil {
		return err
	}

	if err := a.config.Store.Templates().SavePath(id, normalized); err != nil {
		return err
	}

	a.mu.Lock()
	for _, template := range a.set.Templates() {
		if template.ID == id {
			a.set.Replace(&stroke.Template{ID: id, Name: template.Name, Path: normalized})
			break
		}
	}
	a.mu.Unlock()

	a.log.Info("template trained", logger.String("id", id), logger.Int("samples", len(samples)))
	return nil
}
