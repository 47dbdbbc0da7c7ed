package stroke

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoSamples is returned by Train when there are no recorded samples
// to average.
var ErrNoSamples = errors.New("no samples to train from")

// Trainer averages recorded samples into a single reference path.
type Trainer struct{}

// NewTrainer creates a new Trainer instance.
func NewTrainer() *Trainer {
	return &Trainer{}
}

// RecordedSample is the stored form of one recorded stroke.
type RecordedSample struct {
	Points    []Point `json:"points"`
	Timestamp int64   `json:"timestamp"`
}

// Train averages multiple recorded stroke samples into a single raw path
// suitable for template creation. Each sample is resampled to NumPoints
// by arc length so paths of different lengths align before averaging.
func (t *Trainer) Train(samples []json.RawMessage) (Path, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	resampled := make([]Path, 0, len(samples))
	for i, raw := range samples {
		var sample RecordedSample
		if err := json.Unmarshal(raw, &sample); err != nil {
			return nil, fmt.Errorf("failed to parse sample %d: %w", i, err)
		}

		path := Path(sample.Points)
		if len(path) < 2 || path.Length() == 0 {
			return nil, fmt.Errorf("sample %d: %w", i, ErrDegeneratePath)
		}

		resampled = append(resampled, path.Resample(NumPoints))
	}

	n := float64(len(resampled))
	averaged := make(Path, NumPoints)
	for i := 0; i < NumPoints; i++ {
		var sumX, sumY float64
		for _, path := range resampled {
			sumX += path[i].X
			sumY += path[i].Y
		}
		averaged[i] = Point{X: sumX / n, Y: sumY / n}
	}

	return averaged, nil
}
