package app

import "github.com/raskell/unistroke/internal/stroke"

// Recorder accumulates a stroke between Start and Stop, dropping
// consecutive duplicate points so held-still input does not bloat the
// path. A Recorder serves one input source and is not safe for
// concurrent use.
type Recorder struct {
	path   stroke.Path
	active bool
}

// NewRecorder creates an idle Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start begins a new recording, discarding any previous one.
func (r *Recorder) Start() {
	r.path = make(stroke.Path, 0, 64)
	r.active = true
}

// Active reports whether a recording is in progress.
func (r *Recorder) Active() bool {
	return r.active
}

// Add appends a point to the current recording. Points received while
// idle and points equal to the previous one are ignored.
func (r *Recorder) Add(x, y float64) {
	if !r.active || !r.path.IsNewPoint(x, y) {
		return
	}
	r.path = append(r.path, stroke.Point{X: x, Y: y})
}

// Stop ends the recording and returns the captured path.
func (r *Recorder) Stop() stroke.Path {
	r.active = false
	path := r.path
	r.path = nil
	return path
}
