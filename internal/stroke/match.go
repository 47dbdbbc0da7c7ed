package stroke

import (
	"errors"
	"math"
)

// Default search parameters for FindMatchingTemplateWithDefaults.
const (
	// DefaultAngleWindow bounds the rotation search to ±45 degrees.
	DefaultAngleWindow = math.Pi / 4
	// DefaultAngleTolerance stops the search once the bracket narrows
	// to 2 degrees.
	DefaultAngleTolerance = math.Pi / 90
)

// maxSearchIterations caps the golden-section search on numerically
// pathological input. The search then returns the best distance found.
const maxSearchIterations = 100

// goldenRatio is the interval reduction factor of the golden-section
// search, (sqrt(5)-1)/2.
var goldenRatio = 0.5 * (math.Sqrt(5) - 1)

// ErrEmptyTemplateSet is returned when matching is attempted against a
// set with no templates.
var ErrEmptyTemplateSet = errors.New("empty template set: nothing to match against")

// Match represents a matching result between a candidate and a template.
type Match struct {
	Template *Template // The matched template
	Score    float64   // Similarity score, 1.0 is a perfect match
	Distance float64   // Mean point distance at the best alignment angle
}

// PathDistance returns the mean Euclidean distance between corresponding
// points of two normalized paths. Paths of different lengths cannot be
// compared point by point and score the worst possible distance.
func PathDistance(a, b NormalizedPath) float64 {
	if len(a) != len(b) {
		return math.MaxFloat64
	}

	var d float64
	for i := range a {
		d += a[i].DistanceTo(b[i])
	}
	return d / float64(len(a))
}

// DistanceAtAngle rotates the candidate by the given angle and returns
// its PathDistance to the template.
func DistanceAtAngle(candidate, template NormalizedPath, radians float64) float64 {
	rotated := Path(candidate).RotateBy(radians)
	return PathDistance(NormalizedPath(rotated), template)
}

// OptimalDistance finds the rotation angle within ±window radians that
// minimizes the distance between candidate and template, using
// golden-section search. The bracket shrinks by the golden ratio each
// iteration until its width falls below tolerance or the iteration cap
// is hit. Returns the minimum distance found, not the angle.
func OptimalDistance(candidate, template NormalizedPath, window, tolerance float64) float64 {
	a, b := -window, window

	x1 := goldenRatio*a + (1-goldenRatio)*b
	f1 := DistanceAtAngle(candidate, template, x1)
	x2 := goldenRatio*b + (1-goldenRatio)*a
	f2 := DistanceAtAngle(candidate, template, x2)

	for i := 0; i < maxSearchIterations && math.Abs(b-a) > tolerance; i++ {
		if f1 < f2 {
			b = x2
			x2, f2 = x1, f1
			x1 = goldenRatio*a + (1-goldenRatio)*b
			f1 = DistanceAtAngle(candidate, template, x1)
		} else {
			a = x1
			x1, f1 = x2, f2
			x2 = goldenRatio*b + (1-goldenRatio)*a
			f2 = DistanceAtAngle(candidate, template, x2)
		}
	}

	return math.Min(f1, f2)
}

// FindMatchingTemplate scores the candidate against every template in the
// set and returns the best match. The score is derived from the winning
// distance relative to half the diagonal of the reference square; it is
// near 1.0 for close matches and can drop below zero for very poor ones.
//
// Ties keep the first-encountered minimum; the set iterates in insertion
// order, so the result is reproducible. Returns ErrEmptyTemplateSet when
// the set has no templates.
func FindMatchingTemplate(candidate NormalizedPath, set *TemplateSet, squareSize, window, tolerance float64) (Match, error) {
	if set.Len() == 0 {
		return Match{}, ErrEmptyTemplateSet
	}

	halfDiagonal := 0.5 * math.Sqrt(2*squareSize*squareSize)

	best := Match{Distance: math.Inf(1)}
	for _, template := range set.Templates() {
		d := OptimalDistance(candidate, template.Path, window, tolerance)
		if d < best.Distance {
			best = Match{
				Template: template,
				Score:    1 - d/halfDiagonal,
				Distance: d,
			}
		}
	}

	return best, nil
}

// FindMatchingTemplateWithDefaults is FindMatchingTemplate with the
// default reference square and search parameters.
func FindMatchingTemplateWithDefaults(candidate NormalizedPath, set *TemplateSet) (Match, error) {
	return FindMatchingTemplate(candidate, set, SquareSize, DefaultAngleWindow, DefaultAngleTolerance)
}
