// Package testutil provides reference stroke paths for tests.
package testutil

import (
	"math"

	"github.com/raskell/unistroke/internal/stroke"
)

// Circle approximates a circle with n points of the given radius
// centered at (cx, cy).
func Circle(n int, cx, cy, r float64) stroke.Path {
	path := make(stroke.Path, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		path[i] = stroke.Point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	return path
}

// ZigZag builds a sawtooth stroke with the given number of teeth
// spanning width by height.
func ZigZag(teeth int, width, height float64) stroke.Path {
	path := make(stroke.Path, 0, 2*teeth+1)
	step := width / float64(2*teeth)
	for i := 0; i <= 2*teeth; i++ {
		y := 0.0
		if i%2 == 1 {
			y = height
		}
		path = append(path, stroke.Point{X: float64(i) * step, Y: y})
	}
	return path
}

// Line builds a straight horizontal stroke with n points.
func Line(n int, length float64) stroke.Path {
	path := make(stroke.Path, n)
	for i := 0; i < n; i++ {
		path[i] = stroke.Point{X: length * float64(i) / float64(n-1), Y: 0}
	}
	return path
}
