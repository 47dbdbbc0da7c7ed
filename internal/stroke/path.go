// Package stroke implements unistroke gesture recognition: path
// normalization, rotation-robust distance scoring, and template matching.
package stroke

import (
	"math"
	"slices"
)

// Normalization constants shared by templates and candidates.
const (
	// NumPoints is the fixed number of points in a normalized path.
	NumPoints = 64
	// SquareSize is the side length of the reference square that
	// normalized paths are scaled to.
	SquareSize = 250.0
)

// Point represents a 2D point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance to another point.
func (p Point) DistanceTo(q Point) float64 {
	dx := q.X - p.X
	dy := q.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Path is an ordered sequence of 2D points as captured from input.
type Path []Point

// NormalizedPath is a path that has been resampled to NumPoints points,
// rotated so its indicative angle is zero, scaled to the reference square,
// and translated so its centroid sits at the origin. Treated as immutable
// once constructed.
type NormalizedPath []Point

// Length returns the total arc length of the path.
func (p Path) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += p[i-1].DistanceTo(p[i])
	}
	return total
}

// Centroid returns the mean of all points in the path.
func (p Path) Centroid() Point {
	var sumX, sumY float64
	for _, pt := range p {
		sumX += pt.X
		sumY += pt.Y
	}
	n := float64(len(p))
	return Point{X: sumX / n, Y: sumY / n}
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// BoundingBox returns the axis-aligned bounding box of the path.
func (p Path) BoundingBox() Rect {
	box := Rect{
		MinX: math.MaxFloat64,
		MinY: math.MaxFloat64,
		MaxX: -math.MaxFloat64,
		MaxY: -math.MaxFloat64,
	}
	for _, pt := range p {
		box.MinX = math.Min(box.MinX, pt.X)
		box.MinY = math.Min(box.MinY, pt.Y)
		box.MaxX = math.Max(box.MaxX, pt.X)
		box.MaxY = math.Max(box.MaxY, pt.Y)
	}
	return box
}

// IndicativeAngle returns the angle from the path's centroid to its first
// point, used for coarse rotational alignment during normalization.
func (p Path) IndicativeAngle() float64 {
	c := p.Centroid()
	return math.Atan2(c.Y-p[0].Y, c.X-p[0].X)
}

// IsNewPoint reports whether (x, y) differs from the last point in the
// path. Recording uses this to drop consecutive duplicate input events.
func (p Path) IsNewPoint(x, y float64) bool {
	if len(p) == 0 {
		return true
	}
	last := p[len(p)-1]
	return last.X != x || last.Y != y
}

// RotateBy returns a copy of the path rotated by the given angle in
// radians around its centroid.
func (p Path) RotateBy(radians float64) Path {
	c := p.Centroid()
	sin, cos := math.Sincos(radians)
	rotated := make(Path, len(p))
	for i, pt := range p {
		dx := pt.X - c.X
		dy := pt.Y - c.Y
		rotated[i] = Point{
			X: dx*cos - dy*sin + c.X,
			Y: dx*sin + dy*cos + c.Y,
		}
	}
	return rotated
}

// ScaleTo returns a copy of the path scaled so its bounding box has the
// given side length. The axes scale independently; an axis with zero
// extent (a perfectly horizontal or vertical stroke) is left unscaled.
func (p Path) ScaleTo(size float64) Path {
	box := p.BoundingBox()
	sx, sy := 1.0, 1.0
	if w := box.Width(); w > 0 {
		sx = size / w
	}
	if h := box.Height(); h > 0 {
		sy = size / h
	}
	scaled := make(Path, len(p))
	for i, pt := range p {
		scaled[i] = Point{X: pt.X * sx, Y: pt.Y * sy}
	}
	return scaled
}

// TranslateTo returns a copy of the path translated so its centroid sits
// at the given point.
func (p Path) TranslateTo(dest Point) Path {
	c := p.Centroid()
	translated := make(Path, len(p))
	for i, pt := range p {
		translated[i] = Point{X: pt.X + dest.X - c.X, Y: pt.Y + dest.Y - c.Y}
	}
	return translated
}

// Resample returns a copy of the path with exactly n points spaced at
// equal arc-length intervals, linearly interpolating between the original
// vertices. The path must have nonzero length; Normalize guards this.
func (p Path) Resample(n int) Path {
	interval := p.Length() / float64(n-1)
	pts := slices.Clone(p)

	resampled := make(Path, 1, n)
	resampled[0] = pts[0]

	var accum float64
	for i := 1; i < len(pts); i++ {
		d := pts[i-1].DistanceTo(pts[i])
		if accum+d > interval {
			t := (interval - accum) / d
			q := Point{
				X: pts[i-1].X + t*(pts[i].X-pts[i-1].X),
				Y: pts[i-1].Y + t*(pts[i].Y-pts[i-1].Y),
			}
			resampled = append(resampled, q)
			pts = slices.Insert(pts, i, q)
			accum = 0
		} else {
			accum += d
		}
	}

	// Rounding of the accumulated arc length can leave the walk one
	// point short of n; close the path with the final vertex.
	for len(resampled) < n {
		resampled = append(resampled, pts[len(pts)-1])
	}

	return resampled
}
