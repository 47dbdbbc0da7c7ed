package stroke

import "errors"

// ErrDegeneratePath is returned when a path has fewer than two distinct
// points or zero total arc length and therefore cannot be resampled.
var ErrDegeneratePath = errors.New("degenerate path: need at least two distinct points")

// ErrInvalidPathLength is returned when a path presented as already
// normalized does not contain exactly NumPoints points.
var ErrInvalidPathLength = errors.New("normalized path has wrong point count")

// Normalize converts a raw path into its canonical form: resampled to
// NumPoints equally spaced points, rotated so the indicative angle is
// zero, scaled to the reference square, and centered at the origin.
//
// Normalize is a pure function; calling it twice on the same path yields
// identical output. Geometrically similar gestures map to comparable
// normalized forms regardless of draw speed, size, or starting rotation.
func Normalize(p Path) (NormalizedPath, error) {
	if len(p) < 2 || p.Length() == 0 {
		return nil, ErrDegeneratePath
	}

	pts := p.Resample(NumPoints)
	pts = pts.RotateBy(-pts.IndicativeAngle())
	pts = pts.ScaleTo(SquareSize)
	pts = pts.TranslateTo(Point{})

	return NormalizedPath(pts), nil
}
