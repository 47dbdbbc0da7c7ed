package stroke

import "math"

// circlePath approximates a circle with n points of the given radius
// centered at (cx, cy), starting at angle zero.
func circlePath(n int, cx, cy, r float64) Path {
	path := make(Path, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		path[i] = Point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	return path
}

// zigzagPath builds a sawtooth stroke with the given number of teeth.
func zigzagPath(teeth int, width, height float64) Path {
	path := make(Path, 0, 2*teeth+1)
	step := width / float64(2*teeth)
	for i := 0; i <= 2*teeth; i++ {
		y := 0.0
		if i%2 == 1 {
			y = height
		}
		path = append(path, Point{X: float64(i) * step, Y: y})
	}
	return path
}

// linePath builds a straight horizontal stroke with n points.
func linePath(n int, length float64) Path {
	path := make(Path, n)
	for i := 0; i < n; i++ {
		path[i] = Point{X: length * float64(i) / float64(n-1), Y: 0}
	}
	return path
}

// scalePath multiplies every coordinate by k.
func scalePath(p Path, k float64) Path {
	scaled := make(Path, len(p))
	for i, pt := range p {
		scaled[i] = Point{X: pt.X * k, Y: pt.Y * k}
	}
	return scaled
}

// translatePath shifts every point by (dx, dy).
func translatePath(p Path, dx, dy float64) Path {
	translated := make(Path, len(p))
	for i, pt := range p {
		translated[i] = Point{X: pt.X + dx, Y: pt.Y + dy}
	}
	return translated
}
