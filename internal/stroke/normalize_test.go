package stroke

import (
	"errors"
	"math"
	"testing"
)

func TestNormalize_PointCount(t *testing.T) {
	paths := map[string]Path{
		"circle": circlePath(32, 100, 100, 50),
		"zigzag": zigzagPath(5, 250, 250),
		"line":   linePath(8, 300),
		"short":  {{X: 0, Y: 0}, {X: 10, Y: 10}},
	}

	for name, path := range paths {
		normalized, err := Normalize(path)
		if err != nil {
			t.Fatalf("Normalize(%s) error = %v", name, err)
		}
		if len(normalized) != NumPoints {
			t.Errorf("Normalize(%s) returned %d points, want %d", name, len(normalized), NumPoints)
		}
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	path := circlePath(48, 10, -20, 75)

	first, err := Normalize(path)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	second, err := Normalize(path)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("point %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestNormalize_TranslationInvariance(t *testing.T) {
	path := circlePath(32, 0, 0, 50)

	base, err := Normalize(path)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	shifted, err := Normalize(translatePath(path, 512, -1024))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if d := PathDistance(base, shifted); d > 1e-6 {
		t.Errorf("translated path normalized differently, distance = %g", d)
	}
}

func TestNormalize_ScaleInvariance(t *testing.T) {
	path := zigzagPath(4, 200, 150)

	base, err := Normalize(path)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	scaled, err := Normalize(scalePath(path, 3))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if d := PathDistance(base, scaled); d > 1e-6 {
		t.Errorf("scaled path normalized differently, distance = %g", d)
	}
}

func TestNormalize_CentroidAtOrigin(t *testing.T) {
	normalized, err := Normalize(circlePath(32, 300, 400, 120))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	c := Path(normalized).Centroid()
	if math.Abs(c.X) > 1e-9 || math.Abs(c.Y) > 1e-9 {
		t.Errorf("centroid = %v, want origin", c)
	}
}

func TestNormalize_DegenerateInputs(t *testing.T) {
	tests := map[string]Path{
		"empty":            {},
		"single point":     {{X: 5, Y: 5}},
		"repeated point":   {{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}},
		"zero length pair": {{X: 0, Y: 0}, {X: 0, Y: 0}},
	}

	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Normalize(path); !errors.Is(err, ErrDegeneratePath) {
				t.Errorf("Normalize() error = %v, want ErrDegeneratePath", err)
			}
		})
	}
}

func TestNormalize_CollinearPath(t *testing.T) {
	// A perfectly horizontal stroke has a zero-height bounding box. Only
	// the x axis should be scaled; no coordinate may degrade to NaN.
	normalized, err := Normalize(linePath(8, 300))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	for i, pt := range normalized {
		if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) {
			t.Fatalf("point %d is not finite: %v", i, pt)
		}
	}

	box := Path(normalized).BoundingBox()
	if math.Abs(box.Width()-SquareSize) > 1e-6 {
		t.Errorf("width = %g, want %g", box.Width(), SquareSize)
	}
	if box.Height() != 0 {
		t.Errorf("height = %g, want 0 for a horizontal stroke", box.Height())
	}
}

func TestResample_UniformSpacing(t *testing.T) {
	resampled := circlePath(100, 0, 0, 80).Resample(NumPoints)

	if len(resampled) != NumPoints {
		t.Fatalf("got %d points, want %d", len(resampled), NumPoints)
	}

	want := Path(resampled).Length() / float64(NumPoints-1)
	for i := 1; i < len(resampled); i++ {
		d := resampled[i-1].DistanceTo(resampled[i])
		if math.Abs(d-want) > want*0.25 {
			t.Errorf("segment %d has length %g, want ~%g", i, d, want)
		}
	}
}
