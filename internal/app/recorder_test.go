package app

import "testing"

func TestRecorder_Lifecycle(t *testing.T) {
	r := NewRecorder()

	if r.Active() {
		t.Error("new recorder should be idle")
	}

	// Points before Start are dropped.
	r.Add(1, 1)

	r.Start()
	if !r.Active() {
		t.Error("recorder should be active after Start")
	}

	r.Add(0, 0)
	r.Add(10, 0)
	r.Add(10, 10)

	path := r.Stop()
	if r.Active() {
		t.Error("recorder should be idle after Stop")
	}
	if len(path) != 3 {
		t.Fatalf("recorded %d points, want 3", len(path))
	}
	if path[0].X != 0 || path[2].Y != 10 {
		t.Errorf("unexpected path contents: %v", path)
	}
}

func TestRecorder_DropsDuplicatePoints(t *testing.T) {
	r := NewRecorder()
	r.Start()

	r.Add(5, 5)
	r.Add(5, 5)
	r.Add(5, 5)
	r.Add(6, 5)
	r.Add(6, 5)

	path := r.Stop()
	if len(path) != 2 {
		t.Errorf("recorded %d points, want 2 after duplicate filtering", len(path))
	}
}

func TestRecorder_StartDiscardsPrevious(t *testing.T) {
	r := NewRecorder()
	r.Start()
	r.Add(1, 1)
	r.Add(2, 2)

	r.Start()
	r.Add(3, 3)

	path := r.Stop()
	if len(path) != 1 || path[0].X != 3 {
		t.Errorf("path = %v, want only the point from the second recording", path)
	}
}
