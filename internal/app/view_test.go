package app

import (
	"strings"
	"testing"
)

func TestViewClampsLayer(t *testing.T) {
	v := NewView(10, 42)
	if v.Layer != 9 {
		t.Fatalf("layer = %d, expected 9", v.Layer)
	}
	v.SetLayer(-3)
	if v.Layer != 0 {
		t.Fatalf("layer = %d, expected 0", v.Layer)
	}
	v.SetLayer(v.Layer + 1)
	if v.Layer != 1 {
		t.Fatalf("layer = %d, expected 1", v.Layer)
	}
}

func TestViewStatus(t *testing.T) {
	v := NewView(4, 2)
	status := v.Status()
	if !strings.Contains(status[0], "z=2/3") {
		t.Fatalf("unexpected layer row %q", status[0])
	}
	if !strings.Contains(status[1], "paused") {
		t.Fatalf("new views start paused, got %q", status[1])
	}
	v.Auto = true
	if !strings.Contains(v.Status()[1], "running") {
		t.Fatalf("auto view must report running, got %q", v.Status()[1])
	}
}

func TestViewCellAt(t *testing.T) {
	v := NewView(4, 0)
	cases := []struct {
		cx, cy int
		x, y   int
		ok     bool
	}{
		{0, 0, 0, 4, true},
		{7, 7, 0, 4, true},
		{8, 39, 1, 0, true},
		{23, 16, 2, 2, true},
		{24, 0, 0, 0, false},
		{0, 40, 0, 0, false},
		{-1, 3, 0, 0, false},
	}
	for _, c := range cases {
		x, y, ok := v.CellAt(c.cx, c.cy, 8, 3, 5)
		if ok != c.ok || (ok && (x != c.x || y != c.y)) {
			t.Errorf("CellAt(%d,%d) = %d,%d,%v want %d,%d,%v", c.cx, c.cy, x, y, ok, c.x, c.y, c.ok)
		}
	}
}
