package core

import "testing"

type fakeSim struct{ size Size }

func (f *fakeSim) Name() string   { return "fake" }
func (f *fakeSim) Size() Size     { return f.size }
func (f *fakeSim) Reset(int64)    {}
func (f *fakeSim) Step()          {}
func (f *fakeSim) Cells() []uint8 { return nil }

func TestRegistry(t *testing.T) {
	Register("", func(map[string]string) (Sim, error) { return nil, nil })
	Register("nil-factory", nil)
	if _, ok := Sims()[""]; ok {
		t.Fatal("empty names must be ignored")
	}
	if _, ok := Sims()["nil-factory"]; ok {
		t.Fatal("nil factories must be ignored")
	}

	Register("fake", func(cfg map[string]string) (Sim, error) {
		return &fakeSim{size: Size{W: 1, H: 2, D: 3}}, nil
	})
	defer delete(sims, "fake")

	sim, err := New("fake", nil)
	if err != nil {
		t.Fatal(err)
	}
	if sim.Size() != (Size{W: 1, H: 2, D: 3}) {
		t.Fatalf("unexpected size %+v", sim.Size())
	}
	if _, err := New("missing", nil); err == nil {
		t.Fatal("unknown sims must fail")
	}
	found := false
	for _, n := range Names() {
		if n == "fake" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Names() = %v, expected fake", Names())
	}
}
