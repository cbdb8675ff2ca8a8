package ui

import (
	"testing"

	"voxel-ca/internal/core"
)

func TestLines(t *testing.T) {
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "World", Params: []core.Parameter{core.IntParam("seed", "Seed", 42)}},
		{Name: "Rule", Params: []core.Parameter{core.StringParam("rule", "Rule", "12-26/13-14/2/M")}},
	}}
	got := Lines("moore3d controls", snap, "layer 3/10")
	want := []string{
		"moore3d controls",
		"",
		"World",
		"  Seed: 42",
		"",
		"Rule",
		"  Rule: 12-26/13-14/2/M",
		"",
		"layer 3/10",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lines %q, expected %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, expected %q", i, got[i], want[i])
		}
	}
}

func TestTitle(t *testing.T) {
	if Title(nil) != "Controls" {
		t.Fatalf("nil sim title = %q", Title(nil))
	}
}
