package ui

import (
	"testing"

	"scatterblend/pkg/core"
)

func TestBuildLines(t *testing.T) {
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Blend",
		Params: []core.Parameter{
			core.FloatParam("radius", "Blend radius", 44.62419577941319),
			core.IntParam("size", "Region size", 64),
		},
	}}}
	lines := buildLines([]string{"blender: scattered"}, snap, []string{"q quit"})

	want := []hudLine{
		{lineHeader, "Status"},
		{lineText, "blender: scattered"},
		{lineText, ""},
		{lineHeader, "Blend"},
		{lineText, "Blend radius: 44.62"},
		{lineText, "Region size: 64"},
		{lineText, ""},
		{lineHint, "q quit"},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %+v, want %+v", i, lines[i], want[i])
		}
	}
}
