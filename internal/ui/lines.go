package ui

import (
	"fmt"

	"scatterblend/pkg/core"
)

type lineKind int

const (
	lineText lineKind = iota
	lineHeader
	lineHint
)

type hudLine struct {
	kind lineKind
	text string
}

var keyHelp = []string{
	"tab  next blender",
	"m    next mode",
	"s    reseed",
	"arrows  pan",
	"q    quit",
}

// buildLines lays out the panel: status, one block per parameter group, and
// the key help.
func buildLines(status []string, snapshot core.ParameterSnapshot, help []string) []hudLine {
	lines := make([]hudLine, 0, len(status)+len(help)+8)
	lines = append(lines, hudLine{lineHeader, "Status"})
	for _, s := range status {
		lines = append(lines, hudLine{lineText, s})
	}
	for _, g := range snapshot.Groups {
		lines = append(lines, hudLine{lineText, ""}, hudLine{lineHeader, g.Name})
		for _, p := range g.Params {
			lines = append(lines, hudLine{lineText, fmt.Sprintf("%s: %s", p.Label, formatValue(p))})
		}
	}
	if len(help) > 0 {
		lines = append(lines, hudLine{lineText, ""})
		for _, s := range help {
			lines = append(lines, hudLine{lineHint, s})
		}
	}
	return lines
}

func formatValue(p core.Parameter) string {
	if p.Type != core.ParamTypeFloat {
		return p.Value
	}
	var f float64
	if _, err := fmt.Sscanf(p.Value, "%g", &f); err != nil {
		return p.Value
	}
	return fmt.Sprintf("%.4g", f)
}
