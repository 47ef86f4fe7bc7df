package ui

import (
	"testing"

	"bomb-abm/internal/core"
)

func TestLines(t *testing.T) {
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Wind", Params: []core.Parameter{
			{Key: "wind_east", Label: "East", Type: core.ParamTypePercent, Value: "75"},
		}},
		{Name: "Run", Params: []core.Parameter{
			{Key: "iteration", Label: "Iteration", Type: core.ParamTypeInt, Value: "12"},
			{Key: "status", Label: "Status", Type: core.ParamTypeText, Value: "running"},
		}},
	}}
	got := Lines(snap)
	want := []Line{
		{Label: "Wind", Header: true},
		{Label: "East", Value: "75%"},
		{Label: "Run", Header: true},
		{Label: "Iteration", Value: "12"},
		{Label: "Status", Value: "running"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestLinesEmpty(t *testing.T) {
	if got := Lines(core.ParameterSnapshot{}); len(got) != 0 {
		t.Fatalf("expected no lines, got %v", got)
	}
}
