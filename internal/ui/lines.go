package ui

import "bomb-abm/internal/core"

// Line is one row of the parameter panel.
type Line struct {
	Label  string
	Value  string
	Header bool
}

// Lines flattens a snapshot into panel rows: a header per group followed by
// its parameters. Percent values get a trailing %.
func Lines(s core.ParameterSnapshot) []Line {
	var out []Line
	for _, g := range s.Groups {
		out = append(out, Line{Label: g.Name, Header: true})
		for _, p := range g.Params {
			v := p.Value
			if p.Type == core.ParamTypePercent {
				v += "%"
			}
			out = append(out, Line{Label: p.Label, Value: v})
		}
	}
	return out
}
