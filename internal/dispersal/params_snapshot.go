package dispersal

import (
	"strconv"

	"bomb-abm/internal/core"
)

// Parameters publishes the run configuration and progress for the HUD.
func (p *Plume) Parameters() core.ParameterSnapshot {
	s := p.model.Settings()
	st := p.model.Stats()
	origin := p.env.Origin()
	groups := []core.ParameterGroup{
		{
			Name: "Environment",
			Params: []core.Parameter{
				intParam("w", "Width", p.env.Width()),
				intParam("h", "Height", p.env.Height()),
				textParam("origin", "Bomb", origin.String()),
				textParam("seed", "Seed", strconv.FormatInt(s.Seed, 10)),
			},
		},
		{
			Name: "Wind",
			Params: []core.Parameter{
				percentParam("wind_north", "North", s.Wind.Percent(North)),
				percentParam("wind_east", "East", s.Wind.Percent(East)),
				percentParam("wind_south", "South", s.Wind.Percent(South)),
				percentParam("wind_west", "West", s.Wind.Percent(West)),
			},
		},
		{
			Name: "Fall",
			Params: []core.Parameter{
				percentParam("fall_up", "Up", s.Fall.Percent(FallUp)),
				percentParam("fall_down", "Down", s.Fall.Percent(FallDown)),
				percentParam("fall_none", "No change", s.Fall.Percent(FallNone)),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				intParam("particles", "Particles", s.Particles),
				intParam("building_height", "Building height", s.BuildingHeight),
				intParam("max_iterations", "Max iterations", s.MaxIterations),
				intParam("iteration", "Iteration", st.Iteration),
				intParam("grounded", "Grounded", st.Grounded),
				intParam("aloft", "Aloft", st.Aloft),
				intParam("peak_height", "Highest", p.PeakHeight()),
				textParam("status", "Status", st.Reason.String()),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func percentParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypePercent, Value: strconv.Itoa(value)}
}

func textParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeText, Value: value}
}
