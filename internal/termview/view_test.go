package termview

import (
	"strings"
	"testing"

	"bomb-abm/internal/dispersal"

	"github.com/gdamore/tcell/v2"
)

func newPlume(t *testing.T) *dispersal.Plume {
	t.Helper()
	cfg := dispersal.DefaultConfig()
	cfg.Width, cfg.Height = 8, 6
	cfg.OriginX, cfg.OriginY = 1, 1
	cfg.Params.Particles = 20
	cfg.Params.BuildingHeight = 1
	cfg.Params.MaxIterations = 50
	env, err := cfg.Environment()
	if err != nil {
		t.Fatal(err)
	}
	p, err := dispersal.NewPlume(env, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func TestDrawMarksOriginNorthUp(t *testing.T) {
	screen := newScreen(t, 8, 7)
	v := New(screen, newPlume(t), 60, 0)
	v.Draw()

	// 6 grid rows on 6 terminal rows: grid y=1 lands on terminal row 4.
	r, _, _, _ := screen.GetContent(1, 4)
	if r == ' ' || r == 0 {
		t.Fatalf("expected origin marker at (1,4), got %q", r)
	}
	r, _, _, _ = screen.GetContent(1, 1)
	if r != ' ' && r != 0 {
		t.Fatalf("expected empty cell at (1,1), got %q", r)
	}
}

func TestAdvanceRunsToCompletion(t *testing.T) {
	screen := newScreen(t, 8, 7)
	p := newPlume(t)
	v := New(screen, p, 60, 0)
	for i := 0; i < 100 && !v.Finished(); i++ {
		v.Advance()
	}
	if !v.Finished() {
		t.Fatal("viewer never finished")
	}
	it := p.Model().Stats().Iteration
	v.Advance()
	if p.Model().Stats().Iteration != it {
		t.Fatal("advance after finish stepped the model")
	}
}

func TestHandleEventKeys(t *testing.T) {
	screen := newScreen(t, 8, 7)
	p := newPlume(t)
	v := New(screen, p, 60, 0)

	if !v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone)) {
		t.Fatal("n should not quit")
	}
	if p.Model().Stats().Iteration != 1 {
		t.Fatalf("expected one step after n, got %d", p.Model().Stats().Iteration)
	}
	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	if p.Model().Stats().Iteration != 0 {
		t.Fatal("r should reset the run")
	}
	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if !strings.Contains(StatusLine(p, v.paused), "[paused]") {
		t.Fatal("space should pause")
	}
	if v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatal("q should quit")
	}
	if v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape should quit")
	}
}

func TestStatusLine(t *testing.T) {
	line := StatusLine(newPlume(t), false)
	for _, want := range []string{"plume", "Iteration 0", "Grounded 0", "Aloft 20"} {
		if !strings.Contains(line, want) {
			t.Fatalf("status %q missing %q", line, want)
		}
	}
}
