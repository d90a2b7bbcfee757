package cards

import (
	"testing"
	"time"
)

func TestDropSequencer_Drop(t *testing.T) {
	d := NewDropSequencer(DefaultTiming())
	plan, ok := d.Drop(IndexWindow{First: 2, Last: 5}, 8, 600)
	if !ok {
		t.Fatal("expected a plan")
	}
	if len(plan.Steps) != 4 {
		t.Fatalf("steps = %d, want 4", len(plan.Steps))
	}
	wantDelays := map[int]time.Duration{
		2: 180 * time.Millisecond,
		3: 120 * time.Millisecond,
		4: 60 * time.Millisecond,
		5: 0,
	}
	for _, s := range plan.Steps {
		if s.Delay != wantDelays[s.Index] {
			t.Errorf("card %d delay = %v, want %v", s.Index, s.Delay, wantDelays[s.Index])
		}
		if s.From != 0 || s.To != 600 || s.Duration != 500*time.Millisecond {
			t.Errorf("card %d step = %+v", s.Index, s)
		}
	}
	if got := plan.Hidden; len(got) != 4 || got[0] != 0 || got[1] != 1 || got[2] != 6 || got[3] != 7 {
		t.Errorf("hidden = %v, want [0 1 6 7]", got)
	}
	last, ok := plan.Last()
	if !ok || last.Index != 2 {
		t.Errorf("last finishing step = %+v, want card 2", last)
	}
	if d.State() != DropDropping || !d.IsDropped() {
		t.Errorf("state = %v", d.State())
	}
}

func TestDropSequencer_GuardsInFlight(t *testing.T) {
	d := NewDropSequencer(DefaultTiming())
	if _, ok := d.Restore(); ok {
		t.Error("restore with nothing dropped should be a no-op")
	}
	if _, ok := d.Drop(EmptyWindow(), 3, 600); ok {
		t.Error("dropping an empty window should be a no-op")
	}

	d.Drop(IndexWindow{First: 0, Last: 2}, 3, 600)
	if _, ok := d.Drop(IndexWindow{First: 0, Last: 2}, 3, 600); ok {
		t.Error("second drop while dropping should be a no-op")
	}
	if _, ok := d.Restore(); ok {
		t.Error("restore before the drop completes should be a no-op")
	}
	d.DropCompleted()
	if _, ok := d.Drop(IndexWindow{First: 0, Last: 2}, 3, 600); ok {
		t.Error("drop while dropped should be a no-op")
	}
}

func TestDropSequencer_RestoreUsesSnapshot(t *testing.T) {
	d := NewDropSequencer(DefaultTiming())
	d.Drop(IndexWindow{First: 3, Last: 5}, 10, 500)
	d.DropCompleted()

	// The card set may have changed meanwhile; restore still uses [3,5].
	plan, ok := d.Restore()
	if !ok {
		t.Fatal("expected restore plan")
	}
	if plan.Window != (IndexWindow{First: 3, Last: 5}) {
		t.Errorf("restore window = %+v", plan.Window)
	}
	for _, s := range plan.Steps {
		if want := time.Duration(s.Index-3) * 60 * time.Millisecond; s.Delay != want {
			t.Errorf("card %d delay = %v, want %v", s.Index, s.Delay, want)
		}
		if s.From != 500 || s.To != 0 {
			t.Errorf("card %d step = %+v", s.Index, s)
		}
	}
	if len(plan.Hidden) != 0 {
		t.Errorf("restore should hide nothing, got %v", plan.Hidden)
	}
	if _, ok := d.Restore(); ok {
		t.Error("second restore while restoring should be a no-op")
	}
	d.RestoreCompleted()
	if d.IsDropped() || !d.Window().Empty() {
		t.Error("restore completion should return to resting")
	}
}

func TestDropSequencer_Reset(t *testing.T) {
	d := NewDropSequencer(DefaultTiming())
	d.Drop(IndexWindow{First: 0, Last: 1}, 2, 100)
	d.Reset()
	if d.State() != DropResting {
		t.Errorf("state after reset = %v", d.State())
	}
	if _, ok := d.Drop(IndexWindow{First: 0, Last: 1}, 2, 100); !ok {
		t.Error("drop after reset should plan again")
	}
}

func TestPlanDropIn(t *testing.T) {
	l := NewLayout(DefaultConfig(), 375)
	steps := planDropIn(l, IndexWindow{First: 0, Last: 3}, 667, DefaultTiming())
	if len(steps) != 4 {
		t.Fatalf("steps = %d, want 4", len(steps))
	}
	for i, s := range steps {
		travel := l.BaseY(i) + l.CardHeight
		if s.From != -travel {
			t.Errorf("card %d From = %v, want %v", i, s.From, -travel)
		}
		if s.Delay != time.Duration(i)*100*time.Millisecond {
			t.Errorf("card %d delay = %v", i, s.Delay)
		}
		if s.Duration <= 700*time.Millisecond {
			t.Errorf("card %d duration %v should exceed the base", i, s.Duration)
		}
	}
	if steps[3].Velocity >= steps[0].Velocity {
		t.Error("farther cards should start with lower normalized velocity")
	}
	if planDropIn(l, EmptyWindow(), 667, DefaultTiming()) != nil {
		t.Error("empty window should plan nothing")
	}
}
