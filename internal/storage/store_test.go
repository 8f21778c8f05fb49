package storage

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
	"github.com/san-kum/worldsim/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Scenario:    "billiard",
		Ticks:       20,
		SampleTicks: []uint64{10, 20},
		Series: map[string][]float64{
			"kinetic_energy": {12.5, 12.25},
			"object_count":   {3, 2},
		},
		Frames: []sim.Frame{
			{Tick: 10, Objects: []object.State{
				{ID: 1, Kind: object.KindCircle, Position: geom.V(1.5, 2), Mass: 2, Radius: 14, Velocity: geom.V(-3, 0.125), Force: geom.V(0, 9.8)},
				{ID: 4, Kind: object.KindLine, Mass: math.Inf(1), Position: geom.V(10, 10), End: geom.V(30, 10)},
			}},
			{Tick: 20, Objects: []object.State{
				{ID: 1, Kind: object.KindCircle, Position: geom.V(2, 2), Velocity: geom.V(-3, 0.25)},
			}},
		},
		Metrics: map[string]float64{"kinetic_energy": 12.25},
	}
}

func TestSaveLoad(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	result := sampleResult()
	id, err := s.Save(RunMetadata{Seed: 7, Dt: 0.1, SampleEvery: 10, Preset: "break"}, result)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := s.Load(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Scenario != "billiard" || meta.Seed != 7 || meta.Ticks != 20 || meta.Preset != "break" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Metrics["kinetic_energy"] != 12.25 {
		t.Errorf("expected final metric 12.25, got %v", meta.Metrics["kinetic_energy"])
	}

	frames, err := s.LoadFrames(id)
	if err != nil {
		t.Fatalf("load frames: %v", err)
	}
	if diff := cmp.Diff(result.Frames, frames); diff != "" {
		t.Errorf("frames mismatch (-saved +loaded):\n%s", diff)
	}

	series, ticks, err := s.LoadSeries(id)
	if err != nil {
		t.Fatalf("load series: %v", err)
	}
	if diff := cmp.Diff(result.SampleTicks, ticks); diff != "" {
		t.Errorf("ticks mismatch (-saved +loaded):\n%s", diff)
	}
	if diff := cmp.Diff(result.Series, series); diff != "" {
		t.Errorf("series mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestList(t *testing.T) {
	s := New(t.TempDir())

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	first, err := s.Save(RunMetadata{}, sampleResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := s.Save(RunMetadata{}, sampleResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	runs, err = s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("expected newest first, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestListMissingDir(t *testing.T) {
	s := New(t.TempDir() + "/missing")
	runs, err := s.List()
	if err != nil {
		t.Fatalf("expected no error for a missing dir, got %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadUnknown(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Load("nope"); err == nil {
		t.Error("expected error for unknown run")
	}
	if _, err := s.LoadFrames("nope"); err == nil {
		t.Error("expected error for unknown run")
	}
}
