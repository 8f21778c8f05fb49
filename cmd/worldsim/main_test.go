package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseParams(t *testing.T) {
	got, err := parseParams([]string{"g=9.8", " k =42"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]float64{"g": 9.8, "k": 42}, got); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"g", "g=x"} {
		if _, err := parseParams([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseGrid(t *testing.T) {
	names, ranges, err := parseGrid([]string{"damping=0,2, 8", "k=1"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"damping", "k"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]float64{{0, 2, 8}, {1}}, ranges); diff != "" {
		t.Errorf("ranges mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := parseGrid([]string{"damping"}); err == nil {
		t.Error("expected error for missing values")
	}
	if _, _, err := parseGrid([]string{"damping=1,,2"}); err == nil {
		t.Error("expected error for empty value")
	}
}
