package main

import (
	"os"
	"path/filepath"
	"testing"
)

// Writing a marginal and reading its value column back should reproduce the
// grid.
func TestMarginalCSV_RoundTrip(t *testing.T) {
	est, err := EstimatePosterior(
		[]float64{5},
		[]GridSpec{{Lower: 0, Upper: 1, Step: 0.1}},
		BinomialModel{Trials: 10},
		[]Density{BetaPrior{Alpha: 2, Beta: 2}},
	)
	if err != nil {
		t.Fatalf("EstimatePosterior returned error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "marginal.csv")
	if err := OutputMarginalToCSV(path, "p", est.Marginals[0]); err != nil {
		t.Fatalf("OutputMarginalToCSV returned error: %v", err)
	}

	// The first CSV column holds the grid values
	values, err := LoadCSVToObservations(path)
	if err != nil {
		t.Fatalf("LoadCSVToObservations returned error: %v", err)
	}

	g := est.Grids[0]
	if len(values) != g.Len() {
		t.Fatalf("read %d values, want %d", len(values), g.Len())
	}
	for i, v := range values {
		if !almostEqual(v, g.At(i), 1e-12) {
			t.Errorf("value[%d] = %v, want grid point %v", i, v, g.At(i))
		}
	}
}

func TestLoadCSVToObservations_Errors(t *testing.T) {
	// Missing file
	if _, err := LoadCSVToObservations(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file, got nil")
	}

	// Header only, no data rows
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("y\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadCSVToObservations(path); err == nil {
		t.Error("expected error for file with no data rows, got nil")
	}

	// Non-numeric data
	path = filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("y\nnot-a-number\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadCSVToObservations(path); err == nil {
		t.Error("expected error for non-numeric data, got nil")
	}
}
