package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// LoadCSVToObservations reads an observation set from a CSV file:
//
//   - The first row is a header naming the columns
//   - All remaining rows are numeric values
//   - Only the first column is used as the observation set
//
// Returns the observations in file order.
func LoadCSVToObservations(path string) ([]float64, error) {
	// 1. Open file
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	// 2. Make CSV reader
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	// 3. Read header row
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("empty header in %s", path)
	}

	var (
		obs []float64
		row int
	)

	// 4. Read each data row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row+2, err) // +2 for header + 1-based
		}

		// Skip completely empty lines
		if len(record) == 1 && record[0] == "" {
			continue
		}

		v, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parse float at row %d (%q): %w", row+2, record[0], err)
		}
		obs = append(obs, v)
		row++
	}

	if row == 0 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}

	return obs, nil
}

// OutputMarginalToCSV writes a 1-D distribution as value,density rows with a
// header naming the parameter.
func OutputMarginalToCSV(path, paramName string, m *Table) error {
	if m.Dims() != 1 {
		return fmt.Errorf("csv: need a 1-D table, have %d dimensions", m.Dims())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{paramName, "density"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	g := m.Grid(0)
	for i, v := range m.Cells() {
		rec := []string{
			strconv.FormatFloat(g.At(i), 'g', -1, 64),
			strconv.FormatFloat(v, 'g', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return nil
}

// Helper function to print a one-line summary of a 1-D posterior
func PrintMarginalSummary(paramName string, m *Table) {
	mean, err := PosteriorMean(m)
	if err != nil {
		fmt.Println("summary error:", err)
		return
	}
	mode := PosteriorMode(m)
	lo, hi, err := CredibleInterval(m, 0.95)
	if err != nil {
		fmt.Println("summary error:", err)
		return
	}
	fmt.Printf("%s: mean=%.4f mode=%.4f 95%% interval=[%.4f, %.4f]\n",
		paramName, mean, mode[0], lo, hi)
}

// Helper function to print a two-parameter joint posterior as a matrix
func PrintJointPosterior(t *Table) {
	d, err := t.Dense()
	if err != nil {
		fmt.Println("print error:", err)
		return
	}
	fmt.Println("\n=== Joint Posterior ===")
	fmt.Printf("%v\n", mat.Formatted(d, mat.Prefix(" "), mat.Excerpt(4)))
}
