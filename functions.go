package main

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// --- ERROR MESSAGES ---

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("grid: invalid range [%g, %g] with step %g (need lower < upper and step > 0)",
		e.Lower, e.Upper, e.Step)
}

func (e *DegenerateEvidenceError) Error() string {
	return fmt.Sprintf("posterior: total likelihood*prior mass over the grid is %g; "+
		"widen the grids or refine the step so they cover the posterior mass", e.Total)
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("table: shape mismatch, want %v, got %v", e.Want, e.Got)
}

// --- GRID CONSTRUCTION ---

// NewGrid builds the candidate-value sequence lower, lower+step, ..., <= upper.
// The sequence is strictly increasing and immutable once built.
// HOW TO USE:
// g, err := NewGrid(0, 1, 0.01) // 101 candidate probabilities
func NewGrid(lower, upper, step float64) (*Grid, error) {
	if lower >= upper || step <= 0 ||
		math.IsNaN(lower) || math.IsNaN(upper) || math.IsNaN(step) ||
		math.IsInf(lower, 0) || math.IsInf(upper, 0) || math.IsInf(step, 0) {
		return nil, &InvalidRangeError{Lower: lower, Upper: upper, Step: step}
	}

	// Relative slack so e.g. (1-0)/0.01 landing at 99.9999... still yields
	// 101 points.
	n := int(math.Floor((upper-lower)/step*(1+1e-10))) + 1

	points := make([]float64, n)
	for i := range points {
		points[i] = lower + float64(i)*step
	}
	// lower + n*step can overshoot upper by a rounding ulp; clamp it so every
	// element stays inside the declared support.
	if points[n-1] > upper {
		points[n-1] = upper
	}

	return &Grid{Lower: lower, Upper: upper, Step: step, points: points}, nil
}

// Len returns the number of candidate values.
func (g *Grid) Len() int { return len(g.points) }

// At returns the i-th candidate value.
func (g *Grid) At(i int) float64 { return g.points[i] }

// Points returns the candidate values. The slice is shared, not copied;
// callers must treat it as read-only.
func (g *Grid) Points() []float64 { return g.points }

// --- TABLE INTERNALS ---

// newTable allocates a zeroed table over the given grids.
func newTable(grids []*Grid) *Table {
	n := 1
	for _, g := range grids {
		n *= g.Len()
	}
	return &Table{grids: grids, cells: make([]float64, n)}
}

// Shape returns the per-dimension grid lengths.
func (t *Table) Shape() []int {
	shape := make([]int, len(t.grids))
	for d, g := range t.grids {
		shape[d] = g.Len()
	}
	return shape
}

// Dims returns the number of parameters the table spans.
func (t *Table) Dims() int { return len(t.grids) }

// Len returns the total number of cells.
func (t *Table) Len() int { return len(t.cells) }

// Grid returns the grid for one dimension.
func (t *Table) Grid(dim int) *Grid { return t.grids[dim] }

// Cells returns the flat row-major cell slice. Read-only for callers.
func (t *Table) Cells() []float64 { return t.cells }

// Sum returns the total mass of the table.
func (t *Table) Sum() float64 { return floats.Sum(t.cells) }

// At returns the cell value at the given per-dimension coordinates.
func (t *Table) At(coords ...int) float64 { return t.cells[t.flatIndex(coords)] }

// flatIndex maps per-dimension coordinates to the flat row-major cell index.
func (t *Table) flatIndex(coords []int) int {
	if len(coords) != len(t.grids) {
		panic(fmt.Sprintf("table: got %d coordinates for %d dimensions", len(coords), len(t.grids)))
	}
	idx := 0
	for d, c := range coords {
		n := t.grids[d].Len()
		if c < 0 || c >= n {
			panic(fmt.Sprintf("table: coordinate %d out of range for dimension %d (len %d)", c, d, n))
		}
		idx = idx*n + c
	}
	return idx
}

// coordsInto is the inverse mapping: flat cell index to per-dimension
// coordinates, written into coords (len == Dims). The last dimension
// varies fastest.
func (t *Table) coordsInto(flat int, coords []int) {
	for d := len(t.grids) - 1; d >= 0; d-- {
		n := t.grids[d].Len()
		coords[d] = flat % n
		flat /= n
	}
}

// Dense returns a two-parameter table as a gonum matrix (rows: first
// parameter, cols: second), handy for formatted printing and heatmaps.
func (t *Table) Dense() (*mat.Dense, error) {
	if len(t.grids) != 2 {
		return nil, fmt.Errorf("table: Dense needs exactly 2 dimensions, have %d", len(t.grids))
	}
	data := make([]float64, len(t.cells))
	copy(data, t.cells)
	return mat.NewDense(t.grids[0].Len(), t.grids[1].Len(), data), nil
}

// sameGrids reports whether two tables were built over the same grids.
func sameGrids(a, b *Table) bool {
	if len(a.grids) != len(b.grids) {
		return false
	}
	for d := range a.grids {
		ga, gb := a.grids[d], b.grids[d]
		if ga.Lower != gb.Lower || ga.Upper != gb.Upper || ga.Step != gb.Step || ga.Len() != gb.Len() {
			return false
		}
	}
	return true
}

// --- PRIOR DENSITIES ---

// All built-in families delegate the actual density math to gonum's distuv.

func (p BetaPrior) Density(x float64) float64 {
	if x < 0 || x > 1 {
		return 0
	}
	return distuv.Beta{Alpha: p.Alpha, Beta: p.Beta}.Prob(x)
}

func (p UniformPrior) Density(x float64) float64 {
	return distuv.Uniform{Min: p.Min, Max: p.Max}.Prob(x)
}

func (p NormalPrior) Density(x float64) float64 {
	return distuv.Normal{Mu: p.Mu, Sigma: p.Sigma}.Prob(x)
}

func (p CauchyPrior) Density(x float64) float64 {
	// Student's t with Nu = 1 is exactly the Cauchy(X0, Gamma) density.
	return distuv.StudentsT{Mu: p.X0, Sigma: p.Gamma, Nu: 1}.Prob(x)
}

// --- LIKELIHOODS ---

func (b BinomialModel) NumParams() int { return 1 }

// Likelihood treats each observation as a success count out of b.Trials.
func (b BinomialModel) Likelihood(obs, params []float64) float64 {
	p := params[0]
	if p < 0 || p > 1 {
		return 0
	}
	l := 1.0
	for _, x := range obs {
		// distuv's log-space pmf produces NaN at the p = 0 and p = 1
		// endpoints, so the point-mass cases are handled directly.
		switch {
		case p == 0:
			if x != 0 {
				return 0
			}
		case p == 1:
			if x != float64(b.Trials) {
				return 0
			}
		default:
			l *= distuv.Binomial{N: float64(b.Trials), P: p}.Prob(x)
		}
	}
	return l
}

func (m NormalMeanModel) NumParams() int { return 1 }

func (m NormalMeanModel) Likelihood(obs, params []float64) float64 {
	d := distuv.Normal{Mu: params[0], Sigma: m.Sigma}
	l := 1.0
	for _, y := range obs {
		l *= d.Prob(y)
	}
	return l
}

func (m NormalModel) NumParams() int { return 2 }

// Likelihood takes params = [mean, scale]. Non-positive scale candidates are
// outside the support and get zero likelihood.
func (m NormalModel) Likelihood(obs, params []float64) float64 {
	if params[1] <= 0 {
		return 0
	}
	d := distuv.Normal{Mu: params[0], Sigma: params[1]}
	l := 1.0
	for _, y := range obs {
		l *= d.Prob(y)
	}
	return l
}

// --- TABLE BUILDERS ---

// LikelihoodTable evaluates the joint likelihood of obs at every cell of the
// parameter space. Work is O(cells * observations).
func LikelihoodTable(obs []float64, model SamplingModel, grids []*Grid) (*Table, error) {
	if len(grids) != model.NumParams() {
		return nil, fmt.Errorf("likelihood: model has %d parameters but %d grids were given",
			model.NumParams(), len(grids))
	}
	t := newTable(grids)
	coords := make([]int, len(grids))
	params := make([]float64, len(grids))
	for i := range t.cells {
		t.coordsInto(i, coords)
		for d, g := range grids {
			params[d] = g.At(coords[d])
		}
		t.cells[i] = model.Likelihood(obs, params)
	}
	return t, nil
}

// PriorTable evaluates the joint prior at every cell as the outer product of
// independent per-parameter priors (one Density per grid). Each 1-D density
// is evaluated once per grid point, not once per cell.
func PriorTable(priors []Density, grids []*Grid) (*Table, error) {
	if len(priors) != len(grids) {
		return nil, fmt.Errorf("prior: %d priors for %d grids", len(priors), len(grids))
	}

	perDim := make([][]float64, len(grids))
	for d, g := range grids {
		vals := make([]float64, g.Len())
		for i, x := range g.Points() {
			vals[i] = priors[d].Density(x)
		}
		perDim[d] = vals
	}

	t := newTable(grids)
	coords := make([]int, len(grids))
	for i := range t.cells {
		t.coordsInto(i, coords)
		p := 1.0
		for d := range coords {
			p *= perDim[d][coords[d]]
		}
		t.cells[i] = p
	}
	return t, nil
}

// NormalizePosterior multiplies likelihood and prior cell by cell and
// rescales so the result sums to 1. The tables must share the same grids.
// A zero or non-finite total is surfaced as DegenerateEvidenceError rather
// than silently returning NaNs.
func NormalizePosterior(likelihood, prior *Table) (*Table, error) {
	if !sameGrids(likelihood, prior) {
		return nil, &ShapeMismatchError{Want: likelihood.Shape(), Got: prior.Shape()}
	}
	t := newTable(likelihood.grids)
	for i := range t.cells {
		t.cells[i] = likelihood.cells[i] * prior.cells[i]
	}
	total := floats.Sum(t.cells)
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, &DegenerateEvidenceError{Total: total}
	}
	floats.Scale(1/total, t.cells)
	return t, nil
}

// --- MARGINALS AND SAMPLING ---

// Marginal sums the posterior over every dimension except dim, returning a
// 1-D distribution on that dimension's grid. A marginal of a normalized
// table again sums to 1.
func Marginal(post *Table, dim int) (*Table, error) {
	if dim < 0 || dim >= len(post.grids) {
		return nil, fmt.Errorf("marginal: dimension %d out of range for %d-parameter table",
			dim, len(post.grids))
	}
	m := newTable([]*Grid{post.grids[dim]})
	coords := make([]int, len(post.grids))
	for i, v := range post.cells {
		post.coordsInto(i, coords)
		m.cells[coords[dim]] += v
	}
	return m, nil
}

// SampleGrid draws count values from the grid with replacement, with
// selection probability proportional to weights. The generator is passed in
// explicitly so runs are reproducible under a fixed seed.
// HOW TO USE:
// draws, err := SampleGrid(g, post.Cells(), 10000, rand.NewSource(42))
func SampleGrid(g *Grid, weights []float64, count int, src rand.Source) ([]float64, error) {
	if len(weights) != g.Len() {
		return nil, &ShapeMismatchError{Want: []int{g.Len()}, Got: []int{len(weights)}}
	}
	if count < 0 {
		return nil, fmt.Errorf("sample: count must be >= 0, got %d", count)
	}
	total := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return nil, fmt.Errorf("sample: weight %d is %g, weights must be non-negative", i, w)
		}
		total += w
	}
	if total <= 0 || math.IsInf(total, 0) {
		return nil, &DegenerateEvidenceError{Total: total}
	}

	w := sampleuv.NewWeighted(weights, src)
	out := make([]float64, count)
	for i := range out {
		idx, ok := w.Take()
		if !ok {
			return nil, fmt.Errorf("sample: no weight left to draw from")
		}
		out[i] = g.At(idx)
		// Take zeroes the drawn weight; restore it so the draw is with
		// replacement.
		w.Reweight(idx, weights[idx])
	}
	return out, nil
}

// --- ESTIMATION ENTRY POINT ---

// EstimatePosterior runs the whole pipeline: build one grid per parameter,
// evaluate likelihood and prior over the joint parameter space, normalize,
// and marginalize. All tables are fresh per call and read-only afterwards;
// identical inputs always produce identical output.
// HOW TO USE:
// est, err := EstimatePosterior(
//	[]float64{5},                      // 5 successes
//	[]GridSpec{{0, 1, 0.01}},          // probability grid
//	BinomialModel{Trials: 10},
//	[]Density{BetaPrior{Alpha: 2, Beta: 2}},
// )
func EstimatePosterior(obs []float64, gridSpecs []GridSpec, model SamplingModel, priors []Density) (*PosteriorEstimate, error) {
	if len(gridSpecs) == 0 {
		return nil, fmt.Errorf("estimate: at least one parameter grid is required")
	}
	if len(gridSpecs) != len(priors) {
		return nil, fmt.Errorf("estimate: %d grids but %d priors", len(gridSpecs), len(priors))
	}

	grids := make([]*Grid, len(gridSpecs))
	for d, spec := range gridSpecs {
		g, err := NewGrid(spec.Lower, spec.Upper, spec.Step)
		if err != nil {
			return nil, err
		}
		grids[d] = g
	}

	likelihood, err := LikelihoodTable(obs, model, grids)
	if err != nil {
		return nil, err
	}
	prior, err := PriorTable(priors, grids)
	if err != nil {
		return nil, err
	}
	posterior, err := NormalizePosterior(likelihood, prior)
	if err != nil {
		return nil, err
	}

	marginals := make([]*Table, len(grids))
	for d := range grids {
		m, err := Marginal(posterior, d)
		if err != nil {
			return nil, err
		}
		marginals[d] = m
	}

	return &PosteriorEstimate{
		Grids:      grids,
		Likelihood: likelihood,
		Prior:      prior,
		Posterior:  posterior,
		Marginals:  marginals,
	}, nil
}

// --- POSTERIOR SUMMARIES ---

// PosteriorMean returns the mean of a 1-D distribution, i.e. the grid values
// weighted by their posterior mass.
func PosteriorMean(m *Table) (float64, error) {
	if len(m.grids) != 1 {
		return 0, fmt.Errorf("summary: PosteriorMean needs a 1-D table, have %d dimensions", len(m.grids))
	}
	return stat.Mean(m.grids[0].Points(), m.cells), nil
}

// PosteriorMode returns the parameter combination at the highest cell of the
// table (the MAP estimate on the grid).
func PosteriorMode(t *Table) []float64 {
	best := 0
	for i, v := range t.cells {
		if v > t.cells[best] {
			best = i
		}
	}
	coords := make([]int, len(t.grids))
	t.coordsInto(best, coords)
	params := make([]float64, len(t.grids))
	for d, g := range t.grids {
		params[d] = g.At(coords[d])
	}
	return params
}

// CredibleInterval returns the central interval of the given mass (e.g. 0.95)
// of a 1-D distribution, via weighted empirical quantiles. The grid values
// are already sorted, which is what stat.Quantile requires.
func CredibleInterval(m *Table, level float64) (lo, hi float64, err error) {
	if len(m.grids) != 1 {
		return 0, 0, fmt.Errorf("summary: CredibleInterval needs a 1-D table, have %d dimensions", len(m.grids))
	}
	if level <= 0 || level >= 1 {
		return 0, 0, fmt.Errorf("summary: level must be in (0, 1), got %g", level)
	}
	tail := (1 - level) / 2
	pts := m.grids[0].Points()
	lo = stat.Quantile(tail, stat.Empirical, pts, m.cells)
	hi = stat.Quantile(1-tail, stat.Empirical, pts, m.cells)
	return lo, hi, nil
}
