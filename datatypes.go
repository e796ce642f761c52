package main

// Grid is an ordered sequence of evenly spaced candidate values for one
// unknown parameter. Built once by NewGrid and never mutated afterwards.
type Grid struct {
	// Declared support of the parameter
	Lower float64
	Upper float64
	// Spacing between neighbouring candidate values
	Step float64

	// The materialized candidate values, strictly increasing.
	// Read-only after construction.
	points []float64
}

// GridSpec is the caller-facing description of one parameter grid.
type GridSpec struct {
	Lower float64
	Upper float64
	Step  float64
}

// Table holds one scalar per cell of the parameter space (the Cartesian
// product of its grids). Used for likelihood, prior and posterior alike.
// Cells are stored row-major in a flat slice; the per-dimension coordinates
// of a cell are recovered with index arithmetic instead of nested loops.
type Table struct {
	grids []*Grid
	cells []float64
}

// PosteriorEstimate bundles everything one estimation call produces:
// the raw likelihood and prior tables, the normalized posterior, and one
// marginal distribution per parameter.
type PosteriorEstimate struct {
	Grids      []*Grid
	Likelihood *Table
	Prior      *Table
	Posterior  *Table
	Marginals  []*Table
}

// Density is the capability every prior family must satisfy: a non-negative
// density value at a candidate parameter value. Any type implementing it can
// be plugged in as a prior; the estimator has no per-family logic.
type Density interface {
	Density(x float64) float64
}

// SamplingModel is the capability a likelihood family must satisfy.
// Likelihood returns the joint likelihood of all observations at one
// candidate parameter combination (params has length NumParams).
// Independent observations multiply on the linear scale, so this is only
// accurate for small-to-moderate observation counts.
type SamplingModel interface {
	// How many unknown parameters the family has
	NumParams() int
	// Joint likelihood of obs at params
	Likelihood(obs []float64, params []float64) float64
}

// --- PRIOR FAMILIES ---

// BetaPrior is a Beta(Alpha, Beta) density on [0, 1].
type BetaPrior struct {
	Alpha float64
	Beta  float64
}

// UniformPrior is a flat density on [Min, Max].
type UniformPrior struct {
	Min float64
	Max float64
}

// NormalPrior is a normal density with mean Mu and standard deviation Sigma.
type NormalPrior struct {
	Mu    float64
	Sigma float64
}

// CauchyPrior is a Cauchy density with location X0 and scale Gamma.
// Evaluated as a Student's t with one degree of freedom, which is the same
// distribution.
type CauchyPrior struct {
	X0    float64
	Gamma float64
}

// DensityFunc adapts a plain function into a Density, for caller-supplied
// prior families outside the built-in ones.
type DensityFunc func(x float64) float64

// Density calls f(x).
func (f DensityFunc) Density(x float64) float64 { return f(x) }

// --- LIKELIHOOD FAMILIES ---

// BinomialModel is a binomial sampling distribution with a known number of
// trials. Observations are success counts; the single unknown parameter is
// the success probability.
type BinomialModel struct {
	Trials int
}

// NormalMeanModel is a normal sampling distribution with known standard
// deviation Sigma. The single unknown parameter is the mean.
type NormalMeanModel struct {
	Sigma float64
}

// NormalModel is a normal sampling distribution with both mean and standard
// deviation unknown (two parameters, in that order).
type NormalModel struct{}

// --- ERROR TYPES ---

// InvalidRangeError reports a malformed grid request: the bounds are not
// ordered or the step is not positive.
type InvalidRangeError struct {
	Lower float64
	Upper float64
	Step  float64
}

// DegenerateEvidenceError reports that the total likelihood*prior mass over
// the grid is zero or non-finite, so no posterior can be formed. Usually the
// grids do not cover the region where the posterior mass actually lives.
type DegenerateEvidenceError struct {
	Total float64
}

// ShapeMismatchError reports that two tables (or a grid and a weight vector)
// were built over incompatible shapes.
type ShapeMismatchError struct {
	Want []int
	Got  []int
}
