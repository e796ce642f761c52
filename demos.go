package main

import (
	"fmt"
	"path/filepath"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// --- SYNTHETIC DATA ---

// SyntheticNormal draws n observations from Normal(mu, sigma) using the
// given source, standing in for the simulated datasets the demos are
// built around.
func SyntheticNormal(n int, mu, sigma float64, src rand.Source) []float64 {
	d := distuv.Normal{Mu: mu, Sigma: sigma, Src: src}
	obs := make([]float64, n)
	for i := range obs {
		obs[i] = d.Rand()
	}
	return obs
}

// SyntheticBinomial draws n success counts from Binomial(trials, p).
func SyntheticBinomial(n, trials int, p float64, src rand.Source) []float64 {
	d := distuv.Binomial{N: float64(trials), P: p, Src: src}
	obs := make([]float64, n)
	for i := range obs {
		obs[i] = d.Rand()
	}
	return obs
}

// normalizedShape rescales a table's cells to sum to 1, for plotting a
// likelihood on the same scale as prior and posterior curves.
func normalizedShape(t *Table) []float64 {
	total := t.Sum()
	out := make([]float64, t.Len())
	for i, v := range t.Cells() {
		out[i] = v / total
	}
	return out
}

// --- DEMOS ---

// RunBinomialDemo estimates a success probability from 5 successes in 10
// trials under a Beta(2,2) prior: x/n = 0.5 and a symmetric prior, so the
// posterior peaks near 0.5.
func RunBinomialDemo(baseDir string) error {
	dir, err := MakeOutputDir(baseDir, "binomial")
	if err != nil {
		return err
	}

	const (
		successes = 5
		trials    = 10
	)
	fmt.Printf("Data: %d successes in %d trials\n", successes, trials)

	est, err := EstimatePosterior(
		[]float64{successes},
		[]GridSpec{{Lower: 0, Upper: 1, Step: 0.01}},
		BinomialModel{Trials: trials},
		[]Density{BetaPrior{Alpha: 2, Beta: 2}},
	)
	if err != nil {
		return err
	}

	PrintMarginalSummary("p", est.Marginals[0])

	// Approximate the posterior mean by sampling the grid, the way the
	// demos approximate point estimates from the discrete posterior.
	draws, err := SampleGrid(est.Grids[0], est.Posterior.Cells(), 10000, rand.NewSource(42))
	if err != nil {
		return err
	}
	fmt.Printf("p: sampled mean over 10000 draws = %.4f\n", stat.Mean(draws, nil))

	if err := OutputMarginalToCSV(filepath.Join(dir, "posterior.csv"), "p", est.Marginals[0]); err != nil {
		return err
	}

	series := []PlotSeries{
		{Name: "prior", Values: normalizedShape(est.Prior)},
		{Name: "likelihood", Values: normalizedShape(est.Likelihood)},
		{Name: "posterior", Values: est.Posterior.Cells()},
	}
	if err := SaveDistributionPlot(filepath.Join(dir, "posterior.png"),
		"Binomial grid approximation", "p", est.Grids[0], series); err != nil {
		return err
	}
	if err := RenderHTMLReport(filepath.Join(dir, "report.html"),
		"Binomial grid approximation", "p", est.Grids[0], series); err != nil {
		return err
	}

	fmt.Println("Binomial demo output written to", dir)
	return nil
}

// RunNormalDemo estimates the mean and scale of a normal from a single
// synthetic observation, with standard-normal priors on both. With one data
// point the maximum likelihood estimate of the mean is the observation
// itself; the posterior mean lands strictly between it and the prior mean 0,
// showing shrinkage toward the prior.
func RunNormalDemo(baseDir string) error {
	dir, err := MakeOutputDir(baseDir, "normal")
	if err != nil {
		return err
	}

	obs := SyntheticNormal(1, -3, 1, rand.NewSource(7))
	fmt.Printf("Data: single observation y = %.5f\n", obs[0])

	est, err := EstimatePosterior(
		obs,
		[]GridSpec{
			{Lower: -5, Upper: 5, Step: 0.05},   // mean
			{Lower: 0.05, Upper: 5, Step: 0.05}, // scale
		},
		NormalModel{},
		[]Density{
			NormalPrior{Mu: 0, Sigma: 1},
			NormalPrior{Mu: 0, Sigma: 1},
		},
	)
	if err != nil {
		return err
	}

	PrintMarginalSummary("mu", est.Marginals[0])
	PrintMarginalSummary("sigma", est.Marginals[1])

	muMean, err := PosteriorMean(est.Marginals[0])
	if err != nil {
		return err
	}
	fmt.Printf("shrinkage: MLE = %.4f, posterior mean = %.4f, prior mean = 0\n", obs[0], muMean)

	PrintJointPosterior(est.Posterior)

	for d, name := range []string{"mu", "sigma"} {
		if err := OutputMarginalToCSV(filepath.Join(dir, name+".csv"), name, est.Marginals[d]); err != nil {
			return err
		}
		series := []PlotSeries{{Name: "posterior " + name, Values: est.Marginals[d].Cells()}}
		if err := SaveDistributionPlot(filepath.Join(dir, name+".png"),
			"Marginal posterior of "+name, name, est.Grids[d], series); err != nil {
			return err
		}
	}

	if err := SaveJointHeatmap(filepath.Join(dir, "joint.png"),
		"Joint posterior", "sigma", "mu", est.Posterior); err != nil {
		return err
	}

	fmt.Println("Normal demo output written to", dir)
	return nil
}

// RunPriorComparisonDemo fits the same binomial data under a flat, a weak
// and a strong prior, showing how much each pulls the posterior away from
// the likelihood.
func RunPriorComparisonDemo(baseDir string) error {
	dir, err := MakeOutputDir(baseDir, "priors")
	if err != nil {
		return err
	}

	const trials = 20
	obs := SyntheticBinomial(1, trials, 0.75, rand.NewSource(11))
	fmt.Printf("Data: %.0f successes in %d trials\n", obs[0], trials)

	cases := []struct {
		name  string
		prior Density
	}{
		{"flat Uniform(0,1)", UniformPrior{Min: 0, Max: 1}},
		{"weak Beta(2,2)", BetaPrior{Alpha: 2, Beta: 2}},
		{"strong Beta(20,20)", BetaPrior{Alpha: 20, Beta: 20}},
	}

	var (
		grid   *Grid
		series []PlotSeries
	)
	for _, c := range cases {
		est, err := EstimatePosterior(
			obs,
			[]GridSpec{{Lower: 0, Upper: 1, Step: 0.01}},
			BinomialModel{Trials: trials},
			[]Density{c.prior},
		)
		if err != nil {
			return err
		}
		grid = est.Grids[0]
		PrintMarginalSummary("p | "+c.name, est.Marginals[0])
		series = append(series, PlotSeries{Name: c.name, Values: est.Posterior.Cells()})
	}

	if err := SaveDistributionPlot(filepath.Join(dir, "priors.png"),
		"Posterior under different priors", "p", grid, series); err != nil {
		return err
	}
	if err := RenderHTMLReport(filepath.Join(dir, "report.html"),
		"Posterior under different priors", "p", grid, series); err != nil {
		return err
	}

	fmt.Println("Prior comparison output written to", dir)
	return nil
}
