/*
 * fitdriver.go, part of gohmix.
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package hmix

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/rmera/gohmix/fit"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//FitOptions holds the knobs of the optimization. The zero value is not
//usable, get one from DefaultFitOptions and change what you need.
type FitOptions struct {
	MaxIterations int     //iteration cap for the Levenberg-Marquardt loop
	Tau           float64 //damping seed
	GradTol       float64 //gradient infinity-norm tolerance
	StepTol       float64 //relative parameter-step tolerance
	Central       bool    //use central instead of forward differences for the Jacobian
	Workers       int     //goroutines for Jacobian columns, below 2 means serial
}

//DefaultFitOptions returns options adequate for typical ITC datasets
//(tens of points, heats well under a joule).
func DefaultFitOptions() *FitOptions {
	return &FitOptions{
		MaxIterations: 100,
		Tau:           1e-3,
		GradTol:       1e-10,
		StepTol:       1e-10,
		Central:       false,
		Workers:       1,
	}
}

//FitResult holds the fitted coefficients and the fit diagnostics. It is
//built once by Fit and not modified afterwards.
type FitResult struct {
	Coefficients Coefficients //a0..a4, entries above Degree are exactly zero
	Stderr       Coefficients //standard errors, zero for the fixed entries
	Degree       int          //the degree selector used
	Converged    bool         //false if the iteration cap was reached first
	Status       fit.Status   //why the optimizer stopped
	Iterations   int
	FuncEvals    int
	JacEvals     int
	RSS          float64 //final residual sum of squares (J^2)
	RedChi2      float64 //RSS/(data points - free coefficients), NaN if no degrees of freedom
	R2           float64 //coefficient of determination of predicted vs observed heats
	NData        int
	NFree        int
}

//String formats a fit report.
func (R *FitResult) String() string {
	var b strings.Builder
	conv := "yes"
	if !R.Converged {
		conv = "NO"
	}
	fmt.Fprintf(&b, "[[Fit Statistics]]\n")
	fmt.Fprintf(&b, "    data points       = %d\n", R.NData)
	fmt.Fprintf(&b, "    free coefficients = %d (degree %d)\n", R.NFree, R.Degree)
	fmt.Fprintf(&b, "    iterations        = %d\n", R.Iterations)
	fmt.Fprintf(&b, "    function evals    = %d\n", R.FuncEvals)
	fmt.Fprintf(&b, "    converged         = %s (%v)\n", conv, R.Status)
	fmt.Fprintf(&b, "    sum of squares    = %.5e\n", R.RSS)
	fmt.Fprintf(&b, "    reduced chi-sqr   = %.5e\n", R.RedChi2)
	fmt.Fprintf(&b, "    R-squared         = %.8f\n", R.R2)
	fmt.Fprintf(&b, "[[Coefficients]]\n")
	for i := 0; i <= MaxDegree; i++ {
		if i > R.Degree {
			fmt.Fprintf(&b, "    a%d: %12.5e (fixed)\n", i, 0.0)
			continue
		}
		fmt.Fprintf(&b, "    a%d: %12.5e +/- %.5e\n", i, R.Coefficients[i], R.Stderr[i])
	}
	return b.String()
}

//Fit determines the Redlich-Kister coefficients a0..a_degree from the
//given titration points by nonlinear least squares, starting from the
//zero vector. Coefficients above degree are held at exactly zero and
//never perturbed. Reaching the iteration cap is not an error: the best
//coefficients found are returned with Converged set to false, and
//accepting or rejecting them is the caller's decision. A nil opts means
//DefaultFitOptions().
func Fit(points []Point, degree int, opts *FitOptions) (*FitResult, error) {
	if degree < 0 || degree > MaxDegree {
		return nil, &Error{message: ErrBadDegree, kind: KindConfig, index: -1, critical: true}
	}
	if err := checkPoints(points); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = DefaultFitOptions()
	}
	nfree := degree + 1
	m := len(points)
	if m < nfree {
		return nil, &Error{message: ErrFewPoints, kind: KindDomain, index: -1, critical: true}
	}

	resid := Residuals(points)
	fn := func(dst, x []float64) {
		var a Coefficients
		copy(a[:nfree], x)
		resid(a, dst)
	}

	method := fit.Forward
	if opts.Central {
		method = fit.Central
	}
	prob := fit.Problem{
		Dim:  nfree,
		Size: m,
		Func: fn,
		Tau:  opts.Tau,
		Eps1: opts.GradTol,
		Eps2: opts.StepTol,
	}
	set := &fit.Settings{
		MaxIterations: opts.MaxIterations,
		Method:        method,
		Workers:       opts.Workers,
	}
	lmres, err := fit.LM(prob, set)
	if err != nil {
		if nf, ok := err.(*fit.NonFiniteError); ok {
			return nil, &Error{message: ErrNonFinite, kind: KindNumeric, index: nf.Index, critical: true}
		}
		return nil, err
	}

	res := &FitResult{
		Degree:     degree,
		Converged:  lmres.Status.Converged(),
		Status:     lmres.Status,
		Iterations: lmres.Iterations,
		FuncEvals:  lmres.FuncEvals,
		JacEvals:   lmres.JacEvals,
		RSS:        lmres.RSS,
		NData:      m,
		NFree:      nfree,
	}
	copy(res.Coefficients[:nfree], lmres.X)

	dof := m - nfree
	res.RedChi2 = math.NaN()
	if dof > 0 {
		res.RedChi2 = lmres.RSS / float64(dof)
	}
	res.fillStderr(lmres.JTJ)
	res.R2 = rsquared(points, res.Coefficients)
	return res, nil
}

//fillStderr computes the per-coefficient standard errors from the
//covariance approximation (J^T*J)^-1 * redchi2. If the normal matrix is
//singular the free errors are reported as NaN; the fixed entries always
//stay at zero, their uncertainty is not a meaningful quantity.
func (R *FitResult) fillStderr(jtj *mat.SymDense) {
	if jtj == nil || math.IsNaN(R.RedChi2) {
		for i := 0; i < R.NFree; i++ {
			R.Stderr[i] = math.NaN()
		}
		return
	}
	var chol mat.Cholesky
	if !chol.Factorize(jtj) {
		log.Println("gohmix: singular normal matrix, no standard errors")
		for i := 0; i < R.NFree; i++ {
			R.Stderr[i] = math.NaN()
		}
		return
	}
	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		log.Println("gohmix: could not invert normal matrix:", err)
		for i := 0; i < R.NFree; i++ {
			R.Stderr[i] = math.NaN()
		}
		return
	}
	for i := 0; i < R.NFree; i++ {
		R.Stderr[i] = math.Sqrt(cov.At(i, i) * R.RedChi2)
	}
}

//rsquared is the coefficient of determination of the predicted against
//the observed heats.
func rsquared(points []Point, a Coefficients) float64 {
	est := make([]float64, len(points))
	obs := make([]float64, len(points))
	for i, p := range points {
		est[i] = Qcalc(p, a)
		obs[i] = p.Q
	}
	return stat.RSquaredFrom(est, obs, nil)
}
