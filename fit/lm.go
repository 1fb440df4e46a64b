/*
 * lm.go, part of gohmix.
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

//Package fit implements a Levenberg-Marquardt minimizer for nonlinear
//least-squares problems: it finds x minimizing 0.5*||f(x)||^2 for a
//residual function f: R^n -> R^m. The damping update follows Nielsen
//(gain-ratio control), with the damped normal equations solved by a
//Cholesky factorization and a QR fallback.
package fit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Func evaluates the m residuals at the parameters x, storing them in dst.
//It must not retain either slice.
type Func func(dst, x []float64)

//Jac evaluates the m x n Jacobian of the residuals at x.
type Jac func(jac *mat.Dense, x []float64)

//Problem specifies a nonlinear least-squares problem.
type Problem struct {
	Dim        int       //number of parameters n
	Size       int       //number of residuals m
	Func       Func      //residual function
	Jac        Jac       //optional analytic Jacobian. If nil, finite differences are used.
	InitParams []float64 //starting point. If nil, the origin.
	Tau        float64   //seed for the damping parameter. Default 1e-3.
	Eps1       float64   //gradient infinity-norm tolerance. Default 1e-10.
	Eps2       float64   //relative step-norm tolerance. Default 1e-10.
}

//Settings control the iteration itself rather than the problem.
type Settings struct {
	//The iteration stops when this many iterations have been performed,
	//whether or not a tolerance has been met.
	MaxIterations int
	//Finite-difference scheme for the numerical Jacobian (ignored when
	//an analytic Jacobian is given).
	Method Method
	//Number of goroutines evaluating Jacobian columns. Values below 2
	//mean serial evaluation. The result does not depend on Workers.
	Workers int
}

//DefaultSettings returns reasonable settings for well-scaled problems.
func DefaultSettings() *Settings {
	return &Settings{MaxIterations: 100, Method: Forward, Workers: 1}
}

//Status tells why the iteration stopped.
type Status int

const (
	//SmallGradient means the infinity norm of the gradient J^T*f fell
	//below Eps1. The usual "converged" outcome.
	SmallGradient Status = iota
	//SmallStep means the last parameter step was below the relative
	//tolerance Eps2. Also a converged outcome.
	SmallStep
	//IterCap means MaxIterations was reached before any tolerance was
	//met. The best parameters found so far are still returned.
	IterCap
)

func (s Status) String() string {
	switch s {
	case SmallGradient:
		return "gradient below tolerance"
	case SmallStep:
		return "step below tolerance"
	case IterCap:
		return "iteration cap reached"
	}
	return "unknown"
}

//Converged is true for the outcomes that met a tolerance.
func (s Status) Converged() bool {
	return s == SmallGradient || s == SmallStep
}

//Result is the outcome of one minimization.
type Result struct {
	X          []float64     //best parameters found
	RSS        float64       //residual sum of squares at X
	Status     Status        //why the iteration stopped
	Iterations int           //LM iterations performed
	FuncEvals  int           //residual function evaluations, Jacobian included
	JacEvals   int           //Jacobian evaluations
	JTJ        *mat.SymDense //J^T*J at X, for covariance estimates
}

//NonFiniteError reports a NaN or Inf residual. Index is the position of
//the offending residual, which for fitting problems is the index of the
//data point.
type NonFiniteError struct {
	Index int
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("fit: non-finite residual at index %d", e.Index)
}

//LM minimizes 0.5*||f(x)||^2 with the Levenberg-Marquardt algorithm.
//On success the returned error is nil even if the iteration cap was
//reached; check Result.Status for that. A non-finite residual aborts
//the run with a *NonFiniteError, since a single NaN makes the
//sum-of-squares objective meaningless.
func LM(p Problem, set *Settings) (*Result, error) {
	if set == nil {
		set = DefaultSettings()
	}
	switch {
	case p.Dim <= 0:
		return nil, errors.New("fit: problem dimension must be greater than 0")
	case p.Size < p.Dim:
		return nil, errors.New("fit: fewer residuals than parameters")
	case p.Func == nil:
		return nil, errors.New("fit: residual function is required")
	case set.MaxIterations <= 0:
		return nil, errors.New("fit: max iterations must be greater than 0")
	case p.InitParams != nil && len(p.InitParams) != p.Dim:
		return nil, errors.New("fit: initial parameters dimension mismatch")
	}

	n, m := p.Dim, p.Size
	tau := p.Tau
	if tau <= 0 {
		tau = 1e-3
	}
	eps1 := p.Eps1
	if eps1 <= 0 {
		eps1 = 1e-10
	}
	eps2 := p.Eps2
	if eps2 <= 0 {
		eps2 = 1e-10
	}

	x := make([]float64, n)
	if p.InitParams != nil {
		copy(x, p.InitParams)
	}

	jacf := p.Jac
	jacCost := 0 //Func evaluations each Jacobian costs
	if jacf == nil {
		nj := &NumJac{Func: p.Func, Method: set.Method, Workers: set.Workers}
		jacf = nj.Jac
		jacCost = nj.evalsPerCall(n)
	}

	res := &Result{X: x}
	f := make([]float64, m)
	fnew := make([]float64, m)
	xnew := make([]float64, n)
	g := make([]float64, n)
	h := make([]float64, n)
	jac := mat.NewDense(m, n, nil)
	jtj := mat.NewSymDense(n, nil)
	damped := mat.NewSymDense(n, nil)

	eval := func(dst, at []float64) error {
		p.Func(dst, at)
		res.FuncEvals++
		for i, v := range dst {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &NonFiniteError{Index: i}
			}
		}
		return nil
	}
	jacobian := func(at []float64) error {
		jacf(jac, at)
		res.JacEvals++
		res.FuncEvals += jacCost
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				if v := jac.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
					return &NonFiniteError{Index: i}
				}
			}
		}
		return nil
	}

	if err := eval(f, x); err != nil {
		return nil, err
	}
	F := 0.5 * floats.Dot(f, f)
	if err := jacobian(x); err != nil {
		return nil, err
	}
	normalEqs(jtj, g, jac, f)

	res.Status = IterCap
	if floats.Norm(g, math.Inf(1)) <= eps1 {
		res.Status = SmallGradient
		res.RSS = 2 * F
		res.JTJ = jtj
		return res, nil
	}

	mu := tau * maxDiag(jtj)
	nu := 2.0

	for k := 0; k < set.MaxIterations; k++ {
		res.Iterations = k + 1
		if !solveDamped(h, damped, jtj, g, mu) {
			//factorization failed even with damping; push mu up and retry
			mu *= nu
			nu *= 2
			continue
		}
		if floats.Norm(h, 2) <= eps2*(floats.Norm(x, 2)+eps2) {
			res.Status = SmallStep
			break
		}
		floats.AddTo(xnew, x, h)
		if err := eval(fnew, xnew); err != nil {
			return nil, err
		}
		Fnew := 0.5 * floats.Dot(fnew, fnew)
		//predicted decrease of the linear model: 0.5*h^T*(mu*h - g)
		pred := 0.0
		for i := range h {
			pred += 0.5 * h[i] * (mu*h[i] - g[i])
		}
		rho := (F - Fnew) / pred
		if pred > 0 && rho > 0 {
			copy(x, xnew)
			copy(f, fnew)
			F = Fnew
			if err := jacobian(x); err != nil {
				return nil, err
			}
			normalEqs(jtj, g, jac, f)
			if floats.Norm(g, math.Inf(1)) <= eps1 {
				res.Status = SmallGradient
				break
			}
			t := 2.0*rho - 1.0
			mu *= math.Max(1.0/3.0, 1.0-t*t*t)
			nu = 2.0
		} else {
			mu *= nu
			nu *= 2
		}
	}

	res.RSS = 2 * F
	res.JTJ = jtj
	return res, nil
}

//normalEqs fills jtj = J^T*J and g = J^T*f.
func normalEqs(jtj *mat.SymDense, g []float64, jac *mat.Dense, f []float64) {
	m, n := jac.Dims()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s := 0.0
			for k := 0; k < m; k++ {
				s += jac.At(k, i) * jac.At(k, j)
			}
			jtj.SetSym(i, j, s)
		}
		s := 0.0
		for k := 0; k < m; k++ {
			s += jac.At(k, i) * f[k]
		}
		g[i] = s
	}
}

//solveDamped solves (jtj + mu*I)*h = -g. It tries Cholesky first and
//falls back to QR if the damped matrix is not numerically positive
//definite. Returns false if both fail.
func solveDamped(h []float64, damped, jtj *mat.SymDense, g []float64, mu float64) bool {
	n := len(h)
	damped.CopySym(jtj)
	for i := 0; i < n; i++ {
		damped.SetSym(i, i, jtj.At(i, i)+mu)
	}
	rhs := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		rhs.SetVec(i, -g[i])
	}
	hv := mat.NewVecDense(n, h)
	var chol mat.Cholesky
	if chol.Factorize(damped) {
		if err := chol.SolveVecTo(hv, rhs); err == nil {
			return true
		}
	}
	var qr mat.QR
	qr.Factorize(mat.DenseCopyOf(damped))
	if err := qr.SolveVecTo(hv, false, rhs); err != nil {
		return false
	}
	return true
}

func maxDiag(a *mat.SymDense) float64 {
	n := a.SymmetricDim()
	d := 0.0
	for i := 0; i < n; i++ {
		if v := a.At(i, i); v > d {
			d = v
		}
	}
	if d == 0 {
		d = 1
	}
	return d
}
