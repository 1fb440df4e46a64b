/*
 * lm_test.go, part of gohmix.
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

package fit

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

//a straight line through exact data: LM must land on the generating
//parameters.
func TestLinear(Te *testing.T) {
	slope, inter := 2.5, -1.0
	m := 12
	f := func(dst, x []float64) {
		for i := 0; i < m; i++ {
			t := float64(i)
			dst[i] = x[0] + x[1]*t - (inter + slope*t)
		}
	}
	res, err := LM(Problem{Dim: 2, Size: m, Func: f}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("linear:", res.X, res.Status, res.Iterations)
	if !res.Status.Converged() {
		Te.Error("did not converge on a linear problem")
	}
	if math.Abs(res.X[0]-inter) > 1e-8 || math.Abs(res.X[1]-slope) > 1e-8 {
		Te.Errorf("got %v, want [%g %g]", res.X, inter, slope)
	}
	if res.RSS > 1e-16 {
		Te.Errorf("RSS = %g on exact data", res.RSS)
	}
}

//an exponential decay, the classic small nonlinear test.
func TestExponential(Te *testing.T) {
	b1, b2 := 5.0, -1.5
	m := 10
	y := make([]float64, m)
	for i := range y {
		y[i] = b1 * math.Exp(b2*float64(i)*0.3)
	}
	f := func(dst, x []float64) {
		for i := 0; i < m; i++ {
			dst[i] = x[0]*math.Exp(x[1]*float64(i)*0.3) - y[i]
		}
	}
	p := Problem{Dim: 2, Size: m, Func: f, InitParams: []float64{1, 0}}
	set := DefaultSettings()
	set.Method = Central
	res, err := LM(p, set)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("exponential:", res.X, res.Status, res.Iterations, res.FuncEvals)
	if !res.Status.Converged() {
		Te.Error("did not converge:", res.Status)
	}
	if math.Abs(res.X[0]-b1) > 1e-6 || math.Abs(res.X[1]-b2) > 1e-6 {
		Te.Errorf("got %v, want [%g %g]", res.X, b1, b2)
	}
}

//the numerical Jacobian against an analytic one, serial and concurrent.
func TestNumJac(Te *testing.T) {
	f := func(dst, x []float64) {
		dst[0] = x[0] * x[0]
		dst[1] = x[0] * x[1]
		dst[2] = math.Sin(x[1])
	}
	x := []float64{1.3, -0.7}
	want := [][]float64{
		{2 * x[0], 0},
		{x[1], x[0]},
		{0, math.Cos(x[1])},
	}
	for _, method := range []Method{Forward, Central} {
		tol := 1e-6
		if method == Central {
			tol = 1e-9
		}
		nj := &NumJac{Func: f, Method: method}
		jac := mat.NewDense(3, 2, nil)
		nj.Jac(jac, x)
		for i := 0; i < 3; i++ {
			for j := 0; j < 2; j++ {
				if d := math.Abs(jac.At(i, j) - want[i][j]); d > tol {
					Te.Errorf("method %v: jac[%d,%d]=%g, want %g", method, i, j, jac.At(i, j), want[i][j])
				}
			}
		}
		conc := &NumJac{Func: f, Method: method, Workers: 3}
		jac2 := mat.NewDense(3, 2, nil)
		conc.Jac(jac2, x)
		if !mat.Equal(jac, jac2) {
			Te.Errorf("method %v: concurrent Jacobian differs from serial", method)
		}
	}
}

//a non-finite residual must abort with the offending index.
func TestNonFinite(Te *testing.T) {
	f := func(dst, x []float64) {
		dst[0] = x[0]
		dst[1] = math.NaN()
		dst[2] = x[0] - 1
	}
	_, err := LM(Problem{Dim: 1, Size: 3, Func: f}, nil)
	if err == nil {
		Te.Fatal("NaN residual accepted")
	}
	nf, ok := err.(*NonFiniteError)
	if !ok {
		Te.Fatalf("got %T, want *NonFiniteError", err)
	}
	if nf.Index != 1 {
		Te.Errorf("offending index %d, want 1", nf.Index)
	}
}

//hitting the cap is a status, not an error.
func TestIterCap(Te *testing.T) {
	m := 8
	f := func(dst, x []float64) {
		for i := 0; i < m; i++ {
			dst[i] = x[0]*math.Exp(x[1]*float64(i)) - math.Sin(11.0*float64(i+1))
		}
	}
	p := Problem{Dim: 2, Size: m, Func: f, InitParams: []float64{1, -1}, Eps1: 1e-300, Eps2: 1e-300}
	res, err := LM(p, &Settings{MaxIterations: 2})
	if err != nil {
		Te.Fatal(err)
	}
	if res.Status != IterCap {
		Te.Errorf("status %v, want the iteration cap", res.Status)
	}
	if res.Status.Converged() {
		Te.Error("iteration cap reported as converged")
	}
	if res.X == nil || res.JTJ == nil {
		Te.Error("best-effort result incomplete")
	}
}

func TestBadProblems(Te *testing.T) {
	ok := func(dst, x []float64) { dst[0] = x[0] }
	cases := []Problem{
		{Dim: 0, Size: 1, Func: ok},
		{Dim: 2, Size: 1, Func: ok},
		{Dim: 1, Size: 1},
		{Dim: 1, Size: 1, Func: ok, InitParams: []float64{1, 2}},
	}
	for i, p := range cases {
		if _, err := LM(p, nil); err == nil {
			Te.Errorf("case %d accepted", i)
		}
	}
	if _, err := LM(Problem{Dim: 1, Size: 1, Func: ok}, &Settings{MaxIterations: 0}); err == nil {
		Te.Error("zero iteration cap accepted")
	}
}
