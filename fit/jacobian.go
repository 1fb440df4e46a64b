/*
 * jacobian.go, part of gohmix.
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
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

var (
	sqrtEps = math.Sqrt(math.Nextafter(1, 2) - 1)
	cubeEps = math.Cbrt(math.Nextafter(1, 2) - 1)
)

//Method selects the finite-difference scheme for the numerical Jacobian.
type Method int

const (
	//Forward uses the first-order forward difference. One extra
	//function evaluation per parameter.
	Forward Method = iota
	//Central uses the second-order central difference. Twice as many
	//evaluations, about half the step-size error exponent.
	Central
)

//NumJac approximates the Jacobian of Func by finite differences.
//The step for parameter i is eps*max(1,|x_i|) with the sign of x_i,
//eps being the square (forward) or cube (central) root of the machine
//epsilon.
type NumJac struct {
	Func   Func
	Method Method
	//Workers is the number of goroutines evaluating columns. Columns
	//are independent, each worker gets its own copy of x and its own
	//residual buffer, so the result is the same for any Workers value.
	Workers int
}

//evalsPerCall is the number of Func evaluations one Jac call costs.
func (nj *NumJac) evalsPerCall(n int) int {
	if nj.Method == Central {
		return 2 * n
	}
	return n + 1
}

//Jac fills jac with the finite-difference Jacobian of nj.Func at x.
func (nj *NumJac) Jac(jac *mat.Dense, x []float64) {
	m, n := jac.Dims()
	var f0 []float64
	if nj.Method == Forward {
		f0 = make([]float64, m)
		nj.Func(f0, x)
	}
	if nj.Workers < 2 {
		buf := newJacBuffer(n, m, x)
		for i := 0; i < n; i++ {
			nj.column(jac, i, f0, buf)
		}
		return
	}
	cols := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < nj.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := newJacBuffer(n, m, x)
			for i := range cols {
				nj.column(jac, i, f0, buf)
			}
		}()
	}
	for i := 0; i < n; i++ {
		cols <- i
	}
	close(cols)
	wg.Wait()
}

type jacBuffer struct {
	x      []float64
	fa, fb []float64
}

func newJacBuffer(n, m int, x []float64) *jacBuffer {
	b := &jacBuffer{
		x:  make([]float64, n),
		fa: make([]float64, m),
		fb: make([]float64, m),
	}
	copy(b.x, x)
	return b
}

//column fills column i of jac. Distinct columns touch distinct entries
//of the (dense, row-major) matrix, so concurrent calls on different i
//are safe.
func (nj *NumJac) column(jac *mat.Dense, i int, f0 []float64, b *jacBuffer) {
	eps := sqrtEps
	if nj.Method == Central {
		eps = cubeEps
	}
	t := b.x[i]
	s := math.Copysign(eps, t) * math.Max(1.0, math.Abs(t))
	//make the step exactly representable
	s = (t + s) - t
	if s == 0 {
		s = eps
	}
	switch nj.Method {
	case Central:
		b.x[i] = t - s
		nj.Func(b.fa, b.x)
		b.x[i] = t + s
		nj.Func(b.fb, b.x)
		d := 1.0 / (2.0 * s)
		for j := range b.fa {
			jac.Set(j, i, (b.fb[j]-b.fa[j])*d)
		}
	default:
		b.x[i] = t + s
		nj.Func(b.fb, b.x)
		d := 1.0 / s
		for j := range b.fb {
			jac.Set(j, i, (b.fb[j]-f0[j])*d)
		}
	}
	b.x[i] = t
}
