/*
 * curves.go, part of gohmix.
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

import "gonum.org/v1/gonum/floats"

//DefaultCurvePoints is the reference composition-grid resolution:
//101 points from x2=0 to x2=1 inclusive.
const DefaultCurvePoints = 101

//Sample is one experimental partial-molar enthalpy value (J/mol) at
//ampoule composition X2 (mole fraction of component 2 before the
//injection).
type Sample struct {
	X2 float64
	H  float64
}

//Dilutions scans the titration points for pure dilutions and converts
//them directly to experimental partial molar enthalpies, bypassing the
//model entirely. A point injecting only component 1 (n1d>0, n2d==0)
//gives an h1 sample q/n1d, a point injecting only component 2 the
//mirror h2 sample q/n2d, both at the pre-injection ampoule composition.
//Mixed injections contribute to neither slice.
func Dilutions(points []Point) (h1, h2 []Sample) {
	for i := range points {
		p := &points[i]
		x2 := p.X2()
		if p.N1d > 0 && p.N2d == 0 {
			h1 = append(h1, Sample{X2: x2, H: p.Q / p.N1d})
		}
		if p.N2d > 0 && p.N1d == 0 {
			h2 = append(h2, Sample{X2: x2, H: p.Q / p.N2d})
		}
	}
	return h1, h2
}

//CurveTable holds the fitted partial molar and excess enthalpies over a
//uniform composition grid. All slices have the same length.
type CurveTable struct {
	X2 []float64 //mole fraction of component 2
	H1 []float64 //partial molar excess enthalpy of component 1 (J/mol)
	H2 []float64 //partial molar excess enthalpy of component 2 (J/mol)
	HE []float64 //excess molar enthalpy (J/mol)
}

//Curves evaluates h1, h2 and he from the coefficients a over n evenly
//spaced compositions x2 in [0,1], endpoints included. If n is less than
//2, DefaultCurvePoints is used.
func Curves(a Coefficients, n int) *CurveTable {
	if n < 2 {
		n = DefaultCurvePoints
	}
	ct := &CurveTable{
		X2: make([]float64, n),
		H1: make([]float64, n),
		H2: make([]float64, n),
		HE: make([]float64, n),
	}
	floats.Span(ct.X2, 0, 1)
	for i, x2 := range ct.X2 {
		ct.H1[i] = H1(1.0-x2, a)
		ct.H2[i] = H2(x2, a)
		ct.HE[i] = HE2(x2, a)
	}
	return ct
}

//QPoint is one row of the per-point comparison table.
type QPoint struct {
	Index int     //position in the experimental sequence
	X2    float64 //ampoule composition before the injection
	QObs  float64 //measured heat (J)
	QCalc float64 //model-predicted heat (J)
}

//QTable compares the observed heats with the model prediction for every
//titration point, preserving the experimental order.
func QTable(points []Point, a Coefficients) []QPoint {
	t := make([]QPoint, len(points))
	for i, p := range points {
		t[i] = QPoint{
			Index: i,
			X2:    p.X2(),
			QObs:  p.Q,
			QCalc: Qcalc(p, a),
		}
	}
	return t
}
