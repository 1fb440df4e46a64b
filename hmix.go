/*
 * hmix.go, part of gohmix.
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

//Package hmix fits Redlich-Kister polynomials to isothermal titration
//calorimetry (ITC) measurements of binary liquid mixtures, and derives
//partial molar and excess mixing enthalpy curves from the fitted model.
//The input is a sequence of titration points, each recording the amounts
//of both components in the ampoule before an injection, the amounts
//delivered by the injection, and the measured heat. All amounts are in
//mol and all heats in J; unit conversion from instrument-native units is
//the job of the itc subpackage, not of this one.
package hmix

// MaxDegree is the highest Redlich-Kister expansion order supported.
// Coefficients beyond the selected degree are held at zero.
const MaxDegree = 4

//Point is one titration step: the amounts (mol) of components 1 and 2
//in the ampoule immediately before the injection (N1c, N2c), the amounts
//delivered by the injection (N1d, N2d) and the measured heat release Q (J).
type Point struct {
	N1c float64
	N2c float64
	N1d float64
	N2d float64
	Q   float64
}

//X2 returns the mole fraction of component 2 in the ampoule before
//the injection. It is the composition against which experimental heats
//are normally tabulated.
func (P *Point) X2() float64 {
	return P.N2c / (P.N1c + P.N2c)
}

//checkPoints verifies the per-point invariants: some material in the
//ampoule and some material in each injection. A violation means the
//input data is malformed, so the whole fit is rejected rather than
//the point silently skipped.
func checkPoints(points []Point) error {
	if len(points) == 0 {
		return &Error{message: ErrNoData, index: -1, kind: KindDomain, critical: true}
	}
	for i, p := range points {
		if p.N1c+p.N2c <= 0 {
			return &Error{message: ErrEmptyAmpoule, index: i, kind: KindDomain, critical: true}
		}
		if p.N1d+p.N2d <= 0 {
			return &Error{message: ErrEmptyInjection, index: i, kind: KindDomain, critical: true}
		}
	}
	return nil
}

//Coefficients is a full Redlich-Kister coefficient vector a0..a4.
//Entries above the degree selected for a fit stay at exactly zero.
type Coefficients [MaxDegree + 1]float64
