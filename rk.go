/*
 * rk.go, part of gohmix.
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

//The Redlich-Kister expansion for the excess molar enthalpy of a binary
//mixture, written in the mole fraction of component 2, is
//
//	HE(x2) = x2*(1-x2) * sum_i a_i*(1-2*x2)^i
//
//The same polynomial written in the mole fraction of component 1 uses
//(2*x1-1)^i instead, so HE2(x,a) == HE1(1-x,a) holds exactly.
//Differentiating the total enthalpy with respect to the moles of one
//component at constant moles of the other gives the partial molar
//enthalpies H1 and H2 below.

//HE2 returns the excess molar enthalpy (J/mol) at mole fraction x2 of
//component 2.
func HE2(x2 float64, a Coefficients) float64 {
	he := 0.0
	w := 1.0 - 2.0*x2
	p := 1.0
	for i := 0; i <= MaxDegree; i++ {
		he += a[i] * p
		p *= w
	}
	return he * x2 * (1.0 - x2)
}

//HE1 returns the excess molar enthalpy (J/mol) at mole fraction x1 of
//component 1. HE1(x,a) is identical to HE2(1-x,a).
func HE1(x1 float64, a Coefficients) float64 {
	he := 0.0
	w := 2.0*x1 - 1.0
	p := 1.0
	for i := 0; i <= MaxDegree; i++ {
		he += a[i] * p
		p *= w
	}
	return he * x1 * (1.0 - x1)
}

//H2 returns the partial molar excess enthalpy of component 2 (J/mol)
//at mole fraction x2 of component 2:
//(x2-1)^2 * ( x2 * sum_{i>=1} -2*i*a_i*(1-2*x2)^(i-1) + sum_i a_i*(1-2*x2)^i )
func H2(x2 float64, a Coefficients) float64 {
	da := 0.0
	b := 0.0
	w := 1.0 - 2.0*x2
	pm := 1.0 //w^(i-1)
	pi := 1.0 //w^i
	for i := 0; i <= MaxDegree; i++ {
		if i > 0 {
			da += -2.0 * float64(i) * a[i] * pm
			pm *= w
		}
		b += a[i] * pi
		pi *= w
	}
	return (x2 - 1.0) * (x2 - 1.0) * (x2*da + b)
}

//H1 returns the partial molar excess enthalpy of component 1 (J/mol)
//at mole fraction x1 of component 1. It is the mirror form of H2.
func H1(x1 float64, a Coefficients) float64 {
	da := 0.0
	b := 0.0
	w := 2.0*x1 - 1.0
	pm := 1.0 //w^(i-1)
	pi := 1.0 //w^i
	for i := 0; i <= MaxDegree; i++ {
		if i > 0 {
			da += 2.0 * float64(i) * a[i] * pm
			pm *= w
		}
		b += a[i] * pi
		pi *= w
	}
	return (1.0 - x1) * (1.0 - x1) * (x1*da + b)
}
