/*
 * heat.go, part of gohmix.
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

//Qcalc predicts the heat effect (J) of one titration step from the
//Redlich-Kister coefficients a. It is an enthalpy balance: the heat
//released is the difference between the partial molar enthalpy state of
//the mixed ampoule and the pre-mixing states of both the injected
//material and the previous ampoule contents:
//
//	q = n1d*(h1(x1cf)-h1(x1d)) + n1c*(h1(x1cf)-h1(x1ci)) +
//	    n2d*(h2(x2cf)-h2(x2d)) + n2c*(h2(x2cf)-h2(x2ci))
//
//Terms whose amount factor is zero are skipped, not evaluated: when
//n1d=0 the dispenser composition x1d is a 0/0 for that term (and the
//term vanishes anyway), and when the ampoule holds none of a component
//its initial mole fraction never enters the balance. This makes pure
//dilution points and pure-solvent ampoules well-defined.
func Qcalc(p Point, a Coefficients) float64 {
	nc := p.N1c + p.N2c
	nd := p.N1d + p.N2d
	x2cf := (p.N2c + p.N2d) / (nc + nd)
	x1cf := 1.0 - x2cf
	q := 0.0
	if p.N1d > 0 {
		x1d := p.N1d / nd
		q += p.N1d * (H1(x1cf, a) - H1(x1d, a))
	}
	if p.N1c > 0 {
		x1ci := p.N1c / nc
		q += p.N1c * (H1(x1cf, a) - H1(x1ci, a))
	}
	if p.N2d > 0 {
		x2d := p.N2d / nd
		q += p.N2d * (H2(x2cf, a) - H2(x2d, a))
	}
	if p.N2c > 0 {
		x2ci := p.N2c / nc
		q += p.N2c * (H2(x2cf, a) - H2(x2ci, a))
	}
	return q
}
