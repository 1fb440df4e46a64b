/*
 * residual.go, part of gohmix.
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

//Residuals binds a titration dataset once and returns the residual
//evaluator used by the optimizer: dst[i] = Qcalc(points[i], a) - q[i].
//The returned function is pure, it never mutates the points, so it can
//be called from several goroutines at once (each call must bring its
//own dst).
func Residuals(points []Point) func(a Coefficients, dst []float64) {
	return func(a Coefficients, dst []float64) {
		for i := range points {
			dst[i] = Qcalc(points[i], a) - points[i].Q
		}
	}
}
