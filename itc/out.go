/*
 * out.go, part of gohmix.
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

package itc

import (
	"fmt"
	"io"

	"github.com/rmera/gohmix"
)

//QTableWrite writes the per-point observed/predicted heat table.
func QTableWrite(w io.Writer, table []hmix.QPoint) error {
	if _, err := fmt.Fprintln(w, "#     x2        Qexp/J       Qcalc/J"); err != nil {
		return err
	}
	for _, r := range table {
		_, err := fmt.Fprintf(w, "%5d %8.6f %12.5e %12.5e\n", r.Index, r.X2, r.QObs, r.QCalc)
		if err != nil {
			return err
		}
	}
	return nil
}

//SamplesWrite writes experimental partial molar enthalpy samples.
//label names the quantity in the header, "h1" or "h2".
func SamplesWrite(w io.Writer, samples []hmix.Sample, label string) error {
	if _, err := fmt.Fprintf(w, "# x2      %sexp/(J/mol)\n", label); err != nil {
		return err
	}
	for _, s := range samples {
		if _, err := fmt.Fprintf(w, "%8.6f %12.5e\n", s.X2, s.H); err != nil {
			return err
		}
	}
	return nil
}

//CurvesWrite writes the fitted enthalpy curves over the composition grid.
func CurvesWrite(w io.Writer, ct *hmix.CurveTable) error {
	if _, err := fmt.Fprintln(w, "# x2      h1/(J/mol)   h2/(J/mol)   he/(J/mol)"); err != nil {
		return err
	}
	for i := range ct.X2 {
		_, err := fmt.Fprintf(w, "%8.6f %12.5e %12.5e %12.5e\n", ct.X2[i], ct.H1[i], ct.H2[i], ct.HE[i])
		if err != nil {
			return err
		}
	}
	return nil
}
