/*
 * main.go, part of gohmix.
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

//The hmix command fits a Redlich-Kister polynomial to a titration
//calorimetry experiment and writes the partial molar and excess mixing
//enthalpies derived from the fit. The input is a five-column table
//(n1c/mol n2c/mol n1d/mmol n2d/mmol Q/J), the format of the data tables
//in E. Matteoli, L. Lepori, Fluid Phase Eq. 174 (2000) 115-131.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rmera/gohmix"
	"github.com/rmera/gohmix/hmixplot"
	"github.com/rmera/gohmix/itc"
)

func main() {
	degree := flag.Int("d", 4, "degree of the RK polynomial (0-4)")
	ngrid := flag.Int("n", hmix.DefaultCurvePoints, "points in the composition grid for the fitted curves")
	maxit := flag.Int("maxit", 100, "iteration cap for the fit")
	doplot := flag.Bool("plot", false, "also write PNG plots of residuals and curves")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: hmix [flags] itcfile")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	fname := flag.Arg(0)
	base := strings.Split(fname, ".")[0]

	points, err := itc.TableFileRead(fname)
	if err != nil {
		die(err)
	}
	opts := hmix.DefaultFitOptions()
	opts.MaxIterations = *maxit
	res, err := hmix.Fit(points, *degree, opts)
	if err != nil {
		die(err)
	}
	fmt.Print(res.String())
	if !res.Converged {
		fmt.Println("warning: the fit did not converge, writing the best coefficients found")
	}

	qt := hmix.QTable(points, res.Coefficients)
	qfile := base + "_q.out"
	if err := writeFile(qfile, func(w io.Writer) error { return itc.QTableWrite(w, qt) }); err != nil {
		die(err)
	}
	fmt.Printf("calculated heats:\n  %s\n", qfile)

	h1exp, h2exp := hmix.Dilutions(points)
	h1file := base + "_h1.out"
	h2file := base + "_h2.out"
	err = writeFile(h1file, func(w io.Writer) error { return itc.SamplesWrite(w, h1exp, "h1") })
	if err != nil {
		die(err)
	}
	err = writeFile(h2file, func(w io.Writer) error { return itc.SamplesWrite(w, h2exp, "h2") })
	if err != nil {
		die(err)
	}
	fmt.Printf("experimental partial molar h:\n  %s\n  %s\n", h1file, h2file)

	ct := hmix.Curves(res.Coefficients, *ngrid)
	hrkfile := base + "_hrk.out"
	if err := writeFile(hrkfile, func(w io.Writer) error { return itc.CurvesWrite(w, ct) }); err != nil {
		die(err)
	}
	fmt.Printf("calculated partial molar and excess H:\n  %s\n", hrkfile)

	if *doplot {
		if err := hmixplot.ResidualPlot(qt, "heat residuals", base+"_q.png"); err != nil {
			die(err)
		}
		if err := hmixplot.EnthalpyPlot(h1exp, h2exp, ct, "partial molar and excess H", base+"_hrk.png"); err != nil {
			die(err)
		}
		fmt.Printf("plots:\n  %s_q.png\n  %s_hrk.png\n", base, base)
	}
}

func writeFile(name string, write func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func die(err error) {
	fmt.Fprintln(os.Stderr, "hmix:", err)
	os.Exit(1)
}
