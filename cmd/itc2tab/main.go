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

//The itc2tab command converts raw ITC run logs to the standard
//five-column titration table on the standard output. Several runs may
//be concatenated into one table.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rmera/gohmix"
	"github.com/rmera/gohmix/itc"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: itc2tab runfile [runfile ...]")
		fmt.Fprintln(os.Stderr, "run file format:")
		fmt.Fprintln(os.Stderr, "  title")
		fmt.Fprintln(os.Stderr, "  ampoule: n1c n2c            (mol)")
		fmt.Fprintln(os.Stderr, "  dispenser: x1 x2 rho v      (mole fractions, mol/L, muL)")
		fmt.Fprintln(os.Stderr, "  Q/mJ")
		fmt.Fprintln(os.Stderr, "  ...")
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	var points []hmix.Point
	for _, fname := range flag.Args() {
		pts, err := itc.RunFileRead(fname)
		if err != nil {
			fmt.Fprintln(os.Stderr, "itc2tab:", err)
			os.Exit(1)
		}
		points = append(points, pts...)
	}
	if err := itc.TableWrite(os.Stdout, points); err != nil {
		fmt.Fprintln(os.Stderr, "itc2tab:", err)
		os.Exit(1)
	}
}
