/*
 * run.go, part of gohmix.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rmera/gohmix"
)

//RunRead reads one raw instrument run log and assembles titration
//points from it. The format is
//
//	title
//	ampoule: n1c n2c            (initial amounts in the ampoule, mol)
//	dispenser: x1 x2 rho v      (dispenser composition, density mol/L, addition volume muL)
//	Q/mJ
//	...
//
//one heat per injection, # lines skipped. The dosing program delivers
//i times the base volume on the i-th injection, and the ampoule
//amounts accumulate over the run. Heats are converted from mJ to J.
func RunRead(r io.Reader) ([]hmix.Point, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() { //title, ignored
		return nil, fmt.Errorf("itc: empty run file")
	}
	if !scanner.Scan() {
		return nil, fmt.Errorf("itc: run file truncated at the ampoule line")
	}
	tok := strings.Fields(strings.TrimSpace(scanner.Text()))
	if len(tok) < 3 || !strings.HasPrefix(tok[0], "amp") {
		return nil, fmt.Errorf("itc: line 2 is not \"ampoule: n1c n2c\"")
	}
	n1c, err1 := strconv.ParseFloat(tok[1], 64)
	n2c, err2 := strconv.ParseFloat(tok[2], 64)
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("itc: bad ampoule amounts %q %q", tok[1], tok[2])
	}
	if !scanner.Scan() {
		return nil, fmt.Errorf("itc: run file truncated at the dispenser line")
	}
	tok = strings.Fields(strings.TrimSpace(scanner.Text()))
	if len(tok) < 5 || !strings.HasPrefix(tok[0], "dis") {
		return nil, fmt.Errorf("itc: line 3 is not \"dispenser: x1 x2 rho v\"")
	}
	var d [4]float64
	for i := 0; i < 4; i++ {
		var err error
		d[i], err = strconv.ParseFloat(tok[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("itc: bad dispenser field %q", tok[i+1])
		}
	}
	x1d, x2d, rho, vol := d[0], d[1], d[2], d[3]

	var points []hmix.Point
	i := 1
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tok := strings.Fields(line)
		q, err := strconv.ParseFloat(tok[0], 64)
		if err != nil {
			return nil, fmt.Errorf("itc: bad heat %q", tok[0])
		}
		//dose of injection i, mol: i*(mol/L)*(muL)*1e-6
		n1d := float64(i) * x1d * rho * vol * 1.0e-6
		n2d := float64(i) * x2d * rho * vol * 1.0e-6
		points = append(points, hmix.Point{
			N1c: n1c,
			N2c: n2c,
			N1d: n1d,
			N2d: n2d,
			Q:   q * 1.0e-3,
		})
		n1c += n1d
		n2c += n2d
		i++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

//RunFileRead reads a raw run log from the named file, decompressing
//.gz and .zst transparently.
func RunFileRead(fname string) ([]hmix.Point, error) {
	s, err := prepSource(fname)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	pts, err := RunRead(s.r)
	if err != nil {
		return nil, fmt.Errorf("%v (file %s)", err, fname)
	}
	return pts, nil
}
