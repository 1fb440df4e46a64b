/*
 * itc.go, part of gohmix.
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

//Package itc reads and writes the files around an ITC fitting run: the
//five-column titration table of E. Matteoli, L. Lepori, Fluid Phase
//Eq. 174 (2000) 115-131, the raw instrument run logs that the table is
//assembled from, and the output tables of the fit. All unit conversion
//from file-native units (mmol, mJ, microliters) to the mol/J convention
//of package hmix happens here.
package itc

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/rmera/gohmix"
)

//source wraps an open data file, decompressing transparently.
type source struct {
	f        *os.File
	r        io.Reader
	closeDec func()
}

func (s *source) Close() error {
	if s.closeDec != nil {
		s.closeDec()
	}
	return s.f.Close()
}

//prepSource opens fname and prepares a reader for it. The format is
//deduced from the extension: .gz (gzip) and .zst (zstd) are
//decompressed, anything else is read as is.
func prepSource(fname string) (*source, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	s := &source{f: f, r: f}
	t := strings.Split(fname, ".")
	switch strings.ToLower(t[len(t)-1]) {
	case "gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("itc: %s: %v", fname, err)
		}
		s.r = gz
		s.closeDec = func() { gz.Close() }
	case "zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("itc: %s: %v", fname, err)
		}
		s.r = dec
		s.closeDec = dec.Close
	}
	return s, nil
}

//TableRead reads titration points from a five-column table:
//
//	n1c/mol n2c/mol n1d/mmol n2d/mmol Q/J
//
//Lines starting with # are comments. The dispenser amounts are
//converted from mmol to mol.
func TableRead(r io.Reader) ([]hmix.Point, error) {
	var points []hmix.Point
	scanner := bufio.NewScanner(r)
	nline := 0
	for scanner.Scan() {
		nline++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tok := strings.Fields(line)
		if len(tok) < 5 {
			return nil, fmt.Errorf("itc: line %d: want 5 columns, got %d", nline, len(tok))
		}
		var v [5]float64
		for i := 0; i < 5; i++ {
			var err error
			v[i], err = strconv.ParseFloat(tok[i], 64)
			if err != nil {
				return nil, fmt.Errorf("itc: line %d: %v", nline, err)
			}
		}
		points = append(points, hmix.Point{
			N1c: v[0],
			N2c: v[1],
			N1d: v[2] * 1.0e-3,
			N2d: v[3] * 1.0e-3,
			Q:   v[4],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

//TableFileRead reads a five-column titration table from the named file,
//decompressing .gz and .zst transparently.
func TableFileRead(fname string) ([]hmix.Point, error) {
	s, err := prepSource(fname)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return TableRead(s.r)
}

//TableWrite writes points as a five-column table, dispenser amounts
//back in mmol.
func TableWrite(w io.Writer, points []hmix.Point) error {
	if _, err := fmt.Fprintln(w, "# n1c/mol     n2c/mol      n1d/mmol     n2d/mmol     Q/J"); err != nil {
		return err
	}
	for _, p := range points {
		_, err := fmt.Fprintf(w, "%12.5e %12.5e %12.5e %12.5e %12.5e\n",
			p.N1c, p.N2c, p.N1d*1.0e3, p.N2d*1.0e3, p.Q)
		if err != nil {
			return err
		}
	}
	return nil
}
