/*
 * fit_test.go, part of gohmix.
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

import (
	"fmt"
	"math"
	"testing"
)

//titration builds a synthetic two-run experiment: component 2 titrated
//into pure 1, then component 1 titrated into pure 2, heats generated
//from the model itself. Covers x2 from 0 to about 0.5 and from 1 down
//to about 0.5.
func titration(a Coefficients) []Point {
	var pts []Point
	n1c, n2c := 0.01, 0.0
	for i := 0; i < 20; i++ {
		p := Point{N1c: n1c, N2c: n2c, N1d: 0, N2d: 5e-4}
		p.Q = Qcalc(p, a)
		pts = append(pts, p)
		n2c += p.N2d
	}
	n1c, n2c = 0.0, 0.01
	for i := 0; i < 20; i++ {
		p := Point{N1c: n1c, N2c: n2c, N1d: 5e-4, N2d: 0}
		p.Q = Qcalc(p, a)
		pts = append(pts, p)
		n1c += p.N1d
	}
	return pts
}

//TestRecovery fits noiseless synthetic heats and demands the generating
//coefficients back.
func TestRecovery(Te *testing.T) {
	atrue := Coefficients{608.72, 3954.6, -950.93, 3618.5, -1120.9}
	pts := titration(atrue)
	o := DefaultFitOptions()
	o.Central = true
	o.GradTol = 1e-12
	o.StepTol = 1e-12
	res, err := Fit(pts, 4, o)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println(res.String())
	if !res.Converged {
		Te.Error("noiseless fit did not converge")
	}
	for i := 0; i <= MaxDegree; i++ {
		rel := math.Abs(res.Coefficients[i]-atrue[i]) / math.Max(1.0, math.Abs(atrue[i]))
		if rel > 1e-6 {
			Te.Errorf("a%d = %g, want %g (relative error %g)", i, res.Coefficients[i], atrue[i], rel)
		}
	}
	if res.R2 < 0.999999 {
		Te.Errorf("R2 = %g on noiseless data", res.R2)
	}
}

//TestOrderInvariance checks that the fit result does not depend on the
//order of the titration points.
func TestOrderInvariance(Te *testing.T) {
	atrue := Coefficients{-2000.0, 500.0, 300.0, 0, 0}
	pts := titration(atrue)
	rev := make([]Point, len(pts))
	for i, p := range pts {
		rev[len(pts)-1-i] = p
	}
	o := DefaultFitOptions()
	o.Central = true
	r1, err := Fit(pts, 2, o)
	if err != nil {
		Te.Fatal(err)
	}
	r2, err := Fit(rev, 2, o)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i <= MaxDegree; i++ {
		d := math.Abs(r1.Coefficients[i] - r2.Coefficients[i])
		if d > 1e-8*math.Max(1.0, math.Abs(r1.Coefficients[i])) {
			Te.Errorf("a%d differs with point order: %g vs %g", i, r1.Coefficients[i], r2.Coefficients[i])
		}
	}
}

//TestDegreeClamp fits with d=2 data generated from a full degree-4
//model: the high coefficients must remain exactly zero with zero
//reported uncertainty, whatever the data says.
func TestDegreeClamp(Te *testing.T) {
	atrue := Coefficients{608.72, 3954.6, -950.93, 3618.5, -1120.9}
	pts := titration(atrue)
	res, err := Fit(pts, 2, nil)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 3; i <= MaxDegree; i++ {
		if res.Coefficients[i] != 0 {
			Te.Errorf("fixed a%d = %g, want exactly 0", i, res.Coefficients[i])
		}
		if res.Stderr[i] != 0 {
			Te.Errorf("fixed a%d stderr = %g, want 0 (not applicable)", i, res.Stderr[i])
		}
	}
}

//TestParallelJacobian checks that concurrent Jacobian evaluation gives
//the same coefficients as the serial one.
func TestParallelJacobian(Te *testing.T) {
	atrue := Coefficients{608.72, 3954.6, -950.93, 3618.5, -1120.9}
	pts := titration(atrue)
	serial := DefaultFitOptions()
	conc := DefaultFitOptions()
	conc.Workers = 4
	r1, err := Fit(pts, 4, serial)
	if err != nil {
		Te.Fatal(err)
	}
	r2, err := Fit(pts, 4, conc)
	if err != nil {
		Te.Fatal(err)
	}
	if r1.Coefficients != r2.Coefficients {
		Te.Errorf("parallel Jacobian changed the result: %v vs %v", r1.Coefficients, r2.Coefficients)
	}
}

//TestUnconverged feeds pure noise with a tight iteration cap: the fit
//must come back flagged, not fail.
func TestUnconverged(Te *testing.T) {
	atrue := Coefficients{100.0, 0, 0, 0, 0}
	pts := titration(atrue)
	for i := range pts {
		pts[i].Q = 0.01 * math.Sin(17.0*float64(i+1)) //uncorrelated with composition
	}
	o := DefaultFitOptions()
	o.MaxIterations = 2
	o.GradTol = 1e-30
	o.StepTol = 1e-30
	res, err := Fit(pts, 4, o)
	if err != nil {
		Te.Fatal("unconverged fit must not be an error:", err)
	}
	if res.Converged {
		Te.Error("fit on noise with a 2-iteration cap reported convergence")
	}
	if res.Iterations > 2 {
		Te.Errorf("iteration cap not honored: %d iterations", res.Iterations)
	}
	fmt.Println("unconverged fit status:", res.Status)
}

//TestFitErrors exercises the error taxonomy: bad degree, malformed
//point, non-finite heat.
func TestFitErrors(Te *testing.T) {
	atrue := Coefficients{100.0, 0, 0, 0, 0}
	pts := titration(atrue)

	if _, err := Fit(pts, 5, nil); err == nil {
		Te.Error("degree 5 accepted")
	} else if e, ok := err.(*Error); !ok || e.Kind() != KindConfig {
		Te.Errorf("degree 5 gave %v, want a config error", err)
	}
	if _, err := Fit(pts, -1, nil); err == nil {
		Te.Error("degree -1 accepted")
	}

	bad := titration(atrue)
	bad[7].N1d, bad[7].N2d = 0, 0
	if _, err := Fit(bad, 4, nil); err == nil {
		Te.Error("empty injection accepted")
	} else if e, ok := err.(*Error); !ok || e.Kind() != KindDomain || e.PointIndex() != 7 {
		Te.Errorf("empty injection gave %v, want a domain error at point 7", err)
	}

	nan := titration(atrue)
	nan[3].Q = math.NaN()
	if _, err := Fit(nan, 4, nil); err == nil {
		Te.Error("NaN heat accepted")
	} else if e, ok := err.(*Error); !ok || e.Kind() != KindNumeric || e.PointIndex() != 3 {
		Te.Errorf("NaN heat gave %v, want a numeric error at point 3", err)
	}

	if _, err := Fit(nil, 4, nil); err == nil {
		Te.Error("empty dataset accepted")
	}
	if _, err := Fit(pts[:3], 4, nil); err == nil {
		Te.Error("fewer points than free coefficients accepted")
	}
}
