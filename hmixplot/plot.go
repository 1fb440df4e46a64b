/*
 * plot.go, part of gohmix.
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

//Package hmixplot draws the diagnostic plots of an ITC fit: the
//per-point heat residuals, and the partial molar and excess enthalpy
//curves together with the experimental pure-dilution samples.
package hmixplot

import (
	"fmt"
	"image/color"

	"github.com/rmera/gohmix"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	black = color.RGBA{A: 255}
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//ResidualPlot plots Qcalc-Qexp against the experiment index and saves
//a PNG to filename.
func ResidualPlot(table []hmix.QPoint, title, filename string) error {
	if table == nil {
		return fmt.Errorf("hmixplot: given nil table")
	}
	pts := make(plotter.XYs, len(table))
	for i, r := range table {
		pts[i].X = float64(r.Index)
		pts[i].Y = r.QCalc - r.QObs
	}
	p := basicPlot(title, "data point", "Qcalc - Qexp (J)")
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle.Shape = draw.CrossGlyph{}
	s.GlyphStyle.Color = red
	p.Add(s)
	return p.Save(5*vg.Inch, 4*vg.Inch, filename)
}

func sampleScatter(samples []hmix.Sample, col color.Color) (*plotter.Scatter, error) {
	pts := make(plotter.XYs, len(samples))
	for i, v := range samples {
		pts[i].X = v.X2
		pts[i].Y = v.H
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Color = col
	return s, nil
}

func curveLine(x, y []float64, col color.Color) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = col
	return l, nil
}

//EnthalpyPlot plots the fitted h1, h2 and he curves against x2,
//together with the experimental pure-dilution samples, and saves a PNG
//to filename. Either sample slice may be empty.
func EnthalpyPlot(h1exp, h2exp []hmix.Sample, ct *hmix.CurveTable, title, filename string) error {
	if ct == nil {
		return fmt.Errorf("hmixplot: given nil curves")
	}
	p := basicPlot(title, "x2", "H (J/mol)")
	p.X.Min = 0
	p.X.Max = 1
	h1l, err := curveLine(ct.X2, ct.H1, red)
	if err != nil {
		return err
	}
	h2l, err := curveLine(ct.X2, ct.H2, blue)
	if err != nil {
		return err
	}
	hel, err := curveLine(ct.X2, ct.HE, black)
	if err != nil {
		return err
	}
	p.Add(h1l, h2l, hel)
	p.Legend.Add("h1", h1l)
	p.Legend.Add("h2", h2l)
	p.Legend.Add("he", hel)
	if len(h1exp) > 0 {
		s, err := sampleScatter(h1exp, red)
		if err != nil {
			return err
		}
		p.Add(s)
	}
	if len(h2exp) > 0 {
		s, err := sampleScatter(h2exp, blue)
		if err != nil {
			return err
		}
		p.Add(s)
	}
	return p.Save(5*vg.Inch, 4*vg.Inch, filename)
}
