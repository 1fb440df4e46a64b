/*
 * errors.go, part of gohmix.
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

import "fmt"

//Error kinds. Config errors are rejected before any data is touched,
//domain errors identify a malformed titration point, numeric errors a
//non-finite intermediate value that makes the least-squares objective
//ill-defined.
const (
	KindConfig  = "config"
	KindDomain  = "domain"
	KindNumeric = "numeric"
)

//Error messages.
const (
	ErrBadDegree      = "degree selector outside [0,4]"
	ErrNoData         = "no titration points given"
	ErrFewPoints      = "fewer titration points than free coefficients"
	ErrEmptyAmpoule   = "titration point with no material in the ampoule (n1c+n2c <= 0)"
	ErrEmptyInjection = "titration point with no injected material (n1d+n2d <= 0)"
	ErrNonFinite      = "non-finite residual"
)

//Error is the error type returned by the fitting functions. It carries
//the index of the offending titration point, or -1 when no single point
//is to blame.
type Error struct {
	message  string
	kind     string
	index    int
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	if err.index >= 0 {
		return fmt.Sprintf("gohmix: %s (point %d)", err.message, err.index)
	}
	return fmt.Sprintf("gohmix: %s", err.message)
}

//Decorate adds information to the error as it is passed up, and returns
//the current decoration. An empty string only queries.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Kind returns one of KindConfig, KindDomain or KindNumeric.
func (err *Error) Kind() string { return err.kind }

//PointIndex returns the index of the offending titration point,
//or -1 if the error is not tied to one point.
func (err *Error) PointIndex() int { return err.index }

func (err *Error) Critical() bool { return err.critical }
