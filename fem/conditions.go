// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/chk"

// TimeSeries maps the pseudo-time (or real time) to a load factor
//  "linear" -- factor grows with t itself; the usual choice for ramped
//              static loads under load control
//  "path"   -- linear interpolation of equally spaced samples; zero
//              outside the sampled window
type TimeSeries struct {
	Tag    int       // external tag
	Kind   string    // "linear" or "path"
	Dt     float64   // sample spacing of path series
	Values []float64 // samples of path series
}

// NewTimeSeriesLinear returns a linear time series
func NewTimeSeriesLinear(tag int) *TimeSeries {
	return &TimeSeries{Tag: tag, Kind: "linear"}
}

// NewTimeSeriesPath returns a sampled time series
func NewTimeSeriesPath(tag int, dt float64, values []float64) (*TimeSeries, error) {
	if dt <= 0 {
		return nil, chk.Err("time series %d: dt must be positive; got %g", tag, dt)
	}
	if len(values) < 1 {
		return nil, chk.Err("time series %d: at least one sample is required", tag)
	}
	return &TimeSeries{Tag: tag, Kind: "path", Dt: dt, Values: values}, nil
}

// F returns the factor at time t
func (o *TimeSeries) F(t float64) float64 {
	switch o.Kind {
	case "linear":
		return t
	case "path":
		if t < 0 {
			return 0
		}
		n := len(o.Values)
		i := int(t / o.Dt)
		if i >= n-1 {
			if t <= float64(n-1)*o.Dt+1e-10*o.Dt {
				return o.Values[n-1]
			}
			return 0
		}
		ti := float64(i) * o.Dt
		return o.Values[i] + (o.Values[i+1]-o.Values[i])*(t-ti)/o.Dt
	}
	return 0
}

// PointLoad is a nodal load vector belonging to a plain pattern
type PointLoad struct {
	Node   int       // node tag
	Values []float64 // load per dof
}

// Pattern scales a set of nodal loads, or a base excitation, by the factor
// of its time series
type Pattern struct {
	Tag    int          // external tag
	Kind   string       // "plain" or "uniform"
	Ts     *TimeSeries  // factor source
	Dir    int          // excitation direction (1-based) of uniform patterns
	Loads  []*PointLoad // nodal loads of plain patterns
	frozen bool         // factor locked by LoadConst
	fconst float64      // locked factor value
}

// Factor returns the load factor at time t
func (o *Pattern) Factor(t float64) float64 {
	if o.frozen {
		return o.fconst
	}
	return o.Ts.F(t)
}

// Freeze locks the pattern at its load level at time t
func (o *Pattern) Freeze(t float64) {
	o.fconst = o.Ts.F(t)
	o.frozen = true
}

// Live reports whether the pattern still follows its time series
func (o *Pattern) Live() bool {
	return !o.frozen
}
