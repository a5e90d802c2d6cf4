// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Motion holds a ground acceleration record for time-history analysis
type Motion struct {
	Name  string    `json:"name"`         // record name
	Dt    float64   `json:"dt"`           // time step of the record
	Accel []float64 `json:"acceleration"` // acceleration values
	Dir   int       `json:"direction"`    // dof direction (1=X, 2=Y, 3=Z)
	Scale float64   `json:"scale_factor"` // multiplier applied to the record
}

// ReadMotion reads a ground motion record from a .json file
func ReadMotion(path string) *Motion {
	b, err := io.ReadFile(path)
	if err != nil {
		chk.Panic("ReadMotion: cannot read motion file %q", path)
	}
	var o Motion
	err = json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadMotion: cannot unmarshal motion file %q:\n%v", path, err)
	}
	o.SetDefault()
	return &o
}

// ReadMotionTable reads a record from a text table with columns "t" and "a"
func ReadMotionTable(path string) *Motion {
	_, res, err := io.ReadTable(path)
	if err != nil {
		chk.Panic("ReadMotionTable: cannot read table %q:\n%v", path, err)
	}
	t, okT := res["t"]
	a, okA := res["a"]
	if !okT || !okA {
		chk.Panic("ReadMotionTable: table %q must have columns 't' and 'a'", path)
	}
	if len(t) < 2 {
		chk.Panic("ReadMotionTable: table %q must have at least 2 rows", path)
	}
	o := &Motion{Name: io.FnKey(path), Dt: t[1] - t[0], Accel: a}
	o.SetDefault()
	return o
}

// SetDefault fixes zero values after decoding
func (o *Motion) SetDefault() {
	if o.Dir < 1 || o.Dir > 3 {
		o.Dir = 1
	}
	if o.Scale == 0 {
		o.Scale = 1.0
	}
}

// SyntheticMotion builds a decaying multi-tone record with velocity content
// reminiscent of the 1940 El Centro register. pga scales the envelope, dur
// is the duration and dt the sampling step.
func SyntheticMotion(pga, dur, dt float64) *Motion {
	n := int(dur/dt) + 1
	T := utl.LinSpace(0, dur, n)
	a := make([]float64, n)
	for i, t := range T {
		env := math.Exp(-0.15 * t)
		a[i] = pga * env * (0.6*math.Sin(2.0*math.Pi*1.5*t) +
			0.3*math.Sin(2.0*math.Pi*3.2*t) +
			0.1*math.Sin(2.0*math.Pi*0.8*t))
	}
	return &Motion{Name: "synthetic", Dt: dt, Accel: a, Dir: 1, Scale: 1.0}
}

// scale returns the record multiplier, treating zero as unset
func (o *Motion) scale() float64 {
	if o.Scale == 0 {
		return 1.0
	}
	return o.Scale
}

// PGA returns the peak scaled ground acceleration
func (o *Motion) PGA() (pga float64) {
	s := o.scale()
	for _, a := range o.Accel {
		if v := math.Abs(a * s); v > pga {
			pga = v
		}
	}
	return
}

// Duration returns the total duration of the record
func (o *Motion) Duration() float64 {
	if len(o.Accel) < 2 {
		return 0
	}
	return float64(len(o.Accel)-1) * o.Dt
}

// ScaledAccel returns the record with the scale factor applied
func (o *Motion) ScaledAccel() []float64 {
	s := o.scale()
	v := make([]float64, len(o.Accel))
	for i, a := range o.Accel {
		v[i] = a * s
	}
	return v
}
