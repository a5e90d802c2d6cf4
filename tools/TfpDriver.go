// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build ignore

package main

import (
	"encoding/json"
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"

	"github.com/mjamiv/isolation/ele"
	"github.com/mjamiv/isolation/inp"
)

// Input drives one triple friction pendulum bearing along a displacement
// path at constant sliding speed and plots the resulting hysteresis
type Input struct {
	ModelFn string    // model file providing the bearing; empty uses the built-in one
	Bearing int       // bearing id within the model
	Path    []float64 // lateral displacement targets, visited in order
	Npts    int       // points per leg
	Rate    float64   // sliding speed
	FigProp float64
	FigWid  float64

	// derived
	inpfn string
}

func (o *Input) PostProcess() {
	if len(o.Path) == 0 {
		o.Path = []float64{2, -2, 4, -4, 6, -6, 0}
	}
	if o.Npts < 2 {
		o.Npts = 50
	}
	if o.Rate <= 0 {
		o.Rate = 10.0
	}
	if o.FigProp < 0.1 {
		o.FigProp = 0.75
	}
	if o.FigWid < 10 {
		o.FigWid = 500
	}
}

func (o Input) String() (l string) {
	l = io.ArgsTable("INPUT ARGUMENTS",
		"input filename", "inpfn", o.inpfn,
		"model with the bearing set", "ModelFn", o.ModelFn,
		"bearing id", "Bearing", o.Bearing,
		"displacement path", "Path", io.Sf("%v", o.Path),
		"points per leg", "Npts", o.Npts,
		"sliding speed", "Rate", o.Rate,
		"fig: proportion of figure", "FigProp", o.FigProp,
		"fig: width of figure", "FigWid", o.FigWid,
	)
	return
}

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data file
	var in Input
	in.inpfn, _ = io.ArgToFilename(0, "", ".inp", false)
	if in.inpfn != "" {
		b, err := io.ReadFile(in.inpfn)
		if err != nil {
			io.PfRed("cannot read %s\n", in.inpfn)
			return
		}
		err = json.Unmarshal(b, &in)
		if err != nil {
			io.PfRed("cannot parse %s\n", in.inpfn)
			return
		}
	}
	in.PostProcess()

	// print input table
	io.Pf("%v\n", in)

	// bearing data
	brg := defaultBearing()
	if in.ModelFn != "" {
		m := inp.ReadModel(in.ModelFn)
		brg = nil
		for _, b := range m.Bearings {
			if b.Id == in.Bearing || in.Bearing == 0 {
				brg = b
				break
			}
		}
		if brg == nil {
			io.PfRed("model %s has no bearing %d\n", in.ModelFn, in.Bearing)
			return
		}
	}
	brg.SetDefault()

	// element; a fresh one carries the rated weight without a preload
	tfp, err := ele.NewTfp(brg, 3, 1)
	if err != nil {
		io.PfRed("cannot build bearing element: %v\n", err)
		return
	}

	// drive the top node along the path
	ndf := 3
	u := make([]float64, 2*ndf)
	v := make([]float64, 2*ndf)
	var U, F []float64
	cur := 0.0
	for _, tgt := range in.Path {
		du := (tgt - cur) / float64(in.Npts)
		if du == 0 {
			continue
		}
		dt := math.Abs(du) / in.Rate
		for i := 0; i < in.Npts; i++ {
			cur += du
			u[ndf] = cur
			v[ndf] = du / dt
			if err = tfp.Update(u, v); err != nil {
				io.Pfred("driver stopped at u=%g: %v\n", cur, err)
				break
			}
			tfp.Commit()
			d, _ := tfp.Response("basicDisplacement")
			f, _ := tfp.Response("basicForce")
			U = append(U, d[0])
			F = append(F, f[0])
		}
	}
	if len(U) == 0 {
		io.PfRed("nothing to plot\n")
		return
	}

	// peak response
	umax, fmax := 0.0, 0.0
	for i := range U {
		if a := math.Abs(U[i]); a > umax {
			umax = a
		}
		if a := math.Abs(F[i]); a > fmax {
			fmax = a
		}
	}
	io.Pf("peak displacement = %g\n", umax)
	io.Pf("peak shear        = %g\n", fmax)

	// plot
	plt.SetForPng(in.FigProp, in.FigWid, 150)
	plt.Plot(U, F, "'b-', clip_on=0")
	plt.Gll("$u$", "$F$", "")
	plt.SaveD("/tmp/isolation", "tfpdriver.png")
}

// defaultBearing returns a bearing proportioned for a 100 kip service load
func defaultBearing() *inp.Bearing {
	return &inp.Bearing{
		Id:    1,
		Nodes: []int{1, 2},
		Surfaces: []inp.FrictionSurface{
			{MuSlow: 0.015, MuFast: 0.030, TransRate: 25},
			{MuSlow: 0.060, MuFast: 0.120, TransRate: 25},
			{MuSlow: 0.060, MuFast: 0.120, TransRate: 25},
			{MuSlow: 0.015, MuFast: 0.030, TransRate: 25},
		},
		Radii:    []float64{20, 168, 20},
		DispCaps: []float64{4, 25, 4},
		Weight:   100,
		Uy:       0.08,
	}
}
