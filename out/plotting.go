// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
)

// figure settings shared by the plotting helpers
var (
	FigProp = 0.75  // proportion: height over width
	FigWid  = 500.0 // width in points
	FigRes  = 150   // png resolution
)

// startFig begins a new figure with the package settings
func startFig() {
	plt.Reset()
	plt.SetForPng(FigProp, FigWid, FigRes)
}

// PlotCapacityCurve plots base shear versus roof displacement
func PlotCapacityCurve(r *PushoverResults, dirout, fname string) {
	startFig()
	n := len(r.Curve)
	u := make([]float64, n)
	v := make([]float64, n)
	for i, p := range r.Curve {
		u[i] = p.RoofDisp
		v[i] = p.BaseShear
	}
	plt.Plot(u, v, "'b-', marker='.', clip_on=0")
	plt.Gll("roof displacement", "base shear", "")
	plt.SaveD(dirout, fname)
}

// PlotRoofHistory plots the lateral displacement history of one node
func PlotRoofHistory(r *TimeHistoryResults, nid int, dirout, fname string) {
	startFig()
	hist := r.Disps[nid]
	n := len(r.Time)
	if len(hist) < n {
		n = len(hist)
	}
	u := make([]float64, n)
	for i := 0; i < n; i++ {
		if len(hist[i]) > 0 {
			u[i] = hist[i][0]
		}
	}
	plt.Plot(r.Time[:n], u, "'b-', clip_on=0")
	plt.Gll("$t$", io.Sf("$u_x$ node %d", nid), "")
	plt.SaveD(dirout, fname)
}

// PlotBearingHysteresis plots the shear force versus sliding displacement
// loops of one bearing; the second lateral direction gets its own subplot
// when it carries data
func PlotBearingHysteresis(r *TimeHistoryResults, bid int, dirout, fname string) {
	h := r.Bearings[bid]
	if h == nil {
		return
	}
	startFig()
	both := hasRange(h.Dy) || hasRange(h.Fy)
	if both {
		plt.Subplot(2, 1, 1)
	}
	plt.Plot(h.Dx, h.Fx, "'b-', clip_on=0")
	plt.Gll("$u_x$", "$F_x$", "")
	if both {
		plt.Subplot(2, 1, 2)
		plt.Plot(h.Dy, h.Fy, "'r-', clip_on=0")
		plt.Gll("$u_y$", "$F_y$", "")
	}
	plt.SaveD(dirout, fname)
}

// PlotPeriods draws the modal periods as a bar chart
func PlotPeriods(r *ModalResults, dirout, fname string) {
	startFig()
	n := len(r.Periods)
	X := make([]float64, n)
	for i, T := range r.Periods {
		X[i] = float64(i + 1)
		plt.Plot([]float64{X[i], X[i]}, []float64{0, T}, "'b-', lw=10, solid_capstyle='butt', clip_on=0")
	}
	plt.Plot(X, r.Periods, "'ro', clip_on=0")
	plt.AxisXrange(0, float64(n)+1)
	plt.Gll("mode", "$T$", "")
	plt.SaveD(dirout, fname)
}

func hasRange(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return true
		}
	}
	return false
}
