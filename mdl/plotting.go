// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdl

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

// Plot plots the friction coefficient (and, optionally, its derivative)
// over sliding speeds from 0 to vmax
func Plot(o Model, dirout, fname string, vmax float64, np int, withText, deriv bool) {
	V := utl.LinSpace(0, vmax, np)
	Y := make([]float64, np)
	var Z []float64
	if deriv {
		Z = make([]float64, np)
	}
	for i := 0; i < np; i++ {
		Y[i] = o.Mu(V[i])
		if deriv {
			Z[i] = o.DmuDv(V[i])
		}
	}
	if deriv {
		plt.Subplot(2, 1, 1)
	}
	plt.Plot(V, Y, "'b-', clip_on=0")
	if withText {
		l := np - 1
		plt.Text(V[0], Y[0], io.Sf("(%g, %g)", V[0], Y[0]), "ha='left',  color='red', size=8")
		plt.Text(V[l], Y[l], io.Sf("(%g, %g)", V[l], Y[l]), "ha='right', color='red', size=8")
	}
	plt.Gll("$v$", "$\\mu$", "")
	if deriv {
		plt.Subplot(2, 1, 2)
		plt.Plot(V, Z, "'b-', clip_on=0")
		plt.Gll("$v$", "$\\mathrm{d}{\\mu}/\\mathrm{d}{v}$", "")
	}
	plt.SaveD(dirout, fname)
}
