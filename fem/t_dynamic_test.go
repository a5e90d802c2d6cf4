// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_dyn01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dyn01. sdof oscillator under a step base acceleration")

	// one axial member with k = EA/L = 4π² and a unit lumped mass gives
	// ω = 2π, hence a one second period. A constant base acceleration
	// A0 = 4π² moves the mass as u(t) = -(A0/ω²)(1 - cos(ωt)); the
	// static offset is -1 and the peak displacement -2
	k := 4 * math.Pi * math.Pi
	eng := NewEngine(chk.Verbose)
	if err := eng.ModelBasic(2, 3); err != nil {
		tst.Errorf("model failed: %v\n", err)
		return
	}
	eng.Node(1, []float64{0, 0})
	eng.Node(2, []float64{1, 0})
	eng.Fix(1, []int{1, 1, 1})
	eng.Fix(2, []int{0, 1, 1})
	eng.Mass(2, []float64{1, 0, 0})
	if err := eng.BeamColumn2D(1, 1, 2, k, 1, 1); err != nil {
		tst.Errorf("beam failed: %v\n", err)
		return
	}

	// base excitation: constant history over the analysis window
	if err := eng.TimeSeriesPath(100, 2.0, []float64{k, k}); err != nil {
		tst.Errorf("series failed: %v\n", err)
		return
	}
	if err := eng.PatternUniformExcitation(100, 1, 100); err != nil {
		tst.Errorf("pattern failed: %v\n", err)
		return
	}

	// analysis settings
	eng.Constraints("Transformation")
	eng.Numberer("RCM")
	eng.System("UmfPack")
	eng.TestNormDispIncr(1e-10, 10)
	eng.Algorithm("Newton")
	eng.IntegratorNewmark(0.5, 0.25)
	eng.AnalysisTransient()

	// quarter period: peak velocity -ω
	if err := eng.AnalyzeDt(25, 0.01); err != nil {
		tst.Errorf("analysis failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "v(T/4)", 1e-5, eng.NodeVel(2)[0], -2*math.Pi)

	// half period: displacement doubles the static offset
	if err := eng.AnalyzeDt(25, 0.01); err != nil {
		tst.Errorf("analysis failed: %v\n", err)
		return
	}
	u := eng.NodeDisp(2)[0]
	chk.Scalar(tst, "u(T/2)", 1e-5, u, -2)

	// the support reaction carries the elastic force only
	if err := eng.Reactions(); err != nil {
		tst.Errorf("reactions failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "Rx", 1e-8, eng.NodeReaction(1)[0], -k*u)

	// full period: back at the origin
	if err := eng.AnalyzeDt(50, 0.01); err != nil {
		tst.Errorf("analysis failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "u(T)", 1e-5, eng.NodeDisp(2)[0], 0)
	chk.Scalar(tst, "t", 1e-9, eng.Sol.T, 1.0)
}
