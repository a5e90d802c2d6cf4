// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_engine01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("engine01. command guards")

	eng := NewEngine(chk.Verbose)

	// commands before the model is defined
	if err := eng.Node(1, []float64{0, 0}); err == nil {
		tst.Errorf("node before the model must fail\n")
		return
	}
	if err := eng.BeamColumn2D(1, 1, 2, 1, 1, 1); err == nil {
		tst.Errorf("element before the model must fail\n")
		return
	}

	// dimension pairs
	if err := eng.ModelBasic(4, 6); err == nil {
		tst.Errorf("(4,6) must fail\n")
		return
	}
	if err := eng.ModelBasic(2, 3); err != nil {
		tst.Errorf("(2,3) must pass: %v\n", err)
		return
	}
	if err := eng.ModelBasic(2, 3); err == nil {
		tst.Errorf("second ModelBasic must fail\n")
		return
	}

	// nodes
	if err := eng.Node(1, []float64{0}); err == nil {
		tst.Errorf("one coordinate in 2D must fail\n")
		return
	}
	eng.Node(1, []float64{0, 0})
	if err := eng.Node(1, []float64{1, 1}); err == nil {
		tst.Errorf("duplicated node must fail\n")
		return
	}
	eng.Node(2, []float64{1, 0})
	if err := eng.Fix(7, []int{1, 1, 1}); err == nil {
		tst.Errorf("fixity at unknown node must fail\n")
		return
	}
	if err := eng.Mass(7, []float64{1, 0, 0}); err == nil {
		tst.Errorf("mass at unknown node must fail\n")
		return
	}

	// elements
	if err := eng.BeamColumn3D(1, 1, 2, 1, 1, 1, 1, 1, 1, 1); err == nil {
		tst.Errorf("space frame element in 2D must fail\n")
		return
	}
	if err := eng.BeamColumn2D(1, 1, 9, 1, 1, 1); err == nil {
		tst.Errorf("element with unknown node must fail\n")
		return
	}
	eng.BeamColumn2D(1, 1, 2, 1, 1, 1)
	if err := eng.BeamColumn2D(1, 1, 2, 1, 1, 1); err == nil {
		tst.Errorf("duplicated element must fail\n")
		return
	}

	// transformations
	eng.GeomTransf(1, []float64{0, 0, 1})
	if err := eng.GeomTransf(1, []float64{0, 0, 1}); err == nil {
		tst.Errorf("duplicated transformation must fail\n")
		return
	}
	if err := eng.GeomTransf(2, []float64{0, 0}); err == nil {
		tst.Errorf("short orientation vector must fail\n")
		return
	}

	// rigid planes
	if err := eng.RigidDiaphragm(3, 1, []int{1}); err == nil {
		tst.Errorf("master slaved to itself must fail\n")
		return
	}
	if err := eng.RigidDiaphragm(3, 9, []int{1}); err == nil {
		tst.Errorf("unknown master must fail\n")
		return
	}

	// bearings
	base := []float64{20, 168, 20, 4, 25, 4, 100, 0.08, 100, 0.1, 1e-8}
	if err := eng.TFPBearing(10001, 1, 2, []int{9}, 0, 0, 0, 0,
		base[0], base[1], base[2], base[3], base[4], base[5],
		base[6], base[7], base[8], base[9], base[10]); err == nil {
		tst.Errorf("unknown friction model must fail\n")
		return
	}
	eng.FrictionVelDep(71, 0.015, 0.03, 25)
	if err := eng.FrictionVelDep(71, 0.015, 0.03, 25); err == nil {
		tst.Errorf("duplicated friction model must fail\n")
		return
	}
	if err := eng.TFPBearing(10001, 1, 2, []int{71}, 99, 0, 0, 0,
		base[0], base[1], base[2], base[3], base[4], base[5],
		base[6], base[7], base[8], base[9], base[10]); err == nil {
		tst.Errorf("unknown vertical material must fail\n")
		return
	}

	// series and patterns
	if err := eng.Load(1, []float64{1, 0, 0}); err == nil {
		tst.Errorf("load without an open pattern must fail\n")
		return
	}
	eng.TimeSeriesLinear(1)
	if err := eng.TimeSeriesLinear(1); err == nil {
		tst.Errorf("duplicated series must fail\n")
		return
	}
	if err := eng.TimeSeriesPath(1, 0.01, []float64{1}); err == nil {
		tst.Errorf("duplicated series across kinds must fail\n")
		return
	}
	if err := eng.TimeSeriesPath(3, 0, []float64{1}); err == nil {
		tst.Errorf("path series without spacing must fail\n")
		return
	}
	if err := eng.TimeSeriesPath(3, 0.01, nil); err == nil {
		tst.Errorf("path series without samples must fail\n")
		return
	}
	if err := eng.PatternPlain(1, 9); err == nil {
		tst.Errorf("pattern with unknown series must fail\n")
		return
	}
	eng.PatternPlain(1, 1)
	if err := eng.PatternPlain(1, 1); err == nil {
		tst.Errorf("duplicated pattern must fail\n")
		return
	}
	if err := eng.Load(9, []float64{1, 0, 0}); err == nil {
		tst.Errorf("load at unknown node must fail\n")
		return
	}
	if err := eng.PatternUniformExcitation(2, 3, 1); err == nil {
		tst.Errorf("excitation along dof 3 in 2D must fail\n")
		return
	}

	// configuration kinds
	if err := eng.System("Band"); err == nil {
		tst.Errorf("unknown system kind must fail\n")
		return
	}
	if err := eng.Numberer("AMD"); err == nil {
		tst.Errorf("unknown numberer kind must fail\n")
		return
	}
	if err := eng.Constraints("Lagrange"); err == nil {
		tst.Errorf("unknown constraints kind must fail\n")
		return
	}
	if err := eng.Algorithm("NR"); err == nil {
		tst.Errorf("unknown algorithm kind must fail\n")
		return
	}
	if err := eng.Rayleigh(0.05, 0.01, 0, 0); err == nil {
		tst.Errorf("stiffness proportional damping must fail\n")
		return
	}
	if err := eng.Rayleigh(0.05, 0, 0, 0); err != nil {
		tst.Errorf("mass proportional damping must pass: %v\n", err)
		return
	}

	// solve guards
	if err := eng.Analyze(1); err == nil {
		tst.Errorf("static analysis without configuration must fail\n")
		return
	}
	eng.AnalysisStatic()
	if err := eng.Analyze(1); err == nil {
		tst.Errorf("static analysis without an integrator must fail\n")
		return
	}
	if err := eng.AnalyzeDt(1, 0.01); err == nil {
		tst.Errorf("transient analysis without configuration must fail\n")
		return
	}
	eng.AnalysisTransient()
	if err := eng.AnalyzeDt(1, 0.01); err == nil {
		tst.Errorf("transient analysis without an integrator must fail\n")
		return
	}
	eng.IntegratorNewmark(0.5, 0.25)
	if err := eng.AnalyzeDt(1, 0); err == nil {
		tst.Errorf("zero time increment must fail\n")
		return
	}
	eng.IntegratorNewmark(0.2, 0.25)
	if err := eng.AnalyzeDt(1, 0.01); err == nil {
		tst.Errorf("gamma below one half must fail\n")
		return
	}

	// queries on unknown tags return empty slices
	chk.IntAssert(len(eng.NodeDisp(99)), 0)
	chk.IntAssert(len(eng.NodeVel(99)), 0)
	chk.IntAssert(len(eng.NodeReaction(99)), 0)
	chk.IntAssert(len(eng.EleResponse(99, "basicForce")), 0)
}
