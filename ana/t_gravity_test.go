// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/mjamiv/isolation/inp"
)

func Test_grav01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grav01. preload command sequence")

	rec := newRecEngine()
	m := inp.SamplePortal2D()
	if err := GravityPreload(rec, m, 10, chk.Verbose); err != nil {
		tst.Errorf("preload failed:\n%v", err)
		return
	}
	chk.Strings(tst, "cmds", rec.cmds, []string{
		"tslin 1", "pattern 1", "load 3", "load 4",
		"constraints Transformation", "numberer RCM", "system BandGeneral",
		"test", "algorithm Newton", "loadcontrol", "static",
		"analyze", "analyze", "analyze", "analyze", "analyze",
		"analyze", "analyze", "analyze", "analyze", "analyze",
		"loadconst",
	})
	chk.Vector(tst, "increments", 1e-15, rec.integs, []float64{0.1})
	chk.Vector(tst, "load 3", 1e-15, rec.loads[3], []float64{0, -50, 0})
	chk.Vector(tst, "tolerances", 1e-15, rec.tols, []float64{1e-4})
}

func Test_grav02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grav02. failed step is split into ten sub-steps")

	// the first step exhausts the full ladder, then the ten sub-steps
	// pass and the remaining nine steps resume at the full increment
	rec := newRecEngine()
	rec.failAnl = 3
	m := inp.SamplePortal2D()
	if err := GravityPreload(rec, m, 10, chk.Verbose); err != nil {
		tst.Errorf("preload should recover by sub-stepping:\n%v", err)
		return
	}
	chk.IntAssert(rec.nanl, 3+10+9)
	chk.Vector(tst, "increments", 1e-15, rec.integs, []float64{0.1, 0.01, 0.1})
	chk.Strings(tst, "algorithms", rec.algs,
		[]string{"Newton", "ModifiedNewton", "Newton", "KrylovNewton", "Newton"})
}

func Test_grav03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grav03. exhausted preload fails; many bearings go sparse")

	// nothing ever converges
	rec := newRecEngine()
	rec.failAnl = 1000
	rec.nbrg = 5
	m := inp.SamplePortal2D()
	err := GravityPreload(rec, m, 10, chk.Verbose)
	if err == nil {
		tst.Errorf("preload must fail when sub-stepping is exhausted\n")
		return
	}

	// full ladder, then one short-ladder sub-step attempt
	chk.IntAssert(rec.nanl, 3+2)

	// more than four bearings select the sparse solver
	found := false
	for _, c := range rec.cmds {
		if c == "system UmfPack" {
			found = true
		}
	}
	if !found {
		tst.Errorf("five bearings must select the sparse solver\n")
		return
	}
}
