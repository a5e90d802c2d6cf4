// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdl

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/utl"
)

func Test_friction01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("friction01. velocity-dependent model")

	mdl, err := New("vel-dependent")
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	prms := []*fun.Prm{
		&fun.Prm{N: "mus", V: 0.015},
		&fun.Prm{N: "muf", V: 0.030},
		&fun.Prm{N: "rate", V: 25.0},
	}
	err = mdl.Init(prms)
	if err != nil {
		tst.Errorf("cannot initialise model: %v\n", err)
		return
	}

	m := mdl.(*VelDep)
	chk.Scalar(tst, "mus", 1e-15, m.mus, 0.015)
	chk.Scalar(tst, "muf", 1e-15, m.muf, 0.030)
	chk.Scalar(tst, "rate", 1e-15, m.rate, 25.0)

	// limits: slow coefficient at rest, fast coefficient at speed
	chk.Scalar(tst, "mu(0)", 1e-15, m.Mu(0), 0.015)
	chk.Scalar(tst, "mu(1000)", 1e-12, m.Mu(1000), 0.030)

	// half transition at v = ln(2)/rate
	vh := math.Ln2 / 25.0
	chk.Scalar(tst, "mu(vh)", 1e-15, m.Mu(vh), 0.0225)
	io.Pforan("mu(%g) = %v\n", vh, m.Mu(vh))

	// even in v
	chk.Scalar(tst, "mu(-vh)", 1e-15, m.Mu(-vh), m.Mu(vh))

	// derivative against central differences, away from the kink at v=0
	V := utl.LinSpace(0.01, 0.5, 7)
	for _, vval := range V {
		dana := m.DmuDv(vval)
		dnum, _ := num.DerivCentral(func(x float64, args ...interface{}) (res float64) {
			return m.Mu(x)
		}, vval, 1e-4)
		chk.Scalar(tst, "DmuDv", 1e-8, dana, dnum)
	}
	chk.Scalar(tst, "DmuDv(0)", 1e-15, m.DmuDv(0), 0)
	chk.Scalar(tst, "odd derivative", 1e-15, m.DmuDv(-0.1), -m.DmuDv(0.1))
}

func Test_friction02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("friction02. coulomb model and factory errors")

	mdl, err := New("coulomb")
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	err = mdl.Init(mdl.GetPrms(true))
	if err != nil {
		tst.Errorf("cannot initialise model: %v\n", err)
		return
	}
	chk.Scalar(tst, "mu(0)", 1e-15, mdl.Mu(0), 0.06)
	chk.Scalar(tst, "mu(10)", 1e-15, mdl.Mu(10), 0.06)
	chk.Scalar(tst, "DmuDv", 1e-15, mdl.DmuDv(3), 0)

	// unavailable model
	_, err = New("invalid")
	if err == nil {
		tst.Errorf("New must fail with an unavailable model name\n")
		return
	}
	io.Pfgrey("  error msg = %v\n", err)

	// fast coefficient below slow coefficient
	bad, _ := New("vel-dependent")
	err = bad.Init([]*fun.Prm{
		&fun.Prm{N: "mus", V: 0.06},
		&fun.Prm{N: "muf", V: 0.03},
		&fun.Prm{N: "rate", V: 25.0},
	})
	if err == nil {
		tst.Errorf("Init must fail when muf < mus\n")
		return
	}
	io.Pfgrey("  error msg = %v\n", err)
}
