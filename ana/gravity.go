// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/mjamiv/isolation/inp"
)

// applyLoads opens a plain pattern under a linear time series and applies
// the nodal loads, padded with zeros to ndf values
func applyLoads(eng Engine, m *inp.Model, tsTag, patTag int) (err error) {
	if err = eng.TimeSeriesLinear(tsTag); err != nil {
		return
	}
	if err = eng.PatternPlain(patTag, tsTag); err != nil {
		return
	}
	ndf := m.Info.Ndf
	for _, l := range m.Loads {
		if l.Type != "nodal" || l.Node == 0 {
			continue
		}
		vals := make([]float64, ndf)
		copy(vals, l.Values)
		if err = eng.Load(l.Node, vals); err != nil {
			return
		}
	}
	return
}

// configStatic sets the standard static solution stack with the given
// system, convergence test and load increment
func configStatic(eng Engine, system string, tol float64, maxIter int, dLambda float64) (err error) {
	if err = eng.Constraints("Transformation"); err != nil {
		return
	}
	if err = eng.Numberer("RCM"); err != nil {
		return
	}
	if err = eng.System(system); err != nil {
		return
	}
	eng.TestNormDispIncr(tol, maxIter)
	if err = eng.Algorithm("Newton"); err != nil {
		return
	}
	eng.IntegratorLoadControl(dLambda)
	eng.AnalysisStatic()
	return
}

// GravityPreload brings the isolators to their service vertical force by
// applying the static loads in nsteps load-controlled increments (10 when
// nsteps is not positive). Each step walks the full algorithm ladder; a
// step that still fails is retried as ten sub-steps at a tenth of the
// increment. Success freezes the loads with LoadConst(0) so later patterns
// start from a loaded state at time zero. The model must have been built
// on the engine already
func GravityPreload(eng Engine, m *inp.Model, nsteps int, verbose bool) (err error) {
	if nsteps <= 0 {
		nsteps = 10
	}
	if err = applyLoads(eng, m, 1, 1); err != nil {
		return
	}
	system := "BandGeneral"
	if eng.NumBearings() > 4 {
		system = "UmfPack"
	}
	dlam := 1.0 / float64(nsteps)
	if err = configStatic(eng, system, 1e-4, 200, dlam); err != nil {
		return
	}
	one := func() error { return eng.Analyze(1) }
	for step := 0; step < nsteps; step++ {
		if analyzeLadder(eng, ladderFull, one) == nil {
			continue
		}

		// sub-step retry at a tenth of the increment
		if verbose {
			io.Pfyel("gravity step %d/%d: sub-stepping\n", step+1, nsteps)
		}
		eng.IntegratorLoadControl(dlam / 10)
		var serr error
		for sub := 0; sub < 10; sub++ {
			if serr = analyzeLadder(eng, ladderShort, one); serr != nil {
				break
			}
		}
		eng.IntegratorLoadControl(dlam)
		if serr != nil {
			return chk.Err("gravity preload failed at step %d/%d\n%v", step+1, nsteps, serr)
		}
	}
	eng.LoadConst(0)
	if verbose {
		io.Pf("gravity preload complete (%d steps)\n", nsteps)
	}
	return
}
