// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/mjamiv/isolation/inp"
	"github.com/mjamiv/isolation/out"
)

// RunTimeHistory integrates the equations of motion under a uniform base
// excitation along direction dir (1..3; anything else selects 1). Isolated
// models get the gravity preload, a sparse solver and the full algorithm
// ladder with two levels of sub-stepping; plain frames run the banded
// solver with a tighter test and no sub-stepping. A run whose sub-stepping
// is exhausted stops early and returns the steps recorded so far with
// Partial set; that is a valid outcome, not an error
func RunTimeHistory(eng Engine, m *inp.Model, motion *inp.Motion, dir int, opts Options) (res *out.TimeHistoryResults, err error) {
	defer eng.Wipe()
	if motion == nil || len(motion.Accel) == 0 {
		return nil, chk.Err("ground motion record is empty")
	}
	if motion.Dt <= 0 {
		return nil, chk.Err("ground motion time step must be positive")
	}
	rm, rmap, err := refineModel(m, opts)
	if err != nil {
		return
	}
	if err = Build(eng, rm, opts.Verbose); err != nil {
		return
	}
	isolated := len(rm.Bearings) > 0
	if isolated {
		if gerr := GravityPreload(eng, rm, 50, opts.Verbose); gerr != nil {
			io.Pfred("time history: gravity preload failed, continuing\n%v\n", gerr)
		}
	}
	eng.WipeAnalysis()

	// ground motion series and uniform excitation
	accel := motion.ScaledAccel()
	if err = eng.TimeSeriesPath(100, motion.Dt, accel); err != nil {
		return
	}
	if dir < 1 || dir > 3 {
		dir = 1
	}
	if err = eng.PatternUniformExcitation(100, dir, 100); err != nil {
		return
	}

	// mass proportional damping at 5% of the first mode
	omega1 := 1.0
	if lams, eerr := eng.Eigen(1); eerr == nil && len(lams) > 0 && lams[0] > 0 {
		omega1 = math.Sqrt(lams[0])
	}
	if err = eng.Rayleigh(2*0.05*omega1, 0, 0, 0); err != nil {
		return
	}

	if err = eng.Constraints("Transformation"); err != nil {
		return
	}
	if err = eng.Numberer("RCM"); err != nil {
		return
	}
	if isolated {
		if err = eng.System("UmfPack"); err != nil {
			return
		}
		eng.TestNormDispIncr(1e-4, 100)
	} else {
		if err = eng.System("BandGeneral"); err != nil {
			return
		}
		eng.TestNormDispIncr(1e-5, 50)
	}
	if err = eng.Algorithm("Newton"); err != nil {
		return
	}
	eng.IntegratorNewmark(0.5, 0.25)
	eng.AnalysisTransient()

	// result containers; free nodes are the ones with at least one
	// unrestrained dof
	res = out.NewTimeHistoryResults()
	res.Refine = rmap
	ndf := rm.Info.Ndf
	var free []int
	for _, n := range rm.Nodes {
		if n.FullyFixed(ndf) {
			continue
		}
		free = append(free, n.Id)
		res.Disps[n.Id] = [][]float64{}
	}
	for _, e := range rm.Elements {
		res.EleForces[e.Id] = make(map[int][]float64)
	}
	for _, b := range rm.Bearings {
		res.Bearings[b.Id] = &out.BearingHistory{}
	}

	// integration loop
	nsteps := len(accel)
	dt := motion.Dt
	n1 := 10
	if eng.NumBearings() > 4 {
		n1 = 20
	}
	ladder := ladderShort
	if isolated {
		ladder = ladderFull
	}
	one := func(h float64) error {
		return analyzeLadder(eng, ladder, func() error { return eng.AnalyzeDt(1, h) })
	}
	t := 0.0
	for step := 0; step < nsteps; step++ {
		serr := one(dt)
		if serr != nil && isolated {
			serr = substep(dt, n1, one)
		}
		if serr != nil {
			if opts.Verbose {
				io.Pfred("analysis stopped at step %d/%d\n%v\n", step+1, nsteps, serr)
			}
			res.Partial = true
			break
		}
		t += dt
		recordStep(eng, rm, res, t, free)
	}
	res.Steps = len(res.Time)
	return res, nil
}

// substep splits one failed transient step into n1 sub-steps; when
// sub-step i fails the remaining increment is retried at a fifth of the
// sub-increment. An error means both levels are exhausted
func substep(dt float64, n1 int, one func(h float64) error) (err error) {
	h1 := dt / float64(n1)
	for i := 0; i < n1; i++ {
		if err = one(h1); err == nil {
			continue
		}
		n2 := (n1 - i) * 5
		h2 := h1 / 5
		for j := 0; j < n2; j++ {
			if err = one(h2); err != nil {
				return
			}
		}
		return nil
	}
	return nil
}

// recordStep appends one converged step to the histories. Element force
// components grow on demand and are backfilled with zeros so every series
// spans the full recorded time
func recordStep(eng Engine, m *inp.Model, res *out.TimeHistoryResults, t float64, free []int) {
	res.Time = append(res.Time, t)
	for _, nid := range free {
		res.Disps[nid] = append(res.Disps[nid], eng.NodeDisp(nid))
	}
	for _, e := range m.Elements {
		f := eng.EleResponse(e.Id, "force")
		hist := res.EleForces[e.Id]
		ncomp := len(hist)
		for comp := 1; comp <= ncomp; comp++ {
			hist[comp] = append(hist[comp], at(f, comp-1))
		}
		for idx := ncomp; idx < len(f); idx++ {
			series := make([]float64, len(res.Time)-1, len(res.Time))
			hist[idx+1] = append(series, f[idx])
		}
	}
	for _, b := range m.Bearings {
		h := res.Bearings[b.Id]
		tag := 10000 + b.Id
		d := eng.EleResponse(tag, "basicDisplacement")
		f := eng.EleResponse(tag, "basicForce")
		av := eng.EleResponse(tag, "axialForce")
		h.Dx = append(h.Dx, at(d, 0))
		h.Dy = append(h.Dy, at(d, 1))
		h.Fx = append(h.Fx, at(f, 0))
		h.Fy = append(h.Fy, at(f, 1))
		ax := at(av, 0)
		if len(av) == 0 {
			if len(f) > 2 {
				ax = f[2]
			} else if len(f) > 1 {
				ax = f[1]
			}
		}
		h.Fv = append(h.Fv, ax)
	}
}

// at returns v[i] or zero when out of range
func at(v []float64, i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}
