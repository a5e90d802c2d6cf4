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

// RunPushover pushes the structure laterally under displacement control of
// the roof until targetDisp is reached, in nsteps increments. pattern selects
// the lateral load distribution: "first_mode" weighs each free node by its
// first mode shape, anything else by its height. The control node defaults to
// the topmost free node and the control direction to X; both can be set in
// opts. A run that stops converging keeps the capacity curve traced so far
// and returns it with Partial set
func RunPushover(eng Engine, m *inp.Model, targetDisp float64, nsteps int, pattern string, opts Options) (res *out.PushoverResults, err error) {
	defer eng.Wipe()
	if nsteps <= 0 {
		nsteps = 100
	}
	rm, rmap, err := refineModel(m, opts)
	if err != nil {
		return
	}
	if err = Build(eng, rm, opts.Verbose); err != nil {
		return
	}
	ndf := rm.Info.Ndf
	vc := rm.VertDof()
	var free, fixed []*inp.Node
	for _, n := range rm.Nodes {
		if n.FullyFixed(ndf) {
			fixed = append(fixed, n)
		} else {
			free = append(free, n)
		}
	}
	if len(free) == 0 {
		return nil, chk.Err("no free nodes for pushover analysis")
	}

	// control node and direction
	ctrlDof := 1
	if opts.ControlDof > 0 {
		ctrlDof = opts.ControlDof
	}
	ctrl := opts.ControlNode
	if ctrl == 0 {
		best := math.Inf(-1)
		for _, n := range free {
			if h := at(n.Coords, vc); h > best {
				best = h
				ctrl = n.Id
			}
		}
	}

	// mode shape factors are extracted before gravity loading
	factors := make(map[int]float64)
	if pattern == "first_mode" {
		lams, eerr := eng.Eigen(1)
		if eerr != nil {
			io.Pfred("first mode extraction failed, falling back to linear pattern\n%v\n", eerr)
			pattern = "linear"
		} else if len(lams) > 0 && lams[0] > 0 {
			for _, n := range free {
				factors[n.Id] = at(eng.NodeEigenvector(n.Id, 1), ctrlDof-1)
			}
		}
	}

	// gravity loads stay on while pushing
	if len(rm.Bearings) > 0 {
		if err = GravityPreload(eng, rm, 50, opts.Verbose); err != nil {
			return
		}
	} else {
		if err = applyLoads(eng, rm, 1, 1); err != nil {
			return
		}
		if err = configStatic(eng, "BandGeneral", 1e-6, 10, 1.0); err != nil {
			return
		}
		if gerr := eng.Analyze(1); gerr != nil {
			io.Pfred("gravity analysis did not converge, proceeding anyway\n%v\n", gerr)
		}
		eng.LoadConst(0)
	}

	// lateral load pattern
	if err = eng.TimeSeriesLinear(2); err != nil {
		return
	}
	if err = eng.PatternPlain(2, 2); err != nil {
		return
	}
	maxHeight := 0.0
	for _, n := range free {
		if h := at(n.Coords, vc); h > maxHeight {
			maxHeight = h
		}
	}
	for _, n := range free {
		var factor float64
		if phi, ok := factors[n.Id]; pattern == "first_mode" && ok {
			factor = math.Abs(phi)
		} else if maxHeight > 0 {
			factor = at(n.Coords, vc) / maxHeight
		} else {
			factor = 1.0
		}
		if factor > 0 {
			values := make([]float64, ndf)
			values[ctrlDof-1] = factor
			if err = eng.Load(n.Id, values); err != nil {
				return
			}
		}
	}

	if err = eng.Constraints("Transformation"); err != nil {
		return
	}
	if err = eng.Numberer("RCM"); err != nil {
		return
	}
	if err = eng.System("BandGeneral"); err != nil {
		return
	}
	eng.TestNormDispIncr(1e-5, 100)
	if err = eng.Algorithm("Newton"); err != nil {
		return
	}
	eng.IntegratorDisplacementControl(ctrl, ctrlDof, targetDisp/float64(nsteps))
	eng.AnalysisStatic()

	res = &out.PushoverResults{Refine: rmap}
	skip := nsteps / 20
	if skip < 1 {
		skip = 1
	}
	for step := 0; step < nsteps; step++ {
		serr := analyzeLadder(eng, ladderFull, func() error { return eng.Analyze(1) })
		if serr != nil {
			if opts.Verbose {
				io.Pfred("pushover stopped at step %d/%d\n%v\n", step+1, nsteps, serr)
			}
			res.Partial = true
			break
		}
		roof := at(eng.NodeDisp(ctrl), ctrlDof-1)
		eng.Reactions()
		shear := 0.0
		for _, n := range fixed {
			shear += at(eng.NodeReaction(n.Id), ctrlDof-1)
		}
		shear = -shear
		res.Curve = append(res.Curve, out.CapacityPoint{RoofDisp: roof, BaseShear: shear})
		if step%skip == 0 || step == nsteps-1 {
			disps := make(map[int][]float64)
			for _, n := range rm.Nodes {
				disps[n.Id] = eng.NodeDisp(n.Id)
			}
			res.Steps = append(res.Steps, out.PushStep{Step: step + 1, RoofDisp: roof, BaseShear: shear, Disps: disps})
		}
	}

	// final state
	cs := collectStatic(eng, rm, nil)
	res.Disps = cs.Disps
	res.Reactions = cs.Reactions
	res.EleForces = cs.EleForces
	res.Shape = cs.Shape
	res.Hinges = out.IdentifyHinges(rm, res.EleForces)
	for _, p := range res.Curve {
		if v := math.Abs(p.BaseShear); v > res.MaxBaseShear {
			res.MaxBaseShear = v
		}
		if u := math.Abs(p.RoofDisp); u > res.MaxRoofDisp {
			res.MaxRoofDisp = u
		}
	}
	return res, nil
}
