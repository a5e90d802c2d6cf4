// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"github.com/cpmech/gosl/chk"

	"github.com/mjamiv/isolation/inp"
	"github.com/mjamiv/isolation/out"
)

// RunStatic performs the gravity analysis. Isolated models take the
// incremental preload; plain frames solve a single load-controlled step
// with a tight tolerance. Results hold all nodal displacements, the
// reactions at restrained nodes, the frame end forces and the deformed
// shape at true scale
func RunStatic(eng Engine, m *inp.Model, opts Options) (res *out.StaticResults, err error) {
	defer eng.Wipe()
	rm, rmap, err := refineModel(m, opts)
	if err != nil {
		return
	}
	if err = Build(eng, rm, opts.Verbose); err != nil {
		return
	}
	if len(rm.Bearings) > 0 {
		if err = GravityPreload(eng, rm, 50, opts.Verbose); err != nil {
			return
		}
	} else {
		if err = applyLoads(eng, rm, 1, 1); err != nil {
			return
		}
		if err = configStatic(eng, "BandGeneral", 1e-8, 10, 1.0); err != nil {
			return
		}
		if err = eng.Analyze(1); err != nil {
			return nil, chk.Err("static analysis failed to converge\n%v", err)
		}
	}
	res = collectStatic(eng, rm, rmap)
	return
}

// collectStatic gathers displacements, reactions, end forces and the
// deformed shape after a static solution
func collectStatic(eng Engine, m *inp.Model, rmap *inp.RefineMap) *out.StaticResults {
	res := &out.StaticResults{
		Disps:     make(map[int][]float64),
		Reactions: make(map[int][]float64),
		EleForces: make(map[int][]float64),
		Refine:    rmap,
	}
	for _, n := range m.Nodes {
		res.Disps[n.Id] = eng.NodeDisp(n.Id)
	}
	if eng.Reactions() == nil {
		for _, n := range m.Nodes {
			if n.HasFixed() {
				res.Reactions[n.Id] = eng.NodeReaction(n.Id)
			}
		}
	}
	for _, e := range m.Elements {
		res.EleForces[e.Id] = eng.EleResponse(e.Id, "force")
	}
	res.Shape = out.DeformedShape(m, res.Disps, 1.0)
	return res
}
