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

// RunModal extracts natural periods, frequencies, mode shapes and modal
// mass participation ratios. Isolated models get a gravity preload first
// so the bearings carry their service force when the eigenproblem is
// assembled; a preload failure warns and the extraction proceeds on the
// unloaded state
func RunModal(eng Engine, m *inp.Model, nmodes int, opts Options) (res *out.ModalResults, err error) {
	defer eng.Wipe()
	rm, rmap, err := refineModel(m, opts)
	if err != nil {
		return
	}
	if err = Build(eng, rm, opts.Verbose); err != nil {
		return
	}
	if len(rm.Bearings) > 0 {
		if gerr := GravityPreload(eng, rm, 50, opts.Verbose); gerr != nil {
			io.Pfred("modal analysis: gravity preload failed, continuing\n%v\n", gerr)
		}
	}
	lams, err := eng.Eigen(nmodes)
	if err != nil {
		return nil, chk.Err("eigenvalue analysis failed\n%v", err)
	}
	res = &out.ModalResults{
		Eigenvalues: lams,
		Periods:     make([]float64, len(lams)),
		Frequencies: make([]float64, len(lams)),
		Refine:      rmap,
	}
	for i, lam := range lams {
		if lam > 0 {
			res.Periods[i] = 2 * math.Pi / math.Sqrt(lam)
			res.Frequencies[i] = 1 / res.Periods[i]
		}
	}
	ndf := rm.Info.Ndf
	for imode := range lams {
		shape := make(map[int][]float64)
		for _, n := range rm.Nodes {
			if n.FullyFixed(ndf) {
				continue
			}
			shape[n.Id] = eng.NodeEigenvector(n.Id, imode+1)
		}
		res.Shapes = append(res.Shapes, shape)
	}
	res.Participation = out.Participation(rm, res.Shapes)
	return
}
