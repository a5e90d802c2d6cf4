// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/mjamiv/isolation/inp"
)

// Build translates the structural model into engine commands, in order:
// nodes, fixities, rigid planes, masses, geometric transformations, frame
// elements and bearings. Static loads are left to the analysis procedures.
// The engine is wiped first, so every call starts from a clean model
func Build(eng Engine, m *inp.Model, verbose bool) (err error) {

	eng.Wipe()
	ndm, ndf := m.Info.Ndm, m.Info.Ndf
	if err = eng.ModelBasic(ndm, ndf); err != nil {
		return
	}
	if verbose {
		io.Pf("building %q: ndm=%d ndf=%d nodes=%d elements=%d bearings=%d\n",
			m.Info.Name, ndm, ndf, len(m.Nodes), len(m.Elements), len(m.Bearings))
	}

	// nodes and fixities. Coordinates are padded with zeros to ndm entries;
	// a fix command is emitted only when at least one dof is restrained
	for _, n := range m.Nodes {
		coords := make([]float64, ndm)
		copy(coords, n.Coords)
		if err = eng.Node(n.Id, coords); err != nil {
			return
		}
		if n.HasFixed() {
			if err = eng.Fix(n.Id, n.PadFixity(ndf)); err != nil {
				return
			}
		}
	}

	// rigid planes tie each group to its first node
	perp := m.VertDof() + 1
	for _, g := range m.Groups {
		if len(g.Nodes) < 2 {
			continue
		}
		if err = eng.RigidDiaphragm(perp, g.Nodes[0], g.Nodes[1:]); err != nil {
			return
		}
	}

	if err = assignMasses(eng, m); err != nil {
		return
	}

	if ndm == 3 {
		err = frames3d(eng, m, verbose)
	} else {
		err = frames2d(eng, m, verbose)
	}
	if err != nil {
		return
	}

	for _, b := range m.Bearings {
		if err = bearing(eng, b, ndm); err != nil {
			return
		}
	}
	return
}

// assignMasses lumps the tributary mass at loaded nodes and bearing top
// nodes. Downward vertical loads convert with -v/g; bearing weights
// override at the top node and explicit nodal masses override both.
// Translational dofs carry the full mass while rotational dofs get a
// negligible value to keep the mass matrix nonsingular
func assignMasses(eng Engine, m *inp.Model) (err error) {
	g := m.Gravity()
	ndf := m.Info.Ndf
	vd := m.VertDof()
	lump := func(node int, mass float64) error {
		mv := make([]float64, ndf)
		for i := 0; i < ndf; i++ {
			if i < 3 {
				mv[i] = mass
			} else {
				mv[i] = 1e-10
			}
		}
		return eng.Mass(node, mv)
	}
	for _, l := range m.Loads {
		if l.Type != "nodal" || l.Node == 0 {
			continue
		}
		if len(l.Values) > vd && l.Values[vd] < 0 {
			if err = lump(l.Node, -l.Values[vd]/g); err != nil {
				return
			}
		}
	}
	for _, b := range m.Bearings {
		if b.Weight > 0 && len(b.Nodes) > 1 {
			if err = lump(b.Nodes[1], b.Weight/g); err != nil {
				return
			}
		}
	}
	for _, n := range m.Nodes {
		if len(n.Mass) > 0 {
			mv := make([]float64, ndf)
			copy(mv, n.Mass)
			if err = eng.Mass(n.Id, mv); err != nil {
				return
			}
		}
	}
	return
}

// frames2d emits the planar frame elements
func frames2d(eng Engine, m *inp.Model, verbose bool) (err error) {
	for _, e := range m.Elements {
		if e.Type != "elasticBeamColumn" {
			if verbose {
				io.Pfred("skipping element %d: unknown type %q\n", e.Id, e.Type)
			}
			continue
		}
		if len(e.Nodes) < 2 {
			return chk.Err("element %d must connect two nodes", e.Id)
		}
		sec := m.GetSection(e.SectionId)
		if sec == nil {
			return chk.Err("element %d references unknown section %d", e.Id, e.SectionId)
		}
		E := m.Youngs(sec)
		if err = eng.BeamColumn2D(e.Id, e.Nodes[0], e.Nodes[1], sec.Props.A, E, sec.Props.Iz); err != nil {
			return
		}
	}
	return
}

// frames3d emits the spatial frame elements, each with its own geometric
// transformation. With the Z axis vertical the section convention maps the
// strong inertia Iz onto the element local y, hence the swap on emission
func frames3d(eng Engine, m *inp.Model, verbose bool) (err error) {
	zup := m.IsZUp()
	tt := 0
	for _, e := range m.Elements {
		if e.Type != "elasticBeamColumn" {
			if verbose {
				io.Pfred("skipping element %d: unknown type %q\n", e.Id, e.Type)
			}
			continue
		}
		if len(e.Nodes) < 2 {
			return chk.Err("element %d must connect two nodes", e.Id)
		}
		ni, nj := m.GetNode(e.Nodes[0]), m.GetNode(e.Nodes[1])
		if ni == nil || nj == nil {
			return chk.Err("element %d references unknown nodes %v", e.Id, e.Nodes)
		}
		sec := m.GetSection(e.SectionId)
		if sec == nil {
			return chk.Err("element %d references unknown section %d", e.Id, e.SectionId)
		}
		E := m.Youngs(sec)
		G, J, Iy, Iz := sec.Props.G, sec.Props.J, sec.Props.Iy, sec.Props.Iz
		if G <= 0 {
			G = E / 2.6
		}
		if J <= 0 {
			J = 1.0
		}
		if Iy <= 0 {
			Iy = Iz
		}
		if zup {
			Iy, Iz = Iz, Iy
		}
		tt++
		if err = eng.GeomTransf(tt, vecxz(ni.Coords, nj.Coords, zup)); err != nil {
			return
		}
		if err = eng.BeamColumn3D(e.Id, e.Nodes[0], e.Nodes[1], sec.Props.A, E, G, J, Iy, Iz, tt); err != nil {
			return
		}
	}
	return
}

// vecxz selects the local x-z plane orientation of a 3D frame member. The
// reference must not be parallel to the member axis, so near-vertical
// members take the global X axis and all others the vertical axis
func vecxz(ci, cj []float64, zup bool) []float64 {
	dx := cj[0] - ci[0]
	var dy, dz float64
	if len(ci) > 1 && len(cj) > 1 {
		dy = cj[1] - ci[1]
	}
	if len(ci) > 2 && len(cj) > 2 {
		dz = cj[2] - ci[2]
	}
	l := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if l < 1e-12 {
		return []float64{0, 0, 1}
	}
	vert := dy / l
	if zup {
		vert = dz / l
	}
	if math.Abs(vert) > 0.9 {
		return []float64{1, 0, 0}
	}
	if zup {
		return []float64{0, 0, 1}
	}
	return []float64{0, 1, 0}
}

// bearing emits the friction models, the auxiliary materials and the
// isolator element of one bearing. Tag laws place frictions at
// 1000+(bid-1)*10+j+1, materials at 5000+bid*10+1..4 and the element at
// 10000+bid, clear of user-defined tags. 3D elements take the first three
// friction tags; 2D elements take all four
func bearing(eng Engine, b *inp.Bearing, ndm int) (err error) {
	if len(b.Surfaces) < 1 {
		return chk.Err("bearing %d has no friction surfaces", b.Id)
	}
	if len(b.Nodes) < 2 {
		return chk.Err("bearing %d must connect two nodes", b.Id)
	}
	if len(b.Radii) < 3 || len(b.DispCaps) < 3 {
		return chk.Err("bearing %d needs three radii and three displacement capacities", b.Id)
	}

	// four friction models; short surface lists repeat the last entry
	frn := make([]int, 4)
	for j := 0; j < 4; j++ {
		idx := j
		if idx > len(b.Surfaces)-1 {
			idx = len(b.Surfaces) - 1
		}
		s := b.Surfaces[idx]
		frn[j] = 1000 + (b.Id-1)*10 + j + 1
		if err = eng.FrictionVelDep(frn[j], s.MuSlow, s.MuFast, s.TransRate); err != nil {
			return
		}
	}

	// vertical compression and rotational restraint materials
	vertK := b.VertStiff
	if vertK <= 0 {
		vertK = 100.0 * b.Weight
		if b.Weight <= 0 {
			vertK = 1e6
		}
	}
	base := 5000 + b.Id*10
	if err = eng.UniaxialElastic(base+1, vertK); err != nil {
		return
	}
	for i := 2; i <= 4; i++ {
		if err = eng.UniaxialElastic(base+i, 1e10); err != nil {
			return
		}
	}

	frnUse := frn
	if ndm >= 3 {
		frnUse = frn[:3]
	}
	return eng.TFPBearing(10000+b.Id, b.Nodes[0], b.Nodes[1], frnUse, base+1, base+2, base+3, base+4,
		b.Radii[0], b.Radii[1], b.Radii[2], b.DispCaps[0], b.DispCaps[1], b.DispCaps[2],
		b.Weight, b.Uy, b.Kvt, b.MinFv, b.Tol)
}
