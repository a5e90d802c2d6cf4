// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// FixedBase derives the conventional (non-isolated) counterpart of an
// isolated model: bearing top nodes become fully fixed supports and the
// bearing list is cleared. Ground nodes below the isolation plane stay in
// the node table; they are simply disconnected. The vertical-axis flag is
// materialized first so the variant keeps the original orientation.
func FixedBase(m *Model) *Model {
	v := m.Clone()
	v.Info.ZUp = m.IsZUp()
	v.Info.Name = m.Info.Name + "-fixedbase"
	ndf := v.Info.Ndf
	for _, b := range v.Bearings {
		top := v.GetNode(b.Nodes[1])
		if top == nil {
			continue
		}
		top.Fixity = make([]int, ndf)
		for i := 0; i < ndf; i++ {
			top.Fixity[i] = 1
		}
	}
	v.Bearings = nil
	return v
}

// ScaleFriction derives a bounding variant with every friction coefficient
// multiplied by lam (property modification factor); geometry, capacities
// and vertical properties are untouched
func ScaleFriction(m *Model, lam float64) *Model {
	v := m.Clone()
	v.Info.Name = io.Sf("%s-lam%g", m.Info.Name, lam)
	for _, b := range v.Bearings {
		for i := range b.Surfaces {
			b.Surfaces[i].MuSlow *= lam
			b.Surfaces[i].MuFast *= lam
		}
	}
	return v
}

// YupToZup converts a 3D model authored with Y as the vertical axis into
// the Z-up convention: coordinates become [x, z, y] and 6-dof vectors
// [a, c, b, d, f, e]. Applying the conversion twice restores the original.
func YupToZup(m *Model) (*Model, error) {
	if m.Info.Ndm != 3 {
		return nil, chk.Err("y-up to z-up conversion requires a 3D model; ndm is %d", m.Info.Ndm)
	}
	v := m.Clone()
	v.Info.ZUp = !m.Info.ZUp
	for _, n := range v.Nodes {
		swap3(n.Coords)
		swap6(n.Fixity)
		swap6f(n.Mass)
	}
	for _, l := range v.Loads {
		swap6f(l.Values)
	}
	return v, nil
}

// swap3 exchanges the second and third entries
func swap3(v []float64) {
	if len(v) >= 3 {
		v[1], v[2] = v[2], v[1]
	}
}

// swap6 exchanges translational y/z and rotational y/z entries
func swap6(v []int) {
	if len(v) >= 3 {
		v[1], v[2] = v[2], v[1]
	}
	if len(v) >= 6 {
		v[4], v[5] = v[5], v[4]
	}
}

// swap6f is swap6 for float vectors
func swap6f(v []float64) {
	if len(v) >= 3 {
		v[1], v[2] = v[2], v[1]
	}
	if len(v) >= 6 {
		v[4], v[5] = v[5], v[4]
	}
}
