// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/mjamiv/isolation/inp"
)

// NodeMasses returns the lumped translational mass at each loaded node and
// bearing top node; bearing weights override load-derived values
func NodeMasses(m *inp.Model) map[int]float64 {
	g := m.Gravity()
	vd := m.VertDof()
	masses := make(map[int]float64)
	for _, l := range m.Loads {
		if l.Type != "nodal" || l.Node == 0 {
			continue
		}
		if len(l.Values) > vd && l.Values[vd] < 0 {
			masses[l.Node] = -l.Values[vd] / g
		}
	}
	for _, b := range m.Bearings {
		if b.Weight > 0 && len(b.Nodes) > 1 {
			masses[b.Nodes[1]] = b.Weight / g
		}
	}
	return masses
}

// Participation computes the modal mass participation ratio per
// translational direction with (Σmφ)²/(Σmφ²·M) where M is the total lumped
// mass. Shapes holds one nodeId => eigenvector map per mode; nodes missing
// from a shape contribute zero
func Participation(m *inp.Model, shapes []map[int][]float64) map[string][]float64 {
	masses := NodeMasses(m)
	total := 0.0
	for _, mass := range masses {
		total += mass
	}
	ndm := m.Info.Ndm
	if ndm > 3 {
		ndm = 3
	}
	labels := []string{"X", "Y", "Z"}[:ndm]
	part := make(map[string][]float64)
	for _, lab := range labels {
		part[lab] = make([]float64, len(shapes))
	}
	for imode, shape := range shapes {
		for dof, lab := range labels {
			var L, M float64
			for nid, mass := range masses {
				phi := 0.0
				if v := shape[nid]; dof < len(v) {
					phi = v[dof]
				}
				L += mass * phi
				M += mass * phi * phi
			}
			if M > 0 && total > 0 {
				part[lab][imode] = L * L / (M * total)
			}
		}
	}
	return part
}
