// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/mjamiv/isolation/inp"
)

// DeformedShape returns the displaced nodal coordinates for rendering. Each
// coordinate moves by scale times the matching displacement component;
// coordinates without a displacement entry pass through unchanged
func DeformedShape(m *inp.Model, disps map[int][]float64, scale float64) map[int][]float64 {
	ndm := m.Info.Ndm
	shape := make(map[int][]float64)
	for _, n := range m.Nodes {
		nc := len(n.Coords)
		if ndm < nc {
			nc = ndm
		}
		u := disps[n.Id]
		def := make([]float64, nc)
		for i := 0; i < nc; i++ {
			def[i] = n.Coords[i]
			if i < len(u) {
				def[i] += scale * u[i]
			}
		}
		shape[n.Id] = def
	}
	return shape
}
