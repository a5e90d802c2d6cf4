// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
)

// RefineMap records the relation between an original model and its refined
// counterpart so that results can be mapped back for rendering
type RefineMap struct {
	Nsub     int               // number of sub-elements per original element
	Parent   map[int][]int     // original element id => ordered sub-element ids
	NewNodes map[int][]float64 // synthesized node id => coordinates
}

// Identity tells whether the map represents an unrefined model
func (o *RefineMap) Identity() bool {
	return o.Nsub <= 1
}

// Refine splits every frame element of m into n collinear sub-elements,
// synthesizing n-1 intermediate nodes per element. Elements of any other
// type are carried over whole and map to themselves.
//
// Synthesized nodes take the bitwise AND of the endpoint fixities, so an
// intermediate node is restrained in a dof only when both ends are. When
// both endpoints belong to the same rigid group the intermediate nodes join
// that group; when only one endpoint does, they stay ungrouped.
//
// New node ids are allocated above MaxNodeId and new element ids above
// MaxElementId (which accounts for bearing element tags). Sub-elements
// inherit section and transformation from their parent. Bearings, loads
// and original nodes are carried over untouched.
func Refine(m *Model, n int) (r *Model, rmap *RefineMap, err error) {

	// check
	if n < 1 {
		err = chk.Err("number of sub-elements must be at least 1; got %d", n)
		return
	}

	// trivial case
	r = m.Clone()
	rmap = &RefineMap{Nsub: n, Parent: make(map[int][]int), NewNodes: make(map[int][]float64)}
	if n == 1 {
		for _, e := range m.Elements {
			rmap.Parent[e.Id] = []int{e.Id}
		}
		return
	}

	// id allocation
	nextNode := m.MaxNodeId() + 1
	nextElem := m.MaxElementId() + 1
	ndm := m.Info.Ndm
	ndf := m.Info.Ndf

	// split elements; only frame members are divisible
	r.Elements = nil
	for _, e := range m.Elements {
		if e.Type != "elasticBeamColumn" {
			ee := &Element{Id: e.Id, Type: e.Type, SectionId: e.SectionId, Transform: e.Transform}
			ee.Nodes = append(ee.Nodes, e.Nodes...)
			r.Elements = append(r.Elements, ee)
			rmap.Parent[e.Id] = []int{e.Id}
			continue
		}
		ni, nj := m.GetNode(e.Nodes[0]), m.GetNode(e.Nodes[1])
		if ni == nil || nj == nil {
			err = chk.Err("element %d references unknown node", e.Id)
			return
		}

		// fixity of synthesized nodes
		fi, fj := ni.PadFixity(ndf), nj.PadFixity(ndf)
		fix := make([]int, ndf)
		for k := 0; k < ndf; k++ {
			if fi[k] == 1 && fj[k] == 1 {
				fix[k] = 1
			}
		}

		// rigid group propagation
		var grp *RigidGroup
		gi := r.GroupOf(ni.Id)
		if gi != nil && gi.Contains(nj.Id) {
			grp = gi
		}

		// synthesized nodes
		chain := []int{ni.Id}
		for k := 1; k < n; k++ {
			s := float64(k) / float64(n)
			coords := make([]float64, ndm)
			for d := 0; d < ndm; d++ {
				coords[d] = ni.Coords[d] + s*(nj.Coords[d]-ni.Coords[d])
			}
			nn := &Node{Id: nextNode, Coords: coords}
			nn.Fixity = append(nn.Fixity, fix...)
			r.Nodes = append(r.Nodes, nn)
			rmap.NewNodes[nextNode] = coords
			if grp != nil {
				grp.Nodes = append(grp.Nodes, nextNode)
			}
			chain = append(chain, nextNode)
			nextNode++
		}
		chain = append(chain, nj.Id)

		// sub-elements
		subs := make([]int, n)
		for k := 0; k < n; k++ {
			sub := &Element{
				Id:        nextElem,
				Type:      e.Type,
				Nodes:     []int{chain[k], chain[k+1]},
				SectionId: e.SectionId,
				Transform: e.Transform,
			}
			r.Elements = append(r.Elements, sub)
			subs[k] = nextElem
			nextElem++
		}
		rmap.Parent[e.Id] = subs
	}
	return
}
