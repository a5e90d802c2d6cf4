// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_refine01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("refine01. split portal elements in two")

	m := SamplePortal2D()
	r, rmap, err := Refine(m, 2)
	if err != nil {
		tst.Errorf("refine failed:\n%v", err)
		return
	}
	io.Pforan("nodes    = %v\n", len(r.Nodes))
	io.Pforan("elements = %v\n", len(r.Elements))

	// counts: one synthesized node and two sub-elements per original element
	chk.IntAssert(len(r.Nodes), 7)
	chk.IntAssert(len(r.Elements), 6)
	chk.IntAssert(rmap.Nsub, 2)
	if rmap.Identity() {
		tst.Errorf("map with nsub=2 cannot be the identity\n")
		return
	}

	// synthesized node coordinates
	chk.Vector(tst, "node 5", 1e-15, rmap.NewNodes[5], []float64{0, 1.5})
	chk.Vector(tst, "node 6", 1e-15, rmap.NewNodes[6], []float64{6, 1.5})
	chk.Vector(tst, "node 7", 1e-15, rmap.NewNodes[7], []float64{3, 3})

	// intermediate node of a column is free: only one endpoint is fixed
	n5 := r.GetNode(5)
	if n5 == nil {
		tst.Errorf("synthesized node 5 not found in refined model\n")
		return
	}
	chk.Ints(tst, "fixity of node 5", n5.Fixity, []int{0, 0, 0})

	// parent map and sub-element connectivity
	chk.Ints(tst, "parent of 1", rmap.Parent[1], []int{4, 5})
	chk.Ints(tst, "parent of 2", rmap.Parent[2], []int{6, 7})
	chk.Ints(tst, "parent of 3", rmap.Parent[3], []int{8, 9})
	chk.Ints(tst, "elem 4 nodes", r.GetElement(4).Nodes, []int{1, 5})
	chk.Ints(tst, "elem 5 nodes", r.GetElement(5).Nodes, []int{5, 3})
	chk.Ints(tst, "elem 6 nodes", r.GetElement(6).Nodes, []int{2, 6})
	chk.Ints(tst, "elem 7 nodes", r.GetElement(7).Nodes, []int{6, 4})
	chk.Ints(tst, "elem 8 nodes", r.GetElement(8).Nodes, []int{3, 7})
	chk.Ints(tst, "elem 9 nodes", r.GetElement(9).Nodes, []int{7, 4})

	// sub-elements inherit section and transformation
	chk.IntAssert(r.GetElement(4).SectionId, 1)
	chk.IntAssert(r.GetElement(9).SectionId, 2)
	chk.StrAssert(r.GetElement(9).Transform, "Linear")

	// loads are carried over untouched
	chk.IntAssert(len(r.Loads), 2)

	// refined model remains consistent
	if err := r.Validate(); err != nil {
		tst.Errorf("refined model is invalid:\n%v", err)
		return
	}
}

func Test_refine02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("refine02. identity, errors and rigid groups")

	// nsub=1 returns a clone with an identity map
	m := SamplePortal2D()
	r, rmap, err := Refine(m, 1)
	if err != nil {
		tst.Errorf("refine failed:\n%v", err)
		return
	}
	if !rmap.Identity() {
		tst.Errorf("map with nsub=1 must be the identity\n")
		return
	}
	chk.IntAssert(len(r.Nodes), 4)
	chk.IntAssert(len(r.Elements), 3)
	chk.Ints(tst, "parent of 3", rmap.Parent[3], []int{3})

	// the clone must be independent from the input
	r.Nodes[0].Coords[0] = 123
	chk.Scalar(tst, "original x of node 1", 1e-17, m.Nodes[0].Coords[0], 0)

	// nsub=0 is an error
	_, _, err = Refine(m, 0)
	if err == nil {
		tst.Errorf("refine with nsub=0 must fail\n")
		return
	}
	io.Pfgrey("  error msg = %v\n", err)

	// intermediate nodes join a rigid group when both endpoints belong to it
	m = SamplePortal2D()
	m.Groups = append(m.Groups, &RigidGroup{Id: 1, Nodes: []int{3, 4}})
	r, _, err = Refine(m, 2)
	if err != nil {
		tst.Errorf("refine failed:\n%v", err)
		return
	}
	chk.IntAssert(len(r.Groups), 1)
	chk.Ints(tst, "group nodes", r.Groups[0].Nodes, []int{3, 4, 7})

	// non-frame elements pass through whole and map to themselves
	m = SamplePortal2D()
	m.Elements = append(m.Elements, &Element{Id: 4, Type: "truss", Nodes: []int{1, 4}, SectionId: 1})
	r, rmap, err = Refine(m, 2)
	if err != nil {
		tst.Errorf("refine failed:\n%v", err)
		return
	}
	chk.IntAssert(len(r.Elements), 7)
	chk.Ints(tst, "parent of 4", rmap.Parent[4], []int{4})
	chk.Ints(tst, "truss nodes", r.GetElement(4).Nodes, []int{1, 4})
}

func Test_refine03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("refine03. office frame counts")

	m := SampleOffice5(false)
	r, rmap, err := Refine(m, 2)
	if err != nil {
		tst.Errorf("refine failed:\n%v", err)
		return
	}
	io.Pforan("nodes    = %v\n", len(r.Nodes))
	io.Pforan("elements = %v\n", len(r.Elements))

	// 200 frame elements produce 200 new nodes and 400 sub-elements
	chk.IntAssert(len(r.Nodes), 112+200)
	chk.IntAssert(len(r.Elements), 400)
	chk.IntAssert(len(rmap.NewNodes), 200)

	// bearings and loads are untouched
	chk.IntAssert(len(r.Bearings), 16)
	chk.IntAssert(len(r.Loads), 80)

	// new element ids are allocated above the bearing tag range
	chk.Ints(tst, "parent of 1", rmap.Parent[1], []int{10017, 10018})
	if err := r.Validate(); err != nil {
		tst.Errorf("refined model is invalid:\n%v", err)
		return
	}
}
