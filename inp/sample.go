// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// office building layout
const (
	officeBays     = 3     // bays per direction
	officeBayWidth = 360.0 // 30 ft in inches
	officeStories  = 5
	officeFirstH   = 180.0 // 15 ft first story
	officeTypH     = 156.0 // 13 ft typical story
)

// tributary gravity loads for a 75 psf floor on 30 ft bays [kip]
const (
	loadCorner   = -16.875
	loadEdge     = -33.75
	loadInterior = -67.5
)

// SampleOffice5 builds a 5-story steel moment-frame office building on a
// 4x4 column grid isolated on 16 TFP bearings. Units are kip-in; W14x132
// columns and W24x68 beams (A992). The model is authored with Y as the
// vertical axis; pass zup to convert to the Z-up convention.
func SampleOffice5(zup bool) *Model {

	grid := officeBays + 1
	perLevel := grid * grid
	gridIdx := func(ix, iz int) int { return iz*grid + ix }
	nodeAt := func(level, ix, iz int) int { return level*perLevel + gridIdx(ix, iz) + 1 }
	groundAt := func(ix, iz int) int { return (officeStories+1)*perLevel + gridIdx(ix, iz) + 1 }

	// story elevations
	heights := make([]float64, officeStories)
	h := 0.0
	for s := 0; s < officeStories; s++ {
		if s == 0 {
			h += officeFirstH
		} else {
			h += officeTypH
		}
		heights[s] = h
	}

	trib := func(ix, iz int) float64 {
		xe := ix == 0 || ix == officeBays
		ze := iz == 0 || iz == officeBays
		if xe && ze {
			return loadCorner
		}
		if xe || ze {
			return loadEdge
		}
		return loadInterior
	}

	m := &Model{Info: Info{
		Name:  "five-story-office",
		Units: "kip-in",
		Ndm:   3,
		Ndf:   6,
	}}

	// A992 steel
	m.Materials = append(m.Materials, &Material{
		Id: 1, Type: "Elastic", Name: "A992 Gr50 Steel",
		Params: map[string]float64{"E": 29000.0, "Fy": 50.0, "nu": 0.3, "density": 0.000284},
	})

	// sections: G = E/2.6 and J = Iy/2 following common elastic frame practice
	E := 29000.0
	G := E / 2.6
	m.Sections = append(m.Sections,
		&Section{Id: 1, Type: "Elastic", Name: "W14x132 (Columns)", MatId: 1,
			Props: SecProps{A: 38.8, E: E, G: G, Iz: 1530.0, Iy: 548.0, J: 0.5 * 548.0, Depth: 14.66}},
		&Section{Id: 2, Type: "Elastic", Name: "W24x68 (Beams)", MatId: 1,
			Props: SecProps{A: 20.1, E: E, G: G, Iz: 1830.0, Iy: 70.4, J: 0.5 * 70.4, Depth: 23.73}},
	)

	// base and story nodes (levels 0..5)
	for level := 0; level <= officeStories; level++ {
		y := 0.0
		if level > 0 {
			y = heights[level-1]
		}
		for iz := 0; iz < grid; iz++ {
			for ix := 0; ix < grid; ix++ {
				m.Nodes = append(m.Nodes, &Node{
					Id:     nodeAt(level, ix, iz),
					Coords: []float64{float64(ix) * officeBayWidth, y, float64(iz) * officeBayWidth},
				})
			}
		}
	}

	// fixed ground nodes under the isolation plane
	for iz := 0; iz < grid; iz++ {
		for ix := 0; ix < grid; ix++ {
			m.Nodes = append(m.Nodes, &Node{
				Id:     groundAt(ix, iz),
				Coords: []float64{float64(ix) * officeBayWidth, 0, float64(iz) * officeBayWidth},
				Fixity: []int{1, 1, 1, 1, 1, 1},
			})
		}
	}

	// columns
	eid := 1
	for s := 1; s <= officeStories; s++ {
		for iz := 0; iz < grid; iz++ {
			for ix := 0; ix < grid; ix++ {
				m.Elements = append(m.Elements, &Element{
					Id: eid, Type: "elasticBeamColumn", Transform: "Linear",
					Nodes: []int{nodeAt(s-1, ix, iz), nodeAt(s, ix, iz)}, SectionId: 1,
				})
				eid++
			}
		}
	}

	// beams along X then along Z
	for s := 1; s <= officeStories; s++ {
		for iz := 0; iz < grid; iz++ {
			for ix := 0; ix < officeBays; ix++ {
				m.Elements = append(m.Elements, &Element{
					Id: eid, Type: "elasticBeamColumn", Transform: "Linear",
					Nodes: []int{nodeAt(s, ix, iz), nodeAt(s, ix+1, iz)}, SectionId: 2,
				})
				eid++
			}
		}
	}
	for s := 1; s <= officeStories; s++ {
		for ix := 0; ix < grid; ix++ {
			for iz := 0; iz < officeBays; iz++ {
				m.Elements = append(m.Elements, &Element{
					Id: eid, Type: "elasticBeamColumn", Transform: "Linear",
					Nodes: []int{nodeAt(s, ix, iz), nodeAt(s, ix, iz+1)}, SectionId: 2,
				})
				eid++
			}
		}
	}

	// gravity loads at every story node
	for s := 1; s <= officeStories; s++ {
		for iz := 0; iz < grid; iz++ {
			for ix := 0; ix < grid; ix++ {
				m.Loads = append(m.Loads, &Load{
					Type: "nodal", Node: nodeAt(s, ix, iz),
					Values: []float64{0, trib(ix, iz), 0, 0, 0, 0},
				})
			}
		}
	}

	// TFP bearings: main radius 168 in gives Teff = 2*pi*sqrt(168/386.4) ~ 4.1 s
	for iz := 0; iz < grid; iz++ {
		for ix := 0; ix < grid; ix++ {
			w := math.Round(math.Abs(trib(ix, iz))*officeStories*10) / 10
			m.Bearings = append(m.Bearings, &Bearing{
				Id:    gridIdx(ix, iz) + 1,
				Nodes: []int{groundAt(ix, iz), nodeAt(0, ix, iz)},
				Surfaces: []FrictionSurface{
					{MuSlow: 0.015, MuFast: 0.030, TransRate: 25},
					{MuSlow: 0.060, MuFast: 0.120, TransRate: 25},
					{MuSlow: 0.060, MuFast: 0.120, TransRate: 25},
					{MuSlow: 0.015, MuFast: 0.030, TransRate: 25},
				},
				Radii:     []float64{20.0, 168.0, 20.0},
				DispCaps:  []float64{4.0, 25.0, 4.0},
				Weight:    w,
				Uy:        0.08,
				Kvt:       100.0,
				MinFv:     0.1,
				Tol:       1e-8,
				VertStiff: math.Round(150.0 * w),
			})
		}
	}

	if zup {
		v, err := YupToZup(m)
		if err != nil {
			chk.Panic("cannot convert office model to z-up:\n%v", err)
		}
		return v
	}
	return m
}

// SamplePortal2D builds a one-bay one-story fixed-base portal frame in
// kN-m units with rectangular concrete-filled steel sections
func SamplePortal2D() *Model {

	var steel RefMaterial
	steel.Init("steel", "kPa")

	var col, beam CrossSection
	col.Init("rectangle", 0.30, 0.30, 0, 0, 0)
	beam.Init("rectangle", 0.25, 0.40, 0, 0, 0)

	m := &Model{Info: Info{
		Name:  "portal",
		Units: "kN-m",
		Ndm:   2,
		Ndf:   3,
	}}
	m.Sections = append(m.Sections,
		col.ToSection(1, "col-30x30", &steel),
		beam.ToSection(2, "beam-25x40", &steel),
	)
	m.Nodes = append(m.Nodes,
		&Node{Id: 1, Coords: []float64{0, 0}, Fixity: []int{1, 1, 1}},
		&Node{Id: 2, Coords: []float64{6, 0}, Fixity: []int{1, 1, 1}},
		&Node{Id: 3, Coords: []float64{0, 3}},
		&Node{Id: 4, Coords: []float64{6, 3}},
	)
	m.Elements = append(m.Elements,
		&Element{Id: 1, Type: "elasticBeamColumn", Nodes: []int{1, 3}, SectionId: 1, Transform: "Linear"},
		&Element{Id: 2, Type: "elasticBeamColumn", Nodes: []int{2, 4}, SectionId: 1, Transform: "Linear"},
		&Element{Id: 3, Type: "elasticBeamColumn", Nodes: []int{3, 4}, SectionId: 2, Transform: "Linear"},
	)
	m.Loads = append(m.Loads,
		&Load{Type: "nodal", Node: 3, Values: []float64{0, -50, 0}},
		&Load{Type: "nodal", Node: 4, Values: []float64{0, -50, 0}},
	)
	return m
}

// SampleIsolator1D builds the smallest isolated model: one TFP bearing
// between a fixed ground node and a loaded top node, in kip-in units.
// The bearing weight and the vertical load agree so the gravity preload
// seats the isolator at its static normal force.
func SampleIsolator1D() *Model {
	W := 100.0
	m := &Model{Info: Info{
		Name:  "isolator1d",
		Units: "kip-in",
		Ndm:   3,
		Ndf:   6,
		ZUp:   true,
	}}
	m.Nodes = append(m.Nodes,
		&Node{Id: 1, Coords: []float64{0, 0, 0}, Fixity: []int{1, 1, 1, 1, 1, 1}},
		&Node{Id: 2, Coords: []float64{0, 0, 10}},
	)
	m.Loads = append(m.Loads,
		&Load{Type: "nodal", Node: 2, Values: []float64{0, 0, -W, 0, 0, 0}},
	)
	m.Bearings = append(m.Bearings, &Bearing{
		Id:    1,
		Nodes: []int{1, 2},
		Surfaces: []FrictionSurface{
			{MuSlow: 0.015, MuFast: 0.030, TransRate: 25},
			{MuSlow: 0.060, MuFast: 0.120, TransRate: 25},
			{MuSlow: 0.060, MuFast: 0.120, TransRate: 25},
			{MuSlow: 0.015, MuFast: 0.030, TransRate: 25},
		},
		Radii:     []float64{20.0, 168.0, 20.0},
		DispCaps:  []float64{4.0, 25.0, 4.0},
		Weight:    W,
		Uy:        0.08,
		Kvt:       100.0,
		MinFv:     0.1,
		Tol:       1e-8,
		VertStiff: 150.0 * W,
	})
	return m
}

// Describe prints a short summary of the model
func (o *Model) Describe() {
	io.Pf("model %q: ndm=%d ndf=%d units=%s\n", o.Info.Name, o.Info.Ndm, o.Info.Ndf, o.Info.Units)
	io.Pf("  %d nodes, %d elements, %d bearings, %d loads, %d rigid groups\n",
		len(o.Nodes), len(o.Elements), len(o.Bearings), len(o.Loads), len(o.Groups))
}
