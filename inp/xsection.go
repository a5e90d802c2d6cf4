// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// CrossSection computes cross-sectional moments of inertia and other properties
//
//   typ : rectangle
//         circle                             tw
//         I-beam                         -->| |<--
//                                    ___    | |     ___
//   ^ 1       +-------+            tf |   ########   |
//   |         |       |              ---  ########   |
//   |         |       |                      ##      |
//   +----> 2  |       | h = hei              ##      | h = hei
//             |       |                      ##      |
//             |       |              ---  ########   |
//             +-------+            tf_|_  ########  ---
//              b = wid                    b = wid
//
//   I22 is the major moment of inertia (bending about axis 2)
//   I11 is the minor moment of inertia
//
type CrossSection struct {

	// input
	Type string  // "rectangle", "I-beam" or "circle"
	Wid  float64 // width (b) if not circular
	Hei  float64 // height (h) if not circular
	Tf   float64 // flange thickness if I-beam
	Tw   float64 // web thickness if I-beam
	R    float64 // radius if circular

	// derived
	A   float64 // cross-sectional area
	I22 float64 // major cross-section moment of inertia
	I11 float64 // minor cross-section moment of inertia
	Jtt float64 // torsional constant
}

// Init initialises structure and computes moment of inertia
func (o *CrossSection) Init(typ string, wid, hei, tf, tw, rad float64) {

	// input data
	o.Type, o.Wid, o.Hei, o.Tf, o.Tw, o.R = typ, wid, hei, tf, tw, rad

	// derived
	switch typ {
	case "rectangle":
		b, h := wid, hei
		b3 := b * b * b
		h3 := h * h * h
		o.A = b * h
		o.I22 = b * h3 / 12.0
		o.I11 = b3 * h / 12.0
		if b == h {
			o.Jtt = 9.0 * b3 * b / 64.0
		} else {
			if b > h {
				b, h = h, b
			}
			o.Jtt = h * b3 * (1.0/3.0 - 0.21*(b/h)*(1.0-b*b3/(12.0*h*h3))) // approximate
		}

	case "I-beam":
		b, h := wid, hei
		b3 := b * b * b
		h3 := h * h * h
		tw3 := tw * tw * tw
		tf3 := tf * tf * tf
		l := h - 2.0*tf
		l3 := l * l * l
		o.A = b*h - l*(b-tw)
		o.I22 = b*h3/12.0 - (b-tw)*l3/12.0
		o.I11 = l*tw3/12.0 + tf*b3/6.0
		o.Jtt = (2.0*b*tf3 + (h-2.0*tf)*tw3) / 3.0

	case "circle":
		r2 := rad * rad
		o.A = math.Pi * r2
		o.I22 = math.Pi * r2 * r2 / 4.0
		o.I11 = o.I22
		o.Jtt = o.I22 + o.I11

	default:
		chk.Panic("cross-section type %q is unavailable", typ)
	}
}

// ToSection builds a model Section from the computed properties
func (o *CrossSection) ToSection(id int, name string, mat *RefMaterial) *Section {
	return &Section{
		Id:   id,
		Type: "Elastic",
		Name: name,
		Props: SecProps{
			A:     o.A,
			E:     mat.E,
			G:     mat.G,
			Iz:    o.I22,
			Iy:    o.I11,
			J:     o.Jtt,
			Depth: o.Hei,
		},
	}
}

// RefMaterial holds parameters of some reference materials
type RefMaterial struct {

	// input
	Type     string // type of material; e.g. "steel"
	UnitPres string // unit of pressure

	// derived
	Desc string  // description
	E    float64 // Young's modulus
	Nu   float64 // Poisson's coefficient
	G    float64 // shear modulus
	Rho  float64 // density
}

// Init initialises material parameters
//  Input:
//   unitPres:  "kPa" => E:[kPa], rho:[Mg/m^3]
//              "MPa" => E:[MPa], rho:[Gg/m^3]
//              "GPa" => E:[GPa], rho:[Tg/m^3]
func (o *RefMaterial) Init(typ, unitPres string) {

	// material data
	switch typ {
	case "steel":
		o.Desc = "Steel: structural A36"
		o.E = 200000.0  // [MPa]
		o.Nu = 0.32     // [-]
		o.Rho = 7.85e-3 // [Gg/m³]
	case "concrete-high":
		o.Desc = "Concrete: high strength"
		o.E = 30000.0   // [MPa]
		o.Nu = 0.15     // [-]
		o.Rho = 2.38e-3 // [Gg/m³]
	case "wood-douglas-fir":
		o.Desc = "Wood: Douglas-fir"
		o.E = 13100.0   // [MPa]
		o.Nu = 0.29     // [-]
		o.Rho = 4.70e-4 // [Gg/m³]
	default:
		chk.Panic("material type %q is unavailable", typ)
	}

	// set unit
	o.UnitPres = unitPres
	MPa_to_unitPres := 1.0
	switch unitPres {
	case "kPa":
		MPa_to_unitPres = 1e3
	case "MPa":
	case "GPa":
		MPa_to_unitPres = 1e-3
	default:
		chk.Panic("unit of pressure %q is invalid", unitPres)
	}

	// convert values to requested units
	o.E = o.E * MPa_to_unitPres
	o.Rho = o.Rho * MPa_to_unitPres

	// derived quantity
	o.G = o.E / (2.0 * (1.0 + o.Nu))
}
