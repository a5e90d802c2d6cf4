// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"

	"github.com/mjamiv/isolation/inp"
)

// IdentifyHinges estimates plastic hinge states from frame end forces. End
// moments come from components 2 and 5 of the local force vector; shorter
// vectors yield the I end only. The yield moment follows the rough steel
// rule My=(E/200)·S with S=Iz/(d/2), and the demand-capacity ratio maps to
// performance levels with the rotation estimate (dc-1)·0.01
func IdentifyHinges(m *inp.Model, eleForces map[int][]float64) (hinges []Hinge) {
	for _, e := range m.Elements {
		f := eleForces[e.Id]
		if len(f) == 0 {
			continue
		}
		var mi, mj float64
		switch {
		case len(f) >= 6:
			mi, mj = math.Abs(f[2]), math.Abs(f[5])
		case len(f) >= 3:
			mi, mj = math.Abs(f[2]), 0
		default:
			continue
		}
		my := yieldMoment(m, e)
		for _, end := range []struct {
			label  string
			moment float64
		}{{"I", mi}, {"J", mj}} {
			if end.moment < 1e-10 {
				continue
			}
			dc := 0.0
			if my > 0 {
				dc = end.moment / my
			}
			h := Hinge{Ele: e.Id, End: end.label, Moment: end.moment, DC: dc}
			switch {
			case dc < 1:
				h.Level = HingeNone
			case dc < 2:
				h.Level = HingeIO
				h.Rotation = (dc - 1) * 0.01
			case dc < 3:
				h.Level = HingeLS
				h.Rotation = (dc - 1) * 0.01
			default:
				h.Level = HingeCP
				h.Rotation = (dc - 1) * 0.01
			}
			hinges = append(hinges, h)
		}
	}
	return
}

// yieldMoment estimates the yield moment of an element section. Elements
// without a section take unit capacity so the ratio degenerates gracefully
func yieldMoment(m *inp.Model, e *inp.Element) float64 {
	sec := m.GetSection(e.SectionId)
	if sec == nil {
		return 1.0
	}
	Iz := sec.Props.Iz
	if Iz <= 0 {
		Iz = 1.0
	}
	E := m.Youngs(sec)
	depth := sec.Props.Depth
	if depth == 0 {
		depth = 14.0
	}
	S := Iz
	if depth > 0 {
		S = Iz / (depth / 2.0)
	}
	return (E / 200.0) * S
}
