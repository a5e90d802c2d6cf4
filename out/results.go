// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements output handling for structural analyses: result
// containers, deformed shapes, hinge classification, summaries and plotting
package out

import (
	"github.com/mjamiv/isolation/inp"
)

// hinge performance levels ordered by increasing demand
const (
	HingeNone = ""   // below first yield classification
	HingeIO   = "IO" // immediate occupancy
	HingeLS   = "LS" // life safety
	HingeCP   = "CP" // collapse prevention
)

// StaticResults holds the outcome of a static (gravity) analysis
type StaticResults struct {
	Disps     map[int][]float64 `json:"node_displacements"` // nodeId => displacement per dof
	Reactions map[int][]float64 `json:"reactions"`          // nodeId => reaction per dof; fixed nodes only
	EleForces map[int][]float64 `json:"element_forces"`     // eleId => end forces
	Shape     map[int][]float64 `json:"deformed_shape"`     // nodeId => deformed coordinates
	Refine    *inp.RefineMap    `json:"refine,omitempty"`   // refinement bookkeeping; nil if unrefined
}

// ModalResults holds the outcome of an eigenvalue analysis
type ModalResults struct {
	Eigenvalues   []float64            `json:"eigenvalues"`        // λ per mode
	Periods       []float64            `json:"periods"`            // T=2π/√λ per mode; 0 when λ≤0
	Frequencies   []float64            `json:"frequencies"`        // f=1/T per mode; 0 when T=0
	Shapes        []map[int][]float64  `json:"mode_shapes"`        // per mode: nodeId => eigenvector
	Participation map[string][]float64 `json:"mass_participation"` // direction ("X","Y","Z") => ratio per mode
	Refine        *inp.RefineMap       `json:"refine,omitempty"`
}

// BearingHistory holds the response history of one isolator
type BearingHistory struct {
	Dx []float64 `json:"displacement_x"` // lateral displacement, local x
	Dy []float64 `json:"displacement_y"` // lateral displacement, local y
	Fx []float64 `json:"force_x"`        // shear force, local x
	Fy []float64 `json:"force_y"`        // shear force, local y
	Fv []float64 `json:"axial_force"`    // axial (vertical) force
}

// TimeHistoryResults holds the outcome of a transient analysis. Partial is
// set when the run stopped early after exhausting all sub-stepping attempts;
// the recorded portion remains valid up to Steps
type TimeHistoryResults struct {
	Time      []float64                   `json:"time"`               // recorded time stations
	Disps     map[int][][]float64         `json:"node_displacements"` // nodeId => per-step displacement vectors
	EleForces map[int]map[int][]float64   `json:"element_forces"`     // eleId => component (1-based) => series
	Bearings  map[int]*BearingHistory     `json:"bearing_responses"`  // bearingId => response history
	Steps     int                         `json:"steps_completed"`    // number of completed steps
	Partial   bool                        `json:"partial"`            // true if the run stopped early
	Refine    *inp.RefineMap              `json:"refine,omitempty"`
}

// CapacityPoint is one point on a pushover capacity curve
type CapacityPoint struct {
	RoofDisp  float64 `json:"roof_disp"`  // control node displacement
	BaseShear float64 `json:"base_shear"` // total base shear
}

// PushStep holds a deformed-shape snapshot taken during a pushover
type PushStep struct {
	Step      int               `json:"step"`       // 1-based step number
	RoofDisp  float64           `json:"roof_disp"`  // control node displacement at this step
	BaseShear float64           `json:"base_shear"` // base shear at this step
	Disps     map[int][]float64 `json:"disps"`      // nodeId => displacement per dof
}

// Hinge holds one classified plastic hinge at a frame element end
type Hinge struct {
	Ele      int     `json:"element"`  // element tag
	End      string  `json:"end"`      // "I" or "J"
	Moment   float64 `json:"moment"`   // absolute end moment
	DC       float64 `json:"dc"`       // demand-capacity ratio M/My
	Level    string  `json:"level"`    // performance level; "" when DC < 1
	Rotation float64 `json:"rotation"` // estimated plastic rotation
}

// PushoverResults holds the outcome of a displacement-controlled pushover
type PushoverResults struct {
	Curve        []CapacityPoint   `json:"curve"`          // capacity curve per step
	Steps        []PushStep        `json:"steps"`          // deformed-shape snapshots
	Hinges       []Hinge           `json:"hinges"`         // classified hinges at final state
	MaxBaseShear float64           `json:"max_base_shear"` // peak |base shear| over the curve
	MaxRoofDisp  float64           `json:"max_roof_disp"`  // peak |roof displacement| over the curve
	Disps        map[int][]float64 `json:"node_displacements"`
	Reactions    map[int][]float64 `json:"reactions"`
	EleForces    map[int][]float64 `json:"element_forces"`
	Shape        map[int][]float64 `json:"deformed_shape"`
	Partial      bool              `json:"partial"` // true if the push stopped before the target
	Refine       *inp.RefineMap    `json:"refine,omitempty"`
}

// RunSummary condenses one time-history run into scalar measures
type RunSummary struct {
	Name      string  `json:"name"`          // run label; e.g. "isolated"
	PeakRoof  float64 `json:"peak_roof"`     // peak |roof displacement|
	PeakDrift float64 `json:"peak_drift"`    // peak interstorey drift ratio
	MaxBrgU   float64 `json:"max_bearing_u"` // peak |bearing lateral displacement|
	MaxBrgF   float64 `json:"max_bearing_f"` // peak |bearing shear force|
	Energy    float64 `json:"energy"`        // energy dissipated by the isolators
	Steps     int     `json:"steps"`         // completed steps
	Partial   bool    `json:"partial"`       // true if the run stopped early
}

// PushoverSummary condenses a capacity curve into scalar measures
type PushoverSummary struct {
	MaxBaseShear float64 `json:"max_base_shear"` // peak |base shear|
	MaxRoofDisp  float64 `json:"max_roof_disp"`  // peak |roof displacement|
	Ductility    float64 `json:"ductility"`      // μ = peak disp over yield disp
	Energy       float64 `json:"energy"`         // area under the capacity curve
	NumHinges    int     `json:"num_hinges"`     // hinges with DC ≥ 1
}

// ComparisonEntry holds one run of a design comparison. Err is set when the
// run failed; the remaining entries are still valid
type ComparisonEntry struct {
	Name    string      `json:"name"`            // variant label
	Lambda  float64     `json:"lambda"`          // friction scale factor; 0 when not applicable
	Summary *RunSummary `json:"summary"`         // nil when the run failed
	Err     string      `json:"error,omitempty"` // failure description
}

// ComparisonResults holds the outcome of a bounding-analysis comparison
type ComparisonResults struct {
	Entries []ComparisonEntry `json:"entries"`
	Refine  *inp.RefineMap    `json:"refine,omitempty"`
}

// NewTimeHistoryResults allocates an empty container with all maps ready
func NewTimeHistoryResults() *TimeHistoryResults {
	return &TimeHistoryResults{
		Time:      []float64{},
		Disps:     make(map[int][][]float64),
		EleForces: make(map[int]map[int][]float64),
		Bearings:  make(map[int]*BearingHistory),
	}
}

// PeakDisp returns the peak absolute displacement of a node along one dof
// over the recorded history; it returns 0 for unknown nodes
func (o *TimeHistoryResults) PeakDisp(nid, dof int) (peak float64) {
	for _, u := range o.Disps[nid] {
		if dof < len(u) {
			if v := u[dof]; v > peak {
				peak = v
			} else if -v > peak {
				peak = -v
			}
		}
	}
	return
}

// PeakBearing returns the peak absolute lateral displacement and shear force
// over all bearings in the history
func (o *TimeHistoryResults) PeakBearing() (umax, fmax float64) {
	abs := func(v float64) float64 {
		if v < 0 {
			return -v
		}
		return v
	}
	for _, h := range o.Bearings {
		for i := range h.Dx {
			if u := abs(h.Dx[i]); u > umax {
				umax = u
			}
			if f := abs(h.Fx[i]); f > fmax {
				fmax = f
			}
		}
		for i := range h.Dy {
			if u := abs(h.Dy[i]); u > umax {
				umax = u
			}
			if f := abs(h.Fy[i]); f > fmax {
				fmax = f
			}
		}
	}
	return
}
