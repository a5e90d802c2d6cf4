// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/num"

	"github.com/mjamiv/isolation/inp"
)

// SummarizeTimeHistory condenses a transient run into scalar measures. The
// roof is the highest node with a recorded history; interstorey drifts
// compare the average lateral displacement of mass-carrying nodes between
// consecutive storey levels; the dissipated energy integrates the bearing
// hysteresis loops
func SummarizeTimeHistory(m *inp.Model, name string, r *TimeHistoryResults) *RunSummary {
	s := &RunSummary{Name: name, Steps: r.Steps, Partial: r.Partial}
	vc := m.VertDof()

	// roof displacement
	roof, hmax := 0, math.Inf(-1)
	for nid := range r.Disps {
		n := m.GetNode(nid)
		if n == nil || len(n.Coords) <= vc {
			continue
		}
		if h := n.Coords[vc]; h > hmax {
			hmax, roof = h, nid
		}
	}
	if roof != 0 {
		s.PeakRoof = r.PeakDisp(roof, 0)
	}

	s.PeakDrift = peakDrift(m, r, vc)
	s.MaxBrgU, s.MaxBrgF = r.PeakBearing()

	// friction work: the signed trapezoid rule over a closed hysteresis
	// loop returns the enclosed area
	for _, h := range r.Bearings {
		if len(h.Dx) > 1 {
			s.Energy += num.Trapz(h.Dx, h.Fx)
		}
		if len(h.Dy) > 1 {
			s.Energy += num.Trapz(h.Dy, h.Fy)
		}
	}
	s.Energy = math.Abs(s.Energy)
	return s
}

// peakDrift returns the largest interstorey drift ratio over the history.
// Storey levels are the distinct heights of mass-carrying nodes
func peakDrift(m *inp.Model, r *TimeHistoryResults, vc int) (peak float64) {
	masses := NodeMasses(m)

	// distinct levels, sorted bottom to top
	var levels []float64
	seen := make(map[float64]bool)
	for nid := range masses {
		n := m.GetNode(nid)
		if n == nil || len(n.Coords) <= vc {
			continue
		}
		if h := n.Coords[vc]; !seen[h] {
			seen[h] = true
			levels = append(levels, h)
		}
	}
	sort.Float64s(levels)
	if len(levels) < 2 {
		return
	}
	byLevel := make([][]int, len(levels))
	for nid := range masses {
		n := m.GetNode(nid)
		if n == nil || len(n.Coords) <= vc {
			continue
		}
		for k, h := range levels {
			if n.Coords[vc] == h {
				byLevel[k] = append(byLevel[k], nid)
				break
			}
		}
	}

	nsteps := len(r.Time)
	avgs := make([]float64, len(levels))
	have := make([]bool, len(levels))
	for it := 0; it < nsteps; it++ {
		for k := range levels {
			sum, cnt := 0.0, 0
			for _, nid := range byLevel[k] {
				hist := r.Disps[nid]
				if it < len(hist) && len(hist[it]) > 0 {
					sum += hist[it][0]
					cnt++
				}
			}
			have[k] = cnt > 0
			if cnt > 0 {
				avgs[k] = sum / float64(cnt)
			}
		}
		prev, prevH, ok := 0.0, 0.0, false
		for k := range levels {
			if !have[k] {
				continue
			}
			if ok {
				if dh := levels[k] - prevH; dh > 0 {
					if drift := math.Abs(avgs[k]-prev) / dh; drift > peak {
						peak = drift
					}
				}
			}
			prev, prevH, ok = avgs[k], levels[k], true
		}
	}
	return
}

// SummarizePushover condenses a capacity curve into scalar measures. The
// yield displacement follows the 0.8·Vmax rule: the curve displacement
// where the base shear first reaches 80% of its peak, interpolated between
// the bracketing points
func SummarizePushover(r *PushoverResults) *PushoverSummary {
	s := &PushoverSummary{}
	if len(r.Curve) == 0 {
		return s
	}
	u := make([]float64, len(r.Curve))
	v := make([]float64, len(r.Curve))
	for i, p := range r.Curve {
		u[i] = p.RoofDisp
		v[i] = p.BaseShear
		if a := math.Abs(p.BaseShear); a > s.MaxBaseShear {
			s.MaxBaseShear = a
		}
		if a := math.Abs(p.RoofDisp); a > s.MaxRoofDisp {
			s.MaxRoofDisp = a
		}
	}
	if uy := yieldDisp(u, v, 0.8*s.MaxBaseShear); uy > 0 {
		s.Ductility = s.MaxRoofDisp / uy
	}
	if len(u) > 1 {
		s.Energy = math.Abs(num.Trapz(u, v))
	}
	for _, h := range r.Hinges {
		if h.Level != HingeNone {
			s.NumHinges++
		}
	}
	return s
}

// yieldDisp returns the displacement where |v| first reaches the threshold
func yieldDisp(u, v []float64, vy float64) float64 {
	if vy <= 0 {
		return 0
	}
	for i := range v {
		a := math.Abs(v[i])
		if a < vy {
			continue
		}
		if i == 0 || a == vy {
			return math.Abs(u[i])
		}
		a0 := math.Abs(v[i-1])
		if a == a0 {
			return math.Abs(u[i])
		}
		t := (vy - a0) / (a - a0)
		return math.Abs(u[i-1] + t*(u[i]-u[i-1]))
	}
	return 0
}
