// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdl

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// VelDep implements the velocity-dependent friction coefficient of
// PTFE-composite sliding surfaces
//
//   μ(v) = μfast - (μfast - μslow) · exp(-rate·|v|)
//
//   μ ^
//     |                    ________________ μfast
//     |            ___-----
//     |        _--
//     |      /
//     |     /
//     |    /
//     |___/.......................... μslow
//     |
//     +----------------------------------> |v|
//
type VelDep struct {
	mus  float64 // friction coefficient at very slow sliding speed
	muf  float64 // friction coefficient at fast sliding speed
	rate float64 // transition rate between the two regimes
}

// add model to factory
func init() {
	allocators["vel-dependent"] = func() Model { return new(VelDep) }
}

// Init initialises this structure
func (o *VelDep) Init(prms fun.Prms) (err error) {
	prms.Connect(&o.mus, "mus", "mus VelDep model")
	prms.Connect(&o.muf, "muf", "muf VelDep model")
	prms.Connect(&o.rate, "rate", "rate VelDep model")
	if o.mus <= 0 {
		return chk.Err("VelDep model: 'mus' must be positive; got %g", o.mus)
	}
	if o.muf < o.mus {
		return chk.Err("VelDep model: 'muf' cannot be smaller than 'mus'; got muf=%g, mus=%g", o.muf, o.mus)
	}
	if o.rate < 0 {
		return chk.Err("VelDep model: 'rate' cannot be negative; got %g", o.rate)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o *VelDep) GetPrms(example bool) fun.Prms {
	if example {
		return []*fun.Prm{
			&fun.Prm{N: "mus", V: 0.015},
			&fun.Prm{N: "muf", V: 0.030},
			&fun.Prm{N: "rate", V: 25.0},
		}
	}
	return []*fun.Prm{
		&fun.Prm{N: "mus", V: o.mus},
		&fun.Prm{N: "muf", V: o.muf},
		&fun.Prm{N: "rate", V: o.rate},
	}
}

// Mu returns the friction coefficient at sliding speed v
func (o *VelDep) Mu(v float64) float64 {
	return o.muf - (o.muf-o.mus)*math.Exp(-o.rate*math.Abs(v))
}

// DmuDv returns ∂μ/∂v
//  Note: the derivative jumps at v=0; zero is returned there
func (o *VelDep) DmuDv(v float64) float64 {
	if v > 0 {
		return (o.muf - o.mus) * o.rate * math.Exp(-o.rate*v)
	}
	if v < 0 {
		return -(o.muf - o.mus) * o.rate * math.Exp(o.rate*v)
	}
	return 0
}
