// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdl

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Coulomb implements a constant (dry) friction coefficient
type Coulomb struct {
	mu float64
}

// add model to factory
func init() {
	allocators["coulomb"] = func() Model { return new(Coulomb) }
}

// Init initialises this structure
func (o *Coulomb) Init(prms fun.Prms) (err error) {
	prms.Connect(&o.mu, "mu", "mu Coulomb model")
	if o.mu <= 0 {
		return chk.Err("Coulomb model: 'mu' must be positive; got %g", o.mu)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o *Coulomb) GetPrms(example bool) fun.Prms {
	if example {
		return []*fun.Prm{
			&fun.Prm{N: "mu", V: 0.06},
		}
	}
	return []*fun.Prm{
		&fun.Prm{N: "mu", V: o.mu},
	}
}

// Mu returns the friction coefficient at sliding speed v
func (o *Coulomb) Mu(v float64) float64 {
	return o.mu
}

// DmuDv returns ∂μ/∂v
func (o *Coulomb) DmuDv(v float64) float64 {
	return 0
}
