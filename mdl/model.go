// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mdl implements friction models for sliding isolation surfaces
package mdl

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Model defines friction coefficient models for sliding surfaces
type Model interface {
	Init(prms fun.Prms) error      // Init initialises this structure
	GetPrms(example bool) fun.Prms // gets (an example) of parameters
	Mu(v float64) float64          // Mu returns the friction coefficient at sliding speed v
	DmuDv(v float64) float64       // DmuDv returns ∂μ/∂v
}

// New friction model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'mdl' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models
var allocators = map[string]func() Model{}
