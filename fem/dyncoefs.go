// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/chk"

// DynCoefs calculates coefficients for the transient simulations
//  The Newmark parameters γ and β enter as θ1 = γ and θ2 = 2β. With the
//  coefficients below the starred variables are
//   ζ* = α1.y + α2.v + α3.a    a = α1.y(new) - ζ*
//   χ* = α4.y + α5.v + α6.a    v = α4.y(new) - χ*
type DynCoefs struct {

	// input
	θ1, θ2 float64 // Newmark parameters

	// derived
	α1, α2, α3, α4, α5, α6 float64
}

// Init initialises this structure
func (o *DynCoefs) Init(γ, β float64) error {
	if γ < 0.5 || γ > 1.0 {
		return chk.Err("γ parameter must be between 0.5 and 1.0; got %g", γ)
	}
	if β < 1e-4 || β > 0.5 {
		return chk.Err("β parameter must be between 0.0001 and 0.5; got %g", β)
	}
	o.θ1, o.θ2 = γ, 2.0*β
	return nil
}

// CalcBoth computes the coefficients for a new time increment
func (o *DynCoefs) CalcBoth(Δt float64) error {
	if Δt < 1e-14 {
		return chk.Err("time increment is too small: %g", Δt)
	}
	H := Δt * Δt * o.θ2 / 2.0
	o.α1 = 1.0 / H
	o.α2 = Δt / H
	o.α3 = Δt*Δt/(2.0*H) - 1.0
	o.α4 = o.θ1 * Δt / H
	o.α5 = 2.0*o.θ1/o.θ2 - 1.0
	o.α6 = Δt * (o.θ1/o.θ2 - 1.0)
	return nil
}
