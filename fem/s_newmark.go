// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// Newmark advances the transient solution with the Newmark scheme. Friction
// forces follow the sliding velocities through the velocity update performed
// at every iteration
type Newmark struct {
	eng *Engine
}

// add solver to database
func init() {
	allocators["Newmark"] = func(eng *Engine) Solver {
		return &Newmark{eng}
	}
}

// Run performs nsteps time increments of size Δt
func (o *Newmark) Run(nsteps int, Δt float64) (err error) {

	// auxiliary
	e := o.eng
	d := e.Dom
	sol := e.Sol
	dc := e.DynCfs

	// checks
	if !d.HasMass() {
		return chk.Err("transient analysis requires lumped masses")
	}
	if err = dc.CalcBoth(Δt); err != nil {
		return
	}

	// consistent accelerations at a quiescent start. A history that does not
	// begin at zero would otherwise enter the first step with a = 0 and carry
	// the spurious state forward
	if quiescent(sol) {
		if diag, derr := d.MassDiag(); derr == nil {
			assembleLoads(e, true)
			for i := 0; i < d.Ny; i++ {
				if diag[i] > 0 {
					sol.D2ydt2[i] = e.Fb[i] / diag[i]
				}
			}
		}
	}

	// time loop
	for n := 0; n < nsteps; n++ {

		// starred variables from the state at the beginning of the step
		for i := 0; i < d.Ny; i++ {
			sol.Zet[i] = dc.α1*sol.Y[i] + dc.α2*sol.Dydt[i] + dc.α3*sol.D2ydt2[i]
			sol.Chi[i] = dc.α4*sol.Y[i] + dc.α5*sol.Dydt[i] + dc.α6*sol.D2ydt2[i]
		}

		// backup and advance time
		sol.Backup(&e.bkp)
		la.VecFill(sol.ΔY, 0)
		sol.T += Δt
		sol.Dt = Δt
		if e.Verbose {
			io.PfWhite("%30.15f\r", sol.T)
		}

		// predictor with unchanged displacements
		for i := 0; i < d.Ny; i++ {
			sol.D2ydt2[i] = dc.α1*sol.Y[i] - sol.Zet[i]
			sol.Dydt[i] = dc.α4*sol.Y[i] - sol.Chi[i]
		}

		// iterations
		tFail := sol.T
		if err = d.UpdateElems(sol); err == nil {
			err = run_iterations(e, true)
		}
		if err != nil {
			sol.Restore(&e.bkp)
			if uerr := d.UpdateElems(sol); uerr != nil {
				return uerr
			}
			return chk.Err("time step %d (t=%g) failed:\n%v", n+1, tFail, err)
		}
		d.CommitElems()
	}
	return
}

// quiescent reports whether all velocities and accelerations vanish
func quiescent(sol *Solution) bool {
	for i := 0; i < len(sol.Y); i++ {
		if sol.Dydt[i] != 0 || sol.D2ydt2[i] != 0 {
			return false
		}
	}
	return true
}
