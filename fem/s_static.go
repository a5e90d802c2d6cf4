// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// LoadControl advances the static solution by constant increments of the
// load factor (the pseudo time driving the live patterns)
type LoadControl struct {
	eng *Engine
}

// DispControl advances the static solution by prescribing increments of one
// control dof and solving for the factor of the live reference loads
type DispControl struct {
	eng *Engine
}

// add solvers to database
func init() {
	allocators["LoadControl"] = func(eng *Engine) Solver {
		return &LoadControl{eng}
	}
	allocators["DisplacementControl"] = func(eng *Engine) Solver {
		return &DispControl{eng}
	}
}

// Run performs nsteps load increments; Δt is ignored
func (o *LoadControl) Run(nsteps int, Δt float64) (err error) {
	e := o.eng
	for n := 0; n < nsteps; n++ {
		e.Sol.Backup(&e.bkp)
		la.VecFill(e.Sol.ΔY, 0)
		e.Sol.T += e.dLambda
		if err = run_iterations(e, false); err != nil {
			e.Sol.Restore(&e.bkp)
			if uerr := e.Dom.UpdateElems(e.Sol); uerr != nil {
				return uerr
			}
			return chk.Err("load step %d failed:\n%v", n+1, err)
		}
		e.Dom.CommitElems()
	}
	return
}

// Run performs nsteps displacement increments; Δt is ignored
func (o *DispControl) Run(nsteps int, Δt float64) (err error) {

	// auxiliary
	e := o.eng
	d := e.Dom
	sol := e.Sol

	// control equation
	nod := d.Tag2node[e.ctrlNode]
	if nod == nil {
		return chk.Err("control node %d is unknown", e.ctrlNode)
	}
	if e.ctrlDof < 1 || e.ctrlDof > d.Ndf {
		return chk.Err("control dof %d is out of range", e.ctrlDof)
	}
	eq := nod.GetEq(e.ctrlDof - 1)
	if eq < 0 {
		return chk.Err("control dof %d at node %d is not free", e.ctrlDof, e.ctrlNode)
	}

	// reference load vector from the live plain patterns
	Fref := make([]float64, d.Ny)
	for _, pat := range e.patterns {
		if pat.Kind == "plain" && pat.Live() {
			for _, pl := range pat.Loads {
				d.AddLoad(Fref, nil, pl.Node, pl.Values, 1)
			}
		}
	}
	if la.VecNorm(Fref) < 1e-14 {
		return chk.Err("displacement control requires a live reference load")
	}

	// workspace for the second solution
	δyf := make([]float64, d.Ny)

	// increments
	for n := 0; n < nsteps; n++ {
		sol.Backup(&e.bkp)
		la.VecFill(sol.ΔY, 0)
		converged := false
		var Lδu float64
		for it := 0; it < e.nmaxIt; it++ {

			// residual at the current load factor
			assembleLoads(e, false)

			// Jacobian and factorisation
			refact := it == 0
			switch e.algorithm {
			case "Newton":
				refact = true
			case "KrylovNewton":
				refact = it%3 == 0
			}
			if refact || e.InitLSol {
				d.AssembleKb(e.Kb, 0)
				if e.InitLSol {
					if err = e.LinSol.InitR(e.Kb, false, false, false); err != nil {
						return chk.Err("cannot initialise linear solver:\n%v", err)
					}
					e.InitLSol = false
					e.lisAlloc = true
				}
				if err = e.LinSol.Fact(); err != nil {
					break
				}
			}

			// solve for the residual and for the reference load
			if err = e.LinSol.SolveR(e.Wb, e.Fb, false); err != nil {
				break
			}
			if err = e.LinSol.SolveR(δyf, Fref, false); err != nil {
				break
			}

			// factor increment driving the control dof by du
			du := 0.0
			if it == 0 {
				du = e.dU
			}
			den := δyf[eq]
			if math.Abs(den) < 1e-14 {
				err = chk.Err("reference load does not drive the control dof")
				break
			}
			δλ := (du - e.Wb[eq]) / den

			// update primary variables and load factor
			Lδu = 0
			for i := 0; i < d.Ny; i++ {
				δy := e.Wb[i] + δλ*δyf[i]
				sol.Y[i] += δy
				sol.ΔY[i] += δy
				Lδu += δy * δy
			}
			Lδu = math.Sqrt(Lδu)
			sol.T += δλ

			// update elements
			if err = d.UpdateElems(sol); err != nil {
				break
			}

			// convergence on the norm of the displacement increment
			if e.Verbose {
				io.Pf("    it=%-2d  Lδu=%13.6e  λ=%g\n", it, Lδu, sol.T)
			}
			if Lδu < e.tolDu {
				converged = true
				break
			}
		}
		if !converged {
			if err == nil {
				err = chk.Err("convergence test failed after %d iterations (Lδu=%g)", e.nmaxIt, Lδu)
			}
			sol.Restore(&e.bkp)
			if uerr := d.UpdateElems(sol); uerr != nil {
				return uerr
			}
			return chk.Err("displacement step %d failed:\n%v", n+1, err)
		}
		d.CommitElems()
	}
	return
}
