// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// Solver implements the step loop of one integrator
type Solver interface {
	Run(nsteps int, Δt float64) (err error)
}

// allocators holds all available solvers
var allocators = make(map[string]func(eng *Engine) Solver)

// assembleLoads builds fb = fext - fint at the current time; the equivalent
// forces of base excitations are included when withUniform is true
func assembleLoads(o *Engine, withUniform bool) {
	d := o.Dom
	sol := o.Sol
	la.VecFill(o.Fb, 0)
	for _, pat := range o.patterns {
		switch pat.Kind {
		case "plain":
			fac := pat.Factor(sol.T)
			for _, pl := range pat.Loads {
				d.AddLoad(o.Fb, nil, pl.Node, pl.Values, fac)
			}
		case "uniform":
			if withUniform {
				d.MassLoad(o.Fb, pat.Dir-1, -pat.Factor(sol.T))
			}
		}
	}
	d.AddFint(o.Fb, -1)
}

// run_iterations solves the nonlinear system at the current (pseudo) time
// station by iterations on the free equations. With transient == true the
// inertial and damping terms enter the residual and the Jacobian
func run_iterations(o *Engine, transient bool) (err error) {

	// auxiliary
	d := o.Dom
	sol := o.Sol
	dc := o.DynCfs

	// mass coefficient of the Jacobian
	cm := 0.0
	if transient {
		cm = dc.α1 + o.rayM*dc.α4
	}

	// iterations
	var Lδu float64
	for it := 0; it < o.nmaxIt; it++ {

		// residual: fb = fext - fint - M*a - C*v
		assembleLoads(o, transient)
		if transient {
			d.MassMulVec(o.Fb, sol.D2ydt2, -1)
			if o.rayM > 0 {
				d.MassMulVec(o.Fb, sol.Dydt, -o.rayM)
			}
		}

		// Jacobian and factorisation. ModifiedNewton keeps the first
		// factorisation; KrylovNewton refreshes it periodically
		refact := it == 0
		switch o.algorithm {
		case "Newton":
			refact = true
		case "KrylovNewton":
			refact = it%3 == 0
		}
		if refact || o.InitLSol {
			d.AssembleKb(o.Kb, cm)
			if o.InitLSol {
				if err = o.LinSol.InitR(o.Kb, false, false, false); err != nil {
					return chk.Err("cannot initialise linear solver:\n%v", err)
				}
				o.InitLSol = false
				o.lisAlloc = true
			}
			if err = o.LinSol.Fact(); err != nil {
				return chk.Err("factorisation failed:\n%v", err)
			}
		}

		// solve linear system
		if err = o.LinSol.SolveR(o.Wb, o.Fb, false); err != nil {
			return chk.Err("linear solution failed:\n%v", err)
		}

		// update primary variables
		for i := 0; i < d.Ny; i++ {
			sol.Y[i] += o.Wb[i]
			sol.ΔY[i] += o.Wb[i]
		}
		if transient {
			for i := 0; i < d.Ny; i++ {
				sol.D2ydt2[i] = dc.α1*sol.Y[i] - sol.Zet[i]
				sol.Dydt[i] = dc.α4*sol.Y[i] - sol.Chi[i]
			}
		}

		// update elements
		if err = d.UpdateElems(sol); err != nil {
			return
		}

		// convergence on the norm of the displacement increment
		Lδu = la.VecNorm(o.Wb)
		if o.Verbose {
			io.Pf("    it=%-2d  Lδu=%13.6e\n", it, Lδu)
		}
		if Lδu < o.tolDu {
			return
		}
	}
	return chk.Err("convergence test failed after %d iterations (Lδu=%g)", o.nmaxIt, Lδu)
}
