// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Eigen solves the undamped free vibration problem K·φ = ω²·M·φ over the
// free equations. Massless equations are condensed out statically, the
// reduced problem is scaled to a standard symmetric one with M^(-1/2) and
// the shapes are expanded back. Eigenvalues (ω²) come out in ascending
// order; shapes are mass normalised and kept for NodeEigenvector queries
func (o *Engine) Eigen(nmodes int) (vals []float64, err error) {

	// initialise equations
	if err = o.initialise(); err != nil {
		return
	}
	d := o.Dom
	ny := d.Ny
	if ny == 0 {
		return nil, chk.Err("vibration analysis requires free equations")
	}
	if nmodes < 1 {
		return nil, chk.Err("number of modes must be positive")
	}

	// lumped mass diagonal
	diag, err := d.MassDiag()
	if err != nil {
		return
	}

	// partition massed and massless equations
	var mm, ss []int
	for i := 0; i < ny; i++ {
		if diag[i] > 0 {
			mm = append(mm, i)
		} else {
			ss = append(ss, i)
		}
	}
	nm, ns := len(mm), len(ss)
	if nm == 0 {
		return nil, chk.Err("vibration analysis requires lumped masses")
	}
	if nmodes > nm {
		nmodes = nm
	}

	// dense stiffness and massed partition
	Kd := d.StiffnessDense()
	Kmm := make([]float64, nm*nm)
	for i, p := range mm {
		for j, q := range mm {
			Kmm[i*nm+j] = Kd[p][q]
		}
	}

	// static condensation of the massless equations
	var X *mat.Dense
	if ns > 0 {
		Kss := mat.NewDense(ns, ns, nil)
		Ksm := mat.NewDense(ns, nm, nil)
		for i, p := range ss {
			for j, q := range ss {
				Kss.Set(i, j, Kd[p][q])
			}
			for j, q := range mm {
				Ksm.Set(i, j, Kd[p][q])
			}
		}
		X = mat.NewDense(ns, nm, nil)
		if err = X.Solve(Kss, Ksm); err != nil {
			return nil, chk.Err("static condensation failed:\n%v", err)
		}
		for i, p := range mm {
			for j := 0; j < nm; j++ {
				sum := 0.0
				for k, q := range ss {
					sum += Kd[p][q] * X.At(k, j)
				}
				Kmm[i*nm+j] -= sum
			}
		}
	}

	// scale to a standard symmetric problem with M^(-1/2)
	sqm := make([]float64, nm)
	for i, p := range mm {
		sqm[i] = math.Sqrt(diag[p])
	}
	data := make([]float64, nm*nm)
	for i := 0; i < nm; i++ {
		for j := 0; j < nm; j++ {
			a := Kmm[i*nm+j] / (sqm[i] * sqm[j])
			b := Kmm[j*nm+i] / (sqm[i] * sqm[j])
			data[i*nm+j] = 0.5 * (a + b)
		}
	}
	var es mat.EigenSym
	if !es.Factorize(mat.NewSymDense(nm, data), true) {
		return nil, chk.Err("eigen decomposition failed")
	}
	lam := es.Values(nil)
	var ev mat.Dense
	es.VectorsTo(&ev)

	// expand shapes back to the free equations
	o.eigVals = make([]float64, nmodes)
	o.eigVecs = make([][]float64, nmodes)
	copy(o.eigVals, lam[:nmodes])
	for j := 0; j < nmodes; j++ {
		φ := make([]float64, ny)
		φm := make([]float64, nm)
		for i, p := range mm {
			φm[i] = ev.At(i, j) / sqm[i]
			φ[p] = φm[i]
		}
		if ns > 0 {
			for i, p := range ss {
				sum := 0.0
				for k := 0; k < nm; k++ {
					sum += X.At(i, k) * φm[k]
				}
				φ[p] = -sum
			}
		}
		o.eigVecs[j] = φ
	}
	vals = make([]float64, nmodes)
	copy(vals, o.eigVals)
	return
}
