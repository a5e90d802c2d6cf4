// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

// Solution holds the solution data at the reduced equations
type Solution struct {

	// current state
	T      float64   // current time (or load factor in static runs)
	Y      []float64 // dofs (solution variables)
	Dydt   []float64 // dy/dt
	D2ydt2 []float64 // d²y/dt²

	// auxiliary
	Dt  float64   // current time increment
	ΔY  []float64 // total increment of the current step
	Zet []float64 // t2 star vars: ζ* = α1.y + α2.v + α3.a
	Chi []float64 // t2 star vars: χ* = α4.y + α5.v + α6.a
}

// Allocate allocates all vectors for ny equations
func (o *Solution) Allocate(ny int) {
	o.T = 0
	o.Y = make([]float64, ny)
	o.Dydt = make([]float64, ny)
	o.D2ydt2 = make([]float64, ny)
	o.ΔY = make([]float64, ny)
	o.Zet = make([]float64, ny)
	o.Chi = make([]float64, ny)
}

// Reset clears all values
func (o *Solution) Reset() {
	o.T = 0
	o.Dt = 0
	for i := 0; i < len(o.Y); i++ {
		o.Y[i] = 0
		o.Dydt[i] = 0
		o.D2ydt2[i] = 0
		o.ΔY[i] = 0
		o.Zet[i] = 0
		o.Chi[i] = 0
	}
}

// Backup copies the current state into a twin structure
func (o *Solution) Backup(bkp *Solution) {
	if len(bkp.Y) != len(o.Y) {
		bkp.Allocate(len(o.Y))
	}
	bkp.T = o.T
	bkp.Dt = o.Dt
	copy(bkp.Y, o.Y)
	copy(bkp.Dydt, o.Dydt)
	copy(bkp.D2ydt2, o.D2ydt2)
	copy(bkp.ΔY, o.ΔY)
	copy(bkp.Zet, o.Zet)
	copy(bkp.Chi, o.Chi)
}

// Restore recovers the state saved by Backup
func (o *Solution) Restore(bkp *Solution) {
	o.T = bkp.T
	o.Dt = bkp.Dt
	copy(o.Y, bkp.Y)
	copy(o.Dydt, bkp.Dydt)
	copy(o.D2ydt2, bkp.D2ydt2)
	copy(o.ΔY, bkp.ΔY)
	copy(o.Zet, bkp.Zet)
	copy(o.Chi, bkp.Chi)
}
