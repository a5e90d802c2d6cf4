// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Beam represents a structural beam-column element (Euler-Bernoulli, linear elastic)
type Beam struct {

	// basic data
	Eid  int         // element id
	Nids []int       // ids of connected nodes
	X    [][]float64 // matrix of nodal coordinates [ndim][nnode]
	Ndim int         // space dimension
	Ndf  int         // number of dofs per node
	Nu   int         // total number of unknowns == 2 * Ndf

	// parameters and properties
	E  float64 // Young's modulus
	G  float64 // shear modulus
	A  float64 // cross-sectional area
	Iz float64 // major moment of inertia (bending about local z)
	Iy float64 // minor moment of inertia (bending about local y)
	J  float64 // torsional constant
	L  float64 // length of beam

	// orientation
	Vecxz []float64 // vector in the local x-z plane (3D only)
	e0    []float64 // unit vector aligned with the beam axis
	e1    []float64 // unit vector of the local y axis
	e2    []float64 // unit vector of the local z axis

	// vectors and matrices
	T  [][]float64 // global-to-local transformation matrix [Nu][Nu]
	Kl [][]float64 // local K matrix
	K  [][]float64 // global K matrix

	// scratchpad
	ue []float64 // local u vector (global components)
	ua []float64 // u aligned with the beam system
	fi []float64 // internal forces (global components)
	fl []float64 // end forces in the local system
}

// NewBeam returns a new beam element
//  Input:
//   id    -- element id
//   nids  -- ids of the two connected nodes
//   xi,xj -- coordinates of the two nodes [ndim]
//   vecxz -- orientation of the local x-z plane; used in 3D only
//   e, g  -- Young's and shear moduli
//   a     -- cross-sectional area
//   iz,iy -- major and minor moments of inertia
//   jtt   -- torsional constant
func NewBeam(id int, nids []int, xi, xj, vecxz []float64, e, g, a, iz, iy, jtt float64) (*Beam, error) {

	// check
	ndim := len(xi)
	if ndim != 2 && ndim != 3 {
		return nil, chk.Err("beam %d: ndim must be 2 or 3; got %d", id, ndim)
	}
	if e < 1e-9 || a < 1e-9 || iz < 1e-9 {
		return nil, chk.Err("beam %d: E, A and Iz must be all positive", id)
	}
	if ndim == 3 && (g < 1e-9 || iy < 1e-9 || jtt < 1e-9) {
		return nil, chk.Err("beam %d: G, Iy and J must be all positive in 3D", id)
	}

	// basic data
	var o Beam
	o.Eid = id
	o.Nids = []int{nids[0], nids[1]}
	o.Ndim = ndim
	o.Ndf = 3 * (ndim - 1)
	o.Nu = 2 * o.Ndf
	o.X = la.MatAlloc(ndim, 2)
	for i := 0; i < ndim; i++ {
		o.X[i][0] = xi[i]
		o.X[i][1] = xj[i]
	}

	// parameters
	o.E, o.G, o.A, o.Iz, o.Iy, o.J = e, g, a, iz, iy, jtt
	if ndim == 3 {
		o.Vecxz = []float64{vecxz[0], vecxz[1], vecxz[2]}
	}

	// vectors and matrices
	o.e0 = make([]float64, 3)
	o.e1 = make([]float64, 3)
	o.e2 = make([]float64, 3)
	o.T = la.MatAlloc(o.Nu, o.Nu)
	o.Kl = la.MatAlloc(o.Nu, o.Nu)
	o.K = la.MatAlloc(o.Nu, o.Nu)
	o.ue = make([]float64, o.Nu)
	o.ua = make([]float64, o.Nu)
	o.fi = make([]float64, o.Nu)
	o.fl = make([]float64, o.Nu)

	// compute K
	err := o.Recompute()
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Id returns the element id
func (o *Beam) Id() int { return o.Eid }

// Nodes returns the connected node ids
func (o *Beam) Nodes() []int { return o.Nids }

// Ndofs returns the size of the local system
func (o *Beam) Ndofs() int { return o.Nu }

// Update performs the state determination; v is unused since the element is elastic
func (o *Beam) Update(u, v []float64) (err error) {
	copy(o.ue, u)
	la.MatVecMul(o.fi, 1, o.K, o.ue)
	return
}

// AddToK adds the element stiffness to the local matrix K
func (o *Beam) AddToK(K [][]float64) {
	for i := 0; i < o.Nu; i++ {
		for j := 0; j < o.Nu; j++ {
			K[i][j] += o.K[i][j]
		}
	}
}

// AddToFint adds the internal forces to the local vector f
func (o *Beam) AddToFint(f []float64) {
	for i := 0; i < o.Nu; i++ {
		f[i] += o.fi[i]
	}
}

// Commit is a no-op since the element is elastic
func (o *Beam) Commit() {}

// Response returns a named response quantity
//  "force"       -- end forces in the local system [Nu]
//  "globalForce" -- end forces in the global system [Nu]
//  Note: in 2D the local vector is [N1, V1, M1, N2, V2, M2]; in 3D the
//  bending moments about the local z axis are entries 5 and 11
func (o *Beam) Response(kind string) ([]float64, error) {
	switch kind {
	case "force":
		la.MatVecMul(o.ua, 1, o.T, o.ue)
		la.MatVecMul(o.fl, 1, o.Kl, o.ua)
		res := make([]float64, o.Nu)
		copy(res, o.fl)
		return res, nil
	case "globalForce":
		res := make([]float64, o.Nu)
		copy(res, o.fi)
		return res, nil
	}
	return nil, chk.Err("beam %d: response %q is unavailable", o.Eid, kind)
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// Recompute re-computes the transformation and stiffness matrices
func (o *Beam) Recompute() (err error) {

	// 3D
	if o.Ndim == 3 {

		// unit vectors aligned with beam element
		o.L = 0.0
		for i := 0; i < 3; i++ {
			o.e0[i] = o.X[i][1] - o.X[i][0]
			o.L += o.e0[i] * o.e0[i]
		}
		o.L = math.Sqrt(o.L)
		if o.L < 1e-10 {
			return chk.Err("beam %d: nodes are coincident", o.Eid)
		}
		for i := 0; i < 3; i++ {
			o.e0[i] /= o.L
		}
		cross3d(o.e1, o.Vecxz, o.e0) // e1 := vecxz cross e0
		nrm1 := norm3d(o.e1)
		if nrm1 < 1e-10 {
			return chk.Err("beam %d: orientation vector is parallel to the beam axis", o.Eid)
		}
		for i := 0; i < 3; i++ {
			o.e1[i] /= nrm1
		}
		cross3d(o.e2, o.e0, o.e1) // e2 := e0 cross e1

		// global to local transformation matrix
		for k := 0; k < 4; k++ {
			o.T[3*k+0][3*k+0], o.T[3*k+0][3*k+1], o.T[3*k+0][3*k+2] = o.e0[0], o.e0[1], o.e0[2]
			o.T[3*k+1][3*k+0], o.T[3*k+1][3*k+1], o.T[3*k+1][3*k+2] = o.e1[0], o.e1[1], o.e1[2]
			o.T[3*k+2][3*k+0], o.T[3*k+2][3*k+1], o.T[3*k+2][3*k+2] = o.e2[0], o.e2[1], o.e2[2]
		}

		// constants
		EIr := o.E * o.Iz
		EIs := o.E * o.Iy
		GJ := o.G * o.J
		EA := o.E * o.A
		l := o.L
		ll := l * l
		lll := l * ll

		// stiffness matrix in local system
		o.Kl[0][0] = EA / l
		o.Kl[0][6] = -EA / l

		o.Kl[1][1] = 12.0 * EIr / lll
		o.Kl[1][5] = 6.0 * EIr / ll
		o.Kl[1][7] = -12.0 * EIr / lll
		o.Kl[1][11] = 6.0 * EIr / ll

		o.Kl[2][2] = 12.0 * EIs / lll
		o.Kl[2][4] = -6.0 * EIs / ll
		o.Kl[2][8] = -12.0 * EIs / lll
		o.Kl[2][10] = -6.0 * EIs / ll

		o.Kl[3][3] = GJ / l
		o.Kl[3][9] = -GJ / l

		o.Kl[4][2] = -6.0 * EIs / ll
		o.Kl[4][4] = 4.0 * EIs / l
		o.Kl[4][8] = 6.0 * EIs / ll
		o.Kl[4][10] = 2.0 * EIs / l

		o.Kl[5][1] = 6.0 * EIr / ll
		o.Kl[5][5] = 4.0 * EIr / l
		o.Kl[5][7] = -6.0 * EIr / ll
		o.Kl[5][11] = 2.0 * EIr / l

		o.Kl[6][0] = -EA / l
		o.Kl[6][6] = EA / l

		o.Kl[7][1] = -12.0 * EIr / lll
		o.Kl[7][5] = -6.0 * EIr / ll
		o.Kl[7][7] = 12.0 * EIr / lll
		o.Kl[7][11] = -6.0 * EIr / ll

		o.Kl[8][2] = -12.0 * EIs / lll
		o.Kl[8][4] = 6.0 * EIs / ll
		o.Kl[8][8] = 12.0 * EIs / lll
		o.Kl[8][10] = 6.0 * EIs / ll

		o.Kl[9][3] = -GJ / l
		o.Kl[9][9] = GJ / l

		o.Kl[10][2] = -6.0 * EIs / ll
		o.Kl[10][4] = 2.0 * EIs / l
		o.Kl[10][8] = 6.0 * EIs / ll
		o.Kl[10][10] = 4.0 * EIs / l

		o.Kl[11][1] = 6.0 * EIr / ll
		o.Kl[11][5] = 2.0 * EIr / l
		o.Kl[11][7] = -6.0 * EIr / ll
		o.Kl[11][11] = 4.0 * EIr / l

		// stiffness matrix in global system
		la.MatTrMul3(o.K, 1, o.T, o.Kl, o.T) // K := 1 * trans(T) * Kl * T
		return
	}

	// T
	dx := o.X[0][1] - o.X[0][0]
	dy := o.X[1][1] - o.X[1][0]
	l := math.Sqrt(dx*dx + dy*dy)
	if l < 1e-10 {
		return chk.Err("beam %d: nodes are coincident", o.Eid)
	}
	o.L = l
	c := dx / l
	s := dy / l
	o.T[0][0] = c
	o.T[0][1] = s
	o.T[1][0] = -s
	o.T[1][1] = c
	o.T[2][2] = 1
	o.T[3][3] = c
	o.T[3][4] = s
	o.T[4][3] = -s
	o.T[4][4] = c
	o.T[5][5] = 1

	// unit vectors aligned with beam element
	o.e0[0], o.e0[1] = c, s
	o.e1[0], o.e1[1] = -s, c
	o.e2[2] = 1

	// aux vars
	ll := l * l
	m := o.E * o.A / l
	n := o.E * o.Iz / (ll * l)

	// K
	o.Kl[0][0] = m
	o.Kl[0][3] = -m
	o.Kl[1][1] = 12 * n
	o.Kl[1][2] = 6 * l * n
	o.Kl[1][4] = -12 * n
	o.Kl[1][5] = 6 * l * n
	o.Kl[2][1] = 6 * l * n
	o.Kl[2][2] = 4 * ll * n
	o.Kl[2][4] = -6 * l * n
	o.Kl[2][5] = 2 * ll * n
	o.Kl[3][0] = -m
	o.Kl[3][3] = m
	o.Kl[4][1] = -12 * n
	o.Kl[4][2] = -6 * l * n
	o.Kl[4][4] = 12 * n
	o.Kl[4][5] = -6 * l * n
	o.Kl[5][1] = 6 * l * n
	o.Kl[5][2] = 2 * ll * n
	o.Kl[5][4] = -6 * l * n
	o.Kl[5][5] = 4 * ll * n
	la.MatTrMul3(o.K, 1, o.T, o.Kl, o.T) // K := 1 * trans(T) * Kl * T
	return
}
