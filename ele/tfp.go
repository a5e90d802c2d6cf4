// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/num"

	"github.com/mjamiv/isolation/inp"
	"github.com/mjamiv/isolation/mdl"
)

// Tfp represents a triple friction pendulum bearing connecting two nodes.
// Each horizontal axis carries three pendulum stages in series. A stage
// responds elastically up to the friction force, then slides with the
// pendulum stiffness N/L, and stiffens again once the slider reaches the
// restrainer rim at its displacement capacity
//
//   F ^                                 rim contact
//     |                                     __/
//     |                               ____/
//     |                    _____...--/  N/L
//     |              __.--/
//     |          _/--
//     |         /
//     |        / fy/uy
//     |       /
//     +------+----------------+-------------> u
//            uy               d
//
// Sliding shifts the centre of the elastic range (kinematic hardening), so
// unloading is elastic and cycles dissipate energy. The vertical axis is an
// elastic spring with different stiffnesses in compression and tension;
// rotations are restrained by stiff springs.
type Tfp struct {

	// basic data
	Eid  int   // element id
	Nids []int // ids of connected nodes (bottom, top)
	Ndf  int   // number of dofs per node
	Nu   int   // total number of unknowns == 2 * Ndf

	// parameters and properties
	W     float64    // static weight carried by the bearing
	Uy    float64    // yield displacement of the sliding surfaces
	Kv    float64    // vertical stiffness in compression
	Kvt   float64    // vertical stiffness in tension
	MinFv float64    // smallest vertical force considered for friction
	Tol   float64    // tolerance of the inner series solve
	Rad   [3]float64 // effective pendulum lengths of the three stages
	Dcap  [3]float64 // displacement capacities of the three stages

	// friction models of the three stages
	frn [3]mdl.Model

	// dof layout
	vert int   // local index of the vertical translation
	axes []int // local indices of the horizontal translations
	rots []int // local indices of the rotations

	// state (per horizontal axis)
	upCom [][3]float64 // committed plastic offsets of the stages
	qCom  [][3]float64 // committed centres of the stage elastic ranges
	upTri [][3]float64 // trial plastic offsets
	qTri  [][3]float64 // trial centres
	fCom  []float64    // committed axis forces
	fTri  []float64    // trial axis forces
	kTan  []float64    // current tangent stiffness per axis
	fyAx  [][3]float64 // stage yield forces from the last update
	k0Ax  [][3]float64 // stage elastic stiffnesses from the last update
	kpAx  [][3]float64 // stage pendulum stiffnesses from the last update

	// current kinematics
	uLoc []float64 // local displacements from the last update
	fv   float64   // current vertical spring force
	kvc  float64   // current vertical stiffness (kv or kvt)

	// scratchpad for the series solve
	fy   [3]float64 // stage yield forces at the current speed and load
	k0   [3]float64 // stage elastic stiffnesses
	kp   [3]float64 // stage pendulum stiffnesses
	up   [3]float64 // committed offsets of the axis being solved
	q    [3]float64 // committed centres of the axis being solved
	curU float64    // target relative displacement
}

// rotational restraint of the bearing end plates
const tfpKrot = 1e10

// NewTfp returns a new triple friction pendulum element
//  Input:
//   b    -- bearing data
//   ndf  -- number of dofs per node (3 in 2D, 6 in 3D)
//   vert -- local index of the vertical translation (1 in 2D or y-up 3D, 2 in z-up 3D)
func NewTfp(b *inp.Bearing, ndf, vert int) (*Tfp, error) {

	// check
	if len(b.Nodes) != 2 {
		return nil, chk.Err("bearing %d: exactly 2 nodes are required", b.Id)
	}
	if len(b.Radii) != 3 || len(b.DispCaps) != 3 {
		return nil, chk.Err("bearing %d: 3 radii and 3 displacement capacities are required", b.Id)
	}
	if len(b.Surfaces) < 1 {
		return nil, chk.Err("bearing %d: at least one friction surface is required", b.Id)
	}
	if b.Uy <= 0 || b.MinFv <= 0 || b.Tol <= 0 {
		return nil, chk.Err("bearing %d: uy, min_fv and tol must be all positive", b.Id)
	}
	if ndf != 3 && ndf != 6 {
		return nil, chk.Err("bearing %d: ndf must be 3 or 6; got %d", b.Id, ndf)
	}
	if ndf == 3 && vert != 1 {
		return nil, chk.Err("bearing %d: the vertical dof must be 1 in 2D", b.Id)
	}
	if ndf == 6 && vert != 1 && vert != 2 {
		return nil, chk.Err("bearing %d: the vertical dof must be 1 or 2 in 3D", b.Id)
	}

	// basic data
	var o Tfp
	o.Eid = 10000 + b.Id
	o.Nids = []int{b.Nodes[0], b.Nodes[1]}
	o.Ndf = ndf
	o.Nu = 2 * ndf

	// parameters
	o.W = b.Weight
	o.Uy = b.Uy
	o.Kvt = b.Kvt
	o.MinFv = b.MinFv
	o.Tol = b.Tol
	for i := 0; i < 3; i++ {
		o.Rad[i] = b.Radii[i]
		o.Dcap[i] = b.DispCaps[i]
		if o.Rad[i] <= 0 {
			return nil, chk.Err("bearing %d: radius %d must be positive", b.Id, i+1)
		}
		if o.Dcap[i] <= o.Uy {
			return nil, chk.Err("bearing %d: capacity %d must exceed the yield displacement", b.Id, i+1)
		}
	}

	// vertical stiffness in compression
	o.Kv = b.VertStiff
	if o.Kv <= 0 {
		o.Kv = 100.0 * b.Weight
		if b.Weight <= 0 {
			o.Kv = 1e6
		}
	}

	// friction models: stages reuse the last surface when fewer are given
	for j := 0; j < 3; j++ {
		idx := j
		if idx > len(b.Surfaces)-1 {
			idx = len(b.Surfaces) - 1
		}
		s := b.Surfaces[idx]
		m, err := mdl.New("vel-dependent")
		if err != nil {
			return nil, err
		}
		err = m.Init([]*fun.Prm{
			&fun.Prm{N: "mus", V: s.MuSlow},
			&fun.Prm{N: "muf", V: s.MuFast},
			&fun.Prm{N: "rate", V: s.TransRate},
		})
		if err != nil {
			return nil, chk.Err("bearing %d, surface %d: %v", b.Id, idx+1, err)
		}
		o.frn[j] = m
	}

	// dof layout
	o.vert = vert
	if ndf == 3 {
		o.axes = []int{0}
		o.rots = []int{2}
	} else {
		for i := 0; i < 3; i++ {
			if i != vert {
				o.axes = append(o.axes, i)
			}
		}
		o.rots = []int{3, 4, 5}
	}

	// state
	na := len(o.axes)
	o.upCom = make([][3]float64, na)
	o.qCom = make([][3]float64, na)
	o.upTri = make([][3]float64, na)
	o.qTri = make([][3]float64, na)
	o.fCom = make([]float64, na)
	o.fTri = make([]float64, na)
	o.kTan = make([]float64, na)
	o.fyAx = make([][3]float64, na)
	o.k0Ax = make([][3]float64, na)
	o.kpAx = make([][3]float64, na)
	o.uLoc = make([]float64, o.Nu)
	o.kvc = o.Kv

	// fresh tangent: series of elastic stages under the static weight
	n := o.normal(0)
	for ia := range o.kTan {
		flex := 0.0
		for i := 0; i < 3; i++ {
			o.fyAx[ia][i] = o.frn[i].Mu(0) * n
			o.k0Ax[ia][i] = o.fyAx[ia][i] / o.Uy
			o.kpAx[ia][i] = n / o.Rad[i]
			flex += 1.0 / o.k0Ax[ia][i]
		}
		o.kTan[ia] = 1.0 / flex
	}
	return &o, nil
}

// Id returns the element id (10000 + bearing id)
func (o *Tfp) Id() int { return o.Eid }

// Nodes returns the connected node ids
func (o *Tfp) Nodes() []int { return o.Nids }

// Ndofs returns the size of the local system
func (o *Tfp) Ndofs() int { return o.Nu }

// Update performs the state determination from the committed state
func (o *Tfp) Update(u, v []float64) (err error) {

	// kinematics
	copy(o.uLoc, u)

	// vertical spring
	dv := u[o.Ndf+o.vert] - u[o.vert]
	o.kvc = o.Kv
	if dv > 0 {
		o.kvc = o.Kvt
	}
	o.fv = o.kvc * dv

	// normal force for friction
	n := o.normal(o.fv)

	// horizontal axes
	for ia, a := range o.axes {
		o.curU = u[o.Ndf+a] - u[a]
		vRel := v[o.Ndf+a] - v[a]

		// stage properties at the current speed and load
		for i := 0; i < 3; i++ {
			o.fy[i] = o.frn[i].Mu(vRel) * n
			o.k0[i] = o.fy[i] / o.Uy
			o.kp[i] = n / o.Rad[i]
		}
		o.fyAx[ia] = o.fy
		o.k0Ax[ia] = o.k0
		o.kpAx[ia] = o.kp
		o.up = o.upCom[ia]
		o.q = o.qCom[ia]

		// series solve for the axis force
		F, e := o.solveSeries(o.fCom[ia])
		if e != nil {
			return chk.Err("bearing %d: %v", o.Eid-10000, e)
		}
		o.fTri[ia] = F

		// trial state and tangent
		flex := 0.0
		for i := 0; i < 3; i++ {
			o.upTri[ia][i] = o.up[i]
			o.qTri[ia][i] = o.q[i]
			if F > o.q[i]+o.fy[i] {
				o.upTri[ia][i] = o.stageDisp(i, F) - F/o.k0[i]
				o.qTri[ia][i] = F - o.fy[i]
			} else if F < o.q[i]-o.fy[i] {
				o.upTri[ia][i] = o.stageDisp(i, F) - F/o.k0[i]
				o.qTri[ia][i] = F + o.fy[i]
			}
			flex += o.stageFlex(i, F)
		}
		o.kTan[ia] = 1.0 / flex
	}
	return
}

// AddToK adds the local tangent matrix to K
func (o *Tfp) AddToK(K [][]float64) {
	add := func(d int, k float64) {
		t := o.Ndf + d
		K[d][d] += k
		K[t][t] += k
		K[d][t] -= k
		K[t][d] -= k
	}
	for ia, a := range o.axes {
		add(a, o.kTan[ia])
	}
	add(o.vert, o.kvc)
	for _, r := range o.rots {
		add(r, tfpKrot)
	}
}

// AddToFint adds the local internal forces to f
func (o *Tfp) AddToFint(f []float64) {
	add := func(d int, force float64) {
		f[d] -= force
		f[o.Ndf+d] += force
	}
	for ia, a := range o.axes {
		add(a, o.fTri[ia])
	}
	add(o.vert, o.fv)
	for _, r := range o.rots {
		add(r, tfpKrot*(o.uLoc[o.Ndf+r]-o.uLoc[r]))
	}
}

// Commit promotes the trial state to committed
func (o *Tfp) Commit() {
	for ia := range o.axes {
		o.upCom[ia] = o.upTri[ia]
		o.qCom[ia] = o.qTri[ia]
		o.fCom[ia] = o.fTri[ia]
	}
}

// Response returns a named response quantity
//  "basicDisplacement" -- relative displacement per horizontal axis
//  "basicForce"        -- shear force per horizontal axis
//  "axialForce"        -- vertical spring force
//  "stageDisplacement" -- stage displacements of the first horizontal axis
func (o *Tfp) Response(kind string) ([]float64, error) {
	switch kind {
	case "basicDisplacement":
		res := make([]float64, len(o.axes))
		for ia, a := range o.axes {
			res[ia] = o.uLoc[o.Ndf+a] - o.uLoc[a]
		}
		return res, nil
	case "basicForce":
		res := make([]float64, len(o.axes))
		copy(res, o.fTri)
		return res, nil
	case "axialForce":
		return []float64{o.fv}, nil
	case "stageDisplacement":
		o.fy = o.fyAx[0]
		o.k0 = o.k0Ax[0]
		o.kp = o.kpAx[0]
		o.up = o.upCom[0]
		o.q = o.qCom[0]
		res := make([]float64, 3)
		for i := 0; i < 3; i++ {
			res[i] = o.stageDisp(i, o.fTri[0])
		}
		return res, nil
	}
	return nil, chk.Err("bearing %d: response %q is unavailable", o.Eid-10000, kind)
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// normal returns the vertical force considered for friction. A fresh element
// carries the static weight; afterwards the spring force governs, floored by
// the minimum vertical force
func (o *Tfp) normal(fv float64) float64 {
	if fv == 0 && o.W > 0 {
		return o.W
	}
	c := -fv // compression makes the spring force negative
	if c < o.MinFv {
		c = o.MinFv
	}
	return c
}

// solveSeries returns the axis force equilibrating the three stages in series
// at the target displacement. The iteration starts from the committed force;
// if it strays, the monotone residual is bracketed from the elastic and
// pendulum flexibilities and pinned down by bisection
func (o *Tfp) solveSeries(f0 float64) (float64, error) {

	// residual acceptance
	res := []float64{0}
	tol := o.Tol * (1.0 + math.Abs(o.curU))

	// iterative solve from the committed force
	var nls num.NlSolver
	nls.Init(1, o.gfcn, nil, o.dgfcn, true, false, nil)
	nls.ChkConv = false
	x := []float64{f0}
	err := nls.Solve(x, true)
	nls.Clean()
	if err == nil {
		o.gfcn(res, x)
		if math.Abs(res[0]) <= tol {
			return x[0], nil
		}
	}

	// bracket from the flexibility bounds. The residual slope stays between
	// the series elastic and series pendulum flexibilities, hence the root
	// lies within the secants drawn with these two slopes
	uStart, flexLo, flexHi := 0.0, 0.0, 0.0
	for i := 0; i < 3; i++ {
		uStart += o.stageDisp(i, f0)
		lo, hi := o.k0[i], o.kp[i]
		if lo < hi {
			lo, hi = hi, lo
		}
		flexLo += 1.0 / lo
		flexHi += 1.0 / hi
	}
	a := f0 + (o.curU-uStart)/flexHi
	b := f0 + (o.curU-uStart)/flexLo
	if a > b {
		a, b = b, a
	}
	a -= tol / flexLo
	b += tol / flexLo

	// bisection
	for it := 0; it < 200; it++ {
		x[0] = 0.5 * (a + b)
		o.gfcn(res, x)
		if math.Abs(res[0]) <= tol {
			return x[0], nil
		}
		if b-a <= 1e-14*(1.0+math.Abs(x[0])) {
			break
		}
		if res[0] > 0 {
			b = x[0]
		} else {
			a = x[0]
		}
	}
	return 0, chk.Err("series solve did not converge at u=%g", o.curU)
}

// stageDisp returns the displacement of stage i under the axis force F,
// starting from the committed offsets and elastic-range centres
func (o *Tfp) stageDisp(i int, F float64) float64 {
	hi := o.q[i] + o.fy[i]
	lo := o.q[i] - o.fy[i]

	// elastic
	if F >= lo && F <= hi {
		return o.up[i] + F/o.k0[i]
	}

	// sliding towards the positive rim
	if F > hi {
		uyp := o.up[i] + hi/o.k0[i]
		if uyp >= o.Dcap[i] {
			return uyp + (F-hi)/o.k0[i]
		}
		frim := hi + o.kp[i]*(o.Dcap[i]-uyp)
		if F <= frim {
			return uyp + (F-hi)/o.kp[i]
		}
		return o.Dcap[i] + (F-frim)/o.k0[i]
	}

	// sliding towards the negative rim
	uyn := o.up[i] + lo/o.k0[i]
	if uyn <= -o.Dcap[i] {
		return uyn + (F-lo)/o.k0[i]
	}
	frim := lo - o.kp[i]*(o.Dcap[i]+uyn)
	if F >= frim {
		return uyn + (F-lo)/o.kp[i]
	}
	return -o.Dcap[i] + (F-frim)/o.k0[i]
}

// stageFlex returns the flexibility du/dF of stage i at the axis force F
func (o *Tfp) stageFlex(i int, F float64) float64 {
	hi := o.q[i] + o.fy[i]
	lo := o.q[i] - o.fy[i]
	if F >= lo && F <= hi {
		return 1.0 / o.k0[i]
	}
	if F > hi {
		uyp := o.up[i] + hi/o.k0[i]
		if uyp >= o.Dcap[i] {
			return 1.0 / o.k0[i]
		}
		if F <= hi+o.kp[i]*(o.Dcap[i]-uyp) {
			return 1.0 / o.kp[i]
		}
		return 1.0 / o.k0[i]
	}
	uyn := o.up[i] + lo/o.k0[i]
	if uyn <= -o.Dcap[i] {
		return 1.0 / o.k0[i]
	}
	if F >= lo-o.kp[i]*(o.Dcap[i]+uyn) {
		return 1.0 / o.kp[i]
	}
	return 1.0 / o.k0[i]
}

// gfcn implements the series residual: total stage displacement minus target
func (o *Tfp) gfcn(fx, X []float64) (err error) {
	F := X[0]
	fx[0] = -o.curU
	for i := 0; i < 3; i++ {
		fx[0] += o.stageDisp(i, F)
	}
	return
}

// dgfcn is the derivative of gfcn
func (o *Tfp) dgfcn(dfdx [][]float64, X []float64) (err error) {
	F := X[0]
	dfdx[0][0] = 0
	for i := 0; i < 3; i++ {
		dfdx[0][0] += o.stageFlex(i, F)
	}
	return
}
