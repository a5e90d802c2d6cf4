// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/mjamiv/isolation/ele"
)

// diaphragm ties the in-plane dofs of slave nodes to a master node
type diaphragm struct {
	perp   int   // 1-based direction perpendicular to the rigid plane
	master int   // master node tag
	slaves []int // slave node tags
}

// massEntry carries one lumped mass through the dof combination of its node
type massEntry struct {
	terms []Term  // equations receiving this mass
	m     float64 // mass value
	dof   int     // dof index at the node
}

// Domain holds nodes, elements and constraints, numbers the free equations
// and provides the assembly primitives used by the solvers. Fixed dofs carry
// no equation; slave dofs scatter through their master combinations.
type Domain struct {

	// basic data
	Ndm      int              // space dimension
	Ndf      int              // number of dofs per node
	Nodes    []*Node          // all nodes in insertion order
	Elems    []ele.Elem       // all elements in insertion order
	Tag2node map[int]*Node    // node tag => node
	Tag2elem map[int]ele.Elem // element tag => element
	tag2idx  map[int]int      // node tag => index in Nodes

	// constraints
	diaphragms []*diaphragm

	// equations (set by InitEqs)
	Ny     int         // total number of free equations
	NnzKb  int         // number of nonzeros in Kb matrix
	scat   [][][]Term  // [nele][nu] scatter terms per local dof
	full   [][]int     // [nele][nu] full-space indices per local dof
	masses []massEntry // lumped masses attached to free or slave dofs

	// scratchpads (set by InitEqs)
	kscr [][][]float64 // [nele] local stiffness
	fscr [][]float64   // [nele] local internal forces
	ubuf [][]float64   // [nele] local displacements
	vbuf [][]float64   // [nele] local velocities
}

// NewDomain returns a new empty domain
func NewDomain(ndm, ndf int) *Domain {
	return &Domain{
		Ndm:      ndm,
		Ndf:      ndf,
		Tag2node: make(map[int]*Node),
		Tag2elem: make(map[int]ele.Elem),
		tag2idx:  make(map[int]int),
	}
}

// AddNode adds a node with all dofs free
func (o *Domain) AddNode(tag int, coords []float64) error {
	if _, ok := o.Tag2node[tag]; ok {
		return chk.Err("node %d is defined twice", tag)
	}
	n := NewNode(tag, coords, o.Ndf)
	o.Tag2node[tag] = n
	o.tag2idx[tag] = len(o.Nodes)
	o.Nodes = append(o.Nodes, n)
	return nil
}

// SetFix prescribes zero values at the dofs of node tag where flags[i] != 0
func (o *Domain) SetFix(tag int, flags []int) error {
	n := o.Tag2node[tag]
	if n == nil {
		return chk.Err("cannot fix unknown node %d", tag)
	}
	for i, flag := range flags {
		if i >= o.Ndf {
			break
		}
		if flag != 0 {
			n.Dofs[i].State = DofFixed
		}
	}
	return nil
}

// SetMass sets the lumped mass vector of node tag
func (o *Domain) SetMass(tag int, m []float64) error {
	n := o.Tag2node[tag]
	if n == nil {
		return chk.Err("cannot set mass at unknown node %d", tag)
	}
	n.Mass = make([]float64, o.Ndf)
	copy(n.Mass, m)
	return nil
}

// AddElem adds an element; its nodes must have been added already
func (o *Domain) AddElem(e ele.Elem) error {
	if _, ok := o.Tag2elem[e.Id()]; ok {
		return chk.Err("element %d is defined twice", e.Id())
	}
	for _, tag := range e.Nodes() {
		if _, ok := o.Tag2node[tag]; !ok {
			return chk.Err("element %d references unknown node %d", e.Id(), tag)
		}
	}
	o.Tag2elem[e.Id()] = e
	o.Elems = append(o.Elems, e)
	return nil
}

// AddDiaphragm ties the in-plane dofs of the slaves to the master node
func (o *Domain) AddDiaphragm(perp, master int, slaves []int) error {
	if o.Tag2node[master] == nil {
		return chk.Err("rigid plane master node %d is unknown", master)
	}
	for _, s := range slaves {
		if o.Tag2node[s] == nil {
			return chk.Err("rigid plane slave node %d is unknown", s)
		}
		if s == master {
			return chk.Err("node %d cannot be both master and slave of a rigid plane", s)
		}
	}
	o.diaphragms = append(o.diaphragms, &diaphragm{perp: perp, master: master, slaves: slaves})
	return nil
}

// InitEqs marks slave dofs, numbers the free equations and builds the dof
// combinations, the element scatter tables and the mass list
func (o *Domain) InitEqs() (err error) {

	// mark slave dofs
	seen := make(map[*Dof]bool)
	for _, dia := range o.diaphragms {
		trans, rot := diaphragmDofs(o.Ndf, dia.perp)
		if trans == nil {
			return chk.Err("rigid plane direction %d is invalid", dia.perp)
		}
		for _, stag := range dia.slaves {
			s := o.Tag2node[stag]
			tied := append([]int{}, trans...)
			if rot >= 0 {
				tied = append(tied, rot)
			}
			for _, d := range tied {
				dof := s.Dofs[d]
				if dof.State == DofFixed {
					continue
				}
				if seen[dof] {
					return chk.Err("node %d is a slave of two rigid planes", stag)
				}
				seen[dof] = true
				dof.State = DofSlave
			}
		}
	}

	// number free equations
	eq := 0
	for _, n := range o.Nodes {
		for _, d := range n.Dofs {
			d.Eq = -1
			if d.State == DofFree {
				d.Eq = eq
				eq++
			}
		}
	}
	o.Ny = eq

	// free and fixed combinations
	for _, n := range o.Nodes {
		for _, d := range n.Dofs {
			switch d.State {
			case DofFree:
				d.Terms = []Term{{d.Eq, 1}}
			case DofFixed:
				d.Terms = nil
			}
		}
	}

	// slave combinations with lever arms about the master
	for _, dia := range o.diaphragms {
		m := o.Tag2node[dia.master]
		trans, rot := diaphragmDofs(o.Ndf, dia.perp)
		mdofs := append([]int{}, trans...)
		if rot >= 0 {
			mdofs = append(mdofs, rot)
		}
		for _, d := range mdofs {
			if m.Dofs[d].State == DofSlave {
				return chk.Err("master node %d of a rigid plane is a slave of another", dia.master)
			}
		}
		for _, stag := range dia.slaves {
			s := o.Tag2node[stag]
			for _, d := range trans {
				dof := s.Dofs[d]
				if dof.State != DofSlave {
					continue
				}
				dof.Terms = append([]Term{}, m.Dofs[d].Terms...)
				if rot >= 0 {
					lever := leverCoef(dia.perp, d, s.Coords, m.Coords)
					for _, t := range m.Dofs[rot].Terms {
						dof.Terms = append(dof.Terms, Term{t.Eq, lever * t.Coef})
					}
				}
			}
			if rot >= 0 && s.Dofs[rot].State == DofSlave {
				s.Dofs[rot].Terms = append([]Term{}, m.Dofs[rot].Terms...)
			}
		}
	}

	// element scatter tables and scratchpads
	ne := len(o.Elems)
	o.scat = make([][][]Term, ne)
	o.full = make([][]int, ne)
	o.kscr = make([][][]float64, ne)
	o.fscr = make([][]float64, ne)
	o.ubuf = make([][]float64, ne)
	o.vbuf = make([][]float64, ne)
	o.NnzKb = 0
	for i, e := range o.Elems {
		nu := e.Ndofs()
		nnod := len(e.Nodes())
		if nu != nnod*o.Ndf {
			return chk.Err("element %d has %d dofs but %d nodes with %d dofs each", e.Id(), nu, nnod, o.Ndf)
		}
		o.scat[i] = make([][]Term, nu)
		o.full[i] = make([]int, nu)
		nterms := 0
		for k, tag := range e.Nodes() {
			n := o.Tag2node[tag]
			idx := o.tag2idx[tag]
			for j := 0; j < o.Ndf; j++ {
				o.scat[i][k*o.Ndf+j] = n.Dofs[j].Terms
				o.full[i][k*o.Ndf+j] = idx*o.Ndf + j
				nterms += len(n.Dofs[j].Terms)
			}
		}
		o.NnzKb += nterms * nterms
		o.kscr[i] = la.MatAlloc(nu, nu)
		o.fscr[i] = make([]float64, nu)
		o.ubuf[i] = make([]float64, nu)
		o.vbuf[i] = make([]float64, nu)
	}

	// lumped masses
	o.masses = o.masses[:0]
	for _, n := range o.Nodes {
		if n.Mass == nil {
			continue
		}
		for j, m := range n.Mass {
			if m <= 0 || len(n.Dofs[j].Terms) == 0 {
				continue
			}
			o.masses = append(o.masses, massEntry{terms: n.Dofs[j].Terms, m: m, dof: j})
			o.NnzKb += len(n.Dofs[j].Terms) * len(n.Dofs[j].Terms)
		}
	}
	return
}

// UpdateElems gathers local displacements and velocities and runs the state
// determination of all elements
func (o *Domain) UpdateElems(sol *Solution) (err error) {
	for i, e := range o.Elems {
		u, v := o.ubuf[i], o.vbuf[i]
		for j, terms := range o.scat[i] {
			u[j], v[j] = 0, 0
			for _, t := range terms {
				u[j] += t.Coef * sol.Y[t.Eq]
				v[j] += t.Coef * sol.Dydt[t.Eq]
			}
		}
		if err = e.Update(u, v); err != nil {
			return
		}
	}
	return
}

// CommitElems promotes the trial state of all elements
func (o *Domain) CommitElems() {
	for _, e := range o.Elems {
		e.Commit()
	}
}

// AssembleKb assembles the tangent matrices of all elements, plus cm times
// the mass matrix, into the triplet
func (o *Domain) AssembleKb(Kb *la.Triplet, cm float64) {
	Kb.Start()
	for i, e := range o.Elems {
		K := o.kscr[i]
		la.MatFill(K, 0)
		e.AddToK(K)
		for r, tr := range o.scat[i] {
			for c, tc := range o.scat[i] {
				if K[r][c] == 0 {
					continue
				}
				for _, a := range tr {
					for _, b := range tc {
						Kb.Put(a.Eq, b.Eq, a.Coef*b.Coef*K[r][c])
					}
				}
			}
		}
	}
	// mass entries are put even with cm == 0 so that the nonzero pattern,
	// hence the symbolic factorisation, is the same for all analyses
	for _, me := range o.masses {
		for _, a := range me.terms {
			for _, b := range me.terms {
				Kb.Put(a.Eq, b.Eq, cm*me.m*a.Coef*b.Coef)
			}
		}
	}
}

// AddFint adds coef times the internal forces of all elements, scattered to
// the free equations, into fb; coef = -1 builds the residual contribution
func (o *Domain) AddFint(fb []float64, coef float64) {
	for i, e := range o.Elems {
		f := o.fscr[i]
		la.VecFill(f, 0)
		e.AddToFint(f)
		for j, terms := range o.scat[i] {
			for _, t := range terms {
				fb[t.Eq] += coef * t.Coef * f[j]
			}
		}
	}
}

// FintFull assembles the internal forces of all elements in the full dof
// space, fixed and slave dofs included; f must have length nnodes * ndf
func (o *Domain) FintFull(f []float64) {
	for i, e := range o.Elems {
		fl := o.fscr[i]
		la.VecFill(fl, 0)
		e.AddToFint(fl)
		for j, idx := range o.full[i] {
			f[idx] += fl[j]
		}
	}
}

// AddLoad scatters a nodal load, scaled by factor, into the reduced vector
// fext and into the full dof space ffull; either vector may be nil
func (o *Domain) AddLoad(fext, ffull []float64, tag int, values []float64, factor float64) {
	n := o.Tag2node[tag]
	if n == nil {
		return
	}
	idx := o.tag2idx[tag]
	for j, v := range values {
		if j >= o.Ndf || v == 0 {
			continue
		}
		if fext != nil {
			for _, t := range n.Dofs[j].Terms {
				fext[t.Eq] += t.Coef * factor * v
			}
		}
		if ffull != nil {
			ffull[idx*o.Ndf+j] += factor * v
		}
	}
}

// MassMulVec adds coef times the mass matrix times x into res
func (o *Domain) MassMulVec(res, x []float64, coef float64) {
	for _, me := range o.masses {
		val := 0.0
		for _, t := range me.terms {
			val += t.Coef * x[t.Eq]
		}
		for _, t := range me.terms {
			res[t.Eq] += coef * me.m * val * t.Coef
		}
	}
}

// MassLoad adds coef times the masses acting along dof direction dir into
// res; used for uniform base excitation
func (o *Domain) MassLoad(res []float64, dir int, coef float64) {
	for _, me := range o.masses {
		if me.dof != dir {
			continue
		}
		for _, t := range me.terms {
			res[t.Eq] += coef * me.m * t.Coef
		}
	}
}

// HasMass reports whether at least one lumped mass is attached to a free or
// slave dof
func (o *Domain) HasMass() bool {
	return len(o.masses) > 0
}

// StiffnessDense assembles the tangent matrices of all elements into a
// dense matrix over the free equations; used by the vibration solver
func (o *Domain) StiffnessDense() [][]float64 {
	Kd := la.MatAlloc(o.Ny, o.Ny)
	for i, e := range o.Elems {
		K := o.kscr[i]
		la.MatFill(K, 0)
		e.AddToK(K)
		for r, tr := range o.scat[i] {
			for c, tc := range o.scat[i] {
				if K[r][c] == 0 {
					continue
				}
				for _, a := range tr {
					for _, b := range tc {
						Kd[a.Eq][b.Eq] += a.Coef * b.Coef * K[r][c]
					}
				}
			}
		}
	}
	return Kd
}

// MassDiag returns the lumped mass diagonal over the free equations. Masses
// combined through lever arms make the mass matrix non-diagonal and are
// reported as an error
func (o *Domain) MassDiag() ([]float64, error) {
	diag := make([]float64, o.Ny)
	for _, me := range o.masses {
		if len(me.terms) != 1 || me.terms[0].Coef != 1 {
			return nil, chk.Err("vibration analysis requires masses at dofs free of lever arms")
		}
		diag[me.terms[0].Eq] += me.m
	}
	return diag, nil
}

// auxiliary functions //////////////////////////////////////////////////////////////////////////////

// diaphragmDofs returns the in-plane translations and the tied rotation of a
// rigid plane perpendicular to direction perp (1-based). In 2D only the
// horizontal translation is tied
func diaphragmDofs(ndf, perp int) (trans []int, rot int) {
	if ndf == 3 {
		return []int{0}, -1
	}
	switch perp {
	case 1:
		return []int{1, 2}, 3
	case 2:
		return []int{0, 2}, 4
	case 3:
		return []int{0, 1}, 5
	}
	return nil, -1
}

// leverCoef returns the coefficient multiplying the master rotation in the
// slave translation along dof d
func leverCoef(perp, d int, slave, master []float64) float64 {
	dx := slave[0] - master[0]
	var dy, dz float64
	if len(slave) > 1 && len(master) > 1 {
		dy = slave[1] - master[1]
	}
	if len(slave) > 2 && len(master) > 2 {
		dz = slave[2] - master[2]
	}
	switch perp {
	case 3: // rotation about z
		if d == 0 {
			return -dy
		}
		return dx
	case 2: // rotation about y
		if d == 0 {
			return dz
		}
		return -dx
	case 1: // rotation about x
		if d == 1 {
			return -dz
		}
		return dy
	}
	return 0
}
