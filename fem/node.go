// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

// dof states
const (
	DofFree  = iota // solved for: carries an equation number
	DofFixed        // prescribed zero: no equation
	DofSlave        // follows master equations through a linear combination
)

// Term is one entry of the linear combination expressing a dof value in
// terms of the reduced equations
type Term struct {
	Eq   int     // equation number
	Coef float64 // coefficient
}

// Dof represents one degree of freedom at a node
type Dof struct {
	Key   string // name of this dof; e.g. "ux"
	State int    // free, fixed or slave
	Eq    int    // equation number; -1 unless free
	Terms []Term // equations and coefficients giving this dof's value
}

// Node holds the dofs of one structural joint
type Node struct {
	Tag    int       // external tag
	Coords []float64 // spatial coordinates
	Dofs   []*Dof    // ndf dofs following the domain layout
	Mass   []float64 // lumped mass per dof; nil when massless
}

// NewNode returns a new node with all dofs free and unnumbered
func NewNode(tag int, coords []float64, ndf int) *Node {
	o := &Node{Tag: tag, Coords: coords}
	o.Dofs = make([]*Dof, ndf)
	for i := 0; i < ndf; i++ {
		o.Dofs[i] = &Dof{State: DofFree, Eq: -1}
	}
	return o
}

// GetEq returns the equation number of dof i or -1
func (o *Node) GetEq(i int) int {
	if i < 0 || i >= len(o.Dofs) {
		return -1
	}
	return o.Dofs[i].Eq
}

// Value returns the current value of dof i given the solution vector y
func (o *Node) Value(i int, y []float64) float64 {
	v := 0.0
	for _, t := range o.Dofs[i].Terms {
		v += t.Coef * y[t.Eq]
	}
	return v
}

// Values returns the values of all dofs given the solution vector y
func (o *Node) Values(y []float64) []float64 {
	res := make([]float64, len(o.Dofs))
	for i := range o.Dofs {
		res[i] = o.Value(i, y)
	}
	return res
}
