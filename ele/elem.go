// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements the finite elements for frame and isolation analyses
package ele

import (
	"math"
)

// Elem defines what all elements must compute. The assembler gathers the
// element-local displacement and velocity vectors, calls Update and collects
// the local tangent and internal forces. Local vectors stack the dofs of the
// first node followed by the dofs of the second node.
type Elem interface {
	Id() int                                 // returns the element id
	Nodes() []int                            // returns the connected node ids
	Ndofs() int                              // returns the size of the local system
	Update(u, v []float64) error             // state determination from the committed state
	AddToK(K [][]float64)                    // adds the local tangent matrix to K
	AddToFint(f []float64)                   // adds the local internal forces to f
	Commit()                                 // promotes the trial state to committed
	Response(kind string) ([]float64, error) // returns a named response quantity
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// cross3d computes w := u cross v
func cross3d(w, u, v []float64) {
	w[0] = u[1]*v[2] - u[2]*v[1]
	w[1] = u[2]*v[0] - u[0]*v[2]
	w[2] = u[0]*v[1] - u[1]*v[0]
}

// norm3d returns the Euclidean norm of a 3-vector
func norm3d(u []float64) float64 {
	return math.Sqrt(u[0]*u[0] + u[1]*u[1] + u[2]*u[2])
}
