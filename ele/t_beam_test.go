// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_beam01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beam01. 2D stiffness and end forces")

	// unit beam along x: local and global systems coincide
	b, err := NewBeam(1, []int{1, 2}, []float64{0, 0}, []float64{1, 0}, nil, 1, 0, 1, 1, 0, 0)
	if err != nil {
		tst.Errorf("NewBeam failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "L", 1e-15, b.L, 1.0)
	chk.IntAssert(b.Ndofs(), 6)
	chk.Ints(tst, "nodes", b.Nodes(), []int{1, 2})
	chk.Matrix(tst, "K", 1e-14, b.K, [][]float64{
		{1, 0, 0, -1, 0, 0},
		{0, 12, 6, 0, -12, 6},
		{0, 6, 4, 0, -6, 2},
		{-1, 0, 0, 1, 0, 0},
		{0, -12, -6, 0, 12, -6},
		{0, 6, 2, 0, -6, 4},
	})

	// axial stretch
	u := []float64{0, 0, 0, 1, 0, 0}
	v := make([]float64, 6)
	if err := b.Update(u, v); err != nil {
		tst.Errorf("Update failed:\n%v", err)
		return
	}
	f, err := b.Response("force")
	if err != nil {
		tst.Errorf("Response failed:\n%v", err)
		return
	}
	chk.Vector(tst, "end forces", 1e-14, f, []float64{-1, 0, 0, 1, 0, 0})

	// vertical beam: bending governs the global x direction
	c, err := NewBeam(2, []int{1, 2}, []float64{0, 0}, []float64{0, 2}, nil, 1, 0, 1, 1, 0, 0)
	if err != nil {
		tst.Errorf("NewBeam failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "K00", 1e-15, c.K[0][0], 1.5) // 12EI/L3
	chk.Scalar(tst, "K11", 1e-15, c.K[1][1], 0.5) // EA/L

	// lateral sway of the top node
	u = []float64{0, 0, 0, 1, 0, 0}
	if err := c.Update(u, v); err != nil {
		tst.Errorf("Update failed:\n%v", err)
		return
	}
	f, err = c.Response("force")
	if err != nil {
		tst.Errorf("Response failed:\n%v", err)
		return
	}
	io.Pforan("local end forces = %v\n", f)
	chk.Vector(tst, "end forces", 1e-14, f, []float64{0, 1.5, 1.5, 0, -1.5, 1.5})

	// shear couple balances the end moments
	chk.Scalar(tst, "equilibrium", 1e-14, f[1]*c.L, f[2]+f[5])

	// global forces follow from the transformation
	g, err := c.Response("globalForce")
	if err != nil {
		tst.Errorf("Response failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "shear at top, x", 1e-14, g[3], 1.5)
}

func Test_beam02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beam02. 3D stiffness")

	// beam along x with the local x-z plane given by (0,0,1)
	b, err := NewBeam(1, []int{1, 2}, []float64{0, 0, 0}, []float64{2, 0, 0}, []float64{0, 0, 1}, 2, 1, 3, 4, 5, 6)
	if err != nil {
		tst.Errorf("NewBeam failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "L", 1e-15, b.L, 2.0)
	chk.IntAssert(b.Ndofs(), 12)
	chk.Vector(tst, "e0", 1e-15, b.e0, []float64{1, 0, 0})
	chk.Vector(tst, "e1", 1e-15, b.e1, []float64{0, 1, 0})
	chk.Vector(tst, "e2", 1e-15, b.e2, []float64{0, 0, 1})

	// diagonal terms of the aligned system
	chk.Scalar(tst, "EA/L", 1e-14, b.K[0][0], 3.0)
	chk.Scalar(tst, "12EIz/L3", 1e-14, b.K[1][1], 12.0)
	chk.Scalar(tst, "12EIy/L3", 1e-14, b.K[2][2], 15.0)
	chk.Scalar(tst, "GJ/L", 1e-14, b.K[3][3], 3.0)
	chk.Scalar(tst, "4EIy/L", 1e-14, b.K[4][4], 20.0)
	chk.Scalar(tst, "4EIz/L", 1e-14, b.K[5][5], 16.0)
	chk.Scalar(tst, "coupling", 1e-14, b.K[1][5], 12.0)

	// symmetry
	for i := 0; i < 12; i++ {
		for j := i + 1; j < 12; j++ {
			chk.Scalar(tst, io.Sf("K%d%d", i, j), 1e-13, b.K[i][j], b.K[j][i])
		}
	}

	// rigid translation produces no internal forces
	u := make([]float64, 12)
	v := make([]float64, 12)
	for k := 0; k < 2; k++ {
		u[6*k+0], u[6*k+1], u[6*k+2] = 1, 1, 1
	}
	if err := b.Update(u, v); err != nil {
		tst.Errorf("Update failed:\n%v", err)
		return
	}
	f := make([]float64, 12)
	b.AddToFint(f)
	for i := 0; i < 12; i++ {
		chk.Scalar(tst, io.Sf("f%d", i), 1e-12, f[i], 0)
	}

	// vertical column oriented with (1,0,0)
	c, err := NewBeam(2, []int{1, 2}, []float64{0, 0, 0}, []float64{0, 0, 2}, []float64{1, 0, 0}, 2, 1, 3, 4, 5, 6)
	if err != nil {
		tst.Errorf("NewBeam failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "x sway", 1e-14, c.K[0][0], 15.0) // minor axis
	chk.Scalar(tst, "y sway", 1e-14, c.K[1][1], 12.0) // major axis
	chk.Scalar(tst, "axial", 1e-14, c.K[2][2], 3.0)

	// errors
	if _, err := NewBeam(3, []int{1, 2}, []float64{0, 0, 0}, []float64{0, 0, 0}, []float64{0, 0, 1}, 2, 1, 3, 4, 5, 6); err == nil {
		tst.Errorf("coincident nodes must fail\n")
		return
	}
	if _, err := NewBeam(4, []int{1, 2}, []float64{0, 0, 0}, []float64{2, 0, 0}, []float64{1, 0, 0}, 2, 1, 3, 4, 5, 6); err == nil {
		tst.Errorf("orientation parallel to the axis must fail\n")
		return
	}
	if _, err := NewBeam(5, []int{1, 2}, []float64{0, 0}, []float64{1, 0}, nil, 1, 0, 0, 1, 0, 0); err == nil {
		tst.Errorf("zero area must fail\n")
		return
	}
}
