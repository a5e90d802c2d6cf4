// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"github.com/mjamiv/isolation/inp"
)

// Options tune the analysis procedures; the zero value selects the defaults
type Options struct {
	Refine      int  // sub-elements per frame member; 0 selects 5, 1 keeps the mesh
	Verbose     bool // print progress messages
	ControlNode int  // pushover control node; 0 picks the topmost free node
	ControlDof  int  // pushover control dof (1-based); 0 picks 1 (X)
}

// refineModel subdivides the frame members per the options
func refineModel(m *inp.Model, opts Options) (*inp.Model, *inp.RefineMap, error) {
	n := opts.Refine
	if n == 0 {
		n = 5
	}
	return inp.Refine(m, n)
}
