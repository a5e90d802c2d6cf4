// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"github.com/cpmech/gosl/io"

	"github.com/mjamiv/isolation/inp"
	"github.com/mjamiv/isolation/out"
)

// RunComparison subjects the isolated model, its fixed base counterpart and
// the two friction bounding variants (property modification factors 0.85
// and 1.8) to the same ground motion and tabulates the peak responses side
// by side. A variant whose run fails is recorded with its error message and
// the remaining variants still run
func RunComparison(eng Engine, m *inp.Model, motion *inp.Motion, dir int, opts Options) (*out.ComparisonResults, error) {
	variants := []struct {
		name string
		lam  float64
		mdl  *inp.Model
	}{
		{"isolated", 0, m},
		{"fixed_base", 0, inp.FixedBase(m)},
		{"lower_bound", 0.85, inp.ScaleFriction(m, 0.85)},
		{"upper_bound", 1.8, inp.ScaleFriction(m, 1.8)},
	}
	res := &out.ComparisonResults{}
	for _, v := range variants {
		if opts.Verbose {
			io.Pf("comparison: running %q\n", v.name)
		}
		entry := out.ComparisonEntry{Name: v.name, Lambda: v.lam}
		r, err := RunTimeHistory(eng, v.mdl, motion, dir, opts)
		if err != nil {
			io.Pfred("comparison: %q failed\n%v\n", v.name, err)
			entry.Err = err.Error()
		} else {
			entry.Summary = out.SummarizeTimeHistory(v.mdl, v.name, r)
			if res.Refine == nil {
				res.Refine = r.Refine
			}
		}
		res.Entries = append(res.Entries, entry)
	}
	return res, nil
}
