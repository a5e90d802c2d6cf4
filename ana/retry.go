// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

// algorithm ladders walked when a step fails to converge
var (
	ladderFull  = []string{"Newton", "ModifiedNewton", "KrylovNewton"}
	ladderShort = []string{"Newton", "ModifiedNewton"}
)

// analyzeLadder runs one analysis attempt, falling back through the given
// algorithms when it fails. The primary algorithm is restored after every
// fallback attempt so subsequent steps start from it again
func analyzeLadder(eng Engine, ladder []string, run func() error) (err error) {
	if err = run(); err == nil {
		return
	}
	for _, alg := range ladder[1:] {
		if eng.Algorithm(alg) != nil {
			continue
		}
		res := run()
		eng.Algorithm(ladder[0])
		if res == nil {
			return nil
		}
		err = res
	}
	return
}
