// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/mjamiv/isolation/ana"
	"github.com/mjamiv/isolation/fem"
	"github.com/mjamiv/isolation/inp"
	"github.com/mjamiv/isolation/out"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
		}
	}()

	// read input parameters
	fnamepath, fnkey := io.ArgToFilename(0, "data/office", ".json", true)
	analysis := io.ArgToString(1, "static")
	verbose := io.ArgToBool(2, true)
	doplot := io.ArgToBool(3, false)
	motionfn := io.ArgToString(4, "")
	dir := io.ArgToInt(5, 1)
	nmodes := io.ArgToInt(6, 3)
	target := io.Atof(io.ArgToString(7, "0.5"))
	nsteps := io.ArgToInt(8, 100)
	pattern := io.ArgToString(9, "first_mode")

	// message
	if verbose {
		io.PfWhite("\nIsolation v1.0 -- Seismic Isolation Analysis\n")
		io.Pf("Copyright 2016 The Isolation Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")

		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"model filename path", "fnamepath", fnamepath,
			"analysis: static, modal, timehist, pushover, compare", "analysis", analysis,
			"show messages", "verbose", verbose,
			"save plots", "doplot", doplot,
			"ground motion file (empty means synthetic)", "motionfn", motionfn,
			"excitation direction", "dir", dir,
			"number of modes", "nmodes", nmodes,
			"pushover target displacement", "target", target,
			"pushover steps", "nsteps", nsteps,
			"pushover load pattern", "pattern", pattern,
		))
	}

	// model
	m := inp.ReadModel(fnamepath)
	if err := m.Validate(); err != nil {
		chk.Panic("model %q is invalid:\n%v", fnkey, err)
	}

	// analysis
	eng := fem.NewEngine(verbose)
	opts := ana.Options{Verbose: verbose}
	dirout := "/tmp/isolation/" + fnkey

	switch analysis {

	case "static":
		res, err := ana.RunStatic(eng, m, opts)
		if err != nil {
			chk.Panic("static analysis failed:\n%v", err)
		}
		save(dirout, fnkey, res, verbose)

	case "modal":
		res, err := ana.RunModal(eng, m, nmodes, opts)
		if err != nil {
			chk.Panic("modal analysis failed:\n%v", err)
		}
		save(dirout, fnkey, res, verbose)
		if verbose {
			for i, T := range res.Periods {
				io.Pf("mode %2d: T = %10.6f  f = %10.6f\n", i+1, T, res.Frequencies[i])
			}
		}
		if doplot {
			out.PlotPeriods(res, dirout, fnkey+"_periods.png")
		}

	case "timehist":
		motion := readMotion(motionfn, m)
		res, err := ana.RunTimeHistory(eng, m, motion, dir, opts)
		if err != nil {
			chk.Panic("time history failed:\n%v", err)
		}
		save(dirout, fnkey, res, verbose)
		s := out.SummarizeTimeHistory(m, fnkey, res)
		if verbose {
			io.Pf("steps     = %d (partial=%v)\n", s.Steps, s.Partial)
			io.Pf("peak roof = %g\n", s.PeakRoof)
			io.Pf("peak drift= %g\n", s.PeakDrift)
			io.Pf("bearing   = u=%g f=%g energy=%g\n", s.MaxBrgU, s.MaxBrgF, s.Energy)
		}
		if doplot {
			out.PlotRoofHistory(res, roofNode(m), dirout, fnkey+"_roof.png")
			for _, b := range m.Bearings {
				out.PlotBearingHysteresis(res, b.Id, dirout, io.Sf("%s_brg%d.png", fnkey, b.Id))
			}
		}

	case "pushover":
		res, err := ana.RunPushover(eng, m, target, nsteps, pattern, opts)
		if err != nil {
			chk.Panic("pushover failed:\n%v", err)
		}
		save(dirout, fnkey, res, verbose)
		s := out.SummarizePushover(res)
		if verbose {
			io.Pf("max base shear = %g\n", s.MaxBaseShear)
			io.Pf("max roof disp  = %g\n", s.MaxRoofDisp)
			io.Pf("ductility      = %g\n", s.Ductility)
			io.Pf("plastic hinges = %d\n", s.NumHinges)
		}
		if doplot {
			out.PlotCapacityCurve(res, dirout, fnkey+"_capacity.png")
		}

	case "compare":
		motion := readMotion(motionfn, m)
		res, err := ana.RunComparison(eng, m, motion, dir, opts)
		if err != nil {
			chk.Panic("comparison failed:\n%v", err)
		}
		save(dirout, fnkey, res, verbose)
		if verbose {
			io.Pf("%-12s %12s %12s %12s %10s\n", "variant", "peak roof", "peak drift", "bearing u", "energy")
			for _, e := range res.Entries {
				if e.Err != "" {
					io.Pf("%-12s failed: %s\n", e.Name, e.Err)
					continue
				}
				io.Pf("%-12s %12.6f %12.6f %12.6f %10.3f\n",
					e.Name, e.Summary.PeakRoof, e.Summary.PeakDrift, e.Summary.MaxBrgU, e.Summary.Energy)
			}
		}

	default:
		chk.Panic("analysis %q is unavailable; use static, modal, timehist, pushover or compare", analysis)
	}
}

// save writes one result set next to the other runs of this model
func save(dirout, fnkey string, res interface{}, verbose bool) {
	if err := out.SaveResults(dirout, fnkey, "json", res, verbose); err != nil {
		chk.Panic("cannot save results:\n%v", err)
	}
}

// readMotion loads the ground motion record; an empty filename builds a
// synthetic pulse at 40% of gravity so every model can run out of the box
func readMotion(fn string, m *inp.Model) *inp.Motion {
	if fn == "" {
		return inp.SyntheticMotion(0.4*m.Gravity(), 10.0, 0.02)
	}
	if io.FnExt(fn) == ".json" {
		return inp.ReadMotion(fn)
	}
	return inp.ReadMotionTable(fn)
}

// roofNode returns the highest node carrying at least one free dof
func roofNode(m *inp.Model) (roof int) {
	vc := m.VertDof()
	best := 0.0
	for _, n := range m.Nodes {
		if n.FullyFixed(m.Info.Ndf) || len(n.Coords) <= vc {
			continue
		}
		if h := n.Coords[vc]; roof == 0 || h > best {
			best, roof = h, n.Id
		}
	}
	return
}
