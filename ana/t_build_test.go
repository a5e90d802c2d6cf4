// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/mjamiv/isolation/inp"
)

// recEngine records every translated command so the tests can inspect what
// the model translator and the analysis procedures emit. Solves always
// succeed unless failAnl is set; queries return canned values
type recEngine struct {
	cmds    []string          // command names in emission order
	nodes   map[int][]float64 // coordinates per node
	fixes   map[int][]int     // fixity flags per node
	masses  map[int][]float64 // last mass vector per node
	transfs map[int][]float64 // orientation per transformation
	beams   map[int][]float64 // frame constants per element
	frns    map[int][]float64 // friction constants per model
	mats    map[int]float64   // stiffness per uniaxial material
	brgFrn  map[int][]int     // friction tags per bearing
	brgMat  map[int][]int     // material tags per bearing
	brgVal  map[int][]float64 // nodes and properties per bearing
	planes  [][]int           // rigid planes [perp master slaves...]
	loads   map[int][]float64 // last load vector per node
	series  map[int][]float64 // path series [dt values...]
	excites [][]int           // uniform excitations [tag dir ts]
	integs  []float64         // load control increments
	algs    []string          // algorithm selections
	tols    []float64         // convergence tolerances
	nanl    int               // analyze calls so far
	failAnl int               // number of analyze calls left to fail
	nbrg    int               // reported bearing count
	eigVals []float64         // canned eigenvalues
	eigErr  error             // canned eigen failure
	eigVecs map[int][]float64 // canned mode 1 shape per node
	disps   map[int][]float64 // canned displacements per node
	reacts  map[int][]float64 // canned reactions per node
	resps   map[string][]float64
}

func newRecEngine() *recEngine {
	return &recEngine{
		nodes:   make(map[int][]float64),
		fixes:   make(map[int][]int),
		masses:  make(map[int][]float64),
		transfs: make(map[int][]float64),
		beams:   make(map[int][]float64),
		frns:    make(map[int][]float64),
		mats:    make(map[int]float64),
		brgFrn:  make(map[int][]int),
		brgMat:  make(map[int][]int),
		brgVal:  make(map[int][]float64),
		loads:   make(map[int][]float64),
		series:  make(map[int][]float64),
		eigVecs: make(map[int][]float64),
		disps:   make(map[int][]float64),
		reacts:  make(map[int][]float64),
		resps:   make(map[string][]float64),
	}
}

func (o *recEngine) log(format string, args ...interface{}) {
	o.cmds = append(o.cmds, io.Sf(format, args...))
}

func (o *recEngine) Wipe() { o.log("wipe") }

func (o *recEngine) ModelBasic(ndm, ndf int) error {
	o.log("model %d %d", ndm, ndf)
	return nil
}

func (o *recEngine) Node(tag int, coords []float64) error {
	o.log("node %d", tag)
	o.nodes[tag] = coords
	return nil
}

func (o *recEngine) Fix(tag int, flags []int) error {
	o.log("fix %d", tag)
	o.fixes[tag] = flags
	return nil
}

func (o *recEngine) Mass(tag int, m []float64) error {
	o.log("mass %d", tag)
	o.masses[tag] = m
	return nil
}

func (o *recEngine) GeomTransf(tag int, vecxz []float64) error {
	o.log("transf %d", tag)
	o.transfs[tag] = vecxz
	return nil
}

func (o *recEngine) BeamColumn2D(tag, ni, nj int, A, E, Iz float64) error {
	o.log("beam2d %d", tag)
	o.beams[tag] = []float64{float64(ni), float64(nj), A, E, Iz}
	return nil
}

func (o *recEngine) BeamColumn3D(tag, ni, nj int, A, E, G, J, Iy, Iz float64, transfTag int) error {
	o.log("beam3d %d", tag)
	o.beams[tag] = []float64{float64(ni), float64(nj), A, E, G, J, Iy, Iz, float64(transfTag)}
	return nil
}

func (o *recEngine) FrictionVelDep(tag int, muSlow, muFast, rate float64) error {
	o.log("frn %d", tag)
	o.frns[tag] = []float64{muSlow, muFast, rate}
	return nil
}

func (o *recEngine) UniaxialElastic(tag int, k float64) error {
	o.log("mat %d", tag)
	o.mats[tag] = k
	return nil
}

func (o *recEngine) TFPBearing(tag, nb, nt int, frnTags []int, vertMat, rotZMat, rotXMat, rotYMat int,
	L1, L2, L3, d1, d2, d3, W, uy, kvt, minFv, tol float64) error {
	o.log("tfp %d", tag)
	o.brgFrn[tag] = frnTags
	o.brgMat[tag] = []int{vertMat, rotZMat, rotXMat, rotYMat}
	o.brgVal[tag] = []float64{float64(nb), float64(nt), L1, L2, L3, d1, d2, d3, W, uy, kvt, minFv, tol}
	return nil
}

func (o *recEngine) RigidDiaphragm(perpDirn, master int, slaves []int) error {
	o.log("plane %d", master)
	p := append([]int{perpDirn, master}, slaves...)
	o.planes = append(o.planes, p)
	return nil
}

func (o *recEngine) TimeSeriesLinear(tag int) error {
	o.log("tslin %d", tag)
	return nil
}

func (o *recEngine) TimeSeriesPath(tag int, dt float64, values []float64) error {
	o.log("tspath %d", tag)
	o.series[tag] = append([]float64{dt}, values...)
	return nil
}

func (o *recEngine) PatternPlain(tag, tsTag int) error {
	o.log("pattern %d", tag)
	return nil
}

func (o *recEngine) Load(node int, values []float64) error {
	o.log("load %d", node)
	o.loads[node] = values
	return nil
}

func (o *recEngine) PatternUniformExcitation(tag, dir, tsTag int) error {
	o.log("excite %d", tag)
	o.excites = append(o.excites, []int{tag, dir, tsTag})
	return nil
}

func (o *recEngine) LoadConst(t float64) { o.log("loadconst") }

func (o *recEngine) System(kind string) error {
	o.log("system " + kind)
	return nil
}

func (o *recEngine) Numberer(kind string) error {
	o.log("numberer " + kind)
	return nil
}

func (o *recEngine) Constraints(kind string) error {
	o.log("constraints " + kind)
	return nil
}

func (o *recEngine) TestNormDispIncr(tol float64, maxIter int) {
	o.log("test")
	o.tols = append(o.tols, tol)
}

func (o *recEngine) Algorithm(kind string) error {
	o.log("algorithm " + kind)
	o.algs = append(o.algs, kind)
	return nil
}

func (o *recEngine) IntegratorLoadControl(dLambda float64) {
	o.log("loadcontrol")
	o.integs = append(o.integs, dLambda)
}

func (o *recEngine) IntegratorDisplacementControl(node, dof int, dU float64) {
	o.log("dispcontrol %d %d", node, dof)
	o.integs = append(o.integs, dU)
}

func (o *recEngine) IntegratorNewmark(gamma, beta float64) { o.log("newmark") }

func (o *recEngine) Rayleigh(a0, a1, a2, a3 float64) error {
	o.log("rayleigh")
	return nil
}

func (o *recEngine) AnalysisStatic()    { o.log("static") }
func (o *recEngine) AnalysisTransient() { o.log("transient") }
func (o *recEngine) WipeAnalysis()      { o.log("wipeanalysis") }

func (o *recEngine) Analyze(nsteps int) error {
	o.log("analyze")
	o.nanl++
	if o.failAnl > 0 {
		o.failAnl--
		return chk.Err("no convergence")
	}
	return nil
}

func (o *recEngine) AnalyzeDt(nsteps int, dt float64) error {
	o.log("analyzedt")
	o.nanl++
	if o.failAnl > 0 {
		o.failAnl--
		return chk.Err("no convergence")
	}
	return nil
}

func (o *recEngine) Eigen(nmodes int) ([]float64, error) {
	o.log("eigen")
	return o.eigVals, o.eigErr
}

func (o *recEngine) Reactions() error {
	o.log("reactions")
	return nil
}

func (o *recEngine) NodeDisp(tag int) []float64     { return o.disps[tag] }
func (o *recEngine) NodeVel(tag int) []float64      { return nil }
func (o *recEngine) NodeReaction(tag int) []float64 { return o.reacts[tag] }

func (o *recEngine) NodeEigenvector(tag, mode int) []float64 { return o.eigVecs[tag] }

func (o *recEngine) EleResponse(tag int, kind string) []float64 {
	return o.resps[io.Sf("%d:%s", tag, kind)]
}

func (o *recEngine) NumBearings() int { return o.nbrg }

var _ Engine = (*recEngine)(nil)

func Test_build01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("build01. portal frame translation")

	rec := newRecEngine()
	m := inp.SamplePortal2D()
	if err := Build(rec, m, chk.Verbose); err != nil {
		tst.Errorf("build failed:\n%v", err)
		return
	}

	// emission order: nodes with fixities, masses, then elements
	chk.Strings(tst, "cmds", rec.cmds, []string{
		"wipe", "model 2 3",
		"node 1", "fix 1", "node 2", "fix 2", "node 3", "node 4",
		"mass 3", "mass 4",
		"beam2d 1", "beam2d 2", "beam2d 3",
	})

	// clamped bases
	chk.Ints(tst, "fix 1", rec.fixes[1], []int{1, 1, 1})
	chk.Ints(tst, "fix 2", rec.fixes[2], []int{1, 1, 1})

	// the 50 kN loads lump m = 50/9.81 on every dof of a 3-dof node
	mm := 50.0 / 9.81
	chk.Vector(tst, "mass 3", 1e-15, rec.masses[3], []float64{mm, mm, mm})
	chk.Vector(tst, "mass 4", 1e-15, rec.masses[4], []float64{mm, mm, mm})

	// section constants: 30x30 columns and a 25x40 beam in kPa
	chk.Vector(tst, "beam 1", 1e-15, rec.beams[1], []float64{1, 3, 0.09, 2e8, 0.000675})
	chk.Vector(tst, "beam 2", 1e-15, rec.beams[2], []float64{2, 4, 0.09, 2e8, 0.000675})
	chk.Vector(tst, "beam 3", 1e-17, rec.beams[3], []float64{3, 4, 0.1, 2e8, 0.016 / 12.0})
}

func Test_build02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("build02. bearing tag laws")

	rec := newRecEngine()
	m := inp.SampleIsolator1D()
	if err := Build(rec, m, chk.Verbose); err != nil {
		tst.Errorf("build failed:\n%v", err)
		return
	}

	// the top node mass arrives twice: from the load, then from the weight
	chk.Strings(tst, "cmds", rec.cmds, []string{
		"wipe", "model 3 6",
		"node 1", "fix 1", "node 2",
		"mass 2", "mass 2",
		"frn 1001", "frn 1002", "frn 1003", "frn 1004",
		"mat 5011", "mat 5012", "mat 5013", "mat 5014",
		"tfp 10001",
	})

	// translations carry W/g, rotations a negligible value
	mm := 100.0 / 386.4
	chk.Vector(tst, "mass 2", 1e-15, rec.masses[2], []float64{mm, mm, mm, 1e-10, 1e-10, 1e-10})

	// outer and inner sliding surfaces
	chk.Vector(tst, "frn 1001", 1e-15, rec.frns[1001], []float64{0.015, 0.030, 25})
	chk.Vector(tst, "frn 1002", 1e-15, rec.frns[1002], []float64{0.060, 0.120, 25})
	chk.Vector(tst, "frn 1003", 1e-15, rec.frns[1003], []float64{0.060, 0.120, 25})
	chk.Vector(tst, "frn 1004", 1e-15, rec.frns[1004], []float64{0.015, 0.030, 25})

	// vertical stiffness comes from the model; rotations are locked
	chk.Scalar(tst, "kvert", 1e-15, rec.mats[5011], 15000)
	chk.Scalar(tst, "krotZ", 1e-15, rec.mats[5012], 1e10)
	chk.Scalar(tst, "krotX", 1e-15, rec.mats[5013], 1e10)
	chk.Scalar(tst, "krotY", 1e-15, rec.mats[5014], 1e10)

	// the 3D element takes the first three friction models only
	chk.Ints(tst, "frn tags", rec.brgFrn[10001], []int{1001, 1002, 1003})
	chk.Ints(tst, "mat tags", rec.brgMat[10001], []int{5011, 5012, 5013, 5014})
	chk.Vector(tst, "props", 1e-15, rec.brgVal[10001],
		[]float64{1, 2, 20, 168, 20, 4, 25, 4, 100, 0.08, 100, 0.1, 1e-8})
}

func Test_build03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("build03. spatial frames, orientations and defaults")

	// z-up: one column, one skipped truss, one beam and a rigid plane
	m := &inp.Model{Info: inp.Info{Name: "tiny", Units: "kip-in", Ndm: 3, Ndf: 6, ZUp: true}}
	m.Sections = append(m.Sections, &inp.Section{
		Id: 1, Type: "Elastic",
		Props: inp.SecProps{A: 10, E: 29000, Iz: 100, Iy: 50},
	})
	m.Nodes = append(m.Nodes,
		&inp.Node{Id: 1, Coords: []float64{0, 0, 0}, Fixity: []int{1, 1, 1, 1, 1, 1}},
		&inp.Node{Id: 2, Coords: []float64{0, 0, 120}},
		&inp.Node{Id: 3, Coords: []float64{100, 0, 120}},
	)
	m.Elements = append(m.Elements,
		&inp.Element{Id: 1, Type: "elasticBeamColumn", Nodes: []int{1, 2}, SectionId: 1},
		&inp.Element{Id: 2, Type: "truss", Nodes: []int{2, 3}, SectionId: 1},
		&inp.Element{Id: 3, Type: "elasticBeamColumn", Nodes: []int{2, 3}, SectionId: 1},
	)
	m.Groups = append(m.Groups, &inp.RigidGroup{Id: 1, Nodes: []int{2, 3}})

	rec := newRecEngine()
	if err := Build(rec, m, chk.Verbose); err != nil {
		tst.Errorf("build failed:\n%v", err)
		return
	}
	chk.Strings(tst, "cmds", rec.cmds, []string{
		"wipe", "model 3 6",
		"node 1", "fix 1", "node 2", "node 3",
		"plane 2",
		"transf 1", "beam3d 1", "transf 2", "beam3d 3",
	})

	// the plane is perpendicular to the vertical axis
	chk.Ints(tst, "plane", rec.planes[0], []int{3, 2, 3})

	// vertical member references global X, horizontal member the vertical
	chk.Vector(tst, "vecxz column", 1e-15, rec.transfs[1], []float64{1, 0, 0})
	chk.Vector(tst, "vecxz beam", 1e-15, rec.transfs[2], []float64{0, 0, 1})

	// defaults G = E/2.6 and J = 1; z-up swaps the inertias
	G := 29000.0 / 2.6
	chk.Vector(tst, "beam3d 1", 1e-12, rec.beams[1], []float64{1, 2, 10, 29000, G, 1, 100, 50, 1})
	chk.Vector(tst, "beam3d 3", 1e-12, rec.beams[3], []float64{2, 3, 10, 29000, G, 1, 100, 50, 2})

	// y-up: same frame authored with Y vertical keeps the inertias put
	m2 := &inp.Model{Info: inp.Info{Name: "tiny-yup", Units: "kip-in", Ndm: 3, Ndf: 6}}
	m2.Sections = m.Sections
	m2.Nodes = append(m2.Nodes,
		&inp.Node{Id: 1, Coords: []float64{0, 0, 0}, Fixity: []int{1, 1, 1, 1, 1, 1}},
		&inp.Node{Id: 2, Coords: []float64{0, 120, 0}},
		&inp.Node{Id: 3, Coords: []float64{100, 120, 0}},
	)
	m2.Elements = append(m2.Elements,
		&inp.Element{Id: 1, Type: "elasticBeamColumn", Nodes: []int{1, 2}, SectionId: 1},
		&inp.Element{Id: 2, Type: "elasticBeamColumn", Nodes: []int{2, 3}, SectionId: 1},
	)
	rec2 := newRecEngine()
	if err := Build(rec2, m2, chk.Verbose); err != nil {
		tst.Errorf("build failed:\n%v", err)
		return
	}
	chk.Vector(tst, "vecxz column", 1e-15, rec2.transfs[1], []float64{1, 0, 0})
	chk.Vector(tst, "vecxz beam", 1e-15, rec2.transfs[2], []float64{0, 1, 0})
	chk.Vector(tst, "beam3d 1", 1e-12, rec2.beams[1], []float64{1, 2, 10, 29000, G, 1, 50, 100, 1})
}

func Test_build04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("build04. invalid models are rejected")

	base := func() *inp.Model {
		m := &inp.Model{Info: inp.Info{Name: "bad", Units: "kip-in", Ndm: 2, Ndf: 3}}
		m.Sections = append(m.Sections, &inp.Section{Id: 1, Props: inp.SecProps{A: 1, E: 1, Iz: 1}})
		m.Nodes = append(m.Nodes,
			&inp.Node{Id: 1, Coords: []float64{0, 0}, Fixity: []int{1, 1, 1}},
			&inp.Node{Id: 2, Coords: []float64{0, 10}},
		)
		return m
	}

	// unknown section
	m := base()
	m.Elements = append(m.Elements, &inp.Element{Id: 1, Type: "elasticBeamColumn", Nodes: []int{1, 2}, SectionId: 99})
	if err := Build(newRecEngine(), m, false); err == nil {
		tst.Errorf("element with an unknown section must fail\n")
		return
	}

	// too few connectivity entries
	m = base()
	m.Elements = append(m.Elements, &inp.Element{Id: 1, Type: "elasticBeamColumn", Nodes: []int{1}, SectionId: 1})
	if err := Build(newRecEngine(), m, false); err == nil {
		tst.Errorf("element with a single node must fail\n")
		return
	}

	// bearing without surfaces
	m = base()
	m.Bearings = append(m.Bearings, &inp.Bearing{Id: 1, Nodes: []int{1, 2},
		Radii: []float64{20, 168, 20}, DispCaps: []float64{4, 25, 4}})
	if err := Build(newRecEngine(), m, false); err == nil {
		tst.Errorf("bearing without friction surfaces must fail\n")
		return
	}

	// bearing with truncated geometry
	m = base()
	m.Bearings = append(m.Bearings, &inp.Bearing{Id: 1, Nodes: []int{1, 2},
		Surfaces: []inp.FrictionSurface{{MuSlow: 0.01, MuFast: 0.02, TransRate: 25}},
		Radii:    []float64{20, 168}, DispCaps: []float64{4, 25, 4}})
	if err := Build(newRecEngine(), m, false); err == nil {
		tst.Errorf("bearing with two radii must fail\n")
		return
	}
}

func Test_build05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("build05. stiffness fallback through the material")

	m := &inp.Model{Info: inp.Info{Name: "fallback", Units: "kip-in", Ndm: 2, Ndf: 3}}
	m.Materials = append(m.Materials, &inp.Material{Id: 7, Type: "Elastic",
		Params: map[string]float64{"E": 5000}})
	m.Sections = append(m.Sections,
		&inp.Section{Id: 1, MatId: 7, Props: inp.SecProps{A: 1, Iz: 1}},
		&inp.Section{Id: 2, MatId: 8, Props: inp.SecProps{A: 1, Iz: 1}},
	)
	m.Nodes = append(m.Nodes,
		&inp.Node{Id: 1, Coords: []float64{0, 0}, Fixity: []int{1, 1, 1}},
		&inp.Node{Id: 2, Coords: []float64{0, 10}},
		&inp.Node{Id: 3, Coords: []float64{0, 20}},
	)
	m.Elements = append(m.Elements,
		&inp.Element{Id: 1, Type: "elasticBeamColumn", Nodes: []int{1, 2}, SectionId: 1},
		&inp.Element{Id: 2, Type: "elasticBeamColumn", Nodes: []int{2, 3}, SectionId: 2},
	)
	rec := newRecEngine()
	if err := Build(rec, m, chk.Verbose); err != nil {
		tst.Errorf("build failed:\n%v", err)
		return
	}

	// the section without a modulus borrows it from its material; a
	// dangling material reference falls back to unity
	chk.Scalar(tst, "E element 1", 1e-15, rec.beams[1][3], 5000)
	chk.Scalar(tst, "E element 2", 1e-15, rec.beams[2][3], 1)
}
