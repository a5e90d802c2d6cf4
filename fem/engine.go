// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements a small displacement based finite element engine
// for frames on triple friction pendulum bearings. Its command surface
// mirrors the one of the interpreters usually driving such models: build
// commands define nodes, elements, constraints and load patterns; analysis
// commands configure and run load controlled, displacement controlled or
// Newmark time stepping solves; query commands read the state back.
package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/mjamiv/isolation/ele"
	"github.com/mjamiv/isolation/inp"
)

// Engine drives model building, analysis and queries. The zero value is not
// usable; call NewEngine
type Engine struct {

	// control
	Verbose bool

	// domain and solution
	Dom    *Domain
	Sol    *Solution
	DynCfs *DynCoefs

	// linear system
	Kb       *la.Triplet
	Fb       []float64 // residual vector
	Wb       []float64 // workspace: solution of the linear system
	LinSol   la.LinSol
	InitLSol bool // linear solver must be initialised before use
	lisAlloc bool // linear solver holds allocated memory

	// definition registries
	tseries   map[int]*TimeSeries
	patterns  []*Pattern
	pattags   map[int]bool
	curPlain  *Pattern // open plain pattern receiving Load calls
	transfs   map[int][]float64
	frictions map[int]inp.FrictionSurface
	materials map[int]float64

	// analysis configuration
	system      string
	numberer    string
	constraints string
	algorithm   string
	tolDu       float64
	nmaxIt      int
	integKind   string
	dLambda     float64
	ctrlNode    int
	ctrlDof     int
	dU          float64
	newGamma    float64
	newBeta     float64
	rayM        float64
	analysis    string

	// results
	react   []float64
	eigVals []float64
	eigVecs [][]float64

	// state
	dirty bool // equations must be renumbered before the next solve
	bkp   Solution
}

// NewEngine returns a new empty engine
func NewEngine(verbose bool) *Engine {
	o := new(Engine)
	o.Verbose = verbose
	o.DynCfs = new(DynCoefs)
	o.Wipe()
	return o
}

// model building ///////////////////////////////////////////////////////////////////////////////////

// Wipe destroys the model, the analysis configuration and all results
func (o *Engine) Wipe() {
	if o.lisAlloc {
		o.LinSol.Free()
		o.lisAlloc = false
	}
	o.Dom, o.Sol = nil, nil
	o.Kb, o.Fb, o.Wb = nil, nil, nil
	o.LinSol = nil
	o.InitLSol = true
	o.tseries = make(map[int]*TimeSeries)
	o.patterns = nil
	o.pattags = make(map[int]bool)
	o.curPlain = nil
	o.transfs = make(map[int][]float64)
	o.frictions = make(map[int]inp.FrictionSurface)
	o.materials = make(map[int]float64)
	o.wipeConfig()
	o.rayM = 0
	o.react, o.eigVals, o.eigVecs = nil, nil, nil
	o.dirty = false
	o.bkp = Solution{}
}

// ModelBasic defines the dimension and the number of dofs per node
func (o *Engine) ModelBasic(ndm, ndf int) error {
	if o.Dom != nil {
		return chk.Err("model is already defined; call Wipe first")
	}
	ok := (ndm == 2 && ndf == 3) || (ndm == 3 && ndf == 6)
	if !ok {
		return chk.Err("(ndm,ndf) must be (2,3) or (3,6); got (%d,%d)", ndm, ndf)
	}
	o.Dom = NewDomain(ndm, ndf)
	o.dirty = true
	return nil
}

// Node adds a node
func (o *Engine) Node(tag int, coords []float64) error {
	if o.Dom == nil {
		return chk.Err("model is not defined; missing ModelBasic")
	}
	if len(coords) != o.Dom.Ndm {
		return chk.Err("node %d requires %d coordinates; got %d", tag, o.Dom.Ndm, len(coords))
	}
	c := make([]float64, len(coords))
	copy(c, coords)
	o.dirty = true
	return o.Dom.AddNode(tag, c)
}

// Fix prescribes zero values at the dofs of node tag where flags[i] != 0
func (o *Engine) Fix(tag int, flags []int) error {
	if o.Dom == nil {
		return chk.Err("model is not defined; missing ModelBasic")
	}
	o.dirty = true
	return o.Dom.SetFix(tag, flags)
}

// Mass sets the lumped mass vector of node tag
func (o *Engine) Mass(tag int, m []float64) error {
	if o.Dom == nil {
		return chk.Err("model is not defined; missing ModelBasic")
	}
	o.dirty = true
	return o.Dom.SetMass(tag, m)
}

// GeomTransf registers the orientation vector of the local x-z plane used
// by 3D frame elements
func (o *Engine) GeomTransf(tag int, vecxz []float64) error {
	if len(vecxz) != 3 {
		return chk.Err("geometric transformation %d requires a 3-vector", tag)
	}
	if _, ok := o.transfs[tag]; ok {
		return chk.Err("geometric transformation %d is defined twice", tag)
	}
	v := make([]float64, 3)
	copy(v, vecxz)
	o.transfs[tag] = v
	return nil
}

// BeamColumn2D adds a plane frame element
func (o *Engine) BeamColumn2D(tag, ni, nj int, A, E, Iz float64) error {
	if o.Dom == nil {
		return chk.Err("model is not defined; missing ModelBasic")
	}
	if o.Dom.Ndm != 2 {
		return chk.Err("element %d: plane frame elements require a 2D model", tag)
	}
	xi, xj, err := o.endCoords(tag, ni, nj)
	if err != nil {
		return err
	}
	b, err := ele.NewBeam(tag, []int{ni, nj}, xi, xj, nil, E, 0, A, Iz, 0, 0)
	if err != nil {
		return err
	}
	o.dirty = true
	return o.Dom.AddElem(b)
}

// BeamColumn3D adds a space frame element oriented by a registered
// geometric transformation
func (o *Engine) BeamColumn3D(tag, ni, nj int, A, E, G, J, Iy, Iz float64, transfTag int) error {
	if o.Dom == nil {
		return chk.Err("model is not defined; missing ModelBasic")
	}
	if o.Dom.Ndm != 3 {
		return chk.Err("element %d: space frame elements require a 3D model", tag)
	}
	vecxz, ok := o.transfs[transfTag]
	if !ok {
		return chk.Err("element %d references unknown geometric transformation %d", tag, transfTag)
	}
	xi, xj, err := o.endCoords(tag, ni, nj)
	if err != nil {
		return err
	}
	b, err := ele.NewBeam(tag, []int{ni, nj}, xi, xj, vecxz, E, G, A, Iz, Iy, J)
	if err != nil {
		return err
	}
	o.dirty = true
	return o.Dom.AddElem(b)
}

// FrictionVelDep registers a velocity dependent friction model
func (o *Engine) FrictionVelDep(tag int, muSlow, muFast, rate float64) error {
	if _, ok := o.frictions[tag]; ok {
		return chk.Err("friction model %d is defined twice", tag)
	}
	o.frictions[tag] = inp.FrictionSurface{MuSlow: muSlow, MuFast: muFast, TransRate: rate}
	return nil
}

// UniaxialElastic registers a linear elastic uniaxial material
func (o *Engine) UniaxialElastic(tag int, k float64) error {
	if _, ok := o.materials[tag]; ok {
		return chk.Err("material %d is defined twice", tag)
	}
	o.materials[tag] = k
	return nil
}

// TFPBearing adds a triple friction pendulum element between a bottom and a
// top node. The friction tags select registered friction models for the
// sliding stages; the vertical material sets the compression stiffness; the
// rotational materials are validated and treated as practically rigid
func (o *Engine) TFPBearing(tag, nb, nt int, frnTags []int, vertMat, rotZMat, rotXMat, rotYMat int, L1, L2, L3, d1, d2, d3, W, uy, kvt, minFv, tol float64) error {
	if o.Dom == nil {
		return chk.Err("model is not defined; missing ModelBasic")
	}
	ni := o.Dom.Tag2node[nb]
	nj := o.Dom.Tag2node[nt]
	if ni == nil || nj == nil {
		return chk.Err("bearing element %d references unknown nodes (%d,%d)", tag, nb, nt)
	}
	if len(frnTags) < 1 {
		return chk.Err("bearing element %d requires friction model tags", tag)
	}
	surfaces := make([]inp.FrictionSurface, len(frnTags))
	for i, ft := range frnTags {
		s, ok := o.frictions[ft]
		if !ok {
			return chk.Err("bearing element %d references unknown friction model %d", tag, ft)
		}
		surfaces[i] = s
	}
	vertStiff := 0.0
	if vertMat != 0 {
		k, ok := o.materials[vertMat]
		if !ok {
			return chk.Err("bearing element %d references unknown material %d", tag, vertMat)
		}
		vertStiff = k
	}
	for _, mt := range []int{rotZMat, rotXMat, rotYMat} {
		if mt != 0 {
			if _, ok := o.materials[mt]; !ok {
				return chk.Err("bearing element %d references unknown material %d", tag, mt)
			}
		}
	}

	// vertical dof from the member axis; coincident nodes assume the last
	// coordinate vertical
	vert := o.Dom.Ndm - 1
	if o.Dom.Ndm == 3 {
		big, idx := 0.0, 2
		for i := 0; i < 3; i++ {
			v := math.Abs(nj.Coords[i] - ni.Coords[i])
			if v > big {
				big, idx = v, i
			}
		}
		if big > 1e-12 {
			vert = idx
		}
	}

	b := &inp.Bearing{
		Id:        tag - 10000,
		Nodes:     []int{nb, nt},
		Surfaces:  surfaces,
		Radii:     []float64{L1, L2, L3},
		DispCaps:  []float64{d1, d2, d3},
		Weight:    W,
		Uy:        uy,
		Kvt:       kvt,
		MinFv:     minFv,
		Tol:       tol,
		VertStiff: vertStiff,
	}
	e, err := ele.NewTfp(b, o.Dom.Ndf, vert)
	if err != nil {
		return err
	}
	o.dirty = true
	return o.Dom.AddElem(e)
}

// RigidDiaphragm ties the in-plane dofs of the slave nodes to the master
func (o *Engine) RigidDiaphragm(perpDirn, master int, slaves []int) error {
	if o.Dom == nil {
		return chk.Err("model is not defined; missing ModelBasic")
	}
	o.dirty = true
	return o.Dom.AddDiaphragm(perpDirn, master, slaves)
}

// loading //////////////////////////////////////////////////////////////////////////////////////////

// TimeSeriesLinear defines a factor growing with time itself
func (o *Engine) TimeSeriesLinear(tag int) error {
	if _, ok := o.tseries[tag]; ok {
		return chk.Err("time series %d is defined twice", tag)
	}
	o.tseries[tag] = NewTimeSeriesLinear(tag)
	return nil
}

// TimeSeriesPath defines a sampled factor with spacing dt
func (o *Engine) TimeSeriesPath(tag int, dt float64, values []float64) error {
	if _, ok := o.tseries[tag]; ok {
		return chk.Err("time series %d is defined twice", tag)
	}
	v := make([]float64, len(values))
	copy(v, values)
	ts, err := NewTimeSeriesPath(tag, dt, v)
	if err != nil {
		return err
	}
	o.tseries[tag] = ts
	return nil
}

// PatternPlain opens a plain pattern scaling subsequent Load calls by the
// factor of the given time series
func (o *Engine) PatternPlain(tag, tsTag int) error {
	if o.pattags[tag] {
		return chk.Err("pattern %d is defined twice", tag)
	}
	ts, ok := o.tseries[tsTag]
	if !ok {
		return chk.Err("pattern %d references unknown time series %d", tag, tsTag)
	}
	p := &Pattern{Tag: tag, Kind: "plain", Ts: ts}
	o.pattags[tag] = true
	o.patterns = append(o.patterns, p)
	o.curPlain = p
	return nil
}

// Load appends a nodal load to the open plain pattern
func (o *Engine) Load(node int, values []float64) error {
	if o.curPlain == nil {
		return chk.Err("no plain pattern is open for loads")
	}
	if o.Dom == nil || o.Dom.Tag2node[node] == nil {
		return chk.Err("load references unknown node %d", node)
	}
	v := make([]float64, len(values))
	copy(v, values)
	o.curPlain.Loads = append(o.curPlain.Loads, &PointLoad{Node: node, Values: v})
	return nil
}

// PatternUniformExcitation applies a base acceleration history along a
// global direction; the equivalent forces act on the lumped masses
func (o *Engine) PatternUniformExcitation(tag, dir, tsTag int) error {
	if o.pattags[tag] {
		return chk.Err("pattern %d is defined twice", tag)
	}
	if o.Dom == nil {
		return chk.Err("model is not defined; missing ModelBasic")
	}
	if dir < 1 || dir > o.Dom.Ndm {
		return chk.Err("excitation direction must be in 1..%d; got %d", o.Dom.Ndm, dir)
	}
	ts, ok := o.tseries[tsTag]
	if !ok {
		return chk.Err("pattern %d references unknown time series %d", tag, tsTag)
	}
	o.pattags[tag] = true
	o.patterns = append(o.patterns, &Pattern{Tag: tag, Kind: "uniform", Ts: ts, Dir: dir})
	return nil
}

// LoadConst freezes all patterns at their current factor and resets the
// time to t
func (o *Engine) LoadConst(t float64) {
	tcur := 0.0
	if o.Sol != nil {
		tcur = o.Sol.T
	}
	for _, pat := range o.patterns {
		if pat.Live() {
			pat.Freeze(tcur)
		}
	}
	if o.Sol != nil {
		o.Sol.T = t
	}
}

// analysis configuration ///////////////////////////////////////////////////////////////////////////

// System selects the linear system kind
func (o *Engine) System(kind string) error {
	switch kind {
	case "BandGeneral", "UmfPack", "FullGeneral":
		o.system = kind
		return nil
	}
	return chk.Err("unknown system kind %q", kind)
}

// Numberer selects the equation numbering kind
func (o *Engine) Numberer(kind string) error {
	switch kind {
	case "RCM", "Plain":
		o.numberer = kind
		return nil
	}
	return chk.Err("unknown numberer kind %q", kind)
}

// Constraints selects the constraint handler kind
func (o *Engine) Constraints(kind string) error {
	switch kind {
	case "Transformation", "Plain":
		o.constraints = kind
		return nil
	}
	return chk.Err("unknown constraints kind %q", kind)
}

// TestNormDispIncr sets the convergence test on the norm of the
// displacement increment
func (o *Engine) TestNormDispIncr(tol float64, maxIter int) {
	o.tolDu = tol
	o.nmaxIt = maxIter
}

// Algorithm selects the iteration scheme
func (o *Engine) Algorithm(kind string) error {
	switch kind {
	case "Newton", "ModifiedNewton", "KrylovNewton":
		o.algorithm = kind
		return nil
	}
	return chk.Err("unknown algorithm kind %q", kind)
}

// IntegratorLoadControl selects load control with factor increment dLambda
func (o *Engine) IntegratorLoadControl(dLambda float64) {
	o.integKind = "LoadControl"
	o.dLambda = dLambda
}

// IntegratorDisplacementControl selects displacement control of one dof
func (o *Engine) IntegratorDisplacementControl(node, dof int, dU float64) {
	o.integKind = "DisplacementControl"
	o.ctrlNode = node
	o.ctrlDof = dof
	o.dU = dU
}

// IntegratorNewmark selects the Newmark time stepping scheme
func (o *Engine) IntegratorNewmark(gamma, beta float64) {
	o.integKind = "Newmark"
	o.newGamma = gamma
	o.newBeta = beta
}

// Rayleigh sets mass proportional damping C = a0*M. Stiffness proportional
// terms are not available
func (o *Engine) Rayleigh(a0, a1, a2, a3 float64) error {
	if a1 != 0 || a2 != 0 || a3 != 0 {
		return chk.Err("stiffness proportional damping is not available")
	}
	o.rayM = a0
	return nil
}

// AnalysisStatic arms static solves
func (o *Engine) AnalysisStatic() {
	o.analysis = "static"
}

// AnalysisTransient arms transient solves
func (o *Engine) AnalysisTransient() {
	o.analysis = "transient"
}

// WipeAnalysis clears the analysis configuration keeping model, patterns
// and state
func (o *Engine) WipeAnalysis() {
	o.wipeConfig()
}

// solving //////////////////////////////////////////////////////////////////////////////////////////

// Analyze runs nsteps static increments with the armed integrator
func (o *Engine) Analyze(nsteps int) (err error) {
	if o.analysis != "static" {
		return chk.Err("static analysis is not configured")
	}
	switch o.integKind {
	case "LoadControl", "DisplacementControl":
	default:
		return chk.Err("integrator %q does not drive a static analysis", o.integKind)
	}
	if err = o.initialise(); err != nil {
		return
	}
	return allocators[o.integKind](o).Run(nsteps, 0)
}

// AnalyzeDt runs nsteps transient increments of size Δt
func (o *Engine) AnalyzeDt(nsteps int, Δt float64) (err error) {
	if o.analysis != "transient" {
		return chk.Err("transient analysis is not configured")
	}
	if o.integKind != "Newmark" {
		return chk.Err("integrator %q does not drive a transient analysis", o.integKind)
	}
	if Δt <= 0 {
		return chk.Err("time increment must be positive")
	}
	if err = o.initialise(); err != nil {
		return
	}
	if err = o.DynCfs.Init(o.newGamma, o.newBeta); err != nil {
		return
	}
	return allocators[o.integKind](o).Run(nsteps, Δt)
}

// Reactions computes support reactions (and residuals at free dofs) from
// the internal forces minus the applied nodal loads
func (o *Engine) Reactions() (err error) {
	if err = o.initialise(); err != nil {
		return
	}
	nfull := len(o.Dom.Nodes) * o.Dom.Ndf
	if len(o.react) != nfull {
		o.react = make([]float64, nfull)
	} else {
		la.VecFill(o.react, 0)
	}
	o.Dom.FintFull(o.react)
	for _, pat := range o.patterns {
		if pat.Kind != "plain" {
			continue
		}
		fac := pat.Factor(o.Sol.T)
		for _, pl := range pat.Loads {
			o.Dom.AddLoad(nil, o.react, pl.Node, pl.Values, -fac)
		}
	}
	return
}

// queries //////////////////////////////////////////////////////////////////////////////////////////

// NodeDisp returns the displacements of node tag; empty when unknown
func (o *Engine) NodeDisp(tag int) []float64 {
	if o.Dom == nil {
		return []float64{}
	}
	n := o.Dom.Tag2node[tag]
	if n == nil {
		return []float64{}
	}
	if o.Sol == nil {
		return make([]float64, o.Dom.Ndf)
	}
	return n.Values(o.Sol.Y)
}

// NodeVel returns the velocities of node tag; empty when unknown
func (o *Engine) NodeVel(tag int) []float64 {
	if o.Dom == nil {
		return []float64{}
	}
	n := o.Dom.Tag2node[tag]
	if n == nil {
		return []float64{}
	}
	if o.Sol == nil {
		return make([]float64, o.Dom.Ndf)
	}
	return n.Values(o.Sol.Dydt)
}

// NodeReaction returns the reactions of node tag computed by the last
// Reactions call; empty when unknown
func (o *Engine) NodeReaction(tag int) []float64 {
	if o.Dom == nil {
		return []float64{}
	}
	idx, ok := o.Dom.tag2idx[tag]
	if !ok {
		return []float64{}
	}
	res := make([]float64, o.Dom.Ndf)
	if o.react != nil {
		copy(res, o.react[idx*o.Dom.Ndf:(idx+1)*o.Dom.Ndf])
	}
	return res
}

// NodeEigenvector returns the shape values of node tag for the 1-based
// mode; zeros when the mode was not computed, empty when the node is
// unknown
func (o *Engine) NodeEigenvector(tag, mode int) []float64 {
	if o.Dom == nil {
		return []float64{}
	}
	n := o.Dom.Tag2node[tag]
	if n == nil {
		return []float64{}
	}
	if mode < 1 || mode > len(o.eigVecs) {
		return make([]float64, o.Dom.Ndf)
	}
	return n.Values(o.eigVecs[mode-1])
}

// EleResponse returns a named response of element tag; empty when the
// element is unknown or cannot answer
func (o *Engine) EleResponse(tag int, kind string) []float64 {
	if o.Dom == nil {
		return []float64{}
	}
	e := o.Dom.Tag2elem[tag]
	if e == nil {
		return []float64{}
	}
	res, err := e.Response(kind)
	if err != nil {
		return []float64{}
	}
	return res
}

// NumBearings returns the number of friction pendulum elements
func (o *Engine) NumBearings() (n int) {
	if o.Dom == nil {
		return
	}
	for _, e := range o.Dom.Elems {
		if _, ok := e.(*ele.Tfp); ok {
			n++
		}
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// wipeConfig resets the analysis configuration to its defaults
func (o *Engine) wipeConfig() {
	o.system, o.numberer, o.constraints = "", "", ""
	o.algorithm = "Newton"
	o.tolDu, o.nmaxIt = 1e-8, 10
	o.integKind = ""
	o.dLambda = 0
	o.ctrlNode, o.ctrlDof, o.dU = 0, 0, 0
	o.newGamma, o.newBeta = 0, 0
	o.analysis = ""
}

// initialise numbers the equations and allocates the linear system after
// model changes
func (o *Engine) initialise() (err error) {
	if o.Dom == nil {
		return chk.Err("model is not defined; missing ModelBasic")
	}
	if !o.dirty {
		return
	}
	if err = o.Dom.InitEqs(); err != nil {
		return
	}
	ny := o.Dom.Ny
	o.Sol = new(Solution)
	o.Sol.Allocate(ny)
	o.Kb = new(la.Triplet)
	o.Kb.Init(ny, ny, o.Dom.NnzKb)
	o.Fb = make([]float64, ny)
	o.Wb = make([]float64, ny)
	if o.lisAlloc {
		o.LinSol.Free()
		o.lisAlloc = false
	}
	o.LinSol = la.GetSolver("umfpack")
	o.InitLSol = true
	o.react = nil
	o.eigVals, o.eigVecs = nil, nil
	o.bkp = Solution{}
	o.dirty = false
	return
}

// endCoords returns the coordinates of the two end nodes of element tag
func (o *Engine) endCoords(tag, ni, nj int) (xi, xj []float64, err error) {
	a := o.Dom.Tag2node[ni]
	b := o.Dom.Tag2node[nj]
	if a == nil || b == nil {
		return nil, nil, chk.Err("element %d references unknown nodes (%d,%d)", tag, ni, nj)
	}
	return a.Coords, b.Coords, nil
}
