// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analysis orchestration for isolated and fixed-base
// structural models on top of a solver engine
package ana

// Engine abstracts the finite element solver driven by the analysis
// procedures in this package. The command surface follows the one exposed by
// interpreters usually driving such models, so a translated model can be
// replayed against any conforming implementation. All model-building commands
// return an error on invalid input; query commands return empty slices for
// unknown tags
//
// Kinds accepted by the configuration commands:
//   System      -- "BandGeneral", "UmfPack", "FullGeneral"
//   Numberer    -- "RCM", "Plain"
//   Constraints -- "Transformation", "Plain"
//   Algorithm   -- "Newton", "ModifiedNewton", "KrylovNewton"
type Engine interface {

	// model building
	Wipe()
	ModelBasic(ndm, ndf int) error
	Node(tag int, coords []float64) error
	Fix(tag int, flags []int) error
	Mass(tag int, m []float64) error
	GeomTransf(tag int, vecxz []float64) error
	BeamColumn2D(tag, ni, nj int, A, E, Iz float64) error
	BeamColumn3D(tag, ni, nj int, A, E, G, J, Iy, Iz float64, transfTag int) error
	FrictionVelDep(tag int, muSlow, muFast, rate float64) error
	UniaxialElastic(tag int, k float64) error
	TFPBearing(tag, nb, nt int, frnTags []int, vertMat, rotZMat, rotXMat, rotYMat int,
		L1, L2, L3, d1, d2, d3, W, uy, kvt, minFv, tol float64) error
	RigidDiaphragm(perpDirn, master int, slaves []int) error

	// loading
	TimeSeriesLinear(tag int) error
	TimeSeriesPath(tag int, dt float64, values []float64) error
	PatternPlain(tag, tsTag int) error
	Load(node int, values []float64) error
	PatternUniformExcitation(tag, dir, tsTag int) error
	LoadConst(t float64)

	// analysis configuration
	System(kind string) error
	Numberer(kind string) error
	Constraints(kind string) error
	TestNormDispIncr(tol float64, maxIter int)
	Algorithm(kind string) error
	IntegratorLoadControl(dLambda float64)
	IntegratorDisplacementControl(node, dof int, dU float64)
	IntegratorNewmark(gamma, beta float64)
	Rayleigh(a0, a1, a2, a3 float64) error
	AnalysisStatic()
	AnalysisTransient()
	WipeAnalysis()

	// solving
	Analyze(nsteps int) error
	AnalyzeDt(nsteps int, dt float64) error
	Eigen(nmodes int) ([]float64, error)
	Reactions() error

	// queries
	NodeDisp(tag int) []float64
	NodeVel(tag int) []float64
	NodeReaction(tag int) []float64
	NodeEigenvector(tag, mode int) []float64
	EleResponse(tag int, kind string) []float64
	NumBearings() int
}
