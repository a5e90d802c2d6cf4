// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the structural model read from a (.json) model file,
// mesh refinement and the generation of model variants
package inp

import (
	"encoding/json"
	goio "io"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Node holds a structural node with coordinates and boundary conditions
type Node struct {
	Id     int       `json:"id"`     // unique node tag
	Coords []float64 `json:"coords"` // nodal coordinates [x,y] or [x,y,z]
	Fixity []int     `json:"fixity"` // fixity flags per dof (0=free, 1=fixed); empty means all free
	Mass   []float64 `json:"mass"`   // explicit nodal mass per dof; empty means derive from loads
}

// Material holds a material definition
type Material struct {
	Id     int                `json:"id"`     // unique material tag
	Type   string             `json:"type"`   // material type; e.g. "Elastic"
	Name   string             `json:"name"`   // human-readable name
	Params map[string]float64 `json:"params"` // material parameters
}

// SecProps holds mechanical/geometric section properties
//  Note: G, J and Iy may be left zero; the translator derives
//        G = E/2.6, J = 1.0 and Iy = Iz in that case
type SecProps struct {
	A     float64 `json:"A"`     // cross-sectional area
	E     float64 `json:"E"`     // Young's modulus
	G     float64 `json:"G"`     // shear modulus
	Iz    float64 `json:"Iz"`    // major moment of inertia
	Iy    float64 `json:"Iy"`    // minor moment of inertia
	J     float64 `json:"J"`     // torsional constant
	Depth float64 `json:"depth"` // section depth; feeds hinge classification
}

// Section holds a frame section definition
type Section struct {
	Id    int      `json:"id"`          // unique section tag
	Type  string   `json:"type"`        // section type; e.g. "Elastic"
	Name  string   `json:"name"`        // human-readable name; e.g. "W14x90"
	Props SecProps `json:"properties"`  // section properties
	MatId int      `json:"material_id"` // associated material tag; 0 means none
}

// Element holds a frame element definition
type Element struct {
	Id        int    `json:"id"`         // unique element tag
	Type      string `json:"type"`       // element type; e.g. "elasticBeamColumn"
	Nodes     []int  `json:"nodes"`      // connected node tags [i, j]
	SectionId int    `json:"section_id"` // associated section tag
	Transform string `json:"transform"`  // geometric transformation; e.g. "Linear"
}

// FrictionSurface holds the friction properties of one sliding surface
type FrictionSurface struct {
	MuSlow    float64 `json:"mu_slow"`    // friction coefficient at slow velocity
	MuFast    float64 `json:"mu_fast"`    // friction coefficient at fast velocity
	TransRate float64 `json:"trans_rate"` // velocity transition rate
}

// Bearing holds a triple friction pendulum isolator definition
//
//          ____true________                outer slider: L1, d1
//         /    :           \
//        | ____:_____       |              inner sliders: L2, d2
//        |/    :     \      |
//        + - - + - - -+ - - +  <- W        restrainer rims at d1,d2,d3
//        |\____:_____/      |
//         \    :           /
//          \___:__________/                L3, d3
//
type Bearing struct {
	Id        int               `json:"id"`              // unique bearing element tag
	Nodes     []int             `json:"nodes"`           // [bottom, top] node tags
	Surfaces  []FrictionSurface `json:"friction_models"` // 1 to 4 sliding surfaces; short lists repeat the last
	Radii     []float64         `json:"radii"`           // effective radii [L1, L2, L3]
	DispCaps  []float64         `json:"disp_capacities"` // displacement capacities [d1, d2, d3]
	Weight    float64           `json:"weight"`          // vertical load carried by the bearing
	Uy        float64           `json:"uy"`              // yield displacement for initial stiffness
	Kvt       float64           `json:"kvt"`             // vertical stiffness in tension
	MinFv     float64           `json:"min_fv"`          // smallest vertical force used for friction
	Tol       float64           `json:"tol"`             // inner Newton-Raphson tolerance
	VertStiff float64           `json:"vert_stiffness"`  // vertical stiffness; 0 means derive 100*W
}

// Load holds an applied load
type Load struct {
	Type    string    `json:"type"`       // load type: "nodal", "elemental"
	Node    int       `json:"node_id"`    // target node tag (nodal loads)
	Element int       `json:"element_id"` // target element tag (elemental loads)
	Values  []float64 `json:"values"`     // load values per dof
}

// RigidGroup holds a set of nodes behaving as a rigid body in plan (diaphragm)
type RigidGroup struct {
	Id    int   `json:"id"`    // unique group tag
	Nodes []int `json:"nodes"` // member node tags; first one is the master
}

// Info holds model metadata
type Info struct {
	Name  string `json:"name"`  // model name
	Units string `json:"units"` // unit system: "kip-in", "kip-ft", "kN-m", "N-m", "N-mm", "t-m"
	Ndm   int    `json:"ndm"`   // number of space dimensions
	Ndf   int    `json:"ndf"`   // number of dofs per node
	ZUp   bool   `json:"z_up"`  // vertical axis is Z (3D isolated models)
}

// Model holds the complete structural model definition
type Model struct {

	// input
	Info      Info          `json:"model_info"`   // metadata
	Nodes     []*Node       `json:"nodes"`        // structural nodes
	Materials []*Material   `json:"materials"`    // material definitions
	Sections  []*Section    `json:"sections"`     // section definitions
	Elements  []*Element    `json:"elements"`     // frame elements
	Bearings  []*Bearing    `json:"bearings"`     // TFP isolators
	Loads     []*Load       `json:"loads"`        // applied loads
	Groups    []*RigidGroup `json:"rigid_groups"` // rigid (diaphragm) groups
}

// Model ///////////////////////////////////////////////////////////////////////////////////////////

// ReadModel reads a model from a .json file
func ReadModel(path string) *Model {
	b, err := io.ReadFile(path)
	if err != nil {
		chk.Panic("ReadModel: cannot read model file %q", path)
	}
	var o Model
	o.Info.SetDefault()
	err = json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadModel: cannot unmarshal model file %q:\n%v", path, err)
	}
	o.SetDefault()
	return &o
}

// SetDefault sets default values
//  Note: Ndf is resolved later from Ndm when not given
func (o *Info) SetDefault() {
	o.Units = "kN-m"
	o.Ndm = 2
}

// SetDefault fixes zero values after decoding
func (o *Model) SetDefault() {
	if o.Info.Ndm == 0 {
		o.Info.Ndm = 2
	}
	if o.Info.Ndf == 0 {
		if o.Info.Ndm == 3 {
			o.Info.Ndf = 6
		} else {
			o.Info.Ndf = 3
		}
	}
	for _, b := range o.Bearings {
		b.SetDefault()
	}
}

// SetDefault sets bearing defaults
func (o *Bearing) SetDefault() {
	if o.Uy <= 0 {
		o.Uy = 0.001
	}
	if o.Kvt <= 0 {
		o.Kvt = 100.0
	}
	if o.MinFv <= 0 {
		o.MinFv = 0.1
	}
	if o.Tol <= 0 {
		o.Tol = 1e-8
	}
}

// Save writes the model to a .json file in dirout
func (o *Model) Save(dirout, fnkey string) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		chk.Panic("cannot marshal model %q", fnkey)
	}
	if err = os.MkdirAll(dirout, 0777); err != nil {
		chk.Panic("cannot create directory %q", dirout)
	}
	fn := filepath.Join(dirout, fnkey+".json")
	if err = os.WriteFile(fn, b, 0644); err != nil {
		chk.Panic("cannot write model file %q", fn)
	}
	io.Pfblue2("file <%s> written\n", fn)
}

// GetInfo returns formatted information
func (o *Model) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}

// Validate checks model consistency; the returned error names the offending entity
func (o *Model) Validate() (err error) {

	// nodes
	nodes := make(map[int]*Node)
	for _, n := range o.Nodes {
		if n.Id < 1 {
			return chk.Err("node id %d is invalid", n.Id)
		}
		if _, found := nodes[n.Id]; found {
			return chk.Err("node %d is duplicated", n.Id)
		}
		if len(n.Coords) != o.Info.Ndm {
			return chk.Err("node %d has %d coordinates but ndm is %d", n.Id, len(n.Coords), o.Info.Ndm)
		}
		if len(n.Fixity) > o.Info.Ndf {
			return chk.Err("node %d has %d fixity flags but ndf is %d", n.Id, len(n.Fixity), o.Info.Ndf)
		}
		for _, f := range n.Fixity {
			if f != 0 && f != 1 {
				return chk.Err("node %d has invalid fixity flag %d", n.Id, f)
			}
		}
		nodes[n.Id] = n
	}

	// materials and sections
	mats := make(map[int]bool)
	for _, m := range o.Materials {
		if mats[m.Id] {
			return chk.Err("material %d is duplicated", m.Id)
		}
		mats[m.Id] = true
	}
	secs := make(map[int]*Section)
	for _, s := range o.Sections {
		if _, found := secs[s.Id]; found {
			return chk.Err("section %d is duplicated", s.Id)
		}
		if s.Props.E <= 0 || s.Props.A <= 0 || s.Props.Iz <= 0 {
			return chk.Err("section %d must have positive E, A and Iz", s.Id)
		}
		if s.MatId > 0 && len(o.Materials) > 0 && !mats[s.MatId] {
			return chk.Err("section %d references unknown material %d", s.Id, s.MatId)
		}
		secs[s.Id] = s
	}

	// elements
	elems := make(map[int]bool)
	for _, e := range o.Elements {
		if elems[e.Id] {
			return chk.Err("element %d is duplicated", e.Id)
		}
		if len(e.Nodes) != 2 {
			return chk.Err("element %d must connect exactly 2 nodes", e.Id)
		}
		for _, nid := range e.Nodes {
			if _, found := nodes[nid]; !found {
				return chk.Err("element %d references unknown node %d", e.Id, nid)
			}
		}
		if _, found := secs[e.SectionId]; !found {
			return chk.Err("element %d references unknown section %d", e.Id, e.SectionId)
		}
		elems[e.Id] = true
	}

	// bearings
	brgs := make(map[int]bool)
	for _, b := range o.Bearings {
		if brgs[b.Id] {
			return chk.Err("bearing %d is duplicated", b.Id)
		}
		if len(b.Nodes) != 2 {
			return chk.Err("bearing %d must connect exactly 2 nodes", b.Id)
		}
		for _, nid := range b.Nodes {
			if _, found := nodes[nid]; !found {
				return chk.Err("bearing %d references unknown node %d", b.Id, nid)
			}
		}
		if len(b.Surfaces) < 1 || len(b.Surfaces) > 4 {
			return chk.Err("bearing %d must have 1 to 4 friction surfaces", b.Id)
		}
		for i, s := range b.Surfaces {
			if s.MuSlow < 0 || s.MuFast < s.MuSlow {
				return chk.Err("bearing %d surface %d must have 0 <= mu_slow <= mu_fast", b.Id, i)
			}
		}
		if len(b.Radii) != 3 || len(b.DispCaps) != 3 {
			return chk.Err("bearing %d must have 3 radii and 3 displacement capacities", b.Id)
		}
		brgs[b.Id] = true
	}

	// loads
	for _, l := range o.Loads {
		if l.Type == "nodal" {
			if _, found := nodes[l.Node]; !found {
				return chk.Err("nodal load references unknown node %d", l.Node)
			}
			if len(l.Values) > o.Info.Ndf {
				return chk.Err("nodal load at node %d has %d values but ndf is %d", l.Node, len(l.Values), o.Info.Ndf)
			}
		}
	}

	// rigid groups
	for _, g := range o.Groups {
		for _, nid := range g.Nodes {
			if _, found := nodes[nid]; !found {
				return chk.Err("rigid group %d references unknown node %d", g.Id, nid)
			}
		}
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// Gravity returns the gravity constant consistent with the unit system
func (o *Model) Gravity() float64 {
	switch o.Info.Units {
	case "kip-in":
		return 386.4
	case "kip-ft":
		return 32.2
	case "kN-m":
		return 9.81
	case "N-m":
		return 9.81
	case "N-mm":
		return 9810.0
	case "t-m":
		return 9.81
	}
	return 9.81
}

// GetNode returns the node with the given id
//  Note: returns nil if not found
func (o *Model) GetNode(id int) *Node {
	for _, n := range o.Nodes {
		if n.Id == id {
			return n
		}
	}
	return nil
}

// GetSection returns the section with the given id
//  Note: returns nil if not found
func (o *Model) GetSection(id int) *Section {
	for _, s := range o.Sections {
		if s.Id == id {
			return s
		}
	}
	return nil
}

// Youngs returns the stiffness modulus of a section, falling back to the
// referenced material when the section does not carry one
func (o *Model) Youngs(sec *Section) float64 {
	if sec.Props.E > 0 {
		return sec.Props.E
	}
	for _, mat := range o.Materials {
		if mat.Id == sec.MatId {
			if E, ok := mat.Params["E"]; ok && E > 0 {
				return E
			}
		}
	}
	return 1.0
}

// GetElement returns the element with the given id
//  Note: returns nil if not found
func (o *Model) GetElement(id int) *Element {
	for _, e := range o.Elements {
		if e.Id == id {
			return e
		}
	}
	return nil
}

// MaxNodeId returns the largest node id in use
func (o *Model) MaxNodeId() (max int) {
	for _, n := range o.Nodes {
		if n.Id > max {
			max = n.Id
		}
	}
	return
}

// MaxElementId returns the largest element id in use, including bearing
// element tags which live at 10000+id
func (o *Model) MaxElementId() (max int) {
	for _, e := range o.Elements {
		if e.Id > max {
			max = e.Id
		}
	}
	for _, b := range o.Bearings {
		if 10000+b.Id > max {
			max = 10000 + b.Id
		}
	}
	return
}

// IsZUp tells whether the vertical axis is Z; true when the flag is set or
// when the model is 3D and isolated
func (o *Model) IsZUp() bool {
	if o.Info.ZUp {
		return true
	}
	return o.Info.Ndm == 3 && len(o.Bearings) > 0
}

// VertDof returns the index of the vertical translational dof
func (o *Model) VertDof() int {
	if o.Info.Ndm == 3 && o.IsZUp() {
		return 2
	}
	return 1
}

// TotalWeight sums bearing weights and downward vertical nodal loads
func (o *Model) TotalWeight() (w float64) {
	vd := o.VertDof()
	for _, l := range o.Loads {
		if l.Type == "nodal" && len(l.Values) > vd && l.Values[vd] < 0 {
			w -= l.Values[vd]
		}
	}
	for _, b := range o.Bearings {
		w += b.Weight
	}
	return
}

// PadFixity returns the fixity vector padded to ndf entries; the pad value
// is 1 only when every given entry is 1
func (o *Node) PadFixity(ndf int) []int {
	fix := make([]int, ndf)
	pad := 1
	if len(o.Fixity) == 0 {
		pad = 0
	}
	for _, f := range o.Fixity {
		if f != 1 {
			pad = 0
		}
	}
	for i := 0; i < ndf; i++ {
		if i < len(o.Fixity) {
			fix[i] = o.Fixity[i]
		} else {
			fix[i] = pad
		}
	}
	return fix
}

// FullyFixed tells whether every dof of the padded fixity vector is fixed
func (o *Node) FullyFixed(ndf int) bool {
	if len(o.Fixity) == 0 {
		return false
	}
	for _, f := range o.PadFixity(ndf) {
		if f != 1 {
			return false
		}
	}
	return true
}

// HasFixed tells whether at least one dof is fixed
func (o *Node) HasFixed() bool {
	for _, f := range o.Fixity {
		if f == 1 {
			return true
		}
	}
	return false
}

// GroupOf returns the rigid group containing the given node
//  Note: returns nil if the node is ungrouped
func (o *Model) GroupOf(nid int) *RigidGroup {
	for _, g := range o.Groups {
		if g.Contains(nid) {
			return g
		}
	}
	return nil
}

// Contains tells whether the group contains the given node
func (o *RigidGroup) Contains(nid int) bool {
	for _, id := range o.Nodes {
		if id == nid {
			return true
		}
	}
	return false
}

// Length returns the distance between the element end nodes
func (o *Model) Length(e *Element) float64 {
	ni, nj := o.GetNode(e.Nodes[0]), o.GetNode(e.Nodes[1])
	if ni == nil || nj == nil {
		return 0
	}
	var sum float64
	for i := 0; i < o.Info.Ndm; i++ {
		d := nj.Coords[i] - ni.Coords[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Clone returns a deep copy of the model
func (o *Model) Clone() *Model {
	m := &Model{Info: o.Info}
	for _, n := range o.Nodes {
		nn := &Node{Id: n.Id}
		nn.Coords = append(nn.Coords, n.Coords...)
		nn.Fixity = append(nn.Fixity, n.Fixity...)
		nn.Mass = append(nn.Mass, n.Mass...)
		m.Nodes = append(m.Nodes, nn)
	}
	for _, mat := range o.Materials {
		mm := &Material{Id: mat.Id, Type: mat.Type, Name: mat.Name}
		if mat.Params != nil {
			mm.Params = make(map[string]float64)
			for k, v := range mat.Params {
				mm.Params[k] = v
			}
		}
		m.Materials = append(m.Materials, mm)
	}
	for _, s := range o.Sections {
		ss := *s
		m.Sections = append(m.Sections, &ss)
	}
	for _, e := range o.Elements {
		ee := &Element{Id: e.Id, Type: e.Type, SectionId: e.SectionId, Transform: e.Transform}
		ee.Nodes = append(ee.Nodes, e.Nodes...)
		m.Elements = append(m.Elements, ee)
	}
	for _, b := range o.Bearings {
		bb := &Bearing{Id: b.Id, Weight: b.Weight, Uy: b.Uy, Kvt: b.Kvt, MinFv: b.MinFv, Tol: b.Tol, VertStiff: b.VertStiff}
		bb.Nodes = append(bb.Nodes, b.Nodes...)
		bb.Surfaces = append(bb.Surfaces, b.Surfaces...)
		bb.Radii = append(bb.Radii, b.Radii...)
		bb.DispCaps = append(bb.DispCaps, b.DispCaps...)
		m.Bearings = append(m.Bearings, bb)
	}
	for _, l := range o.Loads {
		ll := &Load{Type: l.Type, Node: l.Node, Element: l.Element}
		ll.Values = append(ll.Values, l.Values...)
		m.Loads = append(m.Loads, ll)
	}
	for _, g := range o.Groups {
		gg := &RigidGroup{Id: g.Id}
		gg.Nodes = append(gg.Nodes, g.Nodes...)
		m.Groups = append(m.Groups, gg)
	}
	return m
}
