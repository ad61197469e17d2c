// definition.go — the closed Definition sum: Term | Theorem | Axiom
//
// A Definition is what the registry stores and what the kernel's definition
// handlers produce. The sum is closed: the three concrete kinds live here,
// carry the private marker method, and every consumer switches exhaustively.
//
// Theorems carry an explicit Declared → Proved state machine. A proof can
// only be attached through the single package-private transition used by the
// commit path (session.go); nothing ever detaches one. Re-proving overwrites
// the previous proof term and stays in Proved.
package latte

import "fmt"

// DefKind discriminates the three definition kinds.
type DefKind int

const (
	KindTerm DefKind = iota
	KindTheorem
	KindAxiom
)

func (k DefKind) String() string {
	switch k {
	case KindTerm:
		return "term"
	case KindTheorem:
		return "theorem"
	case KindAxiom:
		return "axiom"
	default:
		return fmt.Sprintf("DefKind(%d)", int(k))
	}
}

// DefCore holds the fields common to every definition kind. Doc and RawParams
// keep the original surface text and the original uninterpreted parameter
// list as presentation metadata; Params is the kernel-validated context.
type DefCore struct {
	Name      Sym
	Doc       string
	Params    Context
	RawParams S
}

// Definition is the closed sum over term definitions, theorem declarations,
// and axiom declarations.
type Definition interface {
	Kind() DefKind
	Core() *DefCore

	isDefinition()
}

// TermDef is a named term with its kernel-inferred type.
type TermDef struct {
	DefCore
	Body S // core term
	Type S // kernel-inferred type of Body under Params
}

func (d *TermDef) Kind() DefKind  { return KindTerm }
func (d *TermDef) Core() *DefCore { return &d.DefCore }
func (d *TermDef) isDefinition()  {}

// ProofState is the lifecycle of a theorem's proof field.
type ProofState int

const (
	Declared ProofState = iota // no proof yet
	Proved                     // proof attached by a successful commit
)

func (s ProofState) String() string {
	if s == Proved {
		return "proved"
	}
	return "declared"
}

// TheoremDef is a declared statement whose proof arrives later, if ever,
// through the commit path.
type TheoremDef struct {
	DefCore
	Statement S // core type expression

	proof  S
	proved bool
}

func (d *TheoremDef) Kind() DefKind  { return KindTheorem }
func (d *TheoremDef) Core() *DefCore { return &d.DefCore }
func (d *TheoremDef) isDefinition()  {}

// State reports whether the theorem has been proved.
func (d *TheoremDef) State() ProofState {
	if d.proved {
		return Proved
	}
	return Declared
}

// Proof returns the attached proof term, if any.
func (d *TheoremDef) Proof() (S, bool) { return d.proof, d.proved }

// attachProof is the single Declared → Proved transition. Only the commit
// path calls it, and only with a term the kernel accepted as inhabiting the
// statement.
func (d *TheoremDef) attachProof(term S) {
	d.proof = term
	d.proved = true
}

// AxiomDef is a declared statement accepted without proof. It never carries
// one.
type AxiomDef struct {
	DefCore
	Statement S
}

func (d *AxiomDef) Kind() DefKind  { return KindAxiom }
func (d *AxiomDef) Core() *DefCore { return &d.DefCore }
func (d *AxiomDef) isDefinition()  {}
