// Package kerneltest provides kernel doubles for exercising the registration
// pipeline without a real type-theory kernel.
//
// Fake is a function-field double in the httptest style: every kernel
// operation can be overridden per test, and any field left nil falls back to
// the structural behavior below. Structural() returns the all-defaults Fake.
//
// The structural behavior is syntax only, and deliberately so: surface
// datums pass through as core terms (atoms wrapped as ("id" x), the symbols
// type/kind becoming the two sorts), every type is proper, definitional
// equality is structural equality, every term is classified by the type
// sort, and direct proofs are accepted verbatim while scripts must end in a
// (qed t) step whose term becomes the proof. It is a smoke-test and dry-run
// kernel, not a typechecker; nothing it accepts says anything about
// inhabitation.
package kerneltest

import (
	latte "github.com/zampino/LaTTe"
)

// Fake implements latte.Kernel. Nil fields use structural defaults.
type Fake struct {
	ParseFn         func(env latte.DefSource, surface any) (latte.S, *latte.Diagnostic)
	TypeOfFn        func(env latte.DefSource, ctx latte.Context, term latte.S) (latte.S, *latte.Diagnostic)
	ProperTypeFn    func(env latte.DefSource, ctx latte.Context, ty latte.S) bool
	BetaEqFn        func(term, sort latte.S) bool
	BetaDeltaEqFn   func(env latte.DefSource, a, b latte.S) bool
	HandleTermFn    func(env latte.DefSource, partial latte.DefCore, ctx latte.Context, body any) (*latte.TermDef, *latte.Diagnostic)
	HandleTheoremFn func(env latte.DefSource, partial latte.DefCore, ctx latte.Context, statement any) (*latte.TheoremDef, *latte.Diagnostic)
	HandleAxiomFn   func(env latte.DefSource, partial latte.DefCore, ctx latte.Context, statement any) (*latte.AxiomDef, *latte.Diagnostic)
	CheckProofFn    func(env latte.DefSource, params latte.Context, statement latte.S, method latte.ProofMethod, steps []any) (latte.S, *latte.Diagnostic)
}

// Structural returns a kernel with all structural defaults.
func Structural() *Fake { return &Fake{} }

var _ latte.Kernel = (*Fake)(nil)

func (f *Fake) Parse(env latte.DefSource, surface any) (latte.S, *latte.Diagnostic) {
	if f.ParseFn != nil {
		return f.ParseFn(env, surface)
	}
	return StructuralParse(surface)
}

func (f *Fake) TypeOf(env latte.DefSource, ctx latte.Context, term latte.S) (latte.S, *latte.Diagnostic) {
	if f.TypeOfFn != nil {
		return f.TypeOfFn(env, ctx, term)
	}
	// Syntax-only mode: everything is classified by the type sort.
	return latte.SortType, nil
}

func (f *Fake) ProperType(env latte.DefSource, ctx latte.Context, ty latte.S) bool {
	if f.ProperTypeFn != nil {
		return f.ProperTypeFn(env, ctx, ty)
	}
	return true
}

func (f *Fake) BetaEq(term, sort latte.S) bool {
	if f.BetaEqFn != nil {
		return f.BetaEqFn(term, sort)
	}
	return latte.EqualS(term, sort)
}

func (f *Fake) BetaDeltaEq(env latte.DefSource, a, b latte.S) bool {
	if f.BetaDeltaEqFn != nil {
		return f.BetaDeltaEqFn(env, a, b)
	}
	return latte.EqualS(a, b)
}

func (f *Fake) HandleTerm(env latte.DefSource, partial latte.DefCore, ctx latte.Context, body any) (*latte.TermDef, *latte.Diagnostic) {
	if f.HandleTermFn != nil {
		return f.HandleTermFn(env, partial, ctx, body)
	}
	core, diag := StructuralParse(body)
	if diag != nil {
		return nil, diag
	}
	ty, diag := f.TypeOf(env, ctx, core)
	if diag != nil {
		return nil, diag
	}
	return &latte.TermDef{DefCore: partial, Body: core, Type: ty}, nil
}

func (f *Fake) HandleTheorem(env latte.DefSource, partial latte.DefCore, ctx latte.Context, statement any) (*latte.TheoremDef, *latte.Diagnostic) {
	if f.HandleTheoremFn != nil {
		return f.HandleTheoremFn(env, partial, ctx, statement)
	}
	core, diag := StructuralParse(statement)
	if diag != nil {
		return nil, diag
	}
	return &latte.TheoremDef{DefCore: partial, Statement: core}, nil
}

func (f *Fake) HandleAxiom(env latte.DefSource, partial latte.DefCore, ctx latte.Context, statement any) (*latte.AxiomDef, *latte.Diagnostic) {
	if f.HandleAxiomFn != nil {
		return f.HandleAxiomFn(env, partial, ctx, statement)
	}
	core, diag := StructuralParse(statement)
	if diag != nil {
		return nil, diag
	}
	return &latte.AxiomDef{DefCore: partial, Statement: core}, nil
}

func (f *Fake) CheckProof(env latte.DefSource, params latte.Context, statement latte.S, method latte.ProofMethod, steps []any) (latte.S, *latte.Diagnostic) {
	if f.CheckProofFn != nil {
		return f.CheckProofFn(env, params, statement, method, steps)
	}
	switch method {
	case latte.MethodTerm:
		if len(steps) != 1 {
			return nil, &latte.Diagnostic{Kind: "proof-error", Msg: "direct proof takes exactly one term"}
		}
		return StructuralParse(steps[0])
	default:
		if len(steps) == 0 {
			return nil, &latte.Diagnostic{Kind: "proof-error", Msg: "empty proof script"}
		}
		last, ok := steps[len(steps)-1].([]any)
		if !ok || len(last) != 2 || !latte.Tagged(last, "qed") {
			return nil, &latte.Diagnostic{Kind: "proof-error", Msg: "script must end with (qed term)", Data: steps[len(steps)-1]}
		}
		return StructuralParse(last[1])
	}
}

// StructuralParse is the syntax-only surface-to-core pass shared by the
// structural defaults: lists pass through unchanged, the symbols type and
// kind become the sorts, other atoms wrap as ("id" atom) / ("lit" atom).
func StructuralParse(surface any) (latte.S, *latte.Diagnostic) {
	switch v := surface.(type) {
	case []any:
		return v, nil
	case latte.Sym:
		switch v {
		case "type":
			return latte.SortType, nil
		case "kind":
			return latte.SortKind, nil
		default:
			return latte.L("id", v), nil
		}
	case nil:
		return nil, &latte.Diagnostic{Kind: "parse-error", Msg: "nil surface expression"}
	default:
		return latte.L("lit", v), nil
	}
}
