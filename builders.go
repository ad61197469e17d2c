// builders.go — pure data builders for binding forms and proof steps
//
// These construct the tagged structural values later consumed by the kernel's
// parser and proof elaborator. No evaluation, no validation: a builder only
// packages its arguments. Shapes match the surface the reader produces, so
// programmatic and textual input are interchangeable.
package latte

// Pair builds one [var type] binder pair.
func Pair(v Sym, ty any) S { return S{v, ty} }

// Lambda builds an abstraction: (lambda bindings body).
func Lambda(bindings S, body any) S { return L("lambda", bindings, body) }

// Forall builds a dependent product: (forall bindings body).
func Forall(bindings S, body any) S { return L("forall", bindings, body) }

// Assume builds an assumption block proof step: (assume bindings step...).
func Assume(bindings S, steps ...any) S {
	return append(L("assume", bindings), steps...)
}

// Have builds an intermediate-fact proof step: (have name type by).
func Have(name Sym, ty, by any) S { return L("have", name, ty, by) }

// Qed builds the closing proof step naming the synthesized term:
// (qed term).
func Qed(term any) S { return L("qed", term) }
