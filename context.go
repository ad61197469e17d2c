// context.go — typed binding contexts and the fail-fast context builder
//
// A Context is an ordered sequence of (variable, core-type) bindings with
// positional scoping: later types may reference earlier variables. Building
// one is left-to-right and fail-fast — each binder's type must parse and be
// accepted by the kernel as proper *in the prefix built so far* before the
// binding is appended, so no partial context ever escapes to a caller.
//
// Variable uniqueness and shadowing are deliberately not checked here; that
// policy belongs to the kernel's resolution rules.
package latte

// Binder is one (variable, core-type) binding.
type Binder struct {
	Var  Sym
	Type S
}

// Context is an ordered binding sequence, innermost binder last.
type Context []Binder

// Lookup returns the type of the rightmost binding of name.
func (c Context) Lookup(name Sym) (S, bool) {
	for i := len(c) - 1; i >= 0; i-- {
		if c[i].Var == name {
			return c[i].Type, true
		}
	}
	return nil, false
}

// Vars returns the bound variables in binding order.
func (c Context) Vars() []Sym {
	out := make([]Sym, len(c))
	for i, b := range c {
		out[i] = b.Var
	}
	return out
}

// BuildContext turns a raw binder sequence into a validated Context. Each
// raw binder must be a 2-element [var type] pair whose variable slot is an
// identifier and whose type expression the kernel parses and accepts as a
// proper type under the bindings accumulated so far. The first failure
// aborts the whole construction.
func BuildContext(k Kernel, env DefSource, raw S) (Context, error) {
	ctx := Context{}
	for i, rb := range raw {
		pair, ok := AsList(rb)
		if !ok || len(pair) != 2 {
			return nil, &BindingShapeError{Index: i, Got: rb}
		}
		v, ok := AsSym(pair[0])
		if !ok {
			return nil, &BindingVariableError{Index: i, Got: pair[0]}
		}
		ty, diag := k.Parse(env, pair[1])
		if diag != nil {
			return nil, &BindingTypeError{Index: i, Var: v, Type: pair[1], Cause: diag}
		}
		if !k.ProperType(env, ctx, ty) {
			return nil, &BindingTypeError{Index: i, Var: v, Type: pair[1]}
		}
		ctx = append(ctx, Binder{Var: v, Type: ty})
	}
	return ctx, nil
}
