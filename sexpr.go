// sexpr.go — surface datum model for the LaTTe pipeline
//
// WHAT THIS MODULE DOES
// =====================
// Every piece of surface input this layer handles — definitional forms, binder
// vectors, proof payloads, and the core terms the kernel hands back — travels
// as an S-expression value. The encoding is deliberately tiny:
//
//	S            = []any           // a list: (a b c) or [a b]
//	Sym          = symbol atom     // identifiers and form heads
//	string       = string literal  // doc strings
//	int64        = integer literal
//
// Tagged structural values (what the binder builders in builders.go produce,
// and what the kernel consumes) are lists whose first element is a Sym tag:
//
//	("lambda" bindings body)
//	("forall" bindings body)
//	("assume" bindings step...)
//	("have"   name type by)
//	("sort"   "type"|"kind")
//
// This file provides the constructor `L`, structural equality (`EqualS`), the
// symbol predicate used by the validators, and a printer (`FmtS`) used by
// errors, logs, and the REPL. No evaluation happens here.
//
// DEPENDENCIES
// ============
// None. reader.go produces these values from text; everything downstream
// consumes them.
package latte

import (
	"fmt"
	"strconv"
	"strings"
)

// S is the universal surface datum: a list of atoms and sublists.
type S = []any

// Sym is an identifier-shaped atom, distinct from string literals.
type Sym string

// L builds a tagged list value: L("have", n, t, b) == ("have" n t b).
func L(tag Sym, parts ...any) S { return append([]any{tag}, parts...) }

// AsSym reports whether v is identifier-shaped and returns it.
func AsSym(v any) (Sym, bool) {
	s, ok := v.(Sym)
	return s, ok
}

// AsList reports whether v is a sequence and returns it.
// Both S and a raw []any qualify (they are the same type).
func AsList(v any) (S, bool) {
	l, ok := v.([]any)
	return l, ok
}

// EqualS is deep structural equality over S values and their atoms.
func EqualS(a, b S) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalNode(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalNode(x, y any) bool {
	switch xv := x.(type) {
	case []any:
		yv, ok := y.([]any)
		return ok && EqualS(xv, yv)
	case Sym:
		yv, ok := y.(Sym)
		return ok && xv == yv
	case string:
		yv, ok := y.(string)
		return ok && xv == yv
	case int64:
		yv, ok := y.(int64)
		return ok && xv == yv
	case bool:
		yv, ok := y.(bool)
		return ok && xv == yv
	case nil:
		return y == nil
	default:
		return x == y
	}
}

// Tagged reports whether v is a list headed by the given tag.
func Tagged(v any, tag Sym) bool {
	l, ok := AsList(v)
	if !ok || len(l) == 0 {
		return false
	}
	head, ok := AsSym(l[0])
	return ok && head == tag
}

// FmtS renders a datum back to reader syntax. Symbols print bare, strings
// quoted, lists parenthesized. The output round-trips through ReadString for
// every value the reader can produce.
func FmtS(v any) string {
	var b strings.Builder
	writeNode(&b, v)
	return b.String()
}

func writeNode(b *strings.Builder, v any) {
	switch n := v.(type) {
	case []any:
		b.WriteByte('(')
		for i, c := range n {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeNode(b, c)
		}
		b.WriteByte(')')
	case Sym:
		b.WriteString(string(n))
	case string:
		b.WriteString(strconv.Quote(n))
	case int64:
		b.WriteString(strconv.FormatInt(n, 10))
	case nil:
		b.WriteString("nil")
	default:
		fmt.Fprintf(b, "%v", n)
	}
}
