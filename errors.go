// errors.go — pipeline error taxonomy and caret-snippet rendering
//
// What this file does
// -------------------
// Two things. First, it defines every structured failure the registration
// pipeline can produce:
//
//	ArityError            wrong number of positional elements in a form
//	ShapeError            name/doc/params element of the wrong shape
//	BindingShapeError     a binder is not a 2-element pair
//	BindingVariableError  a binder's first element is not an identifier
//	BindingTypeError      a binder's type is not proper in the prefix context
//	KernelDefinitionError kernel rejected a definition (wraps Diagnostic)
//	UndefinedTheoremError proof attempt against an unregistered theorem
//	ProofFailure          kernel rejected a proof (wraps Diagnostic)
//
// Each carries enough data to reconstruct the cause without re-running the
// operation: offending name, expected vs. actual arity, the rejected datum,
// and the kernel's diagnostic when one exists. All of them are fail-fast —
// whenever one is returned, the registry has not been touched.
//
// Second, it renders reader failures as readable caret snippets. The entry
// point is `WrapErrorWithSource`, which recognizes `*ReadError` (reader.go),
// formats it, and returns a new error containing a multi-line snippet:
//
//	READ ERROR at 3:12: unclosed list, expected ")"
//
//	   2 | (definition id
//	   3 |   [[x A]
//	       |         ^
//	   4 |   x)
//
// Any other error is returned unchanged.
package latte

import (
	"fmt"
	"strings"
)

// Diagnostic is a structured failure value propagated from the kernel: a
// machine-readable kind, a human-readable message, and optional context data
// (usually the offending term). Diagnostics are never silently dropped; they
// surface wrapped in KernelDefinitionError or ProofFailure, or inside a
// TrialResult.
type Diagnostic struct {
	Kind string
	Msg  string
	Data any
}

func (d *Diagnostic) Error() string {
	if d.Data == nil {
		return fmt.Sprintf("%s: %s", d.Kind, d.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Msg, FmtS(d.Data))
}

// ArityError reports a definitional or proof form with the wrong number of
// positional elements.
type ArityError struct {
	Form     Sym // head of the offending form
	Min, Max int
	Got      int
}

func (e *ArityError) Error() string {
	if e.Max < 0 {
		return fmt.Sprintf("%s: wrong arity: expected at least %d elements, got %d", e.Form, e.Min, e.Got)
	}
	return fmt.Sprintf("%s: wrong arity: expected %d to %d elements, got %d", e.Form, e.Min, e.Max, e.Got)
}

// ShapeError reports a well-sized form whose name, doc, or params element has
// the wrong shape.
type ShapeError struct {
	Form  Sym
	Field string // "name", "doc", or "params"
	Want  string
	Got   any
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s must be %s, got %s", e.Form, e.Field, e.Want, FmtS(e.Got))
}

// BindingShapeError reports a binder that is not a 2-element pair.
type BindingShapeError struct {
	Index int // 0-based position in the binder sequence
	Got   any
}

func (e *BindingShapeError) Error() string {
	return fmt.Sprintf("binder %d: expected a [var type] pair, got %s", e.Index, FmtS(e.Got))
}

// BindingVariableError reports a binder whose variable slot is not an
// identifier.
type BindingVariableError struct {
	Index int
	Got   any
}

func (e *BindingVariableError) Error() string {
	return fmt.Sprintf("binder %d: variable must be an identifier, got %s", e.Index, FmtS(e.Got))
}

// BindingTypeError reports a binder whose type expression the kernel did not
// accept as a proper type in the context built so far.
type BindingTypeError struct {
	Index int
	Var   Sym
	Type  any   // the rejected expression (surface or core, whichever failed)
	Cause error // parse failure, when the surface expression did not parse
}

func (e *BindingTypeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("binder %d (%s): %v", e.Index, e.Var, e.Cause)
	}
	return fmt.Sprintf("binder %d (%s): not a proper type: %s", e.Index, e.Var, FmtS(e.Type))
}

func (e *BindingTypeError) Unwrap() error { return e.Cause }

// KernelDefinitionError wraps a kernel rejection of a term definition or a
// theorem/axiom declaration. The registry is never mutated when one of these
// is returned.
type KernelDefinitionError struct {
	Kind DefKind
	Name Sym
	Diag *Diagnostic
}

func (e *KernelDefinitionError) Error() string {
	return fmt.Sprintf("%s %s rejected by kernel: %v", e.Kind, e.Name, e.Diag)
}

func (e *KernelDefinitionError) Unwrap() error { return e.Diag }

// UndefinedTheoremError reports a proof attempt against a name absent from
// the registry (or present but not a theorem).
type UndefinedTheoremError struct {
	Name Sym
}

func (e *UndefinedTheoremError) Error() string {
	return fmt.Sprintf("no such theorem: %s", e.Name)
}

// ProofFailure wraps a kernel rejection of a proof on the commit path.
type ProofFailure struct {
	Theorem Sym
	Diag    *Diagnostic
}

func (e *ProofFailure) Error() string {
	return fmt.Sprintf("proof of %s failed: %v", e.Theorem, e.Diag)
}

func (e *ProofFailure) Unwrap() error { return e.Diag }

/* ===========================
   Caret-snippet rendering
   =========================== */

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source. It recognizes reader errors and leaves
// other errors untouched.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source label (file name,
// REPL line id) included in the header.
func WrapErrorWithName(err error, srcName, src string) error {
	re, ok := err.(*ReadError)
	if !ok {
		return err
	}
	// Reader Col is 0-based; render as 1-based.
	return fmt.Errorf("%s", prettySnippet(src, "READ ERROR", srcName, re.Line, re.Col+1, re.Msg))
}

// prettySnippet builds a Python-like snippet with a header and a caret. It
// shows at most one previous and one next line when available. Coordinates
// are treated as 1-based and clamped to the source bounds.
func prettySnippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
