// reader.go — textual front door: characters → S datums
//
// WHAT THIS MODULE DOES
// =====================
// The registration pipeline itself consumes structured S values (sexpr.go).
// The CLI and the batch loader, however, start from text, so this file
// implements a small datum reader:
//
//	(definition id "identity" [[x A]] x)
//	(proof thm term (lambda [x A] x))
//
// Grammar: lists in `(...)` or `[...]` (both read as S), symbols, double-quoted
// strings with backslash escapes, decimal integers, and `;` line comments.
//
// This is NOT the kernel's surface-to-core parser. The reader never interprets
// anything; it only builds nested lists. Elaboration of surface expressions
// into core terms remains the kernel's job (kernel.go).
//
// ERRORS
// ======
// All failures are `*ReadError{Line, Col, Msg}` with 1-based line and 0-based
// column, matching the coordinate convention of the rest of the pipeline's
// caret renderer (errors.go). An EOF inside an open list or string is a
// distinguished *incomplete* error; the REPL uses `IsIncomplete` to decide
// whether to prompt for a continuation line instead of reporting a failure.
package latte

import (
	"fmt"
	"strconv"
	"strings"
)

// ReadError is a reader failure at a source position.
type ReadError struct {
	Line int // 1-based
	Col  int // 0-based
	Msg  string

	incomplete bool
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read error at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// IsIncomplete reports whether err is a reader error caused by input that
// ended mid-datum (unclosed list or string). Such input may become valid once
// more text arrives.
func IsIncomplete(err error) bool {
	re, ok := err.(*ReadError)
	return ok && re.incomplete
}

// ReadString reads exactly one datum from src. Trailing whitespace and
// comments are permitted; any further datum is an error.
func ReadString(src string) (any, error) {
	r := &reader{src: src, line: 1}
	v, err := r.datum()
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	if !r.eof() {
		return nil, r.errf(false, "unexpected trailing input")
	}
	return v, nil
}

// ReadAll reads every datum in src, in order. Used by the batch loader.
func ReadAll(src string) ([]any, error) {
	r := &reader{src: src, line: 1}
	var out []any
	for {
		r.skipSpace()
		if r.eof() {
			return out, nil
		}
		v, err := r.datum()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

/* ===========================
   PRIVATE: the reader
   =========================== */

type reader struct {
	src  string
	pos  int
	line int // 1-based
	bol  int // byte offset of start of current line
}

func (r *reader) eof() bool  { return r.pos >= len(r.src) }
func (r *reader) peek() byte { return r.src[r.pos] }

func (r *reader) next() byte {
	c := r.src[r.pos]
	r.pos++
	if c == '\n' {
		r.line++
		r.bol = r.pos
	}
	return c
}

func (r *reader) col() int { return r.pos - r.bol }

func (r *reader) errf(incomplete bool, format string, args ...any) error {
	return &ReadError{Line: r.line, Col: r.col(), Msg: fmt.Sprintf(format, args...), incomplete: incomplete}
}

func (r *reader) skipSpace() {
	for !r.eof() {
		c := r.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == ',':
			r.next()
		case c == ';':
			for !r.eof() && r.peek() != '\n' {
				r.next()
			}
		default:
			return
		}
	}
}

func (r *reader) datum() (any, error) {
	r.skipSpace()
	if r.eof() {
		return nil, r.errf(true, "unexpected end of input")
	}
	switch c := r.peek(); c {
	case '(':
		r.next()
		return r.list(')')
	case '[':
		r.next()
		return r.list(']')
	case ')', ']':
		return nil, r.errf(false, "unexpected %q", string(c))
	case '"':
		return r.str()
	default:
		return r.atom()
	}
}

func (r *reader) list(close byte) (any, error) {
	items := S{}
	for {
		r.skipSpace()
		if r.eof() {
			return nil, r.errf(true, "unclosed list, expected %q", string(close))
		}
		c := r.peek()
		if c == close {
			r.next()
			return items, nil
		}
		if c == ')' || c == ']' {
			return nil, r.errf(false, "mismatched %q, expected %q", string(c), string(close))
		}
		v, err := r.datum()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

func (r *reader) str() (any, error) {
	r.next() // opening quote
	var b strings.Builder
	for {
		if r.eof() {
			return nil, r.errf(true, "unclosed string literal")
		}
		c := r.next()
		switch c {
		case '"':
			return b.String(), nil
		case '\\':
			if r.eof() {
				return nil, r.errf(true, "unclosed string literal")
			}
			e := r.next()
			switch e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '"':
				b.WriteByte(e)
			default:
				return nil, r.errf(false, "unknown escape \\%s", string(e))
			}
		default:
			b.WriteByte(c)
		}
	}
}

func isDelim(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', ',', '(', ')', '[', ']', '"', ';':
		return true
	}
	return false
}

func (r *reader) atom() (any, error) {
	start := r.pos
	for !r.eof() && !isDelim(r.peek()) {
		r.next()
	}
	tok := r.src[start:r.pos]
	if tok == "" {
		return nil, r.errf(false, "empty atom")
	}
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return n, nil
	}
	return Sym(tok), nil
}
