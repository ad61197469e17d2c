// session.go — SINGLE PUBLIC API SURFACE for the registration pipeline
//
// OVERVIEW
// ========
// A Session owns the definition registry and drives every interaction with
// the kernel. It is the one place registry mutation happens, and the design
// assumes a single sequential caller (an interactive or batch load session);
// the registry's lock makes that assumption enforceable for concurrent
// hosts, it does not make the Session a concurrent API.
//
// Entry points:
//
//	Registration   DefineTerm, DeclareTheorem, DeclareAxiom
//	Proof          Proof (commit), TryProof (trial)
//	Queries        Term, TypeOf, TypeCheck, TermEq
//	Front door     EvalForm (dispatches a read surface form by head)
//
// REGISTRATION
// ============
// All three registration entry points take the 2–4 positional elements of
// their surface form and share one path: validate the form (validate.go),
// emit a non-fatal redefinition notice when the name is already bound
// (overwrite policy, not rejection), build the parameter context
// (context.go), delegate to the matching kernel handler, and only on success
// insert the finished Definition into the registry. Any failure aborts
// before mutation; there is no partial registration.
//
// Theorems register with no proof: declare-then-prove is a deliberate
// two-phase workflow, and the only Declared → Proved transition is a
// successful Proof call.
//
// PROOFS
// ======
// Proof and TryProof share one internal result-returning routine. They
// differ only at the boundary: Proof propagates failure as an error
// (UndefinedTheoremError, ProofFailure) and on success commits the checked
// term into the theorem; TryProof never mutates and never fails — both
// outcomes come back as a TrialResult value, which is what makes exploratory
// proof development cheap.
//
// QUERIES
// =======
// The four query operations are stateless: they consult the kernel under a
// freshly built context and never touch the registry beyond handing the
// kernel its read-only view.
//
// LOGGING
// =======
// Structured logging via log/slog. Each Session carries a UUID in its log
// attributes; redefinition notices are Warn records, so they are observable
// without being errors.
package latte

import (
	"log/slog"

	"github.com/google/uuid"
)

// Session orchestrates validation, context building, kernel calls, and
// registry mutation for one interactive or batch load session.
type Session struct {
	kernel Kernel
	reg    *Registry
	log    *slog.Logger
	id     string
}

// Option configures a Session.
type Option func(*Session)

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithRegistry makes the session operate on an existing registry instead of
// a fresh empty one.
func WithRegistry(r *Registry) Option {
	return func(s *Session) { s.reg = r }
}

// NewSession creates a session around the given kernel with an empty
// registry.
func NewSession(k Kernel, opts ...Option) *Session {
	s := &Session{
		kernel: k,
		reg:    NewRegistry(),
		log:    slog.Default(),
		id:     uuid.NewString(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("session", s.id)
	return s
}

// ID returns the session's log identity.
func (s *Session) ID() string { return s.id }

// Registry exposes the session's registry for inspection. Callers must not
// mutate it directly; registration and proof commitment are the mutation
// paths.
func (s *Session) Registry() *Registry { return s.reg }

/* ===========================
   Registration
   =========================== */

// DefineTerm registers a named term: (definition name [doc] [params] body).
// The kernel elaborates body under the parameter context and infers its
// type. On success the finished definition replaces any previous binding of
// the name.
func (s *Session) DefineTerm(args ...any) (*TermDef, error) {
	f, ctx, env, err := s.prepare("definition", args)
	if err != nil {
		return nil, err
	}
	d, diag := s.kernel.HandleTerm(env, s.partial(f, ctx), ctx, f.Body)
	if diag != nil {
		return nil, &KernelDefinitionError{Kind: KindTerm, Name: f.Name, Diag: diag}
	}
	s.commit(d)
	return d, nil
}

// DeclareTheorem registers a theorem statement:
// (defthm name [doc] [params] statement). Declaration only — the result has
// no proof until a later Proof call commits one.
func (s *Session) DeclareTheorem(args ...any) (*TheoremDef, error) {
	f, ctx, env, err := s.prepare("defthm", args)
	if err != nil {
		return nil, err
	}
	d, diag := s.kernel.HandleTheorem(env, s.partial(f, ctx), ctx, f.Body)
	if diag != nil {
		return nil, &KernelDefinitionError{Kind: KindTheorem, Name: f.Name, Diag: diag}
	}
	s.commit(d)
	return d, nil
}

// DeclareAxiom registers an axiom statement:
// (defaxiom name [doc] [params] statement). Axioms never carry proofs.
func (s *Session) DeclareAxiom(args ...any) (*AxiomDef, error) {
	f, ctx, env, err := s.prepare("defaxiom", args)
	if err != nil {
		return nil, err
	}
	d, diag := s.kernel.HandleAxiom(env, s.partial(f, ctx), ctx, f.Body)
	if diag != nil {
		return nil, &KernelDefinitionError{Kind: KindAxiom, Name: f.Name, Diag: diag}
	}
	s.commit(d)
	return d, nil
}

// prepare runs the shared front half of registration: form validation,
// redefinition notice, context building.
func (s *Session) prepare(head Sym, args []any) (DefForm, Context, DefSource, error) {
	f, err := SplitDefForm(head, args)
	if err != nil {
		return DefForm{}, nil, nil, err
	}
	if prev, ok := s.reg.Lookup(f.Name); ok {
		s.log.Warn("redefinition", "name", string(f.Name), "previous", prev.Kind().String())
	}
	env := s.reg.View()
	ctx, err := BuildContext(s.kernel, env, f.RawParams)
	if err != nil {
		return DefForm{}, nil, nil, err
	}
	return f, ctx, env, nil
}

func (s *Session) partial(f DefForm, ctx Context) DefCore {
	return DefCore{Name: f.Name, Doc: f.Doc, Params: ctx, RawParams: f.RawParams}
}

func (s *Session) commit(d Definition) {
	if s.reg.Register(d) {
		s.log.Debug("overwrote definition", "name", string(d.Core().Name))
		return
	}
	s.log.Debug("registered", "kind", d.Kind().String(), "name", string(d.Core().Name))
}

/* ===========================
   Proofs
   =========================== */

// TrialResult is the value-only outcome of TryProof: Ok(name) or
// Fail(message, name, diagnostic). Diag is nil when the failure happened
// before the kernel was consulted (unknown theorem).
type TrialResult struct {
	Theorem Sym
	OK      bool
	Msg     string
	Diag    *Diagnostic
}

// Proof checks a proof attempt against a previously declared theorem and,
// on success, commits the checked term as the theorem's proof. Failures —
// UndefinedTheoremError when the name is not a declared theorem,
// ProofFailure when the kernel rejects the attempt — leave the registry
// untouched. A second successful Proof overwrites the previous proof term;
// re-proving is allowed.
func (s *Session) Proof(name Sym, method ProofMethod, steps ...any) error {
	term, err := s.checkProof(name, method, steps)
	if err != nil {
		return err
	}
	if _, ok := s.reg.commitProof(name, term); !ok {
		// Lookup succeeded inside checkProof; a sequential caller cannot
		// get here.
		return &UndefinedTheoremError{Name: name}
	}
	s.log.Info("qed", "theorem", string(name), "method", method.String())
	return nil
}

// TryProof is Proof without the commit and without error propagation: the
// registry is never mutated, and both outcomes return as a TrialResult.
// A successful trial does not move the theorem to Proved.
func (s *Session) TryProof(name Sym, method ProofMethod, steps ...any) TrialResult {
	_, err := s.checkProof(name, method, steps)
	switch e := err.(type) {
	case nil:
		return TrialResult{Theorem: name, OK: true}
	case *ProofFailure:
		return TrialResult{Theorem: name, Msg: e.Diag.Msg, Diag: e.Diag}
	default:
		return TrialResult{Theorem: name, Msg: err.Error()}
	}
}

// checkProof is the shared result-returning routine under both proof entry
// points. It never mutates the registry.
func (s *Session) checkProof(name Sym, method ProofMethod, steps []any) (S, error) {
	d, ok := s.reg.Lookup(name)
	if !ok {
		return nil, &UndefinedTheoremError{Name: name}
	}
	thm, ok := d.(*TheoremDef)
	if !ok {
		return nil, &UndefinedTheoremError{Name: name}
	}
	term, diag := s.kernel.CheckProof(s.reg.View(), thm.Params, thm.Statement, method, steps)
	if diag != nil {
		return nil, &ProofFailure{Theorem: name, Diag: diag}
	}
	return term, nil
}

/* ===========================
   Queries
   =========================== */

// Term parses a surface expression, optionally under binder pairs, and
// returns the core term — or the distinguished KindSentinel when the term is
// beta-equivalent to the maximal sort.
func (s *Session) Term(binders S, expr any) (any, error) {
	term, _, err := s.parseUnder(binders, expr)
	if err != nil {
		return nil, err
	}
	if s.kernel.BetaEq(term, SortKind) {
		return KindSentinel, nil
	}
	return term, nil
}

// TypeOf parses a surface expression, optionally under binder pairs, and
// returns its kernel-inferred type.
func (s *Session) TypeOf(binders S, expr any) (S, error) {
	term, ctx, err := s.parseUnder(binders, expr)
	if err != nil {
		return nil, err
	}
	ty, diag := s.kernel.TypeOf(s.reg.View(), ctx, term)
	if diag != nil {
		return nil, diag
	}
	return ty, nil
}

// TypeCheck reports whether expr's inferred type is beta-delta-equivalent to
// the independently parsed expected type.
func (s *Session) TypeCheck(binders S, expr, expected any) (bool, error) {
	env := s.reg.View()
	ctx, err := BuildContext(s.kernel, env, binders)
	if err != nil {
		return false, err
	}
	term, diag := s.kernel.Parse(env, expr)
	if diag != nil {
		return false, diag
	}
	ty, diag := s.kernel.TypeOf(env, ctx, term)
	if diag != nil {
		return false, diag
	}
	want, diag := s.kernel.Parse(env, expected)
	if diag != nil {
		return false, diag
	}
	return s.kernel.BetaDeltaEq(env, ty, want), nil
}

// TermEq reports whether two context-free surface expressions parse to
// beta-delta-equivalent core terms. Symmetric by the kernel's contract.
func (s *Session) TermEq(a, b any) (bool, error) {
	env := s.reg.View()
	ta, diag := s.kernel.Parse(env, a)
	if diag != nil {
		return false, diag
	}
	tb, diag := s.kernel.Parse(env, b)
	if diag != nil {
		return false, diag
	}
	return s.kernel.BetaDeltaEq(env, ta, tb), nil
}

func (s *Session) parseUnder(binders S, expr any) (S, Context, error) {
	env := s.reg.View()
	ctx, err := BuildContext(s.kernel, env, binders)
	if err != nil {
		return nil, nil, err
	}
	term, diag := s.kernel.Parse(env, expr)
	if diag != nil {
		return nil, nil, diag
	}
	return term, ctx, nil
}

/* ===========================
   Surface-form dispatch
   =========================== */

// EvalForm dispatches one read surface form by its head symbol and returns a
// result datum:
//
//	(definition n ...)   → (defined term n)
//	(defthm n ...)       → (declared theorem n)
//	(defaxiom n ...)     → (declared axiom n)
//	(proof n m steps...) → (qed n)
//	(try-proof n m ...)  → (ok n) | (failed n "msg")
//	(term [b...] e)          → core term | kind
//	(type-of [b...] e)       → type
//	(type-check? [b...] e t) → true | false
//	(term= a b)              → true | false
//
// Unknown heads and malformed proof invocations fail with ShapeError or
// ArityError; everything else propagates the entry point's own errors.
func (s *Session) EvalForm(form any) (any, error) {
	l, ok := AsList(form)
	if !ok || len(l) == 0 {
		return nil, &ShapeError{Form: "eval", Field: "form", Want: "a non-empty list", Got: form}
	}
	head, ok := AsSym(l[0])
	if !ok {
		return nil, &ShapeError{Form: "eval", Field: "head", Want: "an identifier", Got: l[0]}
	}
	args := l[1:]

	switch head {
	case "definition":
		d, err := s.DefineTerm(args...)
		if err != nil {
			return nil, err
		}
		return L("defined", Sym("term"), d.Name), nil
	case "defthm":
		d, err := s.DeclareTheorem(args...)
		if err != nil {
			return nil, err
		}
		return L("declared", Sym("theorem"), d.Name), nil
	case "defaxiom":
		d, err := s.DeclareAxiom(args...)
		if err != nil {
			return nil, err
		}
		return L("declared", Sym("axiom"), d.Name), nil
	case "proof":
		name, method, steps, err := splitProofForm(head, args)
		if err != nil {
			return nil, err
		}
		if err := s.Proof(name, method, steps...); err != nil {
			return nil, err
		}
		return L("qed", name), nil
	case "try-proof":
		name, method, steps, err := splitProofForm(head, args)
		if err != nil {
			return nil, err
		}
		res := s.TryProof(name, method, steps...)
		if res.OK {
			return L("ok", res.Theorem), nil
		}
		return L("failed", res.Theorem, res.Msg), nil
	case "term":
		binders, expr, err := splitQueryForm(head, args, 0)
		if err != nil {
			return nil, err
		}
		return s.Term(binders, expr[0])
	case "type-of":
		binders, expr, err := splitQueryForm(head, args, 0)
		if err != nil {
			return nil, err
		}
		return s.TypeOf(binders, expr[0])
	case "type-check?":
		binders, expr, err := splitQueryForm(head, args, 1)
		if err != nil {
			return nil, err
		}
		return s.TypeCheck(binders, expr[0], expr[1])
	case "term=":
		if len(args) != 2 {
			return nil, &ArityError{Form: head, Min: 2, Max: 2, Got: len(args)}
		}
		return s.TermEq(args[0], args[1])
	default:
		return nil, &ShapeError{Form: head, Field: "head", Want: "a known form", Got: l[0]}
	}
}

// splitProofForm decomposes (name method steps...). Direct-term proofs take
// exactly one payload element; scripts take one or more steps.
func splitProofForm(head Sym, args []any) (Sym, ProofMethod, []any, error) {
	if len(args) < 3 {
		return "", 0, nil, &ArityError{Form: head, Min: 3, Max: -1, Got: len(args)}
	}
	name, ok := AsSym(args[0])
	if !ok {
		return "", 0, nil, &ShapeError{Form: head, Field: "name", Want: "an identifier", Got: args[0]}
	}
	method, ok := ParseProofMethod(args[1])
	if !ok {
		return "", 0, nil, &ShapeError{Form: head, Field: "method", Want: "term or script", Got: args[1]}
	}
	steps := args[2:]
	if method == MethodTerm && len(steps) != 1 {
		return "", 0, nil, &ArityError{Form: head, Min: 3, Max: 3, Got: len(args)}
	}
	return name, method, steps, nil
}

// splitQueryForm peels an optional leading binder sequence off a query form
// and checks that exactly 1+extra expressions remain.
func splitQueryForm(head Sym, args []any, extra int) (S, []any, error) {
	want := 1 + extra
	var binders S
	if len(args) == want+1 {
		b, ok := AsList(args[0])
		if !ok {
			return nil, nil, &ShapeError{Form: head, Field: "params", Want: "a binder sequence", Got: args[0]}
		}
		binders, args = b, args[1:]
	}
	if len(args) != want {
		return nil, nil, &ArityError{Form: head, Min: want, Max: want + 1, Got: len(args)}
	}
	return binders, args, nil
}
