// kernel.go — contract of the external type-theory kernel
//
// OVERVIEW
// ========
// The kernel — surface-to-core elaboration, type inference, beta/delta
// normalization, equivalence checking, and proof-script elaboration — is an
// external collaborator. This layer never looks inside it; everything it
// needs is the Kernel interface below, a direct transliteration of the
// consumed contract:
//
//	parse, type-of, proper-type?, beta-eq?, beta-delta-eq?,
//	handle-term-definition, handle-thm-declaration,
//	handle-axiom-declaration, check-proof
//
// The contract's `registered-definition?` and `fetch-definition` operations
// are the two methods of DefSource: the read-only registry view a Session
// hands to every kernel call. The kernel can resolve names through it but can
// never mutate the registry.
//
// CONVENTIONS
// ===========
// Core terms are S values in whatever tagged encoding the kernel chooses;
// this layer treats them as opaque apart from the two distinguished sorts
// below. Surface expressions are arbitrary datums (a bare Sym is a valid
// surface expression, so surface positions are typed `any`). Kernel failures
// are *Diagnostic values; a nil Diagnostic means success.
package latte

// DefSource is the read-only registry view the kernel receives. It is the
// only channel through which kernel-side name resolution sees this layer's
// definitions.
type DefSource interface {
	// Registered reports whether name is bound to a definition.
	Registered(name Sym) bool
	// Fetch returns the definition bound to name.
	Fetch(name Sym) (Definition, bool)
}

// The two-level universe structure: the ordinary "type" sort and the maximal
// "kind" sort above it, in the core encoding shared with the kernel.
var (
	SortType = L("sort", Sym("type"))
	SortKind = L("sort", Sym("kind"))
)

// KindSentinel is what the `term` query returns in place of any core term
// beta-equivalent to the maximal sort.
const KindSentinel = Sym("kind")

// ProofMethod selects how a proof payload is interpreted.
type ProofMethod int

const (
	// MethodTerm: the payload is a single core-term candidate.
	MethodTerm ProofMethod = iota
	// MethodScript: the payload is an ordered sequence of proof steps,
	// opaque here, elaborated by the kernel into a direct term.
	MethodScript
)

func (m ProofMethod) String() string {
	if m == MethodScript {
		return "script"
	}
	return "term"
}

// ParseProofMethod maps the surface method symbol to a ProofMethod.
func ParseProofMethod(v any) (ProofMethod, bool) {
	s, ok := AsSym(v)
	if !ok {
		return 0, false
	}
	switch s {
	case "term":
		return MethodTerm, true
	case "script":
		return MethodScript, true
	default:
		return 0, false
	}
}

// Kernel is the external collaborator behind the registration pipeline. All
// semantics — what parses, what types, what is equivalent — belong to the
// implementation; this layer only sequences the calls and owns the registry.
type Kernel interface {
	// Parse elaborates a surface expression into a core term.
	Parse(env DefSource, surface any) (S, *Diagnostic)

	// TypeOf infers the type of a core term in the given context.
	TypeOf(env DefSource, ctx Context, term S) (S, *Diagnostic)

	// ProperType reports whether ty classifies terms (is well-sorted) in the
	// given context.
	ProperType(env DefSource, ctx Context, ty S) bool

	// BetaEq reports whether term is beta-equivalent to the given sort.
	BetaEq(term S, sort S) bool

	// BetaDeltaEq reports whether two core terms are definitionally equal
	// (beta reduction plus delta unfolding of registered names).
	BetaDeltaEq(env DefSource, a, b S) bool

	// HandleTerm completes a term definition: elaborates body under ctx,
	// infers its type, and returns the finished definition. The partial
	// record carries name, doc, validated params, and presentation metadata.
	HandleTerm(env DefSource, partial DefCore, ctx Context, body any) (*TermDef, *Diagnostic)

	// HandleTheorem completes a theorem declaration from its statement.
	// Declaration only: the result never carries a proof.
	HandleTheorem(env DefSource, partial DefCore, ctx Context, statement any) (*TheoremDef, *Diagnostic)

	// HandleAxiom completes an axiom declaration from its statement.
	HandleAxiom(env DefSource, partial DefCore, ctx Context, statement any) (*AxiomDef, *Diagnostic)

	// CheckProof checks a proof attempt against a declared statement and,
	// on success, returns the (possibly script-synthesized) proof term.
	CheckProof(env DefSource, params Context, statement S, method ProofMethod, steps []any) (S, *Diagnostic)
}
