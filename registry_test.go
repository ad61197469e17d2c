package latte

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func termDef(name Sym) *TermDef {
	return &TermDef{
		DefCore: DefCore{Name: name, Doc: DefaultDoc, RawParams: S{}},
		Body:    L("id", Sym("x")),
		Type:    L("id", Sym("A")),
	}
}

func thmDef(name Sym) *TheoremDef {
	return &TheoremDef{
		DefCore:   DefCore{Name: name, Doc: DefaultDoc, RawParams: S{}},
		Statement: L("id", Sym("A")),
	}
}

func Test_Registry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 0, r.Len())

	redefined := r.Register(termDef("id"))
	assert.False(t, redefined)
	assert.True(t, r.Has("id"))
	assert.Equal(t, 1, r.Len())

	d, ok := r.Lookup("id")
	require.True(t, ok)
	assert.Equal(t, KindTerm, d.Kind())

	_, ok = r.Lookup("ghost")
	assert.False(t, ok)
}

func Test_Registry_RedefinitionOverwrites(t *testing.T) {
	r := NewRegistry()
	r.Register(termDef("x"))

	redefined := r.Register(thmDef("x"))
	assert.True(t, redefined)
	assert.Equal(t, 1, r.Len())

	d, ok := r.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, KindTheorem, d.Kind(), "registry must hold the new definition")
}

func Test_Registry_CommitProof_Transition(t *testing.T) {
	r := NewRegistry()
	r.Register(thmDef("thm"))

	proof := L("id", Sym("p"))
	thm, ok := r.commitProof("thm", proof)
	require.True(t, ok)
	assert.Equal(t, Proved, thm.State())

	got, present := thm.Proof()
	require.True(t, present)
	assert.True(t, EqualS(proof, got))

	// Re-proving overwrites, stays Proved.
	again := L("id", Sym("q"))
	_, ok = r.commitProof("thm", again)
	require.True(t, ok)
	got, _ = thm.Proof()
	assert.True(t, EqualS(again, got))
}

func Test_Registry_CommitProof_OnlyTheorems(t *testing.T) {
	r := NewRegistry()
	r.Register(termDef("d"))

	_, ok := r.commitProof("d", L("id", Sym("p")))
	assert.False(t, ok)
	_, ok = r.commitProof("missing", L("id", Sym("p")))
	assert.False(t, ok)
}

func Test_Registry_View_IsReadOnlyWindow(t *testing.T) {
	r := NewRegistry()
	v := r.View()

	assert.False(t, v.Registered("a"))
	r.Register(termDef("a"))
	assert.True(t, v.Registered("a"), "view reads live registry state")

	d, ok := v.Fetch("a")
	require.True(t, ok)
	assert.Equal(t, Sym("a"), d.Core().Name)
}

func Test_TheoremDef_StartsDeclared(t *testing.T) {
	thm := thmDef("t")
	assert.Equal(t, Declared, thm.State())
	_, present := thm.Proof()
	assert.False(t, present)
	assert.Equal(t, "declared", thm.State().String())
	assert.Equal(t, "proved", Proved.String())
}
