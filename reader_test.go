package latte

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func read(t *testing.T, src string) any {
	t.Helper()
	v, err := ReadString(src)
	require.NoError(t, err, "source: %s", src)
	return v
}

func Test_Reader_Atoms(t *testing.T) {
	assert.Equal(t, Sym("x"), read(t, "x"))
	assert.Equal(t, Sym("type-check?"), read(t, "type-check?"))
	assert.Equal(t, Sym("term="), read(t, "term="))
	assert.Equal(t, int64(-42), read(t, "-42"))
	assert.Equal(t, "a \"b\"\n", read(t, `"a \"b\"\n"`))
}

func Test_Reader_Lists(t *testing.T) {
	v := read(t, `(definition id "identity" [[x A]] x)`)
	want := S{Sym("definition"), Sym("id"), "identity", S{S{Sym("x"), Sym("A")}}, Sym("x")}
	require.IsType(t, S{}, v)
	assert.True(t, EqualS(want, v.(S)), "got %s", FmtS(v))
}

func Test_Reader_CommentsAndCommas(t *testing.T) {
	v := read(t, "(a, b ; trailing comment\n c)")
	assert.True(t, EqualS(S{Sym("a"), Sym("b"), Sym("c")}, v.(S)))
}

func Test_Reader_ReadAll(t *testing.T) {
	forms, err := ReadAll("(a) (b)\n; done\n(c 1)")
	require.NoError(t, err)
	require.Len(t, forms, 3)
	assert.True(t, EqualS(S{Sym("c"), int64(1)}, forms[2].(S)))
}

func Test_Reader_Incomplete(t *testing.T) {
	for _, src := range []string{"(a b", "[x", `"open`, "(a (b [c"} {
		_, err := ReadString(src)
		require.Error(t, err, "source: %s", src)
		assert.True(t, IsIncomplete(err), "want incomplete for %q, got %v", src, err)
	}
}

func Test_Reader_HardErrors_NotIncomplete(t *testing.T) {
	for _, src := range []string{"(a])", ")", "(a) b", `"\q"`} {
		_, err := ReadString(src)
		require.Error(t, err, "source: %s", src)
		assert.False(t, IsIncomplete(err), "want hard error for %q", src)
	}
}

func Test_Reader_ErrorPosition(t *testing.T) {
	_, err := ReadString("(a\n b ])")
	var re *ReadError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 2, re.Line)
}

func Test_WrapErrorWithSource_Snippet(t *testing.T) {
	src := "(a\n b ])"
	_, err := ReadString(src)
	require.Error(t, err)

	wrapped := WrapErrorWithName(err, "scratch", src)
	msg := wrapped.Error()
	assert.Contains(t, msg, "READ ERROR in scratch at 2:")
	assert.Contains(t, msg, "   2 |  b ])")
	assert.Contains(t, msg, "^")
}

func Test_WrapErrorWithSource_LeavesOthersAlone(t *testing.T) {
	err := &UndefinedTheoremError{Name: "foo"}
	assert.Same(t, error(err), WrapErrorWithSource(err, "whatever"))
}

func Test_FmtS_RoundTrip(t *testing.T) {
	srcs := []string{
		`(definition id "doc" ((x A)) x)`,
		`(term= (lambda ((x A)) x) (lambda ((y A)) y))`,
		`(have step-1 A 42)`,
	}
	for _, src := range srcs {
		v := read(t, src)
		again := read(t, FmtS(v))
		assert.True(t, EqualS(v.(S), again.(S)), "round trip of %s gave %s", src, FmtS(again))
	}
}

func Test_FmtS_Atoms(t *testing.T) {
	assert.Equal(t, `"a\nb"`, FmtS("a\nb"))
	assert.Equal(t, "x", FmtS(Sym("x")))
	assert.Equal(t, "(x 1 \"d\")", FmtS(S{Sym("x"), int64(1), "d"}))
	assert.False(t, strings.Contains(FmtS(Sym("s")), `"`))
}
