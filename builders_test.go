package latte

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Builders_AreJustData(t *testing.T) {
	bindings := S{Pair("x", Sym("A"))}

	lam := Lambda(bindings, Sym("x"))
	assert.True(t, Tagged(lam, "lambda"))
	assert.True(t, EqualS(S{Sym("lambda"), bindings, Sym("x")}, lam))

	pi := Forall(bindings, Sym("type"))
	assert.True(t, Tagged(pi, "forall"))
	assert.True(t, EqualS(S{Sym("forall"), bindings, Sym("type")}, pi))

	hv := Have("h", Sym("A"), Sym("x"))
	assert.True(t, EqualS(S{Sym("have"), Sym("h"), Sym("A"), Sym("x")}, hv))

	asm := Assume(bindings, hv, Qed(Sym("x")))
	assert.True(t, Tagged(asm, "assume"))
	assert.Len(t, asm, 4) // tag, bindings, have step, qed step
	assert.True(t, EqualS(S{Sym("qed"), Sym("x")}, asm[3].(S)))
}

func Test_Builders_NestedRoundTripThroughPrinter(t *testing.T) {
	v := Forall(S{Pair("A", Sym("type"))}, Forall(S{Pair("x", Sym("A"))}, Sym("A")))
	back, err := ReadString(FmtS(v))
	assert.NoError(t, err)
	assert.True(t, EqualS(v, back.(S)))
}

func Test_Tagged(t *testing.T) {
	assert.False(t, Tagged(Sym("lambda"), "lambda"))
	assert.False(t, Tagged(S{}, "lambda"))
	assert.False(t, Tagged(S{"lambda"}, "lambda")) // string head, not a symbol
	assert.True(t, Tagged(S{Sym("lambda")}, "lambda"))
}
