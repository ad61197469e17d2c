package latte_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	latte "github.com/zampino/LaTTe"
	"github.com/zampino/LaTTe/kerneltest"
)

func Test_BuildContext_LeftToRight(t *testing.T) {
	k := kerneltest.Structural()
	raw := latte.S{
		latte.S{latte.Sym("A"), latte.Sym("type")},
		latte.S{latte.Sym("x"), latte.Sym("A")},
	}

	ctx, err := latte.BuildContext(k, latte.NewRegistry().View(), raw)
	require.NoError(t, err)
	require.Len(t, ctx, 2)

	assert.Equal(t, latte.Sym("A"), ctx[0].Var)
	assert.True(t, latte.EqualS(latte.SortType, ctx[0].Type))
	assert.Equal(t, latte.Sym("x"), ctx[1].Var)
	assert.True(t, latte.EqualS(latte.L("id", latte.Sym("A")), ctx[1].Type))

	assert.Equal(t, []latte.Sym{"A", "x"}, ctx.Vars())
	ty, ok := ctx.Lookup("x")
	require.True(t, ok)
	assert.True(t, latte.EqualS(latte.L("id", latte.Sym("A")), ty))
	_, ok = ctx.Lookup("nope")
	assert.False(t, ok)
}

func Test_BuildContext_EmptyBinders(t *testing.T) {
	ctx, err := latte.BuildContext(kerneltest.Structural(), latte.NewRegistry().View(), nil)
	require.NoError(t, err)
	assert.Empty(t, ctx)
}

func Test_BuildContext_MalformedPair_AnyPosition(t *testing.T) {
	good := latte.S{latte.Sym("ok"), latte.Sym("type")}
	bad := latte.S{latte.Sym("lonely")} // 1-element pair

	for pos := 0; pos < 3; pos++ {
		raw := latte.S{good, good, good}
		raw[pos] = bad

		ctx, err := latte.BuildContext(kerneltest.Structural(), latte.NewRegistry().View(), raw)
		var bse *latte.BindingShapeError
		require.ErrorAs(t, err, &bse, "position %d", pos)
		assert.Equal(t, pos, bse.Index)
		assert.Nil(t, ctx, "no partial context may escape")
	}
}

func Test_BuildContext_VariableMustBeIdentifier(t *testing.T) {
	raw := latte.S{latte.S{"str-not-sym", latte.Sym("type")}}

	ctx, err := latte.BuildContext(kerneltest.Structural(), latte.NewRegistry().View(), raw)
	var bve *latte.BindingVariableError
	require.ErrorAs(t, err, &bve)
	assert.Equal(t, 0, bve.Index)
	assert.Nil(t, ctx)
}

func Test_BuildContext_ImproperType(t *testing.T) {
	k := kerneltest.Structural()
	// Reject any type mentioning the identifier "bogus".
	k.ProperTypeFn = func(_ latte.DefSource, _ latte.Context, ty latte.S) bool {
		return !latte.EqualS(ty, latte.L("id", latte.Sym("bogus")))
	}
	raw := latte.S{
		latte.S{latte.Sym("A"), latte.Sym("type")},
		latte.S{latte.Sym("x"), latte.Sym("bogus")},
	}

	ctx, err := latte.BuildContext(k, latte.NewRegistry().View(), raw)
	var bte *latte.BindingTypeError
	require.ErrorAs(t, err, &bte)
	assert.Equal(t, 1, bte.Index)
	assert.Equal(t, latte.Sym("x"), bte.Var)
	assert.Nil(t, ctx)
}

func Test_BuildContext_TypeParseFailure(t *testing.T) {
	k := kerneltest.Structural()
	k.ParseFn = func(_ latte.DefSource, surface any) (latte.S, *latte.Diagnostic) {
		return nil, &latte.Diagnostic{Kind: "parse-error", Msg: "unreadable", Data: surface}
	}
	raw := latte.S{latte.S{latte.Sym("x"), latte.Sym("A")}}

	_, err := latte.BuildContext(k, latte.NewRegistry().View(), raw)
	var bte *latte.BindingTypeError
	require.ErrorAs(t, err, &bte)
	require.NotNil(t, bte.Cause)
	assert.Contains(t, bte.Error(), "unreadable")
}

func Test_BuildContext_PrefixScoping(t *testing.T) {
	// The accumulator context grows binder by binder: the check for binder i
	// must see exactly binders 0..i-1.
	var seen [][]latte.Sym
	k := kerneltest.Structural()
	k.ProperTypeFn = func(_ latte.DefSource, ctx latte.Context, _ latte.S) bool {
		seen = append(seen, ctx.Vars())
		return true
	}
	raw := latte.S{
		latte.S{latte.Sym("a"), latte.Sym("type")},
		latte.S{latte.Sym("b"), latte.Sym("a")},
		latte.S{latte.Sym("c"), latte.Sym("b")},
	}

	_, err := latte.BuildContext(k, latte.NewRegistry().View(), raw)
	require.NoError(t, err)
	require.Len(t, seen, 3)
	assert.Empty(t, seen[0])
	assert.Equal(t, []latte.Sym{"a"}, seen[1])
	assert.Equal(t, []latte.Sym{"a", "b"}, seen[2])
}
