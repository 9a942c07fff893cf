package cahlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ident(name string) Token {
	return Token{Type: ID, Lexeme: name, Line: 1}
}

func TestEnvDefineAndGet(t *testing.T) {
	env := NewEnv(nil)
	env.Define("x", Num(1))

	v, err := env.Get(ident("x"))
	require.NoError(t, err)
	assert.Equal(t, Num(1), v)
}

func TestEnvGetWalksParents(t *testing.T) {
	outer := NewEnv(nil)
	outer.Define("x", Str("outer"))
	inner := NewEnv(outer)

	v, err := inner.Get(ident("x"))
	require.NoError(t, err)
	assert.Equal(t, Str("outer"), v)
}

func TestEnvDefineShadows(t *testing.T) {
	outer := NewEnv(nil)
	outer.Define("x", Num(1))
	inner := NewEnv(outer)
	inner.Define("x", Num(2))

	v, err := inner.Get(ident("x"))
	require.NoError(t, err)
	assert.Equal(t, Num(2), v)

	// The outer binding is untouched.
	v, err = outer.Get(ident("x"))
	require.NoError(t, err)
	assert.Equal(t, Num(1), v)
}

func TestEnvAssignMutatesNearestBinding(t *testing.T) {
	outer := NewEnv(nil)
	outer.Define("x", Num(1))
	inner := NewEnv(outer)

	require.NoError(t, inner.Assign(ident("x"), Num(5)))

	v, err := outer.Get(ident("x"))
	require.NoError(t, err)
	assert.Equal(t, Num(5), v)
}

func TestEnvAssignNeverDeclares(t *testing.T) {
	env := NewEnv(nil)
	err := env.Assign(ident("ghost"), Num(1))

	var rt *RuntimeError
	require.ErrorAs(t, err, &rt)
	assert.Equal(t, "Undefined variable 'ghost'.", rt.Msg)

	_, err = env.Get(ident("ghost"))
	assert.Error(t, err)
}

func TestEnvGetUndefined(t *testing.T) {
	env := NewEnv(nil)
	_, err := env.Get(Token{Type: ID, Lexeme: "nope", Line: 7})

	var rt *RuntimeError
	require.ErrorAs(t, err, &rt)
	assert.Equal(t, "Undefined variable 'nope'.", rt.Msg)
	assert.Equal(t, 7, rt.Token.Line)
}

func TestEnvRedefineOverwrites(t *testing.T) {
	env := NewEnv(nil)
	env.Define("x", Num(1))
	env.Define("x", Str("two"))

	v, err := env.Get(ident("x"))
	require.NoError(t, err)
	assert.Equal(t, Str("two"), v)
}
