package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sineira/hindley/env"
	"github.com/sineira/hindley/sexpr"
	"github.com/sineira/hindley/types"
	"github.com/sineira/hindley/unify"
	"github.com/sineira/hindley/valueparser"
)

func mustInfer(t *testing.T, e *env.Environment, text string) types.Type {
	t.Helper()
	form := mustRead(t, text)
	p := valueparser.NewParser(nil)
	node, err := p.Parse(e, form)
	require.NoError(t, err, "parse %q", text)
	_, err = Infer(e, nil, node)
	require.NoError(t, err, "infer %q", text)
	return DeriveType(e, node)
}

func mustRead(t *testing.T, text string) sexpr.Form {
	t.Helper()
	f, err := sexpr.Read(text)
	require.NoError(t, err, "read %q", text)
	return f
}

func declareArith(e *env.Environment) {
	intTy := func() types.Type { tc, _ := e.LookupTyCon("Int"); return &types.App{Con: tc} }
	binOp := &types.Fun{From: []types.Type{intTy(), intTy()}, To: intTy()}
	e.DeclareTermType("+", binOp)
	e.DeclareTermType("-", binOp)
	e.DeclareTermType("*", binOp)
	e.DeclareTermType("=", &types.Fun{From: []types.Type{intTy(), intTy()}, To: func() types.Type { tc, _ := e.LookupTyCon("Bool"); return &types.App{Con: tc} }()})
	e.DeclareTermType("true", func() types.Type { tc, _ := e.LookupTyCon("Bool"); return &types.App{Con: tc} }())
}

func TestScenarioIdentityFunction(t *testing.T) {
	e := env.NewRootEnvironment()
	ty := mustInfer(t, e, "(fn (x) x)")
	fn, ok := ty.(*types.Fun)
	require.True(t, ok, "expected a function type, got %s", types.Unparse(e.Subst(), ty))
	require.Len(t, fn.From, 1)
	assert.Same(t, fn.To, fn.From[0], "expected parameter and result to share one fresh variable")
}

func TestScenarioLetPolymorphism(t *testing.T) {
	e := env.NewRootEnvironment()
	declareArith(e)
	ty := mustInfer(t, e, "(let ((id (fn (x) x))) (if (id true) (id 1) 0))")
	assert.Equal(t, "Int", types.Unparse(e.Subst(), ty))
}

func TestScenarioLambdaParameterIsMonomorphic(t *testing.T) {
	e := env.NewRootEnvironment()
	declareArith(e)
	form := mustRead(t, "(fn (id) (if (id true) (id 1) 0))")
	p := valueparser.NewParser(nil)
	node, err := p.Parse(e, form)
	require.NoError(t, err)
	_, err = Infer(e, nil, node)
	assert.ErrorIs(t, err, unify.ErrMismatch)
}

func TestScenarioLetrecFactorial(t *testing.T) {
	e := env.NewRootEnvironment()
	declareArith(e)
	ty := mustInfer(t, e, "(letrec ((f (fn (n) (if (= n 0) 1 (* n (f (- n 1))))))) f)")
	assert.Equal(t, "Int -> Int", types.Unparse(e.Subst(), ty))
}

func TestScenarioOccursCheckOnSelfApplication(t *testing.T) {
	e := env.NewRootEnvironment()
	form := mustRead(t, "(fn (x) (x x))")
	p := valueparser.NewParser(nil)
	node, err := p.Parse(e, form)
	require.NoError(t, err)
	_, err = Infer(e, nil, node)
	assert.ErrorIs(t, err, unify.ErrOccursCheck)
}

func TestUnboundVariableFails(t *testing.T) {
	e := env.NewRootEnvironment()
	form := mustRead(t, "unknown")
	p := valueparser.NewParser(nil)
	node, err := p.Parse(e, form)
	require.NoError(t, err)
	_, err = Infer(e, nil, node)
	assert.ErrorIs(t, err, ErrUnboundVariable)
}

func TestEmptySequenceIsUnit(t *testing.T) {
	e := env.NewRootEnvironment()
	ty := mustInfer(t, e, "(progn)")
	assert.Equal(t, "Unit", types.Unparse(e.Subst(), ty))
}

func TestFreshPreservesStructureWithEmptyNonGeneric(t *testing.T) {
	e := env.NewRootEnvironment()
	v := e.NewVar()
	fn := &types.Fun{From: []types.Type{v}, To: v}
	fresh, _ := Fresh(e, fn, nil)
	freshFn := fresh.(*types.Fun)
	assert.NotSame(t, v, freshFn.From[0])
	assert.NotSame(t, v, freshFn.To)
	assert.Same(t, freshFn.To, freshFn.From[0], "expected both occurrences to map to the same fresh variable")
}

func TestFreshLeavesNonGenericVarUnchanged(t *testing.T) {
	e := env.NewRootEnvironment()
	v := e.NewVar()
	fresh, _ := Fresh(e, v, []*types.Var{v})
	assert.Same(t, v, fresh, "expected non-generic variable to be returned unchanged")
}
