package typeparser

import (
	"errors"
	"testing"

	"github.com/sineira/hindley/env"
	"github.com/sineira/hindley/sexpr"
	"github.com/sineira/hindley/types"
)

func mustRead(t *testing.T, text string) sexpr.Form {
	t.Helper()
	f, err := sexpr.Read(text)
	if err != nil {
		t.Fatalf("read %q: %v", text, err)
	}
	return f
}

func TestParseBareConstructor(t *testing.T) {
	e := env.NewRootEnvironment()
	ty, _, err := Parse(e, nil, nil, mustRead(t, "Int"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.TypeName() != "App" {
		t.Fatalf("expected App, got %s", ty.TypeName())
	}
}

func TestParseVariableMemoizedWithinCall(t *testing.T) {
	e := env.NewRootEnvironment()
	ty, vars, err := Parse(e, nil, nil, mustRead(t, "(-> a a)"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := ty.(*types.Fun)
	if fn.From[0] != fn.To {
		t.Fatalf("expected both occurrences of 'a' to resolve to the same Var")
	}
	if len(vars) != 1 {
		t.Fatalf("expected exactly one free variable collected, got %d", len(vars))
	}
}

func TestParseUnknownTyCon(t *testing.T) {
	e := env.NewRootEnvironment()
	_, _, err := Parse(e, nil, nil, mustRead(t, "Frobnicate"))
	if !errors.Is(err, ErrUnknownTyCon) {
		t.Fatalf("expected ErrUnknownTyCon, got %v", err)
	}
}

func TestParseArityMismatch(t *testing.T) {
	e := env.NewRootEnvironment()
	e.DeclareTyCon(&types.TyCon{Name: "Maybe", Arity: 1})
	_, _, err := Parse(e, nil, nil, mustRead(t, "(Maybe a b)"))
	if !errors.Is(err, ErrTyConArity) {
		t.Fatalf("expected ErrTyConArity, got %v", err)
	}
}

func TestParseFunctionMultiArg(t *testing.T) {
	e := env.NewRootEnvironment()
	ty, _, err := Parse(e, nil, nil, mustRead(t, "(-> (Int Int) Int)"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := ty.(*types.Fun)
	if len(fn.From) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(fn.From))
	}
}

func TestParseUsesExtraTyConForSelfReference(t *testing.T) {
	e := env.NewRootEnvironment()
	listCon := &types.TyCon{Name: "List", Arity: 1}
	ty, _, err := Parse(e, []*types.TyCon{listCon}, nil, mustRead(t, "(List a)"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.(*types.App).Con != listCon {
		t.Fatalf("expected extra TyCon to be used even though not yet registered in env")
	}
}

func TestParseSeedSharedAcrossCalls(t *testing.T) {
	e := env.NewRootEnvironment()
	seed := NewVarMap()
	ty1, seed, err := Parse(e, nil, seed, mustRead(t, "a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ty2, _, err := Parse(e, nil, seed, mustRead(t, "a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty1 != ty2 {
		t.Fatalf("expected seeded variable map to resolve 'a' to the same Var across calls")
	}
}
