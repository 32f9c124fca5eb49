package valueparser

import (
	"errors"
	"testing"

	"github.com/sineira/hindley/ast"
	"github.com/sineira/hindley/env"
	"github.com/sineira/hindley/sexpr"
)

func mustRead(t *testing.T, text string) sexpr.Form {
	t.Helper()
	f, err := sexpr.Read(text)
	if err != nil {
		t.Fatalf("read %q: %v", text, err)
	}
	return f
}

func TestParseLiteralAndVariable(t *testing.T) {
	e := env.NewRootEnvironment()
	p := NewParser(nil)

	node, err := p.Parse(e, mustRead(t, "42"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lit, ok := node.(*ast.Literal)
	if !ok || lit.Value != 42 {
		t.Fatalf("expected Literal(42), got %#v", node)
	}

	node, err = p.Parse(e, mustRead(t, "x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := node.(*ast.Variable); !ok || v.Name != "x" {
		t.Fatalf("expected Variable(x), got %#v", node)
	}
}

func TestParseAbstraction(t *testing.T) {
	e := env.NewRootEnvironment()
	p := NewParser(nil)
	node, err := p.Parse(e, mustRead(t, "(fn (x y) x)"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	abs, ok := node.(*ast.Abstraction)
	if !ok {
		t.Fatalf("expected Abstraction, got %#v", node)
	}
	if len(abs.Params) != 2 || abs.Params[0] != "x" || abs.Params[1] != "y" {
		t.Fatalf("unexpected params: %v", abs.Params)
	}
}

func TestParseLetAndLetrec(t *testing.T) {
	e := env.NewRootEnvironment()
	p := NewParser(nil)

	node, err := p.Parse(e, mustRead(t, "(let ((x 1)) x)"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := node.(*ast.Let); !ok {
		t.Fatalf("expected Let, got %#v", node)
	}

	node, err = p.Parse(e, mustRead(t, "(letrec ((f (fn (n) n))) f)"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := node.(*ast.Letrec); !ok {
		t.Fatalf("expected Letrec, got %#v", node)
	}
}

func TestParseIf(t *testing.T) {
	e := env.NewRootEnvironment()
	p := NewParser(nil)
	node, err := p.Parse(e, mustRead(t, "(if true 1 0)"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := node.(*ast.If); !ok {
		t.Fatalf("expected If, got %#v", node)
	}
}

func TestParseProgn(t *testing.T) {
	e := env.NewRootEnvironment()
	p := NewParser(nil)
	node, err := p.Parse(e, mustRead(t, "(progn 1 2 3)"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seq, ok := node.(*ast.Sequence)
	if !ok || len(seq.Nodes) != 3 {
		t.Fatalf("expected Sequence of 3, got %#v", node)
	}
}

func TestParseLispEscape(t *testing.T) {
	e := env.NewRootEnvironment()
	p := NewParser(nil)
	node, err := p.Parse(e, mustRead(t, "(lisp Int (+ 1 2))"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	escape, ok := node.(*ast.HostEscape)
	if !ok {
		t.Fatalf("expected HostEscape, got %#v", node)
	}
	if escape.DeclaredType == nil {
		t.Fatalf("expected declared type to be parsed")
	}
}

func TestParseApplication(t *testing.T) {
	e := env.NewRootEnvironment()
	p := NewParser(nil)
	node, err := p.Parse(e, mustRead(t, "(f 1 2)"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	app, ok := node.(*ast.Application)
	if !ok || len(app.Rands) != 2 {
		t.Fatalf("expected Application with 2 rands, got %#v", node)
	}
}

func TestParseMacroExpansionInvoked(t *testing.T) {
	e := env.NewRootEnvironment()
	expandCalls := 0
	p := NewParser(func(f sexpr.Form) (sexpr.Form, error) {
		expandCalls++
		return mustReadStatic("1"), nil
	})
	p.RegisterMacro("my-macro")
	node, err := p.Parse(e, mustRead(t, "(my-macro a b)"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expandCalls != 1 {
		t.Fatalf("expected Expand to be invoked exactly once, got %d", expandCalls)
	}
	if _, ok := node.(*ast.Literal); !ok {
		t.Fatalf("expected re-parsed expansion result, got %#v", node)
	}
}

func mustReadStatic(text string) sexpr.Form {
	f, err := sexpr.Read(text)
	if err != nil {
		panic(err)
	}
	return f
}

func TestParseMacroWithoutExpandIsParseError(t *testing.T) {
	e := env.NewRootEnvironment()
	p := NewParser(nil)
	p.RegisterMacro("my-macro")
	_, err := p.Parse(e, mustRead(t, "(my-macro a)"))
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestParseNullAtomIsError(t *testing.T) {
	e := env.NewRootEnvironment()
	p := NewParser(nil)
	_, err := p.Parse(e, nil)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestParseEmptyApplicationIsError(t *testing.T) {
	e := env.NewRootEnvironment()
	p := NewParser(nil)
	_, err := p.Parse(e, mustRead(t, "()"))
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}
