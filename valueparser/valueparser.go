// Package valueparser implements the recursive-descent parser from surface
// forms to typed-AST nodes (before inference runs). The only way this
// package reaches outside the core is the injected Expand callback, invoked
// when an application's head is a name the host has registered as a macro.
package valueparser

import (
	"errors"
	"fmt"

	"github.com/sineira/hindley/ast"
	"github.com/sineira/hindley/env"
	"github.com/sineira/hindley/sexpr"
	"github.com/sineira/hindley/typeparser"
)

// ErrParse is the sentinel wrapped by every malformed-surface-form error
// this package returns: wrong arity for a recognised head, a non-symbol
// where a symbol is required, a null atom, or an atom of unrecognised kind.
var ErrParse = errors.New("parse error")

// Expander is the one interface from this core into its host: given a form
// whose head is a registered macro name, it returns the form to parse in
// its place. It must be pure and deterministic.
type Expander func(sexpr.Form) (sexpr.Form, error)

// Parser turns sexpr.Form trees into ast.Node trees. The zero value has no
// registered macros and no Expander; both are configured via RegisterMacro
// and the Expand field before use.
type Parser struct {
	// Expand is invoked with the original form when its head is a
	// registered macro name; its result is re-parsed in place of the
	// original. Defaults to nil, in which case a registered macro head
	// with no Expand configured is a parse error.
	Expand Expander

	macros map[string]struct{}
}

// NewParser returns a Parser with no macros registered and expand as its
// Expander. Macro expansion itself is modeled purely as an injected function
// value so the core has no direct host dependency and can be unit tested
// with a trivial stub expander.
func NewParser(expand Expander) *Parser {
	return &Parser{Expand: expand, macros: make(map[string]struct{})}
}

// RegisterMacro marks name as a host macro head: an application whose
// rator is this symbol is routed through Expand instead of being parsed as
// an ordinary Application.
func (p *Parser) RegisterMacro(name string) {
	if p.macros == nil {
		p.macros = make(map[string]struct{})
	}
	p.macros[name] = struct{}{}
}

func (p *Parser) isMacro(name string) bool {
	_, ok := p.macros[name]
	return ok
}

// Parse turns one surface form into an AST node. e supplies the type
// environment needed to resolve type annotations embedded in `lisp` forms.
func (p *Parser) Parse(e *env.Environment, form sexpr.Form) (ast.Node, error) {
	switch f := form.(type) {
	case nil:
		return nil, fmt.Errorf("%w: null atom", ErrParse)

	case *sexpr.Int:
		return &ast.Literal{Value: f.Value}, nil

	case *sexpr.Symbol:
		return &ast.Variable{Name: f.Name}, nil

	case *sexpr.List:
		return p.parseList(e, f)

	default:
		return nil, fmt.Errorf("%w: unrecognised form kind %T", ErrParse, form)
	}
}

func (p *Parser) parseList(e *env.Environment, f *sexpr.List) (ast.Node, error) {
	if len(f.Items) == 0 {
		return nil, fmt.Errorf("%w: empty application", ErrParse)
	}
	head, isSymbolHead := sexpr.AsSymbol(f.Items[0])
	rest := f.Items[1:]

	if isSymbolHead {
		switch head {
		case "fn":
			return p.parseFn(e, rest)
		case "let":
			return p.parseLet(e, rest, false)
		case "letrec":
			return p.parseLet(e, rest, true)
		case "if":
			return p.parseIf(e, rest)
		case "lisp":
			return p.parseLisp(e, rest)
		case "progn":
			return p.parseProgn(e, rest)
		}
		if p.isMacro(head) {
			return p.parseMacro(e, f)
		}
	}

	return p.parseApplication(e, f)
}

func (p *Parser) parseMacro(e *env.Environment, f *sexpr.List) (ast.Node, error) {
	if p.Expand == nil {
		head, _ := sexpr.AsSymbol(f.Items[0])
		return nil, fmt.Errorf("%w: macro %q registered with no Expand callback configured", ErrParse, head)
	}
	expanded, err := p.Expand(f)
	if err != nil {
		return nil, fmt.Errorf("macro expansion: %w", err)
	}
	return p.Parse(e, expanded)
}

func (p *Parser) parseApplication(e *env.Environment, f *sexpr.List) (ast.Node, error) {
	rator, err := p.Parse(e, f.Items[0])
	if err != nil {
		return nil, err
	}
	rands := make([]ast.Node, 0, len(f.Items)-1)
	for _, item := range f.Items[1:] {
		rand, err := p.Parse(e, item)
		if err != nil {
			return nil, err
		}
		rands = append(rands, rand)
	}
	return &ast.Application{Rator: rator, Rands: rands}, nil
}

// parseFn parses `(fn (v*) body)`.
func (p *Parser) parseFn(e *env.Environment, rest []sexpr.Form) (ast.Node, error) {
	if len(rest) != 2 {
		return nil, fmt.Errorf("%w: \"fn\" takes a parameter list and a body", ErrParse)
	}
	paramItems, ok := sexpr.AsList(rest[0])
	if !ok {
		return nil, fmt.Errorf("%w: \"fn\" parameter list must be a list", ErrParse)
	}
	params := make([]string, 0, len(paramItems))
	for _, item := range paramItems {
		name, ok := sexpr.AsSymbol(item)
		if !ok {
			return nil, fmt.Errorf("%w: \"fn\" parameters must be symbols", ErrParse)
		}
		params = append(params, name)
	}
	body, err := p.Parse(e, rest[1])
	if err != nil {
		return nil, err
	}
	return &ast.Abstraction{Params: params, Body: body}, nil
}

// parseLet parses `(let ((v e)*) body)` or, when recursive is true,
// `(letrec ((v e)*) body)` — identical surface shape, different node.
func (p *Parser) parseLet(e *env.Environment, rest []sexpr.Form, recursive bool) (ast.Node, error) {
	head := "let"
	if recursive {
		head = "letrec"
	}
	if len(rest) != 2 {
		return nil, fmt.Errorf("%w: %q takes a binding list and a body", ErrParse, head)
	}
	bindingItems, ok := sexpr.AsList(rest[0])
	if !ok {
		return nil, fmt.Errorf("%w: %q bindings must be a list", ErrParse, head)
	}
	bindings := make([]ast.Binding, 0, len(bindingItems))
	for _, item := range bindingItems {
		pair, ok := sexpr.AsList(item)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("%w: %q binding must be a (name expr) pair", ErrParse, head)
		}
		name, ok := sexpr.AsSymbol(pair[0])
		if !ok {
			return nil, fmt.Errorf("%w: %q binding name must be a symbol", ErrParse, head)
		}
		value, err := p.Parse(e, pair[1])
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, ast.Binding{Name: name, Value: value})
	}
	body, err := p.Parse(e, rest[1])
	if err != nil {
		return nil, err
	}
	if recursive {
		return &ast.Letrec{Bindings: bindings, Body: body}, nil
	}
	return &ast.Let{Bindings: bindings, Body: body}, nil
}

// parseIf parses `(if t a b)`.
func (p *Parser) parseIf(e *env.Environment, rest []sexpr.Form) (ast.Node, error) {
	if len(rest) != 3 {
		return nil, fmt.Errorf("%w: \"if\" takes exactly a test, a then-branch, and an else-branch", ErrParse)
	}
	test, err := p.Parse(e, rest[0])
	if err != nil {
		return nil, err
	}
	then, err := p.Parse(e, rest[1])
	if err != nil {
		return nil, err
	}
	els, err := p.Parse(e, rest[2])
	if err != nil {
		return nil, err
	}
	return &ast.If{Test: test, Then: then, Else: els}, nil
}

// parseLisp parses `(lisp <type> <raw>)`: the escape hatch through which
// raw host code appears, trusted at the type its author declared.
func (p *Parser) parseLisp(e *env.Environment, rest []sexpr.Form) (ast.Node, error) {
	if len(rest) != 2 {
		return nil, fmt.Errorf("%w: \"lisp\" takes exactly a type and a raw form", ErrParse)
	}
	ty, _, err := typeparser.Parse(e, nil, nil, rest[0])
	if err != nil {
		return nil, fmt.Errorf("lisp escape type: %w", err)
	}
	return &ast.HostEscape{DeclaredType: ty, Raw: rest[1]}, nil
}

// parseProgn parses `(progn e*)`.
func (p *Parser) parseProgn(e *env.Environment, rest []sexpr.Form) (ast.Node, error) {
	nodes := make([]ast.Node, 0, len(rest))
	for _, item := range rest {
		node, err := p.Parse(e, item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return &ast.Sequence{Nodes: nodes}, nil
}
