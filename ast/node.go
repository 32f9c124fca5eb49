// Package ast defines the typed abstract syntax for value expressions: a
// closed sum of nine node kinds, each of which carries (or is assigned,
// after inference) a single type.
package ast

import (
	"github.com/sineira/hindley/sexpr"
	"github.com/sineira/hindley/types"
)

// Node is the base for all AST nodes. The nine structs below are the
// complete set of implementations; a type switch over Node is always
// exhaustive against them.
type Node interface {
	// NodeName identifies the concrete kind of node, for error messages.
	NodeName() string
	// Type returns the type assigned to this node by inference, or nil if
	// inference has not yet visited it.
	Type() types.Type
	// SetType assigns the type inference derives for this node. Assignment
	// should only happen from within infer.Infer.
	SetType(types.Type)
}

var (
	_ Node = (*Literal)(nil)
	_ Node = (*Variable)(nil)
	_ Node = (*Abstraction)(nil)
	_ Node = (*Application)(nil)
	_ Node = (*Let)(nil)
	_ Node = (*Letrec)(nil)
	_ Node = (*If)(nil)
	_ Node = (*Sequence)(nil)
	_ Node = (*HostEscape)(nil)
)

type typed struct {
	inferred types.Type
}

func (t *typed) Type() types.Type      { return t.inferred }
func (t *typed) SetType(ty types.Type) { t.inferred = ty }

// Literal is an integer literal: `42`.
type Literal struct {
	typed
	Value int64
}

func (n *Literal) NodeName() string { return "Literal" }

// Variable is a reference to a term name: `x`.
type Variable struct {
	typed
	Name string
}

func (n *Variable) NodeName() string { return "Variable" }

// Abstraction is a lambda: `(fn (x y) body)`.
type Abstraction struct {
	typed
	Params []string
	Body   Node
}

func (n *Abstraction) NodeName() string { return "Abstraction" }

// Application is a function call: `(f a b)`.
type Application struct {
	typed
	Rator Node
	Rands []Node
}

func (n *Application) NodeName() string { return "Application" }

// Binding pairs a bound name with its value expression, used by both Let and
// Letrec to preserve binding order.
type Binding struct {
	Name  string
	Value Node
}

// Let is a non-recursive, ordered group of bindings: `(let ((v e)*) body)`.
// Each binding's value is inferred generically (its variables are not made
// non-generic) in an environment that already holds the let's earlier
// bindings, enabling let-polymorphism.
type Let struct {
	typed
	Bindings []Binding
	Body     Node
}

func (n *Let) NodeName() string { return "Let" }

// Letrec is a mutually-recursive, ordered group of bindings:
// `(letrec ((v e)*) body)`. Unlike Let, all bound names are in scope (and
// non-generic) while every binding's value is inferred.
type Letrec struct {
	typed
	Bindings []Binding
	Body     Node
}

func (n *Letrec) NodeName() string { return "Letrec" }

// If is a conditional: `(if test then else)`.
type If struct {
	typed
	Test Node
	Then Node
	Else Node
}

func (n *If) NodeName() string { return "If" }

// Sequence is an ordered list of subexpressions evaluated for effect except
// the last, whose value (and type) the Sequence takes on: `(progn e*)`. An
// empty Sequence has the unit type.
type Sequence struct {
	typed
	Nodes []Node
}

func (n *Sequence) NodeName() string { return "Sequence" }

// HostEscape is the one hole in the type system through which raw host code
// may appear, trusted at the type its author declared: `(lisp <type> <raw>)`.
// DeclaredType is filled in by the value parser (it already has the parsed
// type in hand); inference simply copies it into the node's inferred type.
type HostEscape struct {
	typed
	DeclaredType types.Type
	Raw          sexpr.Form
}

func (n *HostEscape) NodeName() string { return "HostEscape" }

// Walk visits node and every subexpression it contains, in evaluation
// order, calling f on each.
func Walk(node Node, f func(Node)) {
	if node == nil {
		return
	}
	switch n := node.(type) {
	case *Literal, *Variable, *HostEscape:
		f(n)

	case *Abstraction:
		f(n)
		Walk(n.Body, f)

	case *Application:
		f(n)
		Walk(n.Rator, f)
		for _, rand := range n.Rands {
			Walk(rand, f)
		}

	case *Let:
		f(n)
		for _, b := range n.Bindings {
			Walk(b.Value, f)
		}
		Walk(n.Body, f)

	case *Letrec:
		f(n)
		for _, b := range n.Bindings {
			Walk(b.Value, f)
		}
		Walk(n.Body, f)

	case *If:
		f(n)
		Walk(n.Test, f)
		Walk(n.Then, f)
		Walk(n.Else, f)

	case *Sequence:
		f(n)
		for _, sub := range n.Nodes {
			Walk(sub, f)
		}

	default:
		panic("unknown node type: " + node.NodeName())
	}
}
