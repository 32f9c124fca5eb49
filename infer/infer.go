// Package infer implements Hindley-Milner type inference over ast.Node: it
// walks an AST, allocates and solves unification constraints, and assigns
// every node the principal type of its expression.
package infer

import (
	"errors"
	"fmt"

	"github.com/sineira/hindley/ast"
	"github.com/sineira/hindley/env"
	"github.com/sineira/hindley/types"
	"github.com/sineira/hindley/unify"
)

// ErrUnboundVariable is returned when inference encounters a free term
// variable absent from the Environment.
var ErrUnboundVariable = errors.New("unbound variable")

// isNonGeneric reports whether v occurs (after pruning) in any type in
// nonGeneric: the set of variables captured by an enclosing lambda, which
// must stay unified across every use rather than being freshened.
func isNonGeneric(s *types.Subst, v *types.Var, nonGeneric []*types.Var) bool {
	for _, ng := range nonGeneric {
		if unify.OccursIn(s, v, ng) {
			return true
		}
	}
	return false
}

// Fresh returns a copy of t in which every generic variable — one that does
// not occur in any type in nonGeneric — has been replaced by a freshly
// allocated variable. Multiple occurrences of the same original variable
// within one call map to the same fresh variable, via memo. Non-generic
// variables are preserved by identity. memo is returned so callers can
// observe the substitution performed.
func Fresh(e *env.Environment, t types.Type, nonGeneric []*types.Var) (types.Type, map[int]*types.Var) {
	memo := make(map[int]*types.Var)
	return freshWith(e, t, nonGeneric, memo), memo
}

func freshWith(e *env.Environment, t types.Type, nonGeneric []*types.Var, memo map[int]*types.Var) types.Type {
	t = types.Prune(e.Subst(), t)
	switch t := t.(type) {
	case *types.Var:
		if isNonGeneric(e.Subst(), t, nonGeneric) {
			return t
		}
		if fresh, ok := memo[t.Id()]; ok {
			return fresh
		}
		fresh := e.NewVar()
		memo[t.Id()] = fresh
		return fresh

	case *types.App:
		args := make([]types.Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = freshWith(e, arg, nonGeneric, memo)
		}
		return &types.App{Con: t.Con, Args: args}

	case *types.Fun:
		from := make([]types.Type, len(t.From))
		for i, arg := range t.From {
			from[i] = freshWith(e, arg, nonGeneric, memo)
		}
		return &types.Fun{From: from, To: freshWith(e, t.To, nonGeneric, memo)}

	default:
		return t
	}
}

func intType(e *env.Environment) types.Type {
	tc, _ := e.LookupTyCon("Int")
	return &types.App{Con: tc}
}

func boolType(e *env.Environment) types.Type {
	tc, _ := e.LookupTyCon("Bool")
	return &types.App{Con: tc}
}

// Infer assigns node, and every subexpression it contains, its inferred
// type, returning node's own type. nonGeneric is the set of variables bound
// by enclosing lambdas at this point in the walk; it grows when entering an
// Abstraction or Letrec and is restored on return, exactly as a recursive
// descent over a stack-discipline scope would.
func Infer(e *env.Environment, nonGeneric []*types.Var, node ast.Node) (types.Type, error) {
	var t types.Type
	var err error

	switch n := node.(type) {
	case *ast.Literal:
		t = intType(e)

	case *ast.Variable:
		t, err = inferVariable(e, nonGeneric, n)

	case *ast.Abstraction:
		t, err = inferAbstraction(e, nonGeneric, n)

	case *ast.Application:
		t, err = inferApplication(e, nonGeneric, n)

	case *ast.Let:
		t, err = inferLet(e, nonGeneric, n)

	case *ast.Letrec:
		t, err = inferLetrec(e, nonGeneric, n)

	case *ast.If:
		t, err = inferIf(e, nonGeneric, n)

	case *ast.Sequence:
		t, err = inferSequence(e, nonGeneric, n)

	case *ast.HostEscape:
		t = n.DeclaredType

	default:
		return nil, fmt.Errorf("infer: unknown node type %T", node)
	}

	if err != nil {
		return nil, err
	}
	node.SetType(t)
	return t, nil
}

func inferVariable(e *env.Environment, nonGeneric []*types.Var, n *ast.Variable) (types.Type, error) {
	info, ok := e.LookupTerm(n.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnboundVariable, n.Name)
	}
	declared := info.Derived
	if declared == nil {
		declared = info.Declared
	}
	if declared == nil {
		return nil, fmt.Errorf("%w: %q has no type yet", ErrUnboundVariable, n.Name)
	}
	fresh, _ := Fresh(e, declared, nonGeneric)
	return fresh, nil
}

func inferAbstraction(e *env.Environment, nonGeneric []*types.Var, n *ast.Abstraction) (types.Type, error) {
	child := env.NewChild(e)
	paramVars := make([]*types.Var, len(n.Params))
	paramTypes := make([]types.Type, len(n.Params))
	innerNonGeneric := append([]*types.Var{}, nonGeneric...)
	for i, name := range n.Params {
		v := child.NewVar()
		paramVars[i] = v
		paramTypes[i] = v
		child.DeclareTermType(name, v)
		innerNonGeneric = append(innerNonGeneric, v)
	}
	bodyType, err := Infer(child, innerNonGeneric, n.Body)
	if err != nil {
		return nil, err
	}
	return &types.Fun{From: paramTypes, To: bodyType}, nil
}

func inferApplication(e *env.Environment, nonGeneric []*types.Var, n *ast.Application) (types.Type, error) {
	ratorType, err := Infer(e, nonGeneric, n.Rator)
	if err != nil {
		return nil, err
	}
	// A nullary data constructor is typed as its data type, not as a
	// zero-argument function, so applying one to no arguments, as in
	// `(Nothing)`, yields that data type directly.
	if v, ok := n.Rator.(*ast.Variable); ok && len(n.Rands) == 0 {
		if app, ok := types.Prune(e.Subst(), ratorType).(*types.App); ok {
			for _, dc := range app.Con.Ctors {
				if dc.Name == v.Name {
					return app, nil
				}
			}
		}
	}
	randTypes := make([]types.Type, len(n.Rands))
	for i, rand := range n.Rands {
		rt, err := Infer(e, nonGeneric, rand)
		if err != nil {
			return nil, err
		}
		randTypes[i] = rt
	}
	result := e.NewVar()
	if err := unify.Unify(e.Subst(), ratorType, &types.Fun{From: randTypes, To: result}); err != nil {
		return nil, err
	}
	return result, nil
}

func inferLet(e *env.Environment, nonGeneric []*types.Var, n *ast.Let) (types.Type, error) {
	child := env.NewChild(e)
	for _, b := range n.Bindings {
		valueType, err := Infer(child, nonGeneric, b.Value)
		if err != nil {
			return nil, err
		}
		child.DeclareTermType(b.Name, valueType)
	}
	return Infer(child, nonGeneric, n.Body)
}

func inferLetrec(e *env.Environment, nonGeneric []*types.Var, n *ast.Letrec) (types.Type, error) {
	child := env.NewChild(e)
	placeholders := make([]*types.Var, len(n.Bindings))
	innerNonGeneric := append([]*types.Var{}, nonGeneric...)
	for i, b := range n.Bindings {
		v := child.NewVar()
		placeholders[i] = v
		child.DeclareTermType(b.Name, v)
		innerNonGeneric = append(innerNonGeneric, v)
	}
	for i, b := range n.Bindings {
		valueType, err := Infer(child, innerNonGeneric, b.Value)
		if err != nil {
			return nil, err
		}
		if err := unify.Unify(child.Subst(), placeholders[i], valueType); err != nil {
			return nil, err
		}
	}
	// Placeholders drop out of non-generic for the body: uses of the
	// recursively-defined names outside the recursive group may be
	// polymorphic.
	return Infer(child, nonGeneric, n.Body)
}

func inferIf(e *env.Environment, nonGeneric []*types.Var, n *ast.If) (types.Type, error) {
	testType, err := Infer(e, nonGeneric, n.Test)
	if err != nil {
		return nil, err
	}
	if err := unify.Unify(e.Subst(), testType, boolType(e)); err != nil {
		return nil, err
	}
	thenType, err := Infer(e, nonGeneric, n.Then)
	if err != nil {
		return nil, err
	}
	elseType, err := Infer(e, nonGeneric, n.Else)
	if err != nil {
		return nil, err
	}
	if err := unify.Unify(e.Subst(), thenType, elseType); err != nil {
		return nil, err
	}
	return thenType, nil
}

func inferSequence(e *env.Environment, nonGeneric []*types.Var, n *ast.Sequence) (types.Type, error) {
	if len(n.Nodes) == 0 {
		tc, _ := e.LookupTyCon("Unit")
		return &types.App{Con: tc}, nil
	}
	var last types.Type
	for _, sub := range n.Nodes {
		t, err := Infer(e, nonGeneric, sub)
		if err != nil {
			return nil, err
		}
		last = t
	}
	return last, nil
}

// DeriveType returns the principal type of node, pruned to its terminal
// representative.
func DeriveType(e *env.Environment, node ast.Node) types.Type {
	return types.Prune(e.Subst(), node.Type())
}
