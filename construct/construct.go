// Package construct provides small, direct builder helpers for types.Type
// and ast.Node values, for use by tests that need to assemble an expected
// type or a hand-built AST without spelling out every struct literal field.
package construct

import (
	"github.com/sineira/hindley/ast"
	"github.com/sineira/hindley/types"
)

// Types

// TVar returns a type variable with the given id, bypassing an Environment.
// Only useful in tests that need an id under their own control.
func TVar(id int) *types.Var {
	return types.NewVar(id)
}

// TCon returns a nullary type application of a freshly built TyCon named
// name — for tests that need a concrete ground type without registering it
// in any Environment.
func TCon(name string) *types.App {
	return &types.App{Con: &types.TyCon{Name: name, Arity: 0}}
}

// TApp returns a type application of con to args.
func TApp(con *types.TyCon, args ...types.Type) *types.App {
	return &types.App{Con: con, Args: args}
}

// TFun returns a function type: `(A,B,...) -> R`.
func TFun(args []types.Type, ret types.Type) *types.Fun {
	return &types.Fun{From: args, To: ret}
}

// TFun1 returns a unary function type: `A -> R`.
func TFun1(arg types.Type, ret types.Type) *types.Fun {
	return &types.Fun{From: []types.Type{arg}, To: ret}
}

// TFun0 returns a nullary function type: `() -> R`.
func TFun0(ret types.Type) *types.Fun {
	return &types.Fun{To: ret}
}

// Expressions

// Lit returns an integer literal node.
func Lit(value int64) *ast.Literal {
	return &ast.Literal{Value: value}
}

// Var returns a variable-reference node.
func Var(name string) *ast.Variable {
	return &ast.Variable{Name: name}
}

// Fn returns an abstraction node over params.
func Fn(params []string, body ast.Node) *ast.Abstraction {
	return &ast.Abstraction{Params: params, Body: body}
}

// Fn1 returns a unary abstraction node.
func Fn1(param string, body ast.Node) *ast.Abstraction {
	return &ast.Abstraction{Params: []string{param}, Body: body}
}

// App returns an application node.
func App(rator ast.Node, rands ...ast.Node) *ast.Application {
	return &ast.Application{Rator: rator, Rands: rands}
}

// Bind pairs a bound name with its value expression for Let/Letrec.
func Bind(name string, value ast.Node) ast.Binding {
	return ast.Binding{Name: name, Value: value}
}

// LetNode returns a non-recursive let-binding group node.
func LetNode(bindings []ast.Binding, body ast.Node) *ast.Let {
	return &ast.Let{Bindings: bindings, Body: body}
}

// LetrecNode returns a mutually-recursive let-binding group node.
func LetrecNode(bindings []ast.Binding, body ast.Node) *ast.Letrec {
	return &ast.Letrec{Bindings: bindings, Body: body}
}

// If returns a conditional node.
func If(test, then, els ast.Node) *ast.If {
	return &ast.If{Test: test, Then: then, Else: els}
}

// Seq returns a sequence node.
func Seq(nodes ...ast.Node) *ast.Sequence {
	return &ast.Sequence{Nodes: nodes}
}
