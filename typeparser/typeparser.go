// Package typeparser turns a surface type expression — a bare symbol or a
// parenthesized form headed by a type-constructor name or "->" — into the
// internal types.Type representation, resolving constructor names against
// an Environment and collecting the free type variables it encounters.
package typeparser

import (
	"errors"
	"fmt"

	"github.com/sineira/hindley/env"
	"github.com/sineira/hindley/sexpr"
	"github.com/sineira/hindley/types"
)

// ErrUnknownTyCon is returned when a surface type references a constructor
// name not registered in the Environment.
var ErrUnknownTyCon = errors.New("unknown type constructor")

// ErrTyConArity is returned when a type application supplies a number of
// arguments different from its constructor's declared arity.
var ErrTyConArity = errors.New("type constructor arity mismatch")

// ErrSyntax is returned for a surface type form this parser cannot make
// sense of: an empty list, a malformed "->" form, or an atom of the wrong
// kind.
var ErrSyntax = errors.New("malformed type expression")

// VarMap records, within one parse (or a chain of parses sharing a seed),
// which surface type-variable names have already resolved to which
// internal *types.Var — so that `(-> a a)` resolves both `a`s to the same
// variable, and so that a family of related calls (e.g. every constructor
// of one define-type) can share one set of in-scope variables.
type VarMap map[string]*types.Var

// NewVarMap returns an empty, ready-to-use VarMap.
func NewVarMap() VarMap { return make(VarMap) }

// isVariableName applies the convention used throughout the pack: a bare
// symbol beginning with a lower-case letter is a type variable, while one
// beginning with an upper-case letter names a type constructor.
func isVariableName(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return c >= 'a' && c <= 'z'
}

// Parse resolves form against e, extending seed with any newly encountered
// free type variables and returning the resulting type alongside the
// updated VarMap. extra supplies type constructors that should resolve
// even though they are not (yet) registered in e — used while parsing the
// constructors of a define-type, so a type can refer to itself before its
// own TyCon has been committed to the Environment.
func Parse(e *env.Environment, extra []*types.TyCon, seed VarMap, form sexpr.Form) (types.Type, VarMap, error) {
	if seed == nil {
		seed = NewVarMap()
	}
	t, err := parse(e, extra, seed, form)
	if err != nil {
		return nil, seed, err
	}
	return t, seed, nil
}

func lookupExtra(extra []*types.TyCon, name string) (*types.TyCon, bool) {
	for _, tc := range extra {
		if tc.Name == name {
			return tc, true
		}
	}
	return nil, false
}

func parse(e *env.Environment, extra []*types.TyCon, vars VarMap, form sexpr.Form) (types.Type, error) {
	switch f := form.(type) {
	case *sexpr.Symbol:
		if isVariableName(f.Name) {
			if v, ok := vars[f.Name]; ok {
				return v, nil
			}
			v := e.NewVar()
			v.SetName(f.Name)
			vars[f.Name] = v
			return v, nil
		}
		return parseApp(e, extra, f.Name, nil)

	case *sexpr.List:
		if len(f.Items) == 0 {
			return nil, fmt.Errorf("%w: empty type form", ErrSyntax)
		}
		if head, ok := sexpr.HeadSymbol(f); ok && head == "->" {
			return parseFun(e, extra, vars, f.Items[1:])
		}
		head, ok := sexpr.AsSymbol(f.Items[0])
		if !ok {
			return nil, fmt.Errorf("%w: type application head must be a symbol", ErrSyntax)
		}
		args := make([]types.Type, 0, len(f.Items)-1)
		for _, argForm := range f.Items[1:] {
			argTy, err := parse(e, extra, vars, argForm)
			if err != nil {
				return nil, err
			}
			args = append(args, argTy)
		}
		return parseApp(e, extra, head, args)

	default:
		return nil, fmt.Errorf("%w: unexpected form %T in type position", ErrSyntax, form)
	}
}

func parseApp(e *env.Environment, extra []*types.TyCon, name string, args []types.Type) (types.Type, error) {
	tc, ok := lookupExtra(extra, name)
	if !ok {
		tc, ok = e.LookupTyCon(name)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTyCon, name)
	}
	if tc.Arity != len(args) {
		return nil, fmt.Errorf("%w: %q expects %d argument(s), got %d", ErrTyConArity, name, tc.Arity, len(args))
	}
	return &types.App{Con: tc, Args: args}, nil
}

// parseFun parses a `(-> A B)` or `(-> (A B) C)` form: rest must be exactly
// two elements, the first either a single argument type or a parenthesized
// list of argument types, the second the return type.
func parseFun(e *env.Environment, extra []*types.TyCon, vars VarMap, rest []sexpr.Form) (types.Type, error) {
	if len(rest) != 2 {
		return nil, fmt.Errorf("%w: \"->\" takes exactly an argument spec and a return type", ErrSyntax)
	}
	var from []types.Type
	if argItems, ok := sexpr.AsList(rest[0]); ok {
		for _, argForm := range argItems {
			argTy, err := parse(e, extra, vars, argForm)
			if err != nil {
				return nil, err
			}
			from = append(from, argTy)
		}
	} else {
		argTy, err := parse(e, extra, vars, rest[0])
		if err != nil {
			return nil, err
		}
		from = []types.Type{argTy}
	}
	to, err := parse(e, extra, vars, rest[1])
	if err != nil {
		return nil, err
	}
	return &types.Fun{From: from, To: to}, nil
}
