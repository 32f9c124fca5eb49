// Package elaborate implements the top-level elaborator: it dispatches on
// declare/define-type/define/group forms, mutates an Environment, and
// returns the code-generation descriptors a downstream generator needs.
package elaborate

import (
	"errors"
	"fmt"

	"github.com/sineira/hindley/env"
	"github.com/sineira/hindley/infer"
	"github.com/sineira/hindley/sexpr"
	"github.com/sineira/hindley/typeparser"
	"github.com/sineira/hindley/types"
	"github.com/sineira/hindley/valueparser"
)

// ErrElaborate is the sentinel wrapped by every malformed-top-level-form
// error this package returns.
var ErrElaborate = errors.New("elaboration error")

// Elaborator holds the value parser (and, through it, the host macro
// Expander) used to parse the body of every `define`.
type Elaborator struct {
	Parser *valueparser.Parser
}

// NewElaborator returns an Elaborator whose `define` bodies are parsed with
// parser — supply a *valueparser.Parser configured with whatever macros and
// Expander the host needs.
func NewElaborator(parser *valueparser.Parser) *Elaborator {
	if parser == nil {
		parser = valueparser.NewParser(nil)
	}
	return &Elaborator{Parser: parser}
}

// Elaborate dispatches form to the matching top-level handler, mutating e
// and returning zero or more Descriptors in source order. A `group` form
// flattens its members (including nested groups) into one sequence.
//
// The substitution is snapshotted on entry and rolled back if form fails to
// elaborate, so a type error partway through inferring a definition's body
// cannot leave stray variable bindings behind for the next top-level form
// to trip over. The type-constructor and term tables are not part of this
// rollback: they follow the separate warn-and-proceed redefinition policy.
func (el *Elaborator) Elaborate(e *env.Environment, form sexpr.Form) (ds []Descriptor, err error) {
	snap := e.Snapshot()
	defer func() {
		if err != nil {
			e.Restore(snap)
		}
	}()

	items, ok := sexpr.AsList(form)
	if !ok || len(items) == 0 {
		return nil, fmt.Errorf("%w: top-level form must be a non-empty list", ErrElaborate)
	}
	head, ok := sexpr.AsSymbol(items[0])
	if !ok {
		return nil, fmt.Errorf("%w: top-level form must begin with a symbol", ErrElaborate)
	}
	rest := items[1:]

	switch head {
	case "declare":
		if err := el.elaborateDeclare(e, rest); err != nil {
			return nil, err
		}
		return nil, nil

	case "define-type":
		d, err := el.elaborateDefineType(e, rest)
		if err != nil {
			return nil, err
		}
		return []Descriptor{d}, nil

	case "define":
		d, err := el.elaborateDefine(e, rest)
		if err != nil {
			return nil, err
		}
		return []Descriptor{d}, nil

	case "group":
		var all []Descriptor
		for _, sub := range rest {
			ds, err := el.Elaborate(e, sub)
			if err != nil {
				return nil, err
			}
			all = append(all, ds...)
		}
		return all, nil

	default:
		return nil, fmt.Errorf("%w: unrecognised top-level head %q", ErrElaborate, head)
	}
}

// elaborateDeclare implements `(declare v T)`: parse T; if v is unknown,
// forward-declare it with a fresh internal name; set its declared type.
// Emits no descriptor.
func (el *Elaborator) elaborateDeclare(e *env.Environment, rest []sexpr.Form) error {
	if len(rest) != 2 {
		return fmt.Errorf("%w: \"declare\" takes exactly a name and a type", ErrElaborate)
	}
	name, ok := sexpr.AsSymbol(rest[0])
	if !ok {
		return fmt.Errorf("%w: \"declare\" name must be a symbol", ErrElaborate)
	}
	ty, _, err := typeparser.Parse(e, nil, nil, rest[1])
	if err != nil {
		return fmt.Errorf("declare %s: %w", name, err)
	}
	if info, exists := e.LookupTerm(name); exists {
		info.Declared = ty
		return nil
	}
	info := &env.TermInfo{Name: name, Declared: ty, InternalName: e.Gensym(name)}
	_, err = e.DeclareTerm(info)
	return err
}

// elaborateDefineType implements `(define-type (C v1...vn) ctor...)`. Every
// constructor's argument types are parsed — and any parse failure reported
// — before anything is written into e: building the TyCon and every
// CtorDescriptor first, then registering the TyCon and every constructor
// and predicate in one final pass, keeps a mid-parse failure from leaving
// a partially-registered type behind.
func (el *Elaborator) elaborateDefineType(e *env.Environment, rest []sexpr.Form) (*DataTypeDescriptor, error) {
	if len(rest) < 1 {
		return nil, fmt.Errorf("%w: \"define-type\" takes a head and zero or more constructors", ErrElaborate)
	}
	headItems, ok := sexpr.AsList(rest[0])
	if !ok || len(headItems) == 0 {
		return nil, fmt.Errorf("%w: \"define-type\" head must be a non-empty list", ErrElaborate)
	}
	typeName, ok := sexpr.AsSymbol(headItems[0])
	if !ok {
		return nil, fmt.Errorf("%w: \"define-type\" type name must be a symbol", ErrElaborate)
	}

	seed := typeparser.NewVarMap()
	tyArgs := make([]types.Type, 0, len(headItems)-1)
	for _, vf := range headItems[1:] {
		vname, ok := sexpr.AsSymbol(vf)
		if !ok {
			return nil, fmt.Errorf("%w: \"define-type\" type parameters must be symbols", ErrElaborate)
		}
		v := e.NewVar()
		v.SetName(vname)
		seed[vname] = v
		tyArgs = append(tyArgs, v)
	}

	tc := &types.TyCon{Name: typeName, Arity: len(tyArgs)}
	extra := []*types.TyCon{tc}
	resultType := &types.App{Con: tc, Args: tyArgs}

	boolTc, _ := e.LookupTyCon("Bool")
	predType := &types.Fun{From: []types.Type{resultType}, To: &types.App{Con: boolTc}}

	dataCons := make([]types.DataCon, 0, len(rest)-1)
	ctors := make([]CtorDescriptor, 0, len(rest)-1)

	for _, ctorForm := range rest[1:] {
		var ctorName string
		var ctorType types.Type

		switch c := ctorForm.(type) {
		case *sexpr.Symbol:
			ctorName = c.Name
			ctorType = resultType

		case *sexpr.List:
			if len(c.Items) == 0 {
				return nil, fmt.Errorf("%w: \"define-type\" constructor must be a symbol or a non-empty list", ErrElaborate)
			}
			name, ok := sexpr.AsSymbol(c.Items[0])
			if !ok {
				return nil, fmt.Errorf("%w: \"define-type\" constructor name must be a symbol", ErrElaborate)
			}
			ctorName = name
			argTypes := make([]types.Type, 0, len(c.Items)-1)
			for _, argForm := range c.Items[1:] {
				argTy, _, err := typeparser.Parse(e, extra, seed, argForm)
				if err != nil {
					return nil, fmt.Errorf("define-type %s, constructor %s: %w", typeName, ctorName, err)
				}
				argTypes = append(argTypes, argTy)
			}
			ctorType = &types.Fun{From: argTypes, To: resultType}

		default:
			return nil, fmt.Errorf("%w: \"define-type\" constructor must be a symbol or a list", ErrElaborate)
		}

		predName := ctorName + "-P"
		dataCons = append(dataCons, types.DataCon{Name: ctorName, PredicateName: predName})
		ctors = append(ctors, CtorDescriptor{
			Name:                  ctorName,
			PredicateName:         predName,
			InternalName:          e.Gensym(ctorName),
			PredicateInternalName: e.Gensym(predName),
			Type:                  ctorType,
			PredicateType:         predType,
		})
	}
	tc.Ctors = dataCons

	redef, err := e.DeclareTyCon(tc)
	if err != nil {
		return nil, fmt.Errorf("define-type %s: %w", typeName, err)
	}
	for _, c := range ctors {
		if _, err := e.DeclareTerm(&env.TermInfo{Name: c.Name, Declared: c.Type, InternalName: c.InternalName}); err != nil {
			return nil, fmt.Errorf("define-type %s, constructor %s: %w", typeName, c.Name, err)
		}
		if _, err := e.DeclareTerm(&env.TermInfo{Name: c.PredicateName, Declared: c.PredicateType, InternalName: c.PredicateInternalName}); err != nil {
			return nil, fmt.Errorf("define-type %s, predicate %s: %w", typeName, c.PredicateName, err)
		}
	}

	return &DataTypeDescriptor{TyCon: tc, Ctors: ctors, Redefinition: redef}, nil
}

// elaborateDefine implements `(define v e)` and its function-form sugar
// `(define (f a*) e)`, which desugars to
// `(define f (letrec ((f (fn (a*) e))) f))` before parsing.
func (el *Elaborator) elaborateDefine(e *env.Environment, rest []sexpr.Form) (*ValueDescriptor, error) {
	if len(rest) != 2 {
		return nil, fmt.Errorf("%w: \"define\" takes exactly a name (or signature) and a body", ErrElaborate)
	}

	var name string
	var valueForm sexpr.Form

	if sym, ok := sexpr.AsSymbol(rest[0]); ok {
		name = sym
		valueForm = rest[1]
	} else if sigItems, ok := sexpr.AsList(rest[0]); ok {
		if len(sigItems) == 0 {
			return nil, fmt.Errorf("%w: \"define\" function signature must be non-empty", ErrElaborate)
		}
		fname, ok := sexpr.AsSymbol(sigItems[0])
		if !ok {
			return nil, fmt.Errorf("%w: \"define\" function name must be a symbol", ErrElaborate)
		}
		name = fname
		fnForm := &sexpr.List{Items: []sexpr.Form{
			&sexpr.Symbol{Name: "fn"},
			&sexpr.List{Items: sigItems[1:]},
			rest[1],
		}}
		letrecForm := &sexpr.List{Items: []sexpr.Form{
			&sexpr.Symbol{Name: "letrec"},
			&sexpr.List{Items: []sexpr.Form{
				&sexpr.List{Items: []sexpr.Form{&sexpr.Symbol{Name: fname}, fnForm}},
			}},
			&sexpr.Symbol{Name: fname},
		}}
		valueForm = letrecForm
	} else {
		return nil, fmt.Errorf("%w: \"define\" name must be a symbol or a function signature", ErrElaborate)
	}

	node, err := el.Parser.Parse(e, valueForm)
	if err != nil {
		return nil, fmt.Errorf("define %s: %w", name, err)
	}
	if _, err := infer.Infer(e, nil, node); err != nil {
		return nil, fmt.Errorf("define %s: %w", name, err)
	}
	derived := infer.DeriveType(e, node)

	prior, existed := e.LookupTerm(name)
	internalName := e.Gensym(name)
	kind := KindDefine
	if existed {
		internalName = prior.InternalName
		kind = KindAssign
	}

	info := &env.TermInfo{
		Name:         name,
		Derived:      derived,
		Source:       valueForm,
		AST:          node,
		InternalName: internalName,
	}
	redef, err := e.DeclareTerm(info)
	if err != nil {
		return nil, fmt.Errorf("define %s: %w", name, err)
	}

	return &ValueDescriptor{
		Kind:         kind,
		Name:         name,
		InternalName: internalName,
		Node:         node,
		Type:         derived,
		Redefinition: redef,
	}, nil
}
