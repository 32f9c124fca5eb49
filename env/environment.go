// Package env implements the type environment: an explicit, per-session
// (never a package global) registry mapping type-constructor names to their
// arities and data constructors, and mapping term names to declared/derived
// types and source AST.
package env

import (
	"fmt"

	"github.com/sineira/hindley/ast"
	"github.com/sineira/hindley/sexpr"
	"github.com/sineira/hindley/types"
)

// TermInfo is the record held for every term name known to an Environment:
// its declared (user-supplied) and derived (inferred) types, its source form
// and parsed AST, and the opaque internal name the code generator should
// bind it to.
type TermInfo struct {
	Name         string
	Declared     types.Type
	Derived      types.Type
	Source       sexpr.Form
	AST          ast.Node
	InternalName string
}

// shared is the state every Environment in a parent/child chain refers to:
// the variable-id counter and the substitution built by unification. Exactly
// one shared exists per root Environment; child environments (opened for a
// lambda body, a let-binding, ...) point at the same shared so that
// unification performed while checking a nested scope is visible to its
// enclosing scope.
type shared struct {
	nextVarID int
	nextGenID int
	subst     *types.Subst
}

// Environment is a mapping from constructor-name to type-constructor
// descriptor and from term-name to TermInfo, chained to an optional parent
// for lexical scoping. An Environment cannot be used concurrently; a
// session confined to one goroutine may freely create and discard child
// environments.
type Environment struct {
	parent *Environment
	types  map[string]*types.TyCon
	terms  map[string]*TermInfo

	shared *shared

	// treatRedefinitionAsError configures whether DeclareTyCon/DeclareTerm
	// return a *Redefinition for the driver to inspect (the default: a
	// recoverable warning, proceed) or instead return it wrapped as an
	// error, aborting the top-level form.
	treatRedefinitionAsError bool
}

// NewRootEnvironment creates a fresh, empty Environment with no parent. Int,
// Bool, and Unit are preregistered as nullary type constructors: Int backs
// integer literals, Bool backs `if`'s test type, and Unit is the type of an
// empty `progn`.
func NewRootEnvironment() *Environment {
	e := &Environment{
		types:  make(map[string]*types.TyCon),
		terms:  make(map[string]*TermInfo),
		shared: &shared{subst: types.NewSubst()},
	}
	e.types["Int"] = &types.TyCon{Name: "Int", Arity: 0}
	e.types["Bool"] = &types.TyCon{Name: "Bool", Arity: 0}
	e.types["Unit"] = &types.TyCon{Name: "Unit", Arity: 0}
	return e
}

// NewChild opens a nested scope (for a lambda body, a let/letrec binding
// group, ...) that inherits lookups from parent but does not mutate it.
func NewChild(parent *Environment) *Environment {
	return &Environment{
		parent: parent,
		types:  make(map[string]*types.TyCon),
		terms:  make(map[string]*TermInfo),
		shared: parent.shared,
	}
}

// TreatRedefinitionAsError configures whether redeclaring a type constructor
// or term name is a hard error instead of a warning the driver may ignore.
// Disabled by default: redefinitions produce a warning and proceed.
func (e *Environment) TreatRedefinitionAsError(enabled bool) {
	e.root().treatRedefinitionAsError = enabled
}

func (e *Environment) root() *Environment {
	for e.parent != nil {
		e = e.parent
	}
	return e
}

// NewVar allocates a fresh, globally-unique (within this Environment's
// lineage) type variable.
func (e *Environment) NewVar() *types.Var {
	id := e.shared.nextVarID
	e.shared.nextVarID++
	return types.NewVar(id)
}

// Gensym allocates an internal code-generation name distinct from every
// other name this Environment's lineage has generated, of the form
// "prefix$N".
func (e *Environment) Gensym(prefix string) string {
	id := e.shared.nextGenID
	e.shared.nextGenID++
	return fmt.Sprintf("%s$%d", prefix, id)
}

// Subst returns the substitution shared by this Environment's entire
// lineage, for use by unify.Unify and types.Prune.
func (e *Environment) Subst() *types.Subst { return e.shared.subst }

// Snapshot captures the current substitution, for later rollback with
// Restore. It does not capture the type-constructor or term tables: those
// are append-mostly, and redefinition is an explicit, proceed-on-warning
// outcome, not a rollback scenario.
func (e *Environment) Snapshot() types.Snapshot { return e.shared.subst.Snapshot() }

// Restore rolls the substitution back to a Snapshot captured earlier in this
// Environment's lineage.
func (e *Environment) Restore(snap types.Snapshot) { e.shared.subst.Restore(snap) }

// LookupTyCon finds a type constructor by name, searching this Environment
// and then its ancestors.
func (e *Environment) LookupTyCon(name string) (*types.TyCon, bool) {
	if tc, ok := e.types[name]; ok {
		return tc, true
	}
	if e.parent == nil {
		return nil, false
	}
	return e.parent.LookupTyCon(name)
}

// DeclareTyCon registers tc under its own name in this Environment. If a
// type constructor of that name is already visible, DeclareTyCon returns a
// *Redefinition describing the clobber; by default the new TyCon still
// replaces the old in this Environment's own table (the warn-and-proceed
// policy), unless TreatRedefinitionAsError has been enabled, in which case
// an error is returned instead and no mutation occurs.
func (e *Environment) DeclareTyCon(tc *types.TyCon) (*Redefinition, error) {
	if prior, ok := e.LookupTyCon(tc.Name); ok {
		redef := &Redefinition{Kind: RedefinitionTyCon, PriorTyCon: prior, NewTyCon: tc}
		if e.root().treatRedefinitionAsError {
			return nil, fmt.Errorf("%w: type constructor %q", ErrRedefinition, tc.Name)
		}
		e.types[tc.Name] = tc
		return redef, nil
	}
	e.types[tc.Name] = tc
	return nil, nil
}

// LookupTerm finds a term's info by name, searching this Environment and
// then its ancestors.
func (e *Environment) LookupTerm(name string) (*TermInfo, bool) {
	if info, ok := e.terms[name]; ok {
		return info, true
	}
	if e.parent == nil {
		return nil, false
	}
	return e.parent.LookupTerm(name)
}

// DeclareTerm registers info under its own name in this Environment,
// following the same redefinition policy as DeclareTyCon.
func (e *Environment) DeclareTerm(info *TermInfo) (*Redefinition, error) {
	if prior, ok := e.LookupTerm(info.Name); ok {
		redef := &Redefinition{Kind: RedefinitionTerm, PriorTerm: prior, NewTerm: info}
		if e.root().treatRedefinitionAsError {
			return nil, fmt.Errorf("%w: term %q", ErrRedefinition, info.Name)
		}
		e.terms[info.Name] = info
		return redef, nil
	}
	e.terms[info.Name] = info
	return nil, nil
}

// DeclareTermType is a convenience for binding a bare name to a type with no
// source/AST, used for built-ins and test fixtures (e.g. declaring `+` or
// `true` before inferring an expression that uses them).
func (e *Environment) DeclareTermType(name string, t types.Type) {
	e.terms[name] = &TermInfo{Name: name, Declared: t, InternalName: e.Gensym(name)}
}
