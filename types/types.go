// Package types defines the representation of types used throughout the
// inference core: type variables, type constructors, type applications, and
// function types.
package types

import "github.com/benbjohnson/immutable"

// Type is the base interface for all types. The three variants below are
// exhaustive: a Type is exactly a *Var, an *App, or a *Fun.
type Type interface {
	// TypeName identifies the concrete kind of type, for error messages.
	TypeName() string
}

// Var is a type variable: an as-yet-unknown type, distinguished by a unique,
// immutable id. A Var never stores its own resolved instance; resolution
// lives in a Subst (see Prune), which keeps unification trivially
// snapshot-restorable without threading ownership through every Var.
type Var struct {
	id   int
	name string // display name: the surface name given by the type parser, or one Unparse synthesizes and caches
}

// NewVar creates a type variable with the given id. Ids are allocated by an
// Environment (env.Environment.NewVar), never by a package-level counter, so
// two independently compiled units never collide.
func NewVar(id int) *Var { return &Var{id: id} }

func (v *Var) TypeName() string { return "Var" }

// Id returns the variable's unique, immutable identifier.
func (v *Var) Id() int { return v.id }

// Name returns the display name assigned by SetName (from the type parser,
// the elaborator, or Unparse), or "" if none has been assigned yet.
func (v *Var) Name() string { return v.name }

// SetName assigns the cached display name. Once set it is not expected to
// change; Unparse only calls this once per variable.
func (v *Var) SetName(name string) { v.name = name }

// TyCon is a type constructor: a named n-ary builder of types, e.g. `Maybe`
// of arity 1. Name and Arity are immutable once created; Ctors is mutated
// once, after a TyCon has been built but before it is committed to an
// Environment, to attach its data constructors.
type TyCon struct {
	Name  string
	Arity int
	Ctors []DataCon
}

// DataCon names a single data constructor of a TyCon and the membership
// predicate generated alongside it.
type DataCon struct {
	Name          string
	PredicateName string
}

// App is a type application: a TyCon applied to a (possibly empty) list of
// type arguments. A nullary TyCon applied to zero arguments, e.g. `Int`, is
// represented the same way as `Maybe a`: App{Con: Int, Args: nil}.
type App struct {
	Con  *TyCon
	Args []Type
}

func (t *App) TypeName() string { return "App" }

// Fun is a function type: an ordered list of argument types and a single
// return type. From may be empty, representing a nullary function.
type Fun struct {
	From []Type
	To   Type
}

func (t *Fun) TypeName() string { return "Fun" }

// Subst is the substitution built up by unification: a mapping from
// type-variable id to the type it has been bound to. It is implemented as a
// persistent map (github.com/benbjohnson/immutable) rather than as a mutable
// field on Var, so that Environment.Snapshot/Restore can roll a substitution
// back to an earlier point in O(1) without threading ownership of every Var
// through the caller.
type Subst struct {
	m *immutable.Map
}

// NewSubst creates an empty substitution.
func NewSubst() *Subst {
	return &Subst{m: immutable.NewMap(nil)}
}

// Snapshot is an opaque handle produced by Subst.Snapshot, restorable with
// Subst.Restore.
type Snapshot struct {
	m *immutable.Map
}

// Snapshot captures the current substitution for later rollback.
func (s *Subst) Snapshot() Snapshot { return Snapshot{m: s.m} }

// Restore rolls the substitution back to a previously captured Snapshot.
func (s *Subst) Restore(snap Snapshot) { s.m = snap.m }

// Link returns the type bound to variable id, if any.
func (s *Subst) Link(id int) (Type, bool) {
	v, ok := s.m.Get(id)
	if !ok {
		return nil, false
	}
	return v.(Type), true
}

// SetLink binds variable id to t. A variable's link, once set, must never be
// rebound to a different type by the caller; SetLink itself does not enforce
// this.
func (s *Subst) SetLink(id int, t Type) {
	s.m = s.m.Set(id, t)
}

// Prune follows a chain of linked type-variables to its terminal type,
// path-compressing intermediate links in the Subst as it goes. Non-Var types
// are returned unchanged. Prune(Prune(t)) == Prune(t) for any t.
func Prune(s *Subst, t Type) Type {
	v, ok := t.(*Var)
	if !ok {
		return t
	}
	link, ok := s.Link(v.Id())
	if !ok {
		return t
	}
	final := Prune(s, link)
	if final != link {
		s.SetLink(v.Id(), final)
	}
	return final
}
