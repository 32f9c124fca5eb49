package elaborate

import (
	"github.com/sineira/hindley/ast"
	"github.com/sineira/hindley/env"
	"github.com/sineira/hindley/types"
)

// Descriptor is the opaque artifact Elaborate emits for each top-level form
// that produces one: enough for a downstream code generator to emit a
// host-executable artifact. `declare` emits none.
type Descriptor interface {
	DescriptorName() string
}

// ValueKind distinguishes a brand-new binding from a re-definition of an
// existing one.
type ValueKind int

const (
	// KindDefine is emitted the first time a name is bound.
	KindDefine ValueKind = iota
	// KindAssign is emitted when a name already had a binding.
	KindAssign
)

// ValueDescriptor is emitted by `define` (and its `(f a*)` desugaring): the
// internal name to bind, the lowered expression tree, and its derived
// principal type.
type ValueDescriptor struct {
	Kind         ValueKind
	Name         string
	InternalName string
	Node         ast.Node
	Type         types.Type
	// Redefinition is non-nil when this define clobbered an existing
	// binding of the same name — the driver decides whether to warn, log,
	// or ignore it.
	Redefinition *env.Redefinition
}

func (*ValueDescriptor) DescriptorName() string { return "value" }

// CtorDescriptor is one data constructor, together with its membership
// predicate, registered by a `define-type` form.
type CtorDescriptor struct {
	Name                  string
	PredicateName         string
	InternalName          string
	PredicateInternalName string
	Type                  types.Type
	PredicateType         types.Type
}

// DataTypeDescriptor is emitted by `define-type`: the type constructor, its
// data constructors and their types, and their predicate names.
type DataTypeDescriptor struct {
	TyCon        *types.TyCon
	Ctors        []CtorDescriptor
	Redefinition *env.Redefinition
}

func (*DataTypeDescriptor) DescriptorName() string { return "data-type" }
