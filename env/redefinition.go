package env

import (
	"errors"

	"github.com/sineira/hindley/types"
)

// ErrRedefinition is the sentinel wrapped when TreatRedefinitionAsError is
// enabled and a name is redeclared.
var ErrRedefinition = errors.New("redefinition")

// RedefinitionKind distinguishes which table a Redefinition clobbered.
type RedefinitionKind int

const (
	RedefinitionTyCon RedefinitionKind = iota
	RedefinitionTerm
)

// Redefinition is returned (not logged, not panicked) when declaring a type
// constructor or term name clobbers an existing entry, carrying both the
// prior and new entries so a driver can compare them, render its own
// message, or ignore the outcome entirely.
type Redefinition struct {
	Kind RedefinitionKind

	PriorTyCon *types.TyCon
	NewTyCon   *types.TyCon

	PriorTerm *TermInfo
	NewTerm   *TermInfo
}

func (r *Redefinition) Name() string {
	if r.Kind == RedefinitionTyCon {
		return r.NewTyCon.Name
	}
	return r.NewTerm.Name
}
