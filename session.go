package hindley

import (
	"fmt"

	"github.com/sineira/hindley/elaborate"
	"github.com/sineira/hindley/env"
	"github.com/sineira/hindley/sexpr"
	"github.com/sineira/hindley/valueparser"
)

// Session bundles one compilation unit's Environment and Elaborator: a
// Session is reused across every top-level form of one source unit, and a
// fresh one is created per independent unit.
type Session struct {
	Env        *env.Environment
	elaborator *elaborate.Elaborator
}

// NewSession returns a Session with a fresh root Environment. expand is the
// host macro-expansion callback (see valueparser.Expander); pass nil if the
// host registers no macros.
func NewSession(expand valueparser.Expander) *Session {
	parser := valueparser.NewParser(expand)
	e := env.NewRootEnvironment()
	return &Session{Env: e, elaborator: elaborate.NewElaborator(parser)}
}

// RegisterMacro marks name as a host macro head, routed through the
// Session's Expander when it appears as an application's rator.
func (s *Session) RegisterMacro(name string) {
	s.elaborator.Parser.RegisterMacro(name)
}

// LoadText reads every top-level form out of text, in source order, and
// elaborates each one in turn, stopping at the first error. It returns
// every descriptor produced by every form elaborated before the failure,
// if any.
func (s *Session) LoadText(text string) ([]elaborate.Descriptor, error) {
	forms, err := sexpr.ReadAll(text)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	var all []elaborate.Descriptor
	for _, form := range forms {
		ds, err := s.elaborator.Elaborate(s.Env, form)
		if err != nil {
			return all, err
		}
		all = append(all, ds...)
	}
	return all, nil
}

// LoadForm elaborates a single already-parsed top-level form.
func (s *Session) LoadForm(form sexpr.Form) ([]elaborate.Descriptor, error) {
	return s.elaborator.Elaborate(s.Env, form)
}
