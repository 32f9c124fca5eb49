// Package unify implements the five-step unification algorithm over the
// Var/App/Fun type representation: prune both sides, bind an unbound
// variable with an occurs check, or dispatch structurally on App/Fun.
package unify

import (
	"errors"
	"fmt"

	"github.com/sineira/hindley/types"
)

// ErrOccursCheck is returned when unifying a variable with a type that
// contains that same variable, which would require an infinite type.
var ErrOccursCheck = errors.New("occurs check failed: infinite type")

// ErrMismatch is the sentinel wrapped by every head-symbol or structural
// disagreement Unify reports — two types that can never be made equal
// regardless of arity (App vs Fun, mismatched TyCons, an unknown type).
var ErrMismatch = errors.New("type mismatch")

// ErrArityMismatch is the sentinel wrapped when two Apps of the same TyCon,
// or two Funs, disagree only on argument count. Kept distinct from
// ErrMismatch so a caller can branch on "these would unify if one side had
// fewer/more arguments" separately from a genuine structural disagreement.
var ErrArityMismatch = errors.New("arity mismatch")

// OccursIn reports whether v occurs free anywhere inside t, after pruning.
// Identity equality on *types.Var is the correct test here, not structural
// or name equality: two distinct fresh variables may carry the same
// printed name once Unparse starts recycling letters, and comparing by
// pointer is what keeps the occurs check sound.
func OccursIn(s *types.Subst, v *types.Var, t types.Type) bool {
	t = types.Prune(s, t)
	switch t := t.(type) {
	case *types.Var:
		return t == v
	case *types.App:
		for _, arg := range t.Args {
			if OccursIn(s, v, arg) {
				return true
			}
		}
		return false
	case *types.Fun:
		for _, from := range t.From {
			if OccursIn(s, v, from) {
				return true
			}
		}
		return OccursIn(s, v, t.To)
	default:
		return false
	}
}

// Unify makes a and b equal under s, recording new links as needed, or
// returns an error describing the first disagreement found. The steps:
//
//  1. Prune both sides.
//  2. If either side is an unlinked variable, bind it to the other side
//     (after an occurs check), unless both sides are the same variable.
//  3. If both sides are Apps, their TyCons must match by identity (else
//     ErrMismatch) and by arity (else ErrArityMismatch), and their
//     argument lists unify pointwise.
//  4. If both sides are Funs, their parameter lists must have equal
//     length (else ErrArityMismatch) and unify pointwise, and their
//     results unify.
//  5. Any other pairing (App vs Fun, or an unknown type) is ErrMismatch.
func Unify(s *types.Subst, a, b types.Type) error {
	a = types.Prune(s, a)
	b = types.Prune(s, b)

	if av, ok := a.(*types.Var); ok {
		if bv, ok := b.(*types.Var); ok && av == bv {
			return nil
		}
		if OccursIn(s, av, b) {
			return fmt.Errorf("%w: %s", ErrOccursCheck, types.Unparse(s, b))
		}
		s.SetLink(av.Id(), b)
		return nil
	}

	if bv, ok := b.(*types.Var); ok {
		if OccursIn(s, bv, a) {
			return fmt.Errorf("%w: %s", ErrOccursCheck, types.Unparse(s, a))
		}
		s.SetLink(bv.Id(), a)
		return nil
	}

	switch a := a.(type) {
	case *types.App:
		bApp, ok := b.(*types.App)
		if !ok {
			return fmt.Errorf("%w: %s vs %s", ErrMismatch, types.Unparse(s, a), types.Unparse(s, b))
		}
		if a.Con != bApp.Con {
			return fmt.Errorf("%w: %s vs %s", ErrMismatch, a.Con.Name, bApp.Con.Name)
		}
		if len(a.Args) != len(bApp.Args) {
			return fmt.Errorf("%w: %s expects %d argument(s), got %d", ErrArityMismatch, a.Con.Name, len(a.Args), len(bApp.Args))
		}
		for i := range a.Args {
			if err := Unify(s, a.Args[i], bApp.Args[i]); err != nil {
				return err
			}
		}
		return nil

	case *types.Fun:
		bFun, ok := b.(*types.Fun)
		if !ok {
			return fmt.Errorf("%w: %s vs %s", ErrMismatch, types.Unparse(s, a), types.Unparse(s, b))
		}
		if len(a.From) != len(bFun.From) {
			return fmt.Errorf("%w: functions of arity %d and %d", ErrArityMismatch, len(a.From), len(bFun.From))
		}
		for i := range a.From {
			if err := Unify(s, a.From[i], bFun.From[i]); err != nil {
				return err
			}
		}
		return Unify(s, a.To, bFun.To)

	default:
		return fmt.Errorf("%w: unknown type %T", ErrMismatch, a)
	}
}
