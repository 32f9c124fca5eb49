package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sineira/hindley/types"
)

func TestPreregisteredTyCons(t *testing.T) {
	e := NewRootEnvironment()
	_, ok := e.LookupTyCon("Int")
	assert.True(t, ok, "expected Int to be preregistered")
	_, ok = e.LookupTyCon("Bool")
	assert.True(t, ok, "expected Bool to be preregistered")
	_, ok = e.LookupTyCon("Unit")
	assert.True(t, ok, "expected Unit to be preregistered")
}

func TestChildInheritsParentLookups(t *testing.T) {
	root := NewRootEnvironment()
	root.DeclareTermType("x", &types.App{Con: &types.TyCon{Name: "Int"}})
	child := NewChild(root)
	_, ok := child.LookupTerm("x")
	assert.True(t, ok, "expected child to see parent's term")
}

func TestDeclareTyConRedefinitionWarns(t *testing.T) {
	e := NewRootEnvironment()
	redef, err := e.DeclareTyCon(&types.TyCon{Name: "Maybe", Arity: 1})
	require.NoError(t, err)
	require.Nil(t, redef, "expected first declaration to succeed cleanly")

	redef, err = e.DeclareTyCon(&types.TyCon{Name: "Maybe", Arity: 2})
	require.NoError(t, err)
	require.NotNil(t, redef, "expected redefinition describing prior and new TyCon")
	assert.Equal(t, 1, redef.PriorTyCon.Arity)
	assert.Equal(t, 2, redef.NewTyCon.Arity)

	tc, _ := e.LookupTyCon("Maybe")
	assert.Equal(t, 2, tc.Arity, "expected redefinition to proceed and replace the entry")
}

func TestDeclareTyConRedefinitionAsError(t *testing.T) {
	e := NewRootEnvironment()
	e.TreatRedefinitionAsError(true)
	_, err := e.DeclareTyCon(&types.TyCon{Name: "Int", Arity: 0})
	assert.ErrorIs(t, err, ErrRedefinition)
}

func TestSnapshotRestoreThroughEnvironment(t *testing.T) {
	e := NewRootEnvironment()
	v := e.NewVar()
	snap := e.Snapshot()
	e.Subst().SetLink(v.Id(), &types.App{Con: &types.TyCon{Name: "Int"}})
	e.Restore(snap)
	_, ok := e.Subst().Link(v.Id())
	assert.False(t, ok, "expected restore to undo the link")
}

func TestGensymUnique(t *testing.T) {
	e := NewRootEnvironment()
	a := e.Gensym("f")
	b := e.Gensym("f")
	assert.NotEqual(t, a, b, "expected distinct gensyms")
}
