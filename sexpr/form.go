// Package sexpr implements the tree-structured surface syntax handed to the
// core by its host: atoms and proper lists of atoms. It has no knowledge of
// the value or type grammars layered on top of it in valueparser and
// typeparser.
package sexpr

import "strconv"

// Form is a surface form: an Int, a Symbol, or a List of Forms. A nil Form
// represents a null atom.
type Form interface {
	// FormName identifies the concrete kind of form, for error messages.
	FormName() string
	String() string
}

// Int is an integer literal atom.
type Int struct {
	Value int64
}

func (f *Int) FormName() string { return "integer" }
func (f *Int) String() string   { return strconv.FormatInt(f.Value, 10) }

// Symbol is an identifier atom: a variable, constructor name, or keyword.
type Symbol struct {
	Name string
}

func (f *Symbol) FormName() string { return "symbol" }
func (f *Symbol) String() string   { return f.Name }

// List is a proper list of forms: `(a b c)`.
type List struct {
	Items []Form
}

func (f *List) FormName() string { return "list" }
func (f *List) String() string {
	s := "("
	for i, item := range f.Items {
		if i > 0 {
			s += " "
		}
		s += formString(item)
	}
	return s + ")"
}

func formString(f Form) string {
	if f == nil {
		return "<null>"
	}
	return f.String()
}

// Head returns the first element of a List, or nil if the list is empty or f
// is not a List.
func Head(f Form) Form {
	l, ok := f.(*List)
	if !ok || len(l.Items) == 0 {
		return nil
	}
	return l.Items[0]
}

// HeadSymbol returns the name of a List's first element, if the list is
// non-empty and its first element is a Symbol.
func HeadSymbol(f Form) (string, bool) {
	s, ok := Head(f).(*Symbol)
	if !ok {
		return "", false
	}
	return s.Name, true
}

// AsSymbol reports whether f is a Symbol, returning its name.
func AsSymbol(f Form) (string, bool) {
	s, ok := f.(*Symbol)
	if !ok {
		return "", false
	}
	return s.Name, true
}

// AsList reports whether f is a List, returning its items.
func AsList(f Form) ([]Form, bool) {
	l, ok := f.(*List)
	if !ok {
		return nil, false
	}
	return l.Items, true
}
