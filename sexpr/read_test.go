package sexpr

import "testing"

func TestReadAtoms(t *testing.T) {
	f, err := Read("42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i, ok := f.(*Int)
	if !ok || i.Value != 42 {
		t.Fatalf("expected Int(42), got %#v", f)
	}

	f, err = Read("foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := f.(*Symbol)
	if !ok || s.Name != "foo" {
		t.Fatalf("expected Symbol(foo), got %#v", f)
	}
}

func TestReadNestedList(t *testing.T) {
	f, err := Read("(fn (x) (f x 1))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l, ok := f.(*List)
	if !ok || len(l.Items) != 3 {
		t.Fatalf("expected 3-item list, got %#v", f)
	}
	head, ok := AsSymbol(l.Items[0])
	if !ok || head != "fn" {
		t.Fatalf("expected head symbol fn, got %#v", l.Items[0])
	}
}

func TestReadAllMultipleTopLevelForms(t *testing.T) {
	forms, err := ReadAll("(declare x Int)\n(define x 1)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forms) != 2 {
		t.Fatalf("expected 2 top-level forms, got %d", len(forms))
	}
}

func TestReadUnterminatedList(t *testing.T) {
	if _, err := Read("(fn (x) x"); err == nil {
		t.Fatalf("expected error for unterminated list")
	}
}

func TestReadComment(t *testing.T) {
	f, err := Read("; a comment\n(fn (x) x)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := f.(*List); !ok {
		t.Fatalf("expected list, got %#v", f)
	}
}
