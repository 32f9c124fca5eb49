package types

import "strings"

// nameForIndex supplies the sequence of single-letter display names assigned
// to otherwise-anonymous type variables: 'a, 'b, 'c, ... wrapping into 'a1,
// 'b1, ... past 26 variables.
func nameForIndex(i int) string {
	letter := string(byte('a' + i%26))
	if i < 26 {
		return "'" + letter
	}
	return "'" + letter + itoa(i/26)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(byte('0'+n%10)) + digits
		n /= 10
	}
	return digits
}

// Unparse produces a surface-syntax representation of t, following instance
// chains through s and synthesizing human-readable names for otherwise
// anonymous variables. Names are generated once per variable and cached on
// it (Var.SetName), so repeated calls to Unparse print the same variable
// identically even across separate top-level forms.
func Unparse(s *Subst, t Type) string {
	p := &printer{subst: s, nextName: 0}
	var sb strings.Builder
	p.write(&sb, t)
	return sb.String()
}

type printer struct {
	subst    *Subst
	nextName int
}

func (p *printer) write(sb *strings.Builder, t Type) {
	t = Prune(p.subst, t)
	switch t := t.(type) {
	case *Var:
		sb.WriteString(p.nameOf(t))
	case *App:
		sb.WriteString(t.Con.Name)
		for _, arg := range t.Args {
			sb.WriteByte(' ')
			p.write(sb, arg)
		}
	case *Fun:
		p.writeFun(sb, t)
	default:
		sb.WriteString("<unknown type>")
	}
}

func (p *printer) writeFun(sb *strings.Builder, f *Fun) {
	switch len(f.From) {
	case 0:
		sb.WriteString("() -> ")
	case 1:
		p.writeArg(sb, f.From[0])
		sb.WriteString(" -> ")
	default:
		sb.WriteByte('(')
		for i, arg := range f.From {
			if i > 0 {
				sb.WriteString(",")
			}
			p.write(sb, arg)
		}
		sb.WriteString(") -> ")
	}
	p.write(sb, f.To)
}

// writeArg parenthesizes a single function-type argument if it is itself a
// function, so `(a -> b) -> c` does not print as the ambiguous `a -> b -> c`.
func (p *printer) writeArg(sb *strings.Builder, t Type) {
	if _, ok := Prune(p.subst, t).(*Fun); ok {
		sb.WriteByte('(')
		p.write(sb, t)
		sb.WriteByte(')')
		return
	}
	p.write(sb, t)
}

func (p *printer) nameOf(v *Var) string {
	if v.Name() != "" {
		return v.Name()
	}
	name := nameForIndex(p.nextName)
	p.nextName++
	v.SetName(name)
	return name
}
