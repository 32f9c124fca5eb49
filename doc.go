// hindley is the front-end and type-inference core of a small ML-like
// sublanguage embedded inside a dynamic host environment: an S-expression
// reader, a Hindley-Milner type system over type variables, type
// applications, and function types, a recursive-descent value parser, and
// a top-level elaborator that turns declare/define-type/define forms into
// environment updates and code-generation descriptors.
//
// Supported surface forms: fn, let, letrec, if, progn, lisp (a host escape
// hatch), application, top-level declare/define-type/define, and a group
// form that flattens nested groups into one sequence.
//
// Deliberately out of scope: code generation for any particular host
// runtime, a host evaluator, a REPL, macro-expansion semantics (the host
// supplies an opaque expansion callback), type aliases, module systems,
// type classes, kinds, subtyping, row polymorphism, GADTs, and elaborate
// recursive data definitions.
package hindley
