// Package ast defines the syntax-tree surface consumed by the module
// metadata pass: a closed set of node variants, an enter/leave tree walker,
// and a lexical scope model with binding lookups.
//
// Trees are produced by an external parser (or decoded from its dumps, see
// internal/treeio); this package deliberately carries only the syntax the
// classifier dispatches on.
package ast

import "fmt"

// Position identifies a point in a source file. The zero value means the
// position is unknown.
type Position struct {
	File string
	Line int
	Col  int
}

func (p Position) String() string {
	if p.File == "" {
		return "<unknown>"
	}
	if p.Line == 0 {
		return p.File
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// Node is implemented by every syntax-tree node.
type Node interface {
	Pos() Position
	node()
}

// File is the root of one source file's tree. Path is the file's identity as
// supplied by the loader and is used as the metadata map key.
type File struct {
	Path string
	Body []Node
	Loc  Position
}

// ModuleBody wraps the statements of a file the parser recognized as a
// module. Its mere presence is classification evidence, even when the file
// contains no import or export statement.
type ModuleBody struct {
	Stmts []Node
	Loc   Position
}

// Import is a static import declaration.
type Import struct {
	Specifier string
	Star      bool   // import * as Alias
	Alias     string // local name for a star import
	Default   string // local name for a default import, if any
	Names     []string
	Loc       Position
}

// Export is an export declaration. From is non-empty for re-exports with a
// source specifier (export ... from "spec").
type Export struct {
	From string
	Decl Node
	Loc  Position
}

// DynamicImport is an import(...) expression.
type DynamicImport struct {
	Arg Node
	Loc Position
}

// Call is a call expression.
type Call struct {
	Callee Node
	Args   []Node
	Loc    Position
}

// Member is a property access whose property name is statically known
// (a.b, a.b.c, ...).
type Member struct {
	Target   Node
	Property string
	Loc      Position
}

// Ident is an identifier reference.
type Ident struct {
	Name string
	Loc  Position
}

// String is a string literal.
type String struct {
	Value string
	Loc   Position
}

// Number is a numeric literal.
type Number struct {
	Value float64
	Loc   Position
}

// Var is a variable declaration statement.
type Var struct {
	Names []string
	Init  Node
	Loc   Position
}

// Func is a function declaration or function literal. Name is empty for
// anonymous functions.
type Func struct {
	Name   string
	Params []string
	Body   []Node
	Loc    Position
}

// Block is a braced statement list.
type Block struct {
	Stmts []Node
	Loc   Position
}

// Assign is an assignment expression statement.
type Assign struct {
	Target Node
	Value  Node
	Loc    Position
}

func (n *File) Pos() Position          { return n.Loc }
func (n *ModuleBody) Pos() Position    { return n.Loc }
func (n *Import) Pos() Position        { return n.Loc }
func (n *Export) Pos() Position        { return n.Loc }
func (n *DynamicImport) Pos() Position { return n.Loc }
func (n *Call) Pos() Position          { return n.Loc }
func (n *Member) Pos() Position        { return n.Loc }
func (n *Ident) Pos() Position         { return n.Loc }
func (n *String) Pos() Position        { return n.Loc }
func (n *Number) Pos() Position        { return n.Loc }
func (n *Var) Pos() Position           { return n.Loc }
func (n *Func) Pos() Position          { return n.Loc }
func (n *Block) Pos() Position         { return n.Loc }
func (n *Assign) Pos() Position        { return n.Loc }

func (*File) node()          {}
func (*ModuleBody) node()    {}
func (*Import) node()        {}
func (*Export) node()        {}
func (*DynamicImport) node() {}
func (*Call) node()          {}
func (*Member) node()        {}
func (*Ident) node()         {}
func (*String) node()        {}
func (*Number) node()        {}
func (*Var) node()           {}
func (*Func) node()          {}
func (*Block) node()         {}
func (*Assign) node()        {}

// QualifiedName returns the dotted name of an Ident or a Member chain rooted
// at an Ident ("goog", "goog.module.declareLegacyNamespace"). ok is false for
// any other node shape, e.g. a computed access or a call result.
func QualifiedName(n Node) (string, bool) {
	switch n := n.(type) {
	case *Ident:
		return n.Name, true
	case *Member:
		prefix, ok := QualifiedName(n.Target)
		if !ok {
			return "", false
		}
		return prefix + "." + n.Property, true
	}
	return "", false
}

// RootName returns the leftmost identifier of a qualified-name chain.
func RootName(n Node) (string, bool) {
	for {
		switch t := n.(type) {
		case *Ident:
			return t.Name, true
		case *Member:
			n = t.Target
		default:
			return "", false
		}
	}
}
