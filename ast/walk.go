package ast

// Visitor receives traversal events from Walk. Enter is called before a
// node's children; returning false skips the subtree (Leave is still called
// for the node itself). Leave is called after the children.
type Visitor interface {
	Enter(c *Cursor, n Node) bool
	Leave(c *Cursor, n Node)
}

// Cursor carries the traversal state: the enclosing file and the current
// lexical scope. A single Cursor is reused for the whole walk; callers must
// not retain it past a callback.
type Cursor struct {
	file  *File
	scope *Scope
}

// File returns the file enclosing the current node.
func (c *Cursor) File() *File { return c.file }

// Scope returns the lexical scope in effect at the current node.
func (c *Cursor) Scope() *Scope { return c.scope }

// Walk traverses f in source order, maintaining scopes and invoking v's
// hooks. Declarations become visible when their declaring node is entered.
func Walk(f *File, v Visitor) {
	walk(&Cursor{}, f, v)
}

func walk(c *Cursor, n Node, v Visitor) {
	if n == nil {
		return
	}

	savedFile, savedScope := c.file, c.scope

	switch t := n.(type) {
	case *File:
		c.file = t
		c.scope = NewScope(FileScope, savedScope)
	case *ModuleBody:
		c.scope = NewScope(ModuleScope, savedScope)
	case *Block:
		c.scope = NewScope(BlockScope, savedScope)
	case *Func:
		if t.Name != "" {
			c.scope.Declare(t.Name, c.file, t)
		}
		fn := NewScope(FunctionScope, savedScope)
		for _, p := range t.Params {
			fn.Declare(p, c.file, t)
		}
		c.scope = fn
	case *Var:
		for _, name := range t.Names {
			c.scope.Declare(name, c.file, t)
		}
	case *Import:
		if t.Star {
			c.scope.Declare(t.Alias, c.file, t)
		}
		if t.Default != "" {
			c.scope.Declare(t.Default, c.file, t)
		}
		for _, name := range t.Names {
			c.scope.Declare(name, c.file, t)
		}
	}

	if v.Enter(c, n) {
		switch t := n.(type) {
		case *File:
			for _, stmt := range t.Body {
				walk(c, stmt, v)
			}
		case *ModuleBody:
			for _, stmt := range t.Stmts {
				walk(c, stmt, v)
			}
		case *Export:
			walk(c, t.Decl, v)
		case *DynamicImport:
			walk(c, t.Arg, v)
		case *Call:
			walk(c, t.Callee, v)
			for _, arg := range t.Args {
				walk(c, arg, v)
			}
		case *Member:
			walk(c, t.Target, v)
		case *Var:
			walk(c, t.Init, v)
		case *Func:
			for _, stmt := range t.Body {
				walk(c, stmt, v)
			}
		case *Block:
			for _, stmt := range t.Stmts {
				walk(c, stmt, v)
			}
		case *Assign:
			walk(c, t.Target, v)
			walk(c, t.Value, v)
		}
	}

	v.Leave(c, n)
	c.file, c.scope = savedFile, savedScope
}
