package ast

// ScopeKind distinguishes the lexical scope classes the classifier cares
// about. File scope is the top-level scope of a plain script; module scope is
// the top-level scope introduced by a ModuleBody.
type ScopeKind int

const (
	FileScope ScopeKind = iota
	ModuleScope
	FunctionScope
	BlockScope
)

func (k ScopeKind) String() string {
	switch k {
	case FileScope:
		return "file"
	case ModuleScope:
		return "module"
	case FunctionScope:
		return "function"
	case BlockScope:
		return "block"
	}
	return "unknown"
}

// Scope is one lexical scope in the chain maintained during a Walk.
type Scope struct {
	Kind     ScopeKind
	Parent   *Scope
	bindings map[string]*Binding
}

// Binding is a name declared in a scope. Import is non-nil when the binding
// was created by an import declaration.
type Binding struct {
	Name   string
	Scope  *Scope
	File   *File // file containing the declaration
	Decl   Node
	Import *Import
}

// IsLocal reports whether the binding is anything but a script top-level
// declaration. Module-scoped bindings count as local; callers that care use
// Scope.IsModuleScope to tell them apart.
func (b *Binding) IsLocal() bool {
	return b.Scope.Kind != FileScope
}

// NewScope creates a child scope of parent (parent may be nil).
func NewScope(kind ScopeKind, parent *Scope) *Scope {
	return &Scope{Kind: kind, Parent: parent, bindings: make(map[string]*Binding)}
}

// IsModuleScope reports whether this is the top-level scope of a module body.
func (s *Scope) IsModuleScope() bool { return s.Kind == ModuleScope }

// Declare adds a binding for name to this scope, overwriting any earlier
// same-name binding in the same scope.
func (s *Scope) Declare(name string, file *File, decl Node) *Binding {
	b := &Binding{Name: name, Scope: s, File: file, Decl: decl}
	if imp, ok := decl.(*Import); ok {
		b.Import = imp
	}
	s.bindings[name] = b
	return b
}

// Lookup resolves name through the scope chain. It returns nil when the name
// resolves to nothing, i.e. an ambient (global) reference.
func (s *Scope) Lookup(name string) *Binding {
	for sc := s; sc != nil; sc = sc.Parent {
		if b, ok := sc.bindings[name]; ok {
			return b
		}
	}
	return nil
}
