package modulemeta

import (
	"strings"

	"github.com/jstools/modulemeta/ast"
	"github.com/jstools/modulemeta/diag"
)

const (
	googRoot       = "goog"
	googLoadModule = "goog.loadModule"
)

// openUnit is one entry of the finder's unit stack: a building unit plus the
// goog.loadModule call that opened it (nil for the file unit).
type openUnit struct {
	b    *builder
	call *ast.Call
}

// finder is the traversal callback that drives classification. A fresh
// finder is used per file; the stack holds the current unit on top and its
// ancestors below. Nominal depth is two (file, then one loadModule body), but
// deeper nesting is tolerated: the extra call is diagnosed and the new unit
// still attaches to the unit that was current, so recovery keeps every unit
// finalized exactly once.
type finder struct {
	g     *Gatherer
	stack []openUnit
}

func (f *finder) current() *builder {
	if len(f.stack) == 0 {
		return nil
	}
	return f.stack[len(f.stack)-1].b
}

// openCall returns the loadModule call that opened the current unit, or nil
// when the current unit is the file itself.
func (f *finder) openCall() *ast.Call {
	if len(f.stack) == 0 {
		return nil
	}
	return f.stack[len(f.stack)-1].call
}

func (f *finder) Enter(c *ast.Cursor, n ast.Node) bool {
	switch t := n.(type) {
	case *ast.File:
		f.enterUnit(newBuilder(t.Path, t.Path), nil)
	case *ast.Import, *ast.Export:
		f.visitImportOrExport(n)
	case *ast.Call:
		if name, ok := ast.QualifiedName(t.Callee); ok && name == googLoadModule {
			if f.openCall() != nil {
				f.g.reporter.Report(diag.Diagnostic{Kind: diag.InvalidNestedLoadModule, Pos: t.Pos()})
			}
			f.enterUnit(newBuilder("", c.File().Path), t)
		}
	case *ast.ModuleBody:
		f.current().hasModuleBody = true
	case *ast.DynamicImport:
		f.visitDynamicImport(t)
	}
	return true
}

func (f *finder) Leave(c *ast.Cursor, n ast.Node) {
	switch t := n.(type) {
	case *ast.File:
		f.leaveUnit()
		return
	case *ast.Call:
		if f.openCall() == t {
			f.leaveUnit()
			return
		}
	}

	// Convention-based exports only matter while the unit is still a plain
	// script; a CommonJS require() alone never forces the classification.
	if f.g.opts.ProcessCommonJS && f.current() != nil && f.current().isScript() {
		if f.g.opts.CommonJSExport(n) {
			f.current().setKind(KindCommonJS, n, f.g.reporter)
			return
		}
	}

	switch t := n.(type) {
	case *ast.Ident:
		f.visitName(c, t)
	case *ast.Call:
		f.visitGoogCall(c, t)
	}
}

func (f *finder) enterUnit(b *builder, call *ast.Call) {
	f.stack = append(f.stack, openUnit{b: b, call: call})
}

// leaveUnit finalizes the current unit, registers it, and attaches it to its
// parent if one is pending.
func (f *finder) leaveUnit() {
	top := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]

	md := top.b.build(f.g.reporter)
	if md.Path != "" {
		f.g.modulesByPath[md.Path] = md
	}
	// Last writer wins; earlier conflicts were already diagnosed at the
	// claiming site.
	for _, namespace := range md.GoogNamespaces {
		f.g.modulesByNamespace[namespace] = md
	}

	if len(f.stack) > 0 {
		parent := f.stack[len(f.stack)-1].b
		parent.nested = append(parent.nested, md)
	}
}

func (f *finder) visitImportOrExport(n ast.Node) {
	b := f.current()
	b.setKind(KindES6Module, n, f.g.reporter)
	switch t := n.(type) {
	case *ast.Import:
		b.importSpecifiers = append(b.importSpecifiers, t.Specifier)
	case *ast.Export:
		if t.From != "" {
			b.importSpecifiers = append(b.importSpecifiers, t.From)
		}
	}
}

// visitDynamicImport records a literal specifier. Dynamic import alone does
// not prove the containing file is a module, so the kind is untouched.
func (f *finder) visitDynamicImport(n *ast.DynamicImport) {
	if s, ok := n.Arg.(*ast.String); ok {
		b := f.current()
		b.importSpecifiers = append(b.importSpecifiers, s.Value)
	}
}

// isGoogImport reports whether the binding was created by importing the
// canonical primitives module. Other tools are regex based, so that import is
// forced to the exact shape `import * as goog` with no other bindings, from a
// specifier ending in "/goog.js".
func isGoogImport(b *ast.Binding) bool {
	imp := b.Import
	return imp != nil && imp.Star && imp.Alias == googRoot &&
		imp.Default == "" && len(imp.Names) == 0 &&
		strings.HasSuffix(imp.Specifier, "/goog.js")
}

// visitName flags closure usage for a bare reference to the primitives root,
// unless the name resolves to some unrelated local binding.
func (f *finder) visitName(c *ast.Cursor, n *ast.Ident) {
	if n.Name != googRoot {
		return
	}
	if b := c.Scope().Lookup(googRoot); b != nil && !isGoogImport(b) {
		return
	}
	f.current().usesClosure = true
}

// visitGoogCall dispatches a call whose callee is a qualified name rooted at
// the primitives identifier.
func (f *finder) visitGoogCall(c *ast.Cursor, n *ast.Call) {
	callee, ok := n.Callee.(*ast.Member)
	if !ok {
		return
	}
	name, ok := ast.QualifiedName(callee)
	if !ok {
		return
	}
	root, _ := ast.RootName(callee)
	if root != googRoot {
		return
	}

	binding := c.Scope().Lookup(googRoot)

	// A locally defined goog can't be the global one.
	if binding != nil && binding.IsLocal() && !binding.Scope.IsModuleScope() {
		return
	}
	// A module-scoped goog counts only when it came from importing goog.js.
	if binding != nil && binding.Scope.IsModuleScope() && !isGoogImport(binding) {
		return
	}
	// A file that defines goog itself doesn't need Closure re-included.
	if binding == nil || binding.File != c.File() {
		f.current().usesClosure = true
	}

	b := f.current()
	switch name {
	case "goog.provide":
		b.setKind(KindGoogProvide, n, f.g.reporter)
		if namespace, ok := stringArg(n); ok {
			f.g.addNamespace(b, KindGoogProvide, namespace, n)
		} else {
			f.g.reporter.Report(diag.Diagnostic{Kind: diag.InvalidProvideNamespace, Pos: n.Pos()})
		}
	case "goog.module":
		b.setKind(KindGoogModule, n, f.g.reporter)
		if namespace, ok := stringArg(n); ok {
			f.g.addNamespace(b, KindGoogModule, namespace, n)
		} else {
			f.g.reporter.Report(diag.Diagnostic{Kind: diag.InvalidModuleIDArg, Pos: n.Pos()})
		}
	case "goog.module.declareLegacyNamespace":
		b.recordDeclareLegacyNamespace(n)
	case "goog.declareModuleId",
		// Deprecated alias, kept until callers migrate.
		"goog.module.declareNamespace":
		if b.declaredModuleID != nil {
			f.g.reporter.Report(diag.Diagnostic{Kind: diag.MultipleDeclareModuleNamespace, Pos: n.Pos()})
		}
		if namespace, ok := stringArg(n); ok {
			b.recordDeclareModuleID(n)
			f.g.addNamespace(b, KindGoogModule, namespace, n)
		} else {
			f.g.reporter.Report(diag.Diagnostic{Kind: diag.InvalidDeclareModuleIDCall, Pos: n.Pos()})
		}
	case "goog.require":
		if namespace, ok := stringArg(n); ok {
			b.strongRequires = append(b.strongRequires, namespace)
		} else {
			f.g.reporter.Report(diag.Diagnostic{Kind: diag.InvalidRequireNamespace, Pos: n.Pos()})
		}
	case "goog.requireType":
		if namespace, ok := stringArg(n); ok {
			b.weakRequires = append(b.weakRequires, namespace)
		} else {
			f.g.reporter.Report(diag.Diagnostic{Kind: diag.InvalidRequireType, Pos: n.Pos()})
		}
	case "goog.setTestOnly":
		switch {
		case len(n.Args) == 0:
			b.isTestOnly = true
		case len(n.Args) == 1:
			if _, ok := n.Args[0].(*ast.String); ok {
				b.isTestOnly = true
			} else {
				f.g.reporter.Report(diag.Diagnostic{Kind: diag.InvalidSetTestOnly, Pos: n.Pos()})
			}
		default:
			f.g.reporter.Report(diag.Diagnostic{Kind: diag.InvalidSetTestOnly, Pos: n.Pos()})
		}
	}
}

// stringArg returns the sole string-literal argument of a call.
func stringArg(n *ast.Call) (string, bool) {
	if len(n.Args) != 1 {
		return "", false
	}
	s, ok := n.Args[0].(*ast.String)
	if !ok {
		return "", false
	}
	return s.Value, true
}
