package modulemeta

import (
	"github.com/jstools/modulemeta/ast"
	"github.com/jstools/modulemeta/diag"
	"github.com/jstools/modulemeta/internal/multiset"
)

// builder accumulates classification evidence for one unit while it is being
// traversed. Exactly one builder is current at any time; it is finalized by
// build exactly once, when the unit's boundary is left.
type builder struct {
	path       string // empty for nested loadModule units
	sourceFile string

	kind      ModuleKind
	ambiguous bool

	hasModuleBody    bool
	declaredModuleID ast.Node // site of the goog.declareModuleId call, if any
	legacyNamespace  ast.Node // site of the declareLegacyNamespace call, if any

	usesClosure bool
	isTestOnly  bool

	namespaces       *multiset.Multiset[string]
	strongRequires   []string
	weakRequires     []string
	importSpecifiers []string
	nested           []*Metadata
}

func newBuilder(path, sourceFile string) *builder {
	return &builder{
		path:       path,
		sourceFile: sourceFile,
		kind:       KindScript,
		namespaces: multiset.New[string](),
	}
}

func (b *builder) isScript() bool { return b.kind == KindScript }

// setKind records module-kind evidence found at site. The first non-script
// kind wins; observing a second, different non-script kind marks the unit
// ambiguous for the rest of its lifetime and suppresses the finalize-time
// promotions.
func (b *builder) setKind(kind ModuleKind, site ast.Node, r diag.Reporter) {
	if b.kind == kind {
		return
	}
	if b.kind == KindScript {
		b.kind = kind
		return
	}
	b.ambiguous = true
	r.Report(diag.Diagnostic{
		Kind: diag.MixedModuleType,
		Pos:  site.Pos(),
		Args: []any{b.kind.Description(), kind.Description()},
	})
}

func (b *builder) recordDeclareModuleID(site ast.Node) {
	b.declaredModuleID = site
}

func (b *builder) recordDeclareLegacyNamespace(site ast.Node) {
	b.legacyNamespace = site
}

// build finalizes the unit and returns its immutable record.
func (b *builder) build(r diag.Reporter) *Metadata {
	if !b.ambiguous {
		// A module body with no explicit import or export is still a module.
		if b.hasModuleBody && b.kind == KindScript {
			b.kind = KindES6Module
		}

		if b.declaredModuleID != nil && b.kind != KindES6Module {
			r.Report(diag.Diagnostic{
				Kind: diag.DeclareModuleIDOutsideES6Module,
				Pos:  b.declaredModuleID.Pos(),
			})
		}

		if b.legacyNamespace != nil {
			if b.kind == KindGoogModule {
				b.kind = KindLegacyGoogModule
			} else {
				r.Report(diag.Diagnostic{
					Kind: diag.DeclareLegacyNamespaceInNonModule,
					Pos:  b.legacyNamespace.Pos(),
				})
			}
		}
	}

	return &Metadata{
		Path:                b.path,
		SourceFile:          b.sourceFile,
		Kind:                b.kind,
		UsesClosure:         b.usesClosure,
		IsTestOnly:          b.isTestOnly,
		GoogNamespaces:      b.namespaces.Values(),
		StronglyRequired:    b.strongRequires,
		WeaklyRequired:      b.weakRequires,
		ES6ImportSpecifiers: b.importSpecifiers,
		Nested:              b.nested,
	}
}
