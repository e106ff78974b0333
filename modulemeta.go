// Package modulemeta classifies every file of a compilation — and every
// nested goog.loadModule body within a file — into its module system, and
// builds a queryable map of per-unit metadata plus a global namespace
// registry with duplicate detection.
//
// Competing conventions are recognized in a single forward traversal per
// file: plain scripts, ES6 modules, goog.provide files, goog.module files
// (optionally legacy), and convention-based CommonJS modules. Downstream
// passes consume the resulting MetadataMap to resolve imports, rewrite
// modules, and validate dependency graphs.
package modulemeta

import (
	"fmt"

	"github.com/jstools/modulemeta/ast"
	"github.com/jstools/modulemeta/diag"
	"github.com/jstools/modulemeta/internal/cjs"
	"github.com/jstools/modulemeta/internal/ident"
)

// LanguageLevel selects which identifier syntax is legal in a strict
// qualified name (goog.provide namespaces).
type LanguageLevel int

const (
	// ES3 forbids reserved words as property-name segments.
	ES3 LanguageLevel = iota
	// ES5AndUp allows reserved words as property-name segments.
	ES5AndUp
)

// Options configure a Gatherer.
type Options struct {
	// ProcessCommonJS enables convention-based (CommonJS) module detection.
	ProcessCommonJS bool
	// CommonJSExport decides whether a statement counts as a CommonJS
	// export. Nil selects the built-in heuristic. Only consulted while the
	// containing unit is still classified as a plain script.
	CommonJSExport func(ast.Node) bool
	// Language is the feature set used to validate goog.provide namespaces.
	Language LanguageLevel
}

// Gatherer runs the classification pass. It owns the namespace registry that
// both traversals (externs, then program) mutate; a Gatherer is single-use
// and not safe for concurrent use.
type Gatherer struct {
	opts     Options
	reporter diag.Reporter

	// modulesByPath maps file identity to the finalized unit for that file,
	// covering every namespace the file declares.
	modulesByPath map[string]*Metadata
	// modulesByNamespace maps each claimed namespace to the finalized unit
	// that last claimed it.
	modulesByNamespace map[string]*Metadata

	fatal error
}

// New creates a Gatherer reporting to r.
func New(r diag.Reporter, opts Options) *Gatherer {
	if opts.CommonJSExport == nil {
		opts.CommonJSExport = cjs.IsExport
	}
	return &Gatherer{
		opts:               opts,
		reporter:           r,
		modulesByPath:      make(map[string]*Metadata),
		modulesByNamespace: make(map[string]*Metadata),
	}
}

// Process classifies the externs forest, then the program forest, against a
// shared registry, and returns the frozen metadata map. File order is
// significant: a later claim of an already-claimed namespace reports the
// earlier claimant as the conflict source.
//
// The returned error is non-nil only for the internal registry-invariant
// fault; every user-facing problem is reported as a diagnostic and the pass
// continues past it. Diagnostics emitted before a fault are not retracted.
func (g *Gatherer) Process(externs, program []*ast.File) (*MetadataMap, error) {
	for _, file := range externs {
		ast.Walk(file, &finder{g: g})
	}
	for _, file := range program {
		ast.Walk(file, &finder{g: g})
	}
	if g.fatal != nil {
		return nil, g.fatal
	}
	return newMetadataMap(g.modulesByPath, g.modulesByNamespace), nil
}

// addNamespace validates a claimed namespace, runs conflict detection
// against the unit's own earlier claims and the shared registry, and records
// the claim. Validation failures and conflicts are non-fatal: the namespace
// is retained either way so later self-duplicates are still detected.
func (g *Gatherer) addNamespace(b *builder, claimKind ModuleKind, namespace string, site ast.Node) {
	switch claimKind {
	case KindGoogProvide:
		if !ident.IsValidQualifiedName(namespace, g.opts.Language >= ES5AndUp) {
			g.reporter.Report(diag.Diagnostic{
				Kind: diag.InvalidNamespaceOrModuleID,
				Pos:  site.Pos(),
				Args: []any{namespace},
			})
		}
	case KindGoogModule:
		// Module IDs don't need to be valid qualified names.
		if !ident.IsValidModuleID(namespace) {
			g.reporter.Report(diag.Diagnostic{
				Kind: diag.InvalidNamespaceOrModuleID,
				Pos:  site.Pos(),
				Args: []any{namespace},
			})
		}
	}

	var (
		existingKind   ModuleKind
		existingSource string
		found          bool
	)
	if b.namespaces.Contains(namespace) {
		existingKind, existingSource, found = b.kind, b.sourceFile, true
	} else if existing := g.modulesByNamespace[namespace]; existing != nil {
		existingKind, existingSource, found = existing.Kind, existing.SourceFile, true
	}

	b.namespaces.Add(namespace)

	if !found {
		return
	}

	switch existingKind {
	case KindES6Module, KindGoogModule, KindLegacyGoogModule:
		kind := diag.DuplicateModule
		if claimKind == KindGoogProvide {
			kind = diag.DuplicateNamespaceAndModule
		}
		g.reporter.Report(diag.Diagnostic{Kind: kind, Pos: site.Pos(), Args: []any{namespace, existingSource}})
	case KindGoogProvide:
		kind := diag.DuplicateNamespace
		if claimKind != KindGoogProvide {
			kind = diag.DuplicateNamespaceAndModule
		}
		g.reporter.Report(diag.Diagnostic{Kind: kind, Pos: site.Pos(), Args: []any{namespace, existingSource}})
	default:
		// Script and CommonJS units can only reach the registry through a
		// bug in this pass; fail the whole pass rather than emit a
		// user-facing diagnostic for it.
		if g.fatal == nil {
			g.fatal = fmt.Errorf(
				"modulemeta: namespace registry corrupt: %q owned by %s unit from %s",
				namespace, existingKind, existingSource)
		}
	}
}
