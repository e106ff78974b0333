// Package diag defines the diagnostics emitted by the module metadata pass
// and the sink they are reported to.
package diag

import (
	"fmt"

	"github.com/jstools/modulemeta/ast"
)

// Kind identifies a diagnostic category.
type Kind string

const (
	MixedModuleType                   Kind = "mixed-module-type"
	InvalidNamespaceOrModuleID        Kind = "invalid-namespace-or-module-id"
	InvalidDeclareModuleIDCall        Kind = "invalid-declare-module-id-call"
	DeclareModuleIDOutsideES6Module   Kind = "declare-module-id-outside-es6-module"
	MultipleDeclareModuleNamespace    Kind = "multiple-declare-module-namespace"
	InvalidRequireNamespace           Kind = "invalid-require-namespace"
	InvalidRequireType                Kind = "invalid-require-type"
	InvalidSetTestOnly                Kind = "invalid-set-test-only"
	InvalidNestedLoadModule           Kind = "invalid-nested-load-module"
	InvalidProvideNamespace           Kind = "invalid-provide-namespace"
	InvalidModuleIDArg                Kind = "invalid-module-id-arg"
	DeclareLegacyNamespaceInNonModule Kind = "declare-legacy-namespace-in-non-module"
	DuplicateNamespace                Kind = "duplicate-namespace"
	DuplicateModule                   Kind = "duplicate-module"
	DuplicateNamespaceAndModule       Kind = "duplicate-namespace-and-module"
)

var templates = map[Kind]string{
	MixedModuleType: "a file cannot be both %s and %s",
	InvalidNamespaceOrModuleID: "namespace or module ID must be a dot-separated sequence of legal property" +
		" identifiers and may only contain ASCII letters, 0-9, $, ., and _; found %q",
	InvalidDeclareModuleIDCall:        "goog.declareModuleId parameter must be a string literal",
	DeclareModuleIDOutsideES6Module:   "goog.declareModuleId can only be called within ES6 modules",
	MultipleDeclareModuleNamespace:    "goog.declareModuleId can only be called once per ES6 module",
	InvalidRequireNamespace:           "argument to goog.require must be a string literal",
	InvalidRequireType:                "argument to goog.requireType must be a string literal",
	InvalidSetTestOnly:                "optional, single argument to goog.setTestOnly must be a string",
	InvalidNestedLoadModule:           "goog.loadModule cannot be nested",
	InvalidProvideNamespace:           "argument to goog.provide must be a string literal",
	InvalidModuleIDArg:                "argument to goog.module must be a string literal",
	DeclareLegacyNamespaceInNonModule: "goog.module.declareLegacyNamespace may only be called in a goog.module",
	DuplicateNamespace:                "namespace %q is already provided by %s",
	DuplicateModule:                   "module %q is already declared by %s",
	DuplicateNamespaceAndModule:       "%q is declared as both a namespace and a module; previously seen in %s",
}

// Diagnostic is one recorded problem: a kind, the source site, and the
// kind-specific format arguments.
type Diagnostic struct {
	Kind Kind
	Pos  ast.Position
	Args []any
}

// Message renders the human-readable text for the diagnostic.
func (d Diagnostic) Message() string {
	tmpl, ok := templates[d.Kind]
	if !ok {
		return string(d.Kind)
	}
	return fmt.Sprintf(tmpl, d.Args...)
}

func (d Diagnostic) String() string {
	return d.Pos.String() + ": " + d.Message()
}

// Reporter is the sink diagnostics are recorded against. All diagnostics are
// non-fatal to the pass; the pass continues with best-effort state after
// every report.
type Reporter interface {
	Report(d Diagnostic)
}

// Collector is a Reporter that retains diagnostics in report order.
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// ByKind returns the collected diagnostics of the given kind, in order.
func (c *Collector) ByKind(k Kind) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.Diagnostics {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}
