// Package cjs holds the default heuristic for convention-based (CommonJS)
// export statements. The gatherer accepts an injectable predicate; this is
// the built-in fallback.
package cjs

import (
	"strings"

	"github.com/jstools/modulemeta/ast"
)

// IsExport reports whether n is a CommonJS export: an assignment targeting
// module.exports, a property of module.exports, or a property of exports.
// A bare require() call is deliberately not an export; only export
// statements force CommonJS classification.
func IsExport(n ast.Node) bool {
	assign, ok := n.(*ast.Assign)
	if !ok {
		return false
	}
	name, ok := ast.QualifiedName(assign.Target)
	if !ok {
		return false
	}
	return name == "module.exports" ||
		strings.HasPrefix(name, "module.exports.") ||
		strings.HasPrefix(name, "exports.")
}
