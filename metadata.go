package modulemeta

import "sort"

// ModuleKind classifies one unit (a file or a nested goog.loadModule body).
type ModuleKind int

const (
	// KindScript is a plain script: no module system evidence at all.
	KindScript ModuleKind = iota
	// KindES6Module is a file with import/export syntax or a module body.
	KindES6Module
	// KindGoogProvide is a script that calls goog.provide.
	KindGoogProvide
	// KindGoogModule is a file that calls goog.module.
	KindGoogModule
	// KindLegacyGoogModule is a goog.module that also calls
	// goog.module.declareLegacyNamespace, exposing its namespace globally.
	KindLegacyGoogModule
	// KindCommonJS is a script with convention-based export statements.
	KindCommonJS
)

func (k ModuleKind) String() string {
	switch k {
	case KindScript:
		return "script"
	case KindES6Module:
		return "es6-module"
	case KindGoogProvide:
		return "goog-provide"
	case KindGoogModule:
		return "goog-module"
	case KindLegacyGoogModule:
		return "legacy-goog-module"
	case KindCommonJS:
		return "common-js"
	}
	return "unknown"
}

// Description returns the phrasing used in diagnostics.
func (k ModuleKind) Description() string {
	switch k {
	case KindScript:
		return "a script"
	case KindES6Module:
		return "an ES6 module"
	case KindGoogProvide:
		return "a goog.provide'd file"
	case KindGoogModule:
		return "a goog.module"
	case KindLegacyGoogModule:
		return "a legacy goog.module"
	case KindCommonJS:
		return "a CommonJS module"
	}
	return "unknown"
}

// MarshalText makes kinds render as their String form in JSON and YAML
// output.
func (k ModuleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Metadata is the finalized, immutable record for one unit. Fields must not
// be mutated after finalization; several registry entries may share one
// Metadata value.
type Metadata struct {
	// Path is the unit's file identity. Empty for nested loadModule units,
	// which are addressed by namespace or through Nested.
	Path string
	// SourceFile names the file the unit's syntax lives in. For nested units
	// this is the enclosing file.
	SourceFile string
	Kind       ModuleKind
	// UsesClosure is set when the unit syntactically depends on the ambient
	// goog namespace.
	UsesClosure bool
	IsTestOnly  bool
	// GoogNamespaces holds every namespace the unit claimed, in claim order,
	// duplicates retained.
	GoogNamespaces      []string
	StronglyRequired    []string
	WeaklyRequired      []string
	ES6ImportSpecifiers []string
	// Nested holds finalized goog.loadModule units in call order.
	Nested []*Metadata
}

// IsES6Module reports whether the unit is an ES6 module.
func (m *Metadata) IsES6Module() bool { return m.Kind == KindES6Module }

// IsGoogModule reports whether the unit is a goog.module, legacy or not.
func (m *Metadata) IsGoogModule() bool {
	return m.Kind == KindGoogModule || m.Kind == KindLegacyGoogModule
}

// IsNonLegacyGoogModule reports whether the unit is a goog.module that does
// not declare a legacy namespace.
func (m *Metadata) IsNonLegacyGoogModule() bool { return m.Kind == KindGoogModule }

// IsModule reports whether the unit is a module of any flavor that gets
// rewritten (ES6 or goog.module).
func (m *Metadata) IsModule() bool { return m.IsES6Module() || m.IsGoogModule() }

// IsGoogProvide reports whether the unit is a goog.provide'd file.
func (m *Metadata) IsGoogProvide() bool { return m.Kind == KindGoogProvide }

// IsCommonJS reports whether the unit is a CommonJS module.
func (m *Metadata) IsCommonJS() bool { return m.Kind == KindCommonJS }

// IsScript reports whether no module-system evidence was found.
func (m *Metadata) IsScript() bool { return m.Kind == KindScript }

// MetadataMap is the immutable output of a completed pass: finalized units
// keyed by file identity and by claimed namespace.
type MetadataMap struct {
	byPath      map[string]*Metadata
	byNamespace map[string]*Metadata
}

func newMetadataMap(byPath, byNamespace map[string]*Metadata) *MetadataMap {
	return &MetadataMap{byPath: byPath, byNamespace: byNamespace}
}

// ByPath returns the unit with the given file identity, or nil.
func (m *MetadataMap) ByPath(path string) *Metadata { return m.byPath[path] }

// ByNamespace returns the unit that last claimed the namespace, or nil.
// When a namespace was claimed more than once the conflict was already
// diagnosed during the pass; the map only records the final owner.
func (m *MetadataMap) ByNamespace(namespace string) *Metadata {
	return m.byNamespace[namespace]
}

// Paths returns every registered file identity, sorted.
func (m *MetadataMap) Paths() []string {
	out := make([]string, 0, len(m.byPath))
	for p := range m.byPath {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Namespaces returns every registered namespace, sorted.
func (m *MetadataMap) Namespaces() []string {
	out := make([]string, 0, len(m.byNamespace))
	for ns := range m.byNamespace {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}
