package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jstools/modulemeta"
	"github.com/jstools/modulemeta/ast"
	"github.com/jstools/modulemeta/diag"
	"github.com/jstools/modulemeta/internal/treeio"
)

var (
	flagExterns  []string
	flagFormat   string
	flagCommonJS bool
	flagLang     string
	flagVerbose  bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Prefix:          "modulemeta",
})

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modulemeta [flags] tree.json...",
		Short: "Classify module metadata from parsed syntax trees",
		Long: `modulemeta reads syntax-tree dumps (one JSON document per source file,
as produced by the parser's dump mode), classifies each file and each nested
goog.loadModule body into its module system, and prints the metadata map.

Conflicting or malformed namespace declarations are reported on stderr;
they do not stop the pass.`,
		Args:          cobra.MinimumNArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringArrayVar(&flagExterns, "externs", nil, "tree dump processed as externs, before the program files (repeatable)")
	cmd.Flags().StringVarP(&flagFormat, "format", "f", "json", "output format: json or yaml (env: MODULEMETA_FORMAT)")
	cmd.Flags().BoolVar(&flagCommonJS, "common-js", false, "detect convention-based CommonJS modules")
	cmd.Flags().StringVar(&flagLang, "lang", "esnext", "language level for namespace validation: es3 or esnext")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	viper.SetEnvPrefix("MODULEMETA")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("lang", cmd.Flags().Lookup("lang"))

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	lang, err := parseLang(viper.GetString("lang"))
	if err != nil {
		return err
	}

	externs, err := loadTrees(flagExterns)
	if err != nil {
		return err
	}
	program, err := loadTrees(args)
	if err != nil {
		return err
	}

	collector := &diag.Collector{}
	gatherer := modulemeta.New(collector, modulemeta.Options{
		ProcessCommonJS: flagCommonJS,
		Language:        lang,
	})

	metadata, err := gatherer.Process(externs, program)
	for _, d := range collector.Diagnostics {
		logger.Warn(d.Message(), "kind", d.Kind, "pos", d.Pos)
	}
	if err != nil {
		return err
	}

	logger.Debug("pass complete",
		"files", len(metadata.Paths()),
		"namespaces", len(metadata.Namespaces()),
		"diagnostics", len(collector.Diagnostics),
	)

	return render(cmd, metadata, viper.GetString("format"))
}

func parseLang(lang string) (modulemeta.LanguageLevel, error) {
	switch strings.ToLower(lang) {
	case "es3":
		return modulemeta.ES3, nil
	case "es5", "esnext":
		return modulemeta.ES5AndUp, nil
	}
	return 0, fmt.Errorf("unknown language level %q (want es3 or esnext)", lang)
}

func loadTrees(paths []string) ([]*ast.File, error) {
	files := make([]*ast.File, 0, len(paths))
	for _, path := range paths {
		f, err := treeio.DecodeFile(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded tree", "path", f.Path)
		files = append(files, f)
	}
	return files, nil
}

// unitView is the serialized form of one finalized unit.
type unitView struct {
	Path             string     `json:"path,omitempty" yaml:"path,omitempty"`
	Kind             string     `json:"kind" yaml:"kind"`
	UsesClosure      bool       `json:"usesClosure,omitempty" yaml:"usesClosure,omitempty"`
	TestOnly         bool       `json:"testOnly,omitempty" yaml:"testOnly,omitempty"`
	Namespaces       []string   `json:"namespaces,omitempty" yaml:"namespaces,omitempty"`
	StronglyRequired []string   `json:"stronglyRequired,omitempty" yaml:"stronglyRequired,omitempty"`
	WeaklyRequired   []string   `json:"weaklyRequired,omitempty" yaml:"weaklyRequired,omitempty"`
	ImportSpecifiers []string   `json:"importSpecifiers,omitempty" yaml:"importSpecifiers,omitempty"`
	Nested           []unitView `json:"nested,omitempty" yaml:"nested,omitempty"`
}

type mapView struct {
	Files      []unitView        `json:"files" yaml:"files"`
	Namespaces map[string]string `json:"namespaces,omitempty" yaml:"namespaces,omitempty"`
}

func buildView(m *modulemeta.MetadataMap) mapView {
	view := mapView{Namespaces: make(map[string]string)}
	for _, path := range m.Paths() {
		view.Files = append(view.Files, buildUnitView(m.ByPath(path)))
	}
	for _, ns := range m.Namespaces() {
		view.Namespaces[ns] = m.ByNamespace(ns).SourceFile
	}
	return view
}

func buildUnitView(md *modulemeta.Metadata) unitView {
	v := unitView{
		Path:             md.Path,
		Kind:             md.Kind.String(),
		UsesClosure:      md.UsesClosure,
		TestOnly:         md.IsTestOnly,
		Namespaces:       md.GoogNamespaces,
		StronglyRequired: md.StronglyRequired,
		WeaklyRequired:   md.WeaklyRequired,
		ImportSpecifiers: md.ES6ImportSpecifiers,
	}
	for _, nested := range md.Nested {
		v.Nested = append(v.Nested, buildUnitView(nested))
	}
	return v
}

func render(cmd *cobra.Command, m *modulemeta.MetadataMap, format string) error {
	view := buildView(m)
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(view)
	}
	return fmt.Errorf("unknown output format %q (want json or yaml)", format)
}
