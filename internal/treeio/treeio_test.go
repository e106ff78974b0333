package treeio

import (
	"strings"
	"testing"

	"github.com/jstools/modulemeta/ast"
)

func TestDecodeProvideFile(t *testing.T) {
	const dump = `{
		"kind": "file",
		"path": "a.js",
		"body": [
			{
				"kind": "call", "line": 1, "col": 1,
				"callee": {
					"kind": "member", "property": "provide",
					"target": {"kind": "ident", "name": "goog"}
				},
				"args": [{"kind": "string", "value": "a.b", "line": 1, "col": 14}]
			}
		]
	}`

	f, err := Decode(strings.NewReader(dump), "a.js")
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if f.Path != "a.js" {
		t.Errorf("Path = %q, want a.js", f.Path)
	}
	if len(f.Body) != 1 {
		t.Fatalf("decoded %d body nodes, want 1", len(f.Body))
	}

	call, ok := f.Body[0].(*ast.Call)
	if !ok {
		t.Fatalf("body[0] is %T, want *ast.Call", f.Body[0])
	}
	if name, ok := ast.QualifiedName(call.Callee); !ok || name != "goog.provide" {
		t.Errorf("callee = %q, want goog.provide", name)
	}
	if got := call.Pos(); got.File != "a.js" || got.Line != 1 || got.Col != 1 {
		t.Errorf("call position = %v", got)
	}

	arg, ok := call.Args[0].(*ast.String)
	if !ok || arg.Value != "a.b" {
		t.Errorf("arg = %#v, want string a.b", call.Args[0])
	}
}

func TestDecodeModuleBody(t *testing.T) {
	const dump = `{
		"kind": "file",
		"body": [
			{
				"kind": "moduleBody",
				"stmts": [
					{"kind": "import", "specifier": "./x.js", "star": true, "alias": "x"},
					{"kind": "export", "from": "./y.js"},
					{"kind": "dynamicImport", "arg": {"kind": "string", "value": "./z.js"}}
				]
			}
		]
	}`

	f, err := Decode(strings.NewReader(dump), "m.js")
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	// With no explicit path the source name is the file identity.
	if f.Path != "m.js" {
		t.Errorf("Path = %q, want m.js", f.Path)
	}

	body, ok := f.Body[0].(*ast.ModuleBody)
	if !ok {
		t.Fatalf("body[0] is %T, want *ast.ModuleBody", f.Body[0])
	}
	if len(body.Stmts) != 3 {
		t.Fatalf("decoded %d stmts, want 3", len(body.Stmts))
	}

	imp := body.Stmts[0].(*ast.Import)
	if imp.Specifier != "./x.js" || !imp.Star || imp.Alias != "x" {
		t.Errorf("import = %#v", imp)
	}
	if exp := body.Stmts[1].(*ast.Export); exp.From != "./y.js" {
		t.Errorf("export from = %q", exp.From)
	}
	dyn := body.Stmts[2].(*ast.DynamicImport)
	if s, ok := dyn.Arg.(*ast.String); !ok || s.Value != "./z.js" {
		t.Errorf("dynamic import arg = %#v", dyn.Arg)
	}
}

func TestDecodeAssignAndFunc(t *testing.T) {
	const dump = `{
		"kind": "file",
		"path": "a.js",
		"body": [
			{
				"kind": "func", "name": "f", "params": ["exports"],
				"body": [
					{
						"kind": "assign",
						"target": {
							"kind": "member", "property": "exports",
							"target": {"kind": "ident", "name": "module"}
						},
						"rhs": {"kind": "number", "number": 42}
					}
				]
			},
			{"kind": "var", "names": ["x"], "init": {"kind": "ident", "name": "f"}}
		]
	}`

	f, err := Decode(strings.NewReader(dump), "a.js")
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	fn := f.Body[0].(*ast.Func)
	if fn.Name != "f" || len(fn.Params) != 1 {
		t.Errorf("func = %#v", fn)
	}
	assign := fn.Body[0].(*ast.Assign)
	if name, ok := ast.QualifiedName(assign.Target); !ok || name != "module.exports" {
		t.Errorf("assign target = %q", name)
	}
	if num, ok := assign.Value.(*ast.Number); !ok || num.Value != 42 {
		t.Errorf("assign value = %#v", assign.Value)
	}

	v := f.Body[1].(*ast.Var)
	if len(v.Names) != 1 || v.Names[0] != "x" || v.Init == nil {
		t.Errorf("var = %#v", v)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		dump string
		want string
	}{
		{
			name: "root must be a file",
			dump: `{"kind": "ident", "name": "x"}`,
			want: `want "file"`,
		},
		{
			name: "nested file",
			dump: `{"kind": "file", "body": [{"kind": "file"}]}`,
			want: "nested file",
		},
		{
			name: "unknown kind",
			dump: `{"kind": "file", "body": [{"kind": "ternary"}]}`,
			want: `unknown node kind "ternary"`,
		},
		{
			name: "unknown field",
			dump: `{"kind": "file", "loc": 3}`,
			want: "unknown field",
		},
		{
			name: "call without callee",
			dump: `{"kind": "file", "body": [{"kind": "call"}]}`,
			want: "call node without callee",
		},
		{
			name: "assign without target",
			dump: `{"kind": "file", "body": [{"kind": "assign"}]}`,
			want: "assign node without target",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.dump), "bad.js")
			if err == nil {
				t.Fatal("Decode() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestDecodeFileMissing(t *testing.T) {
	if _, err := DecodeFile("testdata/does-not-exist.json"); err == nil {
		t.Fatal("DecodeFile() succeeded on a missing path")
	}
}
