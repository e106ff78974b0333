// Package treeio decodes the external parser's syntax-tree dumps into ast
// nodes. A dump is one JSON document per source file, rooted at a "file"
// node; this is the wire format between the parser and the metadata pass.
package treeio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jstools/modulemeta/ast"
)

type nodeJSON struct {
	Kind string `json:"kind"`
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`

	Path      string     `json:"path,omitempty"`
	Body      []nodeJSON `json:"body,omitempty"`
	Stmts     []nodeJSON `json:"stmts,omitempty"`
	Specifier string     `json:"specifier,omitempty"`
	Star      bool       `json:"star,omitempty"`
	Alias     string     `json:"alias,omitempty"`
	Default   string     `json:"default,omitempty"`
	Names     []string   `json:"names,omitempty"`
	From      string     `json:"from,omitempty"`
	Decl      *nodeJSON  `json:"decl,omitempty"`
	Arg       *nodeJSON  `json:"arg,omitempty"`
	Callee    *nodeJSON  `json:"callee,omitempty"`
	Args      []nodeJSON `json:"args,omitempty"`
	Target    *nodeJSON  `json:"target,omitempty"`
	Property  string     `json:"property,omitempty"`
	Name      string     `json:"name,omitempty"`
	Value     string     `json:"value,omitempty"`
	Number    float64    `json:"number,omitempty"`
	RHS       *nodeJSON  `json:"rhs,omitempty"`
	Init      *nodeJSON  `json:"init,omitempty"`
	Params    []string   `json:"params,omitempty"`
}

// Decode reads one tree dump. sourceName is used for positions and as the
// file identity when the dump carries no path of its own.
func Decode(r io.Reader, sourceName string) (*ast.File, error) {
	var root nodeJSON
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("treeio: decode %s: %w", sourceName, err)
	}
	if root.Kind != "file" {
		return nil, fmt.Errorf("treeio: %s: root node is %q, want \"file\"", sourceName, root.Kind)
	}
	path := root.Path
	if path == "" {
		path = sourceName
	}
	body, err := decodeList(root.Body, path)
	if err != nil {
		return nil, err
	}
	return &ast.File{Path: path, Body: body, Loc: pos(&root, path)}, nil
}

// DecodeFile reads the tree dump stored at path.
func DecodeFile(path string) (*ast.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("treeio: %w", err)
	}
	defer f.Close()
	return Decode(f, path)
}

func pos(n *nodeJSON, file string) ast.Position {
	return ast.Position{File: file, Line: n.Line, Col: n.Col}
}

func decodeList(nodes []nodeJSON, file string) ([]ast.Node, error) {
	if nodes == nil {
		return nil, nil
	}
	out := make([]ast.Node, 0, len(nodes))
	for i := range nodes {
		n, err := decodeNode(&nodes[i], file)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func decodeOptional(n *nodeJSON, file string) (ast.Node, error) {
	if n == nil {
		return nil, nil
	}
	return decodeNode(n, file)
}

func decodeNode(n *nodeJSON, file string) (ast.Node, error) {
	p := pos(n, file)
	switch n.Kind {
	case "moduleBody":
		stmts, err := decodeList(n.Stmts, file)
		if err != nil {
			return nil, err
		}
		return &ast.ModuleBody{Stmts: stmts, Loc: p}, nil
	case "import":
		return &ast.Import{
			Specifier: n.Specifier,
			Star:      n.Star,
			Alias:     n.Alias,
			Default:   n.Default,
			Names:     n.Names,
			Loc:       p,
		}, nil
	case "export":
		decl, err := decodeOptional(n.Decl, file)
		if err != nil {
			return nil, err
		}
		return &ast.Export{From: n.From, Decl: decl, Loc: p}, nil
	case "dynamicImport":
		arg, err := decodeOptional(n.Arg, file)
		if err != nil {
			return nil, err
		}
		return &ast.DynamicImport{Arg: arg, Loc: p}, nil
	case "call":
		if n.Callee == nil {
			return nil, fmt.Errorf("treeio: %s: call node without callee", p)
		}
		callee, err := decodeNode(n.Callee, file)
		if err != nil {
			return nil, err
		}
		args, err := decodeList(n.Args, file)
		if err != nil {
			return nil, err
		}
		return &ast.Call{Callee: callee, Args: args, Loc: p}, nil
	case "member":
		if n.Target == nil {
			return nil, fmt.Errorf("treeio: %s: member node without target", p)
		}
		target, err := decodeNode(n.Target, file)
		if err != nil {
			return nil, err
		}
		return &ast.Member{Target: target, Property: n.Property, Loc: p}, nil
	case "ident":
		return &ast.Ident{Name: n.Name, Loc: p}, nil
	case "string":
		return &ast.String{Value: n.Value, Loc: p}, nil
	case "number":
		return &ast.Number{Value: n.Number, Loc: p}, nil
	case "var":
		init, err := decodeOptional(n.Init, file)
		if err != nil {
			return nil, err
		}
		return &ast.Var{Names: n.Names, Init: init, Loc: p}, nil
	case "func":
		body, err := decodeList(n.Body, file)
		if err != nil {
			return nil, err
		}
		return &ast.Func{Name: n.Name, Params: n.Params, Body: body, Loc: p}, nil
	case "block":
		stmts, err := decodeList(n.Stmts, file)
		if err != nil {
			return nil, err
		}
		return &ast.Block{Stmts: stmts, Loc: p}, nil
	case "assign":
		if n.Target == nil {
			return nil, fmt.Errorf("treeio: %s: assign node without target", p)
		}
		target, err := decodeNode(n.Target, file)
		if err != nil {
			return nil, err
		}
		value, err := decodeOptional(n.RHS, file)
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Target: target, Value: value, Loc: p}, nil
	case "file":
		return nil, fmt.Errorf("treeio: %s: nested file node", p)
	default:
		return nil, fmt.Errorf("treeio: %s: unknown node kind %q", p, n.Kind)
	}
}
