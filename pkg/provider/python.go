package provider

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// DefaultMaxFileSize is the largest Python source the provider will parse.
const DefaultMaxFileSize = 5 * 1024 * 1024

// PythonOption is a functional option for configuring PythonProvider.
type PythonOption func(*PythonProvider)

// WithMaxFileSize sets the maximum file size to parse (0 keeps the
// default).
func WithMaxFileSize(bytes int64) PythonOption {
	return func(p *PythonProvider) {
		if bytes > 0 {
			p.maxFileSize = bytes
		}
	}
}

// WithIncludePrivate includes methods with a leading underscore.
func WithIncludePrivate(include bool) PythonOption {
	return func(p *PythonProvider) {
		p.includePrivate = include
	}
}

type pythonClass struct {
	parents []string
	methods []Method
}

// PythonProvider is a tree-sitter backed reflection provider over Python
// sources. It scans the given files or directories once at construction,
// indexing every top-level class definition: the ordered base-class list,
// the directly-defined methods, and class-body assignments from imported
// names (which surface as methods with a foreign origin). The catalog is
// immutable afterwards and safe for concurrent reads.
type PythonProvider struct {
	maxFileSize    int64
	includePrivate bool
	classes        map[string]pythonClass
	order          []string
}

// NewPythonProvider scans paths (files or directories, recursively) for
// .py sources and indexes their classes. Files with identical content are
// parsed once.
func NewPythonProvider(paths []string, opts ...PythonOption) (*PythonProvider, error) {
	p := &PythonProvider{
		maxFileSize: DefaultMaxFileSize,
		classes:     make(map[string]pythonClass),
	}
	for _, opt := range opts {
		opt(p)
	}

	files, err := collectPythonFiles(paths)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	seen := make(map[uint64]bool, len(files))
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if p.maxFileSize > 0 && info.Size() > p.maxFileSize {
			continue
		}
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		// Identical content contributes identical classes; parse it once.
		digest := xxhash.Sum64(source)
		if seen[digest] {
			continue
		}
		seen[digest] = true

		tree, err := parser.ParseCtx(context.Background(), nil, source)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		p.indexModule(tree.RootNode(), source)
		tree.Close()
	}
	return p, nil
}

// Classes returns the indexed class names in scan order.
func (p *PythonProvider) Classes() []string {
	return append([]string{}, p.order...)
}

// DirectParents returns the ordered, de-duplicated base classes of class.
func (p *PythonProvider) DirectParents(class string) []string {
	c, ok := p.classes[class]
	if !ok {
		return nil
	}
	return append([]string{}, c.parents...)
}

// OwnMethods returns the methods defined directly on class, in
// declaration order.
func (p *PythonProvider) OwnMethods(class string) []Method {
	c, ok := p.classes[class]
	if !ok {
		return nil
	}
	return append([]Method{}, c.methods...)
}

// indexModule walks a module's top-level statements, recording imports
// first so class-body assignments can be attributed to their origin.
func (p *PythonProvider) indexModule(root *sitter.Node, source []byte) {
	imports := make(map[string]string)
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "import_from_statement":
			collectFromImports(child, source, imports)
		case "class_definition":
			p.indexClass(child, source, imports)
		case "decorated_definition":
			if def := child.ChildByFieldName("definition"); def != nil && def.Type() == "class_definition" {
				p.indexClass(def, source, imports)
			}
		}
	}
}

// collectFromImports records "from M import a, b as c" as a->M, c->M.
func collectFromImports(node *sitter.Node, source []byte, imports map[string]string) {
	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode == nil {
		return
	}
	module := moduleNode.Content(source)
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.StartByte() == moduleNode.StartByte() {
			continue
		}
		switch child.Type() {
		case "dotted_name", "identifier":
			imports[child.Content(source)] = module
		case "aliased_import":
			if alias := child.ChildByFieldName("alias"); alias != nil {
				imports[alias.Content(source)] = module
			}
		}
	}
}

func (p *PythonProvider) indexClass(node *sitter.Node, source []byte, imports map[string]string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nameNode.Content(source)
	if _, ok := p.classes[name]; ok {
		return
	}

	class := pythonClass{
		parents: classBases(node, source),
		methods: p.classMethods(node, source, imports),
	}
	p.classes[name] = class
	p.order = append(p.order, name)
}

// classBases extracts the superclass list in declaration order, skipping
// keyword arguments such as metaclass=.
func classBases(node *sitter.Node, source []byte) []string {
	args := node.ChildByFieldName("superclasses")
	if args == nil {
		return nil
	}
	seen := make(map[string]bool)
	var bases []string
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		switch arg.Type() {
		case "identifier", "attribute":
			base := arg.Content(source)
			if base == "object" || seen[base] {
				continue
			}
			seen[base] = true
			bases = append(bases, base)
		}
	}
	return bases
}

// classMethods extracts function definitions and imported-name assignments
// from the class body, in declaration order.
func (p *PythonProvider) classMethods(node *sitter.Node, source []byte, imports map[string]string) []Method {
	body := node.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var methods []Method
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		switch stmt.Type() {
		case "function_definition":
			methods = p.appendMethod(methods, stmt, source)
		case "decorated_definition":
			if def := stmt.ChildByFieldName("definition"); def != nil && def.Type() == "function_definition" {
				methods = p.appendMethod(methods, def, source)
			}
		case "expression_statement":
			if stmt.NamedChildCount() == 0 {
				continue
			}
			if m, ok := assignedImport(stmt.NamedChild(0), source, imports); ok {
				if p.includePrivate || !strings.HasPrefix(m.Name, "_") {
					methods = append(methods, m)
				}
			}
		}
	}
	return methods
}

func (p *PythonProvider) appendMethod(methods []Method, def *sitter.Node, source []byte) []Method {
	nameNode := def.ChildByFieldName("name")
	if nameNode == nil {
		return methods
	}
	name := nameNode.Content(source)
	if !p.includePrivate && strings.HasPrefix(name, "_") && name != "__init__" {
		return methods
	}
	return append(methods, Method{Name: name})
}

// assignedImport matches "attr = name" class-body assignments where name
// was imported at module level: the imported function is visible as a
// method of the class, with the source module as its origin.
func assignedImport(node *sitter.Node, source []byte, imports map[string]string) (Method, bool) {
	if node.Type() != "assignment" {
		return Method{}, false
	}
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")
	if left == nil || right == nil || left.Type() != "identifier" || right.Type() != "identifier" {
		return Method{}, false
	}
	module, ok := imports[right.Content(source)]
	if !ok {
		return Method{}, false
	}
	return Method{Name: left.Content(source), Origin: module}, true
}

// collectPythonFiles expands files and directories into the list of .py
// sources to scan, in deterministic walk order.
func collectPythonFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.IsDir() {
			if strings.HasSuffix(path, ".py") {
				files = append(files, path)
			}
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(p, ".py") {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
	}
	return files, nil
}
