package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/heir/pkg/config"
	"github.com/panbanda/heir/pkg/models"
)

const diamondTOML = `
[[classes]]
name = "Abstract"
methods = ["new", "foo", "bar", "baz"]

[[classes]]
name = "Child1"
parents = ["Abstract"]
methods = ["foo"]

[[classes]]
name = "Child2"
parents = ["Abstract"]
methods = ["foo", "bar"]

[[classes]]
name = "Grandchild"
parents = ["Child1", "Child2"]
methods = ["foo", "bar", "quux"]
`

func testApp() *cli.App {
	return &cli.App{
		Name:  "heir",
		Flags: globalFlags(),
		Commands: []*cli.Command{
			reportCmd(),
			overriddenCmd(),
			unreachableCmd(),
			miCmd(),
			exportedCmd(),
			classesCmd(),
			pathsCmd(),
			treeCmd(),
			graphCmd(),
			batchCmd(),
			initCmd(),
		},
	}
}

func writeDiamond(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diamond.toml")
	require.NoError(t, os.WriteFile(path, []byte(diamondTOML), 0o644))
	return path
}

func TestReportCommandJSON(t *testing.T) {
	def := writeDiamond(t)
	out := filepath.Join(t.TempDir(), "report.json")

	err := testApp().Run([]string{"heir", "-f", "json", "-o", out,
		"report", "-t", "Grandchild", def})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)

	var report models.HierarchyReport
	require.NoError(t, json.Unmarshal(raw, &report))

	assert.Equal(t, "Grandchild", report.Target)
	assert.NotEmpty(t, report.Fingerprint)
	assert.Equal(t, 4, report.Summary.Classes)
	assert.Equal(t, []models.UnreachableMethod{
		{Class: "Child2", Method: "bar"},
		{Class: "Child2", Method: "foo"},
	}, report.Unreachable)
	assert.Equal(t, []string{"Grandchild"}, report.MultipleInheritance)
}

func TestReportCommandText(t *testing.T) {
	def := writeDiamond(t)
	out := filepath.Join(t.TempDir(), "report.txt")

	err := testApp().Run([]string{"heir", "-o", out,
		"report", "-t", "Grandchild", def})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(raw)
	assert.Contains(t, text, "Hierarchy Report: Grandchild")
	assert.Contains(t, text, "Overridden Methods (2)")
	assert.Contains(t, text, "Unreachable Methods (2)")
}

func TestPathsCommand(t *testing.T) {
	def := writeDiamond(t)
	out := filepath.Join(t.TempDir(), "paths.json")

	err := testApp().Run([]string{"heir", "-f", "json", "-o", out,
		"paths", "-t", "Grandchild", def})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)

	var paths [][]string
	require.NoError(t, json.Unmarshal(raw, &paths))
	assert.Equal(t, [][]string{
		{"Grandchild", "Child1", "Abstract"},
		{"Grandchild", "Child2", "Abstract"},
	}, paths)
}

func TestTreeCommand(t *testing.T) {
	def := writeDiamond(t)
	out := filepath.Join(t.TempDir(), "tree.txt")

	err := testApp().Run([]string{"heir", "-o", out,
		"tree", "-t", "Grandchild", def})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Grandchild",
		"├── Child1",
		"│   └── Abstract",
		"└── Child2",
		"    └── Abstract",
	}, strings.Split(strings.TrimRight(string(raw), "\n"), "\n"))
}

func TestGraphCommandDOT(t *testing.T) {
	def := writeDiamond(t)
	out := filepath.Join(t.TempDir(), "graph.dot")

	err := testApp().Run([]string{"heir", "-o", out,
		"graph", "-t", "Grandchild", "--dot", def})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "digraph hierarchy")
	assert.Contains(t, string(raw), "\"Grandchild\" -> \"Child1\"")
}

func TestBatchCommand(t *testing.T) {
	def := writeDiamond(t)
	out := filepath.Join(t.TempDir(), "batch.json")

	err := testApp().Run([]string{"heir", "-f", "json", "-o", out,
		"batch", "-n", "Child|Grandchild", def})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)

	var report models.BatchReport
	require.NoError(t, json.Unmarshal(raw, &report))
	assert.Equal(t, []string{"Grandchild"}, report.Roots)
	require.Len(t, report.Reports, 1)
	assert.Equal(t, 4, report.Reports[0].Summary.Classes)
}

func TestBatchCommandBadNamespace(t *testing.T) {
	def := writeDiamond(t)
	err := testApp().Run([]string{"heir", "-f", "json",
		"batch", "-n", "[", def})
	assert.Error(t, err)
}

func TestReportCommandUnknownInput(t *testing.T) {
	err := testApp().Run([]string{"heir", "report", "-t", "X",
		filepath.Join(t.TempDir(), "absent.toml")})
	assert.Error(t, err)
}

func TestReportCommandMissingInput(t *testing.T) {
	err := testApp().Run([]string{"heir", "report", "-t", "X"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input path required")
}

func TestPythonInputSelection(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "shapes.py")
	require.NoError(t, os.WriteFile(src, []byte(`
class Shape:
    def area(self): pass

class Square(Shape):
    def area(self): pass
`), 0o644))

	out := filepath.Join(dir, "classes.json")
	err := testApp().Run([]string{"heir", "-f", "json", "-o", out,
		"classes", "-t", "Square", src})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Square")
	assert.Contains(t, string(raw), "Shape")
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heir.toml")

	err := testApp().Run([]string{"heir", "init", "-o", path})
	require.NoError(t, err)

	// The generated file loads back with the default values intact.
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	// A second init without --force refuses to clobber.
	err = testApp().Run([]string{"heir", "init", "-o", path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, testApp().Run([]string{"heir", "init", "-o", path, "--force"}))
}

func TestGenerateDefaultConfig(t *testing.T) {
	content, err := generateDefaultConfig()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(content, "# Heir CLI Configuration"))
	assert.Contains(t, content, "[analysis]")
	assert.Contains(t, content, "universal_root_name")
}
