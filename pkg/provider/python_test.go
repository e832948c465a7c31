package provider

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePython(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

const diamondPython = `
class Abstract:
    def new(self): pass
    def foo(self): pass
    def bar(self): pass
    def baz(self): pass

class Child1(Abstract):
    def foo(self): pass

class Child2(Abstract):
    def foo(self): pass
    def bar(self): pass

class Grandchild(Child1, Child2):
    def foo(self): pass
    def bar(self): pass
    def quux(self): pass
`

func TestPythonProviderClasses(t *testing.T) {
	dir := t.TempDir()
	writePython(t, dir, "diamond.py", diamondPython)

	p, err := NewPythonProvider([]string{dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"Abstract", "Child1", "Child2", "Grandchild"}, p.Classes())
	assert.Equal(t, []string{"Child1", "Child2"}, p.DirectParents("Grandchild"))
	assert.Equal(t, []string{"Abstract"}, p.DirectParents("Child1"))
	assert.Nil(t, p.DirectParents("Nobody"))

	assert.Equal(t, []Method{
		{Name: "foo"}, {Name: "bar"}, {Name: "quux"},
	}, p.OwnMethods("Grandchild"))
}

func TestPythonProviderObjectBaseSkipped(t *testing.T) {
	dir := t.TempDir()
	writePython(t, dir, "root.py", `
class Root(object):
    def run(self): pass
`)

	p, err := NewPythonProvider([]string{dir})
	require.NoError(t, err)
	assert.Empty(t, p.DirectParents("Root"))
}

func TestPythonProviderPrivateMethods(t *testing.T) {
	dir := t.TempDir()
	path := writePython(t, dir, "private.py", `
class Guarded:
    def __init__(self): pass
    def _hidden(self): pass
    def visible(self): pass
`)

	p, err := NewPythonProvider([]string{path})
	require.NoError(t, err)
	assert.Equal(t, []Method{{Name: "__init__"}, {Name: "visible"}}, p.OwnMethods("Guarded"))

	p, err = NewPythonProvider([]string{path}, WithIncludePrivate(true))
	require.NoError(t, err)
	assert.Equal(t, []Method{{Name: "__init__"}, {Name: "_hidden"}, {Name: "visible"}},
		p.OwnMethods("Guarded"))
}

func TestPythonProviderImportedAssignments(t *testing.T) {
	dir := t.TempDir()
	writePython(t, dir, "mailer.py", `
from templating import render
from util import helper as fmt

class Mailer:
    deliver = render
    format = fmt
    local = something_unknown

    def send(self): pass
`)

	p, err := NewPythonProvider([]string{dir})
	require.NoError(t, err)

	assert.Equal(t, []Method{
		{Name: "deliver", Origin: "templating"},
		{Name: "format", Origin: "util"},
		{Name: "send"},
	}, p.OwnMethods("Mailer"))
}

func TestPythonProviderDecoratedDefinitions(t *testing.T) {
	dir := t.TempDir()
	writePython(t, dir, "decorated.py", `
import functools

@functools.cache
class Shiny:
    @property
    def value(self): pass
`)

	p, err := NewPythonProvider([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []Method{{Name: "value"}}, p.OwnMethods("Shiny"))
}

func TestPythonProviderDuplicateContentParsedOnce(t *testing.T) {
	dir := t.TempDir()
	writePython(t, dir, "a.py", diamondPython)
	writePython(t, dir, "b.py", diamondPython)

	p, err := NewPythonProvider([]string{dir})
	require.NoError(t, err)
	assert.Len(t, p.Classes(), 4)
}

func TestPythonProviderMaxFileSize(t *testing.T) {
	dir := t.TempDir()
	writePython(t, dir, "big.py", diamondPython)

	p, err := NewPythonProvider([]string{dir}, WithMaxFileSize(8))
	require.NoError(t, err)
	assert.Empty(t, p.Classes())
}

func TestPythonProviderMissingPath(t *testing.T) {
	_, err := NewPythonProvider([]string{filepath.Join(t.TempDir(), "absent.py")})
	assert.Error(t, err)
}
