package provider

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeDefinition(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefinitionTOML(t *testing.T) {
	path := writeDefinition(t, "hierarchy.toml", `
[[classes]]
name = "Abstract"
methods = ["new", "foo"]

[[classes]]
name = "Child"
parents = ["Abstract"]
methods = ["foo", "helper"]
origins = { helper = "Util" }
`)

	def, err := LoadDefinition(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Abstract", "Child"}, def.ClassNames())
	assert.Equal(t, []string{"Abstract"}, def.Classes[1].Parents)
	assert.Equal(t, map[string]string{"helper": "Util"}, def.Classes[1].Origins)
	assert.Len(t, def.Fingerprint, 64, "blake3 hex digest")

	// The fingerprint is a pure function of the document content.
	again, err := LoadDefinition(path)
	require.NoError(t, err)
	assert.Equal(t, def.Fingerprint, again.Fingerprint)

	other, err := LoadDefinition(writeDefinition(t, "other.toml", `
[[classes]]
name = "Different"
`))
	require.NoError(t, err)
	assert.NotEqual(t, def.Fingerprint, other.Fingerprint)
}

func TestLoadDefinitionYAML(t *testing.T) {
	doc, err := yaml.Marshal(map[string]any{
		"classes": []map[string]any{
			{"name": "One", "parents": []string{"Two", "Three"}},
			{"name": "Two"},
			{"name": "Three", "parents": []string{"Four", "Six"}},
		},
	})
	require.NoError(t, err)

	def, err := LoadDefinition(writeDefinition(t, "hierarchy.yaml", string(doc)))
	require.NoError(t, err)

	assert.Equal(t, []string{"One", "Two", "Three"}, def.ClassNames())
	assert.Equal(t, []string{"Two", "Three"}, def.Classes[0].Parents)
}

func TestLoadDefinitionJSON(t *testing.T) {
	def, err := LoadDefinition(writeDefinition(t, "hierarchy.json",
		`{"classes": [{"name": "Solo", "methods": ["sing"]}]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"Solo"}, def.ClassNames())
	assert.Equal(t, []string{"sing"}, def.Classes[0].Methods)
}

func TestLoadDefinitionSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing classes", `title = "nothing here"`},
		{"class without name", "[[classes]]\nparents = [\"X\"]\n"},
		{"empty class name", "[[classes]]\nname = \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDefinition(writeDefinition(t, "bad.toml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid definition document")
		})
	}
}

func TestLoadDefinitionMissingFile(t *testing.T) {
	_, err := LoadDefinition(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadDefinitionBadSyntax(t *testing.T) {
	_, err := LoadDefinition(writeDefinition(t, "broken.toml", "classes = [nope"))
	assert.Error(t, err)
}
