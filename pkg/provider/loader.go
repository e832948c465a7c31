package provider

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/zeebo/blake3"
)

// definitionSchema constrains hierarchy definition documents before a
// StaticProvider is built from them.
const definitionSchema = `{
  "type": "object",
  "required": ["classes"],
  "properties": {
    "classes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "parents": {"type": "array", "items": {"type": "string", "minLength": 1}},
          "methods": {"type": "array", "items": {"type": "string", "minLength": 1}},
          "origins": {"type": "object", "additionalProperties": {"type": "string"}}
        }
      }
    }
  }
}`

// LoadDefinition reads a hierarchy definition document (TOML, YAML, or
// JSON, selected by extension), validates it against the definition
// schema, and returns it with a blake3 content fingerprint.
func LoadDefinition(path string) (*Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = koanfyaml.Parser()
	case ".json":
		parser = koanfjson.Parser()
	default:
		parser = toml.Parser()
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}

	if err := validateDefinition(k.Raw()); err != nil {
		return nil, err
	}

	def := &Definition{}
	if err := k.Unmarshal("", def); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}

	sum := blake3.Sum256(raw)
	def.Fingerprint = hex.EncodeToString(sum[:])
	return def, nil
}

// validateDefinition checks a decoded document against the definition
// schema. The document is round-tripped through JSON so the instance types
// match what the validator expects regardless of the source parser.
func validateDefinition(doc map[string]interface{}) error {
	schemaDoc, err := jsonschema.UnmarshalJSON(strings.NewReader(definitionSchema))
	if err != nil {
		return fmt.Errorf("failed to load definition schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("definition.json", schemaDoc); err != nil {
		return fmt.Errorf("failed to register definition schema: %w", err)
	}
	schema, err := compiler.Compile("definition.json")
	if err != nil {
		return fmt.Errorf("failed to compile definition schema: %w", err)
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode definition for validation: %w", err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to decode definition for validation: %w", err)
	}

	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("invalid definition document: %w", err)
	}
	return nil
}
