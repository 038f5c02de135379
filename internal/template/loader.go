package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// definitionsSchema constrains custom template definition files before they
// are converted into specs, so malformed definitions fail with schema-aware
// diagnostics instead of surfacing mid-validation.
const definitionsSchema = `{
  "type": "object",
  "properties": {
    "templates": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "patterns": {"type": "array", "items": {"type": "string", "minLength": 1}},
          "headings": {"type": "array", "items": {"type": "string"}},
          "strict_headings": {"type": "boolean"},
          "front_matter": {
            "type": "object",
            "additionalProperties": {"type": "string", "enum": ["string", "numeric"]}
          },
          "boxes": {
            "type": "object",
            "additionalProperties": {
              "type": "object",
              "properties": {
                "title": {"type": "string"},
                "min": {"type": "integer", "minimum": 0},
                "max": {"type": "integer", "minimum": 0}
              },
              "additionalProperties": false
            }
          }
        },
        "required": ["name"],
        "additionalProperties": false
      }
    }
  },
  "required": ["templates"],
  "additionalProperties": false
}`

// Definition is one custom template entry as declared in a definitions file.
type Definition struct {
	Name           string                   `yaml:"name"`
	Patterns       []string                 `yaml:"patterns"`
	Headings       []string                 `yaml:"headings"`
	StrictHeadings bool                     `yaml:"strict_headings"`
	FrontMatter    map[string]string        `yaml:"front_matter"`
	Boxes          map[string]BoxDefinition `yaml:"boxes"`
}

// BoxDefinition mirrors BoxRule with an optional upper bound; a missing max
// means unbounded.
type BoxDefinition struct {
	Title string `yaml:"title"`
	Min   int    `yaml:"min"`
	Max   *int   `yaml:"max"`
}

type definitionsFile struct {
	Templates []Definition `yaml:"templates"`
}

// LoadDefinitions reads a YAML (or JSON, being a YAML subset) definitions
// file, validates it against the embedded schema, and returns the entries.
func LoadDefinitions(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("template: read definitions %s: %w", path, err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("template: decode definitions %s: %w", path, err)
	}

	// Round-trip through JSON so the schema validator sees the value
	// shapes it expects regardless of the YAML decoder's native types.
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("template: encode definitions %s: %w", path, err)
	}
	var payload any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return nil, fmt.Errorf("template: encode definitions %s: %w", path, err)
	}

	schema, err := compileDefinitionsSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(payload); err != nil {
		return nil, fmt.Errorf("template: invalid definitions %s: %v", path, err)
	}

	var file definitionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("template: decode definitions %s: %w", path, err)
	}
	return file.Templates, nil
}

// RegisterDefinitions converts the definitions into specs and registers
// them, letting their dispatch patterns shadow the built-in table.
func (r *Registry) RegisterDefinitions(defs []Definition) error {
	for _, def := range defs {
		spec, err := def.spec()
		if err != nil {
			return err
		}
		if err := r.Register(spec, def.Patterns...); err != nil {
			return err
		}
	}
	return nil
}

func (d Definition) spec() (*Spec, error) {
	spec := &Spec{
		Name:           d.Name,
		Headings:       append([]string(nil), d.Headings...),
		StrictHeadings: d.StrictHeadings,
	}

	if len(d.FrontMatter) > 0 {
		spec.FrontMatter = make(map[string]validation.Rule, len(d.FrontMatter))
		for key, kind := range d.FrontMatter {
			switch kind {
			case "string":
				spec.FrontMatter[key] = NonEmptyString
			case "numeric":
				spec.FrontMatter[key] = NumericString
			default:
				return nil, fmt.Errorf("template: definition %s: unsupported field kind %q for %q", d.Name, kind, key)
			}
		}
	}

	if len(d.Boxes) > 0 {
		spec.Boxes = make(map[string]BoxRule, len(d.Boxes))
		for boxType, box := range d.Boxes {
			rule := BoxRule{Title: box.Title, Min: box.Min, Max: Unbounded}
			if box.Max != nil {
				rule.Max = *box.Max
			}
			spec.Boxes[boxType] = rule
		}
	}

	return spec, nil
}

func compileDefinitionsSchema() (*jsonschema.Schema, error) {
	var decoded map[string]any
	if err := json.Unmarshal([]byte(definitionsSchema), &decoded); err != nil {
		return nil, fmt.Errorf("template: definitions schema: %w", err)
	}
	encoded, err := json.Marshal(decoded)
	if err != nil {
		return nil, fmt.Errorf("template: definitions schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("definitions.json", bytes.NewReader(encoded)); err != nil {
		return nil, fmt.Errorf("template: definitions schema: %w", err)
	}
	return compiler.Compile("definitions.json")
}
