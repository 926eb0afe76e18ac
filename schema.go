package folco

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

const schemaID = "https://github.com/esimov/folco/profile.schema.json"

// ProfileSchema returns the JSON Schema describing the JSON encoding of a
// Profile, for editors and external validation.
func ProfileSchema() (string, error) {
	r := &jsonschema.Reflector{
		DoNotReference:            true,
		AllowAdditionalProperties: false,
	}
	s := r.Reflect(&profileJSON{})
	s.ID = schemaID
	s.Title = "folco customization profile"
	s.Description = "Colour mutation, decal and overlay applied to a folder icon."

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// JSONSchema describes SourceKind as its string form.
func (SourceKind) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "string",
		Enum: []any{"svg", "emoji", "emoji_name"},
	}
}

// JSONSchema describes SvgSource through its wire form.
func (SvgSource) JSONSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{DoNotReference: true}
	s := r.Reflect(&svgSourceJSON{})
	s.Version = ""
	s.ID = ""
	return s
}

// JSONSchema describes Position as one of the anchor names.
func (Position) JSONSchema() *jsonschema.Schema {
	enum := make([]any, 0, len(positionNames))
	for _, p := range positionNames {
		enum = append(enum, p.name)
	}
	return &jsonschema.Schema{
		Type: "string",
		Enum: enum,
	}
}
