// Package jsonschema models the subset of JSON Schema understood by the generator.
//
// Only the keywords type, properties, required, items, allOf, oneOf, title,
// description and a flat-name $ref are read; everything else in a schema is
// ignored. Property order is preserved exactly as written in the source.
package jsonschema

import (
	"fmt"
	"strings"

	"github.com/speakeasy-api/openapi/sequencedmap"
	"gopkg.in/yaml.v3"
)

// Schema types recognised by the converter.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeNull    = "null"
)

// Properties is an insertion-ordered set of named property schemas.
type Properties = sequencedmap.Map[string, *Schema]

// Schema is a JSON-Schema-like node.
type Schema struct {
	Type        string
	Title       string
	Description string
	// Ref holds a $ref value. Only the last path segment is meaningful.
	Ref        string
	Properties *Properties
	Required   []string
	Items      *Schema
	// ItemsList is set when items was written as a list of schemas, which is
	// not supported and rejected by the converter.
	ItemsList bool
	AllOf     []*Schema
	OneOf     []*Schema
	// DecodeErr records the first keyword that could not be decoded.
	// Converters report it when they reach the node.
	DecodeErr error
}

// NewProperties returns an empty ordered property set.
func NewProperties() *Properties {
	return sequencedmap.New[string, *Schema]()
}

// Parse decodes a YAML or JSON document into a Schema.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.DecodeErr != nil {
		return nil, s.DecodeErr
	}
	return &s, nil
}

// HasAllOf reports whether the node carries an allOf composition.
func (s *Schema) HasAllOf() bool { return s != nil && len(s.AllOf) > 0 }

// HasOneOf reports whether the node carries a oneOf composition.
func (s *Schema) HasOneOf() bool { return s != nil && len(s.OneOf) > 0 }

// IsObjectShape reports whether the node is handled as an object shape.
// A node with allOf is an object shape regardless of its type.
func (s *Schema) IsObjectShape() bool {
	return s != nil && (s.Type == TypeObject || s.HasAllOf())
}

// IsRequired reports whether name is listed in required.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// RefName returns the flat reference name of $ref, e.g. "User" for
// "#/components/schemas/User".
func (s *Schema) RefName() string {
	if s == nil || s.Ref == "" {
		return ""
	}
	parts := strings.Split(s.Ref, "/")
	return parts[len(parts)-1]
}

// UnmarshalYAML implements yaml.Unmarshaler. It walks the mapping node by hand
// so that properties keep their source order. Malformed keywords are recorded
// in DecodeErr instead of failing the enclosing document.
func (s *Schema) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode {
		value = value.Alias
	}
	if value.Kind != yaml.MappingNode {
		s.DecodeErr = fmt.Errorf("line %d: schema must be a mapping", value.Line)
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		var err error
		switch key.Value {
		case "type":
			err = val.Decode(&s.Type)
		case "title":
			err = val.Decode(&s.Title)
		case "description":
			err = val.Decode(&s.Description)
		case "$ref":
			err = val.Decode(&s.Ref)
		case "required":
			err = val.Decode(&s.Required)
		case "properties":
			s.Properties, err = decodeProperties(val)
		case "items":
			if val.Kind == yaml.SequenceNode {
				s.ItemsList = true
				continue
			}
			s.Items = &Schema{}
			err = val.Decode(s.Items)
		case "allOf":
			err = val.Decode(&s.AllOf)
		case "oneOf":
			err = val.Decode(&s.OneOf)
		}
		if err != nil && s.DecodeErr == nil {
			s.DecodeErr = fmt.Errorf("line %d: %s: %w", key.Line, key.Value, err)
		}
	}
	return nil
}

func decodeProperties(node *yaml.Node) (*Properties, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: properties must be a mapping", node.Line)
	}
	props := NewProperties()
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		prop := &Schema{}
		if err := node.Content[i+1].Decode(prop); err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		props.Set(name, prop)
	}
	return props, nil
}
