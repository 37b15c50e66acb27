package generator

import (
	"fmt"

	"github.com/okonomi/serverless-typespec-generator/pkg/ir"
	"github.com/okonomi/serverless-typespec-generator/pkg/jsonschema"
)

// ConvertType converts a schema node to a structural property type.
//
// oneOf wins over everything else and becomes a union of its branches. A node
// with type object or with allOf becomes an object shape. Remaining nodes are
// dispatched on their type.
func ConvertType(s *jsonschema.Schema) (ir.PropType, error) {
	if s == nil {
		return nil, &SchemaError{Msg: "missing schema"}
	}
	if s.DecodeErr != nil {
		return nil, &SchemaError{Msg: s.DecodeErr.Error()}
	}
	if s.HasOneOf() {
		types := make([]ir.PropType, 0, len(s.OneOf))
		for _, branch := range s.OneOf {
			t, err := ConvertType(branch)
			if err != nil {
				return nil, err
			}
			types = append(types, t)
		}
		return ir.Union{Types: types}, nil
	}
	if s.IsObjectShape() {
		return ExtractProps(s)
	}
	if s.Ref != "" {
		return ir.Ref{Name: s.RefName()}, nil
	}

	switch s.Type {
	case jsonschema.TypeString:
		return ir.String, nil
	case jsonschema.TypeInteger, jsonschema.TypeNumber:
		return ir.Numeric, nil
	case jsonschema.TypeBoolean:
		return ir.Boolean, nil
	case jsonschema.TypeNull:
		return ir.Null, nil
	case jsonschema.TypeArray:
		if s.ItemsList {
			return nil, &SchemaError{Msg: "array items must be a single schema"}
		}
		if s.Items == nil {
			return nil, &SchemaError{Msg: "array schema has no items"}
		}
		elem, err := ConvertType(s.Items)
		if err != nil {
			return nil, err
		}
		return ir.Array{Elem: elem}, nil
	}
	return nil, &SchemaError{Msg: fmt.Sprintf("unknown type %q", s.Type)}
}

// ExtractProps converts an object-shaped node to an object type. allOf takes
// precedence over sibling properties.
func ExtractProps(s *jsonschema.Schema) (ir.Object, error) {
	if s.HasAllOf() {
		return mergeAllOf(s.AllOf)
	}
	obj := ir.Object{Fields: []ir.Field{}}
	if s.Properties == nil {
		return obj, nil
	}
	for name, prop := range s.Properties.All() {
		t, err := ConvertType(prop)
		if err != nil {
			return ir.Object{}, fmt.Errorf("property %q: %w", name, err)
		}
		obj.Fields = append(obj.Fields, ir.Field{
			Name: name,
			Prop: ir.Prop{Type: t, Required: s.IsRequired(name), Description: prop.Description},
		})
	}
	return obj, nil
}

// mergeAllOf merges object branches left to right. A later branch replaces a
// same-named property entirely. Requiredness is the union over all branches
// and is applied after the merge, so it can only upgrade a property.
func mergeAllOf(branches []*jsonschema.Schema) (ir.Object, error) {
	merged := ir.Object{Fields: []ir.Field{}}
	var required []string
	for i, branch := range branches {
		if branch != nil && branch.DecodeErr != nil {
			return ir.Object{}, &SchemaError{Msg: fmt.Sprintf("allOf branch %d: %v", i, branch.DecodeErr)}
		}
		if branch == nil || branch.Type != jsonschema.TypeObject {
			typ := ""
			if branch != nil {
				typ = branch.Type
			}
			return ir.Object{}, &NotImplementedError{Msg: fmt.Sprintf("allOf branch %d has type %q, only object is supported", i, typ)}
		}
		required = append(required, branch.Required...)
		props, err := ExtractProps(branch)
		if err != nil {
			return ir.Object{}, err
		}
		for _, f := range props.Fields {
			merged.Set(f.Name, f.Prop)
		}
	}
	for _, name := range required {
		if i := merged.Index(name); i >= 0 {
			merged.Fields[i].Prop.Required = true
		}
	}
	return merged, nil
}

// ToTypeSpecNode converts a named schema to a top-level declaration. Object
// shapes without oneOf become models. Anything else, arrays and scalars
// included, becomes an alias.
func ToTypeSpecNode(s *jsonschema.Schema, name string) (ir.Node, error) {
	if s == nil {
		return nil, &SchemaError{Msg: fmt.Sprintf("schema %q is empty", name)}
	}
	if s.DecodeErr != nil {
		return nil, &SchemaError{Msg: s.DecodeErr.Error()}
	}
	if s.IsObjectShape() && !s.HasOneOf() {
		obj, err := ExtractProps(s)
		if err != nil {
			return nil, err
		}
		return ir.Model{Name: name, Fields: obj.Fields}, nil
	}
	t, err := ConvertType(s)
	if err != nil {
		return nil, err
	}
	return ir.Alias{Name: name, Type: t}, nil
}
