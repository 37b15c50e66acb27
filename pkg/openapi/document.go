// Package openapi lowers TypeSpec nodes to an OpenAPI document.
package openapi

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/okonomi/serverless-typespec-generator/pkg/config"
	"github.com/okonomi/serverless-typespec-generator/pkg/ir"
)

const componentPrefix = "#/components/schemas/"

var routeParam = regexp.MustCompile(`\{([^}]+)\}`)

// BuildDocument converts nodes into an OpenAPI document. Operations become
// paths; models and aliases become component schemas.
func BuildDocument(cfg *config.Config, nodes []ir.Node) (*openapi3.T, error) {
	components := openapi3.NewComponents()
	components.Schemas = openapi3.Schemas{}

	doc := &openapi3.T{
		OpenAPI: cfg.OpenAPIVersion,
		Info: &openapi3.Info{
			Title:       cfg.Title,
			Description: cfg.Description,
			Version:     cfg.Version,
		},
		Paths:      openapi3.NewPaths(),
		Components: &components,
	}

	for _, n := range nodes {
		switch n := n.(type) {
		case ir.Operation:
			op, err := buildOperation(n)
			if err != nil {
				return nil, fmt.Errorf("operation %s: %w", n.Name, err)
			}
			item := doc.Paths.Value(n.Route)
			if item == nil {
				item = &openapi3.PathItem{}
				doc.Paths.Set(n.Route, item)
			}
			item.SetOperation(strings.ToUpper(n.Method), op)
		case ir.Model:
			ref, err := objectSchema(n.Fields)
			if err != nil {
				return nil, fmt.Errorf("model %s: %w", n.Name, err)
			}
			components.Schemas[n.Name] = ref
		case ir.Alias:
			ref, err := SchemaRef(n.Type)
			if err != nil {
				return nil, fmt.Errorf("alias %s: %w", n.Name, err)
			}
			components.Schemas[n.Name] = ref
		default:
			return nil, fmt.Errorf("unsupported node %T", n)
		}
	}
	return doc, nil
}

// SchemaRef lowers a property type. References point into components.
func SchemaRef(t ir.PropType) (*openapi3.SchemaRef, error) {
	switch t := t.(type) {
	case ir.Primitive:
		switch t.Name {
		case ir.PrimString:
			return openapi3.NewStringSchema().NewRef(), nil
		case ir.PrimNumeric:
			return openapi3.NewFloat64Schema().NewRef(), nil
		case ir.PrimBoolean:
			return openapi3.NewBoolSchema().NewRef(), nil
		case ir.PrimNull:
			return (&openapi3.Schema{Nullable: true}).NewRef(), nil
		}
		return nil, fmt.Errorf("unsupported primitive %q", t.Name)
	case ir.Ref:
		return openapi3.NewSchemaRef(componentPrefix+t.Name, nil), nil
	case ir.Union:
		s := &openapi3.Schema{}
		for _, sub := range t.Types {
			ref, err := SchemaRef(sub)
			if err != nil {
				return nil, err
			}
			s.OneOf = append(s.OneOf, ref)
		}
		return s.NewRef(), nil
	case ir.Array:
		items, err := SchemaRef(t.Elem)
		if err != nil {
			return nil, err
		}
		s := openapi3.NewArraySchema()
		s.Items = items
		return s.NewRef(), nil
	case ir.Object:
		return objectSchema(t.Fields)
	default:
		return nil, fmt.Errorf("unsupported property type %T", t)
	}
}

func objectSchema(fields []ir.Field) (*openapi3.SchemaRef, error) {
	s := openapi3.NewObjectSchema()
	s.Properties = openapi3.Schemas{}
	for _, f := range fields {
		ref, err := SchemaRef(f.Prop.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		// $ref siblings are ignored, so descriptions only land on inline schemas.
		if ref.Ref == "" && f.Prop.Description != "" {
			ref.Value.Description = f.Prop.Description
		}
		s.Properties[f.Name] = ref
		if f.Prop.Required {
			s.Required = append(s.Required, f.Name)
		}
	}
	return s.NewRef(), nil
}

func buildOperation(n ir.Operation) (*openapi3.Operation, error) {
	op := openapi3.NewOperation()
	op.OperationID = n.Name
	op.Summary = n.Summary
	op.Description = n.Description

	// OpenAPI path parameters are always required and must cover the route
	// template.
	declared := map[string]bool{}
	for _, p := range n.Parameters {
		if !n.HTTP.IsPathParam(p.Name) {
			continue
		}
		param := openapi3.NewPathParameter(p.Name).WithSchema(openapi3.NewStringSchema())
		if p.Prop.Description != "" {
			param = param.WithDescription(p.Prop.Description)
		}
		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{Value: param})
		declared[p.Name] = true
	}
	for _, m := range routeParam.FindAllStringSubmatch(n.Route, -1) {
		if declared[m[1]] {
			continue
		}
		param := openapi3.NewPathParameter(m[1]).WithSchema(openapi3.NewStringSchema())
		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{Value: param})
		declared[m[1]] = true
	}

	if n.RequestBody != nil {
		ref, err := SchemaRef(n.RequestBody)
		if err != nil {
			return nil, fmt.Errorf("request body: %w", err)
		}
		body := openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(ref)
		if n.BodyDescription != "" {
			body = body.WithDescription(n.BodyDescription)
		}
		op.RequestBody = &openapi3.RequestBodyRef{Value: body}
	}

	responses, err := buildResponses(n)
	if err != nil {
		return nil, err
	}
	op.Responses = responses
	return op, nil
}

func buildResponses(n ir.Operation) (*openapi3.Responses, error) {
	if len(n.StatusResponses) == 0 {
		responses := openapi3.NewResponsesWithCapacity(1)
		resp := openapi3.NewResponse().WithDescription(statusDescription(http.StatusOK))
		if n.Returns != nil {
			ref, err := SchemaRef(n.Returns)
			if err != nil {
				return nil, fmt.Errorf("response: %w", err)
			}
			resp = resp.WithJSONSchemaRef(ref)
		}
		responses.Set(strconv.Itoa(http.StatusOK), &openapi3.ResponseRef{Value: resp})
		return responses, nil
	}

	responses := openapi3.NewResponsesWithCapacity(len(n.StatusResponses))
	for _, r := range n.StatusResponses {
		resp := openapi3.NewResponse().WithDescription(statusDescription(r.StatusCode))
		if r.Body != nil {
			ref, err := SchemaRef(r.Body)
			if err != nil {
				return nil, fmt.Errorf("response %d: %w", r.StatusCode, err)
			}
			resp = resp.WithJSONSchemaRef(ref)
		}
		responses.Set(strconv.Itoa(r.StatusCode), &openapi3.ResponseRef{Value: resp})
	}
	return responses, nil
}

func statusDescription(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Response " + strconv.Itoa(code)
}
