// Package serverless models the parts of a Serverless Framework service
// definition that describe an HTTP API.
package serverless

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/okonomi/serverless-typespec-generator/pkg/jsonschema"
)

// Service is the root of a serverless.yml document.
type Service struct {
	Service   string                 `yaml:"service"`
	Provider  Provider               `yaml:"provider"`
	Functions *OrderedMap[*Function] `yaml:"functions"`
	Custom    Custom                 `yaml:"custom"`
}

// Provider holds provider-level settings.
type Provider struct {
	Name       string     `yaml:"name"`
	APIGateway APIGateway `yaml:"apiGateway"`
}

// APIGateway holds API Gateway settings.
type APIGateway struct {
	Request APIGatewayRequest `yaml:"request"`
}

// APIGatewayRequest holds the provider-level table of named request schemas.
type APIGatewayRequest struct {
	Schemas *OrderedMap[*NamedSchema] `yaml:"schemas"`
}

// NamedSchema is an entry of the provider-level schema table.
type NamedSchema struct {
	Schema      *jsonschema.Schema `yaml:"schema"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
}

// Custom holds the custom section. Only the typespec block is read.
type Custom struct {
	TypeSpec *Settings `yaml:"typespec"`
}

// Settings are generator settings embedded in serverless.yml.
type Settings struct {
	Title          string `yaml:"title"`
	Namespace      string `yaml:"namespace"`
	Description    string `yaml:"description"`
	Version        string `yaml:"version"`
	OpenAPIVersion string `yaml:"openapiVersion"`
}

// Function is a function definition.
type Function struct {
	Handler string  `yaml:"handler"`
	Events  []Event `yaml:"events"`
}

// Event is a function trigger. Type is the trigger key (http, s3, sqs, ...);
// HTTP is only set for http triggers.
type Event struct {
	Type string
	HTTP *HTTPEvent
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Event) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode || len(node.Content) < 2 {
		return fmt.Errorf("line %d: event must be a mapping with a trigger key", node.Line)
	}
	e.Type = node.Content[0].Value
	if e.Type != "http" {
		return nil
	}
	e.HTTP = &HTTPEvent{}
	return node.Content[1].Decode(e.HTTP)
}

// HTTPEvent is an http trigger. The short form "GET hello" is kept verbatim
// in Placeholder and carries no other fields.
type HTTPEvent struct {
	Placeholder   string
	Method        string
	Path          string
	Request       *HTTPRequest
	Documentation *Documentation
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (h *HTTPEvent) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		h.Placeholder = node.Value
		return nil
	}
	var raw struct {
		Method        string         `yaml:"method"`
		Path          string         `yaml:"path"`
		Request       *HTTPRequest   `yaml:"request"`
		Documentation *Documentation `yaml:"documentation"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	h.Method = raw.Method
	h.Path = raw.Path
	h.Request = raw.Request
	h.Documentation = raw.Documentation
	return nil
}

// HTTPRequest describes request schemas (by content type) and parameters.
type HTTPRequest struct {
	Schemas    *OrderedMap[SchemaOrRef] `yaml:"schemas"`
	Parameters *RequestParameters       `yaml:"parameters"`
}

// RequestParameters holds the flag-style parameter maps.
type RequestParameters struct {
	Paths *OrderedMap[ParamFlag] `yaml:"paths"`
}

// ParamFlag is a flag-style parameter: either a bare boolean or a mapping
// with required and description.
type ParamFlag struct {
	Required    bool
	Description string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *ParamFlag) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&p.Required)
	}
	var raw struct {
		Required    *bool  `yaml:"required"`
		Description string `yaml:"description"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	p.Required = raw.Required == nil || *raw.Required
	p.Description = raw.Description
	return nil
}

// SchemaOrRef is either a string reference to a named schema or an inline
// schema.
type SchemaOrRef struct {
	Ref    string
	Schema *jsonschema.Schema
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *SchemaOrRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Ref = node.Value
		return nil
	}
	s.Schema = &jsonschema.Schema{}
	return node.Decode(s.Schema)
}

// Documentation is the documentation block of an http event.
type Documentation struct {
	Summary         string           `yaml:"summary"`
	Description     string           `yaml:"description"`
	RequestBody     *RequestBodyDoc  `yaml:"requestBody"`
	PathParams      []PathParamDoc   `yaml:"pathParams"`
	MethodResponses []MethodResponse `yaml:"methodResponses"`
	// Responses lists bare model references not tied to a status code.
	Responses []string `yaml:"responses"`
}

// RequestBodyDoc documents the request body.
type RequestBodyDoc struct {
	Description string `yaml:"description"`
}

// PathParamDoc documents a path parameter.
type PathParamDoc struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Required    *bool  `yaml:"required"`
}

// MethodResponse documents one response.
type MethodResponse struct {
	StatusCode     StatusCode               `yaml:"statusCode"`
	ResponseBody   *ResponseBodyDoc         `yaml:"responseBody"`
	ResponseModels *OrderedMap[SchemaOrRef] `yaml:"responseModels"`
}

// ResponseBodyDoc documents a response body.
type ResponseBodyDoc struct {
	Description string `yaml:"description"`
}

// StatusCode accepts both 201 and "201".
type StatusCode int

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *StatusCode) UnmarshalYAML(node *yaml.Node) error {
	n, err := strconv.Atoi(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid status code %q", node.Line, node.Value)
	}
	*c = StatusCode(n)
	return nil
}
