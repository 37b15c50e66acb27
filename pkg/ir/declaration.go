package ir

import "github.com/okonomi/serverless-typespec-generator/pkg/jsonschema"

// Declaration is a canonical declaration produced from the serverless
// configuration: either a ModelDecl or a FunctionDecl.
type Declaration interface {
	isDeclaration()
}

// Origin records where a model declaration came from. It decides whether a
// failure to convert its schema is recoverable.
type Origin int

const (
	// OriginProvider marks entries of the provider-level schema table.
	OriginProvider Origin = iota
	// OriginFunction marks titled inline schemas declared by a function.
	OriginFunction
)

// ModelDecl declares a named schema. Key is the lookup key used by string
// references; Name is the display name of the emitted type.
type ModelDecl struct {
	Key    string
	Name   string
	Schema *jsonschema.Schema
	Origin Origin
}

// FunctionDecl declares an HTTP operation backed by a function.
type FunctionDecl struct {
	Name  string
	Event Event
}

func (ModelDecl) isDeclaration()    {}
func (FunctionDecl) isDeclaration() {}

// Event is the normalized HTTP trigger of a function.
type Event struct {
	Method      string
	Path        string
	Summary     string
	Description string
	Request     *Request
	Responses   []Response
}

// Request describes the request body and path parameters.
type Request struct {
	Body *Body
	Path []PathParam
}

// Body is a request body schema with an optional description.
type Body struct {
	Schema      SchemaRef
	Description string
}

// SchemaRef is either a string reference to a registered model key or an
// inline schema node.
type SchemaRef struct {
	Ref    string
	Inline *jsonschema.Schema
}

// IsRef reports whether the schema is a string reference.
func (s SchemaRef) IsRef() bool { return s.Inline == nil }

// PathParam is a declared path parameter.
type PathParam struct {
	Name        string
	Required    bool
	Description string
}

// Response is a declared response. Bare responses are plain string references
// that carry no status code of their own; they are treated as status 200.
type Response struct {
	StatusCode int
	Body       *SchemaRef
	Bare       bool
}
