// Package ir defines the intermediate representations shared by the normalizer,
// the IR builder and the emitters.
package ir

// PropKind identifies the variant of a PropType.
type PropKind string

const (
	KindPrimitive PropKind = "primitive"
	KindRef       PropKind = "ref"
	KindUnion     PropKind = "union"
	KindObject    PropKind = "object"
	KindArray     PropKind = "array"
)

// PropType is the structural type of a property, parameter or body. The set
// of variants is closed: Primitive, Ref, Union, Object and Array.
type PropType interface {
	Kind() PropKind
	isPropType()
}

// PrimitiveName is the name of a primitive type as written in TypeSpec.
type PrimitiveName string

const (
	PrimString  PrimitiveName = "string"
	PrimNumeric PrimitiveName = "numeric"
	PrimBoolean PrimitiveName = "boolean"
	PrimNull    PrimitiveName = "null"
)

// Primitive is a scalar type.
type Primitive struct {
	Name PrimitiveName
}

// Ref references a named type by its display name.
type Ref struct {
	Name string
}

// Union is an ordered list of alternatives. Duplicates are kept.
type Union struct {
	Types []PropType
}

// Object is an anonymous object shape. Field order is source order.
type Object struct {
	Fields []Field
}

// Array wraps the element type of a list.
type Array struct {
	Elem PropType
}

func (Primitive) Kind() PropKind { return KindPrimitive }
func (Ref) Kind() PropKind       { return KindRef }
func (Union) Kind() PropKind     { return KindUnion }
func (Object) Kind() PropKind    { return KindObject }
func (Array) Kind() PropKind     { return KindArray }

func (Primitive) isPropType() {}
func (Ref) isPropType()       {}
func (Union) isPropType()     {}
func (Object) isPropType()    {}
func (Array) isPropType()     {}

// Convenience values for the primitive types.
var (
	String  = Primitive{Name: PrimString}
	Numeric = Primitive{Name: PrimNumeric}
	Boolean = Primitive{Name: PrimBoolean}
	Null    = Primitive{Name: PrimNull}
)

// Prop is a typed property with its requiredness and optional description.
type Prop struct {
	Type        PropType
	Required    bool
	Description string
}

// Field is a named Prop inside an object shape or model.
type Field struct {
	Name string
	Prop Prop
}

// Index returns the position of the named field, or -1.
func (o Object) Index(name string) int {
	for i, f := range o.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Set replaces the named field in place, or appends it when absent.
func (o *Object) Set(name string, p Prop) {
	if i := o.Index(name); i >= 0 {
		o.Fields[i].Prop = p
		return
	}
	o.Fields = append(o.Fields, Field{Name: name, Prop: p})
}

// Node is a top-level TypeSpec declaration: Alias, Model or Operation.
type Node interface {
	NodeName() string
	isNode()
}

// Alias declares a name for an arbitrary type.
type Alias struct {
	Name string
	Type PropType
}

// Model declares a named object with fields.
type Model struct {
	Name   string
	Fields []Field
}

// Operation is an HTTP operation.
type Operation struct {
	Name        string
	Method      string
	Route       string
	Summary     string
	Description string
	// Parameters are the non-body parameters in declaration order.
	Parameters []Param
	// RequestBody is nil when the operation takes no body.
	RequestBody     PropType
	BodyDescription string
	// Returns is set when the responses are not differentiated by status
	// code. StatusResponses is set otherwise. Both empty means void.
	Returns         PropType
	StatusResponses []StatusResponse
	HTTP            *HTTP
}

// Param is a named operation parameter.
type Param struct {
	Name string
	Prop Prop
}

// StatusResponse is one response variant keyed by status code. Body may be nil.
type StatusResponse struct {
	StatusCode int
	Body       PropType
}

// HTTP holds binding information for operation parameters.
type HTTP struct {
	// Params lists the path parameter names in declaration order.
	Params []string
}

// IsPathParam reports whether name is bound to the route path.
func (h *HTTP) IsPathParam(name string) bool {
	if h == nil {
		return false
	}
	for _, p := range h.Params {
		if p == name {
			return true
		}
	}
	return false
}

func (a Alias) NodeName() string     { return a.Name }
func (m Model) NodeName() string     { return m.Name }
func (o Operation) NodeName() string { return o.Name }

func (Alias) isNode()     {}
func (Model) isNode()     {}
func (Operation) isNode() {}
