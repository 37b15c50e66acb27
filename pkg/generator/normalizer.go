package generator

import (
	"errors"
	"strings"

	"github.com/okonomi/serverless-typespec-generator/pkg/ir"
	"github.com/okonomi/serverless-typespec-generator/pkg/jsonschema"
	"github.com/okonomi/serverless-typespec-generator/pkg/serverless"
	"github.com/okonomi/serverless-typespec-generator/pkg/utils"
)

const contentTypeJSON = "application/json"

var supportedMethods = map[string]bool{
	"get":    true,
	"post":   true,
	"put":    true,
	"delete": true,
	"patch":  true,
}

// BuildServerlessIR normalizes a service definition into canonical
// declarations: provider schemas first, then one FunctionDecl per function
// with a usable http event. Titled inline schemas found in a function become
// ModelDecls placed just before that function.
func BuildServerlessIR(svc *serverless.Service, opts Options) ([]ir.Declaration, error) {
	if svc == nil {
		return nil, errors.New("no service definition")
	}
	filter, err := compileFunctionFilters(opts.IncludeFunctions, opts.ExcludeFunctions)
	if err != nil {
		return nil, err
	}

	n := &normalizer{
		aliasArrays: opts.aliasArrays(),
		declared:    map[string]bool{},
	}

	for key, named := range svc.Provider.APIGateway.Request.Schemas.All() {
		n.decls = append(n.decls, providerModel(key, named))
	}

	for id, fn := range svc.Functions.All() {
		if !filter.shouldIncludeFunction(id) {
			continue
		}
		ev := firstHTTPEvent(fn)
		if ev == nil || ev.Placeholder != "" {
			continue
		}
		method := strings.ToLower(ev.Method)
		if !supportedMethods[method] {
			continue
		}

		event, err := n.event(id, method, ev)
		if err != nil {
			return nil, err
		}
		n.decls = append(n.decls, ir.FunctionDecl{
			Name:  utils.ToLowerCamel(id),
			Event: event,
		})
	}

	return n.decls, nil
}

type normalizer struct {
	decls       []ir.Declaration
	aliasArrays bool
	// declared tracks function-origin model keys so a titled schema shared
	// by several functions is declared once.
	declared map[string]bool
}

func providerModel(key string, named *serverless.NamedSchema) ir.ModelDecl {
	decl := ir.ModelDecl{Key: key, Name: key, Origin: ir.OriginProvider}
	if named == nil {
		return decl
	}
	decl.Schema = named.Schema
	switch {
	case named.Name != "":
		decl.Name = named.Name
	case named.Schema != nil && named.Schema.Title != "":
		decl.Name = named.Schema.Title
	}
	return decl
}

func firstHTTPEvent(fn *serverless.Function) *serverless.HTTPEvent {
	if fn == nil {
		return nil
	}
	for _, ev := range fn.Events {
		if ev.HTTP != nil {
			return ev.HTTP
		}
	}
	return nil
}

func (n *normalizer) event(id, method string, ev *serverless.HTTPEvent) (ir.Event, error) {
	event := ir.Event{
		Method: method,
		Path:   normalizePath(ev.Path),
	}
	doc := ev.Documentation
	if doc != nil {
		event.Summary = doc.Summary
		event.Description = doc.Description
	}

	var body *ir.Body
	if ev.Request != nil {
		if sor, ok := pickContent(ev.Request.Schemas); ok {
			body = &ir.Body{Schema: n.schemaRef(sor)}
		}
	}
	if doc != nil && doc.RequestBody != nil {
		if body == nil {
			return ir.Event{}, &ConfigError{Function: id, Msg: "has requestBody but no request body defined"}
		}
		body.Description = doc.RequestBody.Description
	}

	params := pathParams(ev)
	if body != nil || len(params) > 0 {
		event.Request = &ir.Request{Body: body, Path: params}
	}

	if doc != nil {
		event.Responses = n.responses(doc)
	}
	return event, nil
}

func normalizePath(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

// pickContent returns the application/json entry, or the first one.
func pickContent(m *serverless.OrderedMap[serverless.SchemaOrRef]) (serverless.SchemaOrRef, bool) {
	if sor, ok := m.Get(contentTypeJSON); ok && !isEmpty(sor) {
		return sor, true
	}
	for _, sor := range m.All() {
		if !isEmpty(sor) {
			return sor, true
		}
	}
	return serverless.SchemaOrRef{}, false
}

func isEmpty(sor serverless.SchemaOrRef) bool {
	return sor.Ref == "" && sor.Schema == nil
}

// pathParams merges the documented parameter list with the flag-style map.
// Documented parameters come first, in their own order.
func pathParams(ev *serverless.HTTPEvent) []ir.PathParam {
	var flags *serverless.OrderedMap[serverless.ParamFlag]
	if ev.Request != nil && ev.Request.Parameters != nil {
		flags = ev.Request.Parameters.Paths
	}

	var out []ir.PathParam
	seen := map[string]bool{}
	if ev.Documentation != nil {
		for _, d := range ev.Documentation.PathParams {
			p := ir.PathParam{Name: d.Name, Required: true, Description: d.Description}
			if flag, ok := flags.Get(d.Name); ok {
				p.Required = flag.Required
				if p.Description == "" {
					p.Description = flag.Description
				}
			} else if d.Required != nil {
				p.Required = *d.Required
			}
			out = append(out, p)
			seen[d.Name] = true
		}
	}
	for name, flag := range flags.All() {
		if seen[name] {
			continue
		}
		out = append(out, ir.PathParam{Name: name, Required: flag.Required, Description: flag.Description})
	}
	return out
}

func (n *normalizer) responses(doc *serverless.Documentation) []ir.Response {
	var out []ir.Response
	for _, mr := range doc.MethodResponses {
		resp := ir.Response{StatusCode: int(mr.StatusCode)}
		if sor, ok := pickContent(mr.ResponseModels); ok {
			ref := n.schemaRef(sor)
			resp.Body = &ref
		}
		out = append(out, resp)
	}
	for _, name := range doc.Responses {
		out = append(out, ir.Response{Body: &ir.SchemaRef{Ref: name}, Bare: true})
	}
	return out
}

// schemaRef turns a request or response schema into a reference or an inline
// node, declaring models for titled schemas along the way.
func (n *normalizer) schemaRef(sor serverless.SchemaOrRef) ir.SchemaRef {
	if sor.Schema == nil {
		return ir.SchemaRef{Ref: sor.Ref}
	}
	s := sor.Schema
	if s.Title != "" {
		n.declare(s.Title, s)
		return ir.SchemaRef{Ref: s.Title}
	}
	if s.Type == jsonschema.TypeArray && s.Items != nil && !s.ItemsList && s.Items.Title != "" {
		title := s.Items.Title
		n.declare(title, s.Items)
		list := &jsonschema.Schema{
			Type:        jsonschema.TypeArray,
			Description: s.Description,
			Items:       &jsonschema.Schema{Ref: title},
		}
		if !n.aliasArrays {
			return ir.SchemaRef{Inline: list}
		}
		alias := utils.ToPascalCase(title) + "List"
		n.declare(alias, list)
		return ir.SchemaRef{Ref: alias}
	}
	return ir.SchemaRef{Inline: s}
}

func (n *normalizer) declare(key string, s *jsonschema.Schema) {
	if n.declared[key] {
		return
	}
	n.declared[key] = true
	n.decls = append(n.decls, ir.ModelDecl{Key: key, Name: key, Schema: s, Origin: ir.OriginFunction})
}
