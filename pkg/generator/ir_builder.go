package generator

import (
	"errors"
	"fmt"

	"github.com/okonomi/serverless-typespec-generator/pkg/ir"
	"github.com/okonomi/serverless-typespec-generator/pkg/registry"
)

// BuildTypeSpecIR lowers canonical declarations to TypeSpec nodes.
//
// Models are registered first so that operations can resolve references
// regardless of declaration order. The result lists operations in
// declaration order followed by every registered model and alias in
// registration order.
//
// A provider schema that fails to convert is logged and skipped. Any other
// failure aborts the run.
func BuildTypeSpecIR(decls []ir.Declaration, opts Options) ([]ir.Node, error) {
	reg := registry.New[ir.Node]()
	logger := opts.logger()

	for _, d := range decls {
		m, ok := d.(ir.ModelDecl)
		if !ok {
			continue
		}
		node, err := ToTypeSpecNode(m.Schema, m.Name)
		if err != nil {
			if m.Origin == ir.OriginProvider && isSchemaFailure(err) {
				logger.Printf("warning: skipping schema %q: %v", m.Key, err)
				continue
			}
			return nil, fmt.Errorf("model %q: %w", m.Key, err)
		}
		if err := reg.Register(m.Key, node); err != nil {
			return nil, err
		}
	}

	nodes := make([]ir.Node, 0, len(decls))
	for _, d := range decls {
		f, ok := d.(ir.FunctionDecl)
		if !ok {
			continue
		}
		op, err := buildOperation(reg, f)
		if err != nil {
			return nil, fmt.Errorf("function %q: %w", f.Name, err)
		}
		nodes = append(nodes, op)
	}
	for node := range reg.Values() {
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func isSchemaFailure(err error) bool {
	var schemaErr *SchemaError
	var notImpl *NotImplementedError
	return errors.As(err, &schemaErr) || errors.As(err, &notImpl)
}

func buildOperation(reg *registry.Registry[ir.Node], f ir.FunctionDecl) (ir.Operation, error) {
	ev := f.Event
	op := ir.Operation{
		Name:        f.Name,
		Method:      ev.Method,
		Route:       ev.Path,
		Summary:     ev.Summary,
		Description: ev.Description,
	}

	if req := ev.Request; req != nil {
		if len(req.Path) > 0 {
			op.HTTP = &ir.HTTP{}
			for _, p := range req.Path {
				op.Parameters = append(op.Parameters, ir.Param{
					Name: p.Name,
					Prop: ir.Prop{Type: ir.String, Required: p.Required, Description: p.Description},
				})
				op.HTTP.Params = append(op.HTTP.Params, p.Name)
			}
		}
		if req.Body != nil {
			t, err := resolve(reg, req.Body.Schema)
			if err != nil {
				return ir.Operation{}, fmt.Errorf("request body: %w", err)
			}
			op.RequestBody = t
			op.BodyDescription = req.Body.Description
		}
	}

	if err := buildReturns(reg, &op, ev.Responses); err != nil {
		return ir.Operation{}, err
	}
	return op, nil
}

// buildReturns sets either Returns (every response is a bare reference) or
// StatusResponses.
func buildReturns(reg *registry.Registry[ir.Node], op *ir.Operation, responses []ir.Response) error {
	if len(responses) == 0 {
		return nil
	}

	allBare := true
	for _, r := range responses {
		if !r.Bare {
			allBare = false
			break
		}
	}

	if allBare {
		types := make([]ir.PropType, 0, len(responses))
		for _, r := range responses {
			t, err := resolve(reg, *r.Body)
			if err != nil {
				return fmt.Errorf("response: %w", err)
			}
			types = append(types, t)
		}
		if len(types) == 1 {
			op.Returns = types[0]
		} else {
			op.Returns = ir.Union{Types: types}
		}
		return nil
	}

	for _, r := range responses {
		sr := ir.StatusResponse{StatusCode: r.StatusCode}
		if r.Bare {
			sr.StatusCode = 200
		}
		if r.Body != nil {
			t, err := resolve(reg, *r.Body)
			if err != nil {
				return fmt.Errorf("response %d: %w", sr.StatusCode, err)
			}
			sr.Body = t
		}
		op.StatusResponses = append(op.StatusResponses, sr)
	}
	return nil
}

// resolve maps a reference to the display name of the registered node, or
// keeps the literal name when nothing is registered under it. Inline schemas
// are converted structurally.
func resolve(reg *registry.Registry[ir.Node], ref ir.SchemaRef) (ir.PropType, error) {
	if !ref.IsRef() {
		return ConvertType(ref.Inline)
	}
	if node, ok := reg.Get(ref.Ref); ok {
		return ir.Ref{Name: node.NodeName()}, nil
	}
	return ir.Ref{Name: ref.Ref}, nil
}
