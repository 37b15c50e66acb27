package typespec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okonomi/serverless-typespec-generator/pkg/ir"
	"github.com/okonomi/serverless-typespec-generator/pkg/utils"
)

const indentUnit = "  "

// RenderNode renders one top-level declaration without a trailing newline.
func RenderNode(n ir.Node) (string, error) {
	switch n := n.(type) {
	case ir.Alias:
		t, err := RenderType(n.Type, 0)
		if err != nil {
			return "", fmt.Errorf("alias %s: %w", n.Name, err)
		}
		return "alias " + utils.QuoteIdentifier(n.Name) + " = " + t + ";", nil
	case ir.Model:
		return renderModel(n)
	case ir.Operation:
		return renderOperation(n)
	default:
		return "", fmt.Errorf("unsupported node %T", n)
	}
}

// RenderType renders a property type. indent is the nesting level of the
// line the type starts on; nested object fields are indented one level
// deeper.
func RenderType(t ir.PropType, indent int) (string, error) {
	switch t := t.(type) {
	case ir.Primitive:
		return string(t.Name), nil
	case ir.Ref:
		return utils.QuoteIdentifier(t.Name), nil
	case ir.Union:
		parts := make([]string, 0, len(t.Types))
		for _, sub := range t.Types {
			s, err := RenderType(sub, indent)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, " | "), nil
	case ir.Array:
		elem, err := RenderType(t.Elem, indent)
		if err != nil {
			return "", err
		}
		if _, ok := t.Elem.(ir.Union); ok {
			elem = "(" + elem + ")"
		}
		return elem + "[]", nil
	case ir.Object:
		if len(t.Fields) == 0 {
			return "{}", nil
		}
		fields, err := renderFields(t.Fields, indent+1)
		if err != nil {
			return "", err
		}
		return "{\n" + fields + strings.Repeat(indentUnit, indent) + "}", nil
	default:
		return "", fmt.Errorf("unsupported property type %T", t)
	}
}

// renderFields writes one line per field, each terminated by a newline.
func renderFields(fields []ir.Field, indent int) (string, error) {
	pad := strings.Repeat(indentUnit, indent)
	var b strings.Builder
	for _, f := range fields {
		t, err := RenderType(f.Prop.Type, indent)
		if err != nil {
			return "", fmt.Errorf("field %s: %w", f.Name, err)
		}
		if f.Prop.Description != "" {
			b.WriteString(pad + docComment(f.Prop.Description) + "\n")
		}
		b.WriteString(pad + utils.QuoteIdentifier(f.Name) + optional(f.Prop.Required) + ": " + t + ";\n")
	}
	return b.String(), nil
}

func renderModel(m ir.Model) (string, error) {
	head := "model " + utils.QuoteIdentifier(m.Name) + " {"
	if len(m.Fields) == 0 {
		return head + "}", nil
	}
	fields, err := renderFields(m.Fields, 1)
	if err != nil {
		return "", fmt.Errorf("model %s: %w", m.Name, err)
	}
	return head + "\n" + fields + "}", nil
}

type param struct {
	text string
	doc  string
}

func renderOperation(op ir.Operation) (string, error) {
	var lines []string
	if op.Summary != "" {
		lines = append(lines, "@summary("+quoteString(op.Summary)+")")
	}
	if op.Description != "" {
		lines = append(lines, "@doc("+quoteString(op.Description)+")")
	}
	lines = append(lines, "@route("+quoteString(op.Route)+")", "@"+op.Method)

	// Parameters sit one level deep only when the list is broken over lines.
	multiline := op.RequestBody != nil && op.BodyDescription != ""
	for _, p := range op.Parameters {
		if p.Prop.Description != "" {
			multiline = true
		}
	}
	indent := 0
	if multiline {
		indent = 1
	}

	var params []param
	for _, p := range op.Parameters {
		t, err := RenderType(p.Prop.Type, indent)
		if err != nil {
			return "", fmt.Errorf("operation %s: parameter %s: %w", op.Name, p.Name, err)
		}
		text := utils.QuoteIdentifier(p.Name) + optional(p.Prop.Required) + ": " + t
		if op.HTTP.IsPathParam(p.Name) {
			text = "@path " + text
		}
		params = append(params, param{text: text, doc: p.Prop.Description})
	}
	if op.RequestBody != nil {
		t, err := RenderType(op.RequestBody, indent)
		if err != nil {
			return "", fmt.Errorf("operation %s: request body: %w", op.Name, err)
		}
		params = append(params, param{text: "@body body: " + t, doc: op.BodyDescription})
	}

	ret, err := renderReturn(op)
	if err != nil {
		return "", fmt.Errorf("operation %s: %w", op.Name, err)
	}

	head := "op " + utils.QuoteIdentifier(op.Name)
	lines = append(lines, head+"("+renderParams(params, multiline)+"): "+ret+";")
	return strings.Join(lines, "\n"), nil
}

// renderParams keeps the list on one line unless a parameter carries a doc
// comment.
func renderParams(params []param, multiline bool) string {
	if !multiline {
		texts := make([]string, 0, len(params))
		for _, p := range params {
			texts = append(texts, p.text)
		}
		return strings.Join(texts, ", ")
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, p := range params {
		if p.doc != "" {
			b.WriteString(indentUnit + docComment(p.doc) + "\n")
		}
		b.WriteString(indentUnit + p.text + ",\n")
	}
	return b.String()
}

func renderReturn(op ir.Operation) (string, error) {
	if len(op.StatusResponses) > 0 {
		variants := make([]string, 0, len(op.StatusResponses))
		for _, r := range op.StatusResponses {
			var b strings.Builder
			b.WriteString("{\n")
			b.WriteString(indentUnit + "@statusCode statusCode: " + strconv.Itoa(r.StatusCode) + ";\n")
			if r.Body != nil {
				t, err := RenderType(r.Body, 1)
				if err != nil {
					return "", fmt.Errorf("response %d: %w", r.StatusCode, err)
				}
				b.WriteString(indentUnit + "@body body: " + t + ";\n")
			}
			b.WriteString("}")
			variants = append(variants, b.String())
		}
		return strings.Join(variants, " | "), nil
	}
	if op.Returns != nil {
		return RenderType(op.Returns, 0)
	}
	return "void", nil
}

func optional(required bool) string {
	if required {
		return ""
	}
	return "?"
}

// quoteString quotes s as a TypeSpec string literal. "$" is escaped so that
// "${" is not read as interpolation.
func quoteString(s string) string {
	return strings.ReplaceAll(strconv.Quote(s), "$", `\$`)
}

func docComment(s string) string {
	return "/** " + strings.ReplaceAll(s, "*/", "*\\/") + " */"
}
