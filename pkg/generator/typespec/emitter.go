// Package typespec renders TypeSpec nodes as a single main.tsp document.
package typespec

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/okonomi/serverless-typespec-generator/pkg/config"
	"github.com/okonomi/serverless-typespec-generator/pkg/ir"
)

// HTTPLibrary is the TypeSpec library imported by every document.
const HTTPLibrary = "@typespec/http"

//go:embed templates/*
var templatesFS embed.FS

// Emitter implements the generator Emitter interface for TypeSpec
type Emitter struct{}

// NewEmitter creates a new TypeSpec emitter
func NewEmitter() *Emitter {
	return &Emitter{}
}

// GetType returns the emitter type identifier
func (e *Emitter) GetType() string {
	return config.OutputTypeSpec
}

// Emit renders nodes inside the service envelope. Declarations are separated
// by one blank line and the document ends with a single newline.
func (e *Emitter) Emit(cfg *config.Config, nodes []ir.Node) ([]byte, error) {
	decls := make([]string, 0, len(nodes))
	for _, n := range nodes {
		s, err := RenderNode(n)
		if err != nil {
			return nil, err
		}
		decls = append(decls, s)
	}

	data := map[string]any{
		"Library":      HTTPLibrary,
		"Title":        cfg.Title,
		"Namespace":    cfg.Namespace,
		"Description":  cfg.Description,
		"Declarations": decls,
	}
	var buf bytes.Buffer
	if err := renderTemplate(&buf, "main.tsp.gotmpl", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderTemplate renders an embedded template into buf
func renderTemplate(buf *bytes.Buffer, templateName string, data map[string]any) error {
	tmplContent, err := templatesFS.ReadFile("templates/" + templateName)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", templateName, err)
	}

	funcs := sprig.TxtFuncMap()
	funcs["tspString"] = quoteString

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(tmplContent))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	if err := tmpl.Execute(buf, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return nil
}
