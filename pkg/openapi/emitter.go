package openapi

import (
	"encoding/json"
	"fmt"

	"github.com/okonomi/serverless-typespec-generator/pkg/config"
	"github.com/okonomi/serverless-typespec-generator/pkg/ir"
)

// Emitter implements the generator Emitter interface for OpenAPI JSON
type Emitter struct{}

// NewEmitter creates a new OpenAPI emitter
func NewEmitter() *Emitter {
	return &Emitter{}
}

// GetType returns the emitter type identifier
func (e *Emitter) GetType() string {
	return config.OutputOpenAPI
}

// Emit builds the document and serializes it as indented JSON.
func (e *Emitter) Emit(cfg *config.Config, nodes []ir.Node) ([]byte, error) {
	doc, err := BuildDocument(cfg, nodes)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode OpenAPI document: %w", err)
	}
	return append(out, '\n'), nil
}
