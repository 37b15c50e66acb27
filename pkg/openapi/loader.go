package openapi

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// ValidateDocument loads a serialized OpenAPI document and validates it.
// Dangling component references are reported as load errors.
func ValidateDocument(data []byte) error {
	loader := openapi3.NewLoader()
	return ValidateDocumentWithLoader(loader, data)
}

// ValidateDocumentWithLoader validates using a custom loader
func ValidateDocumentWithLoader(loader *openapi3.Loader, data []byte) error {
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return nil
}
