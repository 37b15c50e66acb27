package generator

import (
	"path/filepath"

	"github.com/okonomi/serverless-typespec-generator/pkg/config"
	"github.com/okonomi/serverless-typespec-generator/pkg/openapi"
	"github.com/okonomi/serverless-typespec-generator/pkg/serverless"
)

// GenerateTypeSpec is a convenience function for writing main.tsp from a
// serverless.yml with default settings
func GenerateTypeSpec(spec, outFile string) error {
	// Ensure absolute path for outFile
	absOutFile, err := filepath.Abs(outFile)
	if err != nil {
		return err
	}

	return NewService().Generate(GenerateOptions{
		Fallback: FallbackOptions{
			Spec:    spec,
			Type:    config.OutputTypeSpec,
			OutFile: absOutFile,
		},
	})
}

// GenerateFromConfig is a convenience function for generating from a config file
func GenerateFromConfig(configPath string) error {
	service := NewService()
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	return service.GenerateFromConfig(cfg, false)
}

// ValidateSpec builds the serverless file at specPath and validates the
// OpenAPI lowering of the result.
func ValidateSpec(specPath string, cfg *config.Config) error {
	svc, err := serverless.Load(specPath)
	if err != nil {
		return err
	}
	service := NewService()
	resolved, nodes, err := service.Build(cfg, svc)
	if err != nil {
		return err
	}
	data, err := openapi.NewEmitter().Emit(resolved, nodes)
	if err != nil {
		return err
	}
	return openapi.ValidateDocument(data)
}
