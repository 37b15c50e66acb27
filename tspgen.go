// Package tspgen compiles the HTTP surface of a Serverless Framework service
// definition into a TypeSpec document.
//
// Quick Start:
//
//	import tspgen "github.com/okonomi/serverless-typespec-generator"
//
//	// Write main.tsp next to serverless.yml
//	err := tspgen.GenerateTypeSpec("./serverless.yml", "./tsp/main.tsp")
//
// For more advanced usage, see the generator package.
package tspgen

import (
	"github.com/okonomi/serverless-typespec-generator/pkg/config"
	"github.com/okonomi/serverless-typespec-generator/pkg/generator"
	"github.com/okonomi/serverless-typespec-generator/pkg/generator/typespec"
	"github.com/okonomi/serverless-typespec-generator/pkg/serverless"
)

// Generate renders svc as TypeSpec text without touching the filesystem.
// cfg may be nil; unset fields fall back to custom.typespec and then to the
// defaults.
//
// Example:
//
//	svc, _ := serverless.Load("./serverless.yml")
//	text, err := tspgen.Generate(svc, &config.Config{Title: "Users API"})
func Generate(svc *serverless.Service, cfg *config.Config) (string, error) {
	resolved, nodes, err := generator.NewService().Build(cfg, svc)
	if err != nil {
		return "", err
	}
	out, err := typespec.NewEmitter().Emit(resolved, nodes)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// GenerateTypeSpec writes the TypeSpec document for the serverless file at
// spec to outFile using default settings.
func GenerateTypeSpec(spec, outFile string) error {
	return generator.GenerateTypeSpec(spec, outFile)
}

// GenerateFromConfig generates every output listed in a YAML configuration file.
//
// Example:
//
//	err := tspgen.GenerateFromConfig("./tspgen.yaml")
func GenerateFromConfig(configPath string) error {
	return generator.GenerateFromConfig(configPath)
}

// Validate builds the serverless file at specPath and validates the OpenAPI
// rendering of the result, which catches dangling references and path
// parameter mismatches.
//
// Example:
//
//	if err := tspgen.Validate("./serverless.yml"); err != nil {
//		log.Fatalf("invalid API definition: %v", err)
//	}
func Validate(specPath string) error {
	return generator.ValidateSpec(specPath, nil)
}
