package cli

import (
	"errors"
	"path/filepath"

	"github.com/okonomi/serverless-typespec-generator/pkg/config"
	"github.com/okonomi/serverless-typespec-generator/pkg/generator"
)

type FallbackParams struct {
	Spec             string
	Type             string
	OutFile          string
	ArrayMode        string
	IncludeFunctions []string
	ExcludeFunctions []string
}

type RunGenerateParams struct {
	ConfigPath string
	Check      bool
	Fallback   FallbackParams
}

func RunGenerate(p RunGenerateParams) error {
	if p.ConfigPath == "" && (p.Fallback.Spec == "" || p.Fallback.OutFile == "") {
		return errors.New("either --config or both --input and --out must be provided")
	}
	return generator.NewService().Generate(generator.GenerateOptions{
		ConfigPath: p.ConfigPath,
		Check:      p.Check,
		Fallback: generator.FallbackOptions{
			Spec:             absPath(p.Fallback.Spec),
			Type:             p.Fallback.Type,
			OutFile:          absPath(p.Fallback.OutFile),
			ArrayMode:        p.Fallback.ArrayMode,
			IncludeFunctions: p.Fallback.IncludeFunctions,
			ExcludeFunctions: p.Fallback.ExcludeFunctions,
		},
	})
}

// RunValidate validates the serverless file named by the config, or input
// when no config is given.
func RunValidate(configPath, input string) error {
	if configPath == "" {
		if input == "" {
			return errors.New("either --config or --input must be provided")
		}
		return generator.ValidateSpec(input, nil)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	return generator.ValidateSpec(cfg.Spec, cfg)
}

func absPath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
