package cli

import (
	"errors"
	"io"

	tspgen "github.com/okonomi/serverless-typespec-generator"
	"github.com/okonomi/serverless-typespec-generator/pkg/config"
	"github.com/okonomi/serverless-typespec-generator/pkg/serverless"
)

type RunPrintParams struct {
	Input     string
	Title     string
	Namespace string
	ArrayMode string
}

// RunPrint writes the TypeSpec document for the input file to w.
func RunPrint(p RunPrintParams, w io.Writer) error {
	if p.Input == "" {
		return errors.New("--input must be provided")
	}
	svc, err := serverless.Load(p.Input)
	if err != nil {
		return err
	}
	cfg := &config.Config{
		Title:             p.Title,
		Namespace:         p.Namespace,
		ArrayResponseMode: p.ArrayMode,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	out, err := tspgen.Generate(svc, cfg)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
