package generator

import (
	"log"

	"github.com/okonomi/serverless-typespec-generator/pkg/config"
)

// Options tune one generation run. The zero value is usable.
type Options struct {
	// Logger receives warnings about skipped provider schemas. Defaults to
	// log.Default().
	Logger *log.Logger
	// ArrayResponseMode is config.ArrayModeInline (default) or
	// config.ArrayModeAlias.
	ArrayResponseMode string
	// IncludeFunctions and ExcludeFunctions are regex patterns applied to
	// function identifiers.
	IncludeFunctions []string
	ExcludeFunctions []string
}

// OptionsFromConfig derives pipeline options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ArrayResponseMode: cfg.ArrayResponseMode,
		IncludeFunctions:  cfg.IncludeFunctions,
		ExcludeFunctions:  cfg.ExcludeFunctions,
	}
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

func (o Options) aliasArrays() bool {
	return o.ArrayResponseMode == config.ArrayModeAlias
}
