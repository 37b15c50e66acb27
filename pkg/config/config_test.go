package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okonomi/serverless-typespec-generator/pkg/serverless"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tspgen.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
spec: serverless.yml
title: Users API
arrayResponseMode: alias
includeFunctions: ["^user"]
outputs:
  - type: typespec
    outFile: tsp/main.tsp
    postCommand: ["tsp", "format", "main.tsp"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if !filepath.IsAbs(cfg.Spec) {
		t.Errorf("Spec = %q, want absolute path", cfg.Spec)
	}
	if cfg.Title != "Users API" || cfg.ArrayResponseMode != ArrayModeAlias {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Outputs) != 1 || !filepath.IsAbs(cfg.Outputs[0].OutFile) {
		t.Errorf("outputs = %+v", cfg.Outputs)
	}
	if got := cfg.Outputs[0].GetPostCommand(); len(got) != 3 || got[0] != "tsp" {
		t.Errorf("post command = %v", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing spec", `title: x`, "config.spec is required"},
		{"bad mode", "spec: s.yml\narrayResponseMode: nested", "invalid arrayResponseMode"},
		{"output without file", "spec: s.yml\noutputs: [{type: typespec}]", "missing required fields"},
		{"unknown output", "spec: s.yml\noutputs: [{type: graphql, outFile: x}]", "unsupported type"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, test.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error = %q, want to contain %q", err.Error(), test.want)
			}
		})
	}
}

func TestApplySettingsAndDefaults(t *testing.T) {
	cfg := &Config{Title: "Explicit"}
	cfg.ApplySettings(&serverless.Settings{Title: "From custom", Namespace: "Custom", Version: "2.0.0"})
	cfg.ApplyDefaults()

	if cfg.Title != "Explicit" {
		t.Errorf("Title = %q, explicit config should win", cfg.Title)
	}
	if cfg.Namespace != "Custom" || cfg.Version != "2.0.0" {
		t.Errorf("custom settings not applied: %+v", cfg)
	}
	if cfg.OpenAPIVersion != DefaultOpenAPIVersion || cfg.ArrayResponseMode != ArrayModeInline {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Description != "" {
		t.Errorf("Description = %q, want empty", cfg.Description)
	}
}

func TestApplyDefaults_Empty(t *testing.T) {
	cfg := &Config{}
	cfg.ApplySettings(nil)
	cfg.ApplyDefaults()
	if cfg.Title != "Generated API" || cfg.Namespace != "GeneratedApi" || cfg.Version != "1.0.0" || cfg.OpenAPIVersion != "3.1.0" {
		t.Errorf("cfg = %+v", cfg)
	}
}
