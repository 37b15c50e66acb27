package serverless

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a serverless.yml (or .json) file from disk.
func Load(path string) (*Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	svc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return svc, nil
}

// Parse decodes a serverless service definition.
func Parse(data []byte) (*Service, error) {
	var svc Service
	if err := yaml.Unmarshal(data, &svc); err != nil {
		return nil, err
	}
	return &svc, nil
}
