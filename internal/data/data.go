// Package data loads template bindings from YAML or JSON files.
package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tmader/docweave/pkg/docweave"
)

// LoadFile reads template data from a YAML or JSON file, chosen by
// extension (.yaml, .yml, .json).
func LoadFile(path string) (docweave.TemplateData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(content)
	case ".json":
		return parseJSON(content)
	default:
		return nil, fmt.Errorf("unsupported data format %q (want .yaml, .yml or .json)", filepath.Ext(path))
	}
}

func parseYAML(content []byte) (docweave.TemplateData, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML data: %w", err)
	}
	return docweave.TemplateData(raw), nil
}

func parseJSON(content []byte) (docweave.TemplateData, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON data: %w", err)
	}
	return docweave.TemplateData(raw), nil
}
