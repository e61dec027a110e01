package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML decodes level documents written in YAML.
type YAML struct{}

// Decode implements Decoder.
func (YAML) Decode(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("formats: parse yaml: %w", err)
	}
	return &doc, nil
}
