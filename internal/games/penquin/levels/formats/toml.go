package formats

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// TOML decodes level documents written in TOML.
type TOML struct{}

// Decode implements Decoder.
func (TOML) Decode(data []byte) (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("formats: parse toml: %w", err)
	}
	return &doc, nil
}
