// Package formats decodes level documents from the supported file formats.
// Every format decodes into the same Document; compiling it into a playable
// map is the levels package's job.
package formats

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Layer types.
const (
	LayerTiles   = "tiles"
	LayerObjects = "objects"
)

// Document is the raw, format-independent shape of a level file.
type Document struct {
	ID         int         `yaml:"id" toml:"id"`
	Name       string      `yaml:"name" toml:"name"`
	Tileset    string      `yaml:"tileset" toml:"tileset"`
	TileWidth  int         `yaml:"tile_width" toml:"tile_width"`
	TileHeight int         `yaml:"tile_height" toml:"tile_height"`
	Background string      `yaml:"background" toml:"background"`
	Layers     []Layer     `yaml:"layers" toml:"layers"`
	Puzzle     []PuzzleDoc `yaml:"puzzle" toml:"puzzle"`
}

// Layer is either a tile layer (Rows + Legend) or an object layer (Objects).
type Layer struct {
	Name    string               `yaml:"name" toml:"name"`
	Type    string               `yaml:"type" toml:"type"`
	Rows    []string             `yaml:"rows" toml:"rows"`
	Legend  map[string]TileProps `yaml:"legend" toml:"legend"`
	Objects []Object             `yaml:"objects" toml:"objects"`
}

// TileProps are the per-glyph tile annotations.
type TileProps struct {
	Collides    bool   `yaml:"collides" toml:"collides"`
	NoCollideUp bool   `yaml:"no-collide-down" toml:"no-collide-down"`
	DeathZone   bool   `yaml:"death-zone" toml:"death-zone"`
	Brick       bool   `yaml:"brick" toml:"brick"`
	Question    bool   `yaml:"question" toml:"question"`
	UsedFrame   int    `yaml:"usedFrame" toml:"usedFrame"`
	Reward      string `yaml:"reward" toml:"reward"`
	RewardValue int    `yaml:"rewardValue" toml:"rewardValue"`
	Git         string `yaml:"git" toml:"git"`
	Hint        string `yaml:"hint" toml:"hint"`
}

// Object is a named rectangle on an object layer.
type Object struct {
	Name       string         `yaml:"name" toml:"name"`
	Type       string         `yaml:"type" toml:"type"`
	X          float64        `yaml:"x" toml:"x"`
	Y          float64        `yaml:"y" toml:"y"`
	Width      float64        `yaml:"width" toml:"width"`
	Height     float64        `yaml:"height" toml:"height"`
	Properties map[string]any `yaml:"properties" toml:"properties"`
}

// Float returns a numeric property or def when absent or not a number.
func (o Object) Float(key string, def float64) float64 {
	switch v := o.Properties[key].(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return def
	}
}

// Bool returns a boolean property, false when absent.
func (o Object) Bool(key string) bool {
	switch v := o.Properties[key].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	default:
		return false
	}
}

// PuzzleDoc is one step of a level's terminal script.
type PuzzleDoc struct {
	Command   string `yaml:"command" toml:"command"`
	Objective string `yaml:"objective" toml:"objective"`
	Explain   string `yaml:"explain" toml:"explain"`
}

// Decoder turns raw file bytes into a Document.
type Decoder interface {
	Decode(data []byte) (*Document, error)
}

// ForPath picks a decoder from the file extension.
func ForPath(path string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML{}, nil
	case ".toml":
		return TOML{}, nil
	default:
		return nil, fmt.Errorf("formats: unsupported level file %s", path)
	}
}

// Supported reports whether path has a level file extension.
func Supported(path string) bool {
	_, err := ForPath(path)
	return err == nil
}
