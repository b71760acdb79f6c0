// Package tileset loads the YAML tileset tables that map palette categories
// onto global-id ranges, and watches them for edits so a running editor can
// hot-reload its palette.
package tileset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/leveledit/level"
)

// CategorySpec describes one palette category backed by a tileset image.
type CategorySpec struct {
	Category string `yaml:"category"`
	FirstGID int    `yaml:"first_gid"`
	Count    int    `yaml:"count"`
	Image    string `yaml:"image"`
	TileW    int    `yaml:"tile_w"`
	TileH    int    `yaml:"tile_h"`
}

// Spec is one tileset table file.
type Spec struct {
	Name       string         `yaml:"name"`
	Categories []CategorySpec `yaml:"categories"`
}

// LoadSpec reads and validates a tileset spec file.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tileset: load %s: %w", path, err)
	}
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("tileset: unmarshal %s: %w", path, err)
	}
	seen := make(map[string]bool, len(spec.Categories))
	for _, c := range spec.Categories {
		if c.Category == "" {
			return nil, fmt.Errorf("tileset: %s: category with empty name", path)
		}
		if seen[c.Category] {
			return nil, fmt.Errorf("tileset: %s: duplicate category %q", path, c.Category)
		}
		seen[c.Category] = true
		if c.FirstGID <= 0 {
			return nil, fmt.Errorf("tileset: %s: category %q: first_gid must be positive", path, c.Category)
		}
	}
	return &spec, nil
}

// Apply installs the spec's categories as the scene's tileset table.
func (s *Spec) Apply(scene *level.Scene) {
	refs := make([]level.TilesetRef, 0, len(s.Categories))
	for _, c := range s.Categories {
		refs = append(refs, level.TilesetRef{
			Category: c.Category,
			FirstGID: c.FirstGID,
			Count:    c.Count,
			Image:    c.Image,
			TileW:    c.TileW,
			TileH:    c.TileH,
		})
	}
	scene.Tilesets = refs
}
