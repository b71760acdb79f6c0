package level

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes the scene as indented JSON, creating parent directories as
// needed.
func Save(s *Scene, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("level: mkdir for %s: %w", path, err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("level: marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("level: write %s: %w", path, err)
	}
	return nil
}

// Load reads a scene from disk and backfills any canonical layer the file
// omits so tools can assume all four layers exist.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", path, err)
	}
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("level: unmarshal %s: %w", path, err)
	}
	if s.Layers == nil {
		s.Layers = make(map[string][][]int, len(LayerNames))
	}
	for _, name := range LayerNames {
		if s.Layers[name] == nil {
			s.Layers[name] = newGrid(s.Width, s.Height)
		}
	}
	return &s, nil
}
