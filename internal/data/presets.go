package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is a named board difficulty.
type Preset struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Bombs  int    `yaml:"bombs"`
}

// PresetTable resolves difficulty names to board dimensions.
type PresetTable struct {
	byName map[string]*Preset
}

// DefaultPresets returns the three classic difficulties.
func DefaultPresets() *PresetTable {
	t := &PresetTable{byName: make(map[string]*Preset)}
	for _, p := range []Preset{
		{Name: "beginner", Width: 9, Height: 9, Bombs: 10},
		{Name: "intermediate", Width: 16, Height: 16, Bombs: 40},
		{Name: "expert", Width: 30, Height: 16, Bombs: 99},
	} {
		p := p
		t.byName[p.Name] = &p
	}
	return t
}

// LoadPresetTable loads presets from a YAML file on top of the built-in
// table. File entries override built-ins with the same name.
func LoadPresetTable(path string) (*PresetTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	var file struct {
		Presets []Preset `yaml:"presets"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse presets %s: %w", path, err)
	}

	t := DefaultPresets()
	for i := range file.Presets {
		p := &file.Presets[i]
		if p.Name == "" {
			return nil, fmt.Errorf("presets %s: entry %d has no name", path, i)
		}
		if p.Width <= 0 || p.Height <= 0 {
			return nil, fmt.Errorf("presets %s: %q has non-positive dimensions %dx%d", path, p.Name, p.Width, p.Height)
		}
		if p.Bombs < 0 || p.Bombs > p.Width*p.Height {
			return nil, fmt.Errorf("presets %s: %q wants %d bombs on %d squares", path, p.Name, p.Bombs, p.Width*p.Height)
		}
		t.byName[p.Name] = p
	}
	return t, nil
}

// Get returns a preset by name, or nil.
func (t *PresetTable) Get(name string) *Preset {
	return t.byName[name]
}

// Count returns the number of presets in the table.
func (t *PresetTable) Count() int {
	return len(t.byName)
}
