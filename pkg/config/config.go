// Package config loads named parameter presets.
//
// Presets are TOML files mapping a name to an algorithm, a color scheme,
// and a parameter set. A default set ships embedded in the binary; users
// can add or override presets with a presets.toml in their config
// directory (XDG_CONFIG_HOME/inkplot or ~/.config/inkplot).
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/inkplot/inkplot/pkg/art"
	"github.com/inkplot/inkplot/pkg/errors"
)

//go:embed presets.toml
var defaultPresets []byte

// Preset is a named, ready-to-run configuration.
type Preset struct {
	Name        string     `toml:"-"`
	Algorithm   string     `toml:"algorithm"`
	Scheme      string     `toml:"scheme"`
	Description string     `toml:"description"`
	Params      art.Params `toml:"params"`
}

// Presets holds the merged preset catalog.
type Presets struct {
	byName map[string]Preset
}

type presetsFile struct {
	Presets map[string]Preset `toml:"presets"`
}

// UserDir returns the user config directory, honoring XDG_CONFIG_HOME
// and falling back to ~/.config/inkplot.
func UserDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "inkplot"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "inkplot"), nil
}

// Load returns the embedded presets overlaid with the user's
// presets.toml, if one exists. User presets win on name conflicts.
func Load() (*Presets, error) {
	p := &Presets{byName: make(map[string]Preset)}
	if err := p.merge(defaultPresets); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse embedded presets")
	}

	dir, err := UserDir()
	if err != nil {
		return p, nil
	}
	path := filepath.Join(dir, "presets.toml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	if err := p.merge(data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "parse %s", path)
	}
	return p, nil
}

// Parse loads presets from raw TOML. Used by Load and by tests.
func Parse(data []byte) (*Presets, error) {
	p := &Presets{byName: make(map[string]Preset)}
	if err := p.merge(data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "parse presets")
	}
	return p, nil
}

func (p *Presets) merge(data []byte) error {
	var file presetsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return err
	}
	for name, preset := range file.Presets {
		preset.Name = name
		p.byName[name] = preset
	}
	return nil
}

// Get returns the preset registered under name.
func (p *Presets) Get(name string) (Preset, error) {
	preset, ok := p.byName[name]
	if !ok {
		return Preset{}, errors.New(errors.ErrCodePresetNotFound, "no preset named %q", name)
	}
	return preset, nil
}

// List returns all presets sorted by name.
func (p *Presets) List() []Preset {
	out := make([]Preset, 0, len(p.byName))
	for _, preset := range p.byName {
		out = append(out, preset)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the sorted preset names.
func (p *Presets) Names() []string {
	names := make([]string, 0, len(p.byName))
	for name := range p.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve looks up a preset and overlays the given parameter overrides
// on top of its params. The returned params have defaults applied.
func (p *Presets) Resolve(name string, overrides art.Params) (Preset, error) {
	preset, err := p.Get(name)
	if err != nil {
		return Preset{}, err
	}
	preset.Params = preset.Params.Merge(overrides)
	preset.Params.SetDefaults()
	return preset, nil
}
