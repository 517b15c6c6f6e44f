// Package styles manages named caption style presets. Presets ship with
// built-in defaults and can be overridden from a YAML file so designers
// can tune caption looks without a rebuild.
package styles

import (
	"fmt"
	"os"
	"sort"

	"github.com/clipforge/clipforge-agent/internal/clip"
	"gopkg.in/yaml.v3"
)

// DefaultPresetName is used when a render request names no preset.
const DefaultPresetName = "classic"

type presetsFile struct {
	Presets map[string]clip.CaptionStyle `yaml:"presets"`
	Default string                       `yaml:"default"`
}

// Registry holds the loaded presets.
type Registry struct {
	presets     map[string]clip.CaptionStyle
	defaultName string
}

// Builtin returns the registry of presets compiled into the agent.
func Builtin() *Registry {
	return &Registry{
		defaultName: DefaultPresetName,
		presets: map[string]clip.CaptionStyle{
			"classic": {
				FontFamily:      "Montserrat",
				TextColor:       "#FFFFFF",
				HighlightColor:  "#FFD700",
				BackgroundColor: "rgba(0,0,0,0.6)",
				Position:        clip.PositionBottom,
				Size:            clip.SizeMedium,
				AnimationStyle:  clip.AnimationKaraoke,
			},
			"minimal": {
				FontFamily:     "Inter",
				TextColor:      "#FFFFFF",
				Position:       clip.PositionCenter,
				Size:           clip.SizeSmall,
				AnimationStyle: clip.AnimationFade,
			},
			"loud": {
				FontFamily:      "Archivo Black",
				TextColor:       "#FFFF00",
				BackgroundColor: "#000000",
				Position:        clip.PositionCenter,
				Size:            clip.SizeLarge,
				AnimationStyle:  clip.AnimationPop,
			},
		},
	}
}

// Load reads presets from a YAML file, merging over the built-ins. An
// empty path returns the built-ins unchanged.
func Load(path string) (*Registry, error) {
	reg := Builtin()
	if path == "" {
		return reg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read style presets: %w", err)
	}

	var file presetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse style presets: %w", err)
	}

	for name, style := range file.Presets {
		if err := style.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		reg.presets[name] = style
	}

	if file.Default != "" {
		if _, ok := reg.presets[file.Default]; !ok {
			return nil, fmt.Errorf("default preset %q is not defined", file.Default)
		}
		reg.defaultName = file.Default
	}

	return reg, nil
}

// Get returns the named preset.
func (r *Registry) Get(name string) (clip.CaptionStyle, bool) {
	s, ok := r.presets[name]
	return s, ok
}

// Default returns the default preset.
func (r *Registry) Default() clip.CaptionStyle {
	return r.presets[r.defaultName]
}

// DefaultName returns the name of the default preset.
func (r *Registry) DefaultName() string {
	return r.defaultName
}

// Names lists the preset names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
