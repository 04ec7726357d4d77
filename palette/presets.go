package palette

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	errUtils "github.com/benoitkugler/chemsvg/errors"
)

// DefaultPreset is used when no palette is configured.
const DefaultPreset = "default"

// CPK colors, tuned so that every dark value stays readable on a dark
// background.
var cpkElements = []Element{
	{Symbol: "C", Light: "#000000", Dark: "#e0e0e0"},
	{Symbol: "N", Light: "#2144d9", Dark: "#8fa3ff"},
	{Symbol: "O", Light: "#ff0d0d", Dark: "#ff6666"},
	{Symbol: "S", Light: "#e1e100", Dark: "#ffff00"},
	{Symbol: "P", Light: "#ff8000", Dark: "#ffb366"},
	{Symbol: "F", Light: "#90e000", Dark: "#c3ff00"},
	{Symbol: "Cl", Light: "#00e000", Dark: "#66ff66"},
	{Symbol: "Br", Light: "#a52a2a", Dark: "#d47878"},
	{Symbol: "I", Light: "#940094", Dark: "#d478d4"},
	{Symbol: "Metal", Light: "#eb9d9d", Dark: "#d47878"},
}

var cpkBonds = Pair{Light: "#000000", Dark: "#ffffff"}

var presets = map[string]func() (*Palette, error){
	// classic is the table of the first release: no hydrogen entry.
	"classic": func() (*Palette, error) {
		return New("classic", cpkElements, nil, cpkBonds)
	},
	// default draws hydrogen with the carbon color.
	DefaultPreset: func() (*Palette, error) {
		return New(DefaultPreset, cpkElements, map[string]string{"H": "C"}, cpkBonds)
	},
}

// Preset builds the named built-in palette.
func Preset(name string) (*Palette, error) {
	build, ok := presets[name]
	if !ok {
		return nil, errors.Wrapf(errUtils.ErrUnknownPreset, "%q (available: %v)", name, PresetNames())
	}
	return build()
}

// Default returns the canonical palette. It panics if the built-in table
// is invalid, which is a programming error.
func Default() *Palette {
	p, err := Preset(DefaultPreset)
	if err != nil {
		panic(err)
	}
	return p
}

// PresetNames lists the built-in palettes, sorted.
func PresetNames() []string {
	names := lo.Keys(presets)
	slices.Sort(names)
	return names
}
