package palette

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/benoitkugler/chemsvg/errors"
)

func TestDefaultLookup(t *testing.T) {
	p := Default()

	tests := []struct {
		symbol string
		want   string
		ok     bool
	}{
		{"C", "c", true},
		{"Cl", "cl", true},
		{"Br", "br", true},
		{"H", "c", true}, // hydrogen is drawn like carbon
		{"cl", "", false},
		{"CL", "", false},
		{"Xe", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := p.Lookup(tt.symbol)
		assert.Equal(t, tt.ok, ok, "symbol %q", tt.symbol)
		assert.Equal(t, tt.want, got, "symbol %q", tt.symbol)
	}
}

func TestClassicHasNoHydrogen(t *testing.T) {
	p, err := Preset("classic")
	require.NoError(t, err)

	_, ok := p.Lookup("H")
	assert.False(t, ok)

	v, ok := p.Lookup("Metal")
	assert.True(t, ok)
	assert.Equal(t, "metal", v)
}

func TestUnknownPreset(t *testing.T) {
	_, err := Preset("neon")
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrUnknownPreset)
	assert.Equal(t, []string{"classic", "default"}, PresetNames())
}

func TestColor(t *testing.T) {
	p := Default()

	c, ok := p.Color("o", Dark)
	require.True(t, ok)
	assert.Equal(t, "#ff6666", c)

	c, ok = p.Color(BondsVar, Light)
	require.True(t, ok)
	assert.Equal(t, "#000000", c)

	_, ok = p.Color("xx", Light)
	assert.False(t, ok)
}

func TestElementsIsACopy(t *testing.T) {
	p := Default()
	els := p.Elements()
	els[0].Light = "#123456"

	c, _ := p.Color("c", Light)
	assert.Equal(t, "#000000", c)
}

func TestNewValidation(t *testing.T) {
	bonds := Pair{Light: "#000", Dark: "#fff"}
	tests := []struct {
		name     string
		elements []Element
		aliases  map[string]string
		bonds    Pair
	}{
		{"lowercase symbol", []Element{{Symbol: "c", Light: "#000", Dark: "#fff"}}, nil, bonds},
		{"three letters", []Element{{Symbol: "Abc", Light: "#000", Dark: "#fff"}}, nil, bonds},
		{"duplicate", []Element{{Symbol: "C", Light: "#000", Dark: "#fff"}, {Symbol: "C", Light: "#000", Dark: "#fff"}}, nil, bonds},
		{"missing dark", []Element{{Symbol: "C", Light: "#000"}}, nil, bonds},
		{"dangling alias", []Element{{Symbol: "C", Light: "#000", Dark: "#fff"}}, map[string]string{"H": "N"}, bonds},
		{"shadowing alias", []Element{{Symbol: "C", Light: "#000", Dark: "#fff"}, {Symbol: "N", Light: "#000", Dark: "#fff"}}, map[string]string{"N": "C"}, bonds},
		{"no bonds", []Element{{Symbol: "C", Light: "#000", Dark: "#fff"}}, nil, Pair{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("t", tt.elements, tt.aliases, tt.bonds)
			assert.ErrorIs(t, err, errUtils.ErrInvalidPalette)
		})
	}
}

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme(" Dark ")
	require.NoError(t, err)
	assert.Equal(t, Dark, th)

	_, err = ParseTheme("sepia")
	assert.ErrorIs(t, err, errUtils.ErrUnknownTheme)
}

func TestDecode(t *testing.T) {
	src := `name: house
bonds: {light: "#111111", dark: "#eeeeee"}
elements:
  - {symbol: C, light: "#000000", dark: "#dddddd"}
  - {symbol: Se, light: "#ffa100", dark: "#ffc04d"}
aliases: {H: C}
`
	p, err := Decode(strings.NewReader(src), "fallback")
	require.NoError(t, err)

	assert.Equal(t, "house", p.Name())
	assert.Equal(t, Pair{Light: "#111111", Dark: "#eeeeee"}, p.Bonds())
	require.Len(t, p.Elements(), 2)
	assert.Equal(t, "Se", p.Elements()[1].Symbol)

	v, ok := p.Lookup("H")
	assert.True(t, ok)
	assert.Equal(t, "c", v)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("colours: []\n"), "x")
	assert.ErrorIs(t, err, errUtils.ErrInvalidPalette)

	_, err = Decode(strings.NewReader(""), "x")
	assert.ErrorIs(t, err, errUtils.ErrInvalidPalette)
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Default()))

	p, err := Decode(&buf, "")
	require.NoError(t, err)
	assert.Equal(t, Default().Elements(), p.Elements())
	assert.Equal(t, map[string]string{"H": "C"}, p.Aliases())
}

func TestLoad(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPreset, p.Name())

	path := filepath.Join(t.TempDir(), "mine.yml")
	require.NoError(t, os.WriteFile(path, []byte(`bonds: {light: "#000", dark: "#fff"}
elements:
  - {symbol: N, light: "#00f", dark: "#99f"}
`), 0o644))

	p, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mine", p.Name())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
