package palette

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	errUtils "github.com/benoitkugler/chemsvg/errors"
)

// File is the YAML representation of a palette.
type File struct {
	Name     string            `yaml:"name,omitempty"`
	Bonds    Pair              `yaml:"bonds"`
	Elements []Element         `yaml:"elements"`
	Aliases  map[string]string `yaml:"aliases,omitempty"`
}

// Decode reads a YAML palette. Unknown keys are rejected.
func Decode(r io.Reader, name string) (*Palette, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Wrap(errUtils.ErrInvalidPalette, "empty palette file")
		}
		return nil, errors.Mark(errors.Wrap(err, "decode palette"), errUtils.ErrInvalidPalette)
	}
	if f.Name != "" {
		name = f.Name
	}
	if len(f.Elements) == 0 {
		return nil, errors.Wrap(errUtils.ErrInvalidPalette, "no elements declared")
	}
	return New(name, f.Elements, f.Aliases, f.Bonds)
}

// LoadFile reads a YAML palette from path.
func LoadFile(path string) (*Palette, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read palette %s", path)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p, err := Decode(bytes.NewReader(b), name)
	if err != nil {
		return nil, errors.Wrapf(err, "palette %s", path)
	}
	return p, nil
}

// Load resolves ref as a YAML file when it names one, and as a preset
// otherwise. An empty ref selects the default preset.
func Load(ref string) (*Palette, error) {
	if ref == "" {
		return Preset(DefaultPreset)
	}
	switch strings.ToLower(filepath.Ext(ref)) {
	case ".yaml", ".yml":
		return LoadFile(ref)
	}
	return Preset(ref)
}

// Encode writes p in the format accepted by Decode.
func Encode(w io.Writer, p *Palette) error {
	f := File{
		Name:     p.Name(),
		Bonds:    p.Bonds(),
		Elements: p.Elements(),
	}
	if aliases := p.Aliases(); len(aliases) > 0 {
		f.Aliases = aliases
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return errors.Wrap(err, "encode palette")
	}
	return enc.Close()
}
