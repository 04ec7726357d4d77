// Package palette holds the element color table used to theme
// chemical-structure drawings: one light/dark color pair per element
// symbol, optional symbol aliases and the shared bond color.
package palette

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"

	errUtils "github.com/benoitkugler/chemsvg/errors"
)

// Theme selects one side of a Pair.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark", case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", errors.Wrapf(errUtils.ErrUnknownTheme, "%q", s)
}

// Pair is a color declared once for each display theme.
type Pair struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// For returns the color used under theme t.
func (p Pair) For(t Theme) string {
	if t == Dark {
		return p.Dark
	}
	return p.Light
}

// Element binds an element symbol (or a category name such as "Metal")
// to its colors.
type Element struct {
	Symbol string `yaml:"symbol"`
	Light  string `yaml:"light"`
	Dark   string `yaml:"dark"`
}

// Pair returns the element colors.
func (e Element) Pair() Pair { return Pair{Light: e.Light, Dark: e.Dark} }

// BondsVar is the variable name shared by every bond and polymer label.
const BondsVar = "bonds"

var symbolRe = regexp.MustCompile(`^(?:[A-Z][a-z]?|Metal)$`)

// Palette is an immutable color table. Use New or a preset to build one.
type Palette struct {
	name     string
	elements []Element
	index    map[string]int
	aliases  map[string]string
	bonds    Pair
}

// New validates its input and returns a palette owning copies of it.
// Element order is kept and drives the stylesheet declaration order.
func New(name string, elements []Element, aliases map[string]string, bonds Pair) (*Palette, error) {
	p := &Palette{
		name:     name,
		elements: make([]Element, 0, len(elements)),
		index:    make(map[string]int, len(elements)),
		aliases:  make(map[string]string, len(aliases)),
		bonds:    bonds,
	}
	if bonds.Light == "" || bonds.Dark == "" {
		return nil, errors.Wrap(errUtils.ErrInvalidPalette, "bond colors must be set")
	}
	for _, e := range elements {
		e.Symbol = strings.TrimSpace(e.Symbol)
		if !symbolRe.MatchString(e.Symbol) {
			return nil, errors.Wrapf(errUtils.ErrInvalidPalette, "bad element symbol %q", e.Symbol)
		}
		if _, dup := p.index[e.Symbol]; dup {
			return nil, errors.Wrapf(errUtils.ErrInvalidPalette, "duplicate element %q", e.Symbol)
		}
		if e.Light == "" || e.Dark == "" {
			return nil, errors.Wrapf(errUtils.ErrInvalidPalette, "element %q is missing a color", e.Symbol)
		}
		if strings.ToLower(e.Symbol) == BondsVar {
			return nil, errors.Wrapf(errUtils.ErrInvalidPalette, "element %q clashes with the bonds variable", e.Symbol)
		}
		p.index[e.Symbol] = len(p.elements)
		p.elements = append(p.elements, e)
	}
	for from, to := range aliases {
		if _, ok := p.index[to]; !ok {
			return nil, errors.Wrapf(errUtils.ErrInvalidPalette, "alias %s -> %s: unknown target", from, to)
		}
		if _, ok := p.index[from]; ok {
			return nil, errors.Wrapf(errUtils.ErrInvalidPalette, "alias %s shadows an element", from)
		}
		if !symbolRe.MatchString(from) {
			return nil, errors.Wrapf(errUtils.ErrInvalidPalette, "bad alias symbol %q", from)
		}
		p.aliases[from] = to
	}
	return p, nil
}

// Name is the preset or file name the palette was built from.
func (p *Palette) Name() string { return p.name }

// Bonds returns the bond color pair.
func (p *Palette) Bonds() Pair { return p.bonds }

// Elements returns a copy of the table, in declaration order.
func (p *Palette) Elements() []Element {
	return append([]Element(nil), p.elements...)
}

// Aliases returns a copy of the alias map.
func (p *Palette) Aliases() map[string]string {
	out := make(map[string]string, len(p.aliases))
	for k, v := range p.aliases {
		out[k] = v
	}
	return out
}

// Lookup resolves symbol, following at most one alias, and returns the
// name of the CSS variable to reference. Matching is case-sensitive.
func (p *Palette) Lookup(symbol string) (varName string, ok bool) {
	if to, isAlias := p.aliases[symbol]; isAlias {
		symbol = to
	}
	if _, ok = p.index[symbol]; !ok {
		return "", false
	}
	return VarName(symbol), true
}

// Color returns the literal color behind a variable name under theme t.
func (p *Palette) Color(varName string, t Theme) (string, bool) {
	if varName == BondsVar {
		return p.bonds.For(t), true
	}
	for _, e := range p.elements {
		if VarName(e.Symbol) == varName {
			return e.Pair().For(t), true
		}
	}
	return "", false
}

// VarName is the CSS custom property name (without the leading dashes)
// declared for symbol.
func VarName(symbol string) string { return strings.ToLower(symbol) }

// Ref returns the fill/stroke value referencing a variable.
func Ref(varName string) string { return "var(--" + varName + ")" }
