// Rewrites chemical-structure SVG documents so that element labels
// and bonds reference theme-aware CSS variables instead of literal
// colors. The document is modified in place; see Recolorer.Apply.
package svgtheme

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"github.com/cockroachdb/errors"

	errUtils "github.com/benoitkugler/chemsvg/errors"
	"github.com/benoitkugler/chemsvg/palette"
	"github.com/benoitkugler/chemsvg/svgdoc"
)

// MatchMode selects how a label text is turned into an element symbol.
type MatchMode uint8

const (
	// MatchPrefix colors the leading symbol of a label ("CH3" is carbon)
	// and treats a lone "n" as a polymer repeat count.
	MatchPrefix MatchMode = iota
	// MatchExact only colors labels whose whole text is a known symbol.
	MatchExact
)

func (m MatchMode) String() string {
	if m == MatchExact {
		return "exact"
	}
	return "prefix"
}

// ParseMatchMode accepts "prefix" or "exact".
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prefix", "":
		return MatchPrefix, nil
	case "exact":
		return MatchExact, nil
	}
	return 0, errors.Wrapf(errUtils.ErrUnknownMatchMode, "%q", s)
}

var symbolPrefix = regexp.MustCompile(`^[A-Z][a-z]?`)

// Stats counts the rewrites done by one Apply.
type Stats struct {
	Labels        int // element labels colored
	Subscripts    int // digit labels following an element label
	Polymers      int // "n" labels colored as bonds
	Paths         int // path elements with at least one rewritten paint
	StylesRemoved int // stylesheets found from a previous run
}

// Recolorer applies a palette to documents. It holds no per-document
// state and may be shared between goroutines.
type Recolorer struct {
	palette *palette.Palette
	mode    MatchMode
	css     string
}

// New returns a Recolorer for p.
func New(p *palette.Palette, mode MatchMode) *Recolorer {
	return &Recolorer{palette: p, mode: mode, css: Stylesheet(p)}
}

// Palette returns the color table in use.
func (r *Recolorer) Palette() *palette.Palette { return r.palette }

// Mode returns the label matching mode.
func (r *Recolorer) Mode() MatchMode { return r.mode }

// Apply injects the theme stylesheet at the top of the document root and
// rewrites the fill of element labels and the fill and stroke of paths
// to reference its variables. Running it twice gives the same document.
func (r *Recolorer) Apply(doc *etree.Document) (Stats, error) {
	var st Stats
	if doc == nil || doc.Root() == nil {
		return st, errUtils.ErrNoRoot
	}
	root := doc.Root()
	st.StylesRemoved = replaceStylesheet(root, r.css)

	bonds := palette.Ref(palette.BondsVar)
	svgdoc.Walk(root, func(e *etree.Element) {
		switch {
		case svgdoc.Is(e, "text"):
			r.colorLabel(e, &st)
		case svgdoc.Is(e, "path"):
			changed := false
			for _, key := range [...]string{"fill", "stroke"} {
				if a := e.SelectAttr(key); a != nil && a.Value != "none" {
					a.Value = bonds
					changed = true
				}
			}
			if changed {
				st.Paths++
			}
		}
	})
	return st, nil
}

func (r *Recolorer) colorLabel(e *etree.Element, st *Stats) {
	text := strings.TrimSpace(e.Text())
	if text == "" {
		return
	}
	if r.mode == MatchPrefix && strings.EqualFold(text, "n") {
		e.CreateAttr("fill", palette.Ref(palette.BondsVar))
		st.Polymers++
		return
	}
	varName, ok := r.Classify(text)
	if !ok {
		return
	}
	ref := palette.Ref(varName)
	e.CreateAttr("fill", ref)
	st.Labels++

	if next := svgdoc.NextSibling(e); svgdoc.Is(next, "text") && isDigits(strings.TrimSpace(next.Text())) {
		next.CreateAttr("fill", ref)
		st.Subscripts++
	}
}

// Classify returns the variable an element label should reference.
// text must already be trimmed. The polymer "n" is not handled here.
func (r *Recolorer) Classify(text string) (varName string, ok bool) {
	symbol := text
	if r.mode == MatchPrefix {
		symbol = symbolPrefix.FindString(text)
		if symbol == "" {
			return "", false
		}
	}
	return r.palette.Lookup(symbol)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
