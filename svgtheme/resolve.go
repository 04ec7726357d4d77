package svgtheme

import (
	"regexp"

	"github.com/beevik/etree"

	errUtils "github.com/benoitkugler/chemsvg/errors"
	"github.com/benoitkugler/chemsvg/palette"
	"github.com/benoitkugler/chemsvg/svgdoc"
)

var varRef = regexp.MustCompile(`var\(\s*--([A-Za-z0-9_-]+)\s*(?:,[^)]*)?\)`)

// Resolve returns a copy of doc where every variable reference in fill
// and stroke attributes is replaced by its literal color under theme t,
// and the theme stylesheets are dropped. Renderers without CSS support
// draw the copy as a browser would under that color scheme.
// Unknown variables fall back to the bond color.
func Resolve(doc *etree.Document, p *palette.Palette, t palette.Theme) (*etree.Document, error) {
	if doc == nil || doc.Root() == nil {
		return nil, errUtils.ErrNoRoot
	}
	out := doc.Copy()
	root := out.Root()
	for _, s := range svgdoc.Children(root, "style") {
		root.RemoveChild(s)
	}
	fallback := p.Bonds().For(t)
	svgdoc.Walk(root, func(e *etree.Element) {
		for i := range e.Attr {
			a := &e.Attr[i]
			if a.Key != "fill" && a.Key != "stroke" {
				continue
			}
			a.Value = varRef.ReplaceAllStringFunc(a.Value, func(m string) string {
				name := varRef.FindStringSubmatch(m)[1]
				if c, ok := p.Color(name, t); ok {
					return c
				}
				return fallback
			})
		}
	})
	return out, nil
}
