package svgtheme

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/benoitkugler/chemsvg/palette"
	"github.com/benoitkugler/chemsvg/svgdoc"
)

// DarkMedia is the media query guarding the dark declarations.
const DarkMedia = "@media (prefers-color-scheme: dark)"

// Stylesheet renders the CSS declaring one variable per element of p,
// plus the bonds variable, once with the light colors under :root and
// once with the dark colors under the dark color-scheme media query.
// Aliases reuse their target variable and are not declared.
func Stylesheet(p *palette.Palette) string {
	var b strings.Builder
	declare := func(t palette.Theme) {
		for _, e := range p.Elements() {
			b.WriteString("  --" + palette.VarName(e.Symbol) + ": " + e.Pair().For(t) + ";\n")
		}
		b.WriteString("  --" + palette.BondsVar + ": " + p.Bonds().For(t) + ";\n")
	}
	b.WriteString(":root {\n")
	declare(palette.Light)
	b.WriteString("}\n")
	b.WriteString(DarkMedia + " {\n")
	b.WriteString(":root {\n")
	declare(palette.Dark)
	b.WriteString("}}")
	return b.String()
}

// replaceStylesheet drops every <style> child of root and inserts a
// fresh one as its first child. It returns the number of removed nodes.
func replaceStylesheet(root *etree.Element, css string) int {
	old := svgdoc.Children(root, "style")
	for _, s := range old {
		root.RemoveChild(s)
	}
	style := etree.NewElement("style")
	style.SetText(css)
	root.InsertChildAt(0, style)
	return len(old)
}
