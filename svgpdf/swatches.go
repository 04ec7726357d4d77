package svgpdf

import (
	"image/color"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/jung-kurt/gofpdf"
	"github.com/srwiley/oksvg"

	errUtils "github.com/benoitkugler/chemsvg/errors"
	"github.com/benoitkugler/chemsvg/palette"
)

// swatch sheet layout, in millimeters
const (
	margin    = 15.
	rowHeight = 9.
	colSymbol = 25.
	colVar    = 45.
	colSwatch = 50.
)

// WritePalette writes a printable reference sheet of p: one row per
// element and for the bonds, with the light and dark colors side by side.
func WritePalette(w io.Writer, p *palette.Palette) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("chemsvg palette "+p.Name(), false)
	pdf.SetCreator("chemsvg", false)
	pdf.SetMargins(margin, margin, margin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 12, "Palette "+p.Name(), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	for _, h := range [...]struct {
		w    float64
		text string
	}{{colSymbol, "Symbol"}, {colVar, "Variable"}, {colSwatch, "Light"}, {colSwatch, "Dark"}} {
		pdf.CellFormat(h.w, rowHeight, h.text, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(rowHeight)

	pdf.SetFont("Helvetica", "", 10)
	for _, e := range p.Elements() {
		if err := swatchRow(pdf, e.Symbol, palette.VarName(e.Symbol), e.Pair()); err != nil {
			return err
		}
	}
	if err := swatchRow(pdf, "bonds", palette.BondsVar, p.Bonds()); err != nil {
		return err
	}

	if err := pdf.Output(w); err != nil {
		return errors.Mark(errors.Wrap(err, "write palette sheet"), errUtils.ErrRender)
	}
	return nil
}

func swatchRow(pdf *gofpdf.Fpdf, label, varName string, pair palette.Pair) error {
	pdf.CellFormat(colSymbol, rowHeight, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(colVar, rowHeight, "--"+varName, "", 0, "L", false, 0, "")
	for _, value := range [...]string{pair.Light, pair.Dark} {
		c, err := oksvg.ParseSVGColor(value)
		if err != nil || c == nil {
			return errors.Wrapf(errUtils.ErrInvalidPalette, "%s: unsupported color %q", label, value)
		}
		r, g, b := rgb(c)
		pdf.SetFillColor(r, g, b)
		x, y := pdf.GetXY()
		pdf.Rect(x, y+1.5, 10, rowHeight-3, "F")
		pdf.SetX(x + 12)
		pdf.CellFormat(colSwatch-12, rowHeight, value, "", 0, "L", false, 0, "")
	}
	pdf.Ln(rowHeight)
	return nil
}

func rgb(c color.Color) (r, g, b int) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(n.R), int(n.G), int(n.B)
}
