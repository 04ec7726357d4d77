// Implements a PDF backend for theme previews,
// by wrapping github.com/benoitkugler/pdf.
//
// Each rendered theme becomes one page of the document, sized to the
// raster image with one pixel per PDF point.
package svgpdf

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"
	"github.com/cockroachdb/errors"

	errUtils "github.com/benoitkugler/chemsvg/errors"
)

// NewPage returns a page showing img over its whole media box.
func NewPage(img image.Image) (*model.PageObject, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "encode page image"), errUtils.ErrRender)
	}
	xobj, _, err := contentstream.ParseImage(&buf, "image/png")
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "embed page image"), errUtils.ErrRender)
	}
	w, h := float64(xobj.Width), float64(xobj.Height)

	app := contentstream.NewAppearance(w, h)
	app.AddXObjectDims(xobj, 0, 0, w, h)

	page := new(model.PageObject)
	app.ApplyToPageObject(page, true)
	return page, nil
}

// WritePreview writes a PDF with one page per image, in order.
func WritePreview(w io.Writer, pages ...image.Image) error {
	if len(pages) == 0 {
		return errors.Wrap(errUtils.ErrRender, "no page to write")
	}
	var doc model.Document
	for _, img := range pages {
		page, err := NewPage(img)
		if err != nil {
			return err
		}
		doc.Catalog.Pages.Kids = append(doc.Catalog.Pages.Kids, page)
	}
	if err := doc.Write(w, nil); err != nil {
		return errors.Mark(errors.Wrap(err, "write pdf"), errUtils.ErrRender)
	}
	return nil
}

// SavePreview writes the PDF preview to filePath.
func SavePreview(filePath string, pages ...image.Image) error {
	var b bytes.Buffer
	if err := WritePreview(&b, pages...); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, b.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", filePath)
	}
	return nil
}
