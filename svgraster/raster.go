// Implements a raster backend to preview themed SVG images,
// by wrapping oksvg and rasterx.
package svgraster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/beevik/etree"
	"github.com/cockroachdb/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"

	errUtils "github.com/benoitkugler/chemsvg/errors"
	"github.com/benoitkugler/chemsvg/palette"
	"github.com/benoitkugler/chemsvg/svgdoc"
	"github.com/benoitkugler/chemsvg/svgtheme"
)

// Options control the size and background of a preview.
type Options struct {
	// Width and Height override the view box size when positive.
	Width, Height int
	// Background is painted before the drawing. Nil means transparent.
	Background color.Color
	// Scale resamples the result; 0 and 1 keep the native size.
	Scale float64
}

// Backgrounds approximating a browser page under each color scheme.
var (
	LightBackground color.Color = color.White
	DarkBackground  color.Color = color.RGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xff}
)

// BackgroundFor returns the page color used to preview theme t.
func BackgroundFor(t palette.Theme) color.Color {
	if t == palette.Dark {
		return DarkBackground
	}
	return LightBackground
}

// RasterSVGIconToImage uses a ScannerGV instance to render the
// icon into an image and returns it. Text elements are not drawn.
func RasterSVGIconToImage(icon io.Reader, opts Options) (*image.RGBA, error) {
	parsedIcon, err := oksvg.ReadIconStream(icon, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parse icon"), errUtils.ErrRender)
	}
	w, h := int(parsedIcon.ViewBox.W), int(parsedIcon.ViewBox.H)
	if opts.Width > 0 {
		w = opts.Width
	}
	if opts.Height > 0 {
		h = opts.Height
	}
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(errUtils.ErrRender, "empty view box (%dx%d)", w, h)
	}
	parsedIcon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if opts.Background != nil {
		xdraw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, xdraw.Src)
	}
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	renderer := rasterx.NewDasher(w, h, scanner)
	parsedIcon.Draw(renderer, 1.0)

	if opts.Scale > 0 && opts.Scale != 1 {
		return scale(img, opts.Scale), nil
	}
	return img, nil
}

// RenderTheme draws doc as a browser would under theme t: variables are
// resolved with p and the page background follows the theme unless
// opts.Background is set.
func RenderTheme(doc *etree.Document, p *palette.Palette, t palette.Theme, opts Options) (*image.RGBA, error) {
	resolved, err := svgtheme.Resolve(doc, p, t)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := svgdoc.WriteStream(&buf, resolved); err != nil {
		return nil, err
	}
	if opts.Background == nil {
		opts.Background = BackgroundFor(t)
	}
	return RasterSVGIconToImage(&buf, opts)
}

func scale(src *image.RGBA, factor float64) *image.RGBA {
	b := src.Bounds()
	w := max(1, int(float64(b.Dx())*factor))
	h := max(1, int(float64(b.Dy())*factor))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// SavePNG encodes m to filePath.
func SavePNG(filePath string, m image.Image) error {
	var b bytes.Buffer
	if err := png.Encode(&b, m); err != nil {
		return errors.Mark(errors.Wrap(err, "encode png"), errUtils.ErrRender)
	}
	if err := os.WriteFile(filePath, b.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", filePath)
	}
	return nil
}
