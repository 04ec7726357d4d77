package main

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	errUtils "github.com/benoitkugler/chemsvg/errors"
	"github.com/benoitkugler/chemsvg/palette"
	"github.com/benoitkugler/chemsvg/svgdoc"
	"github.com/benoitkugler/chemsvg/svgpdf"
	"github.com/benoitkugler/chemsvg/svgraster"
)

func newPreviewCmd(a *app) *cobra.Command {
	var (
		theme, output, format string
		opts                  svgraster.Options
	)
	cmd := &cobra.Command{
		Use:   "preview file.svg",
		Short: "Render the recolored drawing to PNG or PDF under a color scheme",
		Long:  "preview recolors the file in memory and rasterizes it as a browser would show it under the light or dark color scheme. Text glyphs are not rendered.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "png" && format != "pdf" {
				return errors.Wrapf(errUtils.ErrInvalidConfig, "unknown preview format %q", format)
			}
			var themes []palette.Theme
			if strings.EqualFold(theme, "both") {
				themes = []palette.Theme{palette.Light, palette.Dark}
			} else {
				t, err := palette.ParseTheme(theme)
				if err != nil {
					return err
				}
				themes = []palette.Theme{t}
			}

			doc, err := svgdoc.ReadFile(args[0])
			if err != nil {
				return err
			}
			if _, err := a.recolorer.Apply(doc); err != nil {
				return err
			}
			pages := make([]image.Image, 0, len(themes))
			for _, t := range themes {
				img, err := svgraster.RenderTheme(doc, a.recolorer.Palette(), t, opts)
				if err != nil {
					return err
				}
				if format == "pdf" {
					pages = append(pages, img)
					continue
				}
				name := previewName(args[0], output, t, len(themes) > 1)
				if err := svgraster.SavePNG(name, img); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			if format == "pdf" {
				// one page per theme
				name := output
				if name == "" {
					name = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".pdf"
				}
				if err := svgpdf.SavePreview(name, pages...); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "both", "light, dark or both")
	cmd.Flags().StringVarP(&format, "format", "f", "png", "png (one file per theme) or pdf (one page per theme)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>-<theme>.png or <name>.pdf next to the input)")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "output width (default: view box width)")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "output height (default: view box height)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 1, "resampling factor")
	return cmd
}

// previewName derives the PNG path for theme t. With several themes the
// theme is always part of the name so outputs do not overwrite each other.
func previewName(input, output string, t palette.Theme, several bool) string {
	if output != "" && !several {
		return output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if output != "" {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}
	return fmt.Sprintf("%s-%s.png", base, t)
}
