package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	errUtils "github.com/benoitkugler/chemsvg/errors"
	"github.com/benoitkugler/chemsvg/palette"
	"github.com/benoitkugler/chemsvg/svgpdf"
	"github.com/benoitkugler/chemsvg/svgtheme"
)

func newPaletteCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Show the active palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.recolorer.Palette()
			w := cmd.OutOrStdout()
			switch format {
			case "table":
				_, err := fmt.Fprintln(w, paletteTable(p))
				return err
			case "yaml":
				return palette.Encode(w, p)
			case "css":
				_, err := io.WriteString(w, svgtheme.Stylesheet(p)+"\n")
				return err
			case "pdf":
				return svgpdf.WritePalette(w, p)
			}
			return errors.Wrapf(errUtils.ErrInvalidConfig, "unknown format %q", format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, yaml, css, pdf")
	return cmd
}

func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    ") + " " + hex
}

func paletteTable(p *palette.Palette) string {
	var rows [][]string
	for _, e := range p.Elements() {
		rows = append(rows, []string{e.Symbol, "--" + palette.VarName(e.Symbol), swatch(e.Light), swatch(e.Dark)})
	}
	from := lo.Keys(p.Aliases())
	sort.Strings(from)
	for _, k := range from {
		v, _ := p.Lookup(k)
		rows = append(rows, []string{k, "--" + v + " (alias)", "", ""})
	}
	bonds := p.Bonds()
	rows = append(rows, []string{"bonds", "--" + palette.BondsVar, swatch(bonds.Light), swatch(bonds.Dark)})

	t := table.New().
		Headers("SYMBOL", "VARIABLE", "LIGHT", "DARK").
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(false).
		BorderColumn(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 2, 0, 0)
			}
			return lipgloss.NewStyle().Padding(0, 2, 0, 0)
		})
	return fmt.Sprintf("palette %s\n%s", p.Name(), t.String())
}
