package main

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/benoitkugler/chemsvg/batch"
	"github.com/benoitkugler/chemsvg/config"
	"github.com/benoitkugler/chemsvg/palette"
	"github.com/benoitkugler/chemsvg/svgtheme"
)

var Version = "0.3.0"

// app is the state shared by the subcommands, set up before each run.
type app struct {
	cfg       config.Config
	log       *log.Logger
	recolorer *svgtheme.Recolorer
}

func (a *app) runner() *batch.Runner {
	return &batch.Runner{
		Recolorer:       a.recolorer,
		Jobs:            a.cfg.Jobs,
		ContinueOnError: a.cfg.ContinueOnError,
		Logger:          a.log,
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "chemsvg",
		Version:       Version,
		Short:         "Theme-aware recoloring of chemical structure SVGs",
		Long:          "chemsvg rewrites element labels and bonds of chemistry SVG drawings to use CSS variables declared for both light and dark color schemes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := config.New()
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = cfg.Logger(cmd.ErrOrStderr())
			if a.recolorer, err = cfg.Recolorer(); err != nil {
				return err
			}
			a.log.Debug("configured", "palette", a.recolorer.Palette().Name(), "match", a.recolorer.Mode())
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default ./chemsvg.yaml when present)")
	pf.String(config.KeyPalette, palette.DefaultPreset, "palette preset ("+strings.Join(palette.PresetNames(), ", ")+") or YAML file")
	pf.String(config.KeyMatch, svgtheme.MatchPrefix.String(), "label matching: prefix or exact")
	pf.Int(config.KeyJobs, 1, "number of files converted concurrently")
	pf.Bool(config.KeyContinueOnError, false, "keep converting the other files when one fails")
	pf.String(config.KeyLogLevel, "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newConvertCmd(a),
		newInplaceCmd(a),
		newWatchCmd(a),
		newPreviewCmd(a),
		newPaletteCmd(a),
	)
	return rootCmd
}
