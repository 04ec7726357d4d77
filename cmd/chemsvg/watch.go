package main

import (
	"github.com/spf13/cobra"

	"github.com/benoitkugler/chemsvg/config"
	"github.com/benoitkugler/chemsvg/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		input, output string
		initial       bool
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Convert SVGs as they are written to a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := &watch.Watcher{
				Runner:   a.runner(),
				Source:   input,
				Output:   output,
				Debounce: a.cfg.Debounce,
				Initial:  initial,
				Logger:   a.log,
			}
			return w.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", ".", "directory to watch")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default: overwrite in place)")
	cmd.Flags().BoolVar(&initial, "initial", false, "convert the existing files first")
	cmd.Flags().Duration(config.KeyDebounce, watch.DefaultDebounce, "quiet period before converting a changed file")
	return cmd
}
