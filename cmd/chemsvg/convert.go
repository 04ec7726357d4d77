package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benoitkugler/chemsvg/batch"
)

func newConvertCmd(a *app) *cobra.Command {
	var input, output string
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert the SVGs of a directory into another directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := a.runner().Run(cmd.Context(), input, output)
			report(a, sum)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Converted SVGs saved to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input directory")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory, created when missing")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newInplaceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inplace [dir]",
		Short: "Overwrite the SVGs of a directory (default: the current one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			sum, err := a.runner().Run(cmd.Context(), dir, "")
			report(a, sum)
			return err
		},
	}
}

func report(a *app, sum batch.Summary) {
	a.log.Info("done", "converted", len(sum.Converted), "failed", len(sum.Failed), "skipped", len(sum.Skipped))
}
