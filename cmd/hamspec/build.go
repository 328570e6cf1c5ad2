package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/qham/model"
	"github.com/katalvlaran/qham/sparse"
)

func (a *app) buildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build every run and report dimension, nnz and Hermiticity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runs, err := a.loadRuns()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN\tDIM\tNNZ\tHERMITIAN")
			for i, p := range runs {
				b, err := model.Build(p, model.WithLogger(a.log))
				if err != nil {
					return fmt.Errorf("%s: %w", runName(i, p), err)
				}
				h, err := b.Build()
				if err != nil {
					return fmt.Errorf("%s: %w", runName(i, p), err)
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%t\n", runName(i, p), h.Rows(), h.NNZ(), sparse.IsHermitian(h, 1e-12))
			}

			return tw.Flush()
		},
	}
}
