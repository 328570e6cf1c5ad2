package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/qham/model"
	"github.com/katalvlaran/qham/spectrum"
)

type runFlags struct {
	db             string
	workers        int
	eigenCount     int
	denseThreshold int
	tol            float64
	maxIter        int
	seed           int64
}

func (a *app) runCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build, diagonalize and store every run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runs, err := a.loadRuns()
			if err != nil {
				return err
			}
			store, err := spectrum.Open(spectrum.Config{Path: f.db, SyncWrites: true, Logger: a.log})
			if err != nil {
				return err
			}
			defer store.Close()

			recs, err := a.runAll(cmd.Context(), store, runs, f)
			if err != nil {
				return err
			}
			for i, rec := range recs {
				fmt.Fprintf(a.out, "%s\t%s\t%s\tdim=%d\tE0=%.12g\n",
					runName(i, runs[i]), rec.ID, rec.Method, rec.Dim, rec.Values[0])
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&f.db, "db", "spectra", "spectrum store directory")
	cmd.Flags().IntVar(&f.workers, "workers", runtime.GOMAXPROCS(0), "runs processed concurrently")
	cmd.Flags().IntVar(&f.eigenCount, "k", 0, "eigenpairs kept per run (0: all for dense, 6 for Lanczos)")
	cmd.Flags().IntVar(&f.denseThreshold, "dense-threshold", spectrum.DefaultDenseThreshold, "largest dimension diagonalized densely")
	cmd.Flags().Float64Var(&f.tol, "tol", spectrum.DefaultTolerance, "Hermiticity and convergence tolerance")
	cmd.Flags().IntVar(&f.maxIter, "max-iter", spectrum.DefaultMaxIter, "Lanczos Krylov dimension cap")
	cmd.Flags().Int64Var(&f.seed, "seed", spectrum.DefaultSeed, "Lanczos start vector seed")

	return cmd
}

// runAll processes runs concurrently. Each goroutine owns its factory and
// builder; only the store is shared.
func (a *app) runAll(ctx context.Context, store *spectrum.Store, runs []model.Params, f runFlags) ([]*spectrum.Record, error) {
	if f.workers < 1 {
		f.workers = 1
	}
	if f.tol <= 0 || f.maxIter <= 0 || f.eigenCount < 0 || f.denseThreshold < 0 {
		return nil, fmt.Errorf("invalid solver flags: tol=%g max-iter=%d k=%d dense-threshold=%d",
			f.tol, f.maxIter, f.eigenCount, f.denseThreshold)
	}
	opts := []spectrum.Option{
		spectrum.WithEigenCount(f.eigenCount),
		spectrum.WithDenseThreshold(f.denseThreshold),
		spectrum.WithTolerance(f.tol),
		spectrum.WithMaxIter(f.maxIter),
		spectrum.WithSeed(f.seed),
		spectrum.WithLogger(a.log),
	}

	recs := make([]*spectrum.Record, len(runs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i, p := range runs {
		g.Go(func() error {
			name := runName(i, p)
			b, err := model.Build(p, model.WithLogger(a.log))
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			h, err := b.Build()
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			res, err := spectrum.Diagonalize(gctx, h, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			rec, err := store.Put(p, res)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			a.log.Info("run stored", zap.String("run", name), zap.String("id", rec.ID),
				zap.Int("dim", res.Dim), zap.String("method", string(res.Method)))
			recs[i] = rec

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return recs, nil
}
