package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/qham/internal/logger"
	"github.com/katalvlaran/qham/model"
)

// app holds flags shared by every subcommand.
type app struct {
	out      io.Writer
	file     string
	logMode  string
	logLevel string
	log      *zap.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}
	root := &cobra.Command{
		Use:           "hamspec",
		Short:         "Build and diagonalize spin / spin-boson Hamiltonians",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l, err := logger.New(a.logMode, a.logLevel)
			if err != nil {
				return err
			}
			a.log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.file, "file", "f", "", "YAML parameter file with a runs: list")
	root.PersistentFlags().StringVar(&a.logMode, "log", "quiet", "log mode: quiet, dev or prod")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(a.buildCmd(), a.runCmd(), a.showCmd())

	return root
}

// loadRuns decodes the parameter file given by --file.
func (a *app) loadRuns() ([]model.Params, error) {
	if a.file == "" {
		return nil, fmt.Errorf("--file is required")
	}
	f, err := os.Open(a.file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return model.DecodeParams(f)
}

// runName labels run i in output.
func runName(i int, p model.Params) string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("run-%d", i)
}
