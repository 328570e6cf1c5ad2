package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/qham/spectrum"
)

func (a *app) showCmd() *cobra.Command {
	var (
		db string
		id string
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print stored eigenvalues (every stored run of --file, one --id, or everything)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := spectrum.Open(spectrum.Config{Path: db, Logger: a.log})
			if err != nil {
				return err
			}
			defer store.Close()

			switch {
			case id != "":
				rec, err := store.GetByID(id)
				if err != nil {
					return err
				}
				a.printRecord(rec.Name, rec)
			case a.file != "":
				runs, err := a.loadRuns()
				if err != nil {
					return err
				}
				for i, p := range runs {
					recs, err := store.Get(p)
					if errors.Is(err, spectrum.ErrNotFound) {
						fmt.Fprintf(a.out, "%s\t(not stored)\n", runName(i, p))
						continue
					}
					if err != nil {
						return err
					}
					for _, rec := range recs {
						a.printRecord(runName(i, p), rec)
					}
				}
			default:
				recs, err := store.List()
				if err != nil {
					return err
				}
				for _, rec := range recs {
					a.printRecord(rec.Name, rec)
				}
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&db, "db", "spectra", "spectrum store directory")
	cmd.Flags().StringVar(&id, "id", "", "run ID to show")

	return cmd
}

func (a *app) printRecord(name string, rec *spectrum.Record) {
	vals := make([]string, len(rec.Values))
	for i, v := range rec.Values {
		vals[i] = strconv.FormatFloat(v, 'g', 12, 64)
	}
	fmt.Fprintf(a.out, "%s\t%s\t%s\tdim=%d\t[%s]\n", name, rec.ID, rec.Method, rec.Dim, strings.Join(vals, " "))
}
