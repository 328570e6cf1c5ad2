// Command hamspec builds, diagonalizes and stores spin and spin–boson
// Hamiltonians described in a YAML parameter file.
//
//	hamspec build -f params.yaml
//	hamspec run   -f params.yaml --db ./spectra
//	hamspec show  -f params.yaml --db ./spectra
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "hamspec:", err)
		stop()
		os.Exit(1)
	}
}
