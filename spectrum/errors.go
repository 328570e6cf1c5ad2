// SPDX-License-Identifier: MIT

package spectrum

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/qham"
)

var (
	// ErrNotHermitian is returned for input that is not Hermitian within tolerance.
	ErrNotHermitian = fmt.Errorf("spectrum: matrix is not Hermitian: %w", qham.ErrInvalidArgument)

	// ErrNotSquare is returned for non-square input.
	ErrNotSquare = fmt.Errorf("spectrum: matrix is not square: %w", qham.ErrShapeMismatch)

	// ErrNoConvergence is returned when Lanczos exhausts its iteration budget.
	ErrNoConvergence = errors.New("spectrum: eigensolver did not converge")

	// ErrNotFound is returned by Store lookups that match nothing.
	ErrNotFound = errors.New("spectrum: record not found")
)
