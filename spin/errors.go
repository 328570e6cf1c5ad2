// SPDX-License-Identifier: MIT

package spin

import (
	"fmt"

	"github.com/katalvlaran/qham"
)

var (
	// ErrUnknownAxis is returned for axis labels outside {X, Y, Z, +, -}.
	ErrUnknownAxis = fmt.Errorf("spin: unknown axis: %w", qham.ErrInvalidArgument)

	// ErrSiteOutOfRange is returned for site indices outside [0, N).
	ErrSiteOutOfRange = fmt.Errorf("spin: site out of range: %w", qham.ErrInvalidArgument)

	// ErrSiteCount is returned when N is not in [1, MaxSites].
	ErrSiteCount = fmt.Errorf("spin: invalid site count: %w", qham.ErrInvalidArgument)

	// ErrNilFactory is returned when a term is constructed without a factory.
	ErrNilFactory = fmt.Errorf("spin: nil factory: %w", qham.ErrInvalidArgument)

	// ErrFieldLength is returned when a field array length differs from N.
	ErrFieldLength = fmt.Errorf("spin: field length mismatch: %w", qham.ErrShapeMismatch)

	// ErrNonFinite is returned for a NaN or infinite field or coupling value.
	ErrNonFinite = fmt.Errorf("spin: coefficient must be finite: %w", qham.ErrInvalidArgument)

	// ErrCouplingShape is returned when a coupling matrix is not N×N.
	ErrCouplingShape = fmt.Errorf("spin: coupling shape mismatch: %w", qham.ErrShapeMismatch)
)
