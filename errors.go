// SPDX-License-Identifier: MIT

package qham

import "errors"

// Root error taxonomy. Every package-level sentinel in this module wraps
// exactly one of these, so callers can branch on the category with errors.Is
// without knowing the concrete package. None of them is retryable: all are
// caller-input defects.
var (
	// ErrInvalidArgument covers unknown operator labels, unknown axes and
	// site indices outside [0, N).
	ErrInvalidArgument = errors.New("qham: invalid argument")

	// ErrShapeMismatch covers field/coupling arrays whose dimensions are
	// inconsistent with the number of sites, and operand shape conflicts.
	ErrShapeMismatch = errors.New("qham: shape mismatch")
)
