// SPDX-License-Identifier: MIT

// Package spectrum diagonalizes finished Hamiltonians and persists the result.
//
// Diagonalize picks a method by dimension:
//
//	dim ≤ dense threshold  → full spectrum by Jacobi sweeps (matrix.Eigen).
//	                         Complex Hermitian input goes through the real
//	                         symmetric embedding [[Re, −Im], [Im, Re]].
//	otherwise              → Lanczos with full reorthogonalization for the k
//	                         algebraically lowest eigenpairs.
//
// The input must be Hermitian within tolerance; it is never symmetrized.
//
// Store appends one Record per diagonalization to an embedded badger
// database, grouped by the canonical (sorted-key, compact) JSON of the
// parameters. Repeated runs of the same parameters are all kept.
package spectrum
