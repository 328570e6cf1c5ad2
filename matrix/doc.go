// SPDX-License-Identifier: MIT

// Package matrix is the dense real kernel behind the spectrum package.
//
// What is inside?
//
//	Matrix        - minimal interface (Rows, Cols, At, Set, Clone)
//	Dense         - row-major float64 storage, offset i*cols + j
//	Validate*     - central nil/shape/symmetry/vector-length guards
//	MatVec        - deterministic product with a *Dense fast path
//	Eigen         - cyclic Jacobi eigen-decomposition of a symmetric matrix
//
// Errors are package sentinels, wrapped with an operation tag at the facade
// ("Eigen: matrix: matrix is not symmetric within eps"); match with errors.Is.
// No exported function panics on user input.
package matrix
