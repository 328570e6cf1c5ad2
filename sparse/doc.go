// Package sparse provides an immutable complex128 matrix in canonical
// compressed sparse row (CSR) layout, plus the handful of kernels needed to
// assemble quantum operators: Kronecker product, addition, scaling,
// sparse-sparse product and conjugate transpose.
//
// Canonical means: column indices are strictly increasing within each row,
// there are no duplicate entries and no explicitly stored zeros. Every
// constructor and kernel in this package returns canonical matrices, which is
// what makes structural equality (Equal) meaningful.
//
// A *CSR is never mutated after construction. It is therefore safe to hand
// the same pointer to many consumers (operator caches rely on this).
package sparse
