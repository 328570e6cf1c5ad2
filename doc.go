// Package qham assembles sparse Hamiltonians for spin-½ chains, a single
// truncated bosonic mode and their coupling, ready for diagonalization.
//
// What is inside?
//
//	sparse/     canonical complex CSR matrices: Kron, Add, Mul, Scale, Adjoint
//	spin/       cached Pauli operator factory, single-site and two-site terms
//	boson/      truncated boson mode (a, a†, n, I) and boson terms
//	spinboson/  boson ⊗ collective-spin coupling term
//	term/       generic term accumulator with dirty-flag caching
//	model/      composite builders (spin-only, spin+boson) and parameter glue
//	matrix/     dense row-major float64 kernel with Jacobi eigen-decomposition
//	spectrum/   dense/Lanczos diagonalization driver and badger spectrum store
//
// Tensor ordering is fixed everywhere: site 0 is the most significant spin
// factor, and in the joint space the boson factor is outer, the spin factor inner:
//
//	|n_b⟩ ⊗ |s_0 s_1 … s_{N-1}⟩  →  row = n_b·2^N + bits(s_0…s_{N-1})
//
// Quick example:
//
//	f, _ := spin.NewFactory(2)
//	m, _ := model.NewSpinModel(f)
//	_ = m.AddSpinCoupling(spin.Ops{spin.Z, spin.Z}, [][]complex128{{0, 1}, {0, 0}})
//	h, _ := m.Build() // diag(1, -1, -1, 1)
package qham
