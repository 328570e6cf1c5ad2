// Package model owns the composite Hamiltonian builders.
//
// SpinModel sums single-site and two-site spin terms on the 2^N-dimensional
// spin space. SpinBosonModel adds a truncated bosonic mode and a spin–boson
// coupling, embedding every part in the joint space of dimension d_b·2^N with
// the boson factor outer and the spin factor inner:
//
//	H = I_b ⊗ (H_field + H_bond) + H_b ⊗ I_s + H_coupling
//
// Each builder delegates registration to one term.Accumulator per term type
// and caches the combined operator until the next Add*.
//
// Build(Params) is the parameter-driven entry point used by the CLI: it
// validates every array against N before touching any matrix.
package model
