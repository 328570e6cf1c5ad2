// Package boson models a single bosonic mode truncated at n_max quanta.
//
// The mode eagerly builds four (n_max+1)×(n_max+1) operators in the Fock basis
// |0⟩, |1⟩, …, |n_max⟩:
//
//	a    annihilation, a[i-1, i] = √i
//	adag creation, a†
//	n    number operator a†a = diag(0, 1, …, n_max)
//	I    identity
//
// Nothing else (position, momentum, displacement) is derived.
package boson
