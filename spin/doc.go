// Package spin builds operators on the 2^N-dimensional Hilbert space of an
// N-site spin-½ chain.
//
// The Factory lazily constructs and caches σ^axis_i for every (axis, site)
// pair, where axis ∈ {X, Y, Z, +, -}. Site 0 is the most significant tensor
// factor, so in the computational basis the row index of |s_0 s_1 … s_{N-1}⟩
// is the binary number s_0 s_1 … s_{N-1} with |0⟩ = spin up (σ^Z = +1).
//
// Two term types sit on top of the factory:
//
//	SingleSiteTerm:  H = Σ_i h[i] σ^a_i
//	TwoSiteTerm:     H = Σ_{i<j} J[i,j] σ^a_i σ^b_j   (strict upper triangle only)
//
// The two-site convention reads J[i,j] for i<j and never looks at the
// diagonal or the lower triangle. A symmetric J therefore counts every bond
// once, not twice; callers wanting asymmetric couplings must encode them in
// the upper triangle with swapped operator order.
//
// Factories are not safe for concurrent use; give each goroutine its own.
package spin
