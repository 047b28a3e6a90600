// Package mix provides stateless, energy-preserving channel mixing
// matrices that operate in place on a [frame.Frame].
//
// Both matrices are orthogonal: the sum of squared samples is the same
// before and after mixing, so a feedback loop built on them gains or loses
// energy only through its explicit decay gain.
//
//   - Householder: reflection about the all-ones vector. Symmetric and
//     involutory; costs one sum and one multiply-add per channel.
//   - Hadamard: normalised fast Walsh–Hadamard transform. Spreads every
//     input channel into every output channel with equal magnitude.
package mix
