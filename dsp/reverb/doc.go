// Package reverb implements a fixed-channel feedback delay network (FDN)
// reverb.
//
// Each input frame passes through the Diffuser and then the Feedback
// network. The output is dry·input + wet·tail, where tail is what the
// Feedback network returns.
//
//   - Diffuser: a bank of per-channel delays with mutually prime lengths
//     that smears a transient over time before it enters the loop.
//   - Feedback: one delay per channel whose outputs are mixed by a
//     Householder reflection, scaled by the decay gain and written back.
//   - Reverb: owns one of each, derives the decay gain from room size and
//     RT60, and blends dry and wet signal.
//
// All buffers are allocated by the constructors. Process never allocates,
// blocks or fails. Instances share no state, so independent instances may run
// on separate goroutines; a single instance must not be used concurrently.
package reverb
