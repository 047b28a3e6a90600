// Package frame defines the fixed-size multi-channel sample frame shared by
// every stage of the reverb.
//
// A [Frame] is a value type: it is copied on assignment and can be passed to
// and returned from per-sample processing functions without allocating.
// The channel count is the compile-time constant [Channels].
package frame
