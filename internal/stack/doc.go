// Package stack implements the composition core: an open stack accepts
// resource declarations and relationship links, resolves every name the
// moment it is used, and closes into an ordered, immutable plan.
//
// All name resolution is synchronous and fail-fast. A resource name must be
// declared before anything references it, so a closed plan never contains a
// forward reference, and a relationship unit always appears after every
// resource unit it touches. Backends rely on that ordering instead of doing
// their own dependency analysis.
package stack
