// Package compose replays a loaded manifest through the composition core.
// Each stack declaration block becomes one stack: entries run in source
// order, so every reference a manifest makes is checked against what was
// declared above it, exactly as in the Go API.
//
// Stacks are independent of each other, which is what makes the bounded
// worker pool safe: concurrency never reorders anything within a stack, and
// the returned plans follow manifest order regardless of which worker
// finished first.
package compose
