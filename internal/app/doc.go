// Package app wires the composition pipeline together. It owns the main App
// struct, its configuration, and the run lifecycle, decoupled from any
// specific entrypoint like a CLI.
package app
