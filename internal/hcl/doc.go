// Package hcl provides the concrete HCL implementation of the manifest
// loading interface defined in the `manifest` package. It is responsible for
// file discovery, parsing, and HCL-to-model translation.
//
// Translation is order-preserving: resource and relationship blocks enter
// the model interleaved exactly as written, and attributes are sorted by
// their source position. Declaration order is a semantic input downstream,
// not a cosmetic one.
package hcl
