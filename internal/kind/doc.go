// Package kind defines resource kinds: their field schemas, secure default
// configurations, and the pure resolution of caller overrides into immutable
// typed configurations.
package kind
