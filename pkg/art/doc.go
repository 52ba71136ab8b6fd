// Package art defines the drawing model shared by all generative
// algorithms and the registry through which the CLI discovers them.
//
// An Algorithm turns a set of numeric Params into a Drawing: a collection
// of stroked (and optionally filled) paths inside a frame. Drawings are
// pure data; the render sinks turn them into SVG or PNG bytes.
//
// # Determinism
//
// Generation must be deterministic: the same Params (including Seed) must
// always produce the same Drawing. Algorithms derive all randomness from
// Params.Seed and must not read clocks or global rand state. This is what
// makes drawing-level caching sound.
//
// # Registering algorithms
//
// Algorithm packages register themselves in an init function:
//
//	func init() { art.Register(&Snowflake{}) }
//
// and are pulled in by blank imports from the CLI.
package art
