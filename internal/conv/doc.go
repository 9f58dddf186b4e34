// Package conv provides checked integer conversions.
//
// Vertex ids are uint32 while Go sizes and counts are int. Conversions of
// sizes coming from callers or from snapshot headers go through this
// package; conversions that are bounded by construction (loop indices over a
// graph that already validated its size) use plain casts.
package conv
