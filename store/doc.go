// Package store holds the values of a linked program's default-block
// uniforms.
//
// Each element is stored in the native scalar kind of its declaration.
// Writes coerce their input to that kind: float to integer clamps to the
// integer range and then rounds to nearest, integer to float is exact, and
// any nonzero value stored into a bool becomes 1. Reads coerce back to the
// requested kind and always return exactly one element.
//
// Samplers hold a texture unit index and accept only single-component
// integer writes within [0, MaxCombinedTextureUnits).
//
// Writes to unowned locations (including location.Invalid) are silently
// ignored. Writes longer than the remaining array are truncated at its end.
package store
