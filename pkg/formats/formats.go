// Package formats reads and writes the text asset formats used by the
// viewer and its tools.
//
// Wavefront OBJ (obj.go) covers the vehicle model and terrain export.
// Image formats live in internal/engine/texture.
package formats
