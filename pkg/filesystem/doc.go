// Package filesystem provides filesystem implementations for cuepine.
//
// This package contains implementations of the types.FS interface:
// the real OS filesystem used by the CLI and an afero-backed filesystem
// used by tests that only need directory traversal.
package filesystem
