// Package suite runs a directory of conformance cases through the harness
// and compares every token dump with its golden file.
//
// A case is a source file matching the manifest pattern. Its golden dump
// lives next to it as <case>.tokens; its expected exit code comes from the
// [expect] table of grun.toml and defaults to 0.
package suite
