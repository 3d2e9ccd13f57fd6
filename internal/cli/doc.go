// Package cli implements the fieldlock command line interface.
//
// Commands operate on a directory of CUE schema files and, where storage is
// involved, a SQLite database. All commands support --format json for
// machine-readable output with a stable envelope.
package cli
