// Package cli wires the cobra command tree: setup, add, list, run,
// remove, backup, doctor, and version. Commands resolve the project root
// from the working directory and thread it explicitly into the core
// packages; no core package reads process-global state.
package cli
