// Package runner loads and executes a module's entry script. Scripts run
// inside an in-process POSIX shell interpreter (mvdan.cc/sh): loading
// executes the file's top-level statements, after which the script must
// expose a run function taking no arguments. Script failures are captured
// and reported, never propagated to the caller.
package runner
