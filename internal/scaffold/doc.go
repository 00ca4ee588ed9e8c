// Package scaffold generates a module's code files from embedded
// templates. It powers the "lab add" command, producing the entry script
// (run.sh), the data loader (load_data.sh), and the analyzer (analyze.sh)
// with the module name interpolated into each.
package scaffold
