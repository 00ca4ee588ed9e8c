// Package registry enumerates, creates, and deletes modules. A module is
// a directory pair: modules/<name>/ holds generated code files and
// data/<name>/ holds arbitrary user files. Removal goes through an
// injected confirmation callback so callers decide how (or whether) to
// prompt.
package registry
