// Package project locates and initializes the data-lab project root. A
// directory qualifies as a root when it contains both a modules/ and a
// data/ child directory; Resolve walks from an explicit start directory
// up to the filesystem root looking for the first match.
package project
