// Package updater checks GitHub Releases for newer versions of the lab
// binary. A daily-cached version check powers the startup banner and the
// version --check flag; the binary itself is upgraded through the
// package manager, not by this package.
package updater
