// Package backup archives module trees into timestamped zip files. A
// backup covers one named module or the whole registry, optionally
// restricted to code or data files, and never leaves an empty or partial
// archive on disk.
package backup
