// Package manifest reads, writes, and validates the lab.yaml project
// manifest. The manifest records project metadata (name, layout version,
// creation time) and is validated against an embedded JSON schema by the
// doctor command. It plays no part in project-root resolution.
package manifest
