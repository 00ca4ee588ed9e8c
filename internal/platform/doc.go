// Package platform provides cross-platform filesystem helpers. On Unix
// systems it applies permission bits directly; on Windows, which has no
// Unix-style permission model, the operations degrade to no-ops.
package platform
