package registry

// ModuleInfo describes one module as reported by List. File count and
// total size cover the module's data directory only, not its code.
type ModuleInfo struct {
	Name       string `json:"name"`
	FileCount  int    `json:"file_count"`
	TotalBytes int64  `json:"total_bytes"`
}

// CreateResult captures the outcome of a module creation.
type CreateResult struct {
	CodeDir string   // modules/<name>/
	DataDir string   // data/<name>/
	Files   []string // generated filenames inside CodeDir
}

// RemoveResult captures the outcome of a module removal.
type RemoveResult struct {
	Cancelled bool     // the confirmation step declined
	Removed   []string // directories actually deleted
}

// ConfirmFunc is called before a destructive removal with a prompt to
// display. Returns true to proceed.
type ConfirmFunc func(prompt string) (bool, error)
