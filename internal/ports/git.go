package ports

import "context"

// GitInfo holds the repository context detected for the working directory.
type GitInfo struct {
	Branch string
	Commit string
}

// GitDetector reports the git context of a directory, for display in the
// timer header. This is a driven port (implemented by adapters).
type GitDetector interface {
	// Detect scans the working directory for git context.
	Detect(ctx context.Context, workingDir string) (*GitInfo, error)

	// IsAvailable reports whether a repository can be found.
	IsAvailable() bool
}
