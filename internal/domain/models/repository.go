package models

import "time"

// Repository is one entry of the repository catalog: a bare or non-bare
// Git directory found under the scan root.
type Repository struct {
	Name         string    // Directory name under the scan root
	Path         string    // Absolute filesystem path
	Description  string    // Contents of the description side-file, if any
	LastActivity time.Time // Committer timestamp of the head commit
}
