package core

import "os"

// File permission constants used when writing configuration and state files.
const (
	// PermOwnerRW is read/write for the owner only.
	PermOwnerRW os.FileMode = 0o600

	// PermDir is the default permission for directories created by nmsearch.
	PermDir os.FileMode = 0o755
)

// DefaultMaxConcurrency caps in-flight directory listings during a scan.
const DefaultMaxConcurrency = 16
