// Package constants provides shared constants used throughout the stockmap
// codebase. This includes file permissions, parser limits, and other
// configuration values that should be consistent across the application.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Parser constants control table ingestion behavior
const (
	// SampleRows is how many rows the reader parses when probing an
	// encoding/delimiter candidate before committing to a full parse
	SampleRows = 4

	// DetectionBytes is how much of the file the encoding sniffer reads
	DetectionBytes = 2048

	// MinColumns is the minimum column count for a parse to be accepted
	MinColumns = 2

	// MinDataRows is the minimum data row count for a parse to be accepted
	MinDataRows = 2
)

// Run constants control reconciliation run behavior
const (
	// DefaultWorkers bounds per-platform merge parallelism
	DefaultWorkers = 4

	// MaxWorkers is the hard ceiling for per-platform merge parallelism
	MaxWorkers = 16

	// ArchiveTimestampLayout is the layout for archive snapshot filenames
	ArchiveTimestampLayout = "20060102-150405"
)

// File naming constants
const (
	// LatestSuffix names the per-platform "latest" snapshot
	LatestSuffix = "latest"

	// DefaultMappingsFile is the default column-mapping store filename
	DefaultMappingsFile = "header_mappings.yaml"

	// DefaultOutputDir is where updated platform files are written
	DefaultOutputDir = "updated_files"
)
