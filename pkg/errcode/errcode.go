package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	CreateFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Data source errors
	SourceDriverError
	SourceColumnsError
	SourceQueryError
	SourceScanError

	// Catalog definition errors
	DefinitionsReadError
	DefinitionsParseError
	DefinitionsRegisterError
	RuleModuleNotFoundError
	StarlarkLoadError

	// Catalog errors
	CatalogTypeError
	CatalogRequirementsError
	CatalogWriteError

	// Metrics errors
	MetricsPushError
)
