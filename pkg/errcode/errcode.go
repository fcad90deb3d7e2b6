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

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaIndexError

	// Store errors
	StoreUnknownBackendError
	StoreAuthError
	StoreRequestError
	StoreQueryError
	StoreCreateError
	StoreNotFoundError

	// Geo API errors
	GeoRequestError
	GeoResponseError
	GeoCacheError

	// Cascade errors
	CascadeFetchError

	// Crawl errors
	CrawlCountryNotFoundError
	CrawlCountryCodeError
	CrawlEntitySkipError
)
