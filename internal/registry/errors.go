package registry

import "codeberg.org/mutker/comfortd/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrorCode("registry_invalid_config")
	ErrInvalidDBPath = errors.ErrorCode("registry_invalid_db_path")

	// Schema Errors
	ErrSchemaInitFailed       = errors.ErrorCode("registry_schema_init_failed")
	ErrSchemaValidationFailed = errors.ErrorCode("registry_schema_validation_failed")
	ErrSchemaVersionMismatch  = errors.ErrorCode("registry_schema_version_mismatch")

	// Storage Errors
	ErrStorageAccess = errors.ErrorCode("registry_storage_access_failed")
	ErrStorageInit   = errors.ErrorCode("registry_storage_init_failed")
	ErrStorageClose  = errors.ErrorCode("registry_storage_close_failed")

	// Migration Errors
	ErrMigrationFailed = errors.ErrorCode("registry_migration_failed")
)
