package registry

import (
	"database/sql"
	"time"

	"codeberg.org/mutker/comfortd/internal/errors"
)

// SchemaVersion is the current registry schema version.
const SchemaVersion = 1

// initSchema creates the registry tables and stamps the schema version.
func initSchema(db *sql.DB) error {
	errFactory := errors.New()

	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS entities (
            unique_id  TEXT PRIMARY KEY,
            device_id  TEXT NOT NULL,
            metric     TEXT NOT NULL,
            created_at INTEGER NOT NULL
        );
        CREATE INDEX IF NOT EXISTS idx_entities_device ON entities(device_id);
        CREATE TABLE IF NOT EXISTS schema_versions (
            version    INTEGER PRIMARY KEY,
            applied_at INTEGER NOT NULL
        );
    `)
	if err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}

	_, err = db.Exec(
		"INSERT OR IGNORE INTO schema_versions (version, applied_at) VALUES (?, ?)",
		SchemaVersion, time.Now().Unix(),
	)
	if err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}

	return nil
}

// schemaVersion returns the stamped schema version, 0 for a fresh
// database.
func schemaVersion(db *sql.DB) (int, error) {
	errFactory := errors.New()

	var exists int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_versions'",
	).Scan(&exists)
	if err != nil {
		return 0, errFactory.Wrap(ErrSchemaValidationFailed, err)
	}
	if exists == 0 {
		return 0, nil
	}

	var version int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	if err != nil {
		return 0, errFactory.Wrap(ErrSchemaValidationFailed, err)
	}

	return version, nil
}

// validateSchema initializes a fresh database and refuses to open one
// written by a different schema version. The registry holds persistent
// identity, so unlike a telemetry database it is never dropped and
// recreated on mismatch.
func validateSchema(db *sql.DB) error {
	version, err := schemaVersion(db)
	if err != nil {
		return err
	}

	switch version {
	case 0:
		return initSchema(db)
	case SchemaVersion:
		return nil
	default:
		return errors.New().WithData(ErrSchemaVersionMismatch, version)
	}
}
