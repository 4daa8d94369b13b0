// Package registry persists the identity of every derived sensor across
// restarts. External consumers key on unique_id, the plain concatenation
// of device id and metric id, so renaming a metric requires a one-time
// rewrite of the stored ids.
package registry

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/mutker/comfortd/internal/comfort"
	"codeberg.org/mutker/comfortd/internal/errors"
	"codeberg.org/mutker/comfortd/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

const defaultDirPerm = 0o755

type Config struct {
	DBPath string
}

func (c Config) Validate() error {
	if c.DBPath == "" {
		return errors.New().New(ErrInvalidDBPath)
	}

	return nil
}

// Entity is one registered derived sensor.
type Entity struct {
	UniqueID string
	DeviceID string
	Metric   comfort.Metric
}

// Registry is a SQLite backed entity registry.
type Registry struct {
	db *sql.DB
	mu sync.Mutex
}

func New(cfg Config) (*Registry, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	logger.Debug().Msgf("Initializing entity registry at: %s", cfg.DBPath)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := validateSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Registry{db: db}, nil
}

// EnsureEntity registers a sensor identity if it is not known yet.
func (r *Registry) EnsureEntity(deviceID string, m comfort.Metric) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`
        INSERT OR IGNORE INTO entities (unique_id, device_id, metric, created_at)
        VALUES (?, ?, ?, ?)
    `, comfort.EntityID(deviceID, m), deviceID, string(m), time.Now().Unix())
	if err != nil {
		return errors.New().Wrap(ErrStorageAccess, err)
	}

	return nil
}

// Lookup returns the entity registered under a unique id.
func (r *Registry) Lookup(uniqueID string) (Entity, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var e Entity
	var metric string
	err := r.db.QueryRow(
		"SELECT unique_id, device_id, metric FROM entities WHERE unique_id = ?",
		uniqueID,
	).Scan(&e.UniqueID, &e.DeviceID, &metric)
	if errors.Is(err, sql.ErrNoRows) {
		return Entity{}, false, nil
	}
	if err != nil {
		return Entity{}, false, errors.New().Wrap(ErrStorageAccess, err)
	}
	e.Metric = comfort.Metric(metric)

	return e, true, nil
}

// ForDevice lists every entity registered for a device.
func (r *Registry) ForDevice(deviceID string) ([]Entity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(
		"SELECT unique_id, device_id, metric FROM entities WHERE device_id = ? ORDER BY metric",
		deviceID,
	)
	if err != nil {
		return nil, errors.New().Wrap(ErrStorageAccess, err)
	}
	defer rows.Close()

	var out []Entity
	for rows.Next() {
		var e Entity
		var metric string
		if err := rows.Scan(&e.UniqueID, &e.DeviceID, &metric); err != nil {
			return nil, errors.New().Wrap(ErrStorageAccess, err)
		}
		e.Metric = comfort.Metric(metric)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New().Wrap(ErrStorageAccess, err)
	}

	return out, nil
}

// MigrateLegacyIDs rewrites entities registered under pre-2.0 metric
// names to their canonical ids. Running it again is a no-op: the legacy
// rows are gone after the first pass. Returns the number of rewritten
// entities.
func (r *Registry) MigrateLegacyIDs(deviceID string) (int, error) {
	errFactory := errors.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return 0, errFactory.Wrap(ErrMigrationFailed, err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				logger.Debug().Err(err).Msg("Failed to rollback legacy id migration")
			}
		}
	}()

	migrated := 0
	for _, m := range comfort.All() {
		legacy, ok := comfort.LegacyOf(m)
		if !ok {
			continue
		}

		oldID := comfort.EntityID(deviceID, legacy)
		newID := comfort.EntityID(deviceID, m)

		// Skip when the canonical row already exists; the legacy row is
		// then a stray duplicate and dropped instead of rewritten.
		var haveNew int
		if err := tx.QueryRow(
			"SELECT COUNT(*) FROM entities WHERE unique_id = ?", newID,
		).Scan(&haveNew); err != nil {
			return 0, errFactory.Wrap(ErrMigrationFailed, err)
		}

		if haveNew > 0 {
			if _, err := tx.Exec("DELETE FROM entities WHERE unique_id = ?", oldID); err != nil {
				return 0, errFactory.Wrap(ErrMigrationFailed, err)
			}
			continue
		}

		res, err := tx.Exec(
			"UPDATE entities SET unique_id = ?, metric = ? WHERE unique_id = ?",
			newID, string(m), oldID,
		)
		if err != nil {
			return 0, errFactory.Wrap(ErrMigrationFailed, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, errFactory.Wrap(ErrMigrationFailed, err)
		}
		if affected > 0 {
			migrated += int(affected)
			logger.Info().
				Str("device", deviceID).
				Str("legacy", string(legacy)).
				Str("metric", string(m)).
				Msg("Migrated legacy entity id")
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errFactory.Wrap(ErrMigrationFailed, err)
	}
	committed = true

	return migrated, nil
}

func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.Close(); err != nil {
		return errors.New().Wrap(ErrStorageClose, err)
	}

	return nil
}
