package telemetry

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"codeberg.org/mutker/comfortd/internal/errors"
	"codeberg.org/mutker/comfortd/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

type Repository interface {
	Store(snapshot *Snapshot) error
	Close() error
}

type sqliteRepository struct {
	db *sql.DB
	mu sync.Mutex
}

func NewRepository(cfg Config) (Repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	logger.Debug().Msgf("Initializing telemetry repository at: %s", cfg.DBPath)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteRepository{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS comfort_readings (
            timestamp   INTEGER NOT NULL,
            device_id   TEXT NOT NULL,
            metric      TEXT NOT NULL,
            value       REAL,
            perception  TEXT,
            temperature REAL NOT NULL,
            humidity    REAL NOT NULL,
            PRIMARY KEY (timestamp, device_id, metric)
        )
    `)
	if err != nil {
		return errors.New().Wrap(ErrSchemaInitFailed, err)
	}

	return nil
}

func (r *sqliteRepository) Store(snapshot *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`
        INSERT INTO comfort_readings (
            timestamp, device_id, metric, value, perception, temperature, humidity
        ) VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(timestamp, device_id, metric) DO UPDATE SET
            value = excluded.value,
            perception = excluded.perception,
            temperature = excluded.temperature,
            humidity = excluded.humidity
    `,
		snapshot.Timestamp.Unix(),
		snapshot.DeviceID,
		string(snapshot.Metric),
		snapshot.Value,
		snapshot.Perception,
		snapshot.Temperature,
		snapshot.Humidity,
	)
	if err != nil {
		return errors.New().Wrap(ErrStorageAccess, err)
	}

	return nil
}

func (r *sqliteRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.Close(); err != nil {
		return errors.New().Wrap(ErrStorageClose, err)
	}

	return nil
}
