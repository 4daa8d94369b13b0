package telemetry

import "codeberg.org/mutker/comfortd/internal/errors"

const (
	defaultDirPerm = 0o755
	defaultDBPath  = "/var/lib/comfortd/telemetry.db"
)

type Config struct {
	DBPath  string
	Enabled bool
}

func DefaultConfig() Config {
	return Config{
		DBPath:  defaultDBPath,
		Enabled: false,
	}
}

func (c Config) Validate() error {
	// DBPath only matters when collection is on.
	if c.Enabled && c.DBPath == "" {
		return errors.New().New(ErrInvalidDBPath)
	}

	return nil
}
