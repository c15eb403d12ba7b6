package db

import "context"

// MigrationHistory is one schema version applied to the database.
type MigrationHistory struct {
	Version   string
	CreatedTs int64
}

// RecordMigration marks a schema version as applied. Recording the
// same version again is harmless, the version is the primary key.
func (d *DB) RecordMigration(ctx context.Context, version string) (*MigrationHistory, error) {
	stmt := `
		INSERT INTO migration_history (version)
		VALUES (?)
		ON CONFLICT(version) DO UPDATE SET version = EXCLUDED.version
		RETURNING version, created_ts
	`
	var history MigrationHistory
	if err := d.DB.QueryRowContext(ctx, stmt, version).Scan(
		&history.Version,
		&history.CreatedTs,
	); err != nil {
		return nil, err
	}

	return &history, nil
}

// ListMigrations returns every applied schema version, newest first.
func (d *DB) ListMigrations(ctx context.Context) ([]*MigrationHistory, error) {
	rows, err := d.DB.QueryContext(ctx, "SELECT version, created_ts FROM migration_history ORDER BY created_ts DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*MigrationHistory, 0)
	for rows.Next() {
		var history MigrationHistory
		if err := rows.Scan(&history.Version, &history.CreatedTs); err != nil {
			return nil, err
		}
		list = append(list, &history)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
