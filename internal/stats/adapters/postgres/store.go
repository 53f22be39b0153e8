package postgres

import (
	"context"
	"database/sql"
	"errors"

	"usage-telemetry-service/internal/stats/core/ports"
)

// SnapshotStore keeps the aggregator snapshot document as one row per
// aggregator name.
type SnapshotStore struct {
	db   DB
	name string
}

func NewSnapshotStore(db DB, name string) *SnapshotStore {
	return &SnapshotStore{db: db, name: name}
}

var _ ports.SnapshotStorePort = (*SnapshotStore)(nil)

// SQL templates
const upsertSnapshotSQL = `
INSERT INTO stats_snapshots (name, doc, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (name) DO UPDATE SET
    doc = EXCLUDED.doc,
    updated_at = EXCLUDED.updated_at;
`

const selectSnapshotSQL = `
SELECT doc FROM stats_snapshots WHERE name = $1;
`

func (s *SnapshotStore) Save(ctx context.Context, doc []byte) error {
	_, err := s.db.ExecContext(ctx, upsertSnapshotSQL, s.name, doc)
	return err
}

func (s *SnapshotStore) Load(ctx context.Context) ([]byte, bool, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, selectSnapshotSQL, s.name).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc, true, nil
}
