package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/cagesync/internal/core/ports"
	"go.trai.ch/zerr"
	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

var _ ports.RegistryStore = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS bundles (
	seq                INTEGER NOT NULL,
	name               TEXT PRIMARY KEY,
	status             TEXT NOT NULL,
	params             TEXT NOT NULL,
	cage               TEXT NOT NULL,
	edits              TEXT NOT NULL,
	cage_peak_distance REAL NOT NULL,
	point_count        TEXT NOT NULL,
	order_hash         TEXT NOT NULL
);`

// SQLiteStore keeps one row per bundle. Geometry, parameters and edits are
// stored as JSON columns; fingerprint fields are stored as text because SQLite
// integers are signed.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", filepath.Dir(path))
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreOpenFailed.Error()), "path", path)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreOpenFailed.Error()), "path", path)
	}
	return &SQLiteStore{db: db}, nil
}

// Load reads every bundle in creation order.
func (s *SQLiteStore) Load(ctx context.Context) (*domain.Registry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, status, params, cage, edits, cage_peak_distance, point_count, order_hash
FROM bundles ORDER BY seq`)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	defer rows.Close() //nolint:errcheck // Best effort close in defer

	var bundles []domain.BakeBundle
	for rows.Next() {
		b, err := scanBundle(rows)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, b)
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	reg, err := domain.NewRegistry(bundles...)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}
	return reg, nil
}

// Save replaces every row inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, reg *domain.Registry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bundles`); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO bundles
(seq, name, status, params, cage, edits, cage_peak_distance, point_count, order_hash)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	defer stmt.Close() //nolint:errcheck // Best effort close in defer

	seq := 0
	for b := range reg.All() {
		row, err := encodeBundle(b)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, append([]any{seq}, row...)...); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "name", b.Name)
		}
		seq++
	}

	if err := tx.Commit(); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func encodeBundle(b domain.BakeBundle) ([]any, error) {
	params, err := json.Marshal(b.Params)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error()), "name", b.Name)
	}
	cageGeom, err := json.Marshal(b.Cage)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error()), "name", b.Name)
	}
	edits, err := json.Marshal(b.Edits)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error()), "name", b.Name)
	}
	return []any{
		b.Name,
		b.Status.String(),
		string(params),
		string(cageGeom),
		string(edits),
		b.CagePeakDistance,
		strconv.FormatUint(b.LastFingerprint.PointCount, 10),
		strconv.FormatUint(b.LastFingerprint.OrderHash, 16),
	}, nil
}

func scanBundle(rows *sql.Rows) (domain.BakeBundle, error) {
	var (
		b                            domain.BakeBundle
		status, params, cageGeom     string
		edits, pointCount, orderHash string
	)
	if err := rows.Scan(&b.Name, &status, &params, &cageGeom, &edits, &b.CagePeakDistance, &pointCount, &orderHash); err != nil {
		return b, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	fail := func(err error) (domain.BakeBundle, error) {
		return domain.BakeBundle{}, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "name", b.Name)
	}

	var err error
	if b.Status, err = domain.ParseStatus(status); err != nil {
		return fail(err)
	}
	if err = json.Unmarshal([]byte(params), &b.Params); err != nil {
		return fail(err)
	}
	if err = json.Unmarshal([]byte(cageGeom), &b.Cage); err != nil {
		return fail(err)
	}
	if err = json.Unmarshal([]byte(edits), &b.Edits); err != nil {
		return fail(err)
	}
	if b.LastFingerprint.PointCount, err = strconv.ParseUint(pointCount, 10, 64); err != nil {
		return fail(err)
	}
	if b.LastFingerprint.OrderHash, err = strconv.ParseUint(orderHash, 16, 64); err != nil {
		return fail(err)
	}
	return b, nil
}
