package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/creatordir/internal/database"
	"github.com/jask/creatordir/internal/directory"
)

// ErrNoSnapshot is returned when no snapshot has been recorded yet.
var ErrNoSnapshot = errors.New("no saved directory snapshot")

// SnapshotRepo stores copies of successfully loaded directories.
type SnapshotRepo struct {
	db   *sql.DB
	keep int
}

// NewSnapshotRepo returns a repo that retains the newest keep snapshots.
func NewSnapshotRepo(db *sql.DB, keep int) *SnapshotRepo {
	if keep < 1 {
		keep = 1
	}
	return &SnapshotRepo{db: db, keep: keep}
}

// Save records participants as a new snapshot and prunes older ones.
func (r *SnapshotRepo) Save(ctx context.Context, source string, participants []directory.Participant) (Snapshot, error) {
	snap := Snapshot{ID: uuid.NewString(), TakenAt: database.Now(), Source: source, Count: len(participants)}
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots(id, taken_at, source, count) VALUES (?, ?, ?, ?)
		`, snap.ID, snap.TakenAt, snap.Source, snap.Count); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO snapshot_participants(snapshot_id, position, payload) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, p := range participants {
			payload, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("encode participant %q: %w", p.ID, err)
			}
			if _, err := stmt.ExecContext(ctx, snap.ID, i, string(payload)); err != nil {
				return err
			}
		}
		_, err = tx.ExecContext(ctx, `
		DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY taken_at DESC, rowid DESC LIMIT ?
		)`, r.keep)
		return err
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("save snapshot: %w", err)
	}
	return snap, nil
}

// List returns snapshot headers, newest first.
func (r *SnapshotRepo) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, taken_at, source, count FROM snapshots ORDER BY taken_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.TakenAt, &s.Source, &s.Count); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Latest returns the newest snapshot and its participants in load order.
func (r *SnapshotRepo) Latest(ctx context.Context) (Snapshot, []directory.Participant, error) {
	var s Snapshot
	row := r.db.QueryRowContext(ctx, `SELECT id, taken_at, source, count FROM snapshots ORDER BY taken_at DESC, rowid DESC LIMIT 1`)
	if err := row.Scan(&s.ID, &s.TakenAt, &s.Source, &s.Count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, nil, ErrNoSnapshot
		}
		return Snapshot{}, nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT payload FROM snapshot_participants WHERE snapshot_id = ? ORDER BY position`, s.ID)
	if err != nil {
		return Snapshot{}, nil, err
	}
	defer rows.Close()
	out := make([]directory.Participant, 0, s.Count)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return Snapshot{}, nil, err
		}
		var p directory.Participant
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return Snapshot{}, nil, fmt.Errorf("decode snapshot participant: %w", err)
		}
		out = append(out, p)
	}
	return s, out, rows.Err()
}

// FetchAll serves the latest snapshot as a directory source for offline use.
func (r *SnapshotRepo) FetchAll(ctx context.Context) ([]directory.Participant, error) {
	_, participants, err := r.Latest(ctx)
	return participants, err
}

// Purge deletes every snapshot and compacts the file. The schema is kept.
func (r *SnapshotRepo) Purge(ctx context.Context) (int, error) {
	var n int64
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM snapshots`)
		if err != nil {
			return fmt.Errorf("purge snapshots: %w", err)
		}
		n, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	_, _ = r.db.ExecContext(ctx, "VACUUM")
	return int(n), nil
}
