// Package store provides the persistence collaborators.
// This file contains the SQLite-backed profile store.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/yllada/vpn-composer/common"
	"github.com/yllada/vpn-composer/profile"
)

// ProfileInfo is a listing row of the profile store.
type ProfileInfo struct {
	ID             uuid.UUID
	Name           string
	IsLocal        bool
	RemotelyShared bool
	UpdatedAt      time.Time
}

// ProfileStore persists built profiles in a SQLite database.
// It satisfies profile.ProfileStore.
type ProfileStore struct {
	db     *sql.DB
	logger common.Logger
}

const profilesSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	is_local   INTEGER NOT NULL DEFAULT 1,
	is_shared  INTEGER NOT NULL DEFAULT 0,
	updated_at TEXT NOT NULL,
	body       BLOB NOT NULL
);`

// OpenDB opens the application SQLite database at the given path and
// prepares it for the stores in this package.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite serializes writes; a single connection avoids lock errors
	// and keeps in-memory databases coherent.
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewProfileStore creates a profile store over an open database,
// creating the schema if needed.
func NewProfileStore(db *sql.DB, logger common.Logger) (*ProfileStore, error) {
	if logger == nil {
		logger = common.NopLogger
	}
	if _, err := db.Exec(profilesSchema); err != nil {
		return nil, fmt.Errorf("failed to create profiles schema: %w", err)
	}
	return &ProfileStore{db: db, logger: logger}, nil
}

// Save upserts a built profile. isLocal tags the origin of the profile,
// remotelyShared marks it for remote sharing.
func (s *ProfileStore) Save(ctx context.Context, p *profile.Profile, isLocal, remotelyShared bool) error {
	body, err := encodeProfile(p)
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, name, is_local, is_shared, updated_at, body)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			is_local = excluded.is_local,
			is_shared = excluded.is_shared,
			updated_at = excluded.updated_at,
			body = excluded.body`,
		p.ID().String(), p.Name(), boolToInt(isLocal), boolToInt(remotelyShared),
		time.Now().UTC().Format(time.RFC3339), body)
	if err != nil {
		return common.WrapError(err, "failed to save profile")
	}

	s.logger.Debug("Saved profile %s (%s)", p.ID(), p.Name())
	return nil
}

// Profile loads a profile by id. Returns common.ErrProfileNotFound when
// the id is unknown.
func (s *ProfileStore) Profile(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM profiles WHERE id = ?`, id.String()).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrProfileNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "failed to load profile")
	}
	return decodeProfile(id, body)
}

// List returns all stored profiles sorted by name.
func (s *ProfileStore) List(ctx context.Context) ([]ProfileInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, is_local, is_shared, updated_at
		FROM profiles ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, common.WrapError(err, "failed to list profiles")
	}
	defer rows.Close()

	var out []ProfileInfo
	for rows.Next() {
		var (
			rawID     string
			info      ProfileInfo
			isLocal   int
			isShared  int
			updatedAt string
		)
		if err := rows.Scan(&rawID, &info.Name, &isLocal, &isShared, &updatedAt); err != nil {
			return nil, common.WrapError(err, "failed to scan profile row")
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("invalid profile id %q: %w", rawID, err)
		}
		info.ID = id
		info.IsLocal = isLocal != 0
		info.RemotelyShared = isShared != 0
		if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
			info.UpdatedAt = t
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// Delete removes a profile by id. Returns common.ErrProfileNotFound when
// the id is unknown.
func (s *ProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM profiles WHERE id = ?`, id.String())
	if err != nil {
		return common.WrapError(err, "failed to delete profile")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return common.WrapError(err, "failed to delete profile")
	}
	if affected == 0 {
		return common.ErrProfileNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
