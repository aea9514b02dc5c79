// Package localstore keeps the device-local onboarding state: a completion
// flag and the profile entered during onboarding, each stored whole under a
// fixed key in an embedded SQLite file.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"
)

const (
	OnboardingKey  = "hasOnboarded"
	UserProfileKey = "userProfile"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// Store is a small key-value store of whole blobs.
type Store struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the store at path. ":memory:" gives a
// private in-memory store.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	// One connection keeps ":memory:" a single database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create local store schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value under key and whether it was present.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) set(ctx context.Context, tx *sqlx.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

func (s *Store) transaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			logger.Warn("Failed to roll back local store transaction", "error", rerr)
		}
		return err
	}
	return tx.Commit()
}

// Status reports whether onboarding has completed and the stored profile,
// if any. An unreadable profile is logged and reported as absent.
func (s *Store) Status(ctx context.Context) (bool, *domain.OnboardingProfile, error) {
	flag, _, err := s.Get(ctx, OnboardingKey)
	if err != nil {
		return false, nil, err
	}
	profile, err := s.LoadProfile(ctx)
	if err != nil {
		logger.Warn("Ignoring unreadable user profile", "error", err)
		profile = nil
	}
	return flag == "true", profile, nil
}

// CompleteOnboarding validates profile, then stores it and sets the flag.
func (s *Store) CompleteOnboarding(ctx context.Context, profile domain.OnboardingProfile) error {
	if err := ValidateProfile(profile); err != nil {
		return err
	}
	blob, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.transaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.set(ctx, tx, OnboardingKey, "true"); err != nil {
			return err
		}
		return s.set(ctx, tx, UserProfileKey, string(blob))
	})
}

// ResetOnboarding removes both the flag and the profile.
func (s *Store) ResetOnboarding(ctx context.Context) error {
	return s.transaction(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key IN (?, ?)`, OnboardingKey, UserProfileKey)
		return err
	})
}

// LoadProfile returns the stored profile, or nil when there is none.
func (s *Store) LoadProfile(ctx context.Context) (*domain.OnboardingProfile, error) {
	blob, ok, err := s.Get(ctx, UserProfileKey)
	if err != nil || !ok {
		return nil, err
	}
	var profile domain.OnboardingProfile
	if err := json.Unmarshal([]byte(blob), &profile); err != nil {
		return nil, fmt.Errorf("failed to decode user profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile merges patch into the stored profile and saves the result.
// It fails with domain.ErrNoProfile when nothing is stored yet.
func (s *Store) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (*domain.OnboardingProfile, error) {
	current, err := s.LoadProfile(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNoProfile
	}
	updated := patch.Apply(*current)
	blob, err := json.Marshal(updated)
	if err != nil {
		return nil, err
	}
	err = s.transaction(ctx, func(tx *sqlx.Tx) error {
		return s.set(ctx, tx, UserProfileKey, string(blob))
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
