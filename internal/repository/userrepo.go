package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"taskdeck/internal/models"
)

// UserRepo persists user profiles. Password accounts carry a bcrypt hash;
// accounts created through Google sign-in have an empty hash and can only
// authenticate through the provider.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) (*UserRepo, error) {
	repo := &UserRepo{db: db}

	if err := repo.createTable(); err != nil {
		return nil, fmt.Errorf("could not initialize users table: %w", err)
	}

	return repo, nil
}

func (r *UserRepo) createTable() error {
	createTableQuery := `CREATE TABLE IF NOT EXISTS users(
		uid TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		photo_url TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'user',
		password_hash TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`
	_, err := r.db.Exec(createTableQuery)
	return err
}

// Create inserts a password account. The uid is assigned here.
func (r *UserRepo) Create(ctx context.Context, email, displayName, passwordHash string) (models.UserProfile, error) {
	user := models.UserProfile{
		UID:         uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
		Role:        models.RoleUser,
	}

	query := `INSERT INTO users (uid, email, display_name, password_hash)
		VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, user.UID, user.Email, user.DisplayName, passwordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		//23505 is postgres unique_violation, here only possible on email
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.UserProfile{}, ErrDuplicateEmail
		}
		return models.UserProfile{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// GetByEmail returns the profile and the stored password hash for a login
// attempt. ErrNotFound when no account exists for the email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (models.UserProfile, string, error) {
	query := `SELECT uid, email, display_name, photo_url, role, password_hash
		FROM users WHERE email = $1`

	var user models.UserProfile
	var hash string
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.UID, &user.Email, &user.DisplayName, &user.PhotoURL, &user.Role, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserProfile{}, "", ErrNotFound
	}
	if err != nil {
		return models.UserProfile{}, "", fmt.Errorf("get user by email: %w", err)
	}

	return user, hash, nil
}

// GetByUID returns the stored profile for a verified session identity.
func (r *UserRepo) GetByUID(ctx context.Context, uid string) (models.UserProfile, error) {
	query := `SELECT uid, email, display_name, photo_url, role
		FROM users WHERE uid = $1`

	var user models.UserProfile
	err := r.db.QueryRowContext(ctx, query, uid).Scan(
		&user.UID, &user.Email, &user.DisplayName, &user.PhotoURL, &user.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("get user by uid: %w", err)
	}

	return user, nil
}

// UpsertOAuth creates or refreshes the profile backing a Google sign-in.
// The display name and photo follow whatever the provider asserts; role and
// uid are stable across sign-ins.
func (r *UserRepo) UpsertOAuth(ctx context.Context, email, displayName, photoURL string) (models.UserProfile, error) {
	query := `INSERT INTO users (uid, email, display_name, photo_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE
			SET display_name = EXCLUDED.display_name, photo_url = EXCLUDED.photo_url
		RETURNING uid, email, display_name, photo_url, role`

	var user models.UserProfile
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), email, displayName, photoURL).Scan(
		&user.UID, &user.Email, &user.DisplayName, &user.PhotoURL, &user.Role)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("upsert oauth user: %w", err)
	}

	return user, nil
}

// UpdateDisplayName changes the one editable profile field.
func (r *UserRepo) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	query := "UPDATE users SET display_name = $1 WHERE uid = $2"
	res, err := r.db.ExecContext(ctx, query, displayName, uid)
	if err != nil {
		return fmt.Errorf("update display name: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
