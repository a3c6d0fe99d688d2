package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UserRepo handles database operations for users and clients
type UserRepo struct {
	db *DB
}

var _ UserRepository = (*UserRepo)(nil)

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a user together with its client row. The user id doubles
// as the client id.
func (r *UserRepo) Create(user *User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR IGNORE INTO clients (id, created_at) VALUES (?, ?)
	`, user.ID, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to ensure client: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, user.ID, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user: %w", err)
	}

	return nil
}

func (r *UserRepo) GetByUsername(username string) (*User, error) {
	var user User
	err := r.db.QueryRow(`
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = ?
	`, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *UserRepo) EnsureClient(clientID string) error {
	_, err := r.db.Exec(`
		INSERT OR IGNORE INTO clients (id, created_at) VALUES (?, ?)
	`, clientID, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("failed to ensure client: %w", err)
	}

	return nil
}
