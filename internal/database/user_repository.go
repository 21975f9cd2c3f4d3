package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stayvelle/hotel-backend/internal/models"
)

const userColumns = `id, username, name, email, phone, password_hash, roles, is_active,
	is_deleted, created_by, created_at, modified_by, modified_at`

// UserRepository handles staff user database operations
type UserRepository struct {
	db Querier
}

// NewUserRepository creates a new user repository
func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user
func (r *UserRepository) CreateUser(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (
			id, username, name, email, phone, password_hash, roles, is_active,
			created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Username, u.Name, u.Email, u.Phone, u.PasswordHash, u.Roles,
		u.IsActive, u.CreatedBy, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user that has not been deleted, or nil
func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_deleted = FALSE`
	err := r.db.GetContext(ctx, &u, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// ListUsers returns users that have not been deleted, ordered by name
func (r *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE is_deleted = FALSE ORDER BY name ASC`
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser overwrites the editable fields of a user
func (r *UserRepository) UpdateUser(ctx context.Context, u *models.User) error {
	query := `
		UPDATE users SET
			name = $2, email = $3, phone = $4, password_hash = $5, roles = $6,
			is_active = $7, modified_by = $8, modified_at = $9
		WHERE id = $1 AND is_deleted = FALSE
	`
	result, err := r.db.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.Phone, u.PasswordHash, u.Roles,
		u.IsActive, u.ModifiedBy, u.ModifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return expectOneRow(result, "user")
}

// DeleteUser soft-deletes a user. Returns false if the user does not exist.
func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID, actor string) (bool, error) {
	query := `
		UPDATE users SET is_deleted = TRUE, is_active = FALSE, modified_by = $2, modified_at = $3
		WHERE id = $1 AND is_deleted = FALSE
	`
	result, err := r.db.ExecContext(ctx, query, id, actor, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return affected(result)
}
