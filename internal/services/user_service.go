package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stayvelle/hotel-backend/internal/apperr"
	"github.com/stayvelle/hotel-backend/internal/database"
	"github.com/stayvelle/hotel-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserService manages staff accounts
type UserService struct {
	users      *database.UserRepository
	bcryptCost int
}

// NewUserService creates a new user service
func NewUserService(db database.DB, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		users:      database.NewUserRepository(db),
		bcryptCost: bcryptCost,
	}
}

// GetUsers lists users that have not been deleted
func (s *UserService) GetUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, appError(err, "Failed to retrieve users")
	}
	return users, nil
}

// GetUserByID returns one user
func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, appError(err, "Failed to retrieve user")
	}
	if user == nil {
		return nil, apperr.NotFound("User %s not found", id)
	}
	return user, nil
}

// CreateUser creates an account with a hashed password.
// Users without roles get the staff role.
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest, actor string) (*models.User, error) {
	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal("Failed to create user", err)
	}

	roles := req.Roles
	if len(roles) == 0 {
		roles = []string{models.RoleStaff}
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(req.Username),
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        req.Phone,
		PasswordHash: hash,
		Roles:        roles,
		IsActive:     true,
		CreatedBy:    actor,
		CreatedAt:    time.Now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Username or email already in use")
		}
		return nil, appError(err, "Failed to create user")
	}
	return user, nil
}

// UpdateUser applies a partial update. A new password is hashed before it is stored.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req *models.UpdateUserRequest, actor string) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Roles != nil {
		user.Roles = req.Roles
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil {
		hash, err := s.hashPassword(*req.Password)
		if err != nil {
			return nil, apperr.Internal("Failed to update user", err)
		}
		user.PasswordHash = hash
	}

	now := time.Now()
	user.ModifiedBy = &actor
	user.ModifiedAt = &now
	if err := s.users.UpdateUser(ctx, user); err != nil {
		switch {
		case database.IsNotFound(err):
			return nil, apperr.NotFound("User %s not found", id)
		case database.IsUniqueViolation(err):
			return nil, apperr.Conflict("Username or email already in use")
		}
		return nil, appError(err, "Failed to update user")
	}
	return user, nil
}

// DeleteUser soft-deletes a user. Returns false if the user does not exist.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID, actor string) (bool, error) {
	deleted, err := s.users.DeleteUser(ctx, id, actor)
	if err != nil {
		return false, appError(err, "Failed to delete user")
	}
	return deleted, nil
}

// CheckPassword reports whether password matches the user's stored hash
func (s *UserService) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
