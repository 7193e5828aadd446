package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aegisops/aegis-api/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, username, name, role, password string) (models.User, error)
	Authenticate(ctx context.Context, username, password string) (models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, username, name, role, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Name:         name,
		Role:         role,
		PasswordHash: string(hash),
	}
	const query = `
		INSERT INTO users (id, username, name, role, password_hash)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.Name, user.Role, user.PasswordHash); err != nil {
		if isUniqueErr(err) {
			return models.User{}, fmt.Errorf("insert user %s: %w", username, ErrDuplicate)
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *userRepository) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	const query = `
		SELECT id, username, name, role, password_hash
		FROM users
		WHERE username = ?
	`
	var user models.User
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.Name, &user.Role, &user.PasswordHash)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("password mismatch: %w", ErrNotFound)
	}
	return user, nil
}
