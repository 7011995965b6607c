package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/dkoroteev/herocards-backend/internal/models"
	"github.com/dkoroteev/herocards-backend/pkg/utils"
)

var (
	// ErrEmailTaken signals a registration against an already used email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound signals a lookup for an absent user.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so a caller cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

// uniqueViolation is the Postgres error code for a unique constraint breach
const uniqueViolation = "23505"

// PaginatedUsers is one page of the user listing.
type PaginatedUsers struct {
	Users      []models.User `json:"users"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
}

// CreateUser hashes the password and persists a new user. The unique
// index on email is the source of truth for duplicates; a violation is
// surfaced as ErrEmailTaken, never as a raw driver error.
func CreateUser(ctx context.Context, db *sql.DB, email, password string) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Email: email, PasswordHash: hashedPassword}
	err = db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id
	`, email, hashedPassword).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// GetUserByEmail looks a user up by email
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	err := db.QueryRowContext(ctx, `
		SELECT id, email, password_hash FROM users WHERE email = $1
	`, email).Scan(&user.ID, &user.Email, &user.PasswordHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetUserByID looks a user up by id
func GetUserByID(ctx context.Context, db *sql.DB, id int64) (*models.User, error) {
	user := &models.User{}
	err := db.QueryRowContext(ctx, `
		SELECT id, email, password_hash FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Email, &user.PasswordHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// VerifyCredentials checks an email/password pair. An unknown email and
// a wrong password both return ErrInvalidCredentials.
func VerifyCredentials(ctx context.Context, db *sql.DB, email, password string) (*models.User, error) {
	user, err := GetUserByEmail(ctx, db, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ListUsers returns one page of users ordered by id
func ListUsers(ctx context.Context, db *sql.DB, skip, limit int) (*PaginatedUsers, error) {
	skip, limit = clampPage(skip, limit)

	rows, err := db.QueryContext(ctx, `
		SELECT id, email FROM users ORDER BY id OFFSET $1 LIMIT $2
	`, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, err
	}

	page, totalPages := paginate(total, skip, limit)
	return &PaginatedUsers{
		Users:      users,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}
