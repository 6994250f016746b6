package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	pq "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/remindme/internal/models"
	"github.com/julianstephens/remindme/internal/storage"
	"github.com/julianstephens/remindme/internal/utils"
)

// uniqueViolation is the PostgreSQL error code for unique constraint failures.
const uniqueViolation = "23505"

func (s *Store) SignUp(email, password string) (models.Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)",
		uuid.NewString(), email, string(hash), utils.NowTimestamp(),
	)
	if err != nil {
		// The unique index on email is the authority on duplicates
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.Session{}, storage.ErrAlreadyExists
		}
		return models.Session{}, fmt.Errorf("failed to insert user: %w", err)
	}

	// Auto sign-in after registration
	return s.SignIn(email, password)
}

func (s *Store) SignIn(email, password string) (models.Session, error) {
	var user models.User
	var hash string
	err := s.db.QueryRow(
		"SELECT id, email, password_hash, created_at FROM users WHERE email = $1", email,
	).Scan(&user.ID, &user.Email, &hash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, storage.ErrInvalidCredentials
		}
		return models.Session{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return models.Session{}, storage.ErrInvalidCredentials
	}

	token, err := storage.NewAccessToken()
	if err != nil {
		return models.Session{}, err
	}

	_, err = s.db.Exec(
		"INSERT INTO sessions (token, user_id, created_at) VALUES ($1, $2, $3)",
		token, user.ID, utils.NowTimestamp(),
	)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	if err := storage.WriteSessionToken(s.sessionPath, token); err != nil {
		return models.Session{}, err
	}

	return models.Session{AccessToken: token, User: user}, nil
}

func (s *Store) SignOut() error {
	token, err := storage.ReadSessionToken(s.sessionPath)
	if err != nil {
		return err
	}
	if token != "" {
		if _, err := s.db.Exec("DELETE FROM sessions WHERE token = $1", token); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}
	return storage.ClearSessionToken(s.sessionPath)
}

func (s *Store) CurrentSession() (*models.Session, error) {
	token, err := storage.ReadSessionToken(s.sessionPath)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	var user models.User
	err = s.db.QueryRow(`
		SELECT u.id, u.email, u.created_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = $1`, token,
	).Scan(&user.ID, &user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Stale pointer: the session row no longer exists
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	return &models.Session{AccessToken: token, User: user}, nil
}

func (s *Store) CurrentUser() (*models.User, error) {
	session, err := s.CurrentSession()
	if err != nil || session == nil {
		return nil, err
	}
	return &session.User, nil
}
