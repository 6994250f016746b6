package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/remindme/internal/models"
	"github.com/julianstephens/remindme/internal/storage"
	"github.com/julianstephens/remindme/internal/utils"
)

func (s *Store) SignUp(email, password string) (models.Session, error) {
	var exists int
	err := s.db.QueryRow("SELECT count(*) FROM users WHERE email = ?", email).Scan(&exists)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists > 0 {
		return models.Session{}, storage.ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
		uuid.NewString(), email, string(hash), utils.NowTimestamp(),
	)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to insert user: %w", err)
	}

	// Auto sign-in after registration
	return s.SignIn(email, password)
}

func (s *Store) SignIn(email, password string) (models.Session, error) {
	var user models.User
	var hash string
	err := s.db.QueryRow(
		"SELECT id, email, password_hash, created_at FROM users WHERE email = ?", email,
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
		"INSERT INTO sessions (token, user_id, created_at) VALUES (?, ?, ?)",
		token, user.ID, utils.NowTimestamp(),
	)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	if err := storage.WriteSessionToken(s.sessionPath(), token); err != nil {
		return models.Session{}, err
	}

	return models.Session{AccessToken: token, User: user}, nil
}

func (s *Store) SignOut() error {
	token, err := storage.ReadSessionToken(s.sessionPath())
	if err != nil {
		return err
	}
	if token != "" {
		// Best effort: a stale token may already be gone server-side
		if _, err := s.db.Exec("DELETE FROM sessions WHERE token = ?", token); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}
	return storage.ClearSessionToken(s.sessionPath())
}

func (s *Store) CurrentSession() (*models.Session, error) {
	token, err := storage.ReadSessionToken(s.sessionPath())
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
		WHERE s.token = ?`, token,
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
