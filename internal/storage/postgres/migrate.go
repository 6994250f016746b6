package postgres

import (
	"fmt"

	"github.com/julianstephens/remindme/internal/models"
)

func (s *Store) AllUsers() ([]models.User, error) {
	rows, err := s.db.Query("SELECT id, email, password_hash, created_at FROM users ORDER BY email")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var hash string
		if err := rows.Scan(&u.ID, &u.Email, &hash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.PasswordHash = []byte(hash)
		users = append(users, u)
	}

	return users, rows.Err()
}

func (s *Store) AllReminders() ([]models.Reminder, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, description, remind_at, location, priority, completed, created_at, updated_at
		FROM reminders
		ORDER BY user_id, created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		var r models.Reminder
		err := rows.Scan(
			&r.ID, &r.UserID, &r.Title, &r.Description, &r.RemindAt, &r.Location,
			&r.Priority, &r.Completed, &r.CreatedAt, &r.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, r)
	}

	return reminders, rows.Err()
}

func (s *Store) ImportUser(u models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
		email = EXCLUDED.email,
		password_hash = EXCLUDED.password_hash,
		created_at = EXCLUDED.created_at`,
		u.ID, u.Email, string(u.PasswordHash), u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to import user %s: %w", u.ID, err)
	}
	return nil
}

func (s *Store) ImportReminder(r models.Reminder) error {
	_, err := s.db.Exec(`
		INSERT INTO reminders (id, user_id, title, description, remind_at, location, priority, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
		user_id = EXCLUDED.user_id,
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		remind_at = EXCLUDED.remind_at,
		location = EXCLUDED.location,
		priority = EXCLUDED.priority,
		completed = EXCLUDED.completed,
		created_at = EXCLUDED.created_at,
		updated_at = EXCLUDED.updated_at`,
		r.ID, r.UserID, r.Title, r.Description, r.RemindAt, r.Location,
		r.Priority, r.Completed, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to import reminder %s: %w", r.ID, err)
	}
	return nil
}
