package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/remindme/internal/models"
	"github.com/julianstephens/remindme/internal/storage"
	"github.com/julianstephens/remindme/internal/utils"
	"github.com/julianstephens/remindme/internal/validation"
)

func (s *Store) ListReminders(userID string) ([]models.Reminder, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, description, remind_at, location, priority, completed, created_at, updated_at
		FROM reminders WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	reminders := []models.Reminder{}
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

func (s *Store) CreateReminder(r models.Reminder) (models.Reminder, error) {
	if err := validation.ValidateReminder(r); err != nil {
		return models.Reminder{}, err
	}

	now := utils.NowTimestamp()
	r.ID = uuid.NewString()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.Priority == "" {
		r.Priority = models.PriorityMedium
	}

	// Return the inserted row so callers see post-insert values
	err := s.db.QueryRow(`
		INSERT INTO reminders (id, user_id, title, description, remind_at, location, priority, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, user_id, title, description, remind_at, location, priority, completed, created_at, updated_at`,
		r.ID, r.UserID, r.Title, r.Description, r.RemindAt, r.Location,
		r.Priority, r.Completed, r.CreatedAt, r.UpdatedAt,
	).Scan(
		&r.ID, &r.UserID, &r.Title, &r.Description, &r.RemindAt, &r.Location,
		&r.Priority, &r.Completed, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("failed to insert reminder: %w", err)
	}

	return r, nil
}

func (s *Store) UpdateReminder(id string, upd models.ReminderUpdate) (models.Reminder, error) {
	session, err := s.CurrentSession()
	if err != nil {
		return models.Reminder{}, err
	}
	if session == nil {
		return models.Reminder{}, storage.ErrNotAuthenticated
	}

	var r models.Reminder
	err = s.db.QueryRow(`
		SELECT id, user_id, title, description, remind_at, location, priority, completed, created_at, updated_at
		FROM reminders WHERE id = $1 AND user_id = $2`, id, session.User.ID,
	).Scan(
		&r.ID, &r.UserID, &r.Title, &r.Description, &r.RemindAt, &r.Location,
		&r.Priority, &r.Completed, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Reminder{}, storage.ErrNotFound
		}
		return models.Reminder{}, fmt.Errorf("failed to look up reminder: %w", err)
	}

	upd.Apply(&r)
	r.UpdatedAt = utils.NowTimestamp()

	_, err = s.db.Exec(`
		UPDATE reminders
		SET title = $1, description = $2, remind_at = $3, location = $4, priority = $5, completed = $6, updated_at = $7
		WHERE id = $8`,
		r.Title, r.Description, r.RemindAt, r.Location, r.Priority, r.Completed, r.UpdatedAt, r.ID,
	)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("failed to update reminder: %w", err)
	}

	return r, nil
}

func (s *Store) DeleteReminder(id string) error {
	user, err := s.CurrentUser()
	if err != nil {
		return err
	}
	if user == nil {
		return storage.ErrNotAuthenticated
	}

	// Idempotent: deleting an absent id is not an error
	_, err = s.db.Exec("DELETE FROM reminders WHERE id = $1 AND user_id = $2", id, user.ID)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}
