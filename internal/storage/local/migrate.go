package local

import (
	"fmt"
	"sort"

	"github.com/julianstephens/remindme/internal/models"
)

func (s *Store) AllUsers() ([]models.User, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	users := make([]models.User, 0, len(s.doc.Users))
	for _, rec := range s.doc.Users {
		users = append(users, models.User{
			ID:           rec.ID,
			Email:        rec.Email,
			PasswordHash: []byte(rec.PasswordHash),
			CreatedAt:    rec.CreatedAt,
		})
	}

	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

func (s *Store) AllReminders() ([]models.Reminder, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	userIDs := make([]string, 0, len(s.doc.Reminders))
	for id := range s.doc.Reminders {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	var reminders []models.Reminder
	for _, id := range userIDs {
		// Each per-user collection is already newest-first
		reminders = append(reminders, s.doc.Reminders[id]...)
	}
	return reminders, nil
}

func (s *Store) ImportUser(u models.User) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.doc.Users[u.Email] = userRecord{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: string(u.PasswordHash),
		CreatedAt:    u.CreatedAt,
	}
	if _, ok := s.doc.Reminders[u.ID]; !ok {
		s.doc.Reminders[u.ID] = []models.Reminder{}
	}
	return s.save()
}

func (s *Store) ImportReminder(r models.Reminder) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}

	// Appending preserves newest-first order when the source emits it
	s.doc.Reminders[r.UserID] = append(s.doc.Reminders[r.UserID], r)
	return s.save()
}
