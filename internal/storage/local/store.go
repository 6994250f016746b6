// Package local implements the on-device JSON store. The entire store is one
// document rewritten on every mutation, which is acceptable for the expected
// collection sizes (a single user's personal reminders). There is no
// cross-process locking: two concurrent writers will clobber each other with
// a full read/rewrite, so the store assumes a single client at a time.
package local

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/remindme/internal/models"
	"github.com/julianstephens/remindme/internal/storage"
	"github.com/julianstephens/remindme/internal/utils"
	"github.com/julianstephens/remindme/internal/validation"
)

// document is the serialized layout of the store file. Users are keyed by
// email, reminders by owning user id (newest first). The user/session
// pointers hold the currently authenticated principal.
type document struct {
	Version   int                          `json:"version"`
	Users     map[string]userRecord        `json:"users"`
	User      *models.User                 `json:"user,omitempty"`
	Session   *models.Session              `json:"session,omitempty"`
	Reminders map[string][]models.Reminder `json:"reminders"`
}

// userRecord carries the password hash, which models.User deliberately
// refuses to serialize.
type userRecord struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	CreatedAt    string `json:"created_at"`
}

type Store struct {
	path string
	doc  *document
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &document{
		Version:   1,
		Users:     make(map[string]userRecord),
		Reminders: make(map[string][]models.Reminder),
	}

	return s.save()
}

func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'remindme init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.doc = &document{}
	if err := json.Unmarshal(data, s.doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.doc.Users == nil {
		s.doc.Users = make(map[string]userRecord)
	}
	if s.doc.Reminders == nil {
		s.doc.Reminders = make(map[string][]models.Reminder)
	}

	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *Store) SignUp(email, password string) (models.Session, error) {
	if s.doc == nil {
		return models.Session{}, fmt.Errorf("storage not loaded")
	}

	if _, ok := s.doc.Users[email]; ok {
		return models.Session{}, storage.ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.NewString()
	s.doc.Users[email] = userRecord{
		ID:           userID,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    utils.NowTimestamp(),
	}

	// Create the user's reminder collection up front
	s.doc.Reminders[userID] = []models.Reminder{}

	if err := s.save(); err != nil {
		return models.Session{}, err
	}

	// Auto sign-in after registration
	return s.SignIn(email, password)
}

func (s *Store) SignIn(email, password string) (models.Session, error) {
	if s.doc == nil {
		return models.Session{}, fmt.Errorf("storage not loaded")
	}

	rec, ok := s.doc.Users[email]
	if !ok {
		return models.Session{}, storage.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return models.Session{}, storage.ErrInvalidCredentials
	}

	token, err := storage.NewAccessToken()
	if err != nil {
		return models.Session{}, err
	}

	user := models.User{
		ID:        rec.ID,
		Email:     rec.Email,
		CreatedAt: rec.CreatedAt,
	}
	session := models.Session{
		AccessToken: token,
		User:        user,
	}

	// Persist the current user and session pointers
	s.doc.User = &user
	s.doc.Session = &session
	if err := s.save(); err != nil {
		return models.Session{}, err
	}

	return session, nil
}

func (s *Store) SignOut() error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}

	// Clearing an absent session is fine
	s.doc.User = nil
	s.doc.Session = nil
	return s.save()
}

func (s *Store) CurrentUser() (*models.User, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return s.doc.User, nil
}

func (s *Store) CurrentSession() (*models.Session, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return s.doc.Session, nil
}

func (s *Store) ListReminders(userID string) ([]models.Reminder, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	reminders := s.doc.Reminders[userID]
	out := make([]models.Reminder, len(reminders))
	copy(out, reminders)
	return out, nil
}

func (s *Store) CreateReminder(r models.Reminder) (models.Reminder, error) {
	if s.doc == nil {
		return models.Reminder{}, fmt.Errorf("storage not loaded")
	}

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

	// Prepend so the collection stays newest-first
	s.doc.Reminders[r.UserID] = append([]models.Reminder{r}, s.doc.Reminders[r.UserID]...)
	if err := s.save(); err != nil {
		return models.Reminder{}, err
	}

	return r, nil
}

func (s *Store) UpdateReminder(id string, upd models.ReminderUpdate) (models.Reminder, error) {
	if s.doc == nil {
		return models.Reminder{}, fmt.Errorf("storage not loaded")
	}

	if s.doc.Session == nil {
		return models.Reminder{}, storage.ErrNotAuthenticated
	}
	userID := s.doc.Session.User.ID

	reminders := s.doc.Reminders[userID]
	for i := range reminders {
		if reminders[i].ID != id {
			continue
		}

		upd.Apply(&reminders[i])
		reminders[i].UpdatedAt = utils.NowTimestamp()
		s.doc.Reminders[userID] = reminders
		if err := s.save(); err != nil {
			return models.Reminder{}, err
		}
		return reminders[i], nil
	}

	return models.Reminder{}, storage.ErrNotFound
}

func (s *Store) DeleteReminder(id string) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}

	if s.doc.User == nil {
		return storage.ErrNotAuthenticated
	}
	userID := s.doc.User.ID

	reminders := s.doc.Reminders[userID]
	kept := reminders[:0]
	for _, r := range reminders {
		if r.ID != id {
			kept = append(kept, r)
		}
	}

	// Deleting an id that is already gone is a no-op
	s.doc.Reminders[userID] = kept
	return s.save()
}

func (s *Store) GetConfigPath() string {
	return s.path
}
