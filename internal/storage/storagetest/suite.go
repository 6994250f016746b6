// Package storagetest holds a conformance suite run against every storage
// backend: the adapter contract is only useful if the backends are
// behaviorally interchangeable.
package storagetest

import (
	"errors"
	"testing"

	"github.com/julianstephens/remindme/internal/models"
	"github.com/julianstephens/remindme/internal/storage"
)

// Run exercises the Provider contract against a backend. open must return a
// freshly initialized, loaded, empty store.
func Run(t *testing.T, open func(t *testing.T) storage.Provider) {
	t.Run("SignUpSignsIn", func(t *testing.T) {
		store := open(t)

		session, err := store.SignUp("ada@example.com", "correct horse")
		if err != nil {
			t.Fatalf("SignUp failed: %v", err)
		}
		if session.AccessToken == "" {
			t.Error("expected a non-empty access token")
		}
		if session.User.Email != "ada@example.com" {
			t.Errorf("session user email = %q, want ada@example.com", session.User.Email)
		}
		if session.User.ID == "" {
			t.Error("expected an assigned user id")
		}

		user, err := store.CurrentUser()
		if err != nil {
			t.Fatalf("CurrentUser failed: %v", err)
		}
		if user == nil || user.Email != "ada@example.com" {
			t.Errorf("CurrentUser = %+v, want ada@example.com", user)
		}

		current, err := store.CurrentSession()
		if err != nil {
			t.Fatalf("CurrentSession failed: %v", err)
		}
		if current == nil || current.AccessToken != session.AccessToken {
			t.Error("CurrentSession does not match the session returned by SignUp")
		}
	})

	t.Run("SignUpDuplicateEmail", func(t *testing.T) {
		store := open(t)

		if _, err := store.SignUp("ada@example.com", "correct horse"); err != nil {
			t.Fatalf("SignUp failed: %v", err)
		}
		_, err := store.SignUp("ada@example.com", "another pass")
		if !errors.Is(err, storage.ErrAlreadyExists) {
			t.Errorf("duplicate SignUp error = %v, want ErrAlreadyExists", err)
		}
	})

	t.Run("SignInBadCredentials", func(t *testing.T) {
		store := open(t)

		if _, err := store.SignUp("ada@example.com", "correct horse"); err != nil {
			t.Fatalf("SignUp failed: %v", err)
		}

		if _, err := store.SignIn("ada@example.com", "wrong"); !errors.Is(err, storage.ErrInvalidCredentials) {
			t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
		}
		if _, err := store.SignIn("nobody@example.com", "correct horse"); !errors.Is(err, storage.ErrInvalidCredentials) {
			t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("SignOutClearsSession", func(t *testing.T) {
		store := open(t)

		if _, err := store.SignUp("ada@example.com", "correct horse"); err != nil {
			t.Fatalf("SignUp failed: %v", err)
		}
		if err := store.SignOut(); err != nil {
			t.Fatalf("SignOut failed: %v", err)
		}

		user, err := store.CurrentUser()
		if err != nil {
			t.Fatalf("CurrentUser failed: %v", err)
		}
		if user != nil {
			t.Errorf("CurrentUser after SignOut = %+v, want nil", user)
		}
		session, err := store.CurrentSession()
		if err != nil {
			t.Fatalf("CurrentSession failed: %v", err)
		}
		if session != nil {
			t.Errorf("CurrentSession after SignOut = %+v, want nil", session)
		}

		// Signing out with no session is not an error
		if err := store.SignOut(); err != nil {
			t.Errorf("second SignOut failed: %v", err)
		}
	})

	t.Run("CreateRoundTrip", func(t *testing.T) {
		store := open(t)
		user := mustSignUp(t, store, "ada@example.com")

		created, err := store.CreateReminder(models.Reminder{
			UserID:      user.ID,
			Title:       "Buy milk",
			Description: "2 liters",
			RemindAt:    "2030-01-02T09:00:00Z",
			Priority:    models.PriorityHigh,
		})
		if err != nil {
			t.Fatalf("CreateReminder failed: %v", err)
		}
		if created.ID == "" {
			t.Error("expected an assigned reminder id")
		}
		if created.CreatedAt == "" || created.UpdatedAt == "" {
			t.Error("expected assigned timestamps")
		}
		if created.Completed {
			t.Error("new reminder should not be completed")
		}

		list, err := store.ListReminders(user.ID)
		if err != nil {
			t.Fatalf("ListReminders failed: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("got %d reminders, want 1", len(list))
		}
		got := list[0]
		if got.ID != created.ID || got.Title != "Buy milk" || got.Description != "2 liters" ||
			got.RemindAt != "2030-01-02T09:00:00Z" || got.Priority != models.PriorityHigh {
			t.Errorf("listed reminder does not match created one: %+v", got)
		}
	})

	t.Run("CreateDefaultsPriority", func(t *testing.T) {
		store := open(t)
		user := mustSignUp(t, store, "ada@example.com")

		created, err := store.CreateReminder(models.Reminder{
			UserID:   user.ID,
			Title:    "No priority set",
			RemindAt: "2030-01-02T09:00:00Z",
		})
		if err != nil {
			t.Fatalf("CreateReminder failed: %v", err)
		}
		if created.Priority != models.PriorityMedium {
			t.Errorf("default priority = %q, want medium", created.Priority)
		}
	})

	t.Run("CreateRejectsInvalid", func(t *testing.T) {
		store := open(t)
		user := mustSignUp(t, store, "ada@example.com")

		if _, err := store.CreateReminder(models.Reminder{
			UserID:   user.ID,
			Title:    "",
			RemindAt: "2030-01-02T09:00:00Z",
		}); err == nil {
			t.Error("expected error for empty title")
		}
		if _, err := store.CreateReminder(models.Reminder{
			UserID:   user.ID,
			Title:    "Bad time",
			RemindAt: "tomorrow",
		}); err == nil {
			t.Error("expected error for unparseable remind_at")
		}
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		store := open(t)
		user := mustSignUp(t, store, "ada@example.com")

		for _, title := range []string{"first", "second", "third"} {
			if _, err := store.CreateReminder(models.Reminder{
				UserID:   user.ID,
				Title:    title,
				RemindAt: "2030-01-02T09:00:00Z",
			}); err != nil {
				t.Fatalf("CreateReminder(%s) failed: %v", title, err)
			}
		}

		list, err := store.ListReminders(user.ID)
		if err != nil {
			t.Fatalf("ListReminders failed: %v", err)
		}
		want := []string{"third", "second", "first"}
		if len(list) != len(want) {
			t.Fatalf("got %d reminders, want %d", len(list), len(want))
		}
		for i, title := range want {
			if list[i].Title != title {
				t.Errorf("list[%d].Title = %q, want %q", i, list[i].Title, title)
			}
		}
	})

	t.Run("ListEmpty", func(t *testing.T) {
		store := open(t)
		user := mustSignUp(t, store, "ada@example.com")

		list, err := store.ListReminders(user.ID)
		if err != nil {
			t.Fatalf("ListReminders failed: %v", err)
		}
		if len(list) != 0 {
			t.Errorf("got %d reminders, want 0", len(list))
		}
	})

	t.Run("UpdateMergesSetFieldsOnly", func(t *testing.T) {
		store := open(t)
		user := mustSignUp(t, store, "ada@example.com")

		created, err := store.CreateReminder(models.Reminder{
			UserID:      user.ID,
			Title:       "Original",
			Description: "keep me",
			RemindAt:    "2030-01-02T09:00:00Z",
			Priority:    models.PriorityLow,
		})
		if err != nil {
			t.Fatalf("CreateReminder failed: %v", err)
		}

		newTitle := "Renamed"
		done := true
		updated, err := store.UpdateReminder(created.ID, models.ReminderUpdate{
			Title:     &newTitle,
			Completed: &done,
		})
		if err != nil {
			t.Fatalf("UpdateReminder failed: %v", err)
		}

		if updated.Title != "Renamed" || !updated.Completed {
			t.Errorf("update not applied: %+v", updated)
		}
		if updated.Description != "keep me" || updated.RemindAt != "2030-01-02T09:00:00Z" || updated.Priority != models.PriorityLow {
			t.Errorf("unset fields were touched: %+v", updated)
		}
		if updated.CreatedAt != created.CreatedAt {
			t.Error("created_at must not change on update")
		}
		if updated.UpdatedAt == created.UpdatedAt {
			t.Error("updated_at should be restamped on update")
		}
	})

	t.Run("UpdateUnknownID", func(t *testing.T) {
		store := open(t)
		mustSignUp(t, store, "ada@example.com")

		title := "whatever"
		_, err := store.UpdateReminder("no-such-id", models.ReminderUpdate{Title: &title})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("update of unknown id error = %v, want ErrNotFound", err)
		}
	})

	t.Run("UpdateRequiresSession", func(t *testing.T) {
		store := open(t)
		user := mustSignUp(t, store, "ada@example.com")

		created, err := store.CreateReminder(models.Reminder{
			UserID:   user.ID,
			Title:    "Orphaned",
			RemindAt: "2030-01-02T09:00:00Z",
		})
		if err != nil {
			t.Fatalf("CreateReminder failed: %v", err)
		}
		if err := store.SignOut(); err != nil {
			t.Fatalf("SignOut failed: %v", err)
		}

		title := "nope"
		_, err = store.UpdateReminder(created.ID, models.ReminderUpdate{Title: &title})
		if !errors.Is(err, storage.ErrNotAuthenticated) {
			t.Errorf("unauthenticated update error = %v, want ErrNotAuthenticated", err)
		}
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		store := open(t)
		user := mustSignUp(t, store, "ada@example.com")

		created, err := store.CreateReminder(models.Reminder{
			UserID:   user.ID,
			Title:    "Doomed",
			RemindAt: "2030-01-02T09:00:00Z",
		})
		if err != nil {
			t.Fatalf("CreateReminder failed: %v", err)
		}

		if err := store.DeleteReminder(created.ID); err != nil {
			t.Fatalf("DeleteReminder failed: %v", err)
		}
		list, err := store.ListReminders(user.ID)
		if err != nil {
			t.Fatalf("ListReminders failed: %v", err)
		}
		if len(list) != 0 {
			t.Errorf("got %d reminders after delete, want 0", len(list))
		}

		// Deleting again is a no-op, not an error
		if err := store.DeleteReminder(created.ID); err != nil {
			t.Errorf("second DeleteReminder failed: %v", err)
		}
		if err := store.DeleteReminder("never-existed"); err != nil {
			t.Errorf("DeleteReminder of unknown id failed: %v", err)
		}
	})

	t.Run("UserIsolation", func(t *testing.T) {
		store := open(t)

		ada := mustSignUp(t, store, "ada@example.com")
		adaReminder, err := store.CreateReminder(models.Reminder{
			UserID:   ada.ID,
			Title:    "Ada's secret",
			RemindAt: "2030-01-02T09:00:00Z",
		})
		if err != nil {
			t.Fatalf("CreateReminder failed: %v", err)
		}

		grace := mustSignUp(t, store, "grace@example.com")
		if _, err := store.CreateReminder(models.Reminder{
			UserID:   grace.ID,
			Title:    "Grace's note",
			RemindAt: "2030-01-02T09:00:00Z",
		}); err != nil {
			t.Fatalf("CreateReminder failed: %v", err)
		}

		list, err := store.ListReminders(grace.ID)
		if err != nil {
			t.Fatalf("ListReminders failed: %v", err)
		}
		if len(list) != 1 || list[0].Title != "Grace's note" {
			t.Errorf("grace sees %+v, want only her own reminder", list)
		}

		// Grace is the active session; she cannot touch Ada's record
		title := "hijacked"
		if _, err := store.UpdateReminder(adaReminder.ID, models.ReminderUpdate{Title: &title}); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("cross-user update error = %v, want ErrNotFound", err)
		}
		if err := store.DeleteReminder(adaReminder.ID); err != nil {
			t.Errorf("cross-user delete should be a no-op, got %v", err)
		}
		adaList, err := store.ListReminders(ada.ID)
		if err != nil {
			t.Fatalf("ListReminders failed: %v", err)
		}
		if len(adaList) != 1 {
			t.Errorf("ada's reminder was affected by grace's delete")
		}
	})

	t.Run("SignupCreateCompleteScenario", func(t *testing.T) {
		store := open(t)
		user := mustSignUp(t, store, "ada@example.com")

		created, err := store.CreateReminder(models.Reminder{
			UserID:   user.ID,
			Title:    "Water the plants",
			RemindAt: "2030-06-01T08:00:00Z",
		})
		if err != nil {
			t.Fatalf("CreateReminder failed: %v", err)
		}

		done := true
		if _, err := store.UpdateReminder(created.ID, models.ReminderUpdate{Completed: &done}); err != nil {
			t.Fatalf("UpdateReminder failed: %v", err)
		}

		list, err := store.ListReminders(user.ID)
		if err != nil {
			t.Fatalf("ListReminders failed: %v", err)
		}
		if len(list) != 1 || !list[0].Completed {
			t.Errorf("scenario end state = %+v, want one completed reminder", list)
		}
	})

	t.Run("MigrationExport", func(t *testing.T) {
		store := open(t)
		user := mustSignUp(t, store, "ada@example.com")
		if _, err := store.CreateReminder(models.Reminder{
			UserID:   user.ID,
			Title:    "Exported",
			RemindAt: "2030-01-02T09:00:00Z",
		}); err != nil {
			t.Fatalf("CreateReminder failed: %v", err)
		}

		users, err := store.AllUsers()
		if err != nil {
			t.Fatalf("AllUsers failed: %v", err)
		}
		if len(users) != 1 || users[0].Email != "ada@example.com" {
			t.Errorf("AllUsers = %+v, want ada@example.com", users)
		}

		reminders, err := store.AllReminders()
		if err != nil {
			t.Fatalf("AllReminders failed: %v", err)
		}
		if len(reminders) != 1 || reminders[0].Title != "Exported" {
			t.Errorf("AllReminders = %+v, want the exported reminder", reminders)
		}
	})

	t.Run("MigrationImportPreservesRecords", func(t *testing.T) {
		store := open(t)

		if err := store.ImportUser(models.User{
			ID:        "imported-user",
			Email:     "import@example.com",
			CreatedAt: "2020-01-01T00:00:00Z",
		}); err != nil {
			t.Fatalf("ImportUser failed: %v", err)
		}
		if err := store.ImportReminder(models.Reminder{
			ID:        "imported-reminder",
			UserID:    "imported-user",
			Title:     "Carried over",
			RemindAt:  "2030-01-02T09:00:00Z",
			Priority:  models.PriorityLow,
			CreatedAt: "2020-01-01T00:00:00Z",
			UpdatedAt: "2020-01-01T00:00:00Z",
		}); err != nil {
			t.Fatalf("ImportReminder failed: %v", err)
		}

		list, err := store.ListReminders("imported-user")
		if err != nil {
			t.Fatalf("ListReminders failed: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("got %d reminders, want 1", len(list))
		}
		got := list[0]
		if got.ID != "imported-reminder" || got.CreatedAt != "2020-01-01T00:00:00Z" {
			t.Errorf("import did not preserve id/timestamps: %+v", got)
		}
	})
}

func mustSignUp(t *testing.T, store storage.Provider, email string) models.User {
	t.Helper()
	session, err := store.SignUp(email, "correct horse")
	if err != nil {
		t.Fatalf("SignUp(%s) failed: %v", email, err)
	}
	return session.User
}
