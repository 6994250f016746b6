package reminders

import (
	"fmt"

	"github.com/julianstephens/remindme/internal/cli"
	"github.com/julianstephens/remindme/internal/models"
	"github.com/julianstephens/remindme/internal/validation"
)

type EditCmd struct {
	ID          string  `arg:"" help:"Reminder ID."`
	Title       *string `help:"New title."`
	Description *string `short:"d" help:"New description."`
	At          *string `short:"a" help:"New remind-at timestamp (RFC3339)."`
	Priority    *string `short:"p" help:"New priority (low|medium|high)."`
	Location    *string `help:"New location blob (JSON), or empty string to clear."`
}

func (c *EditCmd) Validate() error {
	if c.Title == nil && c.Description == nil && c.At == nil && c.Priority == nil && c.Location == nil {
		return fmt.Errorf("nothing to update: pass at least one field flag")
	}
	if c.Title != nil {
		if err := validation.ValidateTitle(*c.Title); err != nil {
			return err
		}
	}
	if c.At != nil {
		if err := validation.ValidateRemindAt(*c.At); err != nil {
			return fmt.Errorf("invalid --at value: %w", err)
		}
	}
	if c.Priority != nil {
		if err := validation.ValidatePriority(*c.Priority); err != nil {
			return err
		}
	}
	return nil
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	upd := models.ReminderUpdate{
		Title:       c.Title,
		Description: c.Description,
		RemindAt:    c.At,
		Location:    c.Location,
	}
	if c.Priority != nil {
		p := models.Priority(*c.Priority)
		upd.Priority = &p
	}

	updated, err := ctx.Store.UpdateReminder(c.ID, upd)
	if err != nil {
		return err
	}

	fmt.Printf("Updated reminder %q\n", updated.Title)
	return nil
}
