package reminders

import (
	"fmt"

	"github.com/julianstephens/remindme/internal/cli"
	"github.com/julianstephens/remindme/internal/models"
	"github.com/julianstephens/remindme/internal/validation"
)

type AddCmd struct {
	Title       string  `arg:"" help:"Reminder title."`
	At          string  `short:"a" help:"When the reminder fires (RFC3339, e.g. 2025-01-01T09:00:00Z)." required:""`
	Description string  `short:"d" help:"Optional description."`
	Priority    string  `short:"p" help:"Priority (low|medium|high)." default:"medium"`
	Address     string  `help:"Location address."`
	Lat         float64 `help:"Location latitude."`
	Lng         float64 `help:"Location longitude."`
	PlaceID     string  `help:"Location place ID." name:"place-id"`
}

func (c *AddCmd) Validate() error {
	if err := validation.ValidateTitle(c.Title); err != nil {
		return err
	}
	if err := validation.ValidateRemindAt(c.At); err != nil {
		return fmt.Errorf("invalid --at value: %w", err)
	}
	return validation.ValidatePriority(c.Priority)
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	location := ""
	if c.Address != "" || c.Lat != 0 || c.Lng != 0 {
		loc := models.Location{
			Address: c.Address,
			Lat:     c.Lat,
			Lng:     c.Lng,
			PlaceID: c.PlaceID,
		}
		location, err = loc.Encode()
		if err != nil {
			return fmt.Errorf("failed to encode location: %w", err)
		}
	}

	created, err := ctx.Store.CreateReminder(models.Reminder{
		UserID:      user.ID,
		Title:       c.Title,
		Description: c.Description,
		RemindAt:    c.At,
		Location:    location,
		Priority:    models.Priority(c.Priority),
	})
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}

	fmt.Printf("Added reminder %q for %s (ID: %s)\n", created.Title, cli.FormatRemindAt(created.RemindAt), created.ID)
	return nil
}
