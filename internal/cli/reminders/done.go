package reminders

import (
	"fmt"

	"github.com/julianstephens/remindme/internal/cli"
	"github.com/julianstephens/remindme/internal/models"
)

type DoneCmd struct {
	ID string `arg:"" help:"Reminder ID."`
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	return setCompleted(ctx, c.ID, true)
}

type UndoneCmd struct {
	ID string `arg:"" help:"Reminder ID."`
}

func (c *UndoneCmd) Run(ctx *cli.Context) error {
	return setCompleted(ctx, c.ID, false)
}

func setCompleted(ctx *cli.Context, id string, completed bool) error {
	updated, err := ctx.Store.UpdateReminder(id, models.ReminderUpdate{Completed: &completed})
	if err != nil {
		return err
	}

	if completed {
		fmt.Printf("Completed %q\n", updated.Title)
	} else {
		fmt.Printf("Reopened %q\n", updated.Title)
	}
	return nil
}
