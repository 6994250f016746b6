package reminders

import (
	"fmt"
	"time"

	"github.com/julianstephens/remindme/internal/cli"
	"github.com/julianstephens/remindme/internal/models"
	"github.com/julianstephens/remindme/internal/utils"
)

type ListCmd struct {
	Pending bool `help:"Show only pending reminders."`
	Done    bool `help:"Show only completed reminders."`
	ShowIDs bool `help:"Show reminder IDs." name:"show-ids"`
}

func (c *ListCmd) Validate() error {
	if c.Pending && c.Done {
		return fmt.Errorf("--pending and --done are mutually exclusive")
	}
	return nil
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	reminders, err := ctx.Store.ListReminders(user.ID)
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}
	if len(reminders) == 0 {
		fmt.Println("No reminders found")
		return nil
	}

	fmt.Println("Reminders:")
	for _, r := range reminders {
		if c.Pending && r.Completed {
			continue
		}
		if c.Done && !r.Completed {
			continue
		}

		status := " "
		if r.Completed {
			status = "x"
		}

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", r.ID)
		}

		due := cli.FormatRemindAt(r.RemindAt)
		if t, err := utils.ParseTimestamp(r.RemindAt); err == nil {
			due = fmt.Sprintf("%s, %s", due, utils.RelativeTime(t, time.Now()))
		}

		fmt.Printf("  [%s] %s%s - %s (%s)\n",
			status, r.Title, idStr, due, r.Priority)

		if r.Description != "" {
			fmt.Printf("      %s\n", r.Description)
		}
		if r.Location != "" {
			if loc, err := models.ParseLocation(r.Location); err == nil && loc.Address != "" {
				fmt.Printf("      @ %s\n", loc.Address)
			}
		}
	}

	return nil
}
