package reminders

import (
	"fmt"

	"github.com/julianstephens/remindme/internal/cli"
)

type DeleteCmd struct {
	ID string `arg:"" help:"Reminder ID."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteReminder(c.ID); err != nil {
		return err
	}

	fmt.Println("Deleted")
	return nil
}
