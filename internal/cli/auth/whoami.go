package auth

import (
	"fmt"

	"github.com/julianstephens/remindme/internal/cli"
)

type WhoamiCmd struct {
	ShowID bool `help:"Show the user ID." name:"show-id"`
}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Store.CurrentUser()
	if err != nil {
		return err
	}
	if user == nil {
		fmt.Println("Not signed in")
		return nil
	}

	if c.ShowID {
		fmt.Printf("%s (ID: %s)\n", user.Email, user.ID)
	} else {
		fmt.Println(user.Email)
	}
	return nil
}
