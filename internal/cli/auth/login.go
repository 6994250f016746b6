package auth

import (
	"fmt"

	"github.com/julianstephens/remindme/internal/cli"
)

type LoginCmd struct {
	Email    string `arg:"" help:"Email address."`
	Password string `short:"p" help:"Account password." required:""`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	session, err := ctx.Store.SignIn(c.Email, c.Password)
	if err != nil {
		return err
	}

	fmt.Printf("Signed in as %s\n", session.User.Email)
	return nil
}
