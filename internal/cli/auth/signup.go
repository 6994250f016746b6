package auth

import (
	"fmt"

	"github.com/julianstephens/remindme/internal/cli"
	"github.com/julianstephens/remindme/internal/validation"
)

type SignupCmd struct {
	Email    string `arg:"" help:"Email address to register."`
	Password string `short:"p" help:"Account password." required:""`
}

func (c *SignupCmd) Validate() error {
	if err := validation.ValidateEmail(c.Email); err != nil {
		return err
	}
	return validation.ValidatePassword(c.Password)
}

func (c *SignupCmd) Run(ctx *cli.Context) error {
	session, err := ctx.Store.SignUp(c.Email, c.Password)
	if err != nil {
		return err
	}

	fmt.Printf("Registered %s and signed in\n", session.User.Email)
	return nil
}
