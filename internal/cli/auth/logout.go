package auth

import (
	"fmt"

	"github.com/julianstephens/remindme/internal/cli"
)

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.SignOut(); err != nil {
		return err
	}

	fmt.Println("Signed out")
	return nil
}
