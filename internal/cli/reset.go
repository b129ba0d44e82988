package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

type ResetCmd struct {
	Force bool `help:"Skip the confirmation prompt." short:"f"`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if !c.Force {
		fmt.Print("This wipes all cycle history, custom plans and types. Continue? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Store.Reset(); err != nil {
		return err
	}

	fmt.Println("Storage reset to defaults.")
	return nil
}
