package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ovehbe/710Launcher-sub000/cli"
	"github.com/ovehbe/710Launcher-sub000/cmd"
	"github.com/ovehbe/710Launcher-sub000/errors"
	"github.com/ovehbe/710Launcher-sub000/tui/theme"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	theme.InitColor()
	rootCmd := cmd.NewRootCmd()
	ran, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		// Usage and argument errors carry no code; point at --help for those.
		if errors.GetCode(err) == "" {
			cli.PrintError(ran, err)
		} else {
			verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
			_ = cli.NewErrorHandler(verbose).Handle(err)
		}
		stop()
		os.Exit(1)
	}
}
