package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/anchorageoss/visualsign-neoreview/cmd"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "neo-review",
		Usage: "NEO N3 transaction review and signing",
		Commands: []*cli.Command{
			cmd.ReviewCommand(),
			cmd.ItemsCommand(),
			cmd.DecodeCommand(),
			cmd.SettingsCommand(),
			cmd.AddressCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}
