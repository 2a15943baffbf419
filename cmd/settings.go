package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/anchorageoss/visualsign-neoreview/settings"
)

// SettingsCommand creates the settings commands
func SettingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Show or change the review settings",
		Commands: []*cli.Command{
			settingsShowCommand(),
			settingsSetCommand(),
		},
	}
}

func settingsShowCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the current settings",
		Flags: []cli.Flag{
			settingsFileFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output in JSON format",
			},
		},
		Action: runSettingsShowCommand,
	}
}

func runSettingsShowCommand(ctx context.Context, cmd *cli.Command) error {
	_, s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	return printSettings(cmd, s)
}

func settingsSetCommand() *cli.Command {
	return &cli.Command{
		Name:  "set",
		Usage: "Change settings; flags that are not given keep their value",
		Flags: []cli.Flag{
			settingsFileFlag(),
			&cli.BoolFlag{
				Name:  "allow-contract-scripts",
				Usage: "Allow signing transactions that run arbitrary contract scripts",
			},
			&cli.BoolFlag{
				Name:  "show-script-hash",
				Usage: "Show the script hash during review",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output in JSON format",
			},
		},
		Action: runSettingsSetCommand,
	}
}

func runSettingsSetCommand(ctx context.Context, cmd *cli.Command) error {
	store, err := settings.NewFileStore(cmd.String("settings-file"))
	if err != nil {
		return err
	}

	s, err := store.Update(func(s *settings.Settings) {
		if cmd.IsSet("allow-contract-scripts") {
			s.AllowContractScripts = cmd.Bool("allow-contract-scripts")
		}
		if cmd.IsSet("show-script-hash") {
			s.ShowScriptHash = cmd.Bool("show-script-hash")
		}
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stderr(cmd), "✓ Settings saved to %s\n", store.Path)
	return printSettings(cmd, s)
}

func printSettings(cmd *cli.Command, s settings.Settings) error {
	out := stdout(cmd)
	if cmd.Bool("json") {
		jsonBytes, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		fmt.Fprintln(out, string(jsonBytes))
		return nil
	}

	showHash := "Hidden"
	if s.ShowScriptHash {
		showHash = "Shown"
	}
	fmt.Fprintf(out, "Contract scripts: %s\n", s.ContractScriptsLabel())
	fmt.Fprintf(out, "Script hash: %s\n", showHash)
	return nil
}
