package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/anchorageoss/visualsign-neoreview/review"
)

// ItemsCommand creates the items command
func ItemsCommand() *cli.Command {
	flags := transactionFlags()
	flags = append(flags,
		settingsFileFlag(),
		&cli.BoolFlag{
			Name:  "show-script-hash",
			Usage: "Show the script hash field regardless of the settings",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output in JSON format",
		},
	)

	return &cli.Command{
		Name:   "items",
		Usage:  "Print every review item of a transaction in display order",
		Flags:  flags,
		Action: runItemsCommand,
	}
}

type itemOutput struct {
	Position   int    `json:"position"`
	Coordinate string `json:"coordinate"`
	Title      string `json:"title"`
	Text       string `json:"text"`
}

func runItemsCommand(ctx context.Context, cmd *cli.Command) error {
	tx, err := loadTransaction(cmd)
	if err != nil {
		return err
	}

	_, s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	opts := s.ReviewOptions()
	if cmd.Bool("show-script-hash") {
		opts.ShowScriptHash = true
	}

	src, err := review.NewSource(tx, opts)
	if err != nil {
		return fmt.Errorf("failed to build review items: %w", err)
	}
	items, err := src.Items()
	if err != nil {
		return fmt.Errorf("failed to render review items: %w", err)
	}
	decision := review.Gate(tx, s.AllowContractScripts)

	out := stdout(cmd)
	if cmd.Bool("json") {
		rows := make([]itemOutput, 0, len(items))
		for i, item := range items {
			rows = append(rows, itemOutput{
				Position:   i,
				Coordinate: item.Coordinate.String(),
				Title:      item.Title,
				Text:       item.Text,
			})
		}
		jsonBytes, err := json.MarshalIndent(map[string]interface{}{
			"decision": decision.String(),
			"total":    src.TotalItemCount(),
			"items":    rows,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Fprintln(out, string(jsonBytes))
		return nil
	}

	for i, item := range items {
		fmt.Fprintf(out, "%d/%d %s: %s\n", i+1, len(items), item.Title, item.Text)
	}
	if decision == review.DecisionBlockedByPolicy {
		fmt.Fprintf(stderr(cmd), "⚠ This transaction runs a contract script, which the current settings do not allow\n")
	}
	return nil
}
