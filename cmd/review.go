package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/anchorageoss/visualsign-neoreview/crypto"
	"github.com/anchorageoss/visualsign-neoreview/flow"
	"github.com/anchorageoss/visualsign-neoreview/pkg/simulator"
)

// ReviewCommand creates the review command
func ReviewCommand() *cli.Command {
	flags := transactionFlags()
	flags = append(flags, signingKeyFlags()...)
	flags = append(flags, settingsFileFlag(), eventsFlag(), logLevelFlag())

	return &cli.Command{
		Name:   "review",
		Usage:  "Review a transaction on the device simulator and sign it on approval",
		Flags:  flags,
		Action: runReviewCommand,
	}
}

func runReviewCommand(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.String("log-level"), stderr(cmd))
	if err != nil {
		return err
	}

	tx, err := loadTransaction(cmd)
	if err != nil {
		return err
	}

	path, err := signingPath(cmd)
	if err != nil {
		return err
	}

	_, s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	signer := &crypto.SoftwareSigner{Keys: keyProvider(cmd)}

	driver, err := flow.New(tx, flow.Config{
		Options:              s.ReviewOptions(),
		AllowContractScripts: s.AllowContractScripts,
		Path:                 path,
		Signer:               signer,
		Logger:               logger,
	})
	if err != nil {
		return fmt.Errorf("failed to start review: %w", err)
	}

	result, err := runFlow(ctx, cmd, driver)
	if err != nil {
		return err
	}
	if err := printResult(cmd, result); err != nil {
		return err
	}

	errOut := stderr(cmd)
	fmt.Fprintf(errOut, "\n=== NEO REVIEW SUMMARY ===\n")
	fmt.Fprintf(errOut, "Transaction: %s\n", tx.Hash.Hex())
	fmt.Fprintf(errOut, "Items reviewed: %d\n", driver.Source().TotalItemCount())
	switch result.Outcome {
	case flow.OutcomeApproved:
		fmt.Fprintf(errOut, "✓ Approved and signed with %s\n", path)
	case flow.OutcomeAbortedToSettings:
		fmt.Fprintf(errOut, "⚠ Contract scripts are not allowed. Enable them with: neo-review settings set --allow-contract-scripts\n")
	case flow.OutcomeSignFailed:
		fmt.Fprintf(errOut, "✗ Signing failed\n")
	default:
		fmt.Fprintf(errOut, "✗ Rejected\n")
	}
	return nil
}

// runFlow drives f with the --events script, or with the terminal simulator
// when no script is given
func runFlow(ctx context.Context, cmd *cli.Command, f flow.Flow) (flow.Result, error) {
	script := cmd.String("events")
	if script == "" {
		return simulator.Run(ctx, f, tea.WithOutput(stderr(cmd)))
	}

	events, err := flow.ParseEvents(script)
	if err != nil {
		return flow.Result{}, err
	}
	result, err := flow.Run(ctx, f, flow.NewScripted(events))
	if err != nil {
		if errors.Is(err, flow.ErrNoMoreEvents) {
			return flow.Result{}, fmt.Errorf("no decision after %d events: %w", len(events), err)
		}
		return flow.Result{}, err
	}
	return result, nil
}

func printResult(cmd *cli.Command, result flow.Result) error {
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Fprintln(stdout(cmd), string(output))
	return nil
}
