package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/anchorageoss/visualsign-neoreview/flow"
)

// AddressCommand creates the address command
func AddressCommand() *cli.Command {
	flags := signingKeyFlags()
	flags = append(flags, eventsFlag(), logLevelFlag())

	return &cli.Command{
		Name:   "address",
		Usage:  "Confirm the N3 address of a signing key and export its public key on approval",
		Flags:  flags,
		Action: runAddressCommand,
	}
}

func runAddressCommand(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.String("log-level"), stderr(cmd))
	if err != nil {
		return err
	}

	path, err := signingPath(cmd)
	if err != nil {
		return err
	}

	key, err := keyProvider(cmd).PrivateKey(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load signing key: %w", err)
	}

	driver, err := flow.NewAddress(key.PublicKey(), path, logger)
	if err != nil {
		return fmt.Errorf("failed to start address confirmation: %w", err)
	}

	result, err := runFlow(ctx, cmd, driver)
	if err != nil {
		return err
	}
	if err := printResult(cmd, result); err != nil {
		return err
	}

	if result.Outcome == flow.OutcomeApproved {
		fmt.Fprintf(stderr(cmd), "✓ Address %s confirmed for %s\n", result.Address, path)
	} else {
		fmt.Fprintf(stderr(cmd), "✗ Rejected\n")
	}
	return nil
}
