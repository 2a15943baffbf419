package cmd

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/anchorageoss/visualsign-neoreview/transaction"
)

// DecodeCommand creates the decode commands
func DecodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "decode",
		Usage: "Convert and inspect transaction records",
		Commands: []*cli.Command{
			decodeRecordCommand(),
			decodeShowCommand(),
		},
	}
}

func decodeRecordCommand() *cli.Command {
	return &cli.Command{
		Name:  "record",
		Usage: "Convert a serialized NEO N3 transaction into a transaction record",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "tx",
				Usage: "Serialized NEO N3 transaction (base64)",
			},
			&cli.StringFlag{
				Name:  "tx-file",
				Usage: "Path to a serialized NEO N3 transaction",
			},
			&cli.StringFlag{
				Name:  "network-magic",
				Usage: "Network magic of the transaction: mainnet, testnet or a number",
				Value: "mainnet",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "Write the binary record to this file instead of printing base64",
			},
		},
		Action: runDecodeRecordCommand,
	}
}

func runDecodeRecordCommand(ctx context.Context, cmd *cli.Command) error {
	if cmd.String("tx") == "" && cmd.String("tx-file") == "" {
		return fmt.Errorf("either --tx or --tx-file must be provided")
	}

	tx, err := loadTransaction(cmd)
	if err != nil {
		return err
	}

	data, err := transaction.EncodeRecord(tx)
	if err != nil {
		return err
	}

	if out := cmd.String("out"); out != "" {
		if err := os.WriteFile(out, data, 0o600); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
		fmt.Fprintf(stderr(cmd), "✓ Record written to %s (%d bytes)\n", out, len(data))
		return nil
	}

	fmt.Fprintln(stdout(cmd), base64.StdEncoding.EncodeToString(data))
	return nil
}

func decodeShowCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Decode a transaction record",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "Path to transaction record binary file",
			},
			&cli.StringFlag{
				Name:  "base64",
				Usage: "Base64-encoded transaction record",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output in JSON format",
			},
		},
		Action: runDecodeShowCommand,
	}
}

func runDecodeShowCommand(ctx context.Context, cmd *cli.Command) error {
	filePath := cmd.String("file")
	b64 := cmd.String("base64")
	asJSON := cmd.Bool("json")

	if filePath == "" && b64 == "" {
		return fmt.Errorf("either --file or --base64 must be provided")
	}
	if filePath != "" && b64 != "" {
		return fmt.Errorf("only one of --file or --base64 should be provided")
	}

	var tx *transaction.Transaction
	var err error
	if filePath != "" {
		tx, err = transaction.DecodeRecordFromFile(filePath)
	} else {
		tx, err = transaction.DecodeRecordFromBase64(b64)
	}
	if err != nil {
		return fmt.Errorf("failed to decode transaction record: %w", err)
	}

	out := stdout(cmd)
	if asJSON {
		jsonBytes, err := json.MarshalIndent(transaction.FormatJSON(tx), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Fprintln(out, string(jsonBytes))
		return nil
	}

	fmt.Fprintf(out, "=== NEO N3 Transaction Record ===\n")
	fmt.Fprint(out, transaction.FormatText(tx))
	return nil
}
