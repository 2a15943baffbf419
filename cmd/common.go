package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/anchorageoss/visualsign-neoreview/crypto"
	"github.com/anchorageoss/visualsign-neoreview/keys"
	"github.com/anchorageoss/visualsign-neoreview/settings"
	"github.com/anchorageoss/visualsign-neoreview/transaction"
)

// transactionFlags select where the reviewed transaction comes from
func transactionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "tx",
			Usage:   "Serialized NEO N3 transaction (base64)",
			Sources: cli.EnvVars("NEO_REVIEW_TX"),
		},
		&cli.StringFlag{
			Name:  "tx-file",
			Usage: "Path to a serialized NEO N3 transaction",
		},
		&cli.StringFlag{
			Name:  "record",
			Usage: "Borsh-encoded transaction record (base64)",
		},
		&cli.StringFlag{
			Name:    "network-magic",
			Usage:   "Network magic of the transaction: mainnet, testnet or a number",
			Value:   "mainnet",
			Sources: cli.EnvVars("NEO_REVIEW_NETWORK_MAGIC"),
		},
	}
}

// signingKeyFlags select the derivation path and the key file behind it
func signingKeyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "path",
			Usage:   "BIP44 signing path",
			Value:   crypto.DefaultPath,
			Sources: cli.EnvVars("NEO_REVIEW_PATH"),
		},
		&cli.StringFlag{
			Name:    "key-name",
			Usage:   "Signing key name",
			Value:   "default",
			Sources: cli.EnvVars("NEO_REVIEW_KEY_NAME"),
		},
		&cli.StringFlag{
			Name:    "keys-dir",
			Usage:   "Directory holding signing keys (default ~/.config/neo-review/keys)",
			Sources: cli.EnvVars("NEO_REVIEW_KEYS_DIR"),
		},
	}
}

func eventsFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "events",
		Usage: "Scripted button presses instead of the interactive simulator (f forward, b backward, c confirm, r reject)",
	}
}

// signingPath parses and validates --path, reporting the status word the
// device would answer with for a rejected path
func signingPath(cmd *cli.Command) (crypto.Path, error) {
	path, err := crypto.ParsePath(cmd.String("path"))
	if err == nil {
		err = path.Validate()
	}
	if err != nil {
		if sw, ok := crypto.PathStatusWord(err); ok {
			return crypto.Path{}, fmt.Errorf("invalid signing path (status 0x%04X): %w", sw, err)
		}
		return crypto.Path{}, fmt.Errorf("invalid signing path: %w", err)
	}
	return path, nil
}

func keyProvider(cmd *cli.Command) *keys.FileKeyProvider {
	return &keys.FileKeyProvider{
		KeyName: cmd.String("key-name"),
		Dir:     cmd.String("keys-dir"),
	}
}

func settingsFileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "settings-file",
		Usage:   "Path to the settings file (default ~/.config/neo-review/settings.msgpack)",
		Sources: cli.EnvVars("NEO_REVIEW_SETTINGS_FILE"),
	}
}

func logLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level: debug, info, warn or error",
		Value:   "warn",
		Sources: cli.EnvVars("NEO_REVIEW_LOG_LEVEL"),
	}
}

// parseNetworkMagic accepts a network name or a decimal or 0x-prefixed magic
func parseNetworkMagic(s string) (uint32, error) {
	switch strings.ToLower(s) {
	case "", "mainnet":
		return transaction.MainNetMagic, nil
	case "testnet":
		return transaction.TestNetMagic, nil
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid network magic %q", s)
	}
	return uint32(v), nil
}

func loadTransaction(cmd *cli.Command) (*transaction.Transaction, error) {
	txB64 := cmd.String("tx")
	txFile := cmd.String("tx-file")
	record := cmd.String("record")

	var given int
	for _, v := range []string{txB64, txFile, record} {
		if v != "" {
			given++
		}
	}
	if given == 0 {
		return nil, fmt.Errorf("one of --tx, --tx-file or --record must be provided")
	}
	if given > 1 {
		return nil, fmt.Errorf("only one of --tx, --tx-file or --record should be provided")
	}

	if record != "" {
		tx, err := transaction.DecodeRecordFromBase64(record)
		if err != nil {
			return nil, fmt.Errorf("failed to decode transaction record: %w", err)
		}
		return tx, nil
	}

	magic, err := parseNetworkMagic(cmd.String("network-magic"))
	if err != nil {
		return nil, err
	}

	var tx *transaction.Transaction
	if txFile != "" {
		tx, err = transaction.FromNeoFile(txFile, magic)
	} else {
		tx, err = transaction.FromNeoBase64(txB64, magic)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse transaction: %w", err)
	}
	return tx, nil
}

func loadSettings(cmd *cli.Command) (*settings.FileStore, settings.Settings, error) {
	store, err := settings.NewFileStore(cmd.String("settings-file"))
	if err != nil {
		return nil, settings.Settings{}, err
	}
	s, err := store.Load()
	if err != nil {
		return nil, settings.Settings{}, err
	}
	return store, s, nil
}

func newLogger(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger, nil
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
