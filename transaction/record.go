package transaction

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/near/borsh-go"
)

// EncodeRecord serializes a validated transaction record with Borsh
func EncodeRecord(tx *Transaction) ([]byte, error) {
	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transaction record: %w", err)
	}

	data, err := borsh.Serialize(*tx)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize transaction record: %w", err)
	}
	return data, nil
}

// DecodeRecord deserializes and validates a Borsh-encoded transaction record
func DecodeRecord(data []byte) (*Transaction, error) {
	var tx Transaction
	if err := borsh.Deserialize(&tx, data); err != nil {
		return nil, fmt.Errorf("failed to deserialize transaction record: %w", err)
	}

	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transaction record: %w", err)
	}
	return &tx, nil
}

// DecodeRecordFromBase64 decodes a base64-encoded transaction record
func DecodeRecordFromBase64(recordB64 string) (*Transaction, error) {
	data, err := base64.StdEncoding.DecodeString(recordB64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return DecodeRecord(data)
}

// DecodeRecordFromFile decodes a transaction record from a binary file
func DecodeRecordFromFile(filePath string) (*Transaction, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return DecodeRecord(data)
}
