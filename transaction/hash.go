package transaction

import (
	"encoding/binary"

	"github.com/nspcc-dev/neo-go/pkg/crypto/hash"
)

// SigningDigest computes sha256(LE32(magic) || txHash), the value the device signs
func SigningDigest(magic uint32, txHash Hash256) Hash256 {
	var buf [4 + 32]byte
	binary.LittleEndian.PutUint32(buf[:4], magic)
	copy(buf[4:], txHash[:])
	return Hash256(hash.Sha256(buf[:]))
}
