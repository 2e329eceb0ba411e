package solana

import (
	"crypto/ed25519"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// LoadKeypair reads an ed25519 keypair from a Solana CLI keypair file,
// which is a JSON array of the 64 private key bytes.
func LoadKeypair(path string) (ed25519.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read keypair file")
	}

	var values []int
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, errors.Wrap(err, "invalid keypair file format")
	}

	if len(values) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("invalid keypair length: %d (expected %d)", len(values), ed25519.PrivateKeySize)
	}

	key := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, errors.Errorf("invalid byte value at index %d: %d", i, v)
		}
		key[i] = byte(v)
	}

	return key, nil
}
