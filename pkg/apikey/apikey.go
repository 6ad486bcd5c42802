package apikey

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

const (
	// secretLength is the number of random alphanumeric characters following
	// the prefix.
	secretLength = 48

	// DisplayPrefixLength is how many characters of the issued key are kept
	// for identification. This is not a secret - it includes the fixed prefix
	// plus a few characters of the random body.
	DisplayPrefixLength = 10

	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Generator produces and hashes API key secrets. The recognizable prefix
// (e.g. "mng_") is injected via config rather than read from global state.
type Generator struct {
	prefix string
}

func NewGenerator(prefix string) *Generator {
	return &Generator{prefix: prefix}
}

// NewSecret returns a fresh API key: the configured prefix followed by 48
// cryptographically random alphanumeric characters. The raw secret is shown
// to the caller exactly once; only its hash is ever persisted.
func (g *Generator) NewSecret() (string, error) {
	body := make([]byte, secretLength)
	max := big.NewInt(int64(len(alphabet)))
	for i := range body {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate api key: %w", err)
		}
		body[i] = alphabet[n.Int64()]
	}
	return g.prefix + string(body), nil
}

// Hash returns the hex SHA-256 digest of a key secret. The digest doubles as
// the unique lookup column, so it must be deterministic. A fast hash is fine
// here: the input already carries 48 characters of high-entropy randomness.
func Hash(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// DisplayPrefix returns the first 10 characters of a full key, stored
// alongside the hash so users can tell their keys apart.
func DisplayPrefix(secret string) string {
	if len(secret) < DisplayPrefixLength {
		return secret
	}
	return secret[:DisplayPrefixLength]
}
