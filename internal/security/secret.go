package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const secretAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var errNonPositiveLength = errors.New("length must be positive")

// RandomSecret returns a cryptographically secure, unbiased random
// string suitable as a token-signing secret. Used when no secret is
// configured: signature verification must never be silently disabled,
// so the process runs with an ephemeral secret instead.
func RandomSecret(length int) (string, error) {
	if length <= 0 {
		return "", errNonPositiveLength
	}

	limit := big.NewInt(int64(len(secretAlphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = secretAlphabet[position.Int64()]
	}
	return string(value), nil
}
