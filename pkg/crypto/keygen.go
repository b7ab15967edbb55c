package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const keyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var randomInt = func(max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}

// GenerateLicenseKey produces a 16-character alphanumeric key grouped by
// four, e.g. AB12-CD34-EF56-GH78. Uniqueness is enforced by the database,
// not here; callers retry on a duplicate.
func GenerateLicenseKey() (string, error) {
	chars := make([]byte, 16)
	for i := range chars {
		n, err := randomInt(int64(len(keyAlphabet)))
		if err != nil {
			return "", fmt.Errorf("failed to generate license key: %w", err)
		}
		chars[i] = keyAlphabet[n]
	}
	groups := []string{
		string(chars[0:4]),
		string(chars[4:8]),
		string(chars[8:12]),
		string(chars[12:16]),
	}
	return strings.Join(groups, "-"), nil
}

// GenerateUID produces a 6-digit user-facing identifier. The first digit
// is never zero so the UID survives contexts that strip leading zeros.
func GenerateUID() (string, error) {
	n, err := randomInt(900000)
	if err != nil {
		return "", fmt.Errorf("failed to generate uid: %w", err)
	}
	return fmt.Sprintf("%06d", n+100000), nil
}

// GenerateTransactionID produces a reference for demo gateway payments
func GenerateTransactionID() (string, error) {
	n, err := randomInt(1000000000)
	if err != nil {
		return "", fmt.Errorf("failed to generate transaction id: %w", err)
	}
	return fmt.Sprintf("TXN%09d", n), nil
}
