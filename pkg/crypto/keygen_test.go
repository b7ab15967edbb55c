package crypto

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateLicenseKeyFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		key, err := GenerateLicenseKey()
		assert.NoError(t, err)
		assert.Regexp(t, pattern, key)
		seen[key] = true
	}
	// 50 draws from a 36^16 space never collide in practice
	assert.Len(t, seen, 50)
}

func TestGenerateUIDFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		uid, err := GenerateUID()
		assert.NoError(t, err)
		assert.Len(t, uid, 6)
		assert.GreaterOrEqual(t, uid[0], byte('1'))
		assert.LessOrEqual(t, uid[0], byte('9'))
	}
}

func TestGenerateTransactionIDFormat(t *testing.T) {
	txn, err := GenerateTransactionID()
	assert.NoError(t, err)
	assert.Regexp(t, `^TXN\d{9}$`, txn)
}

func TestKeygen_ErrorBranches(t *testing.T) {
	orig := randomInt
	t.Cleanup(func() { randomInt = orig })

	randomInt = func(int64) (int64, error) { return 0, errors.New("rand failed") }

	_, err := GenerateLicenseKey()
	assert.Error(t, err)

	_, err = GenerateUID()
	assert.Error(t, err)

	_, err = GenerateTransactionID()
	assert.Error(t, err)
}
