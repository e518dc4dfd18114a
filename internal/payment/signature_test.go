package payment

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySignature_AcceptsExactKeyedHash(t *testing.T) {
	// SHA-512 of the plain concatenation "ORDER-1" + "200" + "10000" + "SECRET".
	sum := sha512.Sum512([]byte("ORDER-1" + "200" + "10000" + "SECRET"))
	sig := hex.EncodeToString(sum[:])

	err := VerifySignature("ORDER-1", "200", "10000", "SECRET", sig)
	assert.NoError(t, err)
}

func TestVerifySignature_RejectsEverySingleCharMutation(t *testing.T) {
	sig := Signature("ORDER-1", "200", "10000", "SECRET")

	for i := 0; i < len(sig); i++ {
		mutated := []byte(sig)
		if mutated[i] == 'f' {
			mutated[i] = '0'
		} else {
			mutated[i] = 'f'
		}
		// Guard against the hex digit already being the replacement.
		require.NotEqual(t, sig, string(mutated))

		err := VerifySignature("ORDER-1", "200", "10000", "SECRET", string(mutated))
		assert.ErrorIs(t, err, ErrInvalidSignature, "mutation at position %d must be rejected", i)
	}
}

func TestVerifySignature_RejectsWrongFields(t *testing.T) {
	sig := Signature("ORDER-1", "200", "10000", "SECRET")

	assert.Error(t, VerifySignature("ORDER-2", "200", "10000", "SECRET", sig))
	assert.Error(t, VerifySignature("ORDER-1", "201", "10000", "SECRET", sig))
	assert.Error(t, VerifySignature("ORDER-1", "200", "10001", "SECRET", sig))
	assert.Error(t, VerifySignature("ORDER-1", "200", "10000", "OTHER", sig))
	assert.Error(t, VerifySignature("ORDER-1", "200", "10000", "SECRET", ""))
}
