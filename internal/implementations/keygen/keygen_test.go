package keygen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

const ambiguousSet = "o0OQCiIl15Ss7"

func TestGeneratedLength(t *testing.T) {
	cases := []struct {
		tokenLength    int
		passwordLength int
	}{
		{tokenLength: 1, passwordLength: 1},
		{tokenLength: 8, passwordLength: 8},
		{tokenLength: 15, passwordLength: 8},
		{tokenLength: 64, passwordLength: 32},
	}
	for _, testcase := range cases {
		t.Run(fmt.Sprintf("%d-%d", testcase.tokenLength, testcase.passwordLength), func(t *testing.T) {
			assert := require.New(t)
			generator := NewGenerator(testcase.tokenLength, testcase.passwordLength)
			assert.Len(string(generator.GenerateConfirmationToken()), testcase.tokenLength)
			assert.Len(string(generator.GeneratePassword()), testcase.passwordLength)
		})
	}
}

func TestDefaultsApplied(t *testing.T) {
	assert := require.New(t)
	generator := NewGenerator(0, -1)
	assert.Len(string(generator.GenerateConfirmationToken()), DefaultTokenLength)
	assert.Len(string(generator.GeneratePassword()), DefaultPasswordLength)
}

func TestNoAmbiguousCharacters(t *testing.T) {
	assert := require.New(t)
	generator := NewGenerator(32, 32)
	for i := 0; i < 200; i++ {
		token := string(generator.GenerateConfirmationToken())
		password := string(generator.GeneratePassword())
		for _, c := range ambiguousSet {
			assert.NotContains(token, string(c))
			assert.NotContains(password, string(c))
		}
	}
}

func TestTokensAreNotRepeated(t *testing.T) {
	assert := require.New(t)
	generator := NewGenerator(15, 8)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := string(generator.GenerateConfirmationToken())
		assert.False(seen[token])
		seen[token] = true
	}
}
