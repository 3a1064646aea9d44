package keygen

import (
	"crypto/rand"
	"math/big"
	"resetpass/internal/core/domain/reset"
	"strings"
)

const DefaultTokenLength = 15
const DefaultPasswordLength = 8

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Characters that are easy to misread or mistype are swapped for a
// disjoint replacement set after generation, so no generated value ever
// contains one of o0OQCiIl15Ss7.
var ambiguous = strings.NewReplacer(
	"o", "B",
	"0", "E",
	"O", "F",
	"Q", "H",
	"C", "J",
	"i", "K",
	"I", "M",
	"l", "N",
	"1", "P",
	"5", "R",
	"S", "T",
	"s", "U",
	"7", "V",
)

// Generator produces confirmation tokens and directory passwords from a
// cryptographically strong source. Tokens and passwords come from separate
// calls with independently configured lengths; they are never
// interchangeable.
type Generator struct {
	tokenLength    int
	passwordLength int
}

func NewGenerator(tokenLength int, passwordLength int) *Generator {
	if tokenLength <= 0 {
		tokenLength = DefaultTokenLength
	}
	if passwordLength <= 0 {
		passwordLength = DefaultPasswordLength
	}
	return &Generator{tokenLength: tokenLength, passwordLength: passwordLength}
}

func (g *Generator) GenerateConfirmationToken() reset.ConfirmationToken {
	return reset.ConfirmationToken(g.generate(g.tokenLength))
}

func (g *Generator) GeneratePassword() reset.Password {
	return reset.Password(g.generate(g.passwordLength))
}

func (g *Generator) generate(length int) string {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the platform source is broken;
			// generating a guessable value instead is not acceptable.
			panic("keygen: random source unavailable: " + err.Error())
		}
		b[i] = alphabet[n.Int64()]
	}
	return ambiguous.Replace(string(b))
}
