package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	cases := []struct {
		id       string
		input    string
		expected string
	}{
		{id: "empty", input: "", expected: ""},
		{id: "plain", input: "jdupont", expected: "jdupont"},
		{id: "spaces", input: " j dupont ", expected: "jdupont"},
		{id: "single-quotes", input: "o'neill", expected: "oneill"},
		{id: "double-quotes", input: `jean"dupont"`, expected: "jeandupont"},
		{id: "accents", input: "Sébastien", expected: "Sebastien"},
		{id: "accents-upper", input: "ÉLÉONORE", expected: "ELEONORE"},
		{id: "mixed", input: ` François d'Assise `, expected: "FrancoisdAssise"},
		{id: "cedilla", input: "François", expected: "Francois"},
		{id: "tilde", input: "muñoz", expected: "munoz"},
		{id: "only-unwanted", input: ` '"' `, expected: ""},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			assert := require.New(t)
			cleaned := Clean(testcase.input)
			assert.Equal(testcase.expected, cleaned)
			assert.NotContains(cleaned, " ")
			assert.NotContains(cleaned, "'")
			assert.NotContains(cleaned, `"`)
		})
	}
}

func TestCleanLower(t *testing.T) {
	assert := require.New(t)
	assert.Equal("sebastien", CleanLower(" Sébastien "))
	assert.Equal("oneill", CleanLower("O'Neill"))
	assert.Equal(strings.ToLower(Clean("ÀÇÈ")), CleanLower("ÀÇÈ"))
}
