package reset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenMatches(t *testing.T) {
	cases := []struct {
		id        string
		bound     ConfirmationToken
		presented ConfirmationToken
		expected  bool
	}{
		{id: "both-empty", bound: "", presented: "", expected: false},
		{id: "bound-empty", bound: "", presented: "abc", expected: false},
		{id: "presented-empty", bound: "abc", presented: "", expected: false},
		{id: "mismatch", bound: "abc", presented: "abd", expected: false},
		{id: "prefix-is-not-a-match", bound: "abcdef", presented: "abc", expected: false},
		{id: "longer-is-not-a-match", bound: "abc", presented: "abcdef", expected: false},
		{id: "exact-match", bound: "wgxzmrvkafjdnbt", presented: "wgxzmrvkafjdnbt", expected: true},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			request := Request{Token: testcase.bound}
			require.Equal(t, testcase.expected, request.TokenMatches(testcase.presented))
		})
	}
}

func TestTokenMatchesFreshlyIssued(t *testing.T) {
	generator := NewFakeTokenGenerator("wgxzmrvkafjdnbt")
	token := generator.GenerateConfirmationToken()
	request := Request{Token: token}
	require.True(t, request.TokenMatches(token))
}
