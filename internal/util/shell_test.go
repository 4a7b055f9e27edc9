package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`/addnote "John 3:16" God so loved`, []string{"/addnote", "John 3:16", "God", "so", "loved"}},
		{`/delnote '1 John 1' 2`, []string{"/delnote", "1 John 1", "2"}},
		{`John 3:16 -c -j "\n--\n"`, []string{"John", "3:16", "-c", "-j", `\n--\n`}},
	}
	for _, tt := range tests {
		got, err := SplitArgs(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSplitArgs_Blank(t *testing.T) {
	got, err := SplitArgs("   ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSplitArgs_UnterminatedQuote(t *testing.T) {
	_, err := SplitArgs(`/addnote "John 3:16 text`)
	assert.ErrorContains(t, err, "could not parse input")
}

func TestQuoteArg_RoundTrip(t *testing.T) {
	for _, arg := range []string{"John", "1 John 3:16", "it's"} {
		words, err := SplitArgs(QuoteArg(arg))
		require.NoError(t, err)
		assert.Equal(t, []string{arg}, words)
	}
	assert.Equal(t, "John", QuoteArg("John"))
}

func TestDecodeEscapes(t *testing.T) {
	tests := map[string]string{
		`plain`:      "plain",
		`\n--\n`:     "\n--\n",
		`a\tb`:       "a\tb",
		`\x41\u00e9`: "Aé",
		`\\`:         `\`,
		`\"quoted\'`: `"quoted'`,
		`keep \q`:    `keep \q`,
		`trailing\`:  `trailing\`,
		`é\n`:        "é\n",
	}
	for in, want := range tests {
		assert.Equal(t, want, DecodeEscapes(in), in)
	}
}
