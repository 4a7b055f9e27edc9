package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verse-notes/internal/notes"
)

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery([]string{"-c", "1", "John", "-s", "3:16", "-n", "3"})
	require.NoError(t, err)
	assert.Equal(t, "1 John 3:16", q.Text)
	assert.True(t, q.Copy)
	assert.True(t, q.Spacious)
	assert.Nil(t, q.Joiner)
	assert.Equal(t, notes.LevelChapter, q.Level)
}

func TestParseQuery_VerboseDoesNotOverrideLevel(t *testing.T) {
	q, err := ParseQuery([]string{"John", "-n", "4", "-v"})
	require.NoError(t, err)
	assert.Equal(t, notes.LevelBook, q.Level)

	q, err = ParseQuery([]string{"John", "-v"})
	require.NoError(t, err)
	assert.Equal(t, notes.LevelGroup, q.Level)

	// A later -n still wins over -v.
	q, err = ParseQuery([]string{"John", "-v", "-n", "1"})
	require.NoError(t, err)
	assert.Equal(t, notes.LevelIndividual, q.Level)
}

func TestParseQuery_JoinerDecoded(t *testing.T) {
	q, err := ParseQuery([]string{"John", "-j", `\t|\t`})
	require.NoError(t, err)
	require.NotNil(t, q.Joiner)
	assert.Equal(t, "\t|\t", *q.Joiner)
}

func TestParseQuery_Errors(t *testing.T) {
	cases := map[string][]string{
		"-j flag requires a joiner string argument.": {"John", "-j"},
		"-n flag requires a level number (1-4).":     {"John", "-n"},
		"-n flag requires a number (1-4).":           {"John", "-n", "two"},
		"-n level must be between 1 and 4.":          {"John", "-n", "0"},
		"Flags must be used with a verse reference.": {"-s"},
	}
	for msg, words := range cases {
		_, err := ParseQuery(words)
		var inputErr *UserInputError
		require.ErrorAs(t, err, &inputErr, msg)
		assert.Equal(t, msg, inputErr.Msg)
	}
}

func TestParseQuery_EmptyWithoutFlags(t *testing.T) {
	q, err := ParseQuery(nil)
	require.NoError(t, err)
	assert.Equal(t, Query{}, q)
	assert.False(t, q.HasOptions())
}
