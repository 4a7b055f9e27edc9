package display

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verse-notes/internal/notes"
	"verse-notes/internal/reference"
	"verse-notes/internal/verses"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func addNote(t *testing.T, s *notes.Store, book, chapter, verse, text string) {
	t.Helper()
	_, err := s.Add(reference.Reference{Book: book, Chapter: chapter, VerseKey: verse}, text)
	require.NoError(t, err)
}

func TestNotesBlock(t *testing.T) {
	var buf bytes.Buffer
	NotesBlock(&buf, notes.Resolution{
		Chapter:    []string{"c1"},
		Individual: []string{"i1", "i2"},
	})

	want := "|| Notes:\n" +
		"  [Chapter]\n" +
		"    1. c1\n" +
		"  [Individual]\n" +
		"    1. i1\n" +
		"    2. i2\n"
	assert.Equal(t, want, buf.String())
}

func TestNotesBlock_EmptyPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	NotesBlock(&buf, notes.Resolution{})
	assert.Empty(t, buf.String())
}

func TestVerses(t *testing.T) {
	s := notes.NewMemory()
	addNote(t, s, "John", "3", "16", "loved")
	addNote(t, s, "John", "3", "16-17", "sent")

	vs := []verses.Verse{
		{Ref: "John 3:16", Text: "For God so loved the world"},
		{Ref: "John 3:17", Text: "For God sent not his Son"},
	}

	var buf bytes.Buffer
	lines := Verses(&buf, vs, s, notes.LevelGroup, 0)

	assert.Equal(t, []string{
		"John 3:16 For God so loved the world",
		"John 3:17 For God sent not his Son",
	}, lines)

	want := Rule + "\n" +
		"\nJohn 3:16\nFor God so loved the world\n" +
		"|| Notes:\n  [Group]\n    1. sent\n  [Individual]\n    1. loved\n" +
		"\nJohn 3:17\nFor God sent not his Son\n" +
		"|| Notes:\n  [Group]\n    1. sent\n" +
		"\n" + Rule + "\n" +
		"Found 2 verse(s).\n"
	assert.Equal(t, want, buf.String())
}

func TestVerses_LevelNoneAndUnparsableRef(t *testing.T) {
	s := notes.NewMemory()
	addNote(t, s, "John", "3", "16", "loved")

	var buf bytes.Buffer
	Verses(&buf, []verses.Verse{{Ref: "John 3:16", Text: "t"}}, s, notes.LevelNone, 0)
	assert.NotContains(t, buf.String(), "Notes:")

	buf.Reset()
	Verses(&buf, []verses.Verse{{Ref: "No Reference", Text: "t"}}, s, notes.LevelBook, 0)
	assert.NotContains(t, buf.String(), "Notes:")
}

func TestVerses_Wraps(t *testing.T) {
	var buf bytes.Buffer
	lines := Verses(&buf, []verses.Verse{{Ref: "Ps 23:1", Text: "The LORD is my shepherd"}}, nil, notes.LevelNone, 10)

	assert.Contains(t, buf.String(), "The LORD\nis my\nshepherd\n")
	assert.Equal(t, []string{"Ps 23:1 The LORD is my shepherd"}, lines)
}

func TestJoiner(t *testing.T) {
	custom := " | "
	empty := ""

	assert.Equal(t, "\n", Joiner(false, nil))
	assert.Equal(t, "\n\n", Joiner(true, nil))
	assert.Equal(t, " | ", Joiner(true, &custom))
	assert.Equal(t, "", Joiner(true, &empty))
}

func TestAllNotes(t *testing.T) {
	var buf bytes.Buffer
	AllNotes(&buf, notes.NewMemory())
	assert.Equal(t, "No notes found.\n", buf.String())

	s := notes.NewMemory()
	addNote(t, s, "John", "", "", "b")
	addNote(t, s, "John", "3", "", "c")
	addNote(t, s, "John", "3", "16", "v1")
	addNote(t, s, "John", "3", "16", "v2")

	buf.Reset()
	AllNotes(&buf, s)
	want := "\n--- All Notes ---\n" +
		"\n[John]\n" +
		"  1. b\n" +
		"  [John 3]\n" +
		"    1. c\n" +
		"    [John 3:16]\n" +
		"      1. v1\n" +
		"      2. v2\n" +
		"-----------------\n"
	assert.Equal(t, want, buf.String())
}
