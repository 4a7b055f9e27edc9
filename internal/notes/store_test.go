package notes

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verse-notes/internal/reference"
)

func ref(book, chapter, verse string) reference.Reference {
	return reference.Reference{Book: book, Chapter: chapter, VerseKey: verse}
}

func TestAdd_SelectsListByScope(t *testing.T) {
	s := NewMemory()

	name, err := s.Add(ref("John", "", ""), "book note")
	require.NoError(t, err)
	assert.Equal(t, "John", name)

	name, err = s.Add(ref("John", "3", ""), "chapter note")
	require.NoError(t, err)
	assert.Equal(t, "John 3", name)

	name, err = s.Add(ref("John", "3", "16"), "verse note")
	require.NoError(t, err)
	assert.Equal(t, "John 3:16", name)

	res := s.Resolve(ref("John", "3", "16"), LevelBook)
	assert.Equal(t, []string{"book note"}, res.Book)
	assert.Equal(t, []string{"chapter note"}, res.Chapter)
	assert.Equal(t, []string{"verse note"}, res.Individual)
}

func TestAdd_NormalizesBookCase(t *testing.T) {
	s := NewMemory()
	_, err := s.Add(ref("jOHN", "1", "1"), "a")
	require.NoError(t, err)
	_, err = s.Add(ref("John", "1", "1"), "b")
	require.NoError(t, err)

	assert.Equal(t, []string{"John"}, s.Books())
	assert.Equal(t, []string{"a", "b"}, s.Resolve(ref("JOHN", "1", "1"), LevelIndividual).Individual)
}

func TestAdd_ImplicitChapterHasBothContainers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.json")
	s, err := Load(path)
	require.NoError(t, err)

	_, err = s.Add(ref("Romans", "8", "28"), "all things")
	require.NoError(t, err)

	var doc map[string]map[string]any
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &doc))

	book := doc["Romans"]
	assert.Equal(t, []any{}, book["notes"])
	chapter := book["chapters"].(map[string]any)["8"].(map[string]any)
	assert.Equal(t, []any{}, chapter["notes"])
	assert.Equal(t, map[string]any{"28": []any{"all things"}}, chapter["verses"])
}

func TestDelete(t *testing.T) {
	s := NewMemory()
	for _, text := range []string{"one", "two", "three"} {
		_, err := s.Add(ref("John", "3", "16"), text)
		require.NoError(t, err)
	}

	removed, err := s.Delete(ref("John", "3", "16"), 2)
	require.NoError(t, err)
	assert.Equal(t, "two", removed)
	assert.Equal(t, []string{"one", "three"}, s.Resolve(ref("John", "3", "16"), LevelIndividual).Individual)

	removed, err = s.Delete(ref("John", "3", "16"), 2)
	require.NoError(t, err)
	assert.Equal(t, "three", removed)
}

func TestDelete_OutOfRangeLeavesListUnchanged(t *testing.T) {
	s := NewMemory()
	_, err := s.Add(ref("John", "3", ""), "only")
	require.NoError(t, err)

	for _, pos := range []int{0, 2, -1} {
		_, err := s.Delete(ref("John", "3", ""), pos)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOutOfRange)

		var rangeErr *RangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, 1, rangeErr.Len)
	}

	assert.Equal(t, []string{"only"}, s.Resolve(ref("John", "3", ""), LevelChapter).Chapter)
}

func TestDelete_NotFound(t *testing.T) {
	s := NewMemory()
	_, err := s.Add(ref("John", "3", "16"), "x")
	require.NoError(t, err)

	missing := []reference.Reference{
		ref("Mark", "", ""),
		ref("John", "4", ""),
		ref("John", "3", "17"),
		ref("John", "4", "1"),
	}
	for _, r := range missing {
		_, err := s.Delete(r, 1)
		assert.ErrorIs(t, err, ErrNotFound, r.String())
	}
}

func TestAll_OrderAndSkipsEmpty(t *testing.T) {
	s := NewMemory()
	adds := []struct {
		r    reference.Reference
		text string
	}{
		{ref("John", "3", "16"), "v"},
		{ref("Genesis", "", ""), "g"},
		{ref("John", "", ""), "b"},
		{ref("John", "3", ""), "c"},
		{ref("John", "1", "1-5"), "r"},
	}
	for _, a := range adds {
		_, err := s.Add(a.r, a.text)
		require.NoError(t, err)
	}
	_, err := s.Delete(ref("John", "1", "1-5"), 1)
	require.NoError(t, err)

	var names []string
	for _, sec := range s.All() {
		names = append(names, sec.Ref.String())
	}
	assert.Equal(t, []string{"John", "John 3", "John 3:16", "Genesis"}, names)
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.True(t, s.Empty())
}

func TestLoad_MalformedDocumentResetsToEmpty(t *testing.T) {
	docs := map[string]string{
		"garbage":   "{not json",
		"empty":     "",
		"array":     "[1, 2]",
		"bad-book":  `{"John": 5}`,
		"truncated": `{"John": {"notes": ["a"]`,
	}

	for name, content := range docs {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "notes.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0600))

			s, err := Load(path)
			require.NotNil(t, s)
			assert.True(t, s.Empty())

			var persistErr *PersistenceError
			require.ErrorAs(t, err, &persistErr)
			assert.Equal(t, "parse", persistErr.Op)

			_, err = s.Add(ref("John", "", ""), "fresh")
			assert.NoError(t, err)
		})
	}
}

func TestLoad_PreservesOrderAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	content := `{
    "Zechariah": {"notes": ["z"], "chapters": {}},
    "john": {
        "notes": [],
        "chapters": {
            "3": {"notes": ["c3"], "verses": {"18": ["later"], "16": ["first"]}},
            "1": {"notes": null}
        }
    },
    "Acts": {"notes": ["a"]},
    "JOHN": {"notes": ["merged"], "chapters": {"3": {"notes": [], "verses": {"16": ["dup"]}}}}
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zechariah", "John", "Acts"}, s.Books())

	var names []string
	for _, sec := range s.All() {
		names = append(names, sec.Ref.String())
	}
	assert.Equal(t, []string{"Zechariah", "John", "John 3", "John 3:18", "John 3:16", "Acts"}, names)
	assert.Equal(t, []string{"first", "dup"}, s.Resolve(ref("John", "3", "16"), LevelIndividual).Individual)

	// Containers missing on disk are filled in, so adding below them works.
	_, err = s.Add(ref("John", "1", "1"), "word")
	require.NoError(t, err)
	_, err = s.Add(ref("Acts", "2", ""), "pentecost")
	require.NoError(t, err)

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s.All(), reloaded.All())
}

func TestSave_WriteFailureKeepsMemoryState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "notes.json")
	s, err := Load(path)
	require.NoError(t, err)

	name, err := s.Add(ref("John", "3", "16"), "kept")
	assert.Equal(t, "John 3:16", name)

	var persistErr *PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, "write", persistErr.Op)
	assert.Equal(t, []string{"kept"}, s.Resolve(ref("John", "3", "16"), LevelIndividual).Individual)
}

func TestSave_KeepsTextUnescaped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	s, err := Load(path)
	require.NoError(t, err)

	_, err = s.Add(ref("Psalm", "23", "1"), "shepherd & <guide>")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"shepherd & <guide>"`)
	assert.Contains(t, string(data), "\n    \"Psalm\": {")
}
