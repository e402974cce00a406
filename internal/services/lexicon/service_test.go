package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidBeforeLoadingRejectsEverything(t *testing.T) {
	s := New()

	assert.False(t, s.IsValid("cat"))
	assert.False(t, s.IsLoaded())
}

func TestLoadWordsIsCaseInsensitive(t *testing.T) {
	s := New()
	require.NoError(t, s.LoadWords([]string{"Cat", "DOG", "whale"}))

	assert.True(t, s.IsLoaded())
	assert.Equal(t, 3, s.WordCount())
	assert.True(t, s.IsValid("cat"))
	assert.True(t, s.IsValid("CAT"))
	assert.True(t, s.IsValid("dog"))
	assert.True(t, s.IsValid("Whale"))
	assert.False(t, s.IsValid("cats"))
}

func TestLoadWordsReplacesPreviousSet(t *testing.T) {
	s := New()
	require.NoError(t, s.LoadWords([]string{"cat"}))
	require.NoError(t, s.LoadWords([]string{"dog"}))

	assert.False(t, s.IsValid("cat"))
	assert.True(t, s.IsValid("dog"))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("cat\n  dog  \n\nwhale\n"), 0o600))

	s := New()
	require.NoError(t, s.LoadFromFile(path))

	assert.Equal(t, 3, s.WordCount())
	assert.True(t, s.IsValid("dog"))
}

func TestLoadFromMissingFileFails(t *testing.T) {
	s := New()
	err := s.LoadFromFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
	assert.False(t, s.IsLoaded())
}
