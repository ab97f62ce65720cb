package images

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndRemove(t *testing.T) {
	fs := memfs.New()
	s := New(fs, "/uploads/")

	url, err := s.Save(10, "Kitchen.JPG", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/properties/10/"), url)
	assert.True(t, strings.HasSuffix(url, ".jpg"), url)

	rel := strings.TrimPrefix(url, "/uploads/")
	data, err := util.ReadFile(fs, rel)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, s.Remove(url))
	_, err = fs.Stat(rel)
	assert.Error(t, err)

	assert.NoError(t, s.Remove(url), "removing twice is fine")
}

func TestSaveUsesUniqueNames(t *testing.T) {
	s := New(memfs.New(), "/uploads")

	a, err := s.Save(1, "a.png", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := s.Save(1, "a.png", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestSaveFailureLeavesNoFile(t *testing.T) {
	fs := memfs.New()
	s := New(fs, "/uploads")

	_, err := s.Save(3, "a.png", io.MultiReader(strings.NewReader("partial"), failingReader{}))
	require.Error(t, err)

	entries, err := fs.ReadDir("properties/3")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemoveRejectsForeignURL(t *testing.T) {
	s := New(memfs.New(), "/uploads")

	assert.Error(t, s.Remove("/elsewhere/a.png"))
	assert.Error(t, s.Remove("/uploads/../etc/passwd"))
}
