package assets

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerPriority(t *testing.T) {
	m := NewManager()
	m.AddRoot("base", fstest.MapFS{
		"textures/redblue.jpg": {Data: []byte("base")},
		"meshes/jeep.obj":      {Data: []byte("jeep")},
	})
	m.AddRoot("mod", fstest.MapFS{
		"textures/redblue.jpg": {Data: []byte("mod")},
	})

	data, err := m.Load("textures/redblue.jpg")
	require.NoError(t, err)
	assert.Equal(t, "mod", string(data))

	data, err = m.Load("meshes/jeep.obj")
	require.NoError(t, err)
	assert.Equal(t, "jeep", string(data))

	assert.Equal(t, []string{"mod", "base"}, m.Roots())
}

func TestManagerNotFound(t *testing.T) {
	m := NewManager()
	m.AddRoot("base", fstest.MapFS{})

	_, err := m.Load("missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManagerCleansPaths(t *testing.T) {
	m := NewManager()
	m.AddRoot("base", fstest.MapFS{"a/b.txt": {Data: []byte("x")}})

	for _, p := range []string{"a/b.txt", "./a/b.txt", "a\\b.txt", "/a/b.txt", "a/c/../b.txt"} {
		_, err := m.Load(p)
		assert.NoError(t, err, p)
	}

	_, err := m.Load("../etc/passwd")
	assert.Error(t, err)
	_, err = m.Load("")
	assert.Error(t, err)
}

func TestManagerCaches(t *testing.T) {
	m := NewManager()
	m.AddRoot("base", fstest.MapFS{"a.txt": {Data: []byte("x")}})

	for range 3 {
		_, err := m.Load("a.txt")
		require.NoError(t, err)
	}
	hits, misses := m.Cache().Stats()
	assert.Equal(t, 2, hits)
	assert.Equal(t, 1, misses)
	assert.Equal(t, 1, m.Cache().Len())

	m.Close()
	assert.Equal(t, 0, m.Cache().Len())
	_, err := m.Load("a.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManagerConcurrentLoad(t *testing.T) {
	m := NewManager()
	m.AddRoot("base", fstest.MapFS{"a.txt": {Data: []byte("x")}})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Load("a.txt")
		}()
	}
	wg.Wait()

	hits, misses := m.Cache().Stats()
	assert.Equal(t, 8, hits+misses)
}

func TestAddDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sf1.gif"), []byte("gif"), 0o644))

	m := NewManager()
	require.NoError(t, m.AddDir(dir))
	data, err := m.Load("sf1.gif")
	require.NoError(t, err)
	assert.Equal(t, "gif", string(data))

	assert.Error(t, m.AddDir(filepath.Join(dir, "nope")))
	assert.Error(t, m.AddDir(filepath.Join(dir, "sf1.gif")))
}
