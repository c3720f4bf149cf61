package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rerrors "github.com/redeyescan/redeye/internal/errors"
)

func TestCreate(t *testing.T) {
	t.Run("creates directory", func(t *testing.T) {
		store := NewStore(t.TempDir())

		sess, err := store.Create("project_x")
		require.NoError(t, err)

		assert.Equal(t, "project_x", sess.Name)
		info, err := os.Stat(sess.Dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("idempotent for existing session", func(t *testing.T) {
		store := NewStore(t.TempDir())

		first, err := store.Create("repeat")
		require.NoError(t, err)
		second, err := store.Create("repeat")
		require.NoError(t, err)

		assert.Equal(t, first.Dir, second.Dir)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		store := NewStore(t.TempDir())

		_, err := store.Create("   ")
		require.Error(t, err)
		assert.True(t, rerrors.IsCode(err, rerrors.CodeEmptyInput))
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		store := NewStore(t.TempDir())

		sess, err := store.Create("  padded  ")
		require.NoError(t, err)
		assert.Equal(t, "padded", sess.Name)
	})
}

func TestListArtifacts(t *testing.T) {
	store := NewStore(t.TempDir())
	sess, err := store.Create("listing")
	require.NoError(t, err)

	for _, name := range []string{"b.xml", "a.xml", "c.nmap", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(sess.Dir, name), []byte("x"), 0600))
	}
	// Subdirectories are never artifacts.
	require.NoError(t, os.Mkdir(filepath.Join(sess.Dir, "sub.xml"), 0750))

	t.Run("sorted suffix match", func(t *testing.T) {
		got := store.ListArtifacts("listing", ".xml")
		assert.Equal(t, []string{"a.xml", "b.xml"}, got)
	})

	t.Run("other suffix", func(t *testing.T) {
		got := store.ListArtifacts("listing", ".nmap")
		assert.Equal(t, []string{"c.nmap"}, got)
	})

	t.Run("no matches", func(t *testing.T) {
		assert.Empty(t, store.ListArtifacts("listing", ".html"))
	})

	t.Run("absent session directory", func(t *testing.T) {
		assert.Empty(t, store.ListArtifacts("never_created", ".xml"))
	})
}

func TestArtifactPath(t *testing.T) {
	store := NewStore("/tmp/sessions")
	got := store.ArtifactPath("acme", "scan_2026-08-30_10-00-00.xml")
	assert.Equal(t, filepath.Join("/tmp/sessions", "acme", "scan_2026-08-30_10-00-00.xml"), got)
}

func TestArtifactBase(t *testing.T) {
	sess := &Session{Name: "acme", Dir: filepath.Join("root", "acme")}
	at := time.Date(2026, 8, 30, 14, 5, 9, 0, time.UTC)

	got := sess.ArtifactBase(at)

	assert.Equal(t, filepath.Join("root", "acme", "scan_2026-08-30_14-05-09"), got)
}
