package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"inkhub/internal/models"
	"inkhub/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileMediaStore_EmptyListing(t *testing.T) {
	store := NewFileMediaStore(filepath.Join(t.TempDir(), "not-created-yet"), false)
	ctx := context.Background()

	list, err := store.List(ctx, models.MediaFilter{})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	cats, err := store.Categories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestFileMediaStore_CategoryAppearsOnce(t *testing.T) {
	store := NewFileMediaStore(t.TempDir(), false)
	ctx := context.Background()

	_, err := store.Save(ctx, "blackwork", "mandala.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	_, err = store.Save(ctx, "blackwork", "dots.png", strings.NewReader("b"))
	require.NoError(t, err)

	cats, err := store.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"blackwork"}, cats)
}

func TestFileMediaStore_ListFiltersAndOrder(t *testing.T) {
	root := t.TempDir()
	store := NewFileMediaStore(root, false)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	files := []struct {
		category, name string
		age            time.Duration
	}{
		{"oldschool", "swallow.jpg", 3 * time.Minute},
		{"oldschool", "anchor.mp4", 1 * time.Minute},
		{"realism", "portrait.webp", 2 * time.Minute},
	}
	for _, f := range files {
		_, err := store.Save(ctx, f.category, f.name, strings.NewReader(f.name))
		require.NoError(t, err)
		ts := base.Add(-f.age)
		require.NoError(t, os.Chtimes(filepath.Join(root, f.category, f.name), ts, ts))
	}

	// Noise that must never be listed.
	require.NoError(t, os.WriteFile(filepath.Join(root, "oldschool", "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "oldschool", storage.TempPrefix+"123"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "oldschool", ".DS_Store"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0755))

	all, err := store.List(ctx, models.MediaFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "oldschool/anchor.mp4", all[0].ID, "newest first")
	assert.Equal(t, "realism/portrait.webp", all[1].ID)
	assert.Equal(t, "oldschool/swallow.jpg", all[2].ID)
	assert.Equal(t, models.MediaVideo, all[0].Type)
	assert.Equal(t, models.MediaImage, all[2].Type)

	byCategory, err := store.List(ctx, models.MediaFilter{Category: "oldschool"})
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	videos, err := store.List(ctx, models.MediaFilter{Type: models.MediaVideo})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "anchor.mp4", videos[0].Filename)

	limited, err := store.List(ctx, models.MediaFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	cats, err := store.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"oldschool", "realism"}, cats, "empty buckets are not categories")
}

func TestFileMediaStore_DeleteRemovesEmptyBucket(t *testing.T) {
	root := t.TempDir()
	store := NewFileMediaStore(root, false)
	ctx := context.Background()

	_, err := store.Save(ctx, "dotwork", "a.jpg", strings.NewReader("a"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "dotwork", "a.jpg"))
	assert.False(t, storage.Exists(filepath.Join(root, "dotwork")))

	cats, err := store.Categories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)

	// Idempotent.
	assert.NoError(t, store.Delete(ctx, "dotwork", "a.jpg"))

	assert.ErrorIs(t, store.Delete(ctx, "..", "a.jpg"), ErrValidation)
}

func TestFileMediaStore_OpenMissing(t *testing.T) {
	store := NewFileMediaStore(t.TempDir(), false)

	_, err := store.Open("flash", "missing.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileMediaStore_Thumbnails(t *testing.T) {
	root := t.TempDir()
	store := NewFileMediaStore(root, true)
	ctx := context.Background()

	rec, err := store.Save(ctx, "flash", "rose.png", bytes.NewReader(pngBytes(t, 400, 300)))
	require.NoError(t, err)
	assert.Equal(t, "/thumbs/flash/rose.png.jpg", rec.ThumbnailURL)
	assert.True(t, storage.Exists(filepath.Join(root, storage.ThumbsDirName, "flash", "rose.png.jpg")))

	// Videos and undecodable images get no thumbnail but still store.
	rec, err = store.Save(ctx, "flash", "clip.mp4", strings.NewReader("video"))
	require.NoError(t, err)
	assert.Empty(t, rec.ThumbnailURL)

	require.NoError(t, store.Delete(ctx, "flash", "rose.png"))
	assert.False(t, storage.Exists(filepath.Join(root, storage.ThumbsDirName, "flash", "rose.png.jpg")))

	cats, err := store.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"flash"}, cats, "the thumbnail tree is never a category")
}
