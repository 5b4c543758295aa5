package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"inkhub/internal/logging"
	"inkhub/internal/media"
	"inkhub/internal/models"
	"inkhub/internal/storage"
)

const (
	// UploadsURLPrefix is where stored files are served from.
	UploadsURLPrefix = "/uploads"
	// ThumbsURLPrefix is where generated thumbnails are served from.
	ThumbsURLPrefix = "/thumbs"
)

var _ MediaStore = (*FileMediaStore)(nil)

// FileMediaStore keeps media as plain files in <Root>/<category>/. The bucket
// directories are the only index: listings scan them on every call.
type FileMediaStore struct {
	Root       string
	Thumbnails bool
}

// NewFileMediaStore creates a store rooted at root.
func NewFileMediaStore(root string, thumbnails bool) *FileMediaStore {
	return &FileMediaStore{Root: root, Thumbnails: thumbnails}
}

// asValidation maps storage name errors onto ErrValidation.
func asValidation(err error) error {
	if errors.Is(err, storage.ErrInvalidName) {
		return fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	return err
}

// Save writes data into the category bucket under filename, replacing any
// file of the same name.
func (s *FileMediaStore) Save(ctx context.Context, category, filename string, data io.Reader) (*models.MediaRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := storage.EnsureBucket(s.Root, category)
	if err != nil {
		return nil, asValidation(err)
	}

	if _, err := storage.SaveFile(data, dir, filename); err != nil {
		return nil, asValidation(err)
	}

	if s.Thumbnails && media.ClassifyFilename(filename).Kind == media.KindImage {
		if err := s.createThumbnail(category, filename); err != nil {
			logging.Log.Warnf("Failed to create thumbnail for %s/%s: %v", category, filename, err)
		}
	}

	info, err := os.Stat(filepath.Join(dir, filename))
	if err != nil {
		return nil, fmt.Errorf("could not stat stored file: %w", err)
	}
	rec := s.record(category, info)
	return &rec, nil
}

func (s *FileMediaStore) createThumbnail(category, filename string) error {
	thumbDir, err := storage.ThumbsDir(s.Root, category)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		return fmt.Errorf("could not create thumbnail directory: %w", err)
	}
	thumbPath, err := storage.ThumbnailPath(s.Root, category, filename)
	if err != nil {
		return err
	}

	src, err := s.Open(category, filename)
	if err != nil {
		return err
	}
	defer src.Close()

	return media.CreateThumbnail(src, thumbPath)
}

// Exists reports whether category/filename is stored.
func (s *FileMediaStore) Exists(category, filename string) (bool, error) {
	p, err := storage.FilePath(s.Root, category, filename)
	if err != nil {
		return false, asValidation(err)
	}
	return storage.Exists(p), nil
}

// Open returns the stored file for reading.
func (s *FileMediaStore) Open(category, filename string) (io.ReadCloser, error) {
	p, err := storage.FilePath(s.Root, category, filename)
	if err != nil {
		return nil, asValidation(err)
	}
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *FileMediaStore) record(category string, info os.FileInfo) models.MediaRecord {
	name := info.Name()
	rec := models.MediaRecord{
		ID:         category + "/" + name,
		Filename:   name,
		Category:   category,
		Type:       media.ClassifyFilename(name).Kind.MediaType(),
		URL:        UploadsURLPrefix + "/" + url.PathEscape(category) + "/" + url.PathEscape(name),
		Size:       info.Size(),
		ModifiedAt: info.ModTime().UTC(),
	}
	if s.Thumbnails {
		if p, err := storage.ThumbnailPath(s.Root, category, name); err == nil && storage.Exists(p) {
			rec.ThumbnailURL = ThumbsURLPrefix + "/" + url.PathEscape(category) + "/" + url.PathEscape(name+storage.ThumbnailSuffix)
		}
	}
	return rec
}

// buckets returns the visible bucket directory names under Root.
func (s *FileMediaStore) buckets() ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read storage root: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() && storage.ValidateCategory(e.Name()) == nil {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// scanBucket returns the records of all supported, visible files in category.
func (s *FileMediaStore) scanBucket(category string) ([]models.MediaRecord, error) {
	entries, err := os.ReadDir(filepath.Join(s.Root, category))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read bucket %s: %w", category, err)
	}

	records := make([]models.MediaRecord, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if media.ClassifyFilename(name).Kind == media.KindUnsupported {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		records = append(records, s.record(category, info))
	}
	return records, nil
}

// List scans the buckets and returns matching records, newest first.
func (s *FileMediaStore) List(ctx context.Context, filter models.MediaFilter) ([]models.MediaRecord, error) {
	buckets, err := s.buckets()
	if err != nil {
		return nil, err
	}

	records := make([]models.MediaRecord, 0)
	for _, bucket := range buckets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if filter.Category != "" && bucket != filter.Category {
			continue
		}
		found, err := s.scanBucket(bucket)
		if err != nil {
			return nil, err
		}
		for _, rec := range found {
			if filter.Type != "" && rec.Type != filter.Type {
				continue
			}
			records = append(records, rec)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].ModifiedAt.Equal(records[j].ModifiedAt) {
			return records[i].ModifiedAt.After(records[j].ModifiedAt)
		}
		return records[i].ID < records[j].ID
	})

	if filter.Limit > 0 && len(records) > filter.Limit {
		records = records[:filter.Limit]
	}
	return records, nil
}

// Categories returns the sorted names of all buckets holding at least one
// listable file.
func (s *FileMediaStore) Categories(ctx context.Context) ([]string, error) {
	buckets, err := s.buckets()
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(buckets))
	for _, bucket := range buckets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := s.scanBucket(bucket)
		if err != nil {
			return nil, err
		}
		if len(found) > 0 {
			categories = append(categories, bucket)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// Delete removes category/filename and its thumbnail. Empty bucket
// directories are removed so the category disappears from listings.
// Deleting a missing file is not an error.
func (s *FileMediaStore) Delete(ctx context.Context, category, filename string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p, err := storage.FilePath(s.Root, category, filename)
	if err != nil {
		return asValidation(err)
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not delete file: %w", err)
	}

	if thumbPath, err := storage.ThumbnailPath(s.Root, category, filename); err == nil {
		if err := os.Remove(thumbPath); err != nil && !os.IsNotExist(err) {
			logging.Log.Warnf("Failed to delete thumbnail '%s': %v", thumbPath, err)
		}
	}

	if err := storage.RemoveIfEmpty(filepath.Dir(p)); err != nil {
		logging.Log.Warnf("Failed to remove empty bucket '%s': %v", category, err)
	}
	if thumbDir, err := storage.ThumbsDir(s.Root, category); err == nil {
		if err := storage.RemoveIfEmpty(thumbDir); err != nil {
			logging.Log.Warnf("Failed to remove empty thumbnail directory '%s': %v", thumbDir, err)
		}
	}
	return nil
}
