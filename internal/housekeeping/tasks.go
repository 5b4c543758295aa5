// filepath: internal/housekeeping/tasks.go
package housekeeping

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"inkhub/internal/logging"
	"inkhub/internal/models"
	"inkhub/internal/storage"
)

// Dependencies defines what the housekeeping tasks operate on.
type Dependencies struct {
	// Root is the media storage root holding the category buckets.
	Root string
	// TempMaxAge is how old an in-flight upload must be before it counts as
	// abandoned.
	TempMaxAge time.Duration
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

func (d Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Run executes all cleanup tasks once.
func Run(deps Dependencies) (*models.HousekeepingReport, error) {
	if _, err := os.Stat(deps.Root); os.IsNotExist(err) {
		return &models.HousekeepingReport{Message: "Housekeeping skipped: storage root does not exist yet."}, nil
	}

	report := &models.HousekeepingReport{}

	// 1. Abandoned uploads
	removed, freed, err := cleanupTempFiles(deps)
	if err != nil {
		logging.Log.Errorf("Housekeeping temp file cleanup failed: %v", err)
	}
	report.TempFilesRemoved += removed
	report.BytesFreed += freed

	// 2. Thumbnails whose source is gone
	removed, freed, err = cleanupOrphanThumbnails(deps)
	if err != nil {
		logging.Log.Errorf("Housekeeping thumbnail cleanup failed: %v", err)
	}
	report.OrphanThumbnailsRemoved += removed
	report.BytesFreed += freed

	report.Message = fmt.Sprintf("Housekeeping complete. %d abandoned uploads and %d orphaned thumbnails removed, freeing %s.",
		report.TempFilesRemoved, report.OrphanThumbnailsRemoved, formatBytes(report.BytesFreed))
	return report, nil
}

// cleanupTempFiles removes in-flight upload files older than TempMaxAge.
func cleanupTempFiles(deps Dependencies) (int, int64, error) {
	cutoff := deps.now().Add(-deps.TempMaxAge)
	removed := 0
	var freed int64

	err := filepath.WalkDir(deps.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Log.Warnf("Housekeeping could not read '%s': %v", path, err)
			return nil
		}
		if d.IsDir() || !storage.IsTempFile(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			logging.Log.Warnf("Failed to remove abandoned upload '%s': %v", path, err)
			return nil
		}
		logging.Log.Debugf("Removed abandoned upload '%s'", path)
		removed++
		freed += info.Size()
		return nil
	})
	return removed, freed, err
}

// cleanupOrphanThumbnails removes thumbnails whose source file no longer
// exists and drops thumbnail directories left empty.
func cleanupOrphanThumbnails(deps Dependencies) (int, int64, error) {
	thumbsRoot := filepath.Join(deps.Root, storage.ThumbsDirName)
	categories, err := os.ReadDir(thumbsRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, err
	}

	removed := 0
	var freed int64
	for _, cat := range categories {
		if !cat.IsDir() {
			continue
		}
		dir := filepath.Join(thumbsRoot, cat.Name())
		thumbs, err := os.ReadDir(dir)
		if err != nil {
			logging.Log.Warnf("Housekeeping could not read '%s': %v", dir, err)
			continue
		}
		for _, thumb := range thumbs {
			if thumb.IsDir() {
				continue
			}
			source, ok := storage.ThumbnailSource(thumb.Name())
			if ok && storage.Exists(filepath.Join(deps.Root, cat.Name(), source)) {
				continue
			}
			info, infoErr := thumb.Info()
			path := filepath.Join(dir, thumb.Name())
			if err := os.Remove(path); err != nil {
				logging.Log.Warnf("Failed to remove orphaned thumbnail '%s': %v", path, err)
				continue
			}
			removed++
			if infoErr == nil {
				freed += info.Size()
			}
		}
		if err := storage.RemoveIfEmpty(dir); err != nil {
			logging.Log.Warnf("Failed to remove empty thumbnail directory '%s': %v", dir, err)
		}
	}
	return removed, freed, nil
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
