package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"inkhub/internal/config"
	"inkhub/internal/logging"
	"inkhub/internal/media"
	"inkhub/internal/models"
	"inkhub/internal/storage"

	"github.com/oklog/ulid/v2"
)

// maxBaseNameBytes leaves room under storage.MaxFileNameBytes for the
// "-<ulid>" collision suffix and the extension.
const maxBaseNameBytes = 200

// fallbackBaseName is used when nothing usable is left of the uploaded name.
const fallbackBaseName = "upload"

var _ UploadService = (*uploadService)(nil)

type uploadService struct {
	Store         MediaStore
	Converter     media.Converter
	Auditor       Auditor
	OnConflict    string
	CoerceUnknown bool
}

// NewUploadService creates the upload pipeline on top of store.
func NewUploadService(store MediaStore, converter media.Converter, auditor Auditor, cfg *config.Config) *uploadService {
	return &uploadService{
		Store:         store,
		Converter:     converter,
		Auditor:       auditor,
		OnConflict:    cfg.Storage.OnConflict,
		CoerceUnknown: cfg.Storage.CoerceUnknown,
	}
}

// Upload stores one file in its category bucket and returns the record.
func (s *uploadService) Upload(ctx context.Context, in UploadInput) (*models.MediaRecord, error) {
	// 1. Required fields
	if in.Reader == nil || in.Filename == "" {
		return nil, fmt.Errorf("%w: file is required", ErrValidation)
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if err := storage.ValidateCategory(category); err != nil {
		return nil, asValidation(err)
	}

	// 2. Name and format
	base, ext := media.NormalizeName(in.Filename)
	base = truncateBytes(base, maxBaseNameBytes)
	if base == "" {
		base = fallbackBaseName
	}

	format := media.Classify(ext)
	if format.Kind == media.KindUnsupported {
		if !s.CoerceUnknown {
			return nil, fmt.Errorf("%w: .%s", ErrUnsupported, ext)
		}
		logging.Log.Warnf("Coercing unsupported upload '%s' to .%s", in.Filename, media.DefaultImageExt)
		format = media.Format{Kind: media.KindImage, Ext: media.DefaultImageExt}
	}

	// 3. Legacy still formats are re-encoded before storage
	data := in.Reader
	if format.Convert {
		converted, cleanup, err := s.convert(ctx, in.Reader)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		data = converted
	}

	// 4. Final name, honoring the collision policy
	name := base + "." + format.Ext
	if s.OnConflict != config.ConflictOverwrite {
		exists, err := s.Store.Exists(category, name)
		if err != nil {
			return nil, err
		}
		if exists {
			name = base + "-" + strings.ToLower(ulid.Make().String()) + "." + format.Ext
		}
	}

	// 5. Store
	rec, err := s.Store.Save(ctx, category, name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	logging.Log.Infof("Stored upload '%s' as %s", in.Filename, rec.ID)
	if s.Auditor != nil {
		s.Auditor.Log(ctx, "media.upload", actorFromContext(ctx), rec.ID, map[string]interface{}{
			"original_name": in.Filename,
			"size":          rec.Size,
			"converted":     format.Convert,
		})
	}
	return rec, nil
}

// convert re-encodes in to JPEG via a temp file and returns a reader over
// the result plus a cleanup func.
func (s *uploadService) convert(ctx context.Context, in io.Reader) (io.Reader, func(), error) {
	tmpPath, err := storage.TempPath(os.TempDir())
	if err != nil {
		return nil, nil, fmt.Errorf("could not create conversion output: %w", err)
	}

	if err := s.Converter.ConvertToJPEG(ctx, in, tmpPath); err != nil {
		os.Remove(tmpPath)
		return nil, nil, fmt.Errorf("image conversion failed: %w", err)
	}

	f, err := os.Open(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return nil, nil, fmt.Errorf("could not read converted image: %w", err)
	}
	cleanup := func() {
		f.Close()
		os.Remove(tmpPath)
	}
	return f, cleanup, nil
}

// truncateBytes cuts s to at most n bytes without splitting a rune.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

type actorKey struct{}

// WithActor returns a context carrying the authenticated actor for audit logs.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func actorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return "anonymous"
}
