// Package media classifies, converts and previews uploaded studio media.
package media

import (
	"path/filepath"
	"strings"

	"inkhub/internal/models"
)

// Kind is the exhaustive classification of an upload by extension.
type Kind int

const (
	KindUnsupported Kind = iota
	KindImage
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unsupported"
	}
}

// MediaType maps a supported kind to its record type.
func (k Kind) MediaType() models.MediaType {
	if k == KindVideo {
		return models.MediaVideo
	}
	return models.MediaImage
}

// DefaultImageExt is the target extension for converted and coerced stills.
const DefaultImageExt = "jpg"

// Format is the result of classifying an extension.
// Ext is the extension the stored file gets; Convert means the bytes must be
// re-encoded to JPEG before storage.
type Format struct {
	Kind    Kind
	Ext     string
	Convert bool
}

// Classify maps a lowercase extension (without the dot) to its storage format.
func Classify(ext string) Format {
	switch ext {
	case "jpg", "jpeg", "png", "webp":
		return Format{Kind: KindImage, Ext: ext}
	case "mp4", "webm":
		return Format{Kind: KindVideo, Ext: ext}
	case "heic", "heif":
		return Format{Kind: KindImage, Ext: DefaultImageExt, Convert: true}
	default:
		return Format{Kind: KindUnsupported, Ext: ext}
	}
}

// ClassifyFilename classifies a stored filename by its extension.
func ClassifyFilename(name string) Format {
	return Classify(strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")))
}

// NormalizeName splits an uploaded filename into a storage-safe base name and
// a lowercase extension. Directory parts are dropped, whitespace runs become a
// single underscore and leading dots are removed so the file is never hidden.
func NormalizeName(original string) (base, ext string) {
	name := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if name == "." || name == "/" {
		return "", ""
	}

	rawExt := filepath.Ext(name)
	base = strings.TrimSuffix(name, rawExt)
	base = strings.Join(strings.Fields(base), "_")
	base = strings.TrimLeft(base, ".")
	ext = strings.ToLower(strings.TrimPrefix(rawExt, "."))
	return base, ext
}
