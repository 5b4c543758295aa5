package media

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// ThumbnailMaxSide is the maximum width or height of a gallery thumbnail.
// The aspect ratio is kept and images are never scaled up.
const ThumbnailMaxSide = 200

// thumbnailSize fits w x h into a ThumbnailMaxSide bounding box.
func thumbnailSize(w, h int) (int, int) {
	if w > h {
		if w > ThumbnailMaxSide {
			return ThumbnailMaxSide, (h * ThumbnailMaxSide) / w
		}
		return w, h
	}
	if h > ThumbnailMaxSide {
		return (w * ThumbnailMaxSide) / h, ThumbnailMaxSide
	}
	return w, h
}

// CreateThumbnail decodes src and writes a scaled JPEG to thumbPath.
func CreateThumbnail(src io.Reader, thumbPath string) error {
	img, _, err := image.Decode(src)
	if err != nil {
		return fmt.Errorf("could not decode image for thumbnail: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return fmt.Errorf("cannot create thumbnail for zero-dimension image")
	}
	newWidth, newHeight := thumbnailSize(bounds.Dx(), bounds.Dy())

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.ApproxBiLinear.Scale(dst, dst.Rect, img, bounds, draw.Over, nil)

	f, err := os.Create(thumbPath)
	if err != nil {
		return fmt.Errorf("could not create thumbnail file: %w", err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, dst, &jpeg.Options{Quality: 75}); err != nil {
		os.Remove(thumbPath)
		return fmt.Errorf("failed to encode thumbnail to jpeg: %w", err)
	}
	return nil
}
