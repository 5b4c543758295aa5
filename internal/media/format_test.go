package media

import (
	"testing"

	"inkhub/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		ext      string
		kind     Kind
		finalExt string
		convert  bool
	}{
		{"jpg", KindImage, "jpg", false},
		{"jpeg", KindImage, "jpeg", false},
		{"png", KindImage, "png", false},
		{"webp", KindImage, "webp", false},
		{"mp4", KindVideo, "mp4", false},
		{"webm", KindVideo, "webm", false},
		{"heic", KindImage, "jpg", true},
		{"heif", KindImage, "jpg", true},
		{"gif", KindUnsupported, "gif", false},
		{"", KindUnsupported, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.ext, func(t *testing.T) {
			f := Classify(tc.ext)
			assert.Equal(t, tc.kind, f.Kind)
			assert.Equal(t, tc.finalExt, f.Ext)
			assert.Equal(t, tc.convert, f.Convert)
		})
	}
}

func TestClassifyFilename(t *testing.T) {
	assert.Equal(t, KindVideo, ClassifyFilename("session.MP4").Kind)
	assert.Equal(t, KindImage, ClassifyFilename("rose.jpg").Kind)
	assert.Equal(t, KindUnsupported, ClassifyFilename("notes.txt").Kind)
	assert.Equal(t, models.MediaVideo, KindVideo.MediaType())
	assert.Equal(t, models.MediaImage, KindImage.MediaType())
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		base  string
		ext   string
	}{
		{"My Photo.HEIC", "My_Photo", "heic"},
		{"  spaced   out  name .PNG", "spaced_out_name", "png"},
		{"C:\\Users\\ink\\koi fish.jpg", "koi_fish", "jpg"},
		{"../../etc/passwd", "passwd", ""},
		{".hidden.webp", "hidden", "webp"},
		{"tab\tand\nnewline.mp4", "tab_and_newline", "mp4"},
		{"archive.tar.gz", "archive.tar", "gz"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			base, ext := NormalizeName(tc.input)
			assert.Equal(t, tc.base, base)
			assert.Equal(t, tc.ext, ext)
		})
	}
}
