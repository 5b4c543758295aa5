// filepath: internal/media/conversion.go
package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"inkhub/internal/logging"

	// Register decoders for the pure-Go fallback.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

var (
	// ffmpegPath holds the validated path to the executable.
	ffmpegPath string
	// ffmpegCheckOnce ensures we only look for ffmpeg once.
	ffmpegCheckOnce sync.Once
)

// Initialize sets up the path for the ffmpeg executable.
// It should be called once at startup.
func Initialize(ffmpegConfiguredPath string) {
	ffmpegCheckOnce.Do(func() {
		if ffmpegConfiguredPath != "" {
			if _, err := os.Stat(ffmpegConfiguredPath); err == nil {
				logging.Log.Infof("Using configured FFmpeg path: %s", ffmpegConfiguredPath)
				ffmpegPath = ffmpegConfiguredPath
				return
			}
			logging.Log.Warnf("Configured ffmpeg_path '%s' not found, falling back to system PATH.", ffmpegConfiguredPath)
		}

		path, err := exec.LookPath("ffmpeg")
		if err != nil {
			logging.Log.Warn("---------------------------------------------------------")
			logging.Log.Warn("FFmpeg executable not found in configured path or system PATH.")
			logging.Log.Warn("HEIC uploads will only convert if a pure-Go decoder can read them.")
			logging.Log.Warn("---------------------------------------------------------")
			ffmpegPath = ""
			return
		}
		logging.Log.Infof("FFmpeg found in PATH: %s. HEIC conversion enabled.", path)
		ffmpegPath = path
	})
}

// IsFFmpegAvailable checks if the ffmpeg executable path was successfully found.
func IsFFmpegAvailable() bool {
	Initialize("")
	return ffmpegPath != ""
}

// GetFFmpegPath returns the determined path to the ffmpeg executable.
func GetFFmpegPath() string {
	Initialize("")
	return ffmpegPath
}

// Converter re-encodes a still image into a JPEG file at outputPath.
type Converter interface {
	ConvertToJPEG(ctx context.Context, input io.Reader, outputPath string) error
}

// JPEGConverter converts with FFmpeg when available and falls back to the
// pure-Go decoders otherwise.
type JPEGConverter struct{}

var _ Converter = JPEGConverter{}

// ConvertToJPEG implements Converter.
func (JPEGConverter) ConvertToJPEG(ctx context.Context, input io.Reader, outputPath string) error {
	if IsFFmpegAvailable() {
		return ConvertWithFFmpeg(ctx, input, outputPath)
	}
	logging.Log.Warnf("FFmpeg not found. Attempting pure Go conversion for %s", outputPath)
	return ConvertImagePureGoToFile(input, outputPath)
}

// ConvertWithFFmpeg spools the input to a temp file and lets ffmpeg write a
// single JPEG frame to outputPath. The HEIF demuxer needs a seekable input,
// so stdin piping is not an option here.
func ConvertWithFFmpeg(ctx context.Context, input io.Reader, outputPath string) error {
	tmp, err := os.CreateTemp("", "inkhub-convert-*")
	if err != nil {
		return fmt.Errorf("failed to create conversion temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, input); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to spool conversion input: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close conversion input: %w", err)
	}

	return RunFFmpegToFile(ctx, tmp.Name(), outputPath, "mjpeg", "-frames:v", "1", "-q:v", "3")
}

// RunFFmpegToFile executes an FFmpeg command reading inputPath and writing
// directly to outputPath in the given format.
func RunFFmpegToFile(ctx context.Context, inputPath, outputPath, format string, args ...string) error {
	cmdArgs := []string{
		"-y", // Overwrite output file
		"-i", inputPath,
	}
	cmdArgs = append(cmdArgs, args...)
	cmdArgs = append(cmdArgs, "-f", format, outputPath)

	cmd := exec.CommandContext(ctx, GetFFmpegPath(), cmdArgs...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logging.Log.Debugf("Starting FFmpeg conversion (to file): %s %s", GetFFmpegPath(), strings.Join(cmdArgs, " "))

	if err := cmd.Run(); err != nil {
		logging.Log.Errorf("FFmpeg execution failed: %v\nFFmpeg output:\n%s", err, stderr.String())
		os.Remove(outputPath)
		return fmt.Errorf("ffmpeg error: %s", stderr.String())
	}

	logging.Log.Debugf("Finished FFmpeg conversion (to file). Output: %s", outputPath)
	return nil
}

// ConvertImagePureGoToFile attempts to decode an image and save it as a JPEG
// using only pure Go libraries.
func ConvertImagePureGoToFile(inputReader io.Reader, outputPath string) error {
	img, originalFormat, err := image.Decode(inputReader)
	if err != nil {
		return fmt.Errorf("failed to decode image for conversion: %w", err)
	}
	logging.Log.Debugf("PureGo converter: decoded image format %s", originalFormat)

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file for jpeg: %w", err)
	}
	defer outputFile.Close()

	if err := jpeg.Encode(outputFile, img, &jpeg.Options{Quality: 85}); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to encode jpeg: %w", err)
	}

	return nil
}
