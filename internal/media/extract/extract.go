package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// FrameRequest describes a frame-sequence extraction.
type FrameRequest struct {
	Source string
	// OutputDir receives the numbered JPEG sequence.
	OutputDir string
	// FPS is the sampling rate in frames per second.
	FPS float64
	// Scale is the fixed frame width in pixels; height is auto-scaled.
	Scale int
}

// Frames extracts a regularly-sampled, scaled JPEG frame sequence with ffmpeg.
// It returns the sorted frame paths. Any ffmpeg failure is returned to the
// caller; frame extraction failures abort an analysis run.
func Frames(ctx context.Context, ffmpegBinary string, req FrameRequest) ([]string, error) {
	if req.Source == "" {
		return nil, fmt.Errorf("extract frames: source path required")
	}
	if req.FPS <= 0 {
		return nil, fmt.Errorf("extract frames: invalid fps %v", req.FPS)
	}
	if req.Scale <= 0 {
		return nil, fmt.Errorf("extract frames: invalid scale %d", req.Scale)
	}
	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("extract frames: ensure output dir: %w", err)
	}

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", req.Source,
		"-vf", fmt.Sprintf("fps=%g,scale=%d:-1", req.FPS, req.Scale),
		"-q:v", "3",
		filepath.Join(req.OutputDir, "%06d.jpg"),
	}
	cmd := exec.CommandContext(ctx, ffmpegBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg frames: %w: %s", err, strings.TrimSpace(string(output)))
	}

	return listFrames(req.OutputDir)
}

// Audio extracts the audio track as a mono 16kHz WAV file suitable for
// WhisperX. A missing or failed audio stream is returned as an error; the
// caller decides whether that degrades or aborts the run.
func Audio(ctx context.Context, ffmpegBinary, source, dest string) error {
	if source == "" {
		return fmt.Errorf("extract audio: source path required")
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
	cmd := exec.CommandContext(ctx, ffmpegBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg audio: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func listFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("extract frames: read output dir: %w", err)
	}
	frames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".jpg") {
			frames = append(frames, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(frames)
	return frames, nil
}
