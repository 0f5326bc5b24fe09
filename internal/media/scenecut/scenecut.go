package scenecut

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"clipsight/internal/logging"
)

var ptsTimePattern = regexp.MustCompile(`pts_time:(\d+(?:\.\d+)?)`)

// Detect runs an ffmpeg scene-change pass over the source video and returns
// the cut timestamps in seconds, rounded to millisecond precision and
// deduplicated while preserving ascending order.
//
// Detection is best-effort: a failing ffmpeg process degrades to an empty cut
// list so the rest of the pipeline treats the whole video as one segment.
func Detect(ctx context.Context, ffmpegBinary, source string, threshold float64, logger *slog.Logger) []float64 {
	logger = logging.NewComponentLogger(logger, "scene-cut")
	if source == "" {
		logger.Warn("scene detection skipped: empty source path")
		return nil
	}

	args := []string{
		"-hide_banner",
		"-i", source,
		"-an",
		"-sn",
		"-dn",
		"-vf", fmt.Sprintf("select='gt(scene,%g)',showinfo", threshold),
		"-f", "null",
		"-",
	}
	cmd := exec.CommandContext(ctx, ffmpegBinary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		logger.Warn("scene detection failed; continuing with no cuts", "error", err)
		return nil
	}

	cuts := ParseShowinfo(string(output))
	logger.Debug("scene detection complete", "cuts", len(cuts))
	return cuts
}

// ParseShowinfo extracts the presentation timestamps from ffmpeg showinfo
// diagnostic lines.
func ParseShowinfo(output string) []float64 {
	var cuts []float64
	seen := make(map[float64]struct{})
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "pts_time:") {
			continue
		}
		match := ptsTimePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		rounded := math.Round(value*1000) / 1000
		if _, ok := seen[rounded]; ok {
			continue
		}
		seen[rounded] = struct{}{}
		cuts = append(cuts, rounded)
	}
	return cuts
}
