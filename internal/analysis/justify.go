package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
)

// timestampKey buckets a timestamp at millisecond precision so response
// entries match allowed timestamps exactly or not at all.
func timestampKey(t float64) int64 {
	return int64(math.Round(t * 1000))
}

// buildJustificationTimeline partitions the duration into fixed chunks and
// requests one justification batch per chunk. Each chunk's output is rebuilt
// from the original per-second timestamps: a response entry with a timestamp
// outside the allowed set is dropped, and an omitted timestamp gets an empty
// justification. The final track therefore has exactly one entry per
// per-second description.
func buildJustificationTimeline(ctx context.Context, duration, chunkSeconds float64, seconds []PerSecondDescription, scenes []SceneSegment, audio []AudioSegment, justifier Justifier, logger *slog.Logger) ([]JustificationEntry, error) {
	if len(seconds) == 0 {
		return nil, nil
	}
	if chunkSeconds <= 0 {
		chunkSeconds = duration
		if chunkSeconds <= 0 {
			chunkSeconds = 1
		}
	}

	chunkCount := int(math.Ceil(duration / chunkSeconds))
	if chunkCount < 1 {
		chunkCount = 1
	}
	chunks := make([][]PerSecondDescription, chunkCount)
	for _, second := range seconds {
		index := int(second.T / chunkSeconds)
		if index >= chunkCount {
			index = chunkCount - 1
		}
		chunks[index] = append(chunks[index], second)
	}

	timeline := make([]JustificationEntry, 0, len(seconds))
	for index, chunkItems := range chunks {
		if len(chunkItems) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chunkStart := float64(index) * chunkSeconds
		chunkEnd := chunkStart + chunkSeconds
		if chunkEnd > duration {
			chunkEnd = duration
		}

		allowed := make([]float64, len(chunkItems))
		for i, second := range chunkItems {
			allowed[i] = second.T
		}
		entries, err := justifier.Justify(ctx, JustifyRequest{
			ChunkStart: chunkStart,
			ChunkEnd:   chunkEnd,
			Seconds:    chunkItems,
			Scenes:     scenesIntersecting(scenes, chunkStart, chunkEnd),
			Audio:      audioIntersecting(audio, chunkStart, chunkEnd),
			Allowed:    allowed,
		})
		if err != nil {
			return nil, fmt.Errorf("justification chunk [%.0f, %.0f]: %w", chunkStart, chunkEnd, err)
		}

		allowedSet := make(map[int64]struct{}, len(allowed))
		for _, t := range allowed {
			allowedSet[timestampKey(t)] = struct{}{}
		}
		byTimestamp := make(map[int64]string, len(entries))
		dropped := 0
		for _, entry := range entries {
			key := timestampKey(entry.T)
			if _, ok := allowedSet[key]; !ok {
				dropped++
				continue
			}
			byTimestamp[key] = entry.Justification
		}
		if dropped > 0 {
			logger.Warn("dropped out-of-range justification timestamps", "chunk_start", chunkStart, "dropped", dropped)
		}
		for _, second := range chunkItems {
			timeline = append(timeline, JustificationEntry{
				T:             second.T,
				Justification: byTimestamp[timestampKey(second.T)],
			})
		}
	}
	return timeline, nil
}

// Intersection is inclusive on both ends: a span touching the chunk only at
// its boundary still belongs to the chunk's evidence bundle. Zero-length
// [0,0] spans from flat transcripts land in the first chunk this way.
func scenesIntersecting(scenes []SceneSegment, start, end float64) []SceneSegment {
	var matched []SceneSegment
	for _, scene := range scenes {
		if scene.TStart <= end && scene.TEnd >= start {
			matched = append(matched, scene)
		}
	}
	return matched
}

func audioIntersecting(audio []AudioSegment, start, end float64) []AudioSegment {
	var matched []AudioSegment
	for _, segment := range audio {
		if segment.Start <= end && segment.End >= start {
			matched = append(matched, segment)
		}
	}
	return matched
}
