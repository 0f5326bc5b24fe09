package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

type sceneInterval struct {
	TStart float64
	TEnd   float64
}

// sceneIntervals builds the inter-cut intervals: boundaries are the sorted
// unique cut timestamps with 0 and duration inserted, and zero-length
// intervals are dropped.
func sceneIntervals(cuts []float64, duration float64) []sceneInterval {
	if duration <= 0 {
		return nil
	}
	boundaries := make([]float64, 0, len(cuts)+2)
	boundaries = append(boundaries, 0)
	for _, cut := range cuts {
		if cut > 0 && cut < duration {
			boundaries = append(boundaries, cut)
		}
	}
	boundaries = append(boundaries, duration)
	sort.Float64s(boundaries)

	intervals := make([]sceneInterval, 0, len(boundaries)-1)
	for i := 0; i+1 < len(boundaries); i++ {
		start, end := boundaries[i], boundaries[i+1]
		if end-start <= timeEpsilon {
			continue
		}
		intervals = append(intervals, sceneInterval{TStart: start, TEnd: end})
	}
	return intervals
}

// sampleTimestamps picks count representative timestamps inside [tStart, tEnd)
// evenly spaced with a half-step offset so samples sit at interval midpoints
// rather than boundaries. Results are rounded to millisecond precision and
// deduplicated.
func sampleTimestamps(tStart, tEnd float64, count int) []float64 {
	if count < 1 {
		count = 1
	}
	span := tEnd - tStart
	step := span / float64(count)
	samples := make([]float64, 0, count)
	last := -1.0
	for i := 0; i < count; i++ {
		t := round3(tStart + (float64(i)+0.5)*step)
		if t == last {
			continue
		}
		samples = append(samples, t)
		last = t
	}
	return samples
}

// describeScenes requests one multi-frame description per inter-cut interval
// and returns the scene segment track with sequential ids.
func describeScenes(ctx context.Context, cuts []float64, duration float64, frames []string, fps float64, sampleCount, concurrency int, entities []string, describer FrameDescriber, logger *slog.Logger) ([]SceneSegment, error) {
	intervals := sceneIntervals(cuts, duration)
	if len(intervals) == 0 || len(frames) == 0 {
		return nil, nil
	}
	logger.Info("describing scene segments", "segments", len(intervals))

	segments, err := mapOrdered(ctx, concurrency, intervals, func(ctx context.Context, index int, interval sceneInterval) (SceneSegment, error) {
		framePaths := make([]string, 0, sampleCount)
		lastFrame := -1
		for _, t := range sampleTimestamps(interval.TStart, interval.TEnd, sampleCount) {
			frameIndex := frameIndexFor(t, fps, len(frames))
			if frameIndex == lastFrame {
				continue
			}
			framePaths = append(framePaths, frames[frameIndex])
			lastFrame = frameIndex
		}
		payload, err := describer.DescribeScene(ctx, framePaths, entities, interval.TStart, interval.TEnd)
		if err != nil {
			return SceneSegment{}, fmt.Errorf("scene segment [%.3f, %.3f]: %w", interval.TStart, interval.TEnd, err)
		}
		return SceneSegment{
			ID:          index,
			TStart:      round3(interval.TStart),
			TEnd:        round3(interval.TEnd),
			Description: payload.Description,
			KeyElements: payload.KeyElements,
			Confidence:  payload.Confidence,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return segments, nil
}
