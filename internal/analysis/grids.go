package analysis

import "math"

const timeEpsilon = 1e-9

// round3 rounds a timestamp to millisecond precision.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// frameIndexFor maps a timestamp onto the nearest sampled frame index,
// clamped to the valid range.
func frameIndexFor(t, fps float64, frameCount int) int {
	if frameCount == 0 {
		return 0
	}
	index := int(math.Round(t * fps))
	if index < 0 {
		return 0
	}
	if index >= frameCount {
		return frameCount - 1
	}
	return index
}

// tickGrid returns the timestamps 0, interval, 2*interval, ... up to and
// including duration.
func tickGrid(duration, interval float64) []float64 {
	if duration < 0 || interval <= 0 {
		return nil
	}
	ticks := make([]float64, 0, int(duration/interval)+1)
	for i := 0; ; i++ {
		t := float64(i) * interval
		if t > duration+timeEpsilon {
			break
		}
		ticks = append(ticks, t)
	}
	return ticks
}

// frameTick is a grid timestamp bound to the sampled frame that represents it.
type frameTick struct {
	T          float64
	FrameIndex int
}

// collapseTicks maps each tick to its frame index and drops ticks whose frame
// matches the previously kept tick's frame. A coarse frame grid would
// otherwise produce duplicate external calls for the same image; the dropped
// ticks receive no description at all.
func collapseTicks(ticks []float64, fps float64, frameCount int) []frameTick {
	if len(ticks) == 0 || frameCount == 0 {
		return nil
	}
	kept := make([]frameTick, 0, len(ticks))
	lastIndex := -1
	for _, t := range ticks {
		index := frameIndexFor(t, fps, frameCount)
		if index == lastIndex {
			continue
		}
		kept = append(kept, frameTick{T: t, FrameIndex: index})
		lastIndex = index
	}
	return kept
}
