package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
)

// keyframeParams holds the thresholds driving keyframe selection.
type keyframeParams struct {
	FPS           float64
	DiffThreshold float64
	MinGap        float64
	MaxGap        float64
}

// keyframeSelector is the stateful per-frame decision rule. A frame is
// selected when it is the first frame, when its signature moved enough and the
// minimum gap has passed, or when the maximum gap has passed regardless of
// visual change.
type keyframeSelector struct {
	params       keyframeParams
	prev         signature
	hasPrev      bool
	lastSelected float64
}

func newKeyframeSelector(params keyframeParams) *keyframeSelector {
	return &keyframeSelector{params: params, lastSelected: math.Inf(-1)}
}

func (s *keyframeSelector) consider(t float64, sig signature) bool {
	selected := false
	if !s.hasPrev {
		selected = true
	} else {
		diff := signatureDiff(sig, s.prev)
		gap := t - s.lastSelected
		if (diff >= s.params.DiffThreshold && gap >= s.params.MinGap) || gap >= s.params.MaxGap {
			selected = true
		}
	}
	s.prev = sig
	s.hasPrev = true
	if selected {
		s.lastSelected = t
	}
	return selected
}

// keyframeScan is the output of the sequential keyframe pass.
type keyframeScan struct {
	Captions []Caption
	Events   []Event
	Entities []string
}

// scanKeyframes walks the ordered frame sequence once, requesting one caption
// per selected frame and assembling the contiguous event track. It is the only
// stage allowed to grow the known-entities list; every other stage receives a
// snapshot.
func scanKeyframes(ctx context.Context, frames []string, duration float64, params keyframeParams, describer FrameDescriber, logger *slog.Logger) (keyframeScan, error) {
	var scan keyframeScan
	selector := newKeyframeSelector(params)
	segmentStart := 0.0
	lastCaptionID := -1

	for i, path := range frames {
		if err := ctx.Err(); err != nil {
			return keyframeScan{}, err
		}
		t := float64(i) / params.FPS
		sig, err := loadSignature(path)
		if err != nil {
			return keyframeScan{}, fmt.Errorf("keyframe scan: %w", err)
		}
		if !selector.consider(t, sig) {
			continue
		}

		payload, err := describer.CaptionFrame(ctx, path, snapshotEntities(scan.Entities))
		if err != nil {
			return keyframeScan{}, fmt.Errorf("keyframe scan: caption at %.3fs: %w", t, err)
		}
		id := len(scan.Captions)
		scan.Captions = append(scan.Captions, Caption{
			ID:         id,
			T:          round3(t),
			Caption:    payload.Caption,
			Actions:    payload.Actions,
			Objects:    payload.Objects,
			People:     payload.People,
			Setting:    payload.Setting,
			Confidence: payload.Confidence,
		})
		scan.Entities = mergeEntities(scan.Entities, payload.People, payload.Objects)
		if lastCaptionID >= 0 {
			scan.Events = append(scan.Events, Event{TStart: round3(segmentStart), TEnd: round3(t), CaptionID: lastCaptionID})
			segmentStart = t
		}
		lastCaptionID = id
		logger.Debug("keyframe selected", "t", round3(t), "caption_id", id)
	}

	if lastCaptionID >= 0 {
		scan.Events = append(scan.Events, Event{TStart: round3(segmentStart), TEnd: round3(duration), CaptionID: lastCaptionID})
	}
	return scan, nil
}

// mergeEntities appends newly named people and objects to the accumulator,
// deduplicated and in first-seen order.
func mergeEntities(entities []string, groups ...[]string) []string {
	seen := make(map[string]struct{}, len(entities))
	for _, entity := range entities {
		seen[entity] = struct{}{}
	}
	for _, group := range groups {
		for _, name := range group {
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			entities = append(entities, name)
		}
	}
	return entities
}

// snapshotEntities copies the accumulator so concurrently dispatched requests
// never observe later growth.
func snapshotEntities(entities []string) []string {
	if len(entities) == 0 {
		return nil
	}
	return append([]string(nil), entities...)
}
