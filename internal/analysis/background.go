package analysis

import (
	"context"
	"fmt"
	"log/slog"
)

type backgroundParams struct {
	Stride float64
	Window float64
}

// aggregateBackground walks fixed ticks across the duration and asks the
// narrator for an update only when newer evidence has entered the trailing
// window since the previous tick. Change detection compares the newest caption
// id and newest audio segment index in the window; an unchanged pair skips the
// call entirely.
func aggregateBackground(ctx context.Context, duration float64, captions []Caption, audio []AudioSegment, entities []string, narrator Narrator, params backgroundParams, logger *slog.Logger) ([]BackgroundUpdate, error) {
	if len(captions) == 0 && len(audio) == 0 {
		return nil, nil
	}
	if params.Stride <= 0 {
		return nil, nil
	}

	var updates []BackgroundUpdate
	summary := ""
	lastCaptionMarker := -1
	lastAudioMarker := -1

	for _, t := range tickGrid(duration, params.Stride) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		windowStart := t - params.Window
		if windowStart < 0 {
			windowStart = 0
		}

		newestCaption := -1
		var windowCaptions []string
		for _, caption := range captions {
			if caption.T >= windowStart-timeEpsilon && caption.T <= t+timeEpsilon {
				newestCaption = caption.ID
				if caption.Caption != "" {
					windowCaptions = append(windowCaptions, caption.Caption)
				}
			}
		}
		newestAudio := -1
		var windowAudio []string
		for i, segment := range audio {
			if segment.Start <= t+timeEpsilon && segment.End >= windowStart-timeEpsilon {
				newestAudio = i
				windowAudio = append(windowAudio, segment.Text)
			}
		}

		if newestCaption == lastCaptionMarker && newestAudio == lastAudioMarker {
			continue
		}

		narration, err := narrator.Summarize(ctx, SummaryRequest{
			PreviousSummary: summary,
			KnownEntities:   snapshotEntities(entities),
			RecentCaptions:  windowCaptions,
			RecentAudio:     windowAudio,
		})
		if err != nil {
			return nil, fmt.Errorf("background narration at %.1fs: %w", t, err)
		}
		if narration != "" {
			updates = append(updates, BackgroundUpdate{T: round3(t), Narration: narration})
		}
		summary = narration
		lastCaptionMarker = newestCaption
		lastAudioMarker = newestAudio
		logger.Debug("background update", "t", round3(t), "caption_marker", newestCaption, "audio_marker", newestAudio)
	}
	return updates, nil
}
