package analysis

import (
	"context"
	"log/slog"
	"strings"
)

// ingestTranscript normalizes a transcript into the audio segment track.
// Native segments win when present; a flat transcript becomes one [0,0]
// segment carrying the full text; nothing at all yields an empty track.
func ingestTranscript(transcript Transcript) []AudioSegment {
	if len(transcript.Segments) > 0 {
		segments := make([]AudioSegment, 0, len(transcript.Segments))
		for _, segment := range transcript.Segments {
			if strings.TrimSpace(segment.Text) == "" {
				continue
			}
			segments = append(segments, segment)
		}
		if len(segments) > 0 {
			return segments
		}
	}
	if text := strings.TrimSpace(transcript.Text); text != "" {
		return []AudioSegment{{Start: 0, End: 0, Text: text}}
	}
	return nil
}

// transcribeOrEmpty runs the transcriber and degrades any failure to an empty
// audio track. A missing or broken WhisperX install should not sink a run
// whose visual tracks are fine; only audio extraction itself stays fatal.
func transcribeOrEmpty(ctx context.Context, transcriber Transcriber, audioPath string, logger *slog.Logger) []AudioSegment {
	transcript, err := transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		logger.Warn("transcription failed; audio track will be empty", "error", err)
		return nil
	}
	return ingestTranscript(transcript)
}
