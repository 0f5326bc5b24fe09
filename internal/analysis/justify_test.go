package analysis

import (
	"context"
	"testing"

	"clipsight/internal/logging"
)

func perSecondTrack(times ...float64) []PerSecondDescription {
	track := make([]PerSecondDescription, len(times))
	for i, t := range times {
		track[i] = PerSecondDescription{T: t, Description: "moment"}
	}
	return track
}

func TestJustificationOneEntryPerSecond(t *testing.T) {
	seconds := perSecondTrack(0, 1, 2, 3, 4, 5)
	stub := &stubServices{}
	stub.justify = func(req JustifyRequest) ([]JustificationEntry, error) {
		return []JustificationEntry{
			{T: 1, Justification: "hook"},
			{T: 4, Justification: "call to action"},
		}, nil
	}

	timeline, err := buildJustificationTimeline(context.Background(), 5, 60, seconds, nil, nil, stub, logging.NewNop())
	if err != nil {
		t.Fatalf("buildJustificationTimeline: %v", err)
	}
	if len(timeline) != len(seconds) {
		t.Fatalf("expected %d entries, got %d", len(seconds), len(timeline))
	}
	for i, entry := range timeline {
		if entry.T != seconds[i].T {
			t.Fatalf("entry[%d].T = %v, want %v", i, entry.T, seconds[i].T)
		}
	}
	if timeline[1].Justification != "hook" || timeline[4].Justification != "call to action" {
		t.Fatalf("unexpected justifications: %+v", timeline)
	}
	if timeline[0].Justification != "" {
		t.Fatalf("omitted timestamps must default to empty, got %q", timeline[0].Justification)
	}
}

func TestJustificationDropsOutOfRangeTimestamps(t *testing.T) {
	seconds := perSecondTrack(4, 5, 6)
	stub := &stubServices{}
	stub.justify = func(req JustifyRequest) ([]JustificationEntry, error) {
		return []JustificationEntry{
			{T: 4.999, Justification: "drifted"},
			{T: 6, Justification: "kept"},
		}, nil
	}

	timeline, err := buildJustificationTimeline(context.Background(), 10, 60, seconds, nil, nil, stub, logging.NewNop())
	if err != nil {
		t.Fatalf("buildJustificationTimeline: %v", err)
	}
	if len(timeline) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(timeline))
	}
	if timeline[1].T != 5 || timeline[1].Justification != "" {
		t.Fatalf("drifted timestamp must be discarded, got %+v", timeline[1])
	}
	if timeline[2].Justification != "kept" {
		t.Fatalf("expected in-range entry kept, got %+v", timeline[2])
	}
}

func TestJustificationChunkBundles(t *testing.T) {
	// 90s video with 60s chunks: two chunks. The scene and audio context
	// handed to each chunk is limited to intersecting spans.
	var seconds []PerSecondDescription
	for i := 0; i <= 90; i++ {
		seconds = append(seconds, PerSecondDescription{T: float64(i)})
	}
	scenes := []SceneSegment{
		{ID: 0, TStart: 0, TEnd: 45, Description: "first half"},
		{ID: 1, TStart: 45, TEnd: 90, Description: "second half"},
	}
	audio := []AudioSegment{
		{Start: 10, End: 20, Text: "early"},
		{Start: 70, End: 80, Text: "late"},
	}
	stub := &stubServices{}

	timeline, err := buildJustificationTimeline(context.Background(), 90, 60, seconds, scenes, audio, stub, logging.NewNop())
	if err != nil {
		t.Fatalf("buildJustificationTimeline: %v", err)
	}
	if len(timeline) != len(seconds) {
		t.Fatalf("expected %d entries, got %d", len(seconds), len(timeline))
	}
	if len(stub.justifyCalls) != 2 {
		t.Fatalf("expected 2 chunk requests, got %d", len(stub.justifyCalls))
	}

	first, second := stub.justifyCalls[0], stub.justifyCalls[1]
	if first.ChunkStart != 0 || first.ChunkEnd != 60 {
		t.Fatalf("unexpected first chunk bounds: %+v", first)
	}
	if second.ChunkStart != 60 || second.ChunkEnd != 90 {
		t.Fatalf("unexpected second chunk bounds: %+v", second)
	}
	if len(first.Seconds) != 60 || len(second.Seconds) != 31 {
		t.Fatalf("unexpected chunk sizes: %d, %d", len(first.Seconds), len(second.Seconds))
	}
	if len(first.Audio) != 1 || first.Audio[0].Text != "early" {
		t.Fatalf("unexpected first chunk audio: %+v", first.Audio)
	}
	if len(second.Audio) != 1 || second.Audio[0].Text != "late" {
		t.Fatalf("unexpected second chunk audio: %+v", second.Audio)
	}
	if len(first.Scenes) != 2 || len(second.Scenes) != 1 {
		t.Fatalf("unexpected scene context: %d, %d", len(first.Scenes), len(second.Scenes))
	}
}

func TestJustificationBoundarySpansSharedAcrossChunks(t *testing.T) {
	// Spans touching a chunk edge belong to the evidence bundle on both
	// sides, and a flat-transcript [0,0] span lands in the first chunk.
	var seconds []PerSecondDescription
	for i := 0; i <= 90; i++ {
		seconds = append(seconds, PerSecondDescription{T: float64(i)})
	}
	scenes := []SceneSegment{
		{ID: 0, TStart: 60, TEnd: 90, Description: "starts on the edge"},
	}
	audio := []AudioSegment{
		{Start: 0, End: 0, Text: "flat transcript"},
		{Start: 55, End: 60, Text: "ends on the edge"},
	}
	stub := &stubServices{}

	if _, err := buildJustificationTimeline(context.Background(), 90, 60, seconds, scenes, audio, stub, logging.NewNop()); err != nil {
		t.Fatalf("buildJustificationTimeline: %v", err)
	}
	if len(stub.justifyCalls) != 2 {
		t.Fatalf("expected 2 chunk requests, got %d", len(stub.justifyCalls))
	}

	first, second := stub.justifyCalls[0], stub.justifyCalls[1]
	if len(first.Scenes) != 1 || len(second.Scenes) != 1 {
		t.Fatalf("boundary scene must reach both chunks: %d, %d", len(first.Scenes), len(second.Scenes))
	}
	if len(first.Audio) != 2 {
		t.Fatalf("first chunk must carry flat and boundary audio, got %+v", first.Audio)
	}
	if len(second.Audio) != 1 || second.Audio[0].Text != "ends on the edge" {
		t.Fatalf("boundary audio must reach the second chunk, got %+v", second.Audio)
	}
}

func TestJustificationEmptyPerSecondTrack(t *testing.T) {
	stub := &stubServices{}
	timeline, err := buildJustificationTimeline(context.Background(), 10, 60, nil, nil, nil, stub, logging.NewNop())
	if err != nil {
		t.Fatalf("buildJustificationTimeline: %v", err)
	}
	if timeline != nil || len(stub.justifyCalls) != 0 {
		t.Fatalf("expected no work for empty track, got %+v", timeline)
	}
}
