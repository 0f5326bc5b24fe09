package analysis

import "context"

// Caption is one keyframe description. Its ID is referenced by Events.
type Caption struct {
	ID         int      `json:"id"`
	T          float64  `json:"t"`
	Caption    string   `json:"caption"`
	Actions    []string `json:"actions"`
	Objects    []string `json:"objects"`
	People     []string `json:"people"`
	Setting    string   `json:"setting"`
	Confidence float64  `json:"confidence"`
}

// Event is a contiguous time span attributed to the nearest preceding
// keyframe caption. Events partition [0, duration].
type Event struct {
	TStart    float64 `json:"t_start"`
	TEnd      float64 `json:"t_end"`
	CaptionID int     `json:"caption_id"`
}

// TimedCaption is a caption produced for a specific grid timestamp (dense or
// scene-cut aligned).
type TimedCaption struct {
	T          float64  `json:"t"`
	Caption    string   `json:"caption"`
	Actions    []string `json:"actions"`
	Objects    []string `json:"objects"`
	People     []string `json:"people"`
	Setting    string   `json:"setting"`
	Confidence float64  `json:"confidence"`
}

// PerSecondDescription is one entry of the per-second description track.
type PerSecondDescription struct {
	T           float64  `json:"t"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
	Objects     []string `json:"objects"`
	People      []string `json:"people"`
	Setting     string   `json:"setting"`
	Confidence  float64  `json:"confidence"`
}

// SceneSegment describes one inter-cut interval of the video.
type SceneSegment struct {
	ID          int      `json:"id"`
	TStart      float64  `json:"t_start"`
	TEnd        float64  `json:"t_end"`
	Description string   `json:"description"`
	KeyElements []string `json:"key_elements"`
	Confidence  float64  `json:"confidence"`
}

// AudioSegment is one normalized transcript span. A transcript with no native
// segmentation becomes a single [0,0] segment carrying the full text, so
// callers must not assume a positive duration.
type AudioSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// BackgroundUpdate is a sparse narrative update emitted on content-change ticks.
type BackgroundUpdate struct {
	T         float64 `json:"t"`
	Narration string  `json:"narration"`
}

// JustificationEntry explains why one per-second moment is likely present in
// the final cut.
type JustificationEntry struct {
	T             float64 `json:"t"`
	Justification string  `json:"justification"`
}

// Result is the aggregate multi-track analysis document. It is built once per
// run, persisted, and never mutated afterward.
type Result struct {
	FPS                   float64                `json:"fps"`
	Duration              float64                `json:"duration"`
	SceneCuts             []float64              `json:"scene_cuts"`
	Captions              []Caption              `json:"captions"`
	Events                []Event                `json:"events"`
	DenseCaptions         []TimedCaption         `json:"dense_captions"`
	SceneCaptions         []TimedCaption         `json:"scene_captions"`
	PerSecondDescriptions []PerSecondDescription `json:"per_second_descriptions"`
	SceneSegments         []SceneSegment         `json:"scene_segments"`
	JustificationTimeline []JustificationEntry   `json:"justification_timeline"`
	BackgroundUpdates     []BackgroundUpdate     `json:"background_updates"`
	AudioSegments         []AudioSegment         `json:"audio_segments"`
}

// CaptionPayload is a vision response for a keyframe caption request.
type CaptionPayload struct {
	Caption    string
	Actions    []string
	Objects    []string
	People     []string
	Setting    string
	Confidence float64
}

// DescriptionPayload is a vision response for a scene-state description request.
type DescriptionPayload struct {
	Description string
	Actions     []string
	Objects     []string
	People      []string
	Setting     string
	Confidence  float64
}

// ScenePayload is a vision response for a multi-frame scene segment request.
type ScenePayload struct {
	Description string
	KeyElements []string
	Confidence  float64
}

// SummaryRequest carries the evidence window handed to the narrator.
type SummaryRequest struct {
	PreviousSummary string
	KnownEntities   []string
	RecentCaptions  []string
	RecentAudio     []string
}

// JustifyRequest bundles the evidence for one justification chunk. Allowed
// lists the only timestamps a response may reference.
type JustifyRequest struct {
	ChunkStart float64
	ChunkEnd   float64
	Seconds    []PerSecondDescription
	Scenes     []SceneSegment
	Audio      []AudioSegment
	Allowed    []float64
}

// FrameDescriber is the vision-description capability.
type FrameDescriber interface {
	// CaptionFrame describes the visible actions in a single frame.
	CaptionFrame(ctx context.Context, framePath string, knownEntities []string) (CaptionPayload, error)
	// DescribeFrame describes the overall scene state in a single frame.
	DescribeFrame(ctx context.Context, framePath string, knownEntities []string) (DescriptionPayload, error)
	// DescribeScene describes one camera-angle segment from several frames.
	DescribeScene(ctx context.Context, framePaths []string, knownEntities []string, tStart, tEnd float64) (ScenePayload, error)
}

// Narrator is the narrative-summarization capability.
type Narrator interface {
	Summarize(ctx context.Context, req SummaryRequest) (string, error)
}

// Justifier is the justification-generation capability.
type Justifier interface {
	Justify(ctx context.Context, req JustifyRequest) ([]JustificationEntry, error)
}

// Transcriber is the speech-to-text capability. Implementations return either
// native segments, a flat transcript, or both.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (Transcript, error)
}

// Transcript is the raw speech-to-text result before ingestion.
type Transcript struct {
	Segments []AudioSegment
	Text     string
}
