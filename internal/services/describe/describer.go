package describe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"clipsight/internal/analysis"
	"clipsight/internal/logging"
	"clipsight/internal/services/chat"
)

// completionClient is the slice of chat.Client the describer needs. Tests
// substitute a stub.
type completionClient interface {
	Complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)
	CompleteVision(ctx context.Context, model, systemPrompt string, parts []chat.Part) (string, error)
}

// Config selects the models used for vision and text completions.
type Config struct {
	VisionModel string
	TextModel   string
}

// Service turns chat completions into structured frame, scene, narration, and
// justification payloads. It implements analysis.FrameDescriber,
// analysis.Narrator, and analysis.Justifier.
type Service struct {
	client completionClient
	cfg    Config
	logger *slog.Logger
}

// NewService constructs a describer around the supplied chat client.
func NewService(client completionClient, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		client: client,
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "describe"),
	}
}

// CaptionFrame describes the visible actions in one frame.
func (s *Service) CaptionFrame(ctx context.Context, framePath string, knownEntities []string) (analysis.CaptionPayload, error) {
	parts, err := visionParts(framePath, withEntities(captionUserPrompt, knownEntities))
	if err != nil {
		return analysis.CaptionPayload{}, err
	}
	content, err := s.client.CompleteVision(ctx, s.cfg.VisionModel, captionSystemPrompt, parts)
	if err != nil {
		return analysis.CaptionPayload{}, fmt.Errorf("caption frame: %w", err)
	}
	payload, cleaned := parsePayload(content)
	return analysis.CaptionPayload{
		Caption:    captionText(payload, cleaned),
		Actions:    coerceList(payload.Actions),
		Objects:    coerceList(payload.Objects),
		People:     coerceList(payload.People),
		Setting:    coerceSetting(payload.Setting),
		Confidence: clampConfidence(payload.Confidence),
	}, nil
}

// DescribeFrame describes the overall scene state in one frame.
func (s *Service) DescribeFrame(ctx context.Context, framePath string, knownEntities []string) (analysis.DescriptionPayload, error) {
	parts, err := visionParts(framePath, withEntities(describeUserPrompt, knownEntities))
	if err != nil {
		return analysis.DescriptionPayload{}, err
	}
	content, err := s.client.CompleteVision(ctx, s.cfg.VisionModel, describeSystemPrompt, parts)
	if err != nil {
		return analysis.DescriptionPayload{}, fmt.Errorf("describe frame: %w", err)
	}
	payload, cleaned := parsePayload(content)
	return analysis.DescriptionPayload{
		Description: descriptionText(payload, cleaned),
		Actions:     coerceList(payload.Actions),
		Objects:     coerceList(payload.Objects),
		People:      coerceList(payload.People),
		Setting:     coerceSetting(payload.Setting),
		Confidence:  clampConfidence(payload.Confidence),
	}, nil
}

// DescribeScene summarizes one camera-angle segment from several frames.
func (s *Service) DescribeScene(ctx context.Context, framePaths []string, knownEntities []string, tStart, tEnd float64) (analysis.ScenePayload, error) {
	if len(framePaths) == 0 {
		return analysis.ScenePayload{}, fmt.Errorf("describe scene: no frames for segment [%.3f, %.3f]", tStart, tEnd)
	}
	prompt := fmt.Sprintf("These frames are samples from one continuous camera angle spanning %.2fs to %.2fs. "+
		"Describe what happens across the segment in 1-2 sentences. "+
		"Return ONLY valid JSON with keys: description, key_elements, confidence. "+
		"key_elements is an array of short strings naming the notable people, objects, or text on screen. "+
		"confidence is 0-1. Do not wrap in code fences or add extra text.", tStart, tEnd)
	parts := make([]chat.Part, 0, len(framePaths)+1)
	parts = append(parts, chat.TextPart(withEntities(prompt, knownEntities)))
	for _, path := range framePaths {
		image, err := os.ReadFile(path)
		if err != nil {
			return analysis.ScenePayload{}, fmt.Errorf("describe scene: read frame: %w", err)
		}
		parts = append(parts, chat.ImagePart(image))
	}
	content, err := s.client.CompleteVision(ctx, s.cfg.VisionModel, sceneSystemPrompt, parts)
	if err != nil {
		return analysis.ScenePayload{}, fmt.Errorf("describe scene: %w", err)
	}
	payload, cleaned := parsePayload(content)
	elements := coerceList(payload.KeyElements)
	if elements == nil {
		elements = coerceList(payload.Elements)
	}
	return analysis.ScenePayload{
		Description: descriptionText(payload, cleaned),
		KeyElements: elements,
		Confidence:  clampConfidence(payload.Confidence),
	}, nil
}

// Summarize produces the next background narration update from the supplied
// evidence window.
func (s *Service) Summarize(ctx context.Context, req analysis.SummaryRequest) (string, error) {
	evidence := struct {
		PreviousSummary string   `json:"previous_summary"`
		KnownEntities   []string `json:"known_entities"`
		RecentCaptions  []string `json:"recent_captions"`
		RecentAudio     []string `json:"recent_audio"`
	}{
		PreviousSummary: req.PreviousSummary,
		KnownEntities:   req.KnownEntities,
		RecentCaptions:  req.RecentCaptions,
		RecentAudio:     req.RecentAudio,
	}
	encoded, err := json.Marshal(evidence)
	if err != nil {
		return "", fmt.Errorf("summarize: encode evidence: %w", err)
	}
	prompt := "Update the running summary of what is happening in the video. " +
		"Respond with plain prose only, no JSON.\n\n" + string(encoded)
	content, err := s.client.Complete(ctx, s.cfg.TextModel, summarySystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return chat.CleanText(content), nil
}

// Justify produces per-second justification entries for one chunk. Timestamps
// outside the allowed set are the caller's problem to filter; the model is
// still told which values are valid.
func (s *Service) Justify(ctx context.Context, req analysis.JustifyRequest) ([]analysis.JustificationEntry, error) {
	evidence := struct {
		ChunkStart float64                         `json:"chunk_start"`
		ChunkEnd   float64                         `json:"chunk_end"`
		Seconds    []analysis.PerSecondDescription `json:"seconds"`
		Scenes     []analysis.SceneSegment         `json:"scene_segments"`
		Audio      []analysis.AudioSegment         `json:"audio_segments"`
		Allowed    []float64                       `json:"allowed_timestamps"`
	}{
		ChunkStart: req.ChunkStart,
		ChunkEnd:   req.ChunkEnd,
		Seconds:    req.Seconds,
		Scenes:     req.Scenes,
		Audio:      req.Audio,
		Allowed:    req.Allowed,
	}
	encoded, err := json.Marshal(evidence)
	if err != nil {
		return nil, fmt.Errorf("justify: encode evidence: %w", err)
	}
	prompt := justifyInstructions + "\n\n" + string(encoded)
	content, err := s.client.Complete(ctx, s.cfg.TextModel, justifySystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("justify: %w", err)
	}
	entries, err := decodeJustifications(content)
	if err != nil {
		s.logger.Warn("justification payload unparseable", "chunk_start", req.ChunkStart, "error", err)
		return nil, nil
	}
	return entries, nil
}

// decodeJustifications accepts either a bare array or an object wrapping the
// array under a handful of key names models like to invent.
func decodeJustifications(content string) ([]analysis.JustificationEntry, error) {
	var entries []analysis.JustificationEntry
	if err := chat.DecodeModelJSON(content, &entries); err == nil {
		return entries, nil
	}
	var wrapped map[string]json.RawMessage
	if err := chat.DecodeModelJSON(content, &wrapped); err != nil {
		return nil, err
	}
	for _, key := range []string{"items", "justifications", "timeline", "entries"} {
		raw, ok := wrapped[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &entries); err == nil {
			return entries, nil
		}
	}
	return nil, fmt.Errorf("no justification array found")
}

func visionParts(framePath, prompt string) ([]chat.Part, error) {
	image, err := os.ReadFile(framePath)
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}
	return []chat.Part{chat.TextPart(prompt), chat.ImagePart(image)}, nil
}

func withEntities(prompt string, knownEntities []string) string {
	if len(knownEntities) == 0 {
		return prompt
	}
	return prompt + "\nknown_entities: " + strings.Join(knownEntities, ", ")
}
