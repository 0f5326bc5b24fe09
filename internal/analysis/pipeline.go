package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"clipsight/internal/config"
	"clipsight/internal/logging"
	"clipsight/internal/media/extract"
	"clipsight/internal/media/ffprobe"
	"clipsight/internal/media/scenecut"
)

// Analyzer drives one end-to-end analysis run: probe, extract, keyframe scan,
// caption fan-out, scene segmentation, background narration, justification,
// and final assembly. A single Analyzer may serve multiple runs; each Run call
// works in its own scratch directory.
type Analyzer struct {
	cfg         config.Analysis
	ffmpeg      string
	ffprobe     string
	describer   FrameDescriber
	narrator    Narrator
	justifier   Justifier
	transcriber Transcriber
	logger      *slog.Logger
}

// NewAnalyzer constructs the pipeline. The transcriber may be nil; audio is
// then skipped even when the configuration enables it.
func NewAnalyzer(cfg config.Analysis, ffmpegBinary, ffprobeBinary string, describer FrameDescriber, narrator Narrator, justifier Justifier, transcriber Transcriber, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Analyzer{
		cfg:         cfg,
		ffmpeg:      ffmpegBinary,
		ffprobe:     ffprobeBinary,
		describer:   describer,
		narrator:    narrator,
		justifier:   justifier,
		transcriber: transcriber,
		logger:      logging.NewComponentLogger(logger, "analysis"),
	}
}

// Run executes the full pipeline over the source video, using scratchDir for
// intermediate frames and audio. The returned result is complete; media
// failures abort the run before any track is produced.
func (a *Analyzer) Run(ctx context.Context, sourcePath, scratchDir string) (*Result, error) {
	probe, err := ffprobe.Inspect(ctx, a.ffprobe, sourcePath)
	if err != nil {
		return nil, err
	}
	if !probe.HasVideoStream() {
		return nil, fmt.Errorf("analyze %s: no video stream", sourcePath)
	}
	duration := probe.DurationSeconds()
	if duration <= 0 {
		return nil, fmt.Errorf("analyze %s: could not determine duration", sourcePath)
	}
	a.logger.Info("analysis started", "source", filepath.Base(sourcePath), "duration", duration)

	frameDir := filepath.Join(scratchDir, "frames")
	frames, err := extract.Frames(ctx, a.ffmpeg, extract.FrameRequest{
		Source:    sourcePath,
		OutputDir: frameDir,
		FPS:       a.cfg.FPS,
		Scale:     a.cfg.FrameScale,
	})
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("analyze %s: no frames extracted", sourcePath)
	}
	a.logger.Info("frames extracted", "count", len(frames), "fps", a.cfg.FPS)

	audioSegments, err := a.transcribeAudio(ctx, sourcePath, scratchDir, probe)
	if err != nil {
		return nil, err
	}

	cuts := scenecut.Detect(ctx, a.ffmpeg, sourcePath, a.cfg.SceneThreshold, a.logger)

	scan, err := scanKeyframes(ctx, frames, duration, keyframeParams{
		FPS:           a.cfg.FPS,
		DiffThreshold: a.cfg.DiffThreshold,
		MinGap:        a.cfg.MinKeyframeGap,
		MaxGap:        a.cfg.MaxKeyframeGap,
	}, a.describer, a.logger)
	if err != nil {
		return nil, err
	}
	a.logger.Info("keyframe scan complete", "keyframes", len(scan.Captions), "entities", len(scan.Entities))
	entities := snapshotEntities(scan.Entities)

	denseCaptions, err := a.captionGrid(ctx, tickGrid(duration, a.cfg.DenseInterval), frames, entities)
	if err != nil {
		return nil, fmt.Errorf("dense captions: %w", err)
	}
	sceneCaptions, err := a.captionGrid(ctx, sceneCaptionMarks(cuts), frames, entities)
	if err != nil {
		return nil, fmt.Errorf("scene captions: %w", err)
	}
	perSecond, err := a.describeSeconds(ctx, duration, frames, entities)
	if err != nil {
		return nil, fmt.Errorf("per-second descriptions: %w", err)
	}

	sceneSegments, err := describeScenes(ctx, cuts, duration, frames, a.cfg.FPS, a.cfg.SceneSampleCount, a.cfg.Concurrency, entities, a.describer, a.logger)
	if err != nil {
		return nil, err
	}

	updates, err := aggregateBackground(ctx, duration, scan.Captions, audioSegments, entities, a.narrator, backgroundParams{
		Stride: a.cfg.BackgroundStride,
		Window: a.cfg.BackgroundWindow,
	}, a.logger)
	if err != nil {
		return nil, err
	}

	timeline, err := buildJustificationTimeline(ctx, duration, a.cfg.JustifyChunkSeconds, perSecond, sceneSegments, audioSegments, a.justifier, a.logger)
	if err != nil {
		return nil, err
	}

	result := &Result{
		FPS:                   a.cfg.FPS,
		Duration:              round3(duration),
		SceneCuts:             cuts,
		Captions:              scan.Captions,
		Events:                scan.Events,
		DenseCaptions:         denseCaptions,
		SceneCaptions:         sceneCaptions,
		PerSecondDescriptions: perSecond,
		SceneSegments:         sceneSegments,
		JustificationTimeline: timeline,
		BackgroundUpdates:     updates,
		AudioSegments:         audioSegments,
	}
	a.logger.Info("analysis complete",
		"captions", len(result.Captions),
		"scene_segments", len(result.SceneSegments),
		"per_second", len(result.PerSecondDescriptions),
		"background_updates", len(result.BackgroundUpdates))
	return result, nil
}

// sceneCaptionMarks prepends the video start to the cut list so the opening
// shot is always captioned alongside every cut. No cuts means no scene
// caption track at all.
func sceneCaptionMarks(cuts []float64) []float64 {
	if len(cuts) == 0 {
		return nil
	}
	marks := make([]float64, 0, len(cuts)+1)
	if cuts[0] != 0 {
		marks = append(marks, 0)
	}
	return append(marks, cuts...)
}

// captionGrid requests one action caption per grid timestamp, collapsing
// adjacent timestamps that fall on the same sampled frame.
func (a *Analyzer) captionGrid(ctx context.Context, ticks []float64, frames []string, entities []string) ([]TimedCaption, error) {
	collapsed := collapseTicks(ticks, a.cfg.FPS, len(frames))
	if len(collapsed) == 0 {
		return nil, nil
	}
	return mapOrdered(ctx, a.cfg.Concurrency, collapsed, func(ctx context.Context, _ int, tick frameTick) (TimedCaption, error) {
		payload, err := a.describer.CaptionFrame(ctx, frames[tick.FrameIndex], entities)
		if err != nil {
			return TimedCaption{}, fmt.Errorf("caption at %.3fs: %w", tick.T, err)
		}
		return TimedCaption{
			T:          round3(tick.T),
			Caption:    payload.Caption,
			Actions:    payload.Actions,
			Objects:    payload.Objects,
			People:     payload.People,
			Setting:    payload.Setting,
			Confidence: payload.Confidence,
		}, nil
	})
}

// describeSeconds produces the per-second description track.
func (a *Analyzer) describeSeconds(ctx context.Context, duration float64, frames []string, entities []string) ([]PerSecondDescription, error) {
	if a.cfg.PerSecondRate <= 0 {
		return nil, nil
	}
	collapsed := collapseTicks(tickGrid(duration, 1/a.cfg.PerSecondRate), a.cfg.FPS, len(frames))
	if len(collapsed) == 0 {
		return nil, nil
	}
	return mapOrdered(ctx, a.cfg.Concurrency, collapsed, func(ctx context.Context, _ int, tick frameTick) (PerSecondDescription, error) {
		payload, err := a.describer.DescribeFrame(ctx, frames[tick.FrameIndex], entities)
		if err != nil {
			return PerSecondDescription{}, fmt.Errorf("description at %.3fs: %w", tick.T, err)
		}
		return PerSecondDescription{
			T:           round3(tick.T),
			Description: payload.Description,
			Actions:     payload.Actions,
			Objects:     payload.Objects,
			People:      payload.People,
			Setting:     payload.Setting,
			Confidence:  payload.Confidence,
		}, nil
	})
}

func (a *Analyzer) transcribeAudio(ctx context.Context, sourcePath, scratchDir string, probe ffprobe.Result) ([]AudioSegment, error) {
	if !a.cfg.IncludeAudio || a.transcriber == nil {
		return nil, nil
	}
	if !probe.HasAudioStream() {
		a.logger.Info("no audio stream; skipping transcription")
		return nil, nil
	}
	audioPath := filepath.Join(scratchDir, "audio.wav")
	if err := extract.Audio(ctx, a.ffmpeg, sourcePath, audioPath); err != nil {
		return nil, err
	}
	return transcribeOrEmpty(ctx, a.transcriber, audioPath, a.logger), nil
}

// WriteArtifact persists the result document as indented JSON.
func WriteArtifact(path string, result *Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write artifact: ensure dir: %w", err)
	}
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("write artifact: encode: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

// ReadArtifact loads a previously persisted result document.
func ReadArtifact(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("read artifact: decode: %w", err)
	}
	return &result, nil
}
