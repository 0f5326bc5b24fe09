package whisperx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"clipsight/internal/analysis"
	"clipsight/internal/logging"
)

// Config controls the WhisperX invocation. The tool runs through uvx so no
// local Python environment setup is required.
type Config struct {
	Binary      string // uvx launcher, defaults to "uvx"
	Model       string // whisper model name, defaults to "small"
	CUDAEnabled bool
	Language    string // optional language hint, empty means auto-detect
}

// Service runs WhisperX against extracted audio and implements
// analysis.Transcriber.
type Service struct {
	cfg    Config
	logger *slog.Logger
}

// NewService constructs a transcriber with the supplied configuration.
func NewService(cfg Config, logger *slog.Logger) *Service {
	if cfg.Binary == "" {
		cfg.Binary = "uvx"
	}
	if cfg.Model == "" {
		cfg.Model = "small"
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{cfg: cfg, logger: logging.NewComponentLogger(logger, "whisperx")}
}

// Transcribe runs WhisperX on the audio file and returns the parsed result.
// Output lands in a temporary directory that is removed before returning.
func (s *Service) Transcribe(ctx context.Context, audioPath string) (analysis.Transcript, error) {
	if audioPath == "" {
		return analysis.Transcript{}, fmt.Errorf("whisperx: audio path required")
	}
	if _, err := os.Stat(audioPath); err != nil {
		return analysis.Transcript{}, fmt.Errorf("whisperx: audio file: %w", err)
	}

	outputDir, err := os.MkdirTemp("", "clipsight-whisperx-")
	if err != nil {
		return analysis.Transcript{}, fmt.Errorf("whisperx: create output dir: %w", err)
	}
	defer os.RemoveAll(outputDir)

	args := s.arguments(audioPath, outputDir)
	s.logger.Info("running whisperx", "model", s.cfg.Model, "cuda", s.cfg.CUDAEnabled)
	cmd := exec.CommandContext(ctx, s.cfg.Binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if len(detail) > 400 {
			detail = detail[len(detail)-400:]
		}
		return analysis.Transcript{}, fmt.Errorf("whisperx: run %s: %w (output: %s)", s.cfg.Binary, err, detail)
	}

	resultPath := transcriptPath(outputDir, audioPath)
	transcript, err := LoadTranscript(resultPath)
	if err != nil {
		return analysis.Transcript{}, fmt.Errorf("whisperx: %w", err)
	}
	s.logger.Info("transcription complete", "segments", len(transcript.Segments))
	return transcript, nil
}

func (s *Service) arguments(audioPath, outputDir string) []string {
	args := []string{
		"whisperx",
		audioPath,
		"--model", s.cfg.Model,
		"--output_format", "json",
		"--output_dir", outputDir,
	}
	if s.cfg.CUDAEnabled {
		args = append(args, "--device", "cuda")
	} else {
		args = append(args, "--device", "cpu", "--compute_type", "int8")
	}
	if s.cfg.Language != "" {
		args = append(args, "--language", s.cfg.Language)
	}
	return args
}

// transcriptPath is the JSON file WhisperX writes: the audio basename with the
// extension swapped for .json.
func transcriptPath(outputDir, audioPath string) string {
	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	return filepath.Join(outputDir, stem+".json")
}

// rawTranscript tolerates both shapes WhisperX output has shipped with:
// segment lists with start/end/text, and a flat top-level text field.
type rawTranscript struct {
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
	Text string `json:"text"`
}

// LoadTranscript reads and normalizes a WhisperX JSON result file. Segment
// text is trimmed and empty segments are dropped.
func LoadTranscript(path string) (analysis.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return analysis.Transcript{}, fmt.Errorf("read transcript: %w", err)
	}
	var raw rawTranscript
	if err := json.Unmarshal(data, &raw); err != nil {
		return analysis.Transcript{}, fmt.Errorf("parse transcript: %w", err)
	}

	transcript := analysis.Transcript{Text: strings.TrimSpace(raw.Text)}
	for _, segment := range raw.Segments {
		text := strings.TrimSpace(segment.Text)
		if text == "" {
			continue
		}
		transcript.Segments = append(transcript.Segments, analysis.AudioSegment{
			Start: segment.Start,
			End:   segment.End,
			Text:  text,
		})
	}
	return transcript, nil
}
