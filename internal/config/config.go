package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	ScratchDir  string `toml:"scratch_dir"`
	ArtifactDir string `toml:"artifact_dir"`
	LogDir      string `toml:"log_dir"`
}

// Analysis contains the tunables for the temporal analysis pipeline.
type Analysis struct {
	// FPS is the frame sampling rate used for extraction and keyframe scanning.
	FPS float64 `toml:"fps"`
	// FrameScale is the fixed frame width in pixels; height is auto-scaled.
	FrameScale int `toml:"frame_scale"`
	// DiffThreshold is the mean-absolute signature difference that marks a keyframe.
	DiffThreshold float64 `toml:"diff_threshold"`
	// MinKeyframeGap is the minimum spacing in seconds between difference-triggered keyframes.
	MinKeyframeGap float64 `toml:"min_keyframe_gap"`
	// MaxKeyframeGap forces a keyframe refresh after this many seconds without change.
	MaxKeyframeGap float64 `toml:"max_keyframe_gap"`
	// SceneThreshold is the ffmpeg scene-change score above which a cut is reported.
	SceneThreshold float64 `toml:"scene_threshold"`
	// DenseInterval is the spacing in seconds of the dense caption grid; 0 disables it.
	DenseInterval float64 `toml:"dense_interval"`
	// PerSecondRate is the sampling rate for per-second descriptions; 0 disables them.
	PerSecondRate float64 `toml:"per_second_rate"`
	// SceneSampleCount is how many representative frames are sampled per scene segment.
	SceneSampleCount int `toml:"scene_sample_count"`
	// BackgroundStride is the tick spacing in seconds for background narration.
	BackgroundStride float64 `toml:"background_stride"`
	// BackgroundWindow is the trailing window in seconds examined at each tick.
	BackgroundWindow float64 `toml:"background_window"`
	// JustifyChunkSeconds is the chunk length for justification requests.
	JustifyChunkSeconds float64 `toml:"justify_chunk_seconds"`
	// Concurrency caps in-flight description requests.
	Concurrency int `toml:"concurrency"`
	// IncludeAudio controls whether the audio track is extracted and transcribed.
	IncludeAudio bool `toml:"include_audio"`
}

// Transcription contains WhisperX settings for the speech-to-text stage.
type Transcription struct {
	Model       string `toml:"model"`
	CUDAEnabled bool   `toml:"cuda_enabled"`
	Language    string `toml:"language"`
}

// Models contains shared model-endpoint connection settings.
type Models struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	VisionModel    string `toml:"vision_model"`
	TextModel      string `toml:"text_model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for clipsight.
//
// Configuration sections by subsystem:
//   - Paths: scratch, artifact, and log directories
//   - Analysis: pipeline tunables (sampling, keyframes, windows, chunks)
//   - Transcription: WhisperX speech-to-text settings
//   - Models: vision/text model endpoint and credentials
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Analysis      Analysis      `toml:"analysis"`
	Transcription Transcription `toml:"transcription"`
	Models        Models        `toml:"models"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/clipsight/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("clipsight.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories an analysis run needs.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ScratchDir, c.Paths.ArtifactDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

// WriteSample writes the embedded sample configuration to the supplied path.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
