package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAnalysis()
	c.normalizeTranscription()
	c.normalizeModels()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ScratchDir) == "" {
		c.Paths.ScratchDir = defaultScratchDir
	}
	if c.Paths.ScratchDir, err = expandPath(c.Paths.ScratchDir); err != nil {
		return fmt.Errorf("paths.scratch_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ArtifactDir) == "" {
		c.Paths.ArtifactDir = defaultArtifactDir
	}
	if c.Paths.ArtifactDir, err = expandPath(c.Paths.ArtifactDir); err != nil {
		return fmt.Errorf("paths.artifact_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAnalysis() {
	if c.Analysis.FPS <= 0 {
		c.Analysis.FPS = defaultFPS
	}
	if c.Analysis.FrameScale <= 0 {
		c.Analysis.FrameScale = defaultFrameScale
	}
	if c.Analysis.SceneSampleCount < 1 {
		c.Analysis.SceneSampleCount = defaultSceneSampleCount
	}
	if c.Analysis.Concurrency < 1 {
		c.Analysis.Concurrency = defaultConcurrency
	}
	if c.Analysis.BackgroundStride <= 0 {
		c.Analysis.BackgroundStride = defaultBackgroundStride
	}
	if c.Analysis.BackgroundWindow <= 0 {
		c.Analysis.BackgroundWindow = defaultBackgroundWindow
	}
	if c.Analysis.JustifyChunkSeconds < 1 {
		c.Analysis.JustifyChunkSeconds = defaultJustifyChunkSeconds
	}
}

func (c *Config) normalizeTranscription() {
	c.Transcription.Model = strings.TrimSpace(c.Transcription.Model)
	if c.Transcription.Model == "" {
		c.Transcription.Model = defaultWhisperXModel
	}
	c.Transcription.Language = strings.ToLower(strings.TrimSpace(c.Transcription.Language))
}

func (c *Config) normalizeModels() {
	c.Models.APIKey = strings.TrimSpace(c.Models.APIKey)
	if c.Models.APIKey == "" {
		if value, ok := os.LookupEnv("CLIPSIGHT_API_KEY"); ok {
			c.Models.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
			c.Models.APIKey = strings.TrimSpace(value)
		}
	}
	c.Models.BaseURL = strings.TrimSpace(c.Models.BaseURL)
	if c.Models.BaseURL == "" {
		c.Models.BaseURL = defaultModelBaseURL
	}
	c.Models.VisionModel = strings.TrimSpace(c.Models.VisionModel)
	if c.Models.VisionModel == "" {
		c.Models.VisionModel = defaultVisionModel
	}
	c.Models.TextModel = strings.TrimSpace(c.Models.TextModel)
	if c.Models.TextModel == "" {
		c.Models.TextModel = defaultTextModel
	}
	if c.Models.TimeoutSeconds <= 0 {
		c.Models.TimeoutSeconds = defaultModelTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
