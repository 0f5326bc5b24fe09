package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateModels(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.DiffThreshold < 0 || c.Analysis.DiffThreshold > 1 {
		return errors.New("analysis.diff_threshold must be between 0 and 1")
	}
	if c.Analysis.MinKeyframeGap < 0 {
		return errors.New("analysis.min_keyframe_gap must not be negative")
	}
	if c.Analysis.MaxKeyframeGap <= 0 {
		return errors.New("analysis.max_keyframe_gap must be positive")
	}
	if c.Analysis.MaxKeyframeGap < c.Analysis.MinKeyframeGap {
		return errors.New("analysis.max_keyframe_gap must not be smaller than analysis.min_keyframe_gap")
	}
	if c.Analysis.SceneThreshold < 0 || c.Analysis.SceneThreshold > 1 {
		return errors.New("analysis.scene_threshold must be between 0 and 1")
	}
	if c.Analysis.DenseInterval < 0 {
		return errors.New("analysis.dense_interval must not be negative")
	}
	if c.Analysis.PerSecondRate < 0 {
		return errors.New("analysis.per_second_rate must not be negative")
	}
	return nil
}

func (c *Config) validateModels() error {
	if c.Models.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/clipsight/config.toml"
		}
		return fmt.Errorf("models.api_key is required. Set CLIPSIGHT_API_KEY env var or edit %s (create with 'clipsight config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
