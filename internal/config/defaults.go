package config

const (
	defaultScratchDir          = "~/.local/share/clipsight/scratch"
	defaultArtifactDir         = "~/.local/share/clipsight/artifacts"
	defaultLogDir              = "~/.local/share/clipsight/logs"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultFPS                 = 2.0
	defaultFrameScale          = 512
	defaultDiffThreshold       = 0.12
	defaultMinKeyframeGap      = 0.5
	defaultMaxKeyframeGap      = 6.0
	defaultSceneThreshold      = 0.3
	defaultDenseInterval       = 0.5
	defaultPerSecondRate       = 1.0
	defaultSceneSampleCount    = 3
	defaultBackgroundStride    = 5.0
	defaultBackgroundWindow    = 10.0
	defaultJustifyChunkSeconds = 60.0
	defaultConcurrency         = 4
	defaultModelBaseURL        = "https://api.openai.com/v1/chat/completions"
	defaultVisionModel         = "gpt-4.1-mini"
	defaultTextModel           = "gpt-4.1-mini"
	defaultModelTimeoutSeconds = 120
	defaultWhisperXModel       = "large-v3-turbo"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ScratchDir:  defaultScratchDir,
			ArtifactDir: defaultArtifactDir,
			LogDir:      defaultLogDir,
		},
		Analysis: Analysis{
			FPS:                 defaultFPS,
			FrameScale:          defaultFrameScale,
			DiffThreshold:       defaultDiffThreshold,
			MinKeyframeGap:      defaultMinKeyframeGap,
			MaxKeyframeGap:      defaultMaxKeyframeGap,
			SceneThreshold:      defaultSceneThreshold,
			DenseInterval:       defaultDenseInterval,
			PerSecondRate:       defaultPerSecondRate,
			SceneSampleCount:    defaultSceneSampleCount,
			BackgroundStride:    defaultBackgroundStride,
			BackgroundWindow:    defaultBackgroundWindow,
			JustifyChunkSeconds: defaultJustifyChunkSeconds,
			Concurrency:         defaultConcurrency,
			IncludeAudio:        true,
		},
		Transcription: Transcription{
			Model: defaultWhisperXModel,
		},
		Models: Models{
			BaseURL:        defaultModelBaseURL,
			VisionModel:    defaultVisionModel,
			TextModel:      defaultTextModel,
			TimeoutSeconds: defaultModelTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
