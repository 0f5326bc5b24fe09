package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"clipsight/internal/analysis"
	"clipsight/internal/config"
	"clipsight/internal/logging"
	"clipsight/internal/preflight"
	"clipsight/internal/services/chat"
	"clipsight/internal/services/describe"
	"clipsight/internal/services/whisperx"
	"clipsight/internal/store"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "analyze <video>",
		Short: "Run the full analysis pipeline over a video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourcePath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve source path: %w", err)
			}
			return ctx.withStore(func(cfg *config.Config, catalog *store.Store) error {
				return runAnalyze(cmd, cfg, catalog, sourcePath, skipPreflight)
			})
		},
	}

	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip environment checks before analyzing")
	return cmd
}

func runAnalyze(cmd *cobra.Command, cfg *config.Config, catalog *store.Store, sourcePath string, skipPreflight bool) error {
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	if !skipPreflight {
		results := preflight.RunAll(cfg, sourcePath)
		if failed, ok := preflight.Failed(results); ok {
			return fmt.Errorf("preflight check %q failed: %s", failed.Name, failed.Detail)
		}
	}

	// One analysis at a time per scratch directory; concurrent runs would
	// trample each other's frame sequences.
	lock := flock.New(filepath.Join(cfg.Paths.ScratchDir, "clipsight.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire scratch lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another analysis is already running (lock held at %s)", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	run := store.NewRun(sourcePath)
	if err := catalog.CreateRun(cmd.Context(), run); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	scratchDir := filepath.Join(cfg.Paths.ScratchDir, run.ID)
	if err := os.MkdirAll(scratchDir, 0o755); err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratchDir)

	analyzer := buildAnalyzer(cfg, logger)
	result, err := analyzer.Run(cmd.Context(), sourcePath, scratchDir)
	if err != nil {
		if failErr := catalog.FailRun(cmd.Context(), run.ID, err.Error()); failErr != nil {
			logger.Error("record failure", "error", failErr)
		}
		return err
	}

	artifactPath := filepath.Join(cfg.Paths.ArtifactDir, run.ID+".json")
	if err := analysis.WriteArtifact(artifactPath, result); err != nil {
		if failErr := catalog.FailRun(cmd.Context(), run.ID, err.Error()); failErr != nil {
			logger.Error("record failure", "error", failErr)
		}
		return err
	}
	if err := catalog.CompleteRun(cmd.Context(), run.ID, artifactPath, result); err != nil {
		return fmt.Errorf("record completion: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Analysis complete: %s\n", run.Title)
	fmt.Fprintf(out, "  Run ID:    %s\n", run.ID)
	fmt.Fprintf(out, "  Artifact:  %s\n", artifactPath)
	fmt.Fprintf(out, "  Duration:  %.1fs, %d captions, %d scene segments, %d per-second entries\n",
		result.Duration, len(result.Captions), len(result.SceneSegments), len(result.PerSecondDescriptions))
	return nil
}

func buildAnalyzer(cfg *config.Config, logger *slog.Logger) *analysis.Analyzer {
	client := chat.NewClient(chat.Config{
		APIKey:         cfg.Models.APIKey,
		BaseURL:        cfg.Models.BaseURL,
		TimeoutSeconds: cfg.Models.TimeoutSeconds,
	})
	describer := describe.NewService(client, describe.Config{
		VisionModel: cfg.Models.VisionModel,
		TextModel:   cfg.Models.TextModel,
	}, logger)

	var transcriber analysis.Transcriber
	if cfg.Analysis.IncludeAudio {
		transcriber = whisperx.NewService(whisperx.Config{
			Model:       cfg.Transcription.Model,
			CUDAEnabled: cfg.Transcription.CUDAEnabled,
			Language:    cfg.Transcription.Language,
		}, logger)
	}

	return analysis.NewAnalyzer(cfg.Analysis, cfg.FFmpegBinary(), cfg.FFprobeBinary(),
		describer, describer, describer, transcriber, logger)
}
