package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"clipsight/internal/analysis"
	"clipsight/internal/config"
	"clipsight/internal/store"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect the analysis run catalog",
	}
	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))
	runsCmd.AddCommand(newRunsDeleteCommand(ctx))
	return runsCmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded analysis runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, catalog *store.Store) error {
				runs, err := catalog.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet")
					return nil
				}

				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						shortID(run.ID),
						run.Title,
						string(run.Status),
						formatSeconds(run.Duration),
						strconv.Itoa(run.CaptionCount),
						strconv.Itoa(run.SceneCount),
						run.CreatedAt.Local().Format("2006-01-02 15:04"),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(runListColumns, rows))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var showTimeline bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run and its artifact summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, catalog *store.Store) error {
				run, err := resolveRun(cmd, catalog, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s)\n", run.Title, run.ID)
				fmt.Fprintf(out, "  Source:    %s\n", run.SourcePath)
				fmt.Fprintf(out, "  Status:    %s\n", run.Status)
				if run.ErrorMessage != "" {
					fmt.Fprintf(out, "  Error:     %s\n", run.ErrorMessage)
				}
				fmt.Fprintf(out, "  Created:   %s\n", run.CreatedAt.Local().Format(time.RFC1123))
				if run.Status != store.StatusCompleted {
					return nil
				}
				fmt.Fprintf(out, "  Artifact:  %s\n", run.ArtifactPath)
				fmt.Fprintf(out, "  Duration:  %s\n", formatSeconds(run.Duration))
				fmt.Fprintf(out, "  Tracks:    %d captions, %d scenes, %d per-second, %d background, %d audio\n",
					run.CaptionCount, run.SceneCount, run.PerSecondCount, run.BackgroundCount, run.AudioCount)

				if !showTimeline {
					return nil
				}
				result, err := analysis.ReadArtifact(run.ArtifactPath)
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
				for _, update := range result.BackgroundUpdates {
					fmt.Fprintf(out, "  [%7.1fs] %s\n", update.T, update.Narration)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&showTimeline, "timeline", false, "Print the background narration timeline from the artifact")
	return cmd
}

func newRunsDeleteCommand(ctx *commandContext) *cobra.Command {
	var keepArtifact bool

	cmd := &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a run from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, catalog *store.Store) error {
				run, err := resolveRun(cmd, catalog, args[0])
				if err != nil {
					return err
				}
				if err := catalog.DeleteRun(cmd.Context(), run.ID); err != nil {
					return err
				}
				if !keepArtifact && run.ArtifactPath != "" {
					if err := os.Remove(run.ArtifactPath); err != nil && !os.IsNotExist(err) {
						return fmt.Errorf("remove artifact: %w", err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", run.ID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&keepArtifact, "keep-artifact", false, "Keep the artifact JSON on disk")
	return cmd
}

// resolveRun accepts a full run id or a unique prefix (as printed by list).
func resolveRun(cmd *cobra.Command, catalog *store.Store, idOrPrefix string) (*store.Run, error) {
	run, err := catalog.GetRun(cmd.Context(), idOrPrefix)
	if err == nil {
		return run, nil
	}
	runs, listErr := catalog.ListRuns(cmd.Context(), 0)
	if listErr != nil {
		return nil, err
	}
	var matched *store.Run
	for _, candidate := range runs {
		if !strings.HasPrefix(candidate.ID, idOrPrefix) {
			continue
		}
		if matched != nil {
			return nil, fmt.Errorf("run id prefix %q is ambiguous", idOrPrefix)
		}
		matched = candidate
	}
	if matched == nil {
		return nil, err
	}
	return matched, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatSeconds(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1fs", seconds)
}
