package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipsight/internal/deps"
	"clipsight/internal/services/chat"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var checkModels bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check external dependencies and model connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Required(cfg.FFmpegBinary(), cfg.FFprobeBinary(), cfg.Analysis.IncludeAudio))
			rows := make([][]string, 0, len(statuses)+1)
			for _, status := range statuses {
				state := "missing"
				detail := status.Detail
				if status.Available {
					state = "ok"
					detail = status.Description
				} else if status.Optional {
					state = "missing (optional)"
				}
				rows = append(rows, []string{status.Name, state, detail})
			}

			if checkModels {
				client := chat.NewClient(chat.Config{
					APIKey:         cfg.Models.APIKey,
					BaseURL:        cfg.Models.BaseURL,
					TimeoutSeconds: cfg.Models.TimeoutSeconds,
				})
				state, detail := "ok", cfg.Models.TextModel
				if err := client.HealthCheck(cmd.Context(), cfg.Models.TextModel); err != nil {
					state, detail = "error", err.Error()
				}
				rows = append(rows, []string{"Model endpoint", state, detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(dependencyColumns, rows))
			if missing, ok := deps.FirstMissing(statuses); ok {
				return fmt.Errorf("required dependency %q is unavailable", missing.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkModels, "models", false, "Also ping the configured model endpoint")
	return cmd
}
