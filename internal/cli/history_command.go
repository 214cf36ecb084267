package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"wavplay.click/internal/history"
)

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent playback events",
		RunE:  runHistoryE,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of events to show")
	cmd.Flags().String("outcome", "", "Filter by outcome (completed, failed, cancelled)")
	cmd.Flags().String("path", "", "Filter by source path")

	return cmd
}

func runHistoryE(cmd *cobra.Command, args []string) error {
	cli := cliFromContext(cmd.Context())
	if cli == nil {
		slog.Error("CLI instance not found in context")
		return fmt.Errorf("CLI instance not found in context")
	}

	cfg, err := loadAndValidateConfig(cmd, cli)
	if err != nil {
		return err
	}
	setupLogging(cfg, cli.configManager, cmd.ErrOrStderr())

	limit, _ := cmd.Flags().GetInt("limit")
	outcome, _ := cmd.Flags().GetString("outcome")
	pathFilter, _ := cmd.Flags().GetString("path")

	dbPath := cli.configManager.ResolveHistoryPath(cfg.HistoryPath)
	db, err := history.NewDatabase(dbPath)
	if err != nil {
		cmd.PrintErrf("Error: %v\n", err)
		return err
	}
	defer db.Close()

	events, err := history.NewRecorder(db).Recent(history.QueryFilter{
		Path:    pathFilter,
		Outcome: outcome,
		Limit:   limit,
	})
	if err != nil {
		cmd.PrintErrf("Error: %v\n", err)
		return err
	}

	if len(events) == 0 {
		cmd.Println("No playback history.")
		return nil
	}

	for _, event := range events {
		line := fmt.Sprintf("%s  %-9s  %s  (%d Hz, %d ch, %d-bit, vol %d, %d bytes, %s)",
			event.Timestamp.Format("2006-01-02 15:04:05"),
			event.Outcome,
			event.Path,
			event.SampleRate,
			event.Channels,
			event.BitsPerSample,
			event.Volume,
			event.BytesDelivered,
			event.Duration.Round(time.Millisecond))
		if event.Error != "" {
			line += " error: " + event.Error
		}
		cmd.Println(line)
	}

	return nil
}
