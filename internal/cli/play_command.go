package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"wavplay.click/internal/audio"
	"wavplay.click/internal/config"
	"wavplay.click/internal/history"
	"wavplay.click/internal/wav"
)

// sniffSize is how much of the file is read for magic byte detection
const sniffSize = 512

func newPlayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play <file>",
		Short: "Play a WAV file",
		Long:  "Play streams the WAV file to the system audio device, or to a file or stdout with --out.",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlayE,
	}

	cmd.Flags().String("out", "", "Write transformed PCM to a file instead of the audio device ('-' for stdout)")
	cmd.Flags().Bool("no-history", false, "Skip recording this playback in history")

	return cmd
}

// countingSink wraps a sink and tracks bytes delivered for history
type countingSink struct {
	inner audio.Sink
	bytes int64
}

func (s *countingSink) Write(chunk []byte) error {
	if err := s.inner.Write(chunk); err != nil {
		return err
	}
	s.bytes += int64(len(chunk))
	return nil
}

func runPlayE(cmd *cobra.Command, args []string) error {
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

	path := args[0]
	outPath, _ := cmd.Flags().GetString("out")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	if err := sniffWav(cli.fs, path); err != nil {
		cmd.PrintErrf("Error: %v\n", err)
		return err
	}

	player := audio.NewPlayerWithFilesystem(cli.fs)
	player.SetVolume(cfg.Volume)
	if err := player.SetChunkSize(cfg.ChunkSize); err != nil {
		return err
	}

	header, err := player.GetInfo(path)
	if err != nil {
		cmd.PrintErrf("Error: %v\n", err)
		return err
	}

	sink, cleanup, err := buildSink(cmd, cli, header, outPath)
	if err != nil {
		cmd.PrintErrf("Error: %v\n", err)
		return err
	}

	counting := &countingSink{inner: sink}
	started := time.Now()
	playErr := player.PlayContext(cmd.Context(), path, counting)
	elapsed := time.Since(started)

	if cleanup != nil {
		if closeErr := cleanup(); closeErr != nil && playErr == nil {
			playErr = closeErr
		}
	}

	if !noHistory && cfg.HistoryEnabled {
		recordPlayback(cli, cfg, path, header, player.GetVolume(), counting.bytes, elapsed, playErr)
	}

	if playErr != nil {
		cmd.PrintErrf("Error: %v\n", playErr)
		return playErr
	}

	cmd.Printf("Played %s (%d Hz, %d ch, %d-bit, %d bytes delivered)\n",
		path, header.SampleRate, header.NumChannels, header.BitsPerSample, counting.bytes)
	return nil
}

// sniffWav reads a content prefix and rejects files that do not identify
// as WAV, before the header parser ever sees them
func sniffWav(fs afero.Fs, path string) error {
	file, err := fs.Open(path)
	if err != nil {
		slog.Error("failed to open file for sniffing", "path", path, "error", err)
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	prefix := make([]byte, sniffSize)
	n, _ := file.Read(prefix)

	if !audio.LooksLikeWav(path, prefix[:n]) {
		slog.Error("file does not look like WAV", "path", path)
		return fmt.Errorf("%s does not look like a WAV file", path)
	}
	return nil
}

// buildSink picks the playback destination. The returned cleanup function,
// when non-nil, must be called after playback to release the sink.
func buildSink(cmd *cobra.Command, cli *CLI, header wav.Header, outPath string) (audio.Sink, func() error, error) {
	switch outPath {
	case "":
		speaker, err := audio.NewSpeakerSink(header)
		if err != nil {
			return nil, nil, err
		}
		return speaker, speaker.Close, nil
	case "-":
		slog.Debug("streaming transformed PCM to stdout")
		return audio.NewWriterSink(cmd.OutOrStdout()), nil, nil
	default:
		file, err := cli.fs.Create(outPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create output file: %w", err)
		}
		slog.Debug("streaming transformed PCM to file", "path", outPath)
		return audio.NewWriterSink(file), file.Close, nil
	}
}

// recordPlayback appends the playback outcome to the history database.
// History failures are logged but never fail the playback itself.
func recordPlayback(cli *CLI, cfg *config.Config, path string, header wav.Header, volume int, bytes int64, elapsed time.Duration, playErr error) {
	dbPath := cli.configManager.ResolveHistoryPath(cfg.HistoryPath)
	db, err := history.NewDatabase(dbPath)
	if err != nil {
		slog.Warn("failed to open history database", "path", dbPath, "error", err)
		return
	}
	defer db.Close()

	outcome := history.OutcomeCompleted
	errText := ""
	switch {
	case errors.Is(playErr, context.Canceled):
		outcome = history.OutcomeCancelled
		errText = playErr.Error()
	case playErr != nil:
		outcome = history.OutcomeFailed
		errText = playErr.Error()
	}

	event := history.Event{
		Path:           path,
		Channels:       int(header.NumChannels),
		SampleRate:     int(header.SampleRate),
		BitsPerSample:  int(header.BitsPerSample),
		Volume:         volume,
		BytesDelivered: bytes,
		Duration:       elapsed,
		Outcome:        outcome,
		Error:          errText,
	}

	if err := history.NewRecorder(db).Record(event); err != nil {
		slog.Warn("failed to record playback history", "error", err)
	}
}
