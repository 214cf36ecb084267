package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"wavplay.click/internal/audio"
	"wavplay.click/internal/wav"
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Inspect a WAV file header without playing it",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfoE,
	}
}

func runInfoE(cmd *cobra.Command, args []string) error {
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

	player := audio.NewPlayerWithFilesystem(cli.fs)
	header, err := player.GetInfo(path)
	if err != nil {
		cmd.PrintErrf("Error: %v\n", err)
		return err
	}

	cmd.Printf("File:            %s\n", path)
	cmd.Printf("Channels:        %d\n", header.NumChannels)
	cmd.Printf("Sample rate:     %d Hz\n", header.SampleRate)
	cmd.Printf("Bits per sample: %d\n", header.BitsPerSample)
	cmd.Printf("Block align:     %d\n", header.BlockAlign)
	cmd.Printf("Data size:       %d bytes\n", header.DataSize)

	printFormatReport(cmd, header)
	return nil
}

// printFormatReport lists every supported-format rule the header violates,
// or confirms the file is playable
func printFormatReport(cmd *cobra.Command, header wav.Header) {
	err := header.Validate()
	if err == nil {
		cmd.Printf("Format:          supported\n")
		return
	}

	cmd.Printf("Format:          unsupported\n")

	violations := []struct {
		sentinel error
		message  string
	}{
		{wav.ErrBadChannels, fmt.Sprintf("channel count %d not in 1-2", header.NumChannels)},
		{wav.ErrBadBitDepth, fmt.Sprintf("bit depth %d not 16 or 24", header.BitsPerSample)},
		{wav.ErrBadSampleRate, fmt.Sprintf("sample rate %d not in %d-%d Hz", header.SampleRate, wav.MinSampleRate, wav.MaxSampleRate)},
		{wav.ErrBadBlockAlign, fmt.Sprintf("block align %d inconsistent with channels and bit depth", header.BlockAlign)},
	}

	for _, v := range violations {
		if errors.Is(err, v.sentinel) {
			cmd.Printf("  - %s\n", v.message)
		}
	}
}
