package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"wavplay.click/internal/volume"
)

// defaultVolumeStep is the amount used by up/down when no amount is given
const defaultVolumeStep = 10

func newVolumeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "volume",
		Short: "Show or adjust the configured playback volume",
		Long:  "Volume shows the configured playback volume. The set, up, and down subcommands adjust it and persist the result; levels clamp to the 0-100 range.",
		RunE:  runVolumeGetE,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <level>",
		Short: "Set the playback volume (0 to 100, clamped)",
		Args:  cobra.ExactArgs(1),
		RunE:  runVolumeSetE,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "up [amount]",
		Short: fmt.Sprintf("Raise the playback volume (default %d)", defaultVolumeStep),
		Args:  cobra.MaximumNArgs(1),
		RunE:  runVolumeUpE,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down [amount]",
		Short: fmt.Sprintf("Lower the playback volume (default %d)", defaultVolumeStep),
		Args:  cobra.MaximumNArgs(1),
		RunE:  runVolumeDownE,
	})

	return cmd
}

func runVolumeGetE(cmd *cobra.Command, args []string) error {
	_, control, err := loadVolumeControl(cmd)
	if err != nil {
		return err
	}

	cmd.Printf("Volume: %d\n", control.Get())
	return nil
}

func runVolumeSetE(cmd *cobra.Command, args []string) error {
	level, err := parseAmount(cmd, args[0])
	if err != nil {
		return err
	}

	return adjustVolume(cmd, func(control *volume.Control) {
		control.Set(level)
	})
}

func runVolumeUpE(cmd *cobra.Command, args []string) error {
	amount, err := stepAmount(cmd, args)
	if err != nil {
		return err
	}

	return adjustVolume(cmd, func(control *volume.Control) {
		control.Increase(amount)
	})
}

func runVolumeDownE(cmd *cobra.Command, args []string) error {
	amount, err := stepAmount(cmd, args)
	if err != nil {
		return err
	}

	return adjustVolume(cmd, func(control *volume.Control) {
		control.Decrease(amount)
	})
}

// loadVolumeControl builds a volume control seeded from configuration
func loadVolumeControl(cmd *cobra.Command) (*CLI, *volume.Control, error) {
	cli := cliFromContext(cmd.Context())
	if cli == nil {
		slog.Error("CLI instance not found in context")
		return nil, nil, fmt.Errorf("CLI instance not found in context")
	}

	cfg, err := loadAndValidateConfig(cmd, cli)
	if err != nil {
		return nil, nil, err
	}
	setupLogging(cfg, cli.configManager, cmd.ErrOrStderr())

	return cli, volume.NewControlAt(cfg.Volume), nil
}

// adjustVolume applies a mutation to the configured volume and persists
// the clamped result
func adjustVolume(cmd *cobra.Command, mutate func(*volume.Control)) error {
	cli, control, err := loadVolumeControl(cmd)
	if err != nil {
		return err
	}

	mutate(control)

	cfg, err := loadAndValidateConfig(cmd, cli)
	if err != nil {
		return err
	}
	cfg.Volume = control.Get()

	if err := cli.configManager.SaveConfig(cfg); err != nil {
		cmd.PrintErrf("Error: %v\n", err)
		return err
	}

	cmd.Printf("Volume: %d\n", control.Get())
	return nil
}

func parseAmount(cmd *cobra.Command, raw string) (int, error) {
	amount, err := strconv.Atoi(raw)
	if err != nil {
		cmd.PrintErrf("Error: invalid volume value '%s'\n", raw)
		return 0, fmt.Errorf("invalid volume value '%s': %w", raw, err)
	}
	return amount, nil
}

func stepAmount(cmd *cobra.Command, args []string) (int, error) {
	if len(args) == 0 {
		return defaultVolumeStep, nil
	}
	return parseAmount(cmd, args[0])
}
