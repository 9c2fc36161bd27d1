package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybar/internal/config"
	"github.com/javiermolinar/daybar/internal/partition"
	"github.com/javiermolinar/daybar/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  daybar config
  daybar config --show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), config.DefaultConfigPath(), show)
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "Print the configuration and exit")
	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string, showOnly bool) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)
	if showOnly {
		return nil
	}

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Day.Start = promptHour(reader, out, "Day start", cfg.Day.Start)
	cfg.Day.End = promptHour(reader, out, "Day end", cfg.Day.End)
	cfg.Day.Snap = promptHour(reader, out, "Snap step in hours (0 to disable)", cfg.Day.Snap)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)
	cfg.Log.Level = promptValue(reader, out, "Log level (debug, info, warn, error)", cfg.Log.Level)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[day]")
	fmt.Fprintf(out, "  start   = %g  (%s)\n", cfg.Day.Start, partition.FormatHour(cfg.Day.Start))
	fmt.Fprintf(out, "  end     = %g  (%s)\n", cfg.Day.End, partition.FormatHour(cfg.Day.End))
	fmt.Fprintf(out, "  snap    = %g\n", cfg.Day.Snap)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme   = %s\n", cfg.UI.Theme)
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  level   = %s\n", cfg.Log.Level)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptHour(reader *bufio.Reader, out io.Writer, label string, current float64) float64 {
	for {
		value := promptValue(reader, out, label, strconv.FormatFloat(current, 'f', -1, 64))
		v, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return v
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	if !theme.IsAvailable(current) {
		current = "mocha"
	}
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
