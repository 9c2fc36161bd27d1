package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybar/internal/partition"
)

// clipboardWrite is swapped in tests.
var clipboardWrite = clipboard.WriteAll

func (a *App) exportCmd() *cobra.Command {
	var copyOut bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the plan as TOML",
		Long: `Print the plan as TOML, suitable for "daybar import".

Example:
  daybar export > plan.toml
  daybar export --clipboard`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.loadPlan(cmd.Context())
			if err != nil {
				return err
			}
			data, err := partition.Export(p)
			if err != nil {
				return err
			}
			if copyOut {
				if err := clipboardWrite(string(data)); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), formatOK("Copied plan to clipboard"))
				return nil
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&copyOut, "clipboard", false, "Copy to the clipboard instead of printing")
	return cmd
}
