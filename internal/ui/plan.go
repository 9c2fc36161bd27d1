package ui

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybar/internal/partition"
	"github.com/javiermolinar/daybar/internal/tui/input"
)

// loadPlan returns the stored plan, seeding and saving one fitted to the
// configured day when nothing is stored yet.
func (a *App) loadPlan(ctx context.Context) (partition.Plan, error) {
	if err := a.ensureStore(); err != nil {
		return partition.Plan{}, err
	}
	logger := loggerFromContext(ctx)

	p, found, err := a.store.LoadPlan(ctx)
	if err != nil {
		return partition.Plan{}, fmt.Errorf("loading plan: %w", err)
	}
	if found {
		return p, nil
	}

	p, err = partition.SeedPlan(a.config.Range())
	if err != nil {
		return partition.Plan{}, fmt.Errorf("seeding plan: %w", err)
	}
	if err := a.store.SavePlan(ctx, p); err != nil {
		return partition.Plan{}, fmt.Errorf("saving plan: %w", err)
	}
	logger.Info("Seeded a new plan", "range", partition.FormatRange(p.Range))
	return p, nil
}

// applyEdit runs e against the stored plan, saves the result and prints it.
func (a *App) applyEdit(cmd *cobra.Command, e partition.Edit) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	p, err := a.loadPlan(ctx)
	if err != nil {
		return err
	}

	res, err := partition.Apply(p, e)
	if err != nil {
		logger.Debug("Edit rejected", "edit", e.Describe(), "err", err)
		return fmt.Errorf("%s: %w", partition.Reason(err), err)
	}
	logger.Debug("Edit accepted", "edit", e.Describe(), "blocks", len(res.Plan.Blocks))

	prog := newProgress(logger)
	if err := a.store.SavePlan(ctx, res.Plan); err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	prog.done("Saved plan")

	out := cmd.OutOrStdout()
	printNotices(out, res.Notices)
	return a.printCurrent(cmd, res.Plan, false)
}

func (a *App) printCurrent(cmd *cobra.Command, p partition.Plan, bar bool) error {
	tasks, err := a.registry.List(cmd.Context())
	if err != nil {
		return err
	}
	printPlan(cmd.OutOrStdout(), p, tasks, PrintOpts{Theme: a.config.UI.Theme, ShowBar: bar})
	return nil
}

// parseIndex parses a 1-based block number into a 0-based index.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid block number %q", s)
	}
	return n - 1, nil
}

// parseSnappedHour parses an hour and snaps it to the configured step.
func (a *App) parseSnappedHour(s string) (float64, error) {
	h, err := input.ParseHour(s)
	if err != nil {
		return 0, err
	}
	return partition.Snap(h, a.config.Day.Snap), nil
}

func (a *App) showCmd() *cobra.Command {
	var noBar bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.loadPlan(cmd.Context())
			if err != nil {
				return err
			}
			return a.printCurrent(cmd, p, !noBar)
		},
	}
	cmd.Flags().BoolVar(&noBar, "no-bar", false, "Print only the block table")
	return cmd
}

func (a *App) resizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resize <boundary> <time>",
		Short: "Move the boundary after block <boundary>",
		Long: `Move the boundary between block <boundary> and the next one.

Times are hours ("13", "13.5" or "13:30") snapped to the configured step.

Example:
  daybar resize 1 5:30`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			at, err := a.parseSnappedHour(args[1])
			if err != nil {
				return err
			}
			return a.applyEdit(cmd, partition.ResizeBoundaryEdit{Index: index, At: at})
		},
	}
}

func (a *App) blockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "block <n> <start> <end>",
		Short: "Move both edges of block <n>",
		Long: `Move the start and end of block <n> at once. The first block's start
and the last block's end stay pinned to the range.

Example:
  daybar block 3 9 13`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			start, err := a.parseSnappedHour(args[1])
			if err != nil {
				return err
			}
			end, err := a.parseSnappedHour(args[2])
			if err != nil {
				return err
			}
			return a.applyEdit(cmd, partition.ResizeBlockEdit{Index: index, Start: start, End: end})
		},
	}
}

func (a *App) addCmd() *cobra.Command {
	var (
		color string
		split int
	)

	cmd := &cobra.Command{
		Use:   "add <category>",
		Short: "Add a category",
		Long: `Add a category to the plan. If the last block leaves room before the
end of the range the new block takes the rest; otherwise a block is split
in half (the last one unless --split is given).

Example:
  daybar add "Deep Reading" --color "#00bcd4"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPlan(cmd.Context())
			if err != nil {
				return err
			}
			c := partition.Color(color)
			if c == "" {
				c = partition.NextColor(p.Blocks)
			}
			index := len(p.Blocks) - 1
			if split > 0 {
				index = split - 1
			}
			return a.applyEdit(cmd, partition.AddEdit(p, index, joinArgs(args), c))
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "Block color (hex, default: next free swatch)")
	cmd.Flags().IntVar(&split, "split", 0, "Block number to split when the range is full")
	return cmd
}

func (a *App) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <n>",
		Aliases: []string{"rm"},
		Short:   "Remove block <n> and give its time to the neighbors",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return a.applyEdit(cmd, partition.RemoveBlockEdit{Index: index})
		},
	}
}

func (a *App) rangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "range <start> <end>",
		Short: "Change the range, dropping and clamping blocks",
		Long: `Change the range the blocks tile. Blocks outside the new range are
dropped, the rest are clamped, and blocks left shorter than 30 minutes
are removed.

Example:
  daybar range 6 22`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := input.ParseRange(args[0] + " " + args[1])
			if err != nil {
				return err
			}
			return a.applyEdit(cmd, partition.RescaleRangeEdit{Range: r})
		},
	}
}

func (a *App) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories in the plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.loadPlan(cmd.Context())
			if err != nil {
				return err
			}
			printCategories(cmd.OutOrStdout(), p.Blocks)
			return nil
		},
	}
}

func (a *App) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace the plan with the default blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			p, err := partition.SeedPlan(a.config.Range())
			if err != nil {
				return fmt.Errorf("seeding plan: %w", err)
			}
			if err := a.store.SavePlan(cmd.Context(), p); err != nil {
				return fmt.Errorf("saving plan: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatOK("Plan reset"))
			return a.printCurrent(cmd, p, false)
		},
	}
}

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the plan with one read from a TOML file",
		Long: `Replace the plan with one written by "daybar export". The file must
describe blocks that tile its range.

Example:
  daybar import plan.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading plan file: %w", err)
			}
			p, err := partition.Import(data)
			if err != nil {
				return err
			}
			if err := a.store.SavePlan(cmd.Context(), p); err != nil {
				return fmt.Errorf("saving plan: %w", err)
			}
			loggerFromContext(cmd.Context()).Info("Imported plan", "file", args[0], "blocks", len(p.Blocks))
			return a.printCurrent(cmd, p, false)
		},
	}
}
