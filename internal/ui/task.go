package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybar/internal/partition"
)

func (a *App) taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks filed under categories",
	}
	cmd.AddCommand(a.taskAddCmd())
	cmd.AddCommand(a.taskListCmd())
	cmd.AddCommand(a.taskDoneCmd())
	cmd.AddCommand(a.taskRemoveCmd())
	return cmd
}

func (a *App) taskAddCmd() *cobra.Command {
	var (
		category string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Long: `Add a task under a category of the current plan.

Example:
  daybar task add "Morning run" --category Exercise`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPlan(cmd.Context())
			if err != nil {
				return err
			}
			categories := partition.Categories(p.Blocks)
			if force {
				categories = nil
			}
			t, err := a.registry.Add(cmd.Context(), joinArgs(args), category, categories)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d: %s [%s]\n", t.ID, t.Text, t.Category)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (required)")
	cmd.Flags().BoolVar(&force, "force", false, "Allow a category that is not in the plan")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func (a *App) taskListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.loadPlan(cmd.Context())
			if err != nil {
				return err
			}
			tasks, err := a.registry.List(cmd.Context())
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), tasks, partition.Categories(p.Blocks))
			return nil
		},
	}
}

func (a *App) taskDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}
			t, err := a.registry.Toggle(cmd.Context(), id)
			if err != nil {
				return err
			}
			state := "not done"
			if t.Completed {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked task #%d as %s\n", t.ID, state)
			return nil
		},
	}
}

func (a *App) taskRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}
			if err := a.registry.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("deleting task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d\n", id)
			return nil
		},
	}
}
