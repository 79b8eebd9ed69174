package tracker

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reidsolon/tracker/internal/model"
	"github.com/reidsolon/tracker/internal/todo"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage the todo list",
}

var (
	todoDescription string
	todoPriority    string
	todoCategory    string
	todoTitle       string
	todoDone        bool
)

func parsePriority(s string) (model.Priority, error) {
	p := model.Priority(strings.ToLower(strings.TrimSpace(s)))
	if p != "" && !p.Valid() {
		return "", fmt.Errorf("invalid priority %q (expected low, medium, or high)", s)
	}
	return p, nil
}

var todoAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a todo",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		priority, err := parsePriority(todoPriority)
		if err != nil {
			return err
		}
		return withTodos(cmd, func(ctx context.Context, repo *todo.Repository) error {
			item, err := repo.Add(ctx, todo.CreateInput{
				Title:       strings.Join(args, " "),
				Description: todoDescription,
				Priority:    priority,
				Category:    todoCategory,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added todo %s: %s\n", item.ID, item.Title)
			return nil
		})
	},
}

var (
	todoListStatus   string
	todoListPriority string
	todoListCategory string
	todoListSearch   string
	todoListSort     string
	todoListAsc      bool
)

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := todo.Filter{Category: strings.TrimSpace(todoListCategory), Search: todoListSearch}
		switch strings.ToLower(todoListStatus) {
		case "", "all":
		case "pending":
			filter.Completed = new(bool)
		case "done", "completed":
			done := true
			filter.Completed = &done
		default:
			return fmt.Errorf("invalid --status %q (expected all, pending, or done)", todoListStatus)
		}
		priority, err := parsePriority(todoListPriority)
		if err != nil {
			return err
		}
		filter.Priority = priority
		sort, err := todo.ParseSort(todoListSort, !todoListAsc)
		if err != nil {
			return err
		}
		return withTodos(cmd, func(ctx context.Context, repo *todo.Repository) error {
			printTodos(cmd.OutOrStdout(), repo.Filtered(filter, sort))
			return nil
		})
	},
}

var todoUpdateCmd = &cobra.Command{
	Use:   "update <id> [id...]",
	Short: "Update one or more todos",
	Long:  "Update one todo, or several at once as a single undoable step. Invalid updates are skipped when updating several.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := todo.UpdateInput{}
		if cmd.Flags().Changed("title") {
			in.Title = &todoTitle
		}
		if cmd.Flags().Changed("description") {
			in.Description = &todoDescription
		}
		if cmd.Flags().Changed("category") {
			in.Category = &todoCategory
		}
		if cmd.Flags().Changed("priority") {
			p, err := parsePriority(todoPriority)
			if err != nil {
				return err
			}
			in.Priority = &p
		}
		if cmd.Flags().Changed("done") {
			in.Completed = &todoDone
		}
		ids := splitIDs(args)
		return withTodos(cmd, func(ctx context.Context, repo *todo.Repository) error {
			if len(ids) == 1 {
				item, err := repo.Update(ctx, ids[0], in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated todo %s\n", item.ID)
				return nil
			}
			n, err := repo.BatchUpdate(ctx, ids, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d of %d todos\n", n, len(ids))
			return nil
		})
	},
}

var todoToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip a todo between pending and done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTodos(cmd, func(ctx context.Context, repo *todo.Repository) error {
			item, err := repo.Toggle(ctx, args[0])
			if err != nil {
				return err
			}
			state := "pending"
			if item.Completed {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Todo %s is %s\n", item.ID, state)
			return nil
		})
	},
}

var todoDeleteCmd = &cobra.Command{
	Use:   "delete <id> [id...]",
	Short: "Delete one or more todos",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := splitIDs(args)
		return withTodos(cmd, func(ctx context.Context, repo *todo.Repository) error {
			if len(ids) == 1 {
				if err := repo.Delete(ctx, ids[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted todo %s\n", ids[0])
				return nil
			}
			n, err := repo.BatchDelete(ctx, ids)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d todos\n", n)
			return nil
		})
	},
}

var todoClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every todo",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTodos(cmd, func(ctx context.Context, repo *todo.Repository) error {
			if err := repo.Clear(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared todos")
			return nil
		})
	},
}

var todoUndoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last todo change",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTodos(cmd, func(ctx context.Context, repo *todo.Repository) error {
			ok, err := repo.Undo(ctx)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to undo")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Undone (%d todos)\n", len(repo.Todos()))
			return nil
		})
	},
}

var todoRedoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Redo the last undone todo change",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTodos(cmd, func(ctx context.Context, repo *todo.Repository) error {
			ok, err := repo.Redo(ctx)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to redo")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Redone (%d todos)\n", len(repo.Todos()))
			return nil
		})
	},
}

var todoStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show todo counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTodos(cmd, func(ctx context.Context, repo *todo.Repository) error {
			s := repo.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total: %d\n", s.Total)
			fmt.Fprintf(out, "Completed: %d\n", s.Completed)
			fmt.Fprintf(out, "Pending: %d\n", s.Pending)
			fmt.Fprintf(out, "High priority: %d\n", s.HighPriority)
			fmt.Fprintf(out, "Categories: %d\n", s.Categories)
			fmt.Fprintf(out, "Completion: %d%%\n", s.CompletionRate)
			for _, p := range model.Priorities {
				fmt.Fprintf(out, "%s: %d\n", p, s.PriorityStats[p])
			}
			return nil
		})
	},
}

var todoExportOut string

var todoExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export todos as a JSON array",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTodos(cmd, func(ctx context.Context, repo *todo.Repository) error {
			body, err := repo.Export()
			if err != nil {
				return err
			}
			if todoExportOut == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(body))
				return nil
			}
			if err := os.WriteFile(todoExportOut, body, 0o644); err != nil {
				return fmt.Errorf("write todo export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported todos to %s\n", todoExportOut)
			return nil
		})
	},
}

var todoImportIn string

var todoImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the todo list with a JSON array",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd, todoImportIn)
		if err != nil {
			return err
		}
		return withTodos(cmd, func(ctx context.Context, repo *todo.Repository) error {
			n, err := repo.Import(ctx, raw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d todos\n", n)
			return nil
		})
	},
}

func printTodos(w io.Writer, items []model.TodoItem) {
	fmt.Fprintln(w, "ID\tDONE\tPRIORITY\tCATEGORY\tTITLE")
	for _, t := range items {
		fmt.Fprintf(w, "%s\t%t\t%s\t%s\t%s\n", t.ID, t.Completed, t.Priority, t.Category, t.Title)
	}
}

func init() {
	rootCmd.AddCommand(todoCmd)
	todoCmd.AddCommand(todoAddCmd, todoListCmd, todoUpdateCmd, todoToggleCmd, todoDeleteCmd,
		todoClearCmd, todoUndoCmd, todoRedoCmd, todoStatsCmd, todoExportCmd, todoImportCmd)

	todoAddCmd.Flags().StringVar(&todoDescription, "description", "", "Longer description")
	todoAddCmd.Flags().StringVar(&todoPriority, "priority", string(model.PriorityMedium), "low, medium, or high")
	todoAddCmd.Flags().StringVar(&todoCategory, "category", "", "Category")

	todoListCmd.Flags().StringVar(&todoListStatus, "status", "all", "all, pending, or done")
	todoListCmd.Flags().StringVar(&todoListPriority, "priority", "", "Filter by priority")
	todoListCmd.Flags().StringVar(&todoListCategory, "category", "", "Filter by category")
	todoListCmd.Flags().StringVar(&todoListSearch, "search", "", "Search title, description, and category")
	todoListCmd.Flags().StringVar(&todoListSort, "sort", string(todo.SortByCreatedAt), "title, createdAt, updatedAt, or priority")
	todoListCmd.Flags().BoolVar(&todoListAsc, "asc", false, "Sort ascending")

	todoUpdateCmd.Flags().StringVar(&todoTitle, "title", "", "New title")
	todoUpdateCmd.Flags().StringVar(&todoDescription, "description", "", "New description")
	todoUpdateCmd.Flags().StringVar(&todoPriority, "priority", "", "New priority")
	todoUpdateCmd.Flags().StringVar(&todoCategory, "category", "", "New category")
	todoUpdateCmd.Flags().BoolVar(&todoDone, "done", false, "Mark done (--done=false to reopen)")

	todoExportCmd.Flags().StringVar(&todoExportOut, "out", "", "Output file (default stdout)")
	todoImportCmd.Flags().StringVar(&todoImportIn, "in", "", "Input file (default stdin)")
}
