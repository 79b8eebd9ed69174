package tracker

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reidsolon/tracker/internal/calorie"
)

var (
	exportOut    string
	exportFormat string
	importIn     string
	importFormat string
)

// formatFor prefers an explicit --format, then the file extension.
func formatFor(flag, path string) (calorie.Format, error) {
	if flag == "" {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if ext == "yaml" || ext == "yml" {
			flag = ext
		}
	}
	return calorie.ParseFormat(flag)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export foods, entries, goals and settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatFor(exportFormat, exportOut)
		if err != nil {
			return err
		}
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			body, err := calorie.EncodeExport(repo.Export(ctx), format)
			if err != nil {
				return err
			}
			if exportOut == "" {
				_, err := cmd.OutOrStdout().Write(body)
				return err
			}
			if err := os.WriteFile(exportOut, body, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a previously exported document",
	Long:  "Import replaces each collection present in the document. Collections missing from the document are left as they are.",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatFor(importFormat, importIn)
		if err != nil {
			return err
		}
		raw, err := readInput(cmd, importIn)
		if err != nil {
			return err
		}
		doc, err := calorie.DecodeExport(raw, format)
		if err != nil {
			return err
		}
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			if err := repo.Import(ctx, doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d foods, %d entries, %d goals\n",
				len(repo.Foods()), len(repo.Entries()), len(repo.Goals()))
			return nil
		})
	},
}

// readInput reads path, or stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "json or yaml (default: from --out extension, else json)")
	importCmd.Flags().StringVar(&importIn, "in", "", "Input file (default stdin)")
	importCmd.Flags().StringVar(&importFormat, "format", "", "json or yaml (default: from --in extension, else json)")
}
