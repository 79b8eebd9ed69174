package tracker

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/reidsolon/tracker/internal/app"
	"github.com/reidsolon/tracker/internal/store"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage data backups",
}

var (
	backupOut   string
	backupDir   string
	restoreFile string
)

func defaultBackupDir() (string, error) {
	if backupDir != "" {
		return backupDir, nil
	}
	if cfg.DBPath == app.MemoryDB {
		return "", fmt.Errorf("--dir is required with an in-memory database")
	}
	return filepath.Join(filepath.Dir(cfg.DBPath), "backups"), nil
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a backup of every stored collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := backupOut
		if out == "" {
			dir, err := defaultBackupDir()
			if err != nil {
				return err
			}
			out = filepath.Join(dir, fmt.Sprintf("tracker-%s%s", time.Now().Format("20060102-150405"), store.BackupExt))
		}
		return withStore(func(kv store.KV) error {
			info, err := store.CreateBackup(cmd.Context(), kv, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created backup: %s\n", info.Path)
			fmt.Fprintf(cmd.OutOrStdout(), "Checksum: %s\n", info.Checksum)
			return nil
		})
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := defaultBackupDir()
		if err != nil {
			return err
		}
		items, err := store.ListBackups(dir)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "FILE\tSIZE\tCREATED\tCHECKSUM")
		for _, it := range items {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\t%s\n", it.Path, it.SizeBytes, it.CreatedAt.Format(time.RFC3339), it.Checksum)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore collections from a backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		if restoreFile == "" {
			return fmt.Errorf("--file is required")
		}
		return withStore(func(kv store.KV) error {
			n, err := store.RestoreBackup(cmd.Context(), kv, restoreFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d collections from %s\n", n, restoreFile)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)

	backupCreateCmd.Flags().StringVar(&backupOut, "out", "", "Backup output file path")
	backupCreateCmd.Flags().StringVar(&backupDir, "dir", "", "Backup directory (used when --out is empty)")
	backupListCmd.Flags().StringVar(&backupDir, "dir", "", "Backup directory (default: alongside DB under backups/)")
	backupRestoreCmd.Flags().StringVar(&restoreFile, "file", "", "Backup file path")
}
