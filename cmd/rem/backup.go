package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rem-go/internal/rem"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create, list, restore and prune database backups",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a timestamped backup of the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		encrypt, _ := cmd.Flags().GetBool("encrypt")
		upload, _ := cmd.Flags().GetBool("upload")

		opts := rem.BackupOptions{Encrypt: encrypt, Upload: upload}
		if encrypt {
			pass, err := readPassphrase(true)
			if err != nil {
				return err
			}
			opts.Passphrase = pass
		}

		a, err := newApp("BackupCreate")
		if err != nil {
			return err
		}
		defer a.Close()

		info, err := a.Backup.Create(opts)
		if err != nil {
			return err
		}
		fmt.Printf("Backup written: %s (%d bytes)\n", info.Path, info.SizeBytes)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("BackupList")
		if err != nil {
			return err
		}
		defer a.Close()

		backups, err := a.Backup.List()
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			fmt.Println("No backups found.")
			return nil
		}
		for _, b := range backups {
			fmt.Printf("%s  %10d bytes  %s\n", b.CreatedAt.Format("2006-01-02 15:04:05"), b.SizeBytes, b.Name)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore PATH",
	Short: "Replace the database with a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var pass string
		if strings.HasSuffix(args[0], ".age") {
			p, err := readPassphrase(false)
			if err != nil {
				return err
			}
			pass = p
		}

		a, err := newApp("BackupRestore")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Backup.Restore(args[0], pass)
	},
}

var backupCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete old backups, keeping the newest N",
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")

		a, err := newApp("BackupCleanup")
		if err != nil {
			return err
		}
		defer a.Close()

		removed, err := a.Backup.Cleanup(keep)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d backups.\n", removed)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export PATH",
	Short: "Export all records to a .json or .sql file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DataExport")
		if err != nil {
			return err
		}
		defer a.Close()

		switch filepath.Ext(args[0]) {
		case ".json":
			return a.Backup.ExportJSON(args[0])
		case ".sql":
			return a.Backup.ExportSQL(args[0])
		default:
			return fmt.Errorf("unsupported export format %q (want .json or .sql)", filepath.Ext(args[0]))
		}
	},
}

var importCmd = &cobra.Command{
	Use:   "import PATH",
	Short: "Import records from a .json or .sql export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DataImport")
		if err != nil {
			return err
		}
		defer a.Close()

		summary, err := a.Backup.Import(args[0])
		if err != nil {
			return err
		}
		if summary != nil {
			fmt.Printf("Imported %d rows, skipped %d.\n", summary.Imported, summary.Skipped)
		}
		return nil
	},
}

// readPassphrase prompts on the terminal without echo. When confirm is
// set the passphrase is read twice and both entries must match.
func readPassphrase(confirm bool) (string, error) {
	fmt.Fprint(os.Stderr, "Passphrase: ")
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	if len(pass) == 0 {
		return "", fmt.Errorf("passphrase cannot be empty")
	}
	if confirm {
		fmt.Fprint(os.Stderr, "Confirm passphrase: ")
		again, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		if string(pass) != string(again) {
			return "", fmt.Errorf("passphrases do not match")
		}
	}
	return string(pass), nil
}

func init() {
	backupCreateCmd.Flags().Bool("encrypt", false, "Encrypt the backup with a passphrase")
	backupCreateCmd.Flags().Bool("upload", false, "Upload the backup to the configured vault")
	backupCleanupCmd.Flags().Int("keep", 10, "Number of backups to keep")

	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupCleanupCmd)
}
