package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datalab-labs/datalab/internal/backup"
	"github.com/datalab-labs/datalab/internal/config"
	"github.com/datalab-labs/datalab/internal/sizes"
)

var (
	backupDataOnly bool
	backupCodeOnly bool
)

var backupCmd = &cobra.Command{
	Use:   "backup [<name>] <dir>",
	Short: "Back up modules into a zip archive",
	Long: `Archive one module (or all modules) into a timestamped zip file
inside the target directory.

With no module name, every module is archived. --data restricts the
archive to data files, --code to code files. When backup.dir is
configured, the target directory argument may be omitted.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runBackup,
}

func init() {
	backupCmd.Flags().BoolVarP(&backupDataOnly, "data", "d", false, "Back up data files only")
	backupCmd.Flags().BoolVarP(&backupCodeOnly, "code", "c", false, "Back up code files only")
	rootCmd.AddCommand(backupCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	req := backup.Request{
		DataOnly: backupDataOnly,
		CodeOnly: backupCodeOnly,
	}

	// The last positional argument is the target directory; a leading
	// one names the module. With no positionals the configured
	// backup.dir applies and all modules are archived.
	switch len(args) {
	case 2:
		req.Module = args[0]
		req.TargetDir = args[1]
	case 1:
		req.TargetDir = args[0]
	case 0:
		req.TargetDir = config.Get(config.KeyBackupDir)
		if req.TargetDir == "" {
			return fmt.Errorf("no target directory given and %s is not configured", config.KeyBackupDir)
		}
	}

	root, err := resolveRoot()
	if err != nil {
		return err
	}

	report, err := (&backup.Builder{}).Build(root, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if report.Empty {
		fmt.Fprintln(out, "Warning: no files to back up; removed the empty archive")
		return nil
	}

	if req.Module != "" {
		fmt.Fprintf(out, "Module %q backed up:\n", req.Module)
	} else {
		fmt.Fprintln(out, "Backup completed:")
		fmt.Fprintf(out, "  Modules: %d/%d\n", report.ModulesWithFiles, report.ModulesConsidered)
		for _, mc := range report.PerModule {
			fmt.Fprintf(out, "    %s: %d files\n", mc.Name, mc.Files)
		}
	}
	fmt.Fprintf(out, "  Files: %d\n", report.FileCount)
	fmt.Fprintf(out, "  Original size: %s\n", sizes.Human(report.TotalBytes))
	fmt.Fprintf(out, "  Compressed size: %s\n", sizes.Human(report.ArchiveBytes))
	fmt.Fprintf(out, "  Archive: %s\n", report.ArchivePath)
	return nil
}
