package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/datalab-labs/datalab/internal/branding"
	"github.com/datalab-labs/datalab/internal/config"
	"github.com/datalab-labs/datalab/internal/project"
	"github.com/datalab-labs/datalab/internal/updater"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` manages modules inside a data-lab project: each module pairs a
code directory of generated scripts (modules/<name>/) with a data
directory for its input files (data/<name>/).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()

		// Skip the update banner for commands that manage their own output.
		if cmd.Name() == "version" {
			return
		}
		u := updater.New(buildVersion)
		u.CheckAndPrintBanner(os.Stderr, config.Dir())
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// resolveRoot locates the project root from the process working directory.
func resolveRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	root, err := project.Resolve(cwd)
	if err != nil {
		return "", fmt.Errorf("not inside a %s project (run `%s setup` first): %w",
			branding.DisplayName(), branding.CLIName(), err)
	}
	return root, nil
}
