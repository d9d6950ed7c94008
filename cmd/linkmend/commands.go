package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/linkmend/pkg/report"
	"github.com/arthur-debert/linkmend/pkg/vault"
)

var reportPath string

func init() {
	scanCmd.Flags().StringVar(&reportPath, "report", "", "Write a markdown report to this path")
	applyCmd.Flags().StringVar(&reportPath, "report", "", "Write a markdown report to this path")
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Preview wikilink replacements without changing any file",
	Long: `Scan the vault and show every plain-text mention that would be
converted to a wikilink, plus the ambiguous mentions that need a human
decision. Nothing is written to the vault.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd.Context(), false)
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Convert plain-text mentions into wikilinks",
	Long: `Scan the vault and rewrite every unambiguous plain-text mention into a
wikilink. Ambiguous and unclassified mentions are reported but never
changed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd.Context(), true)
	},
}

const starterConfig = `# linkmend configuration.
# Save as $XDG_CONFIG_HOME/linkmend/config.yaml.

vault_path: ~/vault

# Preview by default. Flip to true, or run "linkmend apply", to write
# replacements back to the vault.
apply_changes: false

# Cap how many files one run may modify. 0 means no limit.
file_limit: 0

# Only process files whose relative path contains this substring.
file_filter: ""

ignore_folders:
  - .obsidian
  - .trash
  - templates

# Lines matching any of these regexes are never back-populated.
do_not_back_populate: []
`

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Print a starter config file",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), starterConfig)
	},
}

func runPipeline(ctx context.Context, apply bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// The subcommand wins over whatever the config file says: scan never
	// writes, apply always does.
	cfg.ApplyChanges = apply

	v, err := vault.Scan(ctx, cfg)
	if err != nil {
		return err
	}

	partition, err := v.FindMatches(ctx)
	if err != nil {
		return err
	}

	result, err := v.Apply(ctx, partition)
	if err != nil {
		return err
	}

	noColor := !isatty.IsTerminal(os.Stdout.Fd())
	renderer := report.NewTerminalRenderer(noColor)
	fmt.Println(renderer.RenderSummary(partition, result, cfg.ApplyChanges))

	if reportPath != "" {
		md := &report.Markdown{
			Partition: partition,
			Result:    result,
			Applied:   cfg.ApplyChanges,
			Timestamp: time.Now(),
		}
		if err := md.WriteFile(reportPath); err != nil {
			return err
		}
		fmt.Printf("report written to %s\n", reportPath)
	}

	return nil
}
