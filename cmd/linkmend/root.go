package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/linkmend/internal/version"
	"github.com/arthur-debert/linkmend/pkg/config"
	"github.com/arthur-debert/linkmend/pkg/logging"
)

var (
	verbosity  int
	configPath string
	vaultPath  string

	rootCmd = &cobra.Command{
		Use:   "linkmend",
		Short: "Back-populate wikilinks across a markdown vault",
		Long: `linkmend scans a markdown vault for plain-text mentions of note titles
and aliases and converts them into [[wikilinks]]. Occurrences inside
frontmatter, code blocks, existing links, and excluded lines are left
alone, and mentions that could refer to more than one note are reported
instead of changed.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command. Called once from main.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Println(formatError(err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is $XDG_CONFIG_HOME/linkmend/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", "", "Vault root (overrides vault_path from config)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(initConfigCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

// loadConfig resolves the effective config, letting the --vault flag win
// over whatever the config file says.
func loadConfig() (*config.Config, error) {
	if vaultPath != "" {
		// Validation needs a vault path before Load runs; the env
		// override is how flags reach the koanf merge.
		if err := setVaultEnv(vaultPath); err != nil {
			return nil, err
		}
	}
	return config.Load(configPath)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print version information for linkmend`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("linkmend version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `To load completions:

Bash:
  $ source <(linkmend completion bash)

Zsh:
  $ linkmend completion zsh > "${fpath[1]}/_linkmend"

Fish:
  $ linkmend completion fish | source

PowerShell:
  PS> linkmend completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate bash completion")
			}
		case "zsh":
			if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate zsh completion")
			}
		case "fish":
			if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
				log.Error().Err(err).Msg("Failed to generate fish completion")
			}
		case "powershell":
			if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate powershell completion")
			}
		}
	},
}
