package keyreaper

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON          bool
	flagNoColor       bool
	flagNoHashcat     bool
	flagCustomSecrets []string
	flagNoUpdateCheck bool
	flagSelfUpdate    bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the keyreaper CLI.
var rootCmd = &cobra.Command{
	Use:           "keyreaper",
	Short:         "Crack cryptographic tokens against known default secrets",
	Long:          "keyreaper recognizes signed session cookies, viewstates and JWTs, tries them against dictionaries of known signing secrets, and reports which key matches.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if flagSelfUpdate {
			if err := selfUpdate(); err != nil {
				return fmt.Errorf("self-update: %w", err)
			}
			os.Exit(0)
		}
		return nil
	},
}

// Execute runs the keyreaper CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoHashcat, "no-hashcat", false, "skip hashcat command suggestions when no secret is found")
	rootCmd.PersistentFlags().StringArrayVarP(&flagCustomSecrets, "custom-secrets", "c", nil, "custom secrets file to load along with the defaults (repeatable, globs allowed)")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
	rootCmd.PersistentFlags().BoolVar(&flagSelfUpdate, "self-update", false, "update keyreaper to the latest release")
}
