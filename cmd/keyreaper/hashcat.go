package keyreaper

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/keyreaper/keyreaper/internal/report"
)

func init() {
	cmd := &cobra.Command{
		Use:   "hashcat <product-or-token>",
		Short: "Show offline-cracking commands for a product or token",
		Args:  cobra.ExactArgs(1),
		RunE:  runHashcat,
	}
	rootCmd.AddCommand(cmd)
}

func runHashcat(cmd *cobra.Command, args []string) error {
	eng, err := buildEngine()
	if err != nil {
		return err
	}
	opts := report.Options{
		JSON:    flagJSON,
		NoColor: !report.ColorEnabled(os.Stdout, resolvedNoColor()),
	}
	candidates := eng.HashcatAllModules(args[0])
	if len(candidates) == 0 {
		report.PrintNothing(os.Stdout, opts)
		return nil
	}
	report.PrintHashcat(os.Stdout, candidates, opts)
	return nil
}
