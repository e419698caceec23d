package keyreaper

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/keyreaper/keyreaper/internal/engine"
	"github.com/keyreaper/keyreaper/internal/report"
	"github.com/keyreaper/keyreaper/internal/types"
)

func init() {
	cmd := &cobra.Command{
		Use:   "check <value> [value...]",
		Short: "Check token value(s) against every module",
		Long:  "Supply the token as a positional argument; modules that need extra values (e.g. a ViewState generator) take them as further positionals.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCheck,
	}
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	maybePrintUpdateNotice()
	eng, err := buildEngine()
	if err != nil {
		return err
	}
	opts := report.Options{
		JSON:    flagJSON,
		NoColor: !report.ColorEnabled(os.Stdout, resolvedNoColor()),
	}

	result, err := eng.CheckAllModules(args...)
	if err != nil {
		return err
	}
	if result != nil {
		report.PrintResult(os.Stdout, *result, opts)
		return nil
	}
	report.PrintNothing(os.Stdout, opts)
	if !resolvedNoHashcat() {
		if candidates := hashcatCandidates(eng, args); len(candidates) > 0 {
			report.PrintHashcat(os.Stdout, candidates, opts)
		}
	}
	return nil
}

// hashcatCandidates collects advisor output for every supplied value,
// deduplicated by command so repeated values suggest each crack once.
func hashcatCandidates(eng *engine.Engine, values []string) []types.HashcatCandidate {
	seen := make(map[string]bool)
	var out []types.HashcatCandidate
	for _, v := range values {
		for _, c := range eng.HashcatAllModules(v) {
			if seen[c.Command] {
				continue
			}
			seen[c.Command] = true
			out = append(out, c)
		}
	}
	return out
}

// buildEngine assembles the engine with custom secrets resolved from flags
// and config files.
func buildEngine() (*engine.Engine, error) {
	patterns := flagCustomSecrets
	if len(patterns) == 0 {
		patterns = fileConfig().CustomSecrets
	}
	if len(patterns) == 0 {
		return engine.New(nil), nil
	}
	entries, err := engine.LoadCustomSecrets(patterns)
	if err != nil {
		return nil, err
	}
	return engine.New(nil, engine.WithCustomSecrets(entries)), nil
}
