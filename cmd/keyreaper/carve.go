package keyreaper

import (
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/keyreaper/keyreaper/internal/fetch"
	"github.com/keyreaper/keyreaper/internal/report"
	"github.com/keyreaper/keyreaper/internal/tui"
	"github.com/keyreaper/keyreaper/internal/types"
)

var (
	flagProxy       string
	flagUserAgent   string
	flagVerifyTLS   bool
	flagNoCache     bool
	flagInteractive bool
)

var reURL = regexp.MustCompile(`(?i)^https?://((?:[A-Z0-9_]|[A-Z0-9_][A-Z0-9\-_]*[A-Z0-9_])[.]?)+(?:[A-Z0-9_][A-Z0-9\-_]*[A-Z0-9_]|[A-Z0-9_])(?::[0-9]{1,5})?.*$`)

func init() {
	cmd := &cobra.Command{
		Use:   "carve <url>",
		Short: "Fetch a URL and carve its response for crackable tokens",
		Args:  cobra.ExactArgs(1),
		RunE:  runCarve,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagProxy, "proxy", "p", "", "HTTP proxy to fetch through")
	cmd.Flags().StringVarP(&flagUserAgent, "user-agent", "a", "", "custom User-Agent for the fetch")
	cmd.Flags().BoolVar(&flagVerifyTLS, "verify-tls", false, "verify TLS certificates (off by default)")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "bypass the local response cache")
	cmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "browse results in an interactive view")
}

func runCarve(cmd *cobra.Command, args []string) error {
	maybePrintUpdateNotice()
	rawURL := args[0]
	if !reURL.MatchString(rawURL) {
		return fmt.Errorf("URL is not formatted correctly: %s", rawURL)
	}
	eng, err := buildEngine()
	if err != nil {
		return err
	}

	cfg := fileConfig()
	resp, err := fetch.Get(cmd.Context(), rawURL, fetch.Options{
		Proxy:     pickString(flagProxy, cfg.Proxy, nil),
		UserAgent: pickString(flagUserAgent, cfg.UserAgent, nil),
		VerifyTLS: pickBool(flagVerifyTLS, cfg.VerifyTLS, nil),
		NoCache:   pickBool(flagNoCache, cfg.NoCache, nil),
	})
	if err != nil {
		return err
	}

	results := eng.CarveAllModules(resp)
	if !resolvedNoHashcat() {
		for i, r := range results {
			if r.Kind == types.KindProductIdentified {
				results[i].Hashcat = eng.HashcatAllModules(r.Product)
			}
		}
	}

	opts := report.Options{
		JSON:    flagJSON,
		NoColor: !report.ColorEnabled(os.Stdout, resolvedNoColor()),
	}
	if flagInteractive && !flagJSON {
		return tui.Run(rawURL, results)
	}
	if len(results) == 0 {
		report.PrintNothing(os.Stdout, opts)
		return nil
	}
	if flagJSON {
		report.PrintResults(os.Stdout, results)
		return nil
	}
	for _, r := range results {
		report.PrintResult(os.Stdout, r, opts)
	}
	return nil
}
