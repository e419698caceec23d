// Package report prints detection results as human-readable banners, plus
// JSON for machine consumption.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/keyreaper/keyreaper/internal/types"
)

var (
	bannerSecret   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	bannerIdentify = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	secretStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

// Options control rendering.
type Options struct {
	NoColor bool
	JSON    bool
}

// ColorEnabled reports whether colored output should be used for w,
// honoring the explicit flag, NO_COLOR, and TTY detection.
func ColorEnabled(w io.Writer, noColorFlag bool) bool {
	if noColorFlag || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintResult renders one detection result.
func PrintResult(w io.Writer, r types.DetectionResult, opts Options) {
	if opts.JSON {
		b, _ := json.MarshalIndent(r, "", "  ")
		fmt.Fprintln(w, string(b))
		return
	}
	style := func(s lipgloss.Style, text string) string {
		if opts.NoColor {
			return text
		}
		return s.Render(text)
	}

	fmt.Fprintln(w, "***********************")
	switch r.Kind {
	case types.KindSecretFound:
		fmt.Fprintln(w, style(bannerSecret, "Known Secret Found!"))
	default:
		fmt.Fprintln(w, style(bannerIdentify, "Cryptographic Product Identified (no vulnerability)"))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n\n", style(labelStyle, "Detecting Module:"), r.DetectingModule)
	fmt.Fprintf(w, "%s %s\n", style(labelStyle, "Product Type:"), r.Description.Product)
	fmt.Fprintf(w, "%s %s\n", style(labelStyle, "Product:"), r.Product)
	fmt.Fprintf(w, "%s %s\n", style(labelStyle, "Secret Type:"), r.Description.Secret)
	fmt.Fprintf(w, "%s %s\n", style(labelStyle, "Location:"), r.Location)
	if r.Kind == types.KindSecretFound {
		fmt.Fprintf(w, "%s %s\n", style(labelStyle, "Secret:"), style(secretStyle, r.Secret))
		fmt.Fprintf(w, "%s %s\n", style(labelStyle, "Details:"), r.Details)
	}
	if len(r.Hashcat) > 0 {
		PrintHashcat(w, r.Hashcat, opts)
	}
}

// PrintResults renders a result set as one JSON array.
func PrintResults(w io.Writer, results []types.DetectionResult) {
	b, _ := json.MarshalIndent(results, "", "  ")
	fmt.Fprintln(w, string(b))
}

// PrintHashcat renders hashcat candidates as a table.
func PrintHashcat(w io.Writer, candidates []types.HashcatCandidate, opts Options) {
	if opts.JSON {
		b, _ := json.MarshalIndent(candidates, "", "  ")
		fmt.Fprintln(w, string(b))
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Potential matching hashcat commands:")
	fmt.Fprintln(w)
	table := tablewriter.NewTable(w)
	table.Header([]string{"Module", "Description", "Command"})
	for _, hc := range candidates {
		_ = table.Append([]string{hc.DetectingModule, hc.Description, hc.Command})
	}
	_ = table.Render()
}

// PrintNothing renders the no-findings message.
func PrintNothing(w io.Writer, opts Options) {
	if opts.JSON {
		fmt.Fprintln(w, "[]")
		return
	}
	fmt.Fprintln(w, "No secrets found :(")
}
