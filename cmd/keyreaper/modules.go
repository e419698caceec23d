package keyreaper

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/keyreaper/keyreaper/internal/modules"
)

func init() {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List the registered detection modules",
		RunE:  runModules,
	}
	rootCmd.AddCommand(cmd)
}

func runModules(cmd *cobra.Command, _ []string) error {
	all := modules.Default().All()
	if flagJSON {
		type row struct {
			Name    string `json:"name"`
			Product string `json:"product"`
			Secret  string `json:"secret"`
		}
		rows := make([]row, 0, len(all))
		for _, m := range all {
			d := m.Description()
			rows = append(rows, row{Name: m.Name(), Product: d.Product, Secret: d.Secret})
		}
		b, _ := json.MarshalIndent(rows, "", "  ")
		fmt.Println(string(b))
		return nil
	}
	table := tablewriter.NewTable(os.Stdout)
	table.Header([]string{"Module", "Product", "Secret Type"})
	for _, m := range all {
		d := m.Description()
		_ = table.Append([]string{m.Name(), d.Product, d.Secret})
	}
	_ = table.Render()
	return nil
}
