package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported AI providers and their status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, log, err := wire()
		if err != nil {
			return err
		}
		defer log.Sync()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tDISPLAY\tCONFIGURED")
		for _, d := range reg.Orchestrator().ConfiguredProviders() {
			configured := "no"
			if d.Configured {
				configured = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", d.Name, d.DisplayName, configured)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
