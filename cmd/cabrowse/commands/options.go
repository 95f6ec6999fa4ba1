// cmd/cabrowse/commands/options.go
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func optionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Print the values accepted by the list filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.service.Options()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Domains:    %s\n", strings.Join(opts.Domains, ", "))
			fmt.Fprintf(out, "Locations:  %s\n", strings.Join(opts.Locations, "; "))
			fmt.Fprintf(out, "Experience: %.0f to %.0f years\n", opts.Experience.Min, opts.Experience.Max)
			fmt.Fprintf(out, "Rating:     %.1f to %.1f in steps of %.1f\n", opts.Rating.Min, opts.Rating.Max, opts.Rating.Step)
			fmt.Fprintln(out, "Sort:")
			for _, o := range opts.SortKeys {
				fmt.Fprintf(out, "  %-10s %s\n", o.Key, o.Label)
			}
			return nil
		},
	}
}
