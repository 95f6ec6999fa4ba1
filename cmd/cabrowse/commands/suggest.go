// cmd/cabrowse/commands/suggest.go
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ThanushaGali/CaConnect/internal/discovery"
)

func suggestCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Complete a search query from domain and provider names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			for _, s := range a.service.Suggest(strings.Join(args, " "), limit) {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", discovery.DefaultSuggestionLimit, "maximum number of suggestions")
	return cmd
}
