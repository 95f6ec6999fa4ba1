// cmd/cabrowse/commands/show.go
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func showCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one provider and the services they offer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.service.Provider(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", p.Name, p.Availability)
			fmt.Fprintf(out, "Location:   %s\n", p.Location)
			fmt.Fprintf(out, "Experience: %d years, %d projects completed\n", p.Experience, p.CompletedProjects)
			fmt.Fprintf(out, "Rating:     %.1f from %d reviews\n", p.Rating, p.ReviewCount)
			fmt.Fprintf(out, "Pricing:    %.0f/hr, consultation %.0f\n", p.Pricing.HourlyRate, p.Pricing.ConsultationFee)
			fmt.Fprintf(out, "Domains:    %s\n", strings.Join(p.Domains, ", "))
			if p.Description != "" {
				fmt.Fprintf(out, "\n%s\n", p.Description)
			}

			if len(p.Services) > 0 {
				fmt.Fprintln(out, "\nServices:")
				for _, s := range p.Services {
					fmt.Fprintf(out, "  [%s] %s: %.0f, %s\n", s.ID, s.Name, s.BasePrice, s.Duration)
				}
			}
			return nil
		},
	}
	return cmd
}
