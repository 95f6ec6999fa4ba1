// cmd/cabrowse/commands/list.go
package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ThanushaGali/CaConnect/internal/discovery"
	"github.com/ThanushaGali/CaConnect/internal/models"
)

func listCmd(a *app) *cobra.Command {
	var (
		query    string
		domain   string
		location string
		minExp   int
		minRate  float64
		sortBy   string
		view     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List providers matching the given filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := discovery.FilterState{
				Query:         query,
				Domain:        domain,
				Location:      location,
				MinExperience: minExp,
				MinRating:     minRate,
			}.Normalized()
			if err := a.service.ValidateFilters(filters); err != nil {
				return err
			}
			mode, err := discovery.ParseViewMode(view)
			if err != nil {
				return err
			}

			res, err := a.service.Browse(cmd.Context(), discovery.Request{
				Filters: filters,
				Sort:    discovery.SortKey(sortBy),
			})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res, mode)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "search text matched against name, domains and description")
	cmd.Flags().StringVar(&domain, "domain", discovery.Any, "expertise domain")
	cmd.Flags().StringVar(&location, "location", discovery.Any, "provider location")
	cmd.Flags().IntVar(&minExp, "min-experience", 0, "minimum years of experience (0-20)")
	cmd.Flags().Float64Var(&minRate, "min-rating", 0, "minimum rating (0-5)")
	cmd.Flags().StringVar(&sortBy, "sort", string(discovery.DefaultSortKey), "sort key: rating, experience, projects, price-low, price-high")
	cmd.Flags().StringVar(&view, "view", string(discovery.DefaultViewMode), "layout: list or grid")
	return cmd
}

func printResult(out io.Writer, res *discovery.Result, mode discovery.ViewMode) error {
	var chips []string
	if res.Search != nil {
		chips = append(chips, res.Search.String())
	}
	for _, f := range res.ActiveFilters {
		chips = append(chips, f.String())
	}
	if len(chips) > 0 {
		fmt.Fprintf(out, "Filters: %s\n", strings.Join(chips, " | "))
	}

	if res.Empty {
		fmt.Fprintln(out, "No CAs found. Try adjusting your filters.")
		return nil
	}
	fmt.Fprintf(out, "%d CA(s) found\n\n", res.Total)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLOCATION\tEXP\tRATING\tRATE/HR\tDOMAINS")
	for _, p := range res.Providers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dy\t%.1f (%d)\t%.0f\t%s\n",
			p.ID, p.Name, p.Location, p.Experience, p.Rating, p.ReviewCount, p.Pricing.HourlyRate, badges(p, mode))
	}
	return w.Flush()
}

func badges(p *models.Provider, mode discovery.ViewMode) string {
	visible, overflow := discovery.DomainBadges(p, mode)
	s := strings.Join(visible, ", ")
	if overflow > 0 {
		s += fmt.Sprintf(" +%d", overflow)
	}
	return s
}
