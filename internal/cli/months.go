package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ravden/gphotos-downloader/internal/model"
)

func newMonthsCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "months --start YYYY-MM --end YYYY-MM",
		Short: "Export every month in an inclusive range",
		Long: `Export all media captured between two months, inclusive. Months are
processed one after another, oldest first, each with its own listing
cache and download pool.

Example:

  gphotos-dl months --start 2023-11 --end 2024-02 -o /photos`,
		RunE: func(cmd *cobra.Command, args []string) error {
			startYear, startMonth, err := parseYearMonth(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			endYear, endMonth, err := parseYearMonth(end)
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}

			scopes, err := model.MonthRange(startYear, startMonth, endYear, endMonth)
			if err != nil {
				return err
			}

			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			api, err := newAPIClient(cmd.Context(), settings)
			if err != nil {
				return err
			}

			logger.Info().Msgf("Exporting %d month(s) to %s", len(scopes), settings.OutputPath)
			return runScopes(cmd.Context(), settings, api, scopes)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First month to export (YYYY-MM)")
	cmd.Flags().StringVar(&end, "end", "", "Last month to export (YYYY-MM)")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")

	return cmd
}

// parseYearMonth parses "YYYY-MM" into its parts. Range validation is
// left to model.MonthRange.
func parseYearMonth(s string) (year, month int, err error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want YYYY-MM, got %q", s)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad year in %q", s)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad month in %q", s)
	}
	return year, month, nil
}
