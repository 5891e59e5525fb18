package services

import (
	"fmt"
	"io"
	"strings"

	"boxoffice-tracker/models"
	"boxoffice-tracker/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate builds every view of the dashboard for ds. An empty dataset
// returns ErrNoMatchingRecords and a report holding zero stats.
func (s *InsightService) Generate(ds *models.Dataset, topN int, metric models.Metric) (*models.InsightReport, error) {
	stats, err := SummaryStats(ds)
	report := &models.InsightReport{Stats: stats, TopMetric: metric}
	if err != nil {
		return report, err
	}

	report.TopPerformers = TopN(ds, topN, metric).Movies

	tables := []struct {
		key models.GroupKey
		dst **models.SummaryTable
	}{
		{models.GroupByGenre, &report.Genres},
		{models.GroupByYear, &report.Years},
		{models.GroupByDecade, &report.Decades},
		{models.GroupByPerformance, &report.Buckets},
	}
	for _, t := range tables {
		table, err := GroupBy(ds, t.key)
		if err != nil {
			return report, err
		}
		*t.dst = table
	}

	s.logger.Info("[insights] %d movies, %d genres, %d years summarized",
		stats.TotalMovies, len(report.Genres.Rows), len(report.Years.Rows))
	return report, nil
}

func (s *InsightService) Print(w io.Writer, r *models.InsightReport) {
	sep := strings.Repeat("═", 64)
	thin := strings.Repeat("─", 64)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  🎬 BOX OFFICE REGIONAL INSIGHTS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	st := r.Stats
	if st == nil || st.TotalMovies == 0 {
		fmt.Fprintf(w, "  No movies match the current filters\n\n")
		return
	}

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Movies               : \033[1m%d\033[0m (%d-%d, %d genres)\n",
		st.TotalMovies, st.YearMin, st.YearMax, st.UniqueGenres)
	fmt.Fprintf(w, "  Total worldwide      : \033[1;32m%s\033[0m\n", money(st.TotalWorldwide))
	fmt.Fprintf(w, "  Average worldwide    : \033[1;32m%s\033[0m\n", money(st.AvgWorldwide))
	fmt.Fprintf(w, "  Avg domestic/foreign : %.1f%% / %.1f%%\n", st.AvgDomesticPct, st.AvgForeignPct)
	fmt.Fprintf(w, "  Average rating       : %.2f\n", st.AvgRating)
	if st.TopGrossing != nil {
		fmt.Fprintf(w, "  Top grossing         : %s (%s)\n", truncate(displayName(st.TopGrossing), 36), money(st.TopGrossing.Worldwide))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Regional Split\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Domestic dominance (>50%%) : %d\n", st.DomesticDominantCount)
	fmt.Fprintf(w, "  Foreign dominance (>50%%)  : %d\n", st.ForeignDominantCount)
	fmt.Fprintf(w, "  Balanced (±10pp of 50%%)   : %d\n", st.BalancedCount)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Top %d by %s revenue\033[0m\n", len(r.TopPerformers), r.TopMetric)
	fmt.Fprintf(w, "  %s\n", thin)
	for i, m := range r.TopPerformers {
		v, _ := r.TopMetric.Value(m)
		fmt.Fprintf(w, "  \033[1m%2d.\033[0m %-40s \033[1;32m%10s\033[0m\n", i+1, truncate(displayName(m), 38), money(v))
	}
	fmt.Fprintln(w)

	printTable(w, "Genres by total revenue", r.Genres, thin)
	printTable(w, "Decade performance", r.Decades, thin)
	printTable(w, "Performance tiers", r.Buckets, thin)

	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)
}

func printTable(w io.Writer, title string, t *models.SummaryTable, thin string) {
	if t == nil {
		return
	}
	fmt.Fprintf(w, "\033[1;33m  %s\033[0m\n", title)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(t.Rows) == 0 {
		fmt.Fprintf(w, "  No data\n\n")
		return
	}
	fmt.Fprintf(w, "  %-22s %6s %12s %12s %8s %8s\n", "", "Movies", "Avg $M", "Total $M", "Dom %", "For %")
	for _, row := range t.Rows {
		fmt.Fprintf(w, "  %-22s %6d %12.2f %12.2f %8s %8s\n",
			truncate(row.Key, 22), row.MovieCount, row.AvgRevenueM, row.TotalRevenueM,
			pct(row.AvgDomesticPct), pct(row.AvgForeignPct))
	}
	fmt.Fprintln(w)
}

func displayName(m *models.Movie) string {
	if m.Name != "" {
		return m.Name
	}
	return fmt.Sprintf("row %d", m.Row+1)
}

func money(raw float64) string {
	switch {
	case raw >= 1_000_000_000:
		return fmt.Sprintf("$%.2fB", raw/1_000_000_000)
	case raw >= 1_000_000:
		return fmt.Sprintf("$%.1fM", raw/1_000_000)
	}
	return fmt.Sprintf("$%.0f", raw)
}

func pct(f *float64) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *f)
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
