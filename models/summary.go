package models

import "strconv"

// GroupKey selects the dimension of a grouped summary.
type GroupKey string

const (
	GroupByGenre       GroupKey = "genre"
	GroupByYear        GroupKey = "year"
	GroupByDecade      GroupKey = "decade"
	GroupByPerformance GroupKey = "performance"
)

// GroupSummary is one row of a grouped summary. Averages over optional
// fields are nil when no movie in the group carried the field.
type GroupSummary struct {
	Key            string
	MovieCount     int
	AvgRevenueM    float64
	TotalRevenueM  float64
	RevenueStd     *float64
	AvgDomesticPct *float64
	AvgForeignPct  *float64
	AvgRating      *float64
}

// SummaryColumns is the header shared by every SummaryTable.
var SummaryColumns = []string{
	"Key", "Movie_Count", "Avg_Revenue_M", "Total_Revenue_M", "Revenue_Std",
	"Avg_Domestic_Pct", "Avg_Foreign_Pct", "Avg_Rating",
}

// SummaryTable is a flat grouped summary in display order.
type SummaryTable struct {
	Key  GroupKey
	Rows []GroupSummary
}

// Records flattens the table into string rows, header first.
func (t *SummaryTable) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, SummaryColumns)
	for _, r := range t.Rows {
		out = append(out, []string{
			r.Key,
			strconv.Itoa(r.MovieCount),
			FormatFloat(r.AvgRevenueM),
			FormatFloat(r.TotalRevenueM),
			FormatOptional(r.RevenueStd),
			FormatOptional(r.AvgDomesticPct),
			FormatOptional(r.AvgForeignPct),
			FormatOptional(r.AvgRating),
		})
	}
	return out
}

// TotalCount sums MovieCount over every row.
func (t *SummaryTable) TotalCount() int {
	n := 0
	for _, r := range t.Rows {
		n += r.MovieCount
	}
	return n
}

// SummaryStats describes a whole dataset.
type SummaryStats struct {
	TotalMovies           int
	TotalWorldwide        float64
	AvgWorldwide          float64
	AvgDomesticPct        float64
	AvgForeignPct         float64
	TopGrossing           *Movie
	AvgRating             float64
	YearMin               int
	YearMax               int
	UniqueGenres          int
	DomesticDominantCount int
	ForeignDominantCount  int
	BalancedCount         int
}

// InsightReport bundles the views printed and rendered for one pass.
type InsightReport struct {
	Stats         *SummaryStats
	TopMetric     Metric
	TopPerformers []*Movie
	Genres        *SummaryTable
	Years         *SummaryTable
	Decades       *SummaryTable
	Buckets       *SummaryTable
}

// FormatFloat renders f with the shortest exact representation.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatOptional renders a nil value as an empty cell.
func FormatOptional(f *float64) string {
	if f == nil {
		return ""
	}
	return FormatFloat(*f)
}
