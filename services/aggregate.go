package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"boxoffice-tracker/models"
)

// TopN returns the n movies with the largest value of metric, largest first.
// Ties keep their dataset order. Movies missing the metric are skipped, and
// an n beyond the dataset size returns every remaining movie.
func TopN(ds *models.Dataset, n int, metric models.Metric) *models.Dataset {
	if n <= 0 || ds.Empty() {
		return ds.View(nil)
	}

	type ranked struct {
		m *models.Movie
		v float64
	}
	candidates := make([]ranked, 0, ds.Len())
	for _, m := range ds.Movies {
		if v, ok := metric.Value(m); ok {
			candidates = append(candidates, ranked{m, v})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].v > candidates[j].v
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]*models.Movie, len(candidates))
	for i, c := range candidates {
		out[i] = c.m
	}
	return ds.View(out)
}

// group accumulates one summary row. Values are added in dataset order so
// sums are reproducible bit for bit.
type group struct {
	key      string
	order    float64
	revenues []float64
	domestic []float64
	foreign  []float64
	ratings  []float64
}

func (g *group) add(m *models.Movie) {
	g.revenues = append(g.revenues, m.WorldwideMillions)
	if m.DomesticPct != nil {
		g.domestic = append(g.domestic, *m.DomesticPct)
	}
	if m.ForeignPct != nil {
		g.foreign = append(g.foreign, *m.ForeignPct)
	}
	if m.RatingScore != nil {
		g.ratings = append(g.ratings, *m.RatingScore)
	}
}

func (g *group) summary() models.GroupSummary {
	total := sum(g.revenues)
	s := models.GroupSummary{
		Key:            g.key,
		MovieCount:     len(g.revenues),
		AvgRevenueM:    round2(total / float64(len(g.revenues))),
		TotalRevenueM:  round2(total),
		RevenueStd:     optRound(sampleStd(g.revenues)),
		AvgDomesticPct: optRound(mean(g.domestic)),
		AvgForeignPct:  optRound(mean(g.foreign)),
		AvgRating:      optRound(mean(g.ratings)),
	}
	return s
}

// GroupBy summarizes ds per genre, year, decade or performance bucket.
//
// Ordering: genres by total revenue descending then name; years and decades
// ascending; buckets from Low to Blockbuster. Movies with no primary genre
// (or no bucket) are left out of the respective view. A dataset without a
// genre column yields an empty genre table.
func GroupBy(ds *models.Dataset, key models.GroupKey) (*models.SummaryTable, error) {
	keyOf, err := keyFunc(key)
	if err != nil {
		return nil, err
	}

	table := &models.SummaryTable{Key: key}
	if ds.Empty() || (key == models.GroupByGenre && !ds.Fields.Genres) {
		return table, nil
	}

	groups := make(map[string]*group)
	var order []*group
	for _, m := range ds.Movies {
		k, ord, ok := keyOf(m)
		if !ok {
			continue
		}
		g, exists := groups[k]
		if !exists {
			g = &group{key: k, order: ord}
			groups[k] = g
			order = append(order, g)
		}
		g.add(m)
	}

	rows := make([]models.GroupSummary, 0, len(order))
	orders := make(map[string]float64, len(order))
	for _, g := range order {
		rows = append(rows, g.summary())
		orders[g.key] = g.order
	}

	if key == models.GroupByGenre {
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].TotalRevenueM != rows[j].TotalRevenueM {
				return rows[i].TotalRevenueM > rows[j].TotalRevenueM
			}
			return rows[i].Key < rows[j].Key
		})
	} else {
		sort.SliceStable(rows, func(i, j int) bool {
			return orders[rows[i].Key] < orders[rows[j].Key]
		})
	}

	table.Rows = rows
	return table, nil
}

type keyFn func(*models.Movie) (key string, order float64, ok bool)

func keyFunc(key models.GroupKey) (keyFn, error) {
	switch key {
	case models.GroupByGenre:
		return func(m *models.Movie) (string, float64, bool) {
			return m.PrimaryGenre, 0, m.PrimaryGenre != ""
		}, nil
	case models.GroupByYear:
		return func(m *models.Movie) (string, float64, bool) {
			return strconv.Itoa(m.Year), float64(m.Year), true
		}, nil
	case models.GroupByDecade:
		return func(m *models.Movie) (string, float64, bool) {
			return strconv.Itoa(m.Decade) + "s", float64(m.Decade), true
		}, nil
	case models.GroupByPerformance:
		return func(m *models.Movie) (string, float64, bool) {
			return string(m.Performance), float64(m.Performance.Index()), m.Performance != models.BucketNone
		}, nil
	}
	return nil, fmt.Errorf("unknown group key %q", key)
}

// SummaryStats describes ds. An empty dataset returns ErrNoMatchingRecords
// alongside zero-valued stats.
func SummaryStats(ds *models.Dataset) (*models.SummaryStats, error) {
	stats := &models.SummaryStats{}
	if ds.Empty() {
		return stats, models.ErrNoMatchingRecords
	}

	var domestic, foreign, ratings []float64
	genres := make(map[string]struct{})
	first := ds.Movies[0]
	stats.YearMin, stats.YearMax = first.Year, first.Year

	for _, m := range ds.Movies {
		stats.TotalMovies++
		stats.TotalWorldwide += m.Worldwide
		if stats.TopGrossing == nil || m.Worldwide > stats.TopGrossing.Worldwide {
			stats.TopGrossing = m
		}
		if m.DomesticPct != nil {
			domestic = append(domestic, *m.DomesticPct)
		}
		if m.ForeignPct != nil {
			foreign = append(foreign, *m.ForeignPct)
		}
		if m.RatingScore != nil {
			ratings = append(ratings, *m.RatingScore)
		}
		if m.PrimaryGenre != "" {
			genres[m.PrimaryGenre] = struct{}{}
		}
		if m.DomesticDominant {
			stats.DomesticDominantCount++
		}
		if m.ForeignDominant {
			stats.ForeignDominantCount++
		}
		if m.Balanced {
			stats.BalancedCount++
		}
		stats.YearMin = min(stats.YearMin, m.Year)
		stats.YearMax = max(stats.YearMax, m.Year)
	}

	stats.AvgWorldwide = stats.TotalWorldwide / float64(stats.TotalMovies)
	stats.AvgDomesticPct = valueOr(mean(domestic), 0)
	stats.AvgForeignPct = valueOr(mean(foreign), 0)
	stats.AvgRating = valueOr(mean(ratings), 0)
	stats.UniqueGenres = len(genres)
	return stats, nil
}

func sum(vs []float64) float64 {
	var total float64
	for _, v := range vs {
		total += v
	}
	return total
}

func mean(vs []float64) *float64 {
	if len(vs) == 0 {
		return nil
	}
	m := sum(vs) / float64(len(vs))
	return &m
}

// sampleStd is the n-1 standard deviation; undefined below two values.
func sampleStd(vs []float64) *float64 {
	if len(vs) < 2 {
		return nil
	}
	mu := *mean(vs)
	var ss float64
	for _, v := range vs {
		ss += (v - mu) * (v - mu)
	}
	sd := math.Sqrt(ss / float64(len(vs)-1))
	return &sd
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func optRound(f *float64) *float64 {
	if f == nil {
		return nil
	}
	r := round2(*f)
	return &r
}

func valueOr(f *float64, fallback float64) float64 {
	if f == nil {
		return fallback
	}
	return *f
}
