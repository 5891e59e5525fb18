package services

import (
	"boxoffice-tracker/models"
)

// GenreRegionalChart shapes a genre summary into paired domestic/foreign
// share bars.
func GenreRegionalChart(t *models.SummaryTable) *models.ChartTable {
	c := &models.ChartTable{
		Title:  "Genre-wise Regional Performance",
		XLabel: "Genre",
		YLabel: "Average Percentage",
	}
	dom := models.ChartSeries{Name: "Avg Domestic %"}
	frn := models.ChartSeries{Name: "Avg Foreign %"}
	for _, r := range t.Rows {
		c.Labels = append(c.Labels, r.Key)
		dom.Values = append(dom.Values, valueOr(r.AvgDomesticPct, 0))
		frn.Values = append(frn.Values, valueOr(r.AvgForeignPct, 0))
		c.Sizes = append(c.Sizes, r.AvgRevenueM)
	}
	c.Series = []models.ChartSeries{dom, frn}
	return c
}

// TrendChart shapes a year or decade summary into revenue and count lines.
func TrendChart(t *models.SummaryTable) *models.ChartTable {
	c := &models.ChartTable{
		Title:  "Revenue Trends",
		XLabel: string(t.Key),
		YLabel: "Revenue ($M)",
	}
	avg := models.ChartSeries{Name: "Avg Revenue ($M)"}
	total := models.ChartSeries{Name: "Total Revenue ($M)"}
	count := models.ChartSeries{Name: "Movie Count"}
	for _, r := range t.Rows {
		c.Labels = append(c.Labels, r.Key)
		avg.Values = append(avg.Values, r.AvgRevenueM)
		total.Values = append(total.Values, r.TotalRevenueM)
		count.Values = append(count.Values, float64(r.MovieCount))
	}
	c.Series = []models.ChartSeries{avg, total, count}
	return c
}

// TopPerformersChart shapes ranked movies into stacked domestic/foreign bars
// with the worldwide total alongside. Missing regional figures chart as 0.
func TopPerformersChart(movies []*models.Movie) *models.ChartTable {
	c := &models.ChartTable{
		Title:  "Top Performers",
		XLabel: "Revenue ($M)",
		YLabel: "Movie",
	}
	ww := models.ChartSeries{Name: "Worldwide"}
	dom := models.ChartSeries{Name: "Domestic"}
	frn := models.ChartSeries{Name: "Foreign"}
	for _, m := range movies {
		c.Labels = append(c.Labels, displayName(m))
		ww.Values = append(ww.Values, m.WorldwideMillions)
		dom.Values = append(dom.Values, valueOr(m.DomesticMillions, 0))
		frn.Values = append(frn.Values, valueOr(m.ForeignMillions, 0))
	}
	c.Series = []models.ChartSeries{ww, dom, frn}
	return c
}

// PerformanceShareChart counts movies per performance tier, every tier
// present even when empty.
func PerformanceShareChart(ds *models.Dataset) *models.ChartTable {
	counts := make([]float64, len(models.PerformanceBuckets))
	for _, m := range ds.Movies {
		if i := m.Performance.Index(); i >= 0 {
			counts[i]++
		}
	}
	c := &models.ChartTable{Title: "Performance Distribution"}
	for _, b := range models.PerformanceBuckets {
		c.Labels = append(c.Labels, string(b))
	}
	c.Series = []models.ChartSeries{{Name: "Movies", Values: counts}}
	return c
}

// GenreRatingHierarchy builds genre → rating nodes valued by worldwide
// revenue in millions, in first-seen order. Movies without a primary genre
// fall under "Unknown"; unrated ones under "Unrated".
func GenreRatingHierarchy(ds *models.Dataset) []models.HierarchyNode {
	var nodes []models.HierarchyNode
	genreIdx := make(map[string]int)
	leafIdx := make(map[string]int)

	for _, m := range ds.Movies {
		genre := m.PrimaryGenre
		if genre == "" {
			genre = "Unknown"
		}
		rating := m.Rating
		if rating == "" {
			rating = "Unrated"
		}

		gi, ok := genreIdx[genre]
		if !ok {
			gi = len(nodes)
			genreIdx[genre] = gi
			nodes = append(nodes, models.HierarchyNode{ID: genre, Label: genre})
		}
		nodes[gi].Value += m.WorldwideMillions

		// A primary genre never contains a comma, so leaf IDs cannot
		// collide with genre IDs or with leaves of another genre.
		id := genre + ", " + rating
		li, ok := leafIdx[id]
		if !ok {
			li = len(nodes)
			leafIdx[id] = li
			nodes = append(nodes, models.HierarchyNode{ID: id, Label: rating, Parent: genre})
		}
		nodes[li].Value += m.WorldwideMillions
	}
	return nodes
}
