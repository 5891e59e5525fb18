package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice-tracker/models"
)

func TestGenreRegionalChart(t *testing.T) {
	table, err := GroupBy(loadFixture(t), models.GroupByGenre)
	require.NoError(t, err)

	c := GenreRegionalChart(table)
	assert.Equal(t, []string{"Action", "Animation", "Drama"}, c.Labels)
	require.Len(t, c.Series, 2)
	for _, s := range c.Series {
		assert.Len(t, s.Values, len(c.Labels), s.Name)
	}
	assert.Equal(t, 90.0, c.Series[0].Values[2])
}

func TestTrendChart(t *testing.T) {
	table, err := GroupBy(loadFixture(t), models.GroupByDecade)
	require.NoError(t, err)

	c := TrendChart(table)
	assert.Equal(t, []string{"2000s", "2010s"}, c.Labels)
	require.Len(t, c.Series, 3)
	assert.Equal(t, []float64{1, 4}, c.Series[2].Values)
}

func TestTopPerformersChart(t *testing.T) {
	top := TopN(loadFixture(t), 2, models.MetricWorldwide)
	c := TopPerformersChart(top.Movies)
	assert.Equal(t, []string{"A", "D"}, c.Labels)
	assert.Equal(t, []float64{1200, 700}, c.Series[0].Values)
	assert.Equal(t, []float64{400, 0}, c.Series[1].Values)
}

func TestPerformanceShareChartIncludesEmptyTiers(t *testing.T) {
	ds := loadFixture(t)
	filtered, err := Filter(ds, models.FilterCriteria{Genre: "Drama"})
	require.NoError(t, err)

	c := PerformanceShareChart(filtered)
	assert.Len(t, c.Labels, len(models.PerformanceBuckets))
	assert.Equal(t, []float64{1, 0, 0, 0}, c.Series[0].Values)
}

func TestGenreRatingHierarchy(t *testing.T) {
	nodes := GenreRatingHierarchy(loadFixture(t))

	var action *models.HierarchyNode
	children := 0
	for i := range nodes {
		if nodes[i].ID == "Action" {
			action = &nodes[i]
		}
		if nodes[i].Parent == "Action" {
			children++
		}
	}
	require.NotNil(t, action)
	assert.Equal(t, 1500.0, action.Value)
	assert.Equal(t, 2, children)

	var unknown bool
	for _, n := range nodes {
		if n.ID == "Unknown, PG" {
			unknown = true
			assert.Equal(t, "Unknown", n.Parent)
		}
	}
	assert.True(t, unknown, "movies without a genre fall under Unknown")
}

func TestGenreRatingHierarchyIDsAreUnique(t *testing.T) {
	ds := &models.Dataset{Movies: []*models.Movie{
		{PrimaryGenre: "Sci", Rating: "Fi", WorldwideMillions: 10},
		{PrimaryGenre: "Sci - Fi", Rating: "PG", WorldwideMillions: 20},
	}}

	nodes := GenreRatingHierarchy(ds)
	require.Len(t, nodes, 4)

	parents := make(map[string]string, len(nodes))
	for _, n := range nodes {
		_, dup := parents[n.ID]
		assert.False(t, dup, "duplicate id %q", n.ID)
		parents[n.ID] = n.Parent
	}
	assert.Equal(t, "", parents["Sci - Fi"])
	assert.Equal(t, "Sci", parents["Sci, Fi"])
	assert.Equal(t, "Sci - Fi", parents["Sci - Fi, PG"])
}
