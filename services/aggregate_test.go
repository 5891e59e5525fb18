package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice-tracker/models"
)

func TestTopNByMetric(t *testing.T) {
	ds := loadFixture(t)

	assert.Equal(t, []string{"A", "D", "C"}, names(TopN(ds, 3, models.MetricWorldwide)))
	assert.Equal(t, []string{"A", "C", "G"}, names(TopN(ds, 3, models.MetricDomestic)))
	assert.Equal(t, []string{"A", "D"}, names(TopN(ds, 2, models.MetricForeign)))
}

func TestTopNBeyondSizeReturnsWholeDataset(t *testing.T) {
	ds := loadFixture(t)
	got := TopN(ds, 100, models.MetricWorldwide)
	assert.Equal(t, ds.Len(), got.Len())
	assert.Equal(t, []string{"A", "D", "C", "G", "B"}, names(got))
}

func TestTopNNonPositive(t *testing.T) {
	ds := loadFixture(t)
	assert.True(t, TopN(ds, 0, models.MetricWorldwide).Empty())
	assert.True(t, TopN(ds, -1, models.MetricWorldwide).Empty())
}

func TestTopNStableOnTies(t *testing.T) {
	ds := &models.Dataset{Movies: []*models.Movie{
		{Name: "first", Worldwide: 10},
		{Name: "big", Worldwide: 20},
		{Name: "second", Worldwide: 10},
		{Name: "third", Worldwide: 10},
	}}
	assert.Equal(t, []string{"big", "first", "second"}, names(TopN(ds, 3, models.MetricWorldwide)))
}

func TestTopNSkipsMissingMetric(t *testing.T) {
	ds := &models.Dataset{Movies: []*models.Movie{
		{Name: "no-domestic", Worldwide: 10},
		{Name: "domestic", Worldwide: 5, Domestic: f64(3)},
	}}
	assert.Equal(t, []string{"domestic"}, names(TopN(ds, 5, models.MetricDomestic)))
}

func TestGroupByGenre(t *testing.T) {
	ds := loadFixture(t)
	table, err := GroupBy(ds, models.GroupByGenre)
	require.NoError(t, err)

	require.Len(t, table.Rows, 3)
	assert.Equal(t, "Action", table.Rows[0].Key)
	assert.Equal(t, "Animation", table.Rows[1].Key)
	assert.Equal(t, "Drama", table.Rows[2].Key)

	action := table.Rows[0]
	assert.Equal(t, 2, action.MovieCount)
	assert.Equal(t, 1500.0, action.TotalRevenueM)
	assert.Equal(t, 750.0, action.AvgRevenueM)
	require.NotNil(t, action.RevenueStd)
	assert.InDelta(t, 636.40, *action.RevenueStd, 0.01)
	require.NotNil(t, action.AvgDomesticPct)
	assert.InDelta(t, 41.65, *action.AvgDomesticPct, 0.01)
	require.NotNil(t, action.AvgRating)
	assert.InDelta(t, 7.75, *action.AvgRating, 1e-9)

	animation := table.Rows[1]
	assert.Nil(t, animation.AvgRating)
	assert.Nil(t, animation.RevenueStd)

	// G has no genre and is left out.
	assert.Equal(t, 4, table.TotalCount())
}

func TestGroupByGenreCountsMatchNonNullSubset(t *testing.T) {
	ds := loadFixture(t)
	table, err := GroupBy(ds, models.GroupByGenre)
	require.NoError(t, err)

	withGenre := 0
	for _, m := range ds.Movies {
		if m.PrimaryGenre != "" {
			withGenre++
		}
	}
	assert.Equal(t, withGenre, table.TotalCount())
}

func TestGroupByGenreWithoutColumn(t *testing.T) {
	ds := loadFixture(t)
	noGenre := ds.View(ds.Movies)
	noGenre.Fields.Genres = false

	table, err := GroupBy(noGenre, models.GroupByGenre)
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestGroupByYearAndDecade(t *testing.T) {
	ds := loadFixture(t)

	years, err := GroupBy(ds, models.GroupByYear)
	require.NoError(t, err)
	var keys []string
	for _, r := range years.Rows {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"2001", "2010", "2012", "2015", "2018"}, keys)
	assert.Equal(t, ds.Len(), years.TotalCount())

	decades, err := GroupBy(ds, models.GroupByDecade)
	require.NoError(t, err)
	require.Len(t, decades.Rows, 2)
	assert.Equal(t, "2000s", decades.Rows[0].Key)
	assert.Equal(t, 1, decades.Rows[0].MovieCount)
	assert.Equal(t, "2010s", decades.Rows[1].Key)
	assert.Equal(t, 4, decades.Rows[1].MovieCount)
	assert.Equal(t, 2250.0, decades.Rows[1].TotalRevenueM)
}

func TestGroupByPerformance(t *testing.T) {
	ds := loadFixture(t)
	table, err := GroupBy(ds, models.GroupByPerformance)
	require.NoError(t, err)

	require.Len(t, table.Rows, 4)
	assert.Equal(t, string(models.BucketLow), table.Rows[0].Key)
	assert.Equal(t, 2, table.Rows[0].MovieCount)
	assert.Equal(t, string(models.BucketBlockbuster), table.Rows[3].Key)
}

func TestGroupByUnknownKey(t *testing.T) {
	_, err := GroupBy(loadFixture(t), "studio")
	assert.Error(t, err)
}

func TestAggregationsAreDeterministic(t *testing.T) {
	ds := loadFixture(t)
	for _, key := range []models.GroupKey{models.GroupByGenre, models.GroupByYear, models.GroupByDecade, models.GroupByPerformance} {
		first, err := GroupBy(ds, key)
		require.NoError(t, err)
		second, err := GroupBy(ds, key)
		require.NoError(t, err)
		assert.Equal(t, first.Records(), second.Records(), key)
	}

	s1, err := SummaryStats(ds)
	require.NoError(t, err)
	s2, err := SummaryStats(ds)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}

func TestSummaryTableRecordsAreFlat(t *testing.T) {
	table, err := GroupBy(loadFixture(t), models.GroupByGenre)
	require.NoError(t, err)

	records := table.Records()
	require.Len(t, records, len(table.Rows)+1)
	for _, r := range records {
		assert.Len(t, r, len(models.SummaryColumns))
	}
	assert.Equal(t, []string{"Action", "2", "750", "1500"}, records[1][:4])
}

func TestSummaryStats(t *testing.T) {
	ds := loadFixture(t)
	st, err := SummaryStats(ds)
	require.NoError(t, err)

	assert.Equal(t, 5, st.TotalMovies)
	assert.Equal(t, 2.33e9, st.TotalWorldwide)
	assert.InDelta(t, 4.66e8, st.AvgWorldwide, 1)
	require.NotNil(t, st.TopGrossing)
	assert.Equal(t, "A", st.TopGrossing.Name)
	assert.Equal(t, 2, st.DomesticDominantCount)
	assert.Equal(t, 2, st.ForeignDominantCount)
	assert.Equal(t, 1, st.BalancedCount)
	assert.InDelta(t, 7.2, st.AvgRating, 1e-9)
	assert.Equal(t, 2001, st.YearMin)
	assert.Equal(t, 2018, st.YearMax)
	assert.Equal(t, 3, st.UniqueGenres)
	assert.InDelta(t, (33.3+90+50+0+100)/5.0, st.AvgDomesticPct, 1e-9)
}

func TestSummaryStatsNoRatings(t *testing.T) {
	ds := &models.Dataset{Movies: []*models.Movie{{Name: "x", Worldwide: 1, Year: 2000}}}
	st, err := SummaryStats(ds)
	require.NoError(t, err)
	assert.Equal(t, 0.0, st.AvgRating)
}

func TestSummaryStatsEmpty(t *testing.T) {
	st, err := SummaryStats(&models.Dataset{})
	assert.ErrorIs(t, err, models.ErrNoMatchingRecords)
	require.NotNil(t, st)
	assert.Equal(t, 0, st.TotalMovies)
}
