package services

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"boxoffice-tracker/models"
	"boxoffice-tracker/utils"
)

var (
	// ratingRegexp captures the first decimal number in a free-text rating
	ratingRegexp = regexp.MustCompile(`(\d+\.?\d*)`)
	// currencyReplacer strips symbols that commonly decorate money columns
	currencyReplacer = strings.NewReplacer("$", "", ",", "", "%", "", " ", "", "\u00a0", "")
)

// nullTokens are cell values treated as missing.
var nullTokens = map[string]struct{}{
	"": {}, "nan": {}, "null": {}, "none": {}, "n/a": {}, "na": {}, "-": {},
}

// Cleaner turns a raw Table into a decorated Dataset.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean coerces every cell, drops rows without a worldwide figure or a
// year, and derives the analytical fields. The returned dataset keeps input
// row order. Derived columns present in the table are dropped from the
// schema and recomputed; rank columns are read back as stored.
func (c *Cleaner) Clean(t *models.Table) *models.Dataset {
	ds := &models.Dataset{
		Source:  t.Source,
		Columns: sourceColumns(t.Columns),
		Fields: models.FieldSet{
			Name:        t.HasColumn(models.ColName),
			Domestic:    t.HasColumn(models.ColDomestic),
			Foreign:     t.HasColumn(models.ColForeign),
			DomesticPct: t.HasColumn(models.ColDomesticPct),
			ForeignPct:  t.HasColumn(models.ColForeignPct),
			Genres:      t.HasColumn(models.ColGenres),
			Rating:      t.HasColumn(models.ColRating),
			VoteCount:   t.HasColumn(models.ColVoteCount),
			Language:    t.HasColumn(models.ColLanguage),
		},
		Movies: make([]*models.Movie, 0, len(t.Rows)),
	}

	// Ranks exported with a filtered view refer to the table it came from,
	// so they are kept instead of being recomputed over the subset.
	carried := t.HasColumn(models.ColRevenueRank) &&
		t.HasColumn(models.ColDomesticRank) &&
		t.HasColumn(models.ColForeignRank)

	for _, r := range t.Rows {
		m, ok := c.cleanRow(r)
		if !ok {
			continue
		}
		if carried {
			m.RevenueRank = parseNumber(r.Cells[models.ColRevenueRank])
			m.DomesticRank = parseNumber(r.Cells[models.ColDomesticRank])
			m.ForeignRank = parseNumber(r.Cells[models.ColForeignRank])
		}
		ds.Movies = append(ds.Movies, m)
	}

	if !carried && len(ds.Movies) > 1 {
		assignRanks(ds.Movies)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d movies (dropped %d)",
		len(t.Rows), len(ds.Movies), len(t.Rows)-len(ds.Movies))
	return ds
}

func (c *Cleaner) cleanRow(r *models.RawMovie) (*models.Movie, bool) {
	worldwide := parseNumber(r.Cells[models.ColWorldwide])
	year := parseNumber(r.Cells[models.ColYear])
	if worldwide == nil || year == nil {
		c.logger.Debug("[cleaner] Row %d dropped: missing worldwide revenue or year", r.Row)
		return nil, false
	}
	if *worldwide < 0 {
		c.logger.Warn("[cleaner] Row %d dropped: negative worldwide revenue %.0f", r.Row, *worldwide)
		return nil, false
	}

	source := make(map[string]string, len(r.Cells))
	for k, v := range r.Cells {
		source[k] = v
	}

	m := &models.Movie{
		Row:         r.Row,
		Name:        strings.TrimSpace(r.Cells[models.ColName]),
		Year:        int(math.Floor(*year)),
		Worldwide:   *worldwide,
		Domestic:    parseNumber(r.Cells[models.ColDomestic]),
		Foreign:     parseNumber(r.Cells[models.ColForeign]),
		DomesticPct: parseNumber(r.Cells[models.ColDomesticPct]),
		ForeignPct:  parseNumber(r.Cells[models.ColForeignPct]),
		Genres:      strings.TrimSpace(r.Cells[models.ColGenres]),
		Rating:      strings.TrimSpace(r.Cells[models.ColRating]),
		VoteCount:   parseNumber(r.Cells[models.ColVoteCount]),
		Language:    strings.TrimSpace(r.Cells[models.ColLanguage]),
		Source:      source,
	}

	derive(m)
	return m, true
}

// derive fills every derived field from the parsed source figures.
func derive(m *models.Movie) {
	m.WorldwideMillions = m.Worldwide / 1_000_000
	m.DomesticMillions = millions(m.Domestic)
	m.ForeignMillions = millions(m.Foreign)
	m.Decade = int(math.Floor(float64(m.Year)/10)) * 10
	m.PrimaryGenre = primaryGenre(m.Genres)
	m.RatingScore = parseRating(m.Rating)

	// A missing share falls back to the revenue split when it can be derived.
	if m.DomesticPct == nil {
		m.DomesticPct = share(m.Domestic, m.Worldwide)
	}
	if m.ForeignPct == nil {
		m.ForeignPct = share(m.Foreign, m.Worldwide)
	}

	if m.DomesticPct != nil {
		m.DomesticDominant = *m.DomesticPct > 50
		m.Balanced = math.Abs(*m.DomesticPct-50) <= 10
	}
	if m.ForeignPct != nil {
		m.ForeignDominant = *m.ForeignPct > 50
	}

	m.Performance = models.BucketFor(m.WorldwideMillions)

	if m.Domestic != nil && m.Foreign != nil {
		denom := *m.Foreign
		if denom == 0 {
			denom = 1
		}
		ratio := *m.Domestic / denom
		m.DomesticForeignRatio = &ratio
	}
}

// parseNumber coerces a cell to a float, returning nil for anything that
// does not parse. Currency symbols, thousands separators and percent signs
// are ignored.
func parseNumber(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if _, null := nullTokens[strings.ToLower(s)]; null {
		return nil
	}
	s = currencyReplacer.Replace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// parseRating extracts the first decimal number from a free-text rating.
func parseRating(raw string) *float64 {
	match := ratingRegexp.FindString(raw)
	if match == "" {
		return nil
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}
	return &f
}

func primaryGenre(genres string) string {
	first, _, _ := strings.Cut(genres, ",")
	return strings.TrimSpace(first)
}

func millions(v *float64) *float64 {
	if v == nil {
		return nil
	}
	m := *v / 1_000_000
	return &m
}

func share(part *float64, worldwide float64) *float64 {
	if part == nil || worldwide <= 0 {
		return nil
	}
	pct := *part / worldwide * 100
	return &pct
}

func sourceColumns(columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if !models.IsDerivedColumn(c) {
			out = append(out, c)
		}
	}
	return out
}

// assignRanks sets descending ranks for each revenue figure. Ties share the
// average of the positions they span; missing figures stay unranked.
func assignRanks(movies []*models.Movie) {
	worldwide := make([]*float64, len(movies))
	domestic := make([]*float64, len(movies))
	foreign := make([]*float64, len(movies))
	for i, m := range movies {
		w := m.Worldwide
		worldwide[i] = &w
		domestic[i] = m.Domestic
		foreign[i] = m.Foreign
	}

	wr, dr, fr := rankDescending(worldwide), rankDescending(domestic), rankDescending(foreign)
	for i, m := range movies {
		m.RevenueRank, m.DomesticRank, m.ForeignRank = wr[i], dr[i], fr[i]
	}
}

func rankDescending(values []*float64) []*float64 {
	idx := make([]int, 0, len(values))
	for i, v := range values {
		if v != nil {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return *values[idx[a]] > *values[idx[b]]
	})

	ranks := make([]*float64, len(values))
	for start := 0; start < len(idx); {
		end := start + 1
		for end < len(idx) && *values[idx[end]] == *values[idx[start]] {
			end++
		}
		// positions start+1 .. end share their mean
		avg := float64(start+1+end) / 2
		for _, i := range idx[start:end] {
			r := avg
			ranks[i] = &r
		}
		start = end
	}
	return ranks
}
