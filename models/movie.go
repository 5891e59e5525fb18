package models

// Source column names as they appear in the box office table header.
const (
	ColName        = "Release Group"
	ColYear        = "Year"
	ColWorldwide   = "$Worldwide"
	ColDomestic    = "$Domestic"
	ColForeign     = "$Foreign"
	ColDomesticPct = "Domestic %"
	ColForeignPct  = "Foreign %"
	ColGenres      = "Genres"
	ColRating      = "Rating"
	ColVoteCount   = "Vote_Count"
	ColLanguage    = "Original_Language"
)

// RawMovie is one unprocessed row of the source table, keyed by trimmed
// column name. Row is the zero-based data row index in the source.
type RawMovie struct {
	Row   int
	Cells map[string]string
}

// Table is the raw tabular input as read from a file or database.
type Table struct {
	Source  string
	Columns []string
	Rows    []*RawMovie
}

// HasColumn reports whether the table header contains name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Movie is a cleaned box office record decorated with its derived fields.
// Optional source figures are nil when the cell or the column was missing.
// A Movie is never modified after the cleaner returns it.
type Movie struct {
	Row int

	Name        string
	Year        int
	Worldwide   float64
	Domestic    *float64
	Foreign     *float64
	DomesticPct *float64
	ForeignPct  *float64
	Genres      string
	Rating      string
	VoteCount   *float64
	Language    string

	WorldwideMillions    float64
	DomesticMillions     *float64
	ForeignMillions      *float64
	Decade               int
	PrimaryGenre         string
	RatingScore          *float64
	DomesticDominant     bool
	ForeignDominant      bool
	Balanced             bool
	Performance          PerformanceBucket
	DomesticForeignRatio *float64

	RevenueRank  *float64
	DomesticRank *float64
	ForeignRank  *float64

	// Source holds the untouched cells of the input row for verbatim export.
	Source map[string]string
}

// FieldSet records which optional source columns were present at load time.
type FieldSet struct {
	Name        bool
	Domestic    bool
	Foreign     bool
	DomesticPct bool
	ForeignPct  bool
	Genres      bool
	Rating      bool
	VoteCount   bool
	Language    bool
}

// Dataset is an immutable, ordered collection of movies. Filtering and
// ranking produce new Datasets that share the underlying *Movie values.
type Dataset struct {
	Source  string
	Columns []string
	Fields  FieldSet
	Movies  []*Movie
}

// Len returns the number of movies in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Movies)
}

// Empty reports whether the dataset holds no movies.
func (d *Dataset) Empty() bool { return d.Len() == 0 }

// View returns a new dataset with the same schema holding movies.
func (d *Dataset) View(movies []*Movie) *Dataset {
	return &Dataset{
		Source:  d.Source,
		Columns: d.Columns,
		Fields:  d.Fields,
		Movies:  movies,
	}
}
