package models

import "strconv"

// Rank columns describe the base table a dataset was first loaded from. A
// table that already carries all three keeps the stored ranks on reload.
const (
	ColRevenueRank  = "Revenue_Rank"
	ColDomesticRank = "Domestic_Rank"
	ColForeignRank  = "Foreign_Rank"
)

// DerivedColumns are appended after the source columns on export. The
// cleaner recognizes them on reload and recomputes them instead of keeping
// the stale cells, except for the rank columns.
var DerivedColumns = []string{
	"Worldwide_Millions",
	"Domestic_Millions",
	"Foreign_Millions",
	"Decade",
	"Primary_Genre",
	"Rating_Score",
	"Domestic_Dominance",
	"Foreign_Dominance",
	"Regional_Balance",
	"Performance_Category",
	"Domestic_Foreign_Ratio",
	ColRevenueRank,
	ColDomesticRank,
	ColForeignRank,
}

var derivedSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(DerivedColumns))
	for _, c := range DerivedColumns {
		m[c] = struct{}{}
	}
	return m
}()

// IsDerivedColumn reports whether name is one of DerivedColumns.
func IsDerivedColumn(name string) bool {
	_, ok := derivedSet[name]
	return ok
}

// ExportHeader returns the source columns followed by the derived columns.
func (d *Dataset) ExportHeader() []string {
	header := make([]string, 0, len(d.Columns)+len(DerivedColumns))
	header = append(header, d.Columns...)
	return append(header, DerivedColumns...)
}

// ExportRecords returns every movie as a row aligned with ExportHeader.
func (d *Dataset) ExportRecords() [][]string {
	rows := make([][]string, 0, len(d.Movies))
	for _, m := range d.Movies {
		rows = append(rows, m.ExportRecord(d.Columns))
	}
	return rows
}

// ExportRecord renders the source cells verbatim, then the derived fields.
func (m *Movie) ExportRecord(columns []string) []string {
	row := make([]string, 0, len(columns)+len(DerivedColumns))
	for _, c := range columns {
		row = append(row, m.Source[c])
	}
	return append(row,
		FormatFloat(m.WorldwideMillions),
		FormatOptional(m.DomesticMillions),
		FormatOptional(m.ForeignMillions),
		strconv.Itoa(m.Decade),
		m.PrimaryGenre,
		FormatOptional(m.RatingScore),
		formatBool(m.DomesticDominant),
		formatBool(m.ForeignDominant),
		formatBool(m.Balanced),
		string(m.Performance),
		FormatOptional(m.DomesticForeignRatio),
		FormatOptional(m.RevenueRank),
		FormatOptional(m.DomesticRank),
		FormatOptional(m.ForeignRank),
	)
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
