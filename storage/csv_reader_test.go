package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice-tracker/models"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCSVReaderNormalisesHeader(t *testing.T) {
	path := writeTemp(t, "movies.csv",
		"\uFEFF Release Group ,Year,Genres,Genres,,\n"+
			"Alpha,2010,Drama,Crime,,\n"+
			"\n"+
			" , , ,,,\n"+
			"Beta,2011,Comedy\n")

	table, err := NewCSVReader().Read(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Release Group", "Year", "Genres", "Genres.1"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Alpha", table.Rows[0].Cells[models.ColName])
	assert.Equal(t, "Crime", table.Rows[0].Cells["Genres.1"])
	assert.Equal(t, 1, table.Rows[1].Row)
	assert.Equal(t, "Comedy", table.Rows[1].Cells[models.ColGenres])
	_, ok := table.Rows[1].Cells["Genres.1"]
	assert.False(t, ok, "short rows leave trailing cells unset")
}

func TestCSVReaderNormalisesHeaderSuffixClash(t *testing.T) {
	tests := []struct {
		header string
		want   []string
	}{
		{"X,X,X.1", []string{"X", "X.2", "X.1"}},
		{"X,X.1,X,X", []string{"X", "X.1", "X.2", "X.3"}},
		{"X.1,X.1,X", []string{"X.1", "X.1.1", "X"}},
	}

	for _, tt := range tests {
		path := writeTemp(t, "movies.csv", tt.header+"\na,b,c,d\n")
		table, err := NewCSVReader().Read(path)
		require.NoError(t, err, tt.header)
		assert.Equal(t, tt.want, table.Columns, tt.header)

		cells := table.Rows[0].Cells
		assert.Len(t, cells, len(tt.want), tt.header)
		for i, col := range tt.want {
			assert.Equal(t, string(rune('a'+i)), cells[col], "%s/%s", tt.header, col)
		}
	}
}

func TestCSVReaderQuotedFields(t *testing.T) {
	path := writeTemp(t, "movies.csv",
		"Release Group,$Worldwide\n\"Big, Movie\",\"$1,000\"\n")

	table, err := NewCSVReader().Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Big, Movie", table.Rows[0].Cells[models.ColName])
	assert.Equal(t, "$1,000", table.Rows[0].Cells[models.ColWorldwide])
}

func TestTSVReader(t *testing.T) {
	path := writeTemp(t, "movies.tsv", "Release Group\tYear\nAlpha\t2010\n")

	table, err := NewTSVReader().Read(path)
	require.NoError(t, err)
	assert.Equal(t, "2010", table.Rows[0].Cells[models.ColYear])
}

func TestCSVReaderErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewCSVReader().Read(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, models.ErrFileNotFound)

	headerOnly := writeTemp(t, "header.csv", "Release Group,Year\n")
	_, err = NewCSVReader().Read(headerOnly)
	assert.ErrorIs(t, err, models.ErrEmptyDataset)

	blank := writeTemp(t, "blank.csv", "")
	_, err = NewCSVReader().Read(blank)
	assert.ErrorIs(t, err, models.ErrEmptyDataset)
}

func TestBuildTableEmptyHeader(t *testing.T) {
	_, err := buildTable("mem", [][]string{{"", " "}, {"a", "b"}})
	assert.ErrorIs(t, err, models.ErrEmptyDataset)
}
