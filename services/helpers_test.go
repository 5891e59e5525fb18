package services

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"boxoffice-tracker/models"
	"boxoffice-tracker/storage"
	"boxoffice-tracker/utils"
)

// fixtureCSV has five valid movies (A, B, C, D, G) and two rows that must be
// dropped: E has no year and F has an unparseable worldwide figure. Header
// names carry stray whitespace on purpose.
const fixtureCSV = ` Release Group ,Year , $Worldwide,$Domestic,Domestic %,$Foreign,Foreign %,Genres,Rating,Vote_Count,Original_Language
A,2010,1200000000,400000000,33.3,800000000,66.7,"Action, Adventure",7.5/10,1000,en
B,2015,50000000,45000000,90,5000000,10,Drama,R 6.1,200,en
C,2012,"$300,000,000",150000000,50,150000000,50,Action,PG 8,500,fr
D,2018,700000000,0,0,700000000,100,"Animation, Family",,50,ja
G,2001,80000000,80000000,100,0,0,,PG,,en
E,,100000000,50000000,50,50000000,50,Drama,,,en
F,2019,n/a,1,1,1,1,Drama,,,en
`

func newTestLogger() *utils.Logger {
	return utils.NewLoggerWithOutput(io.Discard, utils.LevelError)
}

func newTestLoader() *Loader {
	return NewLoader(newTestLogger(), storage.NewCSVReader(), map[string]TableReader{
		".xlsx": storage.NewXLSXReader(),
	})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func loadFixture(t *testing.T) *models.Dataset {
	t.Helper()
	ds, err := newTestLoader().Load(writeFile(t, "movies.csv", fixtureCSV))
	require.NoError(t, err)
	return ds
}

func names(ds *models.Dataset) []string {
	out := make([]string, 0, ds.Len())
	for _, m := range ds.Movies {
		out = append(out, m.Name)
	}
	return out
}

func byName(ds *models.Dataset) map[string]*models.Movie {
	out := make(map[string]*models.Movie, ds.Len())
	for _, m := range ds.Movies {
		out[m.Name] = m
	}
	return out
}

func f64(v float64) *float64 { return &v }
