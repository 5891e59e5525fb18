package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"

	"boxoffice-tracker/models"
	"boxoffice-tracker/services"
)

var funcs = template.FuncMap{
	"millions": func(raw float64) string { return fmt.Sprintf("%.1f", raw/1_000_000) },
	"fixed2":   func(f float64) string { return fmt.Sprintf("%.2f", f) },
	"opt": func(f *float64) string {
		if f == nil {
			return "-"
		}
		return fmt.Sprintf("%.1f", *f)
	},
	"inc": func(i int) int { return i + 1 },
}

var reportTmpl = template.Must(template.New("report").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Inter, Arial, sans-serif; background: #1a1a1a; color: #fff; margin: 32px; }
h1 { color: #4facfe; } h2 { color: #00f2fe; border-bottom: 1px solid #2d2d2d; padding-bottom: 4px; }
.cards { display: flex; gap: 16px; flex-wrap: wrap; }
.card { background: #2d2d2d; border-radius: 8px; padding: 12px 18px; min-width: 160px; }
.card b { display: block; font-size: 1.4em; color: #43e97b; }
table { border-collapse: collapse; width: 100%; margin-bottom: 24px; }
th, td { padding: 4px 8px; text-align: right; border-bottom: 1px solid #2d2d2d; }
th:first-child, td:first-child { text-align: left; }
.muted { color: #b0b0b0; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="muted">Source: {{.Source}} · generated {{.Generated}}</p>
{{with .Report.Stats}}{{if .TotalMovies}}
<div class="cards">
  <div class="card">Movies<b>{{.TotalMovies}}</b></div>
  <div class="card">Total worldwide ($M)<b>{{millions .TotalWorldwide}}</b></div>
  <div class="card">Average worldwide ($M)<b>{{millions .AvgWorldwide}}</b></div>
  <div class="card">Avg domestic %<b>{{fixed2 .AvgDomesticPct}}</b></div>
  <div class="card">Avg foreign %<b>{{fixed2 .AvgForeignPct}}</b></div>
  <div class="card">Avg rating<b>{{fixed2 .AvgRating}}</b></div>
  <div class="card">Domestic / Foreign / Balanced<b>{{.DomesticDominantCount}} / {{.ForeignDominantCount}} / {{.BalancedCount}}</b></div>
</div>
{{with .TopGrossing}}<p>Top grossing: <strong>{{.Name}}</strong> ({{millions .Worldwide}} $M)</p>{{end}}
{{else}}<p>No movies match the current filters.</p>{{end}}{{end}}

{{if .Report.TopPerformers}}
<h2>Top {{len .Report.TopPerformers}} by {{.Report.TopMetric}} revenue</h2>
<table>
<tr><th>#</th><th>Movie</th><th>Year</th><th>Worldwide ($M)</th><th>Domestic ($M)</th><th>Foreign ($M)</th><th>Tier</th></tr>
{{range $i, $m := .Report.TopPerformers}}<tr><td>{{inc $i}}</td><td>{{$m.Name}}</td><td>{{$m.Year}}</td><td>{{fixed2 $m.WorldwideMillions}}</td><td>{{opt $m.DomesticMillions}}</td><td>{{opt $m.ForeignMillions}}</td><td>{{$m.Performance}}</td></tr>
{{end}}</table>
{{end}}

{{range .Tables}}{{if .Table}}{{if .Table.Rows}}
<h2>{{.Title}}</h2>
<table>
<tr><th>{{.Heading}}</th><th>Movies</th><th>Avg ($M)</th><th>Total ($M)</th><th>Avg domestic %</th><th>Avg foreign %</th><th>Avg rating</th></tr>
{{range .Table.Rows}}<tr><td>{{.Key}}</td><td>{{.MovieCount}}</td><td>{{fixed2 .AvgRevenueM}}</td><td>{{fixed2 .TotalRevenueM}}</td><td>{{opt .AvgDomesticPct}}</td><td>{{opt .AvgForeignPct}}</td><td>{{opt .AvgRating}}</td></tr>
{{end}}</table>
{{end}}{{end}}{{end}}
<script type="application/json" id="chart-data">{{.Charts}}</script>
</body>
</html>
`))

type tableSection struct {
	Title   string
	Heading string
	Table   *models.SummaryTable
}

type chartData struct {
	GenreRegional *models.ChartTable     `json:"genreRegional,omitempty"`
	YearlyTrend   *models.ChartTable     `json:"yearlyTrend,omitempty"`
	DecadeTrend   *models.ChartTable     `json:"decadeTrend,omitempty"`
	TopPerformers *models.ChartTable     `json:"topPerformers"`
	Performance   *models.ChartTable     `json:"performance"`
	Sunburst      []models.HierarchyNode `json:"sunburst"`
}

type reportView struct {
	Title     string
	Source    string
	Generated string
	Report    *models.InsightReport
	Tables    []tableSection
	Charts    chartData
}

// WriteHTML renders a static dashboard snapshot of the report built from ds.
// The chart-ready tables are embedded as JSON for a client-side chart layer.
func WriteHTML(w io.Writer, title string, ds *models.Dataset, r *models.InsightReport) error {
	view := reportView{
		Title:     title,
		Source:    ds.Source,
		Generated: time.Now().Format("2006-01-02 15:04"),
		Report:    r,
		Tables: []tableSection{
			{"Genre Analysis", "Genre", r.Genres},
			{"Decade-wise Performance", "Decade", r.Decades},
			{"Yearly Trends", "Year", r.Years},
			{"Performance Tiers", "Tier", r.Buckets},
		},
		Charts: chartData{
			TopPerformers: services.TopPerformersChart(r.TopPerformers),
			Performance:   services.PerformanceShareChart(ds),
			Sunburst:      services.GenreRatingHierarchy(ds),
		},
	}
	if r.Genres != nil {
		view.Charts.GenreRegional = services.GenreRegionalChart(r.Genres)
	}
	if r.Years != nil {
		view.Charts.YearlyTrend = services.TrendChart(r.Years)
	}
	if r.Decades != nil {
		view.Charts.DecadeTrend = services.TrendChart(r.Decades)
	}
	if err := reportTmpl.Execute(w, view); err != nil {
		return fmt.Errorf("render: execute template: %w", err)
	}
	return nil
}

// HTML is WriteHTML into a byte slice.
func HTML(title string, ds *models.Dataset, r *models.InsightReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, title, ds, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
