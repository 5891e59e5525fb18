package models

// ChartSeries is one named numeric series aligned with ChartTable.Labels.
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// ChartTable is the flat (x, y, series) shape consumed by a charting layer.
// Sizes, when set, holds a per-label marker size encoding.
type ChartTable struct {
	Title  string        `json:"title"`
	XLabel string        `json:"xLabel,omitempty"`
	YLabel string        `json:"yLabel,omitempty"`
	Labels []string      `json:"labels"`
	Series []ChartSeries `json:"series"`
	Sizes  []float64     `json:"sizes,omitempty"`
}

// HierarchyNode is one node of a parent/child chart such as a sunburst.
// Root nodes have an empty Parent.
type HierarchyNode struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Parent string  `json:"parent"`
	Value  float64 `json:"value"`
}
