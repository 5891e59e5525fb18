package models

import "strings"

// AllOption is the widget value meaning "do not filter on this dimension".
const AllOption = "All"

// RegionalFocus selects movies by their regional revenue split.
type RegionalFocus string

const (
	RegionAll              RegionalFocus = "all"
	RegionDomesticDominant RegionalFocus = "domestic"
	RegionForeignDominant  RegionalFocus = "foreign"
	RegionBalanced         RegionalFocus = "balanced"
)

// ParseRegionalFocus accepts the short names as well as the dashboard labels
// ("Domestic Dominance (>50%)", "Foreign Dominance (>50%)", "Balanced Performance").
// Unrecognized values are returned unchanged so validation can reject them.
func ParseRegionalFocus(s string) RegionalFocus {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "" || v == "all":
		return RegionAll
	case strings.HasPrefix(v, "domestic"):
		return RegionDomesticDominant
	case strings.HasPrefix(v, "foreign"):
		return RegionForeignDominant
	case strings.HasPrefix(v, "balanced"):
		return RegionBalanced
	}
	return RegionalFocus(v)
}

// IntRange is an inclusive integer interval.
type IntRange struct {
	Lo int `validate:"gte=0"`
	Hi int `validate:"gtefield=Lo"`
}

// FloatRange is an inclusive float interval.
type FloatRange struct {
	Lo float64
	Hi float64 `validate:"gtefield=Lo"`
}

// FilterCriteria holds every filter dimension. A nil range or an "All"/empty
// string leaves that dimension unfiltered.
type FilterCriteria struct {
	Years    *IntRange
	Genre    string
	Language string
	Region   RegionalFocus `validate:"omitempty,oneof=all domestic foreign balanced"`
	// Revenue bounds worldwide revenue in millions.
	Revenue *FloatRange
}

// IsAll reports whether a categorical filter value disables filtering.
func IsAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, AllOption)
}

// Metric is a revenue figure used for ranking.
type Metric string

const (
	MetricWorldwide Metric = "worldwide"
	MetricDomestic  Metric = "domestic"
	MetricForeign   Metric = "foreign"
)

// ParseMetric maps a name to a Metric, falling back to worldwide.
func ParseMetric(s string) Metric {
	switch Metric(strings.ToLower(strings.TrimSpace(s))) {
	case MetricDomestic:
		return MetricDomestic
	case MetricForeign:
		return MetricForeign
	}
	return MetricWorldwide
}

// Value returns the raw revenue for m, or false when the figure is missing.
func (m Metric) Value(mv *Movie) (float64, bool) {
	switch m {
	case MetricDomestic:
		if mv.Domestic == nil {
			return 0, false
		}
		return *mv.Domestic, true
	case MetricForeign:
		if mv.Foreign == nil {
			return 0, false
		}
		return *mv.Foreign, true
	}
	return mv.Worldwide, true
}
