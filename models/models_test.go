package models

import (
	"math"
	"testing"
)

func TestBucketFor(t *testing.T) {
	tests := []struct {
		millions float64
		want     PerformanceBucket
	}{
		{0, BucketNone},
		{-5, BucketNone},
		{math.NaN(), BucketNone},
		{0.01, BucketLow},
		{100, BucketLow},
		{100.01, BucketMedium},
		{500, BucketMedium},
		{1000, BucketHigh},
		{1000.5, BucketBlockbuster},
	}

	for _, tt := range tests {
		if got := BucketFor(tt.millions); got != tt.want {
			t.Errorf("BucketFor(%v) = %q, want %q", tt.millions, got, tt.want)
		}
	}
}

func TestBucketIndex(t *testing.T) {
	for i, b := range PerformanceBuckets {
		if b.Index() != i {
			t.Errorf("%q.Index() = %d, want %d", b, b.Index(), i)
		}
	}
	if BucketNone.Index() != -1 {
		t.Errorf("BucketNone.Index() = %d, want -1", BucketNone.Index())
	}
}

func TestParseRegionalFocus(t *testing.T) {
	tests := map[string]RegionalFocus{
		"":                          RegionAll,
		"All":                       RegionAll,
		"domestic":                  RegionDomesticDominant,
		"Domestic Dominance (>50%)": RegionDomesticDominant,
		"Foreign Dominance (>50%)":  RegionForeignDominant,
		"Balanced Performance":      RegionBalanced,
		"Sideways":                  "sideways",
	}
	for in, want := range tests {
		if got := ParseRegionalFocus(in); got != want {
			t.Errorf("ParseRegionalFocus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMetricValue(t *testing.T) {
	dom := 40.0
	m := &Movie{Worldwide: 100, Domestic: &dom}

	if v, ok := MetricWorldwide.Value(m); !ok || v != 100 {
		t.Errorf("worldwide = %v, %v", v, ok)
	}
	if v, ok := MetricDomestic.Value(m); !ok || v != 40 {
		t.Errorf("domestic = %v, %v", v, ok)
	}
	if _, ok := MetricForeign.Value(m); ok {
		t.Error("foreign should be missing")
	}
	if ParseMetric("bogus") != MetricWorldwide {
		t.Error("unknown metric should fall back to worldwide")
	}
}

func TestExportRecord(t *testing.T) {
	rank := 1.5
	m := &Movie{
		WorldwideMillions: 12.5,
		Decade:            1990,
		PrimaryGenre:      "Drama",
		DomesticDominant:  true,
		Performance:       BucketLow,
		RevenueRank:       &rank,
		Source:            map[string]string{"Year": "1994", "Release Group": "X"},
	}

	got := m.ExportRecord([]string{"Release Group", "Year", "Missing"})
	if len(got) != 3+len(DerivedColumns) {
		t.Fatalf("len = %d, want %d", len(got), 3+len(DerivedColumns))
	}
	want := map[int]string{
		0: "X", 1: "1994", 2: "",
		3: "12.5", 4: "", 6: "1990", 7: "Drama",
		9: "True", 10: "False", 12: string(BucketLow), 14: "1.5",
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("cell %d (%s) = %q, want %q", i, exportName(i), got[i], w)
		}
	}
}

func exportName(i int) string {
	if i < 3 {
		return "source"
	}
	return DerivedColumns[i-3]
}

func TestLoadErrorUnwrap(t *testing.T) {
	err := &LoadError{Path: "x.csv", Err: ErrMissingColumn}
	if err.Unwrap() != ErrMissingColumn {
		t.Error("Unwrap should return the wrapped error")
	}
	if err.Error() == "" {
		t.Error("empty message")
	}
}
