package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"boxoffice-tracker/models"
)

var validate = validator.New()

// ValidateCriteria checks range ordering and the regional focus value.
func ValidateCriteria(c models.FilterCriteria) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidCriteria, err)
	}
	if c.Years != nil {
		if err := validate.Struct(c.Years); err != nil {
			return fmt.Errorf("%w: year range: %v", models.ErrInvalidCriteria, err)
		}
	}
	if c.Revenue != nil {
		if err := validate.Struct(c.Revenue); err != nil {
			return fmt.Errorf("%w: revenue range: %v", models.ErrInvalidCriteria, err)
		}
	}
	return nil
}

type predicate func(*models.Movie) bool

// Filter returns the movies of ds matching every criterion, in their
// original order. Criteria are independent predicates combined with AND, so
// the order in which dimensions are applied never changes the result. An
// empty result is not an error. Genre and language criteria are ignored when
// the dataset has no such column.
func Filter(ds *models.Dataset, c models.FilterCriteria) (*models.Dataset, error) {
	if err := ValidateCriteria(c); err != nil {
		return nil, err
	}

	preds := predicates(ds, c)
	out := make([]*models.Movie, 0, ds.Len())
	for _, m := range ds.Movies {
		if matchAll(m, preds) {
			out = append(out, m)
		}
	}
	return ds.View(out), nil
}

func predicates(ds *models.Dataset, c models.FilterCriteria) []predicate {
	var preds []predicate

	if r := c.Years; r != nil {
		preds = append(preds, func(m *models.Movie) bool {
			return m.Year >= r.Lo && m.Year <= r.Hi
		})
	}
	if g := c.Genre; !models.IsAll(g) && ds.Fields.Genres {
		preds = append(preds, func(m *models.Movie) bool { return m.PrimaryGenre == g })
	}
	if lang := c.Language; !models.IsAll(lang) && ds.Fields.Language {
		preds = append(preds, func(m *models.Movie) bool { return m.Language == lang })
	}
	switch c.Region {
	case models.RegionDomesticDominant:
		preds = append(preds, func(m *models.Movie) bool { return m.DomesticDominant })
	case models.RegionForeignDominant:
		preds = append(preds, func(m *models.Movie) bool { return m.ForeignDominant })
	case models.RegionBalanced:
		preds = append(preds, func(m *models.Movie) bool { return m.Balanced })
	}
	if r := c.Revenue; r != nil {
		preds = append(preds, func(m *models.Movie) bool {
			return m.WorldwideMillions >= r.Lo && m.WorldwideMillions <= r.Hi
		})
	}
	return preds
}

func matchAll(m *models.Movie, preds []predicate) bool {
	for _, p := range preds {
		if !p(m) {
			return false
		}
	}
	return true
}

// RequireMatches returns ErrNoMatchingRecords for an empty dataset.
func RequireMatches(ds *models.Dataset) error {
	if ds.Empty() {
		return models.ErrNoMatchingRecords
	}
	return nil
}

// IsNoMatch reports whether err is the empty-result condition.
func IsNoMatch(err error) bool {
	return errors.Is(err, models.ErrNoMatchingRecords)
}

// FilterOptions lists the values a filter widget can offer for a dataset.
type FilterOptions struct {
	Genres     []string
	Languages  []string
	YearMin    int
	YearMax    int
	RevenueMin float64
	RevenueMax float64
}

// Options computes widget choices: sorted distinct primary genres and
// languages, and the year and worldwide-millions spans.
func Options(ds *models.Dataset) FilterOptions {
	var opts FilterOptions
	if ds.Empty() {
		return opts
	}

	genres := make(map[string]struct{})
	langs := make(map[string]struct{})
	first := ds.Movies[0]
	opts.YearMin, opts.YearMax = first.Year, first.Year
	opts.RevenueMin, opts.RevenueMax = first.WorldwideMillions, first.WorldwideMillions

	for _, m := range ds.Movies {
		if m.PrimaryGenre != "" {
			genres[m.PrimaryGenre] = struct{}{}
		}
		if m.Language != "" {
			langs[m.Language] = struct{}{}
		}
		opts.YearMin = min(opts.YearMin, m.Year)
		opts.YearMax = max(opts.YearMax, m.Year)
		opts.RevenueMin = min(opts.RevenueMin, m.WorldwideMillions)
		opts.RevenueMax = max(opts.RevenueMax, m.WorldwideMillions)
	}

	opts.Genres = sortedKeys(genres)
	opts.Languages = sortedKeys(langs)
	return opts
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
