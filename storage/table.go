package storage

import (
	"fmt"
	"strings"

	"boxoffice-tracker/models"
)

const utf8BOM = "\uFEFF"

// buildTable turns header-first string records into a Table. Header names are
// trimmed and duplicates are suffixed ".1", ".2", ... skipping any name the
// header already uses, so every cell stays addressable. A header without
// data rows is an empty dataset.
func buildTable(source string, records [][]string) (*models.Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s has no header row", models.ErrEmptyDataset, source)
	}

	columns := normaliseHeader(records[0])
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s has an empty header", models.ErrEmptyDataset, source)
	}

	t := &models.Table{Source: source, Columns: columns}
	for _, rec := range records[1:] {
		if blankRecord(rec) {
			continue
		}
		cells := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(rec) {
				cells[col] = rec[i]
			}
		}
		t.Rows = append(t.Rows, &models.RawMovie{Row: len(t.Rows), Cells: cells})
	}

	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no data rows", models.ErrEmptyDataset, source)
	}
	return t, nil
}

func normaliseHeader(raw []string) []string {
	names := make([]string, len(raw))
	for i, name := range raw {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		names[i] = strings.TrimSpace(name)
	}
	// Trailing unnamed columns come from trailing delimiters.
	for len(names) > 0 && names[len(names)-1] == "" {
		names = names[:len(names)-1]
	}

	// Original names are reserved up front so a suffixed duplicate never
	// takes the name of a real column further right.
	taken := make(map[string]bool, len(names))
	for _, name := range names {
		taken[name] = true
	}
	emitted := make(map[string]bool, len(names))
	suffix := make(map[string]int, len(names))
	columns := make([]string, 0, len(names))
	for _, name := range names {
		if emitted[name] {
			base := name
			for {
				suffix[base]++
				name = fmt.Sprintf("%s.%d", base, suffix[base])
				if !taken[name] {
					break
				}
			}
			taken[name] = true
		}
		emitted[name] = true
		columns = append(columns, name)
	}
	return columns
}

func blankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
