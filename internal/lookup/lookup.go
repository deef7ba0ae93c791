// Package lookup answers queries from the in-memory dataset.
package lookup

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"hosllm/internal/dataset"
)

// MostImportantEventForYear picks, among records whose date mentions year, the
// one with the longest summary. Summary length stands in for significance; ties
// go to the earliest record.
func MostImportantEventForYear(records []dataset.Record, year int) (dataset.Record, bool) {
	needle := strconv.Itoa(year)
	var (
		best    dataset.Record
		bestLen = -1
	)
	for _, r := range records {
		if !strings.Contains(r.Date, needle) {
			continue
		}
		if n := utf8.RuneCountInString(r.Summary); n > bestLen {
			best, bestLen = r, n
		}
	}
	return best, bestLen >= 0
}

// FindByName returns the first record whose event name contains sub, ignoring case.
func FindByName(records []dataset.Record, sub string) (dataset.Record, bool) {
	needle := strings.ToLower(sub)
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Event), needle) {
			return r, true
		}
	}
	return dataset.Record{}, false
}

// FindByDateRange returns records whose date is an integer year within
// [start, end], in dataset order. Dates that are not plain integers are skipped.
func FindByDateRange(records []dataset.Record, start, end int) []dataset.Record {
	var out []dataset.Record
	for _, r := range records {
		y, err := strconv.Atoi(strings.TrimSpace(r.Date))
		if err != nil {
			continue
		}
		if start <= y && y <= end {
			out = append(out, r)
		}
	}
	return out
}

func FormatRecord(r dataset.Record) string {
	return fmt.Sprintf("%s (%s): %s", r.Event, r.Date, r.Summary)
}

// FormatRange renders the date range result, one record per line.
func FormatRange(records []dataset.Record, start, end int) string {
	if len(records) == 0 {
		return fmt.Sprintf("No events found between %d and %d.", start, end)
	}
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, FormatRecord(r))
	}
	return strings.Join(lines, "\n")
}
