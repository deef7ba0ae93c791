package analytics

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"hosllm/internal/storage"
)

// DailyStats summarises one day of console exchanges.
type DailyStats struct {
	Date          string         `json:"date"`
	TotalQueries  int            `json:"total_queries"`
	ByIntent      map[string]int `json:"by_intent"`
	BySource      map[string]int `json:"by_source"`
	WikipediaHits int            `json:"wikipedia_hits"`
	TopQueries    []QueryCount   `json:"top_queries"`
}

type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

const topQueries = 5

// AnalyzeDailyLogs counts the events that fall on targetDate's calendar day.
func AnalyzeDailyLogs(events []storage.Event, targetDate time.Time) *DailyStats {
	startOfDay, endOfDay := storage.DayBounds(targetDate)

	stats := &DailyStats{
		Date:     startOfDay.Format("2006-01-02"),
		ByIntent: make(map[string]int),
		BySource: make(map[string]int),
	}

	queries := make(map[string]int)
	for _, event := range events {
		if event.Timestamp.Before(startOfDay) || !event.Timestamp.Before(endOfDay) {
			continue
		}
		if strings.TrimSpace(event.Query) == "" {
			continue
		}
		stats.TotalQueries++
		stats.ByIntent[event.Intent]++
		stats.BySource[event.Source]++
		if event.Source == storage.SourceWikipedia {
			stats.WikipediaHits++
		}
		queries[strings.ToLower(strings.TrimSpace(event.Query))]++
	}

	for q, n := range queries {
		stats.TopQueries = append(stats.TopQueries, QueryCount{Query: q, Count: n})
	}
	sort.Slice(stats.TopQueries, func(i, j int) bool {
		a, b := stats.TopQueries[i], stats.TopQueries[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Query < b.Query
	})
	if len(stats.TopQueries) > topQueries {
		stats.TopQueries = stats.TopQueries[:topQueries]
	}
	return stats
}

// GenerateReportSummary renders the stats for the console.
func (ds *DailyStats) GenerateReportSummary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session statistics for %s:\n", ds.Date)
	fmt.Fprintf(&b, "- Total queries: %d\n", ds.TotalQueries)
	fmt.Fprintf(&b, "- Answered from Wikipedia: %d\n", ds.WikipediaHits)

	if len(ds.ByIntent) > 0 {
		b.WriteString("Queries by type:\n")
		for _, k := range sortedKeys(ds.ByIntent) {
			fmt.Fprintf(&b, "- %s: %d\n", k, ds.ByIntent[k])
		}
	}
	if len(ds.TopQueries) > 0 {
		b.WriteString("Most asked:\n")
		for _, q := range ds.TopQueries {
			fmt.Fprintf(&b, "- %s (%d)\n", q.Query, q.Count)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// ToJSON serialises the stats for the "stats json" console command.
func (ds *DailyStats) ToJSON() (string, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
