// Package historian routes a classified query to the local dataset or to the
// Wikipedia fallback and produces the reply text.
package historian

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"hosllm/internal/dataset"
	"hosllm/internal/lookup"
	"hosllm/internal/query"
	"hosllm/internal/storage"
)

// Fallback answers a topic from outside the dataset.
type Fallback interface {
	Lookup(ctx context.Context, topic string) string
}

// Records exposes the current dataset contents.
type Records interface {
	Records() []dataset.Record
}

type Reply struct {
	Text   string
	Intent query.Intent
	Source string
}

type Historian struct {
	store    Records
	fallback Fallback
	ranker   *lookup.Ranker
}

// New builds a Historian. ranker may be nil, in which case name lookups are
// literal substring matches only.
func New(store Records, fallback Fallback, ranker *lookup.Ranker) *Historian {
	return &Historian{store: store, fallback: fallback, ranker: ranker}
}

// Answer classifies q and resolves it; it always produces a reply.
func (h *Historian) Answer(ctx context.Context, q string) Reply {
	intent := query.Classify(q)
	text, source := h.resolve(ctx, intent)
	log.WithFields(log.Fields{"intent": intent.Kind, "source": source}).Debugf("answered %q", q)
	return Reply{Text: text, Intent: intent, Source: source}
}

func (h *Historian) resolve(ctx context.Context, in query.Intent) (string, string) {
	switch in.Kind {
	case query.KindWiki:
		return h.fallback.Lookup(ctx, in.Topic), storage.SourceWikipedia
	case query.KindYear:
		return h.YearEvent(in.Year), storage.SourceLocal
	case query.KindYearRange, query.KindWarsRange:
		return h.DateRange(in.Start, in.End), storage.SourceLocal
	}

	records := h.store.Records()
	if r, ok := lookup.FindByName(records, in.Raw); ok {
		return lookup.FormatRecord(r), storage.SourceLocal
	}
	if r, score, ok := h.ranker.Best(ctx, records, in.Raw); ok {
		log.Debugf("similarity match %q for %q (score %.3f)", r.Event, in.Raw, score)
		return lookup.FormatRecord(r), storage.SourceLocal
	}
	return h.fallback.Lookup(ctx, in.Raw), storage.SourceWikipedia
}

// YearEvent answers a year query from the dataset only.
func (h *Historian) YearEvent(year int) string {
	if r, ok := lookup.MostImportantEventForYear(h.store.Records(), year); ok {
		return fmt.Sprintf("Most Important Event in %d: %s", year, lookup.FormatRecord(r))
	}
	return fmt.Sprintf("I couldn't find a major event in %d, but I can check Wikipedia if you type 'wiki %d'.", year, year)
}

func (h *Historian) DateRange(start, end int) string {
	return lookup.FormatRange(lookup.FindByDateRange(h.store.Records(), start, end), start, end)
}
