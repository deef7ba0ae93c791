package wiki

import (
	"context"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"hosllm/internal/dataset"
)

const (
	UnknownDate = "Unknown"

	MsgNotFound    = "I couldn't find that topic on Wikipedia."
	MsgIssue       = "There was an issue retrieving data from Wikipedia."
	MsgUnreachable = "I couldn't reach Wikipedia right now. Please try again later."
	foundPrefix    = "Here's what I found on Wikipedia: "
)

type SummaryFetcher interface {
	FetchSummary(ctx context.Context, topic string) (Summary, error)
}

type Appender interface {
	Append(rec dataset.Record) (bool, error)
}

// Fallback answers from Wikipedia and remembers successful lookups in the dataset.
type Fallback struct {
	fetcher SummaryFetcher
	store   Appender
}

func NewFallback(fetcher SummaryFetcher, store Appender) *Fallback {
	return &Fallback{fetcher: fetcher, store: store}
}

// Lookup always returns a user-facing message; failures never escape.
// A blank topic is answered with MsgNotFound without contacting Wikipedia.
func (f *Fallback) Lookup(ctx context.Context, topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return MsgNotFound
	}
	s, err := f.fetcher.FetchSummary(ctx, topic)
	if err != nil {
		log.Errorf("Error retrieving data from Wikipedia: %v", err)
		return MsgUnreachable
	}
	switch s.StatusCode {
	case http.StatusOK:
		summary := Clean(s.Extract)
		if f.store != nil {
			if _, err := f.store.Append(dataset.Record{Event: topic, Date: UnknownDate, Summary: summary}); err != nil {
				log.Errorf("Error saving to CSV: %v", err)
			}
		}
		return foundPrefix + summary + "..."
	case http.StatusNotFound:
		return MsgNotFound
	default:
		log.Errorf("Error retrieving data from Wikipedia: %d", s.StatusCode)
		return MsgIssue
	}
}
