package lookup

import (
	"context"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"hosllm/internal/dataset"
	"hosllm/internal/llm"
)

// Ranker finds the record whose event name is semantically closest to a query.
// It is consulted only after a literal substring lookup misses.
type Ranker struct {
	embedder  llm.Embedder
	threshold float64

	mu    sync.Mutex
	cache map[string][]float32
}

func NewRanker(embedder llm.Embedder, threshold float64) *Ranker {
	return &Ranker{
		embedder:  embedder,
		threshold: threshold,
		cache:     make(map[string][]float32),
	}
}

// Best returns the highest scoring record at or above the threshold. Embedding
// errors are logged and reported as a miss.
func (rk *Ranker) Best(ctx context.Context, records []dataset.Record, q string) (dataset.Record, float64, bool) {
	if rk == nil || rk.embedder == nil || len(records) == 0 || strings.TrimSpace(q) == "" {
		return dataset.Record{}, 0, false
	}
	if err := rk.warm(ctx, records); err != nil {
		log.Warnf("similarity ranking unavailable: %v", err)
		return dataset.Record{}, 0, false
	}
	qv, err := rk.embedder.CreateEmbeddings(ctx, []string{q})
	if err != nil || len(qv) == 0 {
		log.Warnf("failed to embed query %q: %v", q, err)
		return dataset.Record{}, 0, false
	}

	rk.mu.Lock()
	defer rk.mu.Unlock()
	var (
		best      dataset.Record
		bestScore float64
		found     bool
	)
	for _, r := range records {
		score := llm.CosineSimilarity(qv[0], rk.cache[cacheKey(r.Event)])
		if score >= rk.threshold && (!found || score > bestScore) {
			best, bestScore, found = r, score, true
		}
	}
	return best, bestScore, found
}

// warm embeds event names not yet cached in a single batch.
func (rk *Ranker) warm(ctx context.Context, records []dataset.Record) error {
	rk.mu.Lock()
	var missing []string
	seen := map[string]bool{}
	for _, r := range records {
		k := cacheKey(r.Event)
		if _, ok := rk.cache[k]; ok || seen[k] {
			continue
		}
		seen[k] = true
		missing = append(missing, r.Event)
	}
	rk.mu.Unlock()
	if len(missing) == 0 {
		return nil
	}

	vecs, err := rk.embedder.CreateEmbeddings(ctx, missing)
	if err != nil {
		return err
	}
	if len(vecs) != len(missing) {
		return fmt.Errorf("embedder returned %d vectors for %d names", len(vecs), len(missing))
	}
	rk.mu.Lock()
	for i, name := range missing {
		rk.cache[cacheKey(name)] = vecs[i]
	}
	rk.mu.Unlock()
	log.Debugf("embedded %d event names", len(missing))
	return nil
}

func cacheKey(event string) string { return strings.ToLower(event) }
