package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hosllm/internal/dataset"
)

// fakeEmbedder maps known strings to fixed vectors and counts calls.
type fakeEmbedder struct {
	vecs  map[string][]float32
	calls int
	err   error
}

func (f *fakeEmbedder) CreateEmbeddings(_ context.Context, inputs []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(inputs))
	for i, in := range inputs {
		out[i] = f.vecs[in]
	}
	return out, nil
}

func TestRankerBest(t *testing.T) {
	emb := &fakeEmbedder{vecs: map[string][]float32{
		"Storming of the Bastille": {1, 0, 0},
		"Moon landing":             {0, 1, 0},
		"paris uprising 1789":      {0.9, 0.1, 0},
	}}
	records := []dataset.Record{
		{Event: "Moon landing", Date: "1969"},
		{Event: "Storming of the Bastille", Date: "1789"},
	}
	rk := NewRanker(emb, 0.5)

	r, score, ok := rk.Best(context.Background(), records, "paris uprising 1789")
	require.True(t, ok)
	assert.Equal(t, "Storming of the Bastille", r.Event)
	assert.Greater(t, score, 0.9)

	// names are cached; only the query is embedded on the second call
	_, _, _ = rk.Best(context.Background(), records, "paris uprising 1789")
	assert.Equal(t, 3, emb.calls)
}

func TestRankerBest_BelowThreshold(t *testing.T) {
	emb := &fakeEmbedder{vecs: map[string][]float32{
		"Moon landing": {0, 1},
		"cooking":      {1, 0},
	}}
	rk := NewRanker(emb, 0.5)
	_, _, ok := rk.Best(context.Background(), []dataset.Record{{Event: "Moon landing"}}, "cooking")
	assert.False(t, ok)
}

func TestRankerBest_EmbedderErrorIsMiss(t *testing.T) {
	rk := NewRanker(&fakeEmbedder{err: errors.New("boom")}, 0.1)
	_, _, ok := rk.Best(context.Background(), []dataset.Record{{Event: "Rome"}}, "rome")
	assert.False(t, ok)
}

func TestRankerBest_NilRanker(t *testing.T) {
	var rk *Ranker
	_, _, ok := rk.Best(context.Background(), []dataset.Record{{Event: "Rome"}}, "rome")
	assert.False(t, ok)
}
