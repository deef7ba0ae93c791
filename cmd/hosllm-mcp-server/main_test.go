package main

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hosllm/internal/dataset"
	"hosllm/internal/historian"
)

type noFallback struct{ calls int }

func (n *noFallback) Lookup(context.Context, string) string {
	n.calls++
	return "I couldn't find that topic on Wikipedia."
}

func newTestServer() (*HistorianMCPServer, *noFallback) {
	store := dataset.NewStore("unused.csv", []dataset.Record{
		{Event: "Fall of Constantinople", Date: "1453", Summary: "Ottoman conquest."},
	})
	fb := &noFallback{}
	return NewHistorianMCPServer(historian.New(store, fb, nil)), fb
}

func text(t *testing.T, res *mcp.CallToolResultFor[any]) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestAsk(t *testing.T) {
	s, fb := newTestServer()
	res, err := s.Ask(context.Background(), nil, &mcp.CallToolParamsFor[AskParams]{Arguments: AskParams{Query: "constantinople"}})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "Fall of Constantinople (1453): Ottoman conquest.", text(t, res))
	assert.Equal(t, 0, fb.calls)
}

func TestAsk_EmptyQuery(t *testing.T) {
	s, _ := newTestServer()
	res, err := s.Ask(context.Background(), nil, &mcp.CallToolParamsFor[AskParams]{Arguments: AskParams{Query: "  "}})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestYearEvent(t *testing.T) {
	s, fb := newTestServer()
	res, err := s.YearEvent(context.Background(), nil, &mcp.CallToolParamsFor[YearParams]{Arguments: YearParams{Year: 1453}})
	require.NoError(t, err)
	assert.Equal(t, "Most Important Event in 1453: Fall of Constantinople (1453): Ottoman conquest.", text(t, res))

	res, err = s.YearEvent(context.Background(), nil, &mcp.CallToolParamsFor[YearParams]{Arguments: YearParams{Year: 1700}})
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "wiki 1700")
	assert.Equal(t, 0, fb.calls)

	res, err = s.YearEvent(context.Background(), nil, &mcp.CallToolParamsFor[YearParams]{Arguments: YearParams{Year: 0}})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
