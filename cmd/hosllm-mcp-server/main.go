package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"

	"hosllm/internal/app"
	"hosllm/internal/config"
	"hosllm/internal/historian"
	"hosllm/internal/logging"
)

// AskParams is a free-form question for the historian.
type AskParams struct {
	Query string `json:"query" mcp:"question, year, 'wiki <topic>' or a date range such as '1900-1950'"`
}

// YearParams selects the year whose most important event is looked up.
type YearParams struct {
	Year int `json:"year" mcp:"year to look up in the local dataset"`
}

// HistorianMCPServer exposes the historian to a single MCP client over stdio.
type HistorianMCPServer struct {
	historian *historian.Historian
}

func NewHistorianMCPServer(h *historian.Historian) *HistorianMCPServer {
	return &HistorianMCPServer{historian: h}
}

// Ask routes the query exactly like the console does.
func (s *HistorianMCPServer) Ask(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[AskParams]) (*mcp.CallToolResultFor[any], error) {
	q := strings.TrimSpace(params.Arguments.Query)
	log.Infof("MCP Server: ask_historian %q", q)

	if q == "" {
		return &mcp.CallToolResultFor[any]{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: "query is required"},
			},
		}, nil
	}

	reply := s.historian.Answer(ctx, q)
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: reply.Text},
		},
		Meta: map[string]interface{}{
			"intent": string(reply.Intent.Kind),
			"source": reply.Source,
		},
	}, nil
}

// YearEvent answers from the local dataset only; it never calls Wikipedia.
func (s *HistorianMCPServer) YearEvent(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[YearParams]) (*mcp.CallToolResultFor[any], error) {
	year := params.Arguments.Year
	log.Infof("MCP Server: year_event %d", year)

	if year <= 0 {
		return &mcp.CallToolResultFor[any]{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("invalid year: %d", year)},
			},
		}, nil
	}

	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: s.historian.YearEvent(year)},
		},
	}, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Debugf(".env file not found: %v", err)
	}

	cfg := config.New()
	if err := logging.Setup(cfg.LogLevel, cfg.LogFilePath); err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}

	a := app.New(cfg)
	log.Infof("Starting HOSLLM MCP Server with %d historical entries", a.Store.Len())

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "hosllm-mcp",
		Version: "1.0.0",
	}, nil)

	hs := NewHistorianMCPServer(a.Historian)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_historian",
		Description: "Answers a historical question from the local dataset, falling back to Wikipedia",
	}, hs.Ask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "year_event",
		Description: "Returns the most important event of a year from the local dataset",
	}, hs.YearEvent)

	log.Infof("Registered %d tools: ask_historian, year_event", 2)

	transport := mcp.NewStdioTransport()
	if err := server.Run(context.Background(), transport); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
