package api

import (
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/manuscripta/searchkit/pkg/kit"
	"github.com/manuscripta/searchkit/pkg/lang"
	"github.com/manuscripta/searchkit/pkg/store"
)

// RegisterMCPTools registers the searchkit MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, cat *lang.Catalog, st *store.Store) {
	registerClassifyQuery(srv)
	registerSearchRecords(srv, st)
	registerFacetCounts(srv, st)
	registerListLanguages(srv, cat)
}

func registerClassifyQuery(srv *server.MCPServer) {
	tool := mcp.NewTool("classify_query",
		mcp.WithDescription("Classify a search query into its execution strategy (exact_id, hybrid, full_text, word_split) with the per-rule verdicts."),
		mcp.WithString("query", mcp.Required(), mcp.Description("The raw query text")),
	)

	kit.RegisterMCPTool(srv, tool, classifyEndpoint(), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		query, _ := args["query"].(string)
		return &kit.MCPDecodeResult{Request: &classifyReq{Query: query}}, nil
	})
}

func registerSearchRecords(srv *server.MCPServer, st *store.Store) {
	tool := mcp.NewTool("search_records",
		mcp.WithDescription("Search indexed metadata records. The query is classified first and the matching strategy (exact, hybrid, full-text, word-split) is executed."),
		mcp.WithString("query", mcp.Required(), mcp.Description("The search query")),
		mcp.WithString("limit", mcp.Description("Maximum number of hits (default 30)")),
	)

	kit.RegisterMCPTool(srv, tool, searchEndpoint(st), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		query, _ := args["query"].(string)
		limit := 0
		if v, _ := args["limit"].(string); v != "" {
			limit, _ = strconv.Atoi(v)
		}
		return &kit.MCPDecodeResult{Request: &searchReq{Query: query, Limit: limit}}, nil
	})
}

func registerFacetCounts(srv *server.MCPServer, st *store.Store) {
	tool := mcp.NewTool("facet_counts",
		mcp.WithDescription("Count distinct documents per (subtype, value) pair, the aggregation behind search facets."),
		mcp.WithString("type", mcp.Description("Field category filter (e.g. metadata, descriptive)")),
		mcp.WithString("limit", mcp.Description("Maximum number of buckets (default 100)")),
	)

	kit.RegisterMCPTool(srv, tool, facetsEndpoint(st), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		fieldType, _ := args["type"].(string)
		limit := 0
		if v, _ := args["limit"].(string); v != "" {
			limit, _ = strconv.Atoi(v)
		}
		return &kit.MCPDecodeResult{Request: &facetsReq{Type: fieldType, Limit: limit}}, nil
	})
}

func registerListLanguages(srv *server.MCPServer, cat *lang.Catalog) {
	tool := mcp.NewTool("list_languages",
		mcp.WithDescription("List the language reference table (ISO 639-2, ISO 639-1, display name)."),
	)

	kit.RegisterMCPTool(srv, tool, languagesEndpoint(cat), func(mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	})
}
