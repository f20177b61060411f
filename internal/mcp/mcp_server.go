// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the moodmixer MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Moodmixer Recommendation Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := newToolHandler(baseCfg, mgr)
	dims := make([]string, 0, len(baseCfg.Model.Dimensions))
	for _, d := range h.session.Model.Dimensions {
		dims = append(dims, string(d))
	}

	// --- 1. Tool: recommend_drinks ---
	s.AddTool(mcp.NewTool("recommend_drinks",
		mcp.WithDescription("Rank cocktails against the current mood vector."),
		mcp.WithString("occasion", mcp.Description("Apply an occasion preset first."), mcp.Enum("brunch", "happy-hour", "night-out", "date-night", "celebration")),
		mcp.WithNumber("group_size", mcp.Description("Party size used to scale scores.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleRecommendDrinks)

	// --- 2. Tool: adjust_mood ---
	s.AddTool(mcp.NewTool("adjust_mood",
		mcp.WithDescription("Set one mood dimension and propagate the change to the others, or reset/randomize the whole mood."),
		mcp.WithString("dimension", mcp.Description("Mood dimension to set."), mcp.Enum(dims...)),
		mcp.WithNumber("value", mcp.Description("New value, clamped to 1-10.")),
		mcp.WithString("action", mcp.Description("Set (default), reset or randomize."), mcp.Enum("set", "reset", "randomize")),
	), h.handleAdjustMood)

	// --- 3. Tool: search_drinks ---
	s.AddTool(mcp.NewTool("search_drinks",
		mcp.WithDescription("Search the catalog by keywords across name, spirit, ingredients, flavor, glass and description."),
		mcp.WithString("query", mcp.Description("Whitespace separated keywords."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results.")),
	), h.handleSearchDrinks)

	// --- 4. Tool: match_bars ---
	s.AddTool(mcp.NewTool("match_bars",
		mcp.WithDescription("Rank cocktail bars against the current mood."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results.")),
	), h.handleMatchBars)

	// --- 5. Tool: share_drink ---
	s.AddTool(mcp.NewTool("share_drink",
		mcp.WithDescription("Build share text for a drink, or for the current vibe when no drink is given."),
		mcp.WithNumber("drink_id", mcp.Description("Catalog id of the drink.")),
	), h.handleShareDrink)

	return s
}

// StartMCPServer starts the moodmixer MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
