package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/huangsam/moodmixer/core"
	"github.com/huangsam/moodmixer/core/algo"
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds the session shared by every MCP tool call.
type toolHandler struct {
	mu      sync.Mutex
	session *core.Session
}

func newToolHandler(baseCfg *contract.Config, mgr contract.StoreManager) *toolHandler {
	var store contract.ProfileStore
	if mgr != nil {
		store = mgr.GetProfileStore()
	}
	return &toolHandler{session: core.LoadSession(baseCfg.Clone(), store)}
}

// moodResult is the adjust_mood payload.
type moodResult struct {
	Stats      string                  `json:"stats"`
	Dimensions []schema.DimensionState `json:"dimensions"`
}

// recommendResult is the recommend_drinks payload.
type recommendResult struct {
	Summary         string               `json:"summary"`
	Recommendations []schema.ScoredDrink `json:"recommendations"`
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (h *toolHandler) handleRecommendDrinks(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if o := request.GetString("occasion", ""); o != "" {
		if err := h.session.ApplyOccasion(o); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid occasion: %v", err)), nil
		}
	}
	if g := request.GetInt("group_size", 0); g != 0 {
		if g < 1 || g > contract.MaxGroupSize {
			return mcp.NewToolResultError(fmt.Sprintf("group_size must be between 1 and %d", contract.MaxGroupSize)), nil
		}
		h.session.SetGroupSize(g)
	}

	results := h.session.Recommend()
	if l := request.GetInt("limit", 0); l > 0 && l < len(results) {
		results = results[:l]
	}
	return toolJSON(recommendResult{Summary: h.session.Summary(results), Recommendations: results})
}

func (h *toolHandler) handleAdjustMood(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch action := request.GetString("action", "set"); action {
	case "reset":
		h.session.Reset()
	case "randomize":
		h.session.Randomize()
	case "set", "":
		dim := request.GetString("dimension", "")
		if dim == "" {
			return mcp.NewToolResultError("dimension is required to set a mood"), nil
		}
		args := request.GetArguments()
		if _, ok := args["value"]; !ok {
			return mcp.NewToolResultError("value is required to set a mood"), nil
		}
		if err := h.session.SetMood(dim, request.GetInt("value", schema.NeutralMoodValue)); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid mood: %v", err)), nil
		}
	default:
		return mcp.NewToolResultError(fmt.Sprintf("invalid action '%s'. must be set, reset, randomize", action)), nil
	}
	return toolJSON(moodResult{Stats: h.session.Stats(), Dimensions: h.session.MoodState()})
}

func (h *toolHandler) handleSearchDrinks(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	limit := request.GetInt("limit", algo.DefaultSearchLimit)
	return toolJSON(algo.Search(h.session.Catalog, query, limit))
}

func (h *toolHandler) handleMatchBars(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	matches := h.session.MatchBars()
	if l := request.GetInt("limit", 0); l > 0 && l < len(matches) {
		matches = matches[:l]
	}
	return toolJSON(matches)
}

func (h *toolHandler) handleShareDrink(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := request.GetInt("drink_id", 0)
	if id == 0 {
		return mcp.NewToolResultText(h.session.ShareVibe()), nil
	}
	text, err := h.session.ShareDrink(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("share failed: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}
