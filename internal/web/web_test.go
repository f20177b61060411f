package web

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/goccy/go-json"
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/internal/iocache"
	"github.com/huangsam/moodmixer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *contract.Config {
	t.Helper()
	model, ok := schema.GetModel(schema.ClassicModel)
	require.True(t, ok)
	return &contract.Config{
		ModelName:   schema.ClassicModel,
		Model:       model,
		Policy:      schema.DominantPolicy,
		ResultLimit: contract.DefaultResultLimit,
		GroupSize:   1,
		Seed:        7,
		Pricing:     schema.DifficultyPricing,
	}
}

func newTestServer(t *testing.T, cfg *contract.Config) (*Server, http.Handler) {
	t.Helper()
	mgr := &iocache.MockStoreManager{}
	mgr.On("GetProfileStore").Return(iocache.NewMemoryProfileStore())
	srv, err := NewServer(cfg, mgr)
	require.NoError(t, err)
	return srv, srv.Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func moodValues(resp moodResponse) map[schema.Dimension]int {
	out := make(map[schema.Dimension]int, len(resp.Dimensions))
	for _, d := range resp.Dimensions {
		out[d.Dimension] = d.Value
	}
	return out
}

func TestHealthz(t *testing.T) {
	_, h := newTestServer(t, testConfig(t))
	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMoodRoutes(t *testing.T) {
	_, h := newTestServer(t, testConfig(t))

	rec := do(t, h, http.MethodPut, "/api/v1/mood/energetic", `{"value":9}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	values := moodValues(decode[moodResponse](t, rec))
	assert.Equal(t, 9, values[schema.Energetic])
	assert.Equal(t, 4, values[schema.Cozy])

	t.Run("out of range is clamped", func(t *testing.T) {
		rec := do(t, h, http.MethodPut, "/api/v1/mood/romantic", `{"value":42}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 10, moodValues(decode[moodResponse](t, rec))[schema.Romantic])
	})

	t.Run("get reflects the session", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/v1/mood", "")
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[moodResponse](t, rec)
		assert.Len(t, resp.Dimensions, 6)
		assert.NotEmpty(t, resp.Stats)
	})

	t.Run("occasion", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/v1/mood/occasion/date-night", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 9, moodValues(decode[moodResponse](t, rec))[schema.Romantic])
	})

	t.Run("randomize stays in range", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/v1/mood/randomize", "")
		require.Equal(t, http.StatusOK, rec.Code)
		for _, v := range moodValues(decode[moodResponse](t, rec)) {
			assert.GreaterOrEqual(t, v, schema.MinMoodValue)
			assert.LessOrEqual(t, v, schema.MaxMoodValue)
		}
	})

	t.Run("reset", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/v1/mood/reset", "")
		require.Equal(t, http.StatusOK, rec.Code)
		for _, v := range moodValues(decode[moodResponse](t, rec)) {
			assert.Equal(t, schema.NeutralMoodValue, v)
		}
	})
}

func TestSessionsAreIsolated(t *testing.T) {
	srv, h := newTestServer(t, testConfig(t))

	rec := do(t, h, http.MethodPut, "/api/v1/mood/energetic?session=alice", `{"value":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mood", nil)
	req.Header.Set(sessionHeader, "bob")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, schema.NeutralMoodValue, moodValues(decode[moodResponse](t, rec))[schema.Energetic])

	rec = do(t, h, http.MethodGet, "/api/v1/mood?session=alice", "")
	assert.Equal(t, 10, moodValues(decode[moodResponse](t, rec))[schema.Energetic])
	assert.Equal(t, 2, srv.sessions.len())
}

func TestRegistryEvictsLeastRecentlyUsed(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxSessions = 2
	srv, _ := newTestServer(t, cfg)
	reg := srv.sessions

	alice := reg.get("alice")
	require.NoError(t, alice.session.SetMood(string(schema.Energetic), 10))
	reg.get("bob")
	assert.Same(t, alice, reg.get("alice"))

	// bob is now the least recently used entry.
	reg.get("carol")
	assert.Equal(t, 2, reg.len())
	assert.Same(t, alice, reg.get("alice"))

	bob := reg.get("bob")
	v, ok := bob.session.Vector.Get(schema.Energetic)
	require.True(t, ok)
	assert.Equal(t, schema.NeutralMoodValue, v)
	assert.Equal(t, 2, reg.len())
}

func TestRegistryDropsIdleSessions(t *testing.T) {
	cfg := testConfig(t)
	cfg.SessionTTL = time.Minute
	srv, _ := newTestServer(t, cfg)
	reg := srv.sessions

	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return clock }

	first := reg.get("alice")
	reg.get("bob")

	clock = clock.Add(30 * time.Second)
	assert.Same(t, first, reg.get("alice"))

	clock = clock.Add(45 * time.Second)
	reg.get("carol")
	assert.Equal(t, 2, reg.len(), "bob idled past the ttl")

	clock = clock.Add(2 * time.Minute)
	assert.NotSame(t, first, reg.get("alice"))
	assert.Equal(t, 1, reg.len())
}

func TestSessionCountIsBounded(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxSessions = 50
	srv, h := newTestServer(t, cfg)

	for i := range 500 {
		rec := do(t, h, http.MethodGet, fmt.Sprintf("/api/v1/mood?session=user-%d", i), "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, cfg.MaxSessions, srv.sessions.len())
}

func TestSessionID(t *testing.T) {
	tests := []struct {
		name   string
		target string
		header string
		want   string
	}{
		{"default", "/", "", defaultSession},
		{"query", "/?session=abc", "", "abc"},
		{"header", "/", "xyz", "xyz"},
		{"query wins", "/?session=abc", "xyz", "abc"},
		{"truncated", "/?session=" + strings.Repeat("a", 100), "", strings.Repeat("a", maxSessionID)},
		{"multibyte truncated", "/", strings.Repeat("a", maxSessionID-1) + "éé", strings.Repeat("a", maxSessionID-1) + "é"},
		{"multibyte query", "/?session=" + url.QueryEscape(strings.Repeat("ü", 70)), "", strings.Repeat("ü", maxSessionID)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(sessionHeader, tt.header)
			}
			got := sessionID(req)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestRecommendations(t *testing.T) {
	_, h := newTestServer(t, testConfig(t))
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/api/v1/mood/energetic", `{"value":10}`).Code)

	rec := do(t, h, http.MethodGet, "/api/v1/recommendations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[recommendResponse](t, rec)
	require.Len(t, resp.Recommendations, 3)
	assert.Equal(t, "Classic Margarita", resp.Recommendations[0].Drink.Name)
	assert.InDelta(t, 8.45, resp.Recommendations[0].Score, 0.01)
	assert.Contains(t, resp.Summary, "3 recommendations")

	rec = do(t, h, http.MethodGet, "/api/v1/recommendations?limit=1&group_size=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[recommendResponse](t, rec)
	require.Len(t, resp.Recommendations, 1)
	assert.InDelta(t, 8.45*1.2, resp.Recommendations[0].Score, 0.02)
}

func TestDrinkRoutes(t *testing.T) {
	_, h := newTestServer(t, testConfig(t))

	rec := do(t, h, http.MethodGet, "/api/v1/drinks?difficulty=Easy", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]schema.Drink](t, rec), 2)

	rec = do(t, h, http.MethodGet, "/api/v1/search?q=mint", "")
	require.Equal(t, http.StatusOK, rec.Code)
	hits := decode[[]schema.SearchResult](t, rec)
	require.Len(t, hits, 1)
	assert.Equal(t, "Mojito", hits[0].Drink.Name)

	rec = do(t, h, http.MethodGet, "/api/v1/surprise", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotZero(t, decode[schema.Drink](t, rec).ID)
}

func TestFavoritesAndRecents(t *testing.T) {
	_, h := newTestServer(t, testConfig(t))

	rec := do(t, h, http.MethodPost, "/api/v1/favorites/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, favoriteResponse{DrinkID: 2, Favorite: true}, decode[favoriteResponse](t, rec))

	rec = do(t, h, http.MethodGet, "/api/v1/favorites", "")
	require.Equal(t, http.StatusOK, rec.Code)
	favs := decode[[]schema.Drink](t, rec)
	require.Len(t, favs, 1)
	assert.Equal(t, "Old Fashioned", favs[0].Name)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/drinks/3", "").Code)
	rec = do(t, h, http.MethodGet, "/api/v1/recents", "")
	require.Equal(t, http.StatusOK, rec.Code)
	recents := decode[[]schema.Drink](t, rec)
	require.Len(t, recents, 1)
	assert.Equal(t, "Mojito", recents[0].Name)

	rec = do(t, h, http.MethodPost, "/api/v1/favorites/2", "")
	assert.False(t, decode[favoriteResponse](t, rec).Favorite)
}

func TestBarsAndOrders(t *testing.T) {
	_, h := newTestServer(t, testConfig(t))

	rec := do(t, h, http.MethodGet, "/api/v1/bars", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]schema.BarMatch](t, rec), 2)

	rec = do(t, h, http.MethodPost, "/api/v1/orders", `{"drink_id":2,"bar_id":"copper-still"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[schema.Order](t, rec)
	assert.Equal(t, "Old Fashioned", order.DrinkName)
	assert.InDelta(t, 11.0, order.Price, 1e-9)
	assert.NotEmpty(t, order.OrderID)

	rec = do(t, h, http.MethodGet, "/api/v1/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[[]schema.Order](t, rec)
	require.Len(t, orders, 1)
	assert.Equal(t, order.OrderID, orders[0].OrderID)
}

func TestPoll(t *testing.T) {
	_, h := newTestServer(t, testConfig(t))

	rec := do(t, h, http.MethodPost, "/api/v1/poll/vote", `{"voter":"ann","vibe":"cozy"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode[voteResponse](t, rec)
	assert.Equal(t, 1, first.Total)
	assert.Nil(t, first.Mood)

	rec = do(t, h, http.MethodPost, "/api/v1/poll/vote", `{"voter":"bo","vibe":"cozy"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode[voteResponse](t, rec)
	assert.Equal(t, "cozy", second.Consensus)
	require.NotNil(t, second.Mood)
	assert.Equal(t, 9, moodValues(*second.Mood)[schema.Cozy])

	rec = do(t, h, http.MethodGet, "/api/v1/poll", "")
	require.Equal(t, http.StatusOK, rec.Code)
	poll := decode[pollResponse](t, rec)
	assert.Equal(t, 2, poll.Total)
	assert.Equal(t, "cozy", poll.Tally[0].Vibe)
}

func TestErrorResponses(t *testing.T) {
	_, h := newTestServer(t, testConfig(t))

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		want   string
	}{
		{"unknown dimension", http.MethodPut, "/api/v1/mood/grumpy", `{"value":3}`, http.StatusBadRequest, "unknown mood dimension"},
		{"missing value", http.MethodPut, "/api/v1/mood/energetic", `{}`, http.StatusBadRequest, "value is required"},
		{"malformed body", http.MethodPut, "/api/v1/mood/energetic", `{"value":`, http.StatusBadRequest, "invalid request body"},
		{"unknown occasion", http.MethodPost, "/api/v1/mood/occasion/funeral", "", http.StatusBadRequest, "unknown occasion"},
		{"group too large", http.MethodGet, "/api/v1/recommendations?group_size=99", "", http.StatusBadRequest, "groupsize must be at most 50"},
		{"limit not a number", http.MethodGet, "/api/v1/recommendations?limit=abc", "", http.StatusBadRequest, "invalid limit"},
		{"bad search field", http.MethodGet, "/api/v1/drinks?field=color", "", http.StatusBadRequest, "field must be one of"},
		{"search without q", http.MethodGet, "/api/v1/search", "", http.StatusBadRequest, "q is required"},
		{"bad drink id", http.MethodGet, "/api/v1/drinks/abc", "", http.StatusBadRequest, "invalid drink id"},
		{"missing drink", http.MethodGet, "/api/v1/drinks/99", "", http.StatusNotFound, "drink not found"},
		{"favorite missing drink", http.MethodPost, "/api/v1/favorites/99", "", http.StatusNotFound, "drink not found"},
		{"order missing drink id", http.MethodPost, "/api/v1/orders", `{"bar_id":"skyline"}`, http.StatusBadRequest, "drinkid is required"},
		{"order at closed bar", http.MethodPost, "/api/v1/orders", `{"drink_id":2,"bar_id":"velvet-cellar"}`, http.StatusConflict, "does not serve cocktails"},
		{"order at unknown bar", http.MethodPost, "/api/v1/orders", `{"drink_id":2,"bar_id":"nowhere"}`, http.StatusNotFound, "bar not found"},
		{"unknown vibe", http.MethodPost, "/api/v1/poll/vote", `{"voter":"ann","vibe":"rave"}`, http.StatusBadRequest, "unknown vibe"},
		{"vote without voter", http.MethodPost, "/api/v1/poll/vote", `{"vibe":"cozy"}`, http.StatusBadRequest, "voter is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, decode[errorResponse](t, rec).Error, tt.want)
		})
	}
}

func TestWithoutStore(t *testing.T) {
	srv, err := NewServer(testConfig(t), nil)
	require.NoError(t, err)
	h := srv.Handler()

	for _, target := range []string{"/api/v1/favorites", "/api/v1/recents", "/api/v1/orders"} {
		rec := do(t, h, http.MethodGet, target, "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
	}
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/surprise", "").Code)
}

func TestIndexPage(t *testing.T) {
	_, h := newTestServer(t, testConfig(t))
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/api/v1/mood/energetic?session=web", `{"value":10}`).Code)

	rec := do(t, h, http.MethodGet, "/?session=web", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)

	cards := doc.Find("article.card")
	require.Equal(t, 3, cards.Length())
	first := cards.First()
	assert.Equal(t, "Classic Margarita", first.Find("h2").Text())
	assert.Equal(t, contract.PerfectValue, first.Find(".label").Text())
	id, ok := first.Attr("data-drink-id")
	assert.True(t, ok)
	assert.Equal(t, "1", id)

	assert.Equal(t, 6, doc.Find(".mood .dimension").Length())
	assert.Equal(t, "energetic", doc.Find(".mood .dimension").First().Text())
	assert.Contains(t, doc.Find(".summary").Text(), "3 recommendations")
	assert.Contains(t, doc.Find("footer").Text(), "session web")
}

func TestMetricsEndpoint(t *testing.T) {
	_, h := newTestServer(t, testConfig(t))
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/recommendations", "").Code)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "moodmixer_http_requests_total")
	assert.Contains(t, body, `route="/api/v1/recommendations"`)
	assert.Contains(t, body, "moodmixer_recommendations_served_total")
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimit = 2
	_, h := newTestServer(t, cfg)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, h, http.MethodGet, "/healthz", "").Code)
}
