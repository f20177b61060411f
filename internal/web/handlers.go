package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/huangsam/moodmixer/core"
	"github.com/huangsam/moodmixer/core/algo"
	"github.com/huangsam/moodmixer/core/mood"
	"github.com/huangsam/moodmixer/internal/catalog"
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/internal/logging"
	"github.com/huangsam/moodmixer/internal/pos"
	"github.com/huangsam/moodmixer/schema"
)

const maxBodyBytes = 1 << 20

type moodRequest struct {
	Value *int `json:"value" validate:"required"`
}

type orderRequest struct {
	DrinkID int    `json:"drink_id" validate:"required,gt=0"`
	BarID   string `json:"bar_id" validate:"required,max=64"`
}

type voteRequest struct {
	Voter string `json:"voter" validate:"required,max=64"`
	Vibe  string `json:"vibe" validate:"required"`
}

type recommendQuery struct {
	GroupSize int `validate:"omitempty,min=1,max=50"`
	Limit     int `validate:"omitempty,min=1,max=100"`
}

type drinksQuery struct {
	Spirit     string
	Difficulty string
	Search     string
	Field      string `validate:"omitempty,oneof=all name spirit description flavor glass"`
}

type moodResponse struct {
	Stats      string                  `json:"stats"`
	Dimensions []schema.DimensionState `json:"dimensions"`
}

type recommendResponse struct {
	Summary         string               `json:"summary"`
	Recommendations []schema.ScoredDrink `json:"recommendations"`
}

type favoriteResponse struct {
	DrinkID  int  `json:"drink_id"`
	Favorite bool `json:"favorite"`
}

type pollResponse struct {
	Total     int              `json:"total"`
	Tally     []algo.VibeCount `json:"tally"`
	Consensus string           `json:"consensus,omitempty"`
}

type voteResponse struct {
	pollResponse
	Mood *moodResponse `json:"mood,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeErr maps domain errors onto status codes.
func writeErr(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, mood.ErrUnknownDimension),
		errors.Is(err, core.ErrUnknownOccasion),
		errors.Is(err, algo.ErrUnknownVibe):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrDrinkNotFound),
		errors.Is(err, catalog.ErrBarNotFound),
		errors.Is(err, algo.ErrNothingNew):
		return http.StatusNotFound
	case errors.Is(err, pos.ErrBarUnavailable):
		return http.StatusConflict
	case errors.Is(err, core.ErrNoStore),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON body into v and validates it.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	if err := contract.ValidateStruct(v); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s'. must be an integer", name, raw)
	}
	return n, nil
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid drink id '%s'", chi.URLParam(r, "id")))
		return 0, false
	}
	return id, true
}

func moodOf(s *core.Session) moodResponse {
	return moodResponse{Stats: s.Stats(), Dimensions: s.MoodState()}
}

func pollOf(s *core.Session) pollResponse {
	winner, _ := s.Poll.Consensus()
	return pollResponse{Total: s.Poll.Total(), Tally: s.Poll.SortedTally(), Consensus: winner}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Mood ---

func (s *Server) handleGetMood(w http.ResponseWriter, r *http.Request) {
	s.withSession(r, func(sess *core.Session) {
		writeJSON(w, http.StatusOK, moodOf(sess))
	})
}

func (s *Server) handleSetMood(w http.ResponseWriter, r *http.Request) {
	var req moodRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.withSession(r, func(sess *core.Session) {
		if err := sess.SetMood(chi.URLParam(r, "dim"), *req.Value); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, moodOf(sess))
	})
}

func (s *Server) handleResetMood(w http.ResponseWriter, r *http.Request) {
	s.withSession(r, func(sess *core.Session) {
		sess.Reset()
		writeJSON(w, http.StatusOK, moodOf(sess))
	})
}

func (s *Server) handleRandomizeMood(w http.ResponseWriter, r *http.Request) {
	s.withSession(r, func(sess *core.Session) {
		sess.Randomize()
		writeJSON(w, http.StatusOK, moodOf(sess))
	})
}

func (s *Server) handleOccasion(w http.ResponseWriter, r *http.Request) {
	s.withSession(r, func(sess *core.Session) {
		if err := sess.ApplyOccasion(chi.URLParam(r, "name")); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, moodOf(sess))
	})
}

// --- Drinks ---

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var q recommendQuery
	var err error
	if q.GroupSize, err = queryInt(r, "group_size"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if q.Limit, err = queryInt(r, "limit"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := contract.ValidateStruct(&q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.withSession(r, func(sess *core.Session) {
		if q.GroupSize > 0 {
			sess.SetGroupSize(q.GroupSize)
		}
		results := sess.Recommend()
		if q.Limit > 0 && q.Limit < len(results) {
			results = results[:q.Limit]
		}
		RecommendationsServed.WithLabelValues(string(sess.Scorer.Policy)).Inc()
		writeJSON(w, http.StatusOK, recommendResponse{Summary: sess.Summary(results), Recommendations: results})
	})
}

func (s *Server) handleDrinks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := drinksQuery{
		Spirit:     query.Get("spirit"),
		Difficulty: query.Get("difficulty"),
		Search:     query.Get("search"),
		Field:      query.Get("field"),
	}
	if err := contract.ValidateStruct(&q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withSession(r, func(sess *core.Session) {
		writeJSON(w, http.StatusOK, sess.Browse(algo.Filters(q)))
	})
}

func (s *Server) handleDrink(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.withSession(r, func(sess *core.Session) {
		d, err := sess.View(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	s.withSession(r, func(sess *core.Session) {
		writeJSON(w, http.StatusOK, sess.Search(q))
	})
}

func (s *Server) handleSurprise(w http.ResponseWriter, r *http.Request) {
	s.withSession(r, func(sess *core.Session) {
		d, err := sess.Surprise(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	})
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	s.withSession(r, func(sess *core.Session) {
		drinks, err := sess.Favorites(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, drinks)
	})
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.withSession(r, func(sess *core.Session) {
		added, err := sess.ToggleFavorite(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, favoriteResponse{DrinkID: id, Favorite: added})
	})
}

func (s *Server) handleRecents(w http.ResponseWriter, r *http.Request) {
	s.withSession(r, func(sess *core.Session) {
		drinks, err := sess.Recents(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, drinks)
	})
}

// --- Bars and orders ---

func (s *Server) handleBars(w http.ResponseWriter, r *http.Request) {
	s.withSession(r, func(sess *core.Session) {
		writeJSON(w, http.StatusOK, sess.MatchBars())
	})
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil || limit < 0 {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	if s.store == nil {
		writeErr(w, core.ErrNoStore)
		return
	}
	orders, err := s.store.Orders(r.Context(), limit)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// handlePlaceOrder resolves the order under the session lock and then waits
// out the terminal delay without holding it.
func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	var (
		drink schema.Drink
		bar   schema.Bar
		err   error
	)
	s.withSession(r, func(sess *core.Session) {
		drink, bar, err = sess.OrderTarget(req.DrinkID, req.BarID)
	})
	if err != nil {
		writeErr(w, err)
		return
	}

	order, err := s.terminal.PlaceOrder(r.Context(), drink, bar)
	if err != nil {
		writeErr(w, err)
		return
	}
	OrdersPlaced.WithLabelValues(bar.ID).Inc()
	writeJSON(w, http.StatusCreated, order)
}

// --- Poll ---

func (s *Server) handlePoll(w http.ResponseWriter, r *http.Request) {
	s.withSession(r, func(sess *core.Session) {
		writeJSON(w, http.StatusOK, pollOf(sess))
	})
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.withSession(r, func(sess *core.Session) {
		_, agreed, err := sess.Vote(req.Voter, req.Vibe)
		if err != nil {
			writeErr(w, err)
			return
		}
		resp := voteResponse{pollResponse: pollOf(sess)}
		if agreed {
			m := moodOf(sess)
			resp.Mood = &m
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

// --- Page ---

type indexData struct {
	Session         string
	Summary         string
	Mood            []schema.DimensionState
	Recommendations []schema.ScoredDrink
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var data indexData
	s.withSession(r, func(sess *core.Session) {
		results := sess.Recommend()
		RecommendationsServed.WithLabelValues(string(sess.Scorer.Policy)).Inc()
		data = indexData{
			Session:         sessionID(r),
			Summary:         sess.Summary(results),
			Mood:            sess.MoodState(),
			Recommendations: results,
		}
	})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		logging.Err(err).Msg("Failed to render index")
	}
}
