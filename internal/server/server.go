package server

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/xtding233/wishsim-backend/internal/config"
	"github.com/xtding233/wishsim-backend/internal/cost"
	"github.com/xtding233/wishsim-backend/internal/preset"
	"github.com/xtding233/wishsim-backend/internal/wish"
)

// Server wires the simulation engine, preset loader and metrics behind an
// HTTP API.
type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	presets *preset.Loader
	metrics *Metrics
	router  chi.Router
}

func New(cfg *config.Config, log *slog.Logger, presets *preset.Loader, metrics *Metrics) *Server {
	s := &Server{
		cfg:     cfg,
		log:     log,
		presets: presets,
		metrics: metrics,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Route("/v1", func(r chi.Router) {
		r.Get("/banners", s.handleBanners)
		r.Post("/simulate", s.handleSimulate)
		r.Get("/decode", s.handleDecode)
		r.Post("/cost", s.handleCost)
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// observe logs every request and feeds the latency histogram.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		s.metrics.HTTPDurations.WithLabelValues(
			route, r.Method, strconv.Itoa(ww.Status()),
		).Observe(elapsed.Seconds())
		s.log.Info("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"duration_ms", elapsed.Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type bannerListEntry struct {
	Name   string    `json:"name"`
	Banner BannerDTO `json:"banner"`
	Code   string    `json:"code"`
}

func (s *Server) handleBanners(w http.ResponseWriter, _ *http.Request) {
	names, err := s.presets.List()
	if err != nil {
		s.fail(w, err)
		return
	}
	out := make([]bannerListEntry, 0, len(names))
	for _, name := range names {
		b, err := s.presets.Banner(name)
		if err != nil {
			s.fail(w, err)
			return
		}
		code, err := wish.EncodeBanner(b)
		if err != nil {
			s.fail(w, err)
			return
		}
		out = append(out, bannerListEntry{Name: name, Banner: bannerToDTO(b), Code: code})
	}
	writeJSON(w, http.StatusOK, out)
}

type simulateRequest struct {
	Preset     string     `json:"preset,omitempty"`
	Banner     *BannerDTO `json:"banner,omitempty"`
	BannerCode string     `json:"banner_code,omitempty"`

	Goal     *GoalDTO `json:"goal,omitempty"`
	GoalCode string   `json:"goal_code,omitempty"`

	Trials   int     `json:"trials,omitempty"`
	BudgetMS int     `json:"budget_ms,omitempty"`
	Seed     *uint64 `json:"seed,omitempty"`
}

type simulateResponse struct {
	RunID      string       `json:"run_id"`
	Trials     int          `json:"trials"`
	Stats      wish.Stats   `json:"stats"`
	Histogram  wish.Counter `json:"histogram"`
	BannerCode string       `json:"banner_code"`
	GoalCode   string       `json:"goal_code"`
}

const defaultTrials = 10000

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.failStatus(w, http.StatusBadRequest, err)
		return
	}

	banner, err := s.resolveBanner(req)
	if err != nil {
		s.fail(w, err)
		return
	}
	goal, err := resolveGoal(req)
	if err != nil {
		s.fail(w, err)
		return
	}

	var sim *wish.Sim
	if req.Seed != nil {
		sim, err = wish.NewSeededSim(banner, goal, *req.Seed)
	} else {
		sim, err = wish.NewSim(banner, goal)
	}
	if err != nil {
		s.fail(w, err)
		return
	}

	hist := wish.Counter{}
	var stats wish.Stats
	if req.BudgetMS > 0 {
		budget := req.BudgetMS
		if budget > s.cfg.MaxBudgetMS {
			budget = s.cfg.MaxBudgetMS
		}
		stats, err = wish.RunForBudget(sim, time.Duration(budget)*time.Millisecond, hist)
	} else {
		trials := req.Trials
		if trials <= 0 {
			trials = defaultTrials
		}
		if trials > s.cfg.MaxTrials {
			trials = s.cfg.MaxTrials
		}
		stats, err = wish.RunTrials(sim, trials, hist)
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	s.metrics.ObserveRun(stats.Samples)

	bannerCode, err := wish.EncodeBanner(banner)
	if err != nil {
		s.fail(w, err)
		return
	}
	goalCode, err := wish.EncodeGoal(goal)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, simulateResponse{
		RunID:      uuid.NewString(),
		Trials:     len(stats.Samples),
		Stats:      stats,
		Histogram:  hist,
		BannerCode: bannerCode,
		GoalCode:   goalCode,
	})
}

func (s *Server) resolveBanner(req simulateRequest) (wish.Banner, error) {
	switch {
	case req.Preset != "":
		return s.presets.Banner(req.Preset)
	case req.BannerCode != "":
		return wish.DecodeBanner(req.BannerCode)
	case req.Banner != nil:
		return req.Banner.toBanner()
	default:
		return s.presets.Banner("default")
	}
}

func resolveGoal(req simulateRequest) (wish.Goal, error) {
	switch {
	case req.GoalCode != "":
		return wish.DecodeGoal(req.GoalCode)
	case req.Goal != nil:
		return req.Goal.toGoal()
	default:
		return wish.DefaultGoal(), nil
	}
}

type decodeResponse struct {
	Banner *BannerDTO `json:"banner,omitempty"`
	Goal   *GoalDTO   `json:"goal,omitempty"`
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var resp decodeResponse
	q := r.URL.Query()
	if code := q.Get("banner"); code != "" {
		b, err := wish.DecodeBanner(code)
		if err != nil {
			s.fail(w, err)
			return
		}
		dto := bannerToDTO(b)
		resp.Banner = &dto
	}
	if code := q.Get("goal"); code != "" {
		g, err := wish.DecodeGoal(code)
		if err != nil {
			s.fail(w, err)
			return
		}
		dto := goalToDTO(g)
		resp.Goal = &dto
	}
	if resp.Banner == nil && resp.Goal == nil {
		s.failStatus(w, http.StatusBadRequest, errors.New("need a banner or goal query parameter"))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type costRequest struct {
	Catalog cost.Catalog        `json:"catalog"`
	Token   cost.Token          `json:"token"`
	First   cost.FirstTimeState `json:"first_time,omitempty"`

	// exactly one of the three targets
	Draws       int `json:"draws,omitempty"`
	Tokens      int `json:"tokens,omitempty"`
	BudgetCents int `json:"budget_cents,omitempty"`
}

func (s *Server) handleCost(w http.ResponseWriter, r *http.Request) {
	var req costRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.failStatus(w, http.StatusBadRequest, err)
		return
	}
	if len(req.Catalog.Packs) == 0 {
		s.failStatus(w, http.StatusBadRequest, errors.New("catalog has no packs"))
		return
	}

	var plan cost.Plan
	switch {
	case req.Draws > 0:
		if req.Token.PerDraw <= 0 {
			s.failStatus(w, http.StatusBadRequest, errors.New("token.per_draw must be positive"))
			return
		}
		plan = cost.PlanForDraws(req.Catalog, req.Token, req.Draws, req.First)
	case req.Tokens > 0:
		plan = cost.MinCostForTokens(req.Catalog, req.Tokens, req.First)
	case req.BudgetCents > 0:
		plan = cost.MaxTokensForBudget(req.Catalog, req.BudgetCents, req.First)
	default:
		s.failStatus(w, http.StatusBadRequest, errors.New("need draws, tokens or budget_cents"))
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

type errorResponse struct {
	Error string `json:"error"`
}

// fail maps engine errors onto HTTP statuses: malformed input is 400, a goal
// the banner cannot satisfy is 422, everything else is 500.
func (s *Server) fail(w http.ResponseWriter, err error) {
	var de *wish.DecodeError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.failStatus(w, http.StatusNotFound, err)
	case errors.Is(err, wish.ErrGoalUnavailable):
		s.failStatus(w, http.StatusUnprocessableEntity, err)
	case errors.As(err, &de),
		errors.Is(err, wish.ErrSplitSum),
		errors.Is(err, wish.ErrFocusUnset),
		errors.Is(err, wish.ErrFocusRange),
		errors.Is(err, wish.ErrRateRange),
		errors.Is(err, wish.ErrPityConfig):
		s.failStatus(w, http.StatusBadRequest, err)
	default:
		s.log.Error("request failed", "error", err)
		s.failStatus(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) failStatus(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
