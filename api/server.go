// Package api provides the HTTP JSON API for feedwatch.
//
// It exposes the watchlist, one-shot scans, quotes and per-ticker analysis
// over the same components the CLI uses.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/seenimoa/feedwatch/internal/analysis"
	"github.com/seenimoa/feedwatch/internal/config"
	"github.com/seenimoa/feedwatch/internal/datasource"
	"github.com/seenimoa/feedwatch/internal/logger"
	"github.com/seenimoa/feedwatch/internal/store"
	"github.com/seenimoa/feedwatch/pkg/models"
	"github.com/seenimoa/feedwatch/pkg/utils"
)

// upstreamTimeout bounds feed and quote calls made on behalf of one request.
const upstreamTimeout = 60 * time.Second

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	store   *store.Store
	feeds   *datasource.Feeds
	quotes  *datasource.YFinance
	version string

	// mu serialises watchlist read-modify-write cycles.
	mu sync.Mutex
}

// Options wires the server's collaborators.
type Options struct {
	Config  *config.Config
	Store   *store.Store
	Feeds   *datasource.Feeds
	Quotes  *datasource.YFinance
	Version string
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(opts Options) *Server {
	srv := &Server{
		cfg:     opts.Config,
		store:   opts.Store,
		feeds:   opts.Feeds,
		quotes:  opts.Quotes,
		version: opts.Version,
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("api server listening", "addr", addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Infow("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/config", s.handleGetConfig)

		// Watchlist
		r.Get("/watchlist", s.handleWatchlist)
		r.Post("/feeds", s.handleAddFeed)
		r.Delete("/feeds", s.handleRemoveFeed)
		r.Post("/tickers", s.handleAddTicker)
		r.Delete("/tickers/{symbol}", s.handleRemoveTicker)

		// Analysis
		r.Get("/scan", s.handleScan)
		r.Get("/analyze/{symbol}", s.handleAnalyze)
		r.Get("/quote/{symbol}", s.handleQuote)
	})

	return r
}

// requestLogger logs one line per request through the process logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Infow("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// ── Request / response types ──

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// FeedRequest is the body for POST /api/v1/feeds.
type FeedRequest struct {
	URL string `json:"url"`
}

// TickerRequest is the body for POST /api/v1/tickers.
type TickerRequest struct {
	Symbol      string `json:"symbol"`
	CompanyName string `json:"company_name,omitempty"`
}

// ChangeResponse reports whether a watchlist mutation changed anything.
type ChangeResponse struct {
	Changed   bool             `json:"changed"`
	Watchlist *store.Watchlist `json:"watchlist"`
}

// ScoredMatch is one match with its sentiment.
type ScoredMatch struct {
	models.Match
	Score models.SentimentScore `json:"score"`
}

// ScanResponse is returned by GET /api/v1/scan.
type ScanResponse struct {
	Articles    int                   `json:"articles"`
	FailedFeeds []string              `json:"failed_feeds,omitempty"`
	Matches     []ScoredMatch         `json:"matches"`
	Reports     []models.TickerReport `json:"reports"`
}

// AnalyzeResponse is returned by GET /api/v1/analyze/{symbol}.
type AnalyzeResponse struct {
	Ticker       models.TrackedTicker `json:"ticker"`
	Prices       []models.DailyPrice  `json:"prices"`
	PriceError   string               `json:"price_error,omitempty"`
	Correlations []models.Correlation `json:"correlations"`
	Report       *models.TickerReport `json:"report,omitempty"`
}

// ── Handlers ──

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":  "ok",
			"version": s.version,
			"time":    time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	wl, err := s.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: wl})
}

func (s *Server) handleAddFeed(w http.ResponseWriter, r *http.Request) {
	var req FeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mutate(w, func(wl *store.Watchlist) (bool, error) {
		return wl.AddFeed(req.URL)
	})
}

func (s *Server) handleRemoveFeed(w http.ResponseWriter, r *http.Request) {
	u := r.URL.Query().Get("url")
	if u == "" {
		writeError(w, http.StatusBadRequest, "url query parameter is required")
		return
	}
	s.mutate(w, func(wl *store.Watchlist) (bool, error) {
		return wl.RemoveFeed(u), nil
	})
}

func (s *Server) handleAddTicker(w http.ResponseWriter, r *http.Request) {
	var req TickerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mutate(w, func(wl *store.Watchlist) (bool, error) {
		return wl.AddTicker(req.Symbol, req.CompanyName)
	})
}

func (s *Server) handleRemoveTicker(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	s.mutate(w, func(wl *store.Watchlist) (bool, error) {
		return wl.RemoveTicker(symbol), nil
	})
}

// mutate loads the watchlist, applies fn and saves when something changed.
func (s *Server) mutate(w http.ResponseWriter, fn func(*store.Watchlist) (bool, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wl, err := s.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	changed, err := fn(wl)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrInvalidSymbol) || errors.Is(err, store.ErrInvalidURL) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}
	if changed {
		if err := s.store.Save(wl); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    ChangeResponse{Changed: changed, Watchlist: wl},
	})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	wl, err := s.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), upstreamTimeout)
	defer cancel()

	results, err := s.feeds.FetchAll(ctx, wl.Feeds)
	if err != nil {
		writeError(w, http.StatusGatewayTimeout, err.Error())
		return
	}
	articles := datasource.Articles(results)
	res := analysis.NewScanner(s.cfg.Sentiment.Lexicon()).Scan(articles, wl.Tickers)

	resp := ScanResponse{
		Articles: len(articles),
		Matches:  make([]ScoredMatch, len(res.Matches)),
		Reports:  res.Reports,
	}
	for i, m := range res.Matches {
		resp.Matches[i] = ScoredMatch{Match: m, Score: res.Scores[i]}
	}
	for _, fr := range results {
		if fr.Err != nil {
			resp.FailedFeeds = append(resp.FailedFeeds, fr.URL)
		}
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: resp})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	wl, err := s.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	ticker, ok := wl.Ticker(chi.URLParam(r, "symbol"))
	if !ok {
		writeError(w, http.StatusNotFound, "ticker is not being tracked")
		return
	}

	days := s.cfg.Quotes.HistoryDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), upstreamTimeout)
	defer cancel()

	resp := AnalyzeResponse{Ticker: ticker}
	history, err := s.quotes.GetHistory(ctx, ticker.Symbol, days)
	if err != nil {
		resp.PriceError = err.Error()
	} else {
		resp.Prices = history.Prices
	}

	results, err := s.feeds.FetchAll(ctx, wl.Feeds)
	if err != nil {
		writeError(w, http.StatusGatewayTimeout, err.Error())
		return
	}
	scanner := analysis.NewScanner(s.cfg.Sentiment.Lexicon())
	res := scanner.Scan(datasource.Articles(results), []models.TrackedTicker{ticker})
	resp.Correlations = scanner.Correlate(res.Matches, resp.Prices)
	if len(res.Reports) > 0 {
		resp.Report = &res.Reports[0]
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: resp})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	symbol := utils.NormalizeTicker(chi.URLParam(r, "symbol"))
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	quote, err := s.quotes.GetQuote(ctx, symbol)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, datasource.ErrTickerNotFound) || errors.Is(err, datasource.ErrNoData) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: quote})
}

// ── Helpers ──

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warnw("failed to write JSON response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	if status >= http.StatusInternalServerError {
		logger.Errorw("api request failed", "status", status, "error", msg)
	}
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
