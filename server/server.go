package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"splendor/game"
	"splendor/rng"
	"splendor/searcher"
)

const maxBodyBytes = 1 << 20

// Server answers analysis queries about standard-catalog games.
type Server struct {
	router      chi.Router
	logger      zerolog.Logger
	catalog     *game.Catalog
	moves       *game.MoveSet
	maxRollouts int
}

func New(logger zerolog.Logger, maxRollouts int) *Server {
	s := &Server{
		logger:      logger,
		catalog:     game.StandardCatalog(),
		moves:       game.NewMoveSet(),
		maxRollouts: maxRollouts,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/moves", s.handleMoves)
		r.Post("/observe", s.handleObserve)
		r.Post("/search", s.handleSearch)
	})
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("analysis server listening")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	moves := make([]MoveInfo, game.MoveCount)
	for i := range moves {
		moves[i] = MoveInfo{Index: i, Description: game.Describe(i)}
	}
	writeJSON(w, http.StatusOK, moves)
}

func (s *Server) handleObserve(w http.ResponseWriter, r *http.Request) {
	var spec GameSpec
	if err := decode(w, r, &spec); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	state, err := spec.State(s.catalog, s.moves)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, ObserveResponse{
		Observation: state.Observe(),
		Valid:       s.moves.Valid(state),
		Terminal:    state.IsTerminal(),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Rollouts <= 0 || req.Rollouts > s.maxRollouts {
		writeError(w, http.StatusBadRequest, fmt.Errorf("rollouts must be in [1, %d], got %d", s.maxRollouts, req.Rollouts))
		return
	}
	state, err := req.State(s.catalog, s.moves)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	mcts := searcher.NewMCTS(s.moves,
		searcher.WithRollouts(req.Rollouts),
		searcher.WithSource(rng.New(req.SearchSeed)),
	)
	report, _ := mcts.Search(state)

	resp := SearchResponse{Report: report, Best: -1}
	if best, ok := report.Best(); ok {
		resp.Best = best.Move
		resp.Description = game.Describe(best.Move)
	}
	hlog.FromRequest(r).Debug().Int("rollouts", req.Rollouts).Int("best", resp.Best).Msg("search")
	writeJSON(w, http.StatusOK, resp)
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid request body: trailing data")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
