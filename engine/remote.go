package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/server"
)

// Remote plays a standard-catalog game whose seats are analysis servers.
// Every turn the current seat receives the seed and move history and
// answers with its best move.
type Remote struct {
	State    *game.GameState
	players  int
	seed     uint64
	urls     []string
	rollouts int
	moves    *game.MoveSet
	client   *http.Client
}

func NewRemote(players int, seed uint64, urls []string, rollouts int) (*Remote, error) {
	if len(urls) != players {
		return nil, fmt.Errorf("number of players (%d) does not match number of agent URLs (%d)", players, len(urls))
	}
	moves := game.NewMoveSet()
	state, err := server.GameSpec{Players: players, Seed: seed}.State(game.StandardCatalog(), moves)
	if err != nil {
		return nil, err
	}
	return &Remote{
		State:    state,
		players:  players,
		seed:     seed,
		urls:     urls,
		rollouts: rollouts,
		moves:    moves,
		client:   &http.Client{Timeout: time.Minute},
	}, nil
}

func (e *Remote) Run() (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	final, winner, gameMetric, moveMetrics, err := play(e.State, e.moves, e.requestMove)
	e.State = final
	return winner, gameMetric, moveMetrics, err
}

// requestMove posts the game so far to the current player's /api/v1/search.
func (e *Remote) requestMove(state *game.GameState, history []int) (int, metrics.SearchMetric, error) {
	start := time.Now()
	req := server.SearchRequest{
		GameSpec:   server.GameSpec{Players: e.players, Seed: e.seed, Moves: slices.Clone(history)},
		Rollouts:   e.rollouts,
		SearchSeed: e.seed + uint64(len(history)),
	}
	body, err := json.Marshal(req)
	if err != nil {
		return 0, metrics.SearchMetric{}, fmt.Errorf("failed to encode search request: %w", err)
	}

	url := e.urls[state.Current()] + "/api/v1/search"
	resp, err := e.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, metrics.SearchMetric{}, fmt.Errorf("failed to reach agent %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return 0, metrics.SearchMetric{}, fmt.Errorf("agent %s returned status %d: %s", url, resp.StatusCode, out)
	}

	var sr server.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return 0, metrics.SearchMetric{}, fmt.Errorf("failed to decode search response: %w", err)
	}
	metric := metrics.SearchMetric{
		StartTime: start,
		Duration:  time.Since(start),
		Rollouts:  e.rollouts,
		Completed: sr.Report.Visits(),
		Nodes:     sr.Report.Nodes,
	}
	return sr.Best, metric, nil
}
