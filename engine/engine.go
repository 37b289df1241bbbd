package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"splendor/experiments/metrics"
	"splendor/game"
)

const MaxMoves = 1000

type Engine interface {
	// Run plays a game till a round ends with a winner, no move is left or
	// MaxMoves is reached. The winner is -1 in the latter two cases.
	Run() (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// chooser returns the move index the current player wants to play, given
// the indices played so far.
type chooser func(state *game.GameState, history []int) (int, metrics.SearchMetric, error)

// play drives the turn loop shared by every engine. Illegal choices are
// replaced by the first legal move.
func play(state *game.GameState, moves *game.MoveSet, choose chooser) (*game.GameState, int, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{Players: state.Players(), Winner: -1, StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric
	var history []int

	log.Info().Msgf("player %d is starting", state.Current())

	step := 0
	for ; step < MaxMoves && !state.IsTerminal(); step++ {
		valid := moves.Valid(state)
		if len(valid) == 0 {
			log.Warn().Int("step", step).Int("player", state.Current()).Msg("no legal move left")
			break
		}

		index, metric, err := choose(state, history)
		if err != nil {
			return state, -1, gameMetric, moveMetrics, err
		}
		v, ok := validate(moves, index, state)
		if !ok {
			log.Warn().Int("move", index).Int("player", state.Current()).Msg("illegal move, playing the first legal one")
			index = valid[0]
			v, _ = moves[index].Validate(state)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       state.Current(),
			Move:         index,
			SearchMetric: metric,
		})
		log.Debug().Int("step", step).Int("player", state.Current()).Str("move", game.Describe(index)).Send()
		history = append(history, index)
		state = v.Perform()
	}

	winner := -1
	if state.IsTerminal() {
		winner = state.Leader()
		log.Info().Msgf("game ended with player %d winning at %d points", winner, state.MaxPoints())
	} else if step >= MaxMoves {
		log.Info().Msgf("stopped after %d moves (no winner yet)", MaxMoves)
	}

	gameMetric.Winner = winner
	gameMetric.TotalMoves = step
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Points = make([]int, state.Players())
	for i := range gameMetric.Points {
		gameMetric.Points[i] = state.Player(i).Points()
	}
	return state, winner, gameMetric, moveMetrics, nil
}

func validate(moves *game.MoveSet, index int, state *game.GameState) (game.Validated, bool) {
	if index < 0 || index >= game.MoveCount {
		return game.Validated{}, false
	}
	return moves[index].Validate(state)
}
