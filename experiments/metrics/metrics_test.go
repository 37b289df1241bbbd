package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting outcomes", func(t *testing.T) {
		c := NewCollector()
		c.Start(5)
		c.AddWin()
		c.AddWin()
		c.AddLoss()
		c.AddDeadEnd()

		got := c.Complete(17)

		require.Equal(t, 5, got.Rollouts)
		require.Equal(t, 4, got.Completed, "Should count every outcome")
		require.Equal(t, 2, got.Wins)
		require.Equal(t, 2, got.Losses, "Should count dead ends as losses")
		require.Equal(t, 1, got.DeadEnds)
		require.Equal(t, 17, got.Nodes)
	})

	t.Run("restarting resets counters", func(t *testing.T) {
		c := NewCollector()
		c.Start(1)
		c.AddWin()
		c.Start(1)

		require.Equal(t, 0, c.Complete(0).Wins)
	})

	t.Run("dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(3)
		c.AddWin()

		require.Equal(t, SearchMetric{}, c.Complete(10))
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	t.Run("writing a search report", func(t *testing.T) {
		err := w.WriteChildRecords("report", []ChildRecord{
			{Move: 0, Description: "Get 3: Green, Blue, Red", Visits: 4, Score: 2, WinRate: 0.75},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "report.csv"))
		require.Equal(t, []string{"move", "description", "visits", "score", "win_rate"}, rows[0])
		require.Equal(t, []string{"0", "Get 3: Green, Blue, Red", "4", "2", "0.7500"}, rows[1])
	})

	t.Run("writing game and move records", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		err := w.WriteGameRecords([]GameRecord{{
			ID:     1,
			Agents: []string{"mcts", "random"},
			GameMetric: GameMetric{
				Players: 2, Winner: 0, Points: []int{15, 9},
				StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalMoves: 40,
			},
		}})
		require.NoError(t, err)
		err = w.WriteMoveRecords([]MoveRecord{{Game: 1, MoveMetric: MoveMetric{Step: 1, Player: 0, Move: 12}}})
		require.NoError(t, err)

		games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, games, 2)
		require.Equal(t, "mcts|random", games[1][1])
		require.Equal(t, "15|9", games[1][4])

		moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, moves, 2)
		require.Equal(t, "12", moves[1][3])
	})

	t.Run("writing throughput records", func(t *testing.T) {
		err := w.WriteThroughputRecords([]ThroughputRecord{
			{SearchMetric{Rollouts: 100, Completed: 100, Duration: 2 * time.Second, Nodes: 900}},
			{SearchMetric{Rollouts: 10}},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "throughput.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{"100", "100", "2s", "50.0", "900", "0"}, rows[1])
		require.Equal(t, "0.0", rows[2][3], "Zero duration should give a zero rate")
	})
}
