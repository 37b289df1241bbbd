package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ChildRecord is one root child of a search report.
type ChildRecord struct {
	Move        int
	Description string
	Visits      int
	Score       float64
	WinRate     float64
}

type GameRecord struct {
	ID     int
	Agents []string
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type ThroughputRecord struct {
	SearchMetric
}

// Rate returns completed rollouts per second.
func (r ThroughputRecord) Rate() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Completed) / r.Duration.Seconds()
}

type Writer struct {
	baseDir string
}

// NewWriter creates a subdirectory of root named by the current timestamp.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteChildRecords(name string, records []ChildRecord) error {
	header := []string{"move", "description", "visits", "score", "win_rate"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Move),
			record.Description,
			strconv.Itoa(record.Visits),
			strconv.FormatFloat(record.Score, 'f', -1, 64),
			strconv.FormatFloat(record.WinRate, 'f', 4, 64),
		}
	}
	return w.write(name+".csv", "search report", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agents", "players", "winner", "points", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, len(records))
	for i, record := range records {
		points := make([]string, len(record.Points))
		for j, p := range record.Points {
			points[j] = strconv.Itoa(p)
		}
		rows[i] = []string{
			strconv.Itoa(record.ID),
			strings.Join(record.Agents, "|"),
			strconv.Itoa(record.Players),
			strconv.Itoa(record.Winner),
			strings.Join(points, "|"),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		}
	}
	return w.write("game_records.csv", "game records", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "duration", "rollouts", "wins", "losses", "dead_ends", "nodes"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Move),
			record.Duration.String(),
			strconv.Itoa(record.Completed),
			strconv.Itoa(record.Wins),
			strconv.Itoa(record.Losses),
			strconv.Itoa(record.DeadEnds),
			strconv.Itoa(record.Nodes),
		}
	}
	return w.write("move_records.csv", "move records", header, rows)
}

func (w *Writer) WriteThroughputRecords(records []ThroughputRecord) error {
	header := []string{"rollouts", "completed", "duration", "rate", "nodes", "dead_ends"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Rollouts),
			strconv.Itoa(record.Completed),
			record.Duration.String(),
			strconv.FormatFloat(record.Rate(), 'f', 1, 64),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.DeadEnds),
		}
	}
	return w.write("throughput.csv", "throughput records", header, rows)
}

func (w *Writer) write(file, what string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", what, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", what, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", what, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", what, err)
	}
	return nil
}
