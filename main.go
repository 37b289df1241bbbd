package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"splendor/engine"
	"splendor/experiments"
	"splendor/experiments/metrics"
	"splendor/features"
	"splendor/game"
	"splendor/meta"
	"splendor/rng"
	"splendor/searcher"
	"splendor/server"
	"splendor/store"
	"splendor/synthetic"
)

const usage = `usage: splendor [-log-level level] <command> [flags]

commands:
  search    search a position and print the root statistics
  play      play match ups between agents and record the games
  bench     measure search throughput
  generate  generate labelled positions into a SQLite database
  replay    replay the random game behind a seed or a stored sample
  serve     run the analysis HTTP server`

func main() {
	level := flag.String("log-level", "info", "zerolog level (debug, info, warn, error)")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	if lvl, err := zerolog.ParseLevel(*level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", *level).Msg("unknown log level, using info")
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	commands := map[string]func([]string) error{
		"search":   runSearch,
		"play":     runPlay,
		"bench":    runBench,
		"generate": runGenerate,
		"replay":   runReplay,
		"serve":    runServe,
	}
	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		flag.Usage()
		os.Exit(2)
	}
	if err := cmd(flag.Args()[1:]); err != nil {
		log.Fatal().Err(err).Str("command", flag.Arg(0)).Msg("command failed")
	}
}

func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	players := fs.Int("players", meta.PLAYERS, "number of players")
	seed := fs.Uint64("seed", meta.SEED, "seed that deals the game")
	history := fs.String("moves", "", "comma separated move indices played since the deal")
	rollouts := fs.Int("rollouts", meta.ROLLOUTS, "rollouts per search")
	searchSeed := fs.Uint64("search-seed", meta.SEED, "seed of the search")
	exploration := fs.Float64("c", searcher.Exploration, "UCB1 exploration constant")
	out := fs.String("out", "", "directory to write the report CSV to")
	fs.Parse(args)

	moves := game.NewMoveSet()
	indices, err := parseInts(*history)
	if err != nil {
		return err
	}
	state, err := server.GameSpec{Players: *players, Seed: *seed, Moves: indices}.State(game.StandardCatalog(), moves)
	if err != nil {
		return err
	}

	mcts := searcher.NewMCTS(moves,
		searcher.WithRollouts(*rollouts),
		searcher.WithExploration(*exploration),
		searcher.WithSource(rng.New(*searchSeed)),
		searcher.WithMetrics(),
	)
	report, metric := mcts.Search(state)
	if len(report.Children) == 0 {
		fmt.Println("no legal move")
		return nil
	}

	children := report.Children
	sort.SliceStable(children, func(i, j int) bool { return children[i].Value() > children[j].Value() })
	fmt.Printf("player %d to move, %d rollouts in %s (%d nodes, %d dead ends)\n",
		state.Current(), metric.Completed, metric.Duration, metric.Nodes, metric.DeadEnds)
	for _, child := range children {
		fmt.Printf("%3d  %-48s visits=%-6d value=%+.3f\n", child.Move, game.Describe(child.Move), child.Visits, child.Value())
	}

	if *out == "" {
		return nil
	}
	writer, err := metrics.NewWriter(*out)
	if err != nil {
		return err
	}
	records := make([]metrics.ChildRecord, len(children))
	for i, child := range children {
		records[i] = metrics.ChildRecord{
			Move:        child.Move,
			Description: game.Describe(child.Move),
			Visits:      child.Visits,
			Score:       child.Score,
			WinRate:     child.WinRate,
		}
	}
	return writer.WriteChildRecords("search", records)
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	players := fs.Int("players", meta.PLAYERS, "number of players")
	games := fs.Int("games", meta.GAMES, "games per match up")
	rollouts := fs.String("rollouts", strconv.Itoa(meta.ROLLOUTS), "comma separated rollout budgets, one match up each")
	opponent := fs.String("opponent", "random", "kind of the other seats (random, mcts or train)")
	seed := fs.Uint64("seed", meta.SEED, "base seed")
	out := fs.String("out", meta.OUTPUT, "root directory of the records")
	remote := fs.String("remote", "", "comma separated analysis server URLs, one per seat; plays a single remote game")
	fs.Parse(args)

	budgets, err := parseInts(*rollouts)
	if err != nil {
		return err
	}
	if len(budgets) == 0 {
		return errors.New("at least one rollout budget is required")
	}

	if *remote != "" {
		e, err := engine.NewRemote(*players, *seed, strings.Split(*remote, ","), budgets[0])
		if err != nil {
			return err
		}
		winner, gm, _, err := e.Run()
		if err != nil {
			return err
		}
		fmt.Printf("winner: %d after %d moves, points %v\n", winner, gm.TotalMoves, gm.Points)
		return nil
	}

	var matchUps [][]experiments.AgentConfig
	for _, budget := range budgets {
		matchUp := []experiments.AgentConfig{{Name: "mcts", Kind: "mcts", Rollouts: budget}}
		for seat := 1; seat < *players; seat++ {
			matchUp = append(matchUp, experiments.AgentConfig{
				Name:        fmt.Sprintf("seat%d", seat),
				Kind:        *opponent,
				Rollouts:    budget,
				Temperature: 1.0,
			})
		}
		matchUps = append(matchUps, matchUp)
	}

	summaries, dir, err := experiments.RunMatches(*out, matchUps, *games, *seed)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		fmt.Printf("%v wins=%v unfinished=%d\n", s.Agents, s.Wins, s.Unfinished)
	}
	fmt.Printf("records written to %s\n", dir)
	return nil
}

func runBench(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	players := fs.Int("players", meta.PLAYERS, "number of players")
	rollouts := fs.String("rollouts", "10,100,1000", "comma separated rollout budgets")
	seed := fs.Uint64("seed", meta.SEED, "seed")
	out := fs.String("out", meta.OUTPUT, "root directory of the records")
	fs.Parse(args)

	budgets, err := parseInts(*rollouts)
	if err != nil {
		return err
	}
	_, err = experiments.RunThroughput(*out, *players, budgets, *seed)
	return err
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	dbPath := fs.String("db", "samples.db", "SQLite database path")
	resume := fs.String("run", "", "run ID to resume from its latest checkpoint")
	games := fs.Int("games", meta.GAMES, "total samples of the run")
	batch := fs.Int("batch", 100, "samples per checkpoint")
	players := fs.Int("players", meta.PLAYERS, "number of players")
	seed := fs.Uint64("seed", meta.SEED, "generator seed")
	encoderName := fs.String("encoder", "parameter", "row encoder (parameter or onehot)")
	moveLimit := fs.Int("move-limit", meta.MOVE_LIMIT, "longest game kept")
	maxDepth := fs.Int("max-depth", meta.MAX_DEPTH, "rounds searched by the labeller")
	fs.Parse(args)

	db, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return err
	}

	var run *store.Run
	var source *rng.PCG
	done := 0
	if *resume != "" {
		if run, err = db.GetRun(*resume); err != nil {
			return err
		}
		snapshot, n, err := db.LatestCheckpoint(run.ID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			source = rng.New(run.Seed)
		case err != nil:
			return err
		default:
			if source, err = rng.FromSnapshot(snapshot); err != nil {
				return err
			}
			done = n
		}
		log.Info().Str("run", run.ID).Int("samples", done).Msg("resuming run")
	} else {
		run = &store.Run{Seed: *seed, Players: *players, Encoder: *encoderName, MoveLimit: *moveLimit, MaxDepth: *maxDepth}
		if err := db.CreateRun(run); err != nil {
			return err
		}
		source = rng.New(run.Seed)
		log.Info().Str("run", run.ID).Msg("created run")
	}

	encoder, err := features.ByName(run.Encoder)
	if err != nil {
		return err
	}
	gen := synthetic.NewGenerator(game.StandardCatalog(), run.Players, source, encoder, run.MoveLimit, run.MaxDepth)

	for done < *games {
		n := min(*batch, *games-done)
		samples, err := gen.Generate(n)
		if err != nil {
			return err
		}
		if err := db.SaveSamples(run.ID, samples); err != nil {
			return err
		}
		done += n
		snapshot, err := source.Snapshot()
		if err != nil {
			return err
		}
		if err := db.SaveCheckpoint(run.ID, done, snapshot); err != nil {
			return err
		}
		log.Info().Str("run", run.ID).Int("samples", done).Int("total", *games).Msg("checkpoint saved")
	}
	fmt.Println(run.ID)
	return nil
}

func runReplay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	dbPath := fs.String("db", "", "SQLite database holding the run")
	runID := fs.String("run", "", "run whose sample to replay")
	index := fs.Int("index", 0, "sample index within the run, or offset added to -seed")
	seed := fs.Uint64("seed", meta.SEED, "base seed when no database is given")
	players := fs.Int("players", meta.PLAYERS, "number of players when no database is given")
	winnerOnly := fs.Bool("winner-only", false, "print only the winner's moves")
	fs.Parse(args)

	var source *rng.PCG
	n := *players
	if *dbPath != "" {
		db, err := store.Open(*dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		run, err := db.GetRun(*runID)
		if err != nil {
			return err
		}
		samples, err := db.LoadSamples(run.ID)
		if err != nil {
			return err
		}
		if *index < 0 || *index >= len(samples) {
			return fmt.Errorf("sample index %d is out of bounds (run has %d)", *index, len(samples))
		}
		if source, err = rng.FromSnapshot(samples[*index].Snapshot); err != nil {
			return err
		}
		n = run.Players
	} else {
		source = rng.New(*seed + uint64(*index))
	}

	steps, played, err := synthetic.Replay(game.StandardCatalog(), n, source)
	if err != nil {
		return err
	}
	winner := played.Winner()
	for _, step := range steps {
		if *winnerOnly && step.Player != winner {
			continue
		}
		fmt.Printf("Move %d: Player %d - %s\n  -> %s\n", step.Number, step.Player, step.Description, step.After)
	}
	fmt.Printf("Player %d wins with %d points after %d moves\n", winner, played.Final.Player(winner).Points(), len(steps))
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", meta.ADDR, "listen address")
	maxRollouts := fs.Int("max-rollouts", meta.MAX_ROLLOUTS, "largest rollout budget per request")
	fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.New(log.Logger, *maxRollouts).ListenAndServe(ctx, *addr)
}

func parseInts(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}
