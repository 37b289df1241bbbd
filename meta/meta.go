// meta/meta.go
package meta

// PLAYERS defines the default number of seats.
const PLAYERS = 2

// ROLLOUTS defines the number of rollouts per MCTS search.
const ROLLOUTS = 200

// MAX_ROLLOUTS caps the rollouts a single analysis request may ask for.
const MAX_ROLLOUTS = 5000

// SEED defines the default seed for dealing and searching.
const SEED = 42

// GAMES defines the number of games per match up or generated samples.
const GAMES = 10

// MOVE_LIMIT defines the longest random game kept for synthetic data.
const MOVE_LIMIT = 200

// MAX_DEPTH defines how many rounds the labeller searches.
const MAX_DEPTH = 1

// ADDR defines the listen address of the analysis server.
const ADDR = ":8080"

// OUTPUT defines the root directory of experiment records.
const OUTPUT = "results"
