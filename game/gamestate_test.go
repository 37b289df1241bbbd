package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"splendor/rng"
)

func TestNewGameState(t *testing.T) {
	t.Run("two player game", func(t *testing.T) {
		s := newTestState(t, 2)

		require.Equal(t, Holdings{4, 4, 4, 4, 4, 5}, s.Bank(), "Bank should hold 4 of each color and 5 gold")
		require.Equal(t, 2, s.Players(), "Game should seat 2 players")
		require.Equal(t, 0, s.Current(), "First player should start")
		require.Len(t, s.Nobles(), 2, "Nobles in play should equal the player count")

		hidden := []int{36, 23, 16}
		for tier := 0; tier < Tiers; tier++ {
			row := s.Row(Tier(tier))
			require.Equal(t, 4, row.Len(), "Each tier should show 4 cards")
			require.Equal(t, hidden[tier], row.Hidden(), "Remaining cards should be hidden")
			for _, c := range row.Visible() {
				require.Equal(t, Tier(tier), c.Tier, "Row should only hold cards of its tier")
			}
		}
		for i := 0; i < 2; i++ {
			p := s.Player(i)
			require.Equal(t, Holdings{}, p.Holdings(), "Players should start with no tokens")
			require.Equal(t, 0, p.Points(), "Players should start with no points")
		}
	})

	t.Run("bank size depends on player count", func(t *testing.T) {
		for players, want := range map[int]uint8{3: 5, 4: 7} {
			s := newTestState(t, players)
			require.Equal(t, Holdings{want, want, want, want, want, 5}, s.Bank())
			require.Len(t, s.Nobles(), players)
		}
	})

	t.Run("unsupported player count", func(t *testing.T) {
		for _, players := range []int{0, 1, 5} {
			_, err := NewGameState(StandardCatalog(), players, rng.New(1))
			require.ErrorIs(t, err, ErrPlayerCount, "Player count %d should be rejected", players)
		}
	})

	t.Run("same seed deals the same game", func(t *testing.T) {
		a, err := NewGameState(StandardCatalog(), 3, rng.New(9))
		require.NoError(t, err)
		b, err := NewGameState(StandardCatalog(), 3, rng.New(9))
		require.NoError(t, err)

		require.Equal(t, a, b, "Dealing should depend only on the source")
	})
}

func TestStandardCatalog(t *testing.T) {
	c := StandardCatalog()

	require.Len(t, c.Cards, 87)
	require.Len(t, c.Nobles, 10)
	require.Len(t, c.Tier(Tier1), 40)
	require.Len(t, c.Tier(Tier2), 27)
	require.Len(t, c.Tier(Tier3), 20)
	for i, card := range c.Cards {
		require.Equal(t, i, card.ID, "Card IDs should match catalog positions")
	}
	require.Equal(t, Cost{0, 0, 4, 0, 4}, c.Nobles[0].Cost)
	require.Equal(t, Cost{1, 1, 1, 1, 0}, c.Cards[0].Cost)
	require.Equal(t, Black, c.Cards[0].Production)
}

func TestGameStateLaws(t *testing.T) {
	t.Run("performing a move never alters its input", func(t *testing.T) {
		moves := NewMoveSet()
		playRandom(newTestState(t, 2), 5, 400, func(before, _ *GameState, _ int) {
			snapshot := cloneState(before)
			for _, i := range moves.Valid(before) {
				v, ok := moves[i].Validate(before)
				require.True(t, ok)
				v.Perform()
				require.Equal(t, snapshot, before, "Move %s should not mutate its input", moves[i])
			}
		})
	})

	t.Run("earlier states survive later transitions", func(t *testing.T) {
		s := newTestState(t, 3)
		snapshot := cloneState(s)

		playRandom(s, 11, 300, nil)
		playRandom(s, 12, 300, nil)

		require.Equal(t, snapshot, s, "Descendant states should not write into their ancestors")
	})

	t.Run("holdings never exceed the cap", func(t *testing.T) {
		for players := MinPlayers; players <= MaxPlayers; players++ {
			playRandom(newTestState(t, players), uint64(players), 500, func(_, after *GameState, _ int) {
				for i := 0; i < after.Players(); i++ {
					require.LessOrEqual(t, after.Player(i).Holdings().Total(), MaxHoldings)
					require.LessOrEqual(t, after.Player(i).ReserveSize(), MaxReserve)
				}
			})
		}
	})

	t.Run("every move advances the turn exactly once", func(t *testing.T) {
		for players := MinPlayers; players <= MaxPlayers; players++ {
			s := newTestState(t, players)
			b := newBuilder(s)
			b.current = players - 1
			start := b.build()

			k := 0
			playRandom(start, 3, 200, func(before, after *GameState, _ int) {
				k++
				require.Equal(t, (before.Current()+1)%players, after.Current())
				require.Equal(t, (players-1+k)%players, after.Current(), "Turn pointer should equal (p+k) mod n")
			})
		}
	})

	t.Run("builder round trip without edits", func(t *testing.T) {
		s := playRandom(newTestState(t, 4), 8, 60, nil)

		require.Equal(t, s, newBuilder(s).build(), "Rebuilding without edits should give an equal state")
	})

	t.Run("token conservation", func(t *testing.T) {
		playRandom(newTestState(t, 2), 21, 400, func(_, after *GameState, _ int) {
			var total Holdings
			for i := 0; i < after.Players(); i++ {
				for c, n := range after.Player(i).Holdings() {
					total[c] += n
				}
			}
			for c := 0; c < Colors; c++ {
				total[c] += after.Bank()[c]
				require.LessOrEqual(t, int(total[c]), 4, "Colored tokens should never be created")
			}
			require.LessOrEqual(t, int(total[Gold]+after.Bank()[Gold]), StartingGold, "Gold should never be created")
		})
	})
}

func TestTerminal(t *testing.T) {
	s := newTestState(t, 2)
	b := newBuilder(s)
	b.player().points = WinningPoints
	b.finalize()
	mid := b.build()

	require.Equal(t, WinningPoints, mid.MaxPoints())
	require.False(t, mid.IsTerminal(), "Game should not end before the round is complete")

	b = newBuilder(mid)
	b.finalize()
	end := b.build()
	require.True(t, end.IsTerminal(), "Game should end when the round completes")
	require.Equal(t, 0, end.Leader())
	require.Equal(t, 1, end.LastMover())
}
