package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/partnership-table/internal/game/user"
)

func TestNewGame(t *testing.T) {
	t.Parallel()

	l, _ := fullLobby(t)
	table := NewTable(l)
	g := NewGame(Settings{ToWin: 13}, table)

	assert.Equal(t, Settings{ToWin: 13}, g.Settings())
	assert.Equal(t, table, g.Table())
}

func TestGame_StartRound(t *testing.T) {
	t.Parallel()

	l, _ := fullLobby(t)
	g := NewGame(l.Settings(), NewTable(l))

	r := g.StartRound()
	assert.Empty(t, r.Bids())
	assert.Equal(t, North, r.Dealer())

	redeal := g.StartRoundAt(East)
	assert.Equal(t, East, redeal.Dealer())
}

func TestLobbyToRound_Seeded(t *testing.T) {
	t.Parallel()

	users := newUsers("A", "B", "C", "D")
	play := func() *BidRound {
		l := NewLobby(Settings{ToWin: 7}, WithRand(rand.New(rand.NewPCG(42, 1))))
		for _, u := range users {
			l.AddUser(u)
			l.ReadyUp(u)
		}
		g, err := l.StartGame()
		require.NoError(t, err)
		return g.StartRound()
	}

	assert.Equal(t, play().Hands(), play().Hands())
}

func TestTeamString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Lajvarna", Lajvarna.String())
	assert.Equal(t, "Gottarna", Gottarna.String())
	assert.Equal(t, "John", newPlayer(user.New("John"), Gottarna).User.String())
}

func TestParseTeam(t *testing.T) {
	t.Parallel()

	for _, team := range []Team{Lajvarna, Gottarna} {
		got, err := ParseTeam(team.String())
		require.NoError(t, err)
		assert.Equal(t, team, got)
	}

	for _, s := range []string{"", "lajvarna", "Unknown"} {
		_, err := ParseTeam(s)
		assert.Error(t, err, s)
	}
}

func TestLobby_Resume(t *testing.T) {
	t.Parallel()

	users := newUsers("A", "B", "C", "D")
	newSeededLobby := func() *Lobby {
		l := NewLobby(Settings{ToWin: 7}, WithRand(rand.New(rand.NewPCG(9, 9))))
		for _, u := range users {
			l.AddUser(u)
		}
		return l
	}

	l := newSeededLobby()
	table := NewTable(l)

	// No readiness or balance checks: the seats were settled before.
	resumed := l.Resume(table)
	assert.Equal(t, table, resumed.Table())
	assert.Equal(t, Settings{ToWin: 7}, resumed.Settings())

	// Deals keep drawing from the lobby's source.
	again := newSeededLobby()
	_ = NewTable(again)
	assert.Equal(t, again.Resume(table).StartRound().Hands(), resumed.StartRound().Hands())
}
