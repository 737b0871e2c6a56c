package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/partnership-table/internal/game/card"
)

func TestNewBidRound(t *testing.T) {
	t.Parallel()

	r := NewBidRound(North, nil)

	assert.Equal(t, North, r.Dealer())
	assert.Empty(t, r.Bids())

	seen := make(map[card.Card]bool)
	for _, s := range Seats() {
		h := r.Hand(s)
		assert.Equal(t, 13, h.Len())
		for _, c := range h.Cards() {
			assert.False(t, seen[c])
			seen[c] = true
		}
	}
	assert.Len(t, seen, 52)
}

func TestRegisterBid_PlayResolvesImmediately(t *testing.T) {
	t.Parallel()

	r := NewBidRound(North, nil)
	outcome, ok := r.RegisterBid(Play)

	require.True(t, ok)
	assert.Equal(t, Play, outcome)
}

func TestRegisterBid_PlayAfterPasses(t *testing.T) {
	t.Parallel()

	r := NewBidRound(North, nil)
	_, ok := r.RegisterBid(Pass)
	require.False(t, ok)
	_, ok = r.RegisterBid(Pass)
	require.False(t, ok)

	outcome, ok := r.RegisterBid(Play)
	require.True(t, ok)
	assert.Equal(t, Play, outcome)
	assert.Equal(t, []Bid{Pass, Pass, Play}, r.Bids())
}

func TestRegisterBid_FourPasses(t *testing.T) {
	t.Parallel()

	r := NewBidRound(North, nil)
	for range 3 {
		_, ok := r.RegisterBid(Pass)
		assert.False(t, ok)
	}

	outcome, ok := r.RegisterBid(Pass)
	require.True(t, ok)
	assert.Equal(t, Pass, outcome)
}

func TestBidRound_Outcome(t *testing.T) {
	t.Parallel()

	r := NewBidRound(North, nil)
	_, ok := r.Outcome()
	assert.False(t, ok)

	r.RegisterBid(Pass)
	r.RegisterBid(Play)
	outcome, ok := r.Outcome()
	require.True(t, ok)
	assert.Equal(t, Play, outcome)
}

func TestBidRound_NextBidder(t *testing.T) {
	t.Parallel()

	r := NewBidRound(West, nil)
	assert.Equal(t, North, r.NextBidder())
	r.RegisterBid(Pass)
	assert.Equal(t, East, r.NextBidder())
	r.RegisterBid(Pass)
	assert.Equal(t, South, r.NextBidder())
}

func TestRestoreBidRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		bids       []Bid
		wantBidder Seat
	}{
		{"no bids yet", nil, South},
		{"one pass", []Bid{Pass}, West},
		{"three passes", []Bid{Pass, Pass, Pass}, East},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			orig := NewBidRound(East, nil)
			for _, b := range tt.bids {
				orig.RegisterBid(b)
			}

			restored := RestoreBidRound(orig.Dealer(), orig.Hands(), orig.Bids())
			assert.Equal(t, orig.Hands(), restored.Hands())
			assert.Equal(t, orig.Bids(), restored.Bids())
			assert.Equal(t, tt.wantBidder, restored.NextBidder())
			assert.Equal(t, orig.NextBidder(), restored.NextBidder())
		})
	}
}

func TestRestoreBidRound_ResumesAuction(t *testing.T) {
	t.Parallel()

	orig := NewBidRound(North, nil)
	orig.RegisterBid(Pass)
	orig.RegisterBid(Pass)

	restored := RestoreBidRound(orig.Dealer(), orig.Hands(), orig.Bids())
	_, ok := restored.RegisterBid(Pass)
	assert.False(t, ok)
	outcome, ok := restored.RegisterBid(Pass)
	require.True(t, ok)
	assert.Equal(t, Pass, outcome)
}

func TestParseBid(t *testing.T) {
	t.Parallel()

	for _, b := range []Bid{Pass, Play} {
		got, err := ParseBid(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
	_, err := ParseBid("double")
	assert.Error(t, err)
}
