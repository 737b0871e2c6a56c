package card

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	require.Equal(t, 52, deck.Len())

	seen := make(map[Card]bool)
	for _, c := range deck {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	for _, s := range AllSuits() {
		for _, r := range AllRanks() {
			assert.True(t, seen[New(s, r)], "missing %s", New(s, r))
		}
	}
}

func TestShuffle_DiffersFromNewDeck(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	original := slices.Clone(deck)
	deck.Shuffle(nil)

	assert.NotEqual(t, original, deck)
	assert.ElementsMatch(t, original, deck)
}

func TestShuffle_DecksDiffer(t *testing.T) {
	t.Parallel()

	d1, d2 := NewDeck(), NewDeck()
	d1.Shuffle(nil)
	d2.Shuffle(nil)

	assert.NotEqual(t, d1, d2)
}

func TestShuffle_SeededIsReproducible(t *testing.T) {
	t.Parallel()

	d1, d2 := NewDeck(), NewDeck()
	d1.Shuffle(rand.New(rand.NewPCG(7, 11)))
	d2.Shuffle(rand.New(rand.NewPCG(7, 11)))

	assert.Equal(t, d1, d2)
}

func TestPop(t *testing.T) {
	t.Parallel()

	deck := Deck{New(Clubs, Two), New(Spades, Ace)}

	c, ok := deck.Pop()
	require.True(t, ok)
	assert.Equal(t, New(Spades, Ace), c)
	assert.Equal(t, 1, deck.Len())

	_, ok = deck.Pop()
	require.True(t, ok)
	_, ok = deck.Pop()
	assert.False(t, ok)
}

func TestDealHands(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	deck.Shuffle(rand.New(rand.NewPCG(1, 2)))
	original := slices.Clone(deck)

	hands := deck.DealHands()

	assert.Equal(t, 0, deck.Len())
	var dealt []Card
	for _, h := range hands {
		assert.Equal(t, 13, h.Len())
		dealt = append(dealt, h.Cards()...)
	}
	assert.ElementsMatch(t, original, dealt)
}

func TestDealHands_RoundRobin(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	top := slices.Clone(deck[len(deck)-4:])

	hands := deck.DealHands()

	// 第一轮依次从牌堆末尾各取一张
	assert.Equal(t, top[3], hands[0].Cards()[0])
	assert.Equal(t, top[2], hands[1].Cards()[0])
	assert.Equal(t, top[1], hands[2].Cards()[0])
	assert.Equal(t, top[0], hands[3].Cards()[0])
}

func TestDealHands_PanicsOnShortDeck(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	_, _ = deck.Pop()

	assert.PanicsWithValue(t, "card: deck exhausted", func() {
		deck.DealHands()
	})
}
