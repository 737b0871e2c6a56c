package card

import "math/rand/v2"

// HandSize 每家手牌张数
const HandSize = 13

// Deck 定义一副牌
type Deck []Card

// NewDeck 按花色为主序生成 52 张不重复的牌
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for _, s := range AllSuits() {
		for _, r := range AllRanks() {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle 原地洗牌。rng 为 nil 时使用全局随机源。
func (d Deck) Shuffle(rng *rand.Rand) {
	swap := func(i, j int) { d[i], d[j] = d[j], d[i] }
	if rng == nil {
		rand.Shuffle(len(d), swap)
		return
	}
	rng.Shuffle(len(d), swap)
}

// Len 剩余张数
func (d Deck) Len() int {
	return len(d)
}

// Pop 从牌堆末尾取出一张牌
func (d *Deck) Pop() (Card, bool) {
	n := len(*d)
	if n == 0 {
		return Card{}, false
	}
	c := (*d)[n-1]
	*d = (*d)[:n-1]
	return c, true
}

// DealHands 轮流给四家发牌，每轮每家一张，共 13 轮。
// 牌堆必须是完整的 52 张，发完后牌堆为空。
func (d *Deck) DealHands() [4]Hand {
	if len(*d) != DeckSize {
		panic("card: deck exhausted")
	}

	var hands [4]Hand
	for i := range hands {
		hands[i] = NewHand()
	}
	for range HandSize {
		for i := range hands {
			c, ok := d.Pop()
			if !ok {
				panic("card: deck exhausted")
			}
			hands[i].AddCard(c)
		}
	}
	return hands
}
