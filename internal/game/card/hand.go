package card

import (
	"slices"
	"strings"
)

// Hand 一家的手牌，保持发牌顺序
type Hand struct {
	cards []Card
}

// NewHand 创建空手牌
func NewHand() Hand {
	return Hand{cards: make([]Card, 0, HandSize)}
}

// HandOf 用给定的牌构造手牌
func HandOf(cards ...Card) Hand {
	h := NewHand()
	h.cards = append(h.cards, cards...)
	return h
}

// AddCard 追加一张牌
func (h *Hand) AddCard(c Card) {
	h.cards = append(h.cards, c)
}

func (h Hand) Len() int {
	return len(h.cards)
}

// Cards 返回手牌副本
func (h Hand) Cards() []Card {
	return slices.Clone(h.cards)
}

// Contains 手牌中是否有这张牌
func (h Hand) Contains(c Card) bool {
	return slices.Contains(h.cards, c)
}

func (h Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
