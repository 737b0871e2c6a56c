package card

import (
	"fmt"
	"strconv"
)

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

// Card 定义一张牌
type Card struct {
	Suit Suit
	Rank Rank
}

// 花色按升序排列，梅花最小
const (
	Clubs    Suit = iota // 梅花
	Diamonds             // 方块
	Hearts               // 红心
	Spades               // 黑桃
)

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Clubs:    "♣",
	Diamonds: "♦",
	Hearts:   "♥",
	Spades:   "♠",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return "?"
}

// AllSuits 按升序返回全部花色
func AllSuits() []Suit {
	return []Suit{Clubs, Diamonds, Hearts, Spades}
}

// 点数按升序排列，A 最大
const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	Ten:   "10",
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Ace:   "A",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// AllRanks 按升序返回全部点数
func AllRanks() []Rank {
	ranks := make([]Rank, 0, ranksPerSuit)
	for r := Two; r <= Ace; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}

const (
	ranksPerSuit = 13
	// DeckSize 一副牌的张数
	DeckSize = 52
)

// New 创建一张牌
func New(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// CompareBridgeValue 按桥牌抽牌规则比较两张牌：先比点数，点数相同再比花色。
// 返回 -1、0 或 1。
func (c Card) CompareBridgeValue(other Card) int {
	switch {
	case c.Rank < other.Rank:
		return -1
	case c.Rank > other.Rank:
		return 1
	case c.Suit < other.Suit:
		return -1
	case c.Suit > other.Suit:
		return 1
	}
	return 0
}

// Index 返回牌在整副牌中的序号 (0..51)，花色为主序
func (c Card) Index() int {
	return int(c.Suit)*ranksPerSuit + int(c.Rank-Two)
}

// FromIndex 根据序号还原一张牌
func FromIndex(i int) (Card, error) {
	if i < 0 || i >= DeckSize {
		return Card{}, fmt.Errorf("无效的牌序号: %d", i)
	}
	return Card{Suit: Suit(i / ranksPerSuit), Rank: Two + Rank(i%ranksPerSuit)}, nil
}
