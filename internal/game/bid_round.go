package game

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/palemoky/partnership-table/internal/game/card"
)

// Bid 叫牌：不叫 或 打
type Bid int

const (
	Pass Bid = iota
	Play
)

func (b Bid) String() string {
	switch b {
	case Pass:
		return "pass"
	case Play:
		return "play"
	default:
		return "unknown"
	}
}

// ParseBid 从字符串解析叫牌
func ParseBid(s string) (Bid, error) {
	switch s {
	case "pass":
		return Pass, nil
	case "play":
		return Play, nil
	}
	return 0, fmt.Errorf("无效的叫牌: %q", s)
}

// BidRound 一轮叫牌：新发的四手牌、庄家座位、按顺序记录的叫牌
//
// 叫牌顺序由调用方保证，这里不校验轮次和次数。
type BidRound struct {
	hands  [MaxPlayers]card.Hand
	dealer Seat
	bids   []Bid
}

// NewBidRound 用一副新洗好的牌发牌并开始叫牌
func NewBidRound(dealer Seat, rng *rand.Rand) *BidRound {
	deck := card.NewDeck()
	deck.Shuffle(rng)
	return newBidRound(dealer, deck.DealHands())
}

func newBidRound(dealer Seat, hands [MaxPlayers]card.Hand) *BidRound {
	return &BidRound{
		hands:  hands,
		dealer: dealer,
		bids:   make([]Bid, 0, MaxPlayers),
	}
}

// RestoreBidRound 从保存的数据恢复叫牌状态
func RestoreBidRound(dealer Seat, hands [MaxPlayers]card.Hand, bids []Bid) *BidRound {
	r := newBidRound(dealer, hands)
	r.bids = append(r.bids, bids...)
	return r
}

// RegisterBid 记录一次叫牌。有人叫"打"立即结束，结果为 Play；
// 四家都不叫时结果为 Pass；否则返回 false 表示尚未决出。
func (r *BidRound) RegisterBid(b Bid) (Bid, bool) {
	r.bids = append(r.bids, b)

	if b == Play {
		return Play, true
	}
	if len(r.bids) == MaxPlayers {
		return Pass, true
	}
	return 0, false
}

// Outcome 根据已有叫牌计算结果
func (r *BidRound) Outcome() (Bid, bool) {
	if slices.Contains(r.bids, Play) {
		return Play, true
	}
	if len(r.bids) >= MaxPlayers {
		return Pass, true
	}
	return 0, false
}

// Bids 返回叫牌记录副本
func (r *BidRound) Bids() []Bid {
	return slices.Clone(r.bids)
}

func (r *BidRound) Dealer() Seat {
	return r.dealer
}

// NextBidder 下一个应叫牌的座位，从庄家下家开始顺时针
func (r *BidRound) NextBidder() Seat {
	return (r.dealer + 1 + Seat(len(r.bids))) % MaxPlayers
}

// Hands 按座位返回四手牌
func (r *BidRound) Hands() [MaxPlayers]card.Hand {
	return r.hands
}

func (r *BidRound) Hand(s Seat) card.Hand {
	return r.hands[s]
}
