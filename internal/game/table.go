package game

import (
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"

	"github.com/palemoky/partnership-table/internal/game/card"
)

// Seat 座位，按顺时针排列
type Seat int

const (
	North Seat = iota
	East
	South
	West
)

var seatNames = [...]string{"North", "East", "South", "West"}

func (s Seat) String() string {
	if s >= North && s <= West {
		return seatNames[s]
	}
	return "Unknown"
}

// Next 顺时针下一个座位
func (s Seat) Next() Seat {
	return (s + 1) % MaxPlayers
}

// Seats 按顺时针返回全部座位
func Seats() []Seat {
	return []Seat{North, East, South, West}
}

// Table 开局时抽牌确定的座位，之后不再变化
type Table struct {
	seats [MaxPlayers]Player
	draws [MaxPlayers]card.Card
}

type playerDraw struct {
	player Player
	card   card.Card
}

// NewTable 为大厅中的四名玩家抽牌定座。
// 调用前大厅必须恰好四人且两队各两人，否则 panic。
func NewTable(l *Lobby) Table {
	return newTable(l.players, l.rng)
}

func newTable(players []Player, rng *rand.Rand) Table {
	if len(players) != MaxPlayers || !balanced(players) {
		panic("game: table requires four players, two per team")
	}

	draws := highCardDraws(players, rng)

	// 以抽牌排序后的第一位（最小的牌）所在队伍作为南北方
	anchor := draws[0].player.Team

	var anchorSide, otherSide []playerDraw
	for _, d := range draws {
		if d.player.Team == anchor {
			anchorSide = append(anchorSide, d)
		} else {
			otherSide = append(otherSide, d)
		}
	}

	var t Table
	t.place(North, anchorSide[0])
	t.place(South, anchorSide[1])
	t.place(East, otherSide[0])
	t.place(West, otherSide[1])
	return t
}

// RestoreTable 按座位顺序恢复之前抽牌得到的座位
func RestoreTable(seats [MaxPlayers]Player, draws [MaxPlayers]card.Card) Table {
	return Table{seats: seats, draws: draws}
}

func (t *Table) place(s Seat, d playerDraw) {
	t.seats[s] = d.player
	t.draws[s] = d.card
}

// highCardDraws 每人从新洗好的牌中抽一张，按桥牌大小升序排列
func highCardDraws(players []Player, rng *rand.Rand) []playerDraw {
	deck := card.NewDeck()
	deck.Shuffle(rng)

	draws := make([]playerDraw, 0, len(players))
	for _, p := range players {
		c, ok := deck.Pop()
		if !ok {
			panic("card: deck exhausted")
		}
		draws = append(draws, playerDraw{player: p, card: c})
	}

	slices.SortStableFunc(draws, func(a, b playerDraw) int {
		return a.card.CompareBridgeValue(b.card)
	})
	return draws
}

// Seat 返回该座位上的玩家
func (t Table) Seat(s Seat) Player {
	return t.seats[s]
}

// Draw 返回该座位玩家抽到的牌
func (t Table) Draw(s Seat) card.Card {
	return t.draws[s]
}

// Players 按座位顺序返回四名玩家
func (t Table) Players() [MaxPlayers]Player {
	return t.seats
}

// SeatOf 查找用户所在座位
func (t Table) SeatOf(id uuid.UUID) (Seat, bool) {
	for _, s := range Seats() {
		if t.seats[s].User.ID == id {
			return s, true
		}
	}
	return 0, false
}
