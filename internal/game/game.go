package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/palemoky/partnership-table/internal/game/user"
)

// Settings 对局设置，目前只有目标分数，原样传递给计分逻辑
type Settings struct {
	ToWin uint8
}

// Team 搭档队伍，仅作标签，没有大小之分
type Team int

const (
	Lajvarna Team = iota
	Gottarna
)

func (t Team) String() string {
	switch t {
	case Lajvarna:
		return "Lajvarna"
	case Gottarna:
		return "Gottarna"
	default:
		return "Unknown"
	}
}

// ParseTeam 从字符串解析队伍
func ParseTeam(s string) (Team, error) {
	switch s {
	case "Lajvarna":
		return Lajvarna, nil
	case "Gottarna":
		return Gottarna, nil
	}
	return 0, fmt.Errorf("无效的队伍: %q", s)
}

// Player 大厅中的玩家：身份、所属队伍、是否准备
type Player struct {
	User  user.User
	Team  Team
	Ready bool
}

func newPlayer(u user.User, team Team) Player {
	return Player{User: u, Team: team}
}

// Game 大厅开局后生成的不可变对局：设置 + 座位
type Game struct {
	settings Settings
	table    Table
	rng      *rand.Rand
}

// NewGame 用设置和座位构造对局
func NewGame(settings Settings, table Table) *Game {
	return &Game{settings: settings, table: table}
}

func (g *Game) Settings() Settings {
	return g.settings
}

func (g *Game) Table() Table {
	return g.table
}

// StartRound 以北家为庄开始新一轮叫牌
func (g *Game) StartRound() *BidRound {
	return g.StartRoundAt(North)
}

// StartRoundAt 以指定座位为庄重新洗牌发牌，开始新一轮叫牌
func (g *Game) StartRoundAt(dealer Seat) *BidRound {
	return NewBidRound(dealer, g.rng)
}
