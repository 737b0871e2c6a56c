package game

import (
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"

	"github.com/palemoky/partnership-table/internal/apperrors"
	"github.com/palemoky/partnership-table/internal/game/user"
)

const (
	// MaxPlayers 每桌人数
	MaxPlayers = 4
	// PlayersPerTeam 每队人数
	PlayersPerTeam = 2
)

// Lobby 开局前的等候室，最多四人，按加入顺序保存
//
// Lobby 不加锁，调用方需要保证同一时刻只有一个调用者修改它。
type Lobby struct {
	settings Settings
	players  []Player
	rng      *rand.Rand
}

// Option 大厅可选项
type Option func(*Lobby)

// WithRand 指定抽牌和发牌使用的随机源，便于复现
func WithRand(rng *rand.Rand) Option {
	return func(l *Lobby) {
		l.rng = rng
	}
}

// NewLobby 创建空大厅
func NewLobby(settings Settings, opts ...Option) *Lobby {
	l := &Lobby{
		settings: settings,
		players:  make([]Player, 0, MaxPlayers),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lobby) Settings() Settings {
	return l.settings
}

// Players 返回玩家列表副本（加入顺序）
func (l *Lobby) Players() []Player {
	return slices.Clone(l.players)
}

func (l *Lobby) Len() int {
	return len(l.players)
}

// Contains 该用户是否已在大厅中
func (l *Lobby) Contains(u user.User) bool {
	return l.indexOf(u.ID) >= 0
}

// Player 按用户 ID 查找玩家
func (l *Lobby) Player(id uuid.UUID) (Player, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.players[i], true
	}
	return Player{}, false
}

func (l *Lobby) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(l.players, func(p Player) bool {
		return p.User.ID == id
	})
}

// AddUser 加入大厅并自动分队。重复加入或大厅已满时静默忽略。
func (l *Lobby) AddUser(u user.User) {
	team := l.teamToAssignTo()

	if l.Contains(u) {
		return
	}
	if len(l.players) == MaxPlayers {
		return
	}

	l.players = append(l.players, newPlayer(u, team))
}

// DelUser 离开大厅，不在大厅中时静默忽略
func (l *Lobby) DelUser(u user.User) {
	l.players = slices.DeleteFunc(l.players, func(p Player) bool {
		return p.User.ID == u.ID
	})
}

// ChangeTeam 换队
func (l *Lobby) ChangeTeam(u user.User, team Team) {
	if i := l.indexOf(u.ID); i >= 0 {
		l.players[i].Team = team
	}
}

// ReadyUp 准备
func (l *Lobby) ReadyUp(u user.User) {
	l.setReady(u, true)
}

// Unready 取消准备
func (l *Lobby) Unready(u user.User) {
	l.setReady(u, false)
}

func (l *Lobby) setReady(u user.User, ready bool) {
	if i := l.indexOf(u.ID); i >= 0 {
		l.players[i].Ready = ready
	}
}

// ReadyCount 已准备人数
func (l *Lobby) ReadyCount() int {
	n := 0
	for _, p := range l.players {
		if p.Ready {
			n++
		}
	}
	return n
}

// BalancedTeams 两队是否各两人
func (l *Lobby) BalancedTeams() bool {
	return balanced(l.players)
}

func balanced(players []Player) bool {
	lajvarna, gottarna := teamCounts(players)
	return lajvarna == PlayersPerTeam && gottarna == PlayersPerTeam
}

func teamCounts(players []Player) (lajvarna, gottarna int) {
	for _, p := range players {
		switch p.Team {
		case Lajvarna:
			lajvarna++
		case Gottarna:
			gottarna++
		}
	}
	return lajvarna, gottarna
}

// teamToAssignTo 人数相同时优先分到 Lajvarna
func (l *Lobby) teamToAssignTo() Team {
	lajvarna, gottarna := teamCounts(l.players)
	if lajvarna <= gottarna {
		return Lajvarna
	}
	return Gottarna
}

// StartGame 开局校验：先检查四人已准备，再检查分队是否平衡。
// 通过后抽牌定座位并返回对局。
func (l *Lobby) StartGame() (*Game, error) {
	if l.ReadyCount() != MaxPlayers {
		return nil, apperrors.ErrRequiresFourReadyPlayers
	}
	if !l.BalancedTeams() {
		return nil, apperrors.ErrUnbalancedTeams
	}

	return l.Resume(NewTable(l)), nil
}

// Resume 用已确定的座位恢复对局，不做开局校验，
// 之后发牌使用大厅的随机源
func (l *Lobby) Resume(table Table) *Game {
	g := NewGame(l.settings, table)
	g.rng = l.rng
	return g
}
