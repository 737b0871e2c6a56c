package room

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/palemoky/partnership-table/internal/apperrors"
	"github.com/palemoky/partnership-table/internal/events"
	"github.com/palemoky/partnership-table/internal/game"
	"github.com/palemoky/partnership-table/internal/game/card"
	"github.com/palemoky/partnership-table/internal/game/user"
	"github.com/palemoky/partnership-table/internal/storage"
)

const (
	roomCodeLength = 6            // 房间号长度
	roomCodeChars  = "0123456789" // 房间号字符集

	storeTimeout = 2 * time.Second
)

// RoomStore 房间快照存储
type RoomStore interface {
	SaveRoom(ctx context.Context, roomCode string, data *storage.RoomData) error
	DeleteRoom(ctx context.Context, roomCode string) error
}

// Options 房间管理器配置
type Options struct {
	Settings    game.Settings     // 新房间的对局设置
	RoomTimeout time.Duration     // 等待中的房间超时时间
	NewRand     func() *rand.Rand // 每个房间的随机源，为 nil 时使用全局随机源
}

// Room 游戏房间。房间内的大厅、对局、叫牌轮都只在持有 mu 时访问。
type Room struct {
	Code      string    // 房间号
	State     RoomState // 房间状态
	CreatedAt time.Time // 创建时间

	lobby  *game.Lobby
	game   *game.Game
	round  *game.BidRound
	closed bool // 房间已解散

	mu sync.RWMutex
}

// RoomListItem 可加入房间的摘要
type RoomListItem struct {
	RoomCode    string `json:"room_code"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
}

func newRoom(code string, opts Options) *Room {
	var lobbyOpts []game.Option
	if opts.NewRand != nil {
		lobbyOpts = append(lobbyOpts, game.WithRand(opts.NewRand()))
	}
	return &Room{
		Code:      code,
		State:     RoomStateWaiting,
		CreatedAt: time.Now(),
		lobby:     game.NewLobby(opts.Settings, lobbyOpts...),
	}
}

// GetState 获取房间状态
func (r *Room) GetState() RoomState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.State
}

// PlayerCount 房间人数
func (r *Room) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lobby.Len()
}

// Players 按加入顺序返回玩家
func (r *Room) Players() []game.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lobby.Players()
}

// Settings 房间的对局设置
func (r *Room) Settings() game.Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lobby.Settings()
}

// Table 开局后的座位
func (r *Room) Table() (game.Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.game == nil {
		return game.Table{}, false
	}
	return r.game.Table(), true
}

// Dealer 当前叫牌轮的庄家
func (r *Room) Dealer() (game.Seat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.round == nil {
		return 0, apperrors.ErrGameNotStart
	}
	return r.round.Dealer(), nil
}

// Bids 当前叫牌轮的叫牌记录
func (r *Room) Bids() []game.Bid {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.round == nil {
		return nil
	}
	return r.round.Bids()
}

// NextBidder 轮到叫牌的玩家
func (r *Room) NextBidder() (game.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.State != RoomStateBidding {
		return game.Player{}, apperrors.ErrGameNotStart
	}
	return r.game.Table().Seat(r.round.NextBidder()), nil
}

// Hand 玩家在当前叫牌轮中的手牌
func (r *Room) Hand(u user.User) (card.Hand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.round == nil {
		return card.Hand{}, apperrors.ErrGameNotStart
	}
	seat, ok := r.game.Table().SeatOf(u.ID)
	if !ok {
		return card.Hand{}, apperrors.ErrNotInRoom
	}
	return r.round.Hand(seat), nil
}

// seatingPayload 座位通知，调用方持有锁
func (r *Room) seatingPayload() events.SeatingPayload {
	table := r.game.Table()
	payload := events.SeatingPayload{Seats: make([]events.SeatPayload, 0, game.MaxPlayers)}
	for _, s := range game.Seats() {
		p := table.Seat(s)
		payload.Seats = append(payload.Seats, events.SeatPayload{
			Seat:       s.String(),
			PlayerID:   p.User.ID.String(),
			PlayerName: p.User.Name,
			Team:       p.Team.String(),
			Draw:       table.Draw(s).String(),
		})
	}
	return payload
}

func playerPayload(p game.Player) events.PlayerPayload {
	return events.PlayerPayload{
		PlayerID:   p.User.ID.String(),
		PlayerName: p.User.Name,
		Team:       p.Team.String(),
		Ready:      p.Ready,
	}
}
