package room

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/palemoky/partnership-table/internal/apperrors"
	"github.com/palemoky/partnership-table/internal/events"
	"github.com/palemoky/partnership-table/internal/game"
	"github.com/palemoky/partnership-table/internal/game/user"
)

// RoomManager 房间管理器
//
// 锁顺序：先房间锁，后管理器锁；持有管理器锁时不获取房间锁。
type RoomManager struct {
	store     RoomStore
	publisher events.Publisher
	opts      Options
	rooms     map[string]*Room
	mu        sync.RWMutex

	done      chan struct{}
	closeOnce sync.Once
}

// NewRoomManager 创建房间管理器。store 为 nil 时不持久化，publisher 为 nil 时不推送事件。
func NewRoomManager(store RoomStore, publisher events.Publisher, opts Options) *RoomManager {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	rm := &RoomManager{
		store:     store,
		publisher: publisher,
		opts:      opts,
		rooms:     make(map[string]*Room),
		done:      make(chan struct{}),
	}

	// 启动房间清理协程
	go rm.cleanupLoop()

	return rm
}

// CreateRoom 创建房间，创建者自动加入
func (rm *RoomManager) CreateRoom(u user.User) (*Room, error) {
	rm.mu.Lock()
	code := rm.generateRoomCode()
	room := newRoom(code, rm.opts)
	room.lobby.AddUser(u)
	// 房间还未发布，持有管理器锁时加房间锁不会有竞争
	room.mu.Lock()
	rm.rooms[code] = room
	rm.mu.Unlock()
	defer room.mu.Unlock()

	p, _ := room.lobby.Player(u.ID)
	rm.commit(room, events.New(events.RoomCreated, code, playerPayload(p)))

	log.Printf("🏠 房间 %s 已创建，玩家 %s", code, u.Name)

	return room, nil
}

// JoinRoom 加入房间，已在房间中时直接返回
func (rm *RoomManager) JoinRoom(u user.User, code string) (*Room, error) {
	room, err := rm.lockRoom(code)
	if err != nil {
		return nil, err
	}
	defer room.mu.Unlock()

	if room.lobby.Contains(u) {
		return room, nil
	}
	if room.State != RoomStateWaiting {
		return nil, apperrors.ErrGameStarted
	}

	room.lobby.AddUser(u)
	p, ok := room.lobby.Player(u.ID)
	if !ok {
		return nil, apperrors.ErrRoomFull
	}

	log.Printf("👤 玩家 %s 加入房间 %s (%s)", u.Name, code, p.Team)

	rm.commit(room, events.New(events.PlayerJoined, code, playerPayload(p)))
	return room, nil
}

// LeaveRoom 离开房间。对局开始后离开会结束对局，房间空了则解散。
func (rm *RoomManager) LeaveRoom(u user.User, code string) error {
	room, err := rm.lockRoom(code)
	if err != nil {
		return err
	}
	defer room.mu.Unlock()

	p, ok := room.lobby.Player(u.ID)
	if !ok {
		return apperrors.ErrNotInRoom
	}

	room.lobby.DelUser(u)
	if room.State == RoomStateBidding || room.State == RoomStatePlaying {
		room.State = RoomStateEnded
		room.game = nil
		room.round = nil
		log.Printf("🚪 玩家 %s 中途离开，房间 %s 对局结束", u.Name, code)
	}

	log.Printf("👋 玩家 %s 离开房间 %s", u.Name, code)

	if room.lobby.Len() == 0 {
		rm.dissolve(room)
		log.Printf("🏠 房间 %s 已解散", code)
		return nil
	}

	rm.commit(room, events.New(events.PlayerLeft, code, playerPayload(p)))
	return nil
}

// ChangeTeam 换队，仅在等待阶段允许
func (rm *RoomManager) ChangeTeam(u user.User, code string, team game.Team) error {
	room, err := rm.lockRoom(code)
	if err != nil {
		return err
	}
	defer room.mu.Unlock()

	if err := room.checkWaitingMember(u); err != nil {
		return err
	}

	room.lobby.ChangeTeam(u, team)
	p, _ := room.lobby.Player(u.ID)
	rm.commit(room, events.New(events.TeamChanged, code, playerPayload(p)))

	rm.tryAutoStart(room)
	return nil
}

// SetPlayerReady 设置玩家准备状态。四人都准备后尝试自动开局。
func (rm *RoomManager) SetPlayerReady(u user.User, code string, ready bool) error {
	room, err := rm.lockRoom(code)
	if err != nil {
		return err
	}
	defer room.mu.Unlock()

	if err := room.checkWaitingMember(u); err != nil {
		return err
	}

	if ready {
		room.lobby.ReadyUp(u)
	} else {
		room.lobby.Unready(u)
	}
	p, _ := room.lobby.Player(u.ID)
	rm.commit(room, events.New(events.PlayerReady, code, playerPayload(p)))

	rm.tryAutoStart(room)
	return nil
}

// tryAutoStart 所有人都准备好后尝试开局，调用方持有房间写锁
func (rm *RoomManager) tryAutoStart(room *Room) {
	if room.lobby.ReadyCount() != game.MaxPlayers {
		return
	}
	if err := rm.startLocked(room); err != nil {
		log.Printf("⏸️ 房间 %s 暂不能开局: %v", room.Code, err)
	}
}

// GetRoom 获取房间
func (rm *RoomManager) GetRoom(code string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[code]
}

// GetRoomList 获取可加入的房间列表
func (rm *RoomManager) GetRoomList() []RoomListItem {
	var rooms []RoomListItem
	for _, room := range rm.snapshotRooms() {
		room.mu.RLock()
		// 只返回等待中且未满的房间
		if !room.closed && room.State == RoomStateWaiting && room.lobby.Len() < game.MaxPlayers {
			rooms = append(rooms, RoomListItem{
				RoomCode:    room.Code,
				PlayerCount: room.lobby.Len(),
				MaxPlayers:  game.MaxPlayers,
			})
		}
		room.mu.RUnlock()
	}
	return rooms
}

// GetRoomByPlayerID 通过玩家 ID 获取房间
func (rm *RoomManager) GetRoomByPlayerID(playerID uuid.UUID) *Room {
	for _, room := range rm.snapshotRooms() {
		room.mu.RLock()
		_, exists := room.lobby.Player(playerID)
		closed := room.closed
		room.mu.RUnlock()
		if exists && !closed {
			return room
		}
	}
	return nil
}

// GetActiveGamesCount 获取叫牌或出牌中的房间数量
func (rm *RoomManager) GetActiveGamesCount() int {
	count := 0
	for _, room := range rm.snapshotRooms() {
		switch room.GetState() {
		case RoomStateBidding, RoomStatePlaying:
			count++
		}
	}
	return count
}

// lockRoom 查找房间并加写锁，调用方负责解锁
func (rm *RoomManager) lockRoom(code string) (*Room, error) {
	room := rm.GetRoom(code)
	if room == nil {
		return nil, apperrors.ErrRoomNotFound
	}
	room.mu.Lock()
	if room.closed {
		room.mu.Unlock()
		return nil, apperrors.ErrRoomNotFound
	}
	return room, nil
}

func (rm *RoomManager) snapshotRooms() []*Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	rooms := make([]*Room, 0, len(rm.rooms))
	for _, room := range rm.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// checkWaitingMember 调用方持有锁
func (r *Room) checkWaitingMember(u user.User) error {
	if !r.lobby.Contains(u) {
		return apperrors.ErrNotInRoom
	}
	if r.State != RoomStateWaiting {
		return apperrors.ErrGameStarted
	}
	return nil
}
