package room

// RoomState 房间状态
type RoomState int

const (
	RoomStateWaiting RoomState = iota // 等待玩家准备
	RoomStateBidding                  // 叫牌中
	RoomStatePlaying                  // 叫牌结束，进入出牌阶段
	RoomStateEnded                    // 对局中途有人离开
)

var roomStateNames = map[RoomState]string{
	RoomStateWaiting: "waiting",
	RoomStateBidding: "bidding",
	RoomStatePlaying: "playing",
	RoomStateEnded:   "ended",
}

func (s RoomState) String() string {
	if name, ok := roomStateNames[s]; ok {
		return name
	}
	return "unknown"
}
