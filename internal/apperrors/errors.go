package apperrors

import "errors"

// 错误码
const (
	CodeUnknown                  = 1000
	CodeRoomNotFound             = 2001
	CodeRoomFull                 = 2002
	CodeNotInRoom                = 2003
	CodeGameStarted              = 2004
	CodeGameNotStart             = 3001
	CodeNotYourTurn              = 3002
	CodeRoundResolved            = 3003
	CodeRequiresFourReadyPlayers = 3010
	CodeUnbalancedTeams          = 3011
)

// GameError 游戏错误（大厅和房间共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 开局校验错误
var (
	ErrRequiresFourReadyPlayers = &GameError{Code: CodeRequiresFourReadyPlayers, Message: "需要四名已准备的玩家"}
	ErrUnbalancedTeams          = &GameError{Code: CodeUnbalancedTeams, Message: "两队人数必须各为两人"}
)

// 房间错误
var (
	ErrRoomNotFound  = &GameError{Code: CodeRoomNotFound, Message: "房间不存在"}
	ErrRoomFull      = &GameError{Code: CodeRoomFull, Message: "房间已满"}
	ErrNotInRoom     = &GameError{Code: CodeNotInRoom, Message: "您不在房间中"}
	ErrGameStarted   = &GameError{Code: CodeGameStarted, Message: "游戏已开始"}
	ErrGameNotStart  = &GameError{Code: CodeGameNotStart, Message: "游戏尚未开始"}
	ErrNotYourTurn   = &GameError{Code: CodeNotYourTurn, Message: "还没轮到您"}
	ErrRoundResolved = &GameError{Code: CodeRoundResolved, Message: "本轮叫牌已结束"}
)

// Code 提取错误码，非 GameError 返回 CodeUnknown
func Code(err error) int {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return CodeUnknown
}
