package room

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/palemoky/partnership-table/internal/storage"
)

// brokenSnapshotTTL 无法恢复的快照保留一段时间供排查
const brokenSnapshotTTL = 10 * time.Minute

// SnapshotSource 可列出并读取房间快照的存储
type SnapshotSource interface {
	GetAllRoomCodes(ctx context.Context) ([]string, error)
	LoadRoom(ctx context.Context, code string) (*storage.RoomData, error)
	SetRoomExpiration(ctx context.Context, code string, expiration time.Duration) error
}

// Restore 从快照恢复房间，返回恢复的房间数。
// 内存中已有的房间不会被覆盖；无法重建的快照缩短过期时间后跳过。
func (rm *RoomManager) Restore(ctx context.Context, src SnapshotSource) (int, error) {
	codes, err := src.GetAllRoomCodes(ctx)
	if err != nil {
		return 0, fmt.Errorf("列出房间快照失败: %w", err)
	}

	restored := 0
	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return restored, err
		}

		data, err := src.LoadRoom(ctx, code)
		if err != nil {
			log.Printf("⚠️ 读取房间 %s 快照失败: %v", code, err)
			continue
		}
		if data == nil {
			continue // 列出后已过期
		}

		if data.Code != code {
			err = fmt.Errorf("快照房间号 %q 与键不符", data.Code)
		}
		var room *Room
		if err == nil {
			room, err = fromRoomData(data, rm.opts)
		}
		if err != nil {
			log.Printf("⚠️ 房间 %s 快照无法恢复: %v", code, err)
			if err := src.SetRoomExpiration(ctx, code, brokenSnapshotTTL); err != nil {
				log.Printf("⚠️ 设置房间 %s 过期时间失败: %v", code, err)
			}
			continue
		}

		state, players := room.State, room.lobby.Len()
		rm.mu.Lock()
		_, exists := rm.rooms[code]
		if !exists {
			rm.rooms[code] = room
		}
		rm.mu.Unlock()
		if exists {
			continue
		}

		restored++
		log.Printf("♻️ 房间 %s 已恢复 (%s, %d 人)", code, state, players)
	}
	return restored, nil
}
