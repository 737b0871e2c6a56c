package room

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	"github.com/palemoky/partnership-table/internal/events"
)

const cleanupInterval = 1 * time.Minute

// commit 保存房间快照并依次推送事件，调用方持有房间写锁
func (rm *RoomManager) commit(room *Room, evs ...events.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if rm.store != nil {
		if err := rm.store.SaveRoom(ctx, room.Code, room.toRoomData()); err != nil {
			log.Printf("⚠️ 保存房间 %s 失败: %v", room.Code, err)
		}
	}
	for _, e := range evs {
		if err := rm.publisher.Publish(ctx, e); err != nil {
			log.Printf("⚠️ 推送事件 %s (房间 %s) 失败: %v", e.Type, e.RoomCode, err)
		}
	}
}

// dissolve 解散房间，调用方持有房间写锁
func (rm *RoomManager) dissolve(room *Room) {
	room.closed = true

	rm.mu.Lock()
	delete(rm.rooms, room.Code)
	rm.mu.Unlock()

	if rm.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := rm.store.DeleteRoom(ctx, room.Code); err != nil {
		log.Printf("⚠️ 删除房间 %s 失败: %v", room.Code, err)
	}
}

// generateRoomCode 生成房间号，调用方持有管理器写锁
func (rm *RoomManager) generateRoomCode() string {
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.IntN(len(roomCodeChars))]
		}
		codeStr := string(code)
		if _, exists := rm.rooms[codeStr]; !exists {
			return codeStr
		}
	}
}

// Close 停止后台清理
func (rm *RoomManager) Close() {
	rm.closeOnce.Do(func() { close(rm.done) })
}

// cleanupLoop 定期清理超时房间
func (rm *RoomManager) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rm.done:
			return
		case <-ticker.C:
			rm.cleanup()
		}
	}
}

// cleanup 清理等待超时和中途结束的房间
func (rm *RoomManager) cleanup() {
	now := time.Now()

	for _, room := range rm.snapshotRooms() {
		room.mu.Lock()
		expired := room.State == RoomStateWaiting &&
			rm.opts.RoomTimeout > 0 &&
			now.Sub(room.CreatedAt) > rm.opts.RoomTimeout
		if !room.closed && (expired || room.State == RoomStateEnded) {
			rm.dissolve(room)
			log.Printf("🧹 房间 %s 已清理 (%s)", room.Code, room.State)
		}
		room.mu.Unlock()
	}
}
