package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_SaveLoadDeleteRoom(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	roomData := &RoomData{
		Code:  "123456",
		State: 1,
		ToWin: 13,
		Players: []PlayerData{
			{ID: "p1", Name: "Player1", Team: "Lajvarna", Ready: true},
		},
		Seats:     []string{"p1", "p2", "p3", "p4"},
		Draws:     []int{0, 13, 26, 51},
		CreatedAt: time.Now().Unix(),
		Round: &RoundData{
			Dealer: 0,
			Bids:   []string{"pass"},
			Hands:  []byte{0x0a, 0x01, 0x05},
		},
	}

	// Save
	require.NoError(t, store.SaveRoom(ctx, roomData.Code, roomData))
	assert.True(t, mr.Exists("room:123456"))
	assert.Equal(t, roomExpiration, mr.TTL("room:123456"))

	// Load
	loaded, err := store.LoadRoom(ctx, roomData.Code)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, roomData, loaded)

	// Delete
	require.NoError(t, store.DeleteRoom(ctx, roomData.Code))

	loaded, err = store.LoadRoom(ctx, roomData.Code)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_SaveNilRoom(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	require.NoError(t, store.SaveRoom(context.Background(), "000000", nil))
	assert.False(t, mr.Exists("room:000000"))
}

func TestRedisStore_LoadCorruptRoom(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	require.NoError(t, mr.Set("room:999999", "{not json"))

	loaded, err := store.LoadRoom(context.Background(), "999999")
	assert.Error(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_GetAllRoomCodes(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	for _, code := range []string{"111111", "222222"} {
		require.NoError(t, store.SaveRoom(ctx, code, &RoomData{Code: code}))
	}
	require.NoError(t, mr.Set("session:p1", "x"))

	codes, err := store.GetAllRoomCodes(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"111111", "222222"}, codes)
}

func TestRedisStore_SetRoomExpiration(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRoom(ctx, "123456", &RoomData{Code: "123456"}))
	require.NoError(t, store.SetRoomExpiration(ctx, "123456", time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("room:123456"))

	mr.FastForward(2 * time.Minute)
	loaded, err := store.LoadRoom(ctx, "123456")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
