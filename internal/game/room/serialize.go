package room

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/partnership-table/internal/codec"
	"github.com/palemoky/partnership-table/internal/game"
	"github.com/palemoky/partnership-table/internal/game/card"
	"github.com/palemoky/partnership-table/internal/game/user"
	"github.com/palemoky/partnership-table/internal/storage"
)

// toRoomData 将 Room 转换为可序列化的 RoomData，调用方持有锁
func (r *Room) toRoomData() *storage.RoomData {
	players := r.lobby.Players()
	data := &storage.RoomData{
		Code:      r.Code,
		State:     int(r.State),
		ToWin:     r.lobby.Settings().ToWin,
		Players:   make([]storage.PlayerData, 0, len(players)),
		CreatedAt: r.CreatedAt.Unix(),
	}

	for _, p := range players {
		data.Players = append(data.Players, storage.PlayerData{
			ID:    p.User.ID.String(),
			Name:  p.User.Name,
			Team:  p.Team.String(),
			Ready: p.Ready,
		})
	}

	if r.game != nil {
		table := r.game.Table()
		for _, s := range game.Seats() {
			data.Seats = append(data.Seats, table.Seat(s).User.ID.String())
			data.Draws = append(data.Draws, table.Draw(s).Index())
		}
	}

	if r.round != nil {
		bids := r.round.Bids()
		round := &storage.RoundData{
			Dealer: int(r.round.Dealer()),
			Bids:   make([]string, len(bids)),
			Hands:  codec.EncodeHands(r.round.Hands()),
		}
		for i, b := range bids {
			round.Bids[i] = b.String()
		}
		data.Round = round
	}

	return data
}

// fromRoomData 由快照重建房间。返回的房间尚未加入管理器，不需要加锁。
func fromRoomData(data *storage.RoomData, opts Options) (*Room, error) {
	state := RoomState(data.State)
	if _, ok := roomStateNames[state]; !ok {
		return nil, fmt.Errorf("未知的房间状态: %d", data.State)
	}
	if len(data.Players) > game.MaxPlayers {
		return nil, fmt.Errorf("玩家人数异常: %d", len(data.Players))
	}

	opts.Settings = game.Settings{ToWin: data.ToWin}
	room := newRoom(data.Code, opts)
	room.State = state
	room.CreatedAt = time.Unix(data.CreatedAt, 0)

	for _, pd := range data.Players {
		id, err := uuid.Parse(pd.ID)
		if err != nil {
			return nil, fmt.Errorf("玩家 ID %q 无效: %w", pd.ID, err)
		}
		team, err := game.ParseTeam(pd.Team)
		if err != nil {
			return nil, err
		}

		u := user.User{ID: id, Name: pd.Name}
		room.lobby.AddUser(u)
		room.lobby.ChangeTeam(u, team)
		if pd.Ready {
			room.lobby.ReadyUp(u)
		}
	}
	if room.lobby.Len() != len(data.Players) {
		return nil, errors.New("玩家 ID 重复")
	}

	if len(data.Seats) > 0 {
		table, err := restoreTable(room.lobby, data.Seats, data.Draws)
		if err != nil {
			return nil, err
		}
		room.game = room.lobby.Resume(table)
	}

	if data.Round != nil {
		if room.game == nil {
			return nil, errors.New("有叫牌数据但没有座位")
		}
		round, err := restoreRound(data.Round)
		if err != nil {
			return nil, err
		}
		room.round = round
	}

	outcome, decided := game.Bid(0), false
	if room.round != nil {
		outcome, decided = room.round.Outcome()
	}
	switch state {
	case RoomStateBidding:
		if room.round == nil || decided {
			return nil, errors.New("叫牌中的房间叫牌数据不一致")
		}
	case RoomStatePlaying:
		if room.round == nil || !decided || outcome != game.Play {
			return nil, errors.New("出牌阶段的房间缺少叫打记录")
		}
	}

	return room, nil
}

func restoreTable(lobby *game.Lobby, seats []string, draws []int) (game.Table, error) {
	if len(seats) != game.MaxPlayers || len(draws) != game.MaxPlayers {
		return game.Table{}, fmt.Errorf("座位数据不完整: %d 个座位, %d 张牌", len(seats), len(draws))
	}

	var players [game.MaxPlayers]game.Player
	var cards [game.MaxPlayers]card.Card
	for i := range players {
		id, err := uuid.Parse(seats[i])
		if err != nil {
			return game.Table{}, fmt.Errorf("座位玩家 ID %q 无效: %w", seats[i], err)
		}
		p, ok := lobby.Player(id)
		if !ok {
			return game.Table{}, fmt.Errorf("座位玩家 %s 不在房间中", id)
		}
		c, err := card.FromIndex(draws[i])
		if err != nil {
			return game.Table{}, err
		}
		players[i], cards[i] = p, c
	}
	return game.RestoreTable(players, cards), nil
}

func restoreRound(rd *storage.RoundData) (*game.BidRound, error) {
	if rd.Dealer < int(game.North) || rd.Dealer > int(game.West) {
		return nil, fmt.Errorf("庄家座位无效: %d", rd.Dealer)
	}
	hands, err := codec.DecodeHands(rd.Hands)
	if err != nil {
		return nil, err
	}
	bids := make([]game.Bid, 0, len(rd.Bids))
	for _, s := range rd.Bids {
		b, err := game.ParseBid(s)
		if err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return game.RestoreBidRound(game.Seat(rd.Dealer), hands, bids), nil
}
