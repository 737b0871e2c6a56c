package room

import (
	"log"

	"github.com/palemoky/partnership-table/internal/apperrors"
	"github.com/palemoky/partnership-table/internal/events"
	"github.com/palemoky/partnership-table/internal/game"
	"github.com/palemoky/partnership-table/internal/game/user"
)

// StartGame 开局：校验准备和分队，抽牌定座并发第一手牌。
// 校验失败时原样返回 apperrors.ErrRequiresFourReadyPlayers 或 apperrors.ErrUnbalancedTeams。
func (rm *RoomManager) StartGame(code string) (*game.Game, error) {
	room, err := rm.lockRoom(code)
	if err != nil {
		return nil, err
	}
	defer room.mu.Unlock()

	if room.State != RoomStateWaiting {
		return nil, apperrors.ErrGameStarted
	}
	if err := rm.startLocked(room); err != nil {
		return nil, err
	}
	return room.game, nil
}

// startLocked 调用方持有房间写锁
func (rm *RoomManager) startLocked(room *Room) error {
	g, err := room.lobby.StartGame()
	if err != nil {
		return err
	}

	room.game = g
	room.round = g.StartRound()
	room.State = RoomStateBidding

	table := g.Table()
	log.Printf("🎲 房间 %s 开局，北 %s / 东 %s / 南 %s / 西 %s",
		room.Code,
		table.Seat(game.North).User.Name,
		table.Seat(game.East).User.Name,
		table.Seat(game.South).User.Name,
		table.Seat(game.West).User.Name,
	)

	rm.commit(room,
		events.New(events.Seating, room.Code, room.seatingPayload()),
		events.New(events.GameStarted, room.Code, events.RoundPayload{
			Dealer: room.round.Dealer().String(),
		}),
	)
	return nil
}

// RegisterBid 按顺序叫牌。四家都不叫时换下一位庄家重新发牌；有人叫"打"时进入出牌阶段。
func (rm *RoomManager) RegisterBid(u user.User, code string, bid game.Bid) (game.Bid, bool, error) {
	room, err := rm.lockRoom(code)
	if err != nil {
		return 0, false, err
	}
	defer room.mu.Unlock()

	switch room.State {
	case RoomStateBidding:
	case RoomStatePlaying:
		return 0, false, apperrors.ErrRoundResolved
	default:
		return 0, false, apperrors.ErrGameNotStart
	}

	seat, ok := room.game.Table().SeatOf(u.ID)
	if !ok {
		return 0, false, apperrors.ErrNotInRoom
	}
	if seat != room.round.NextBidder() {
		return 0, false, apperrors.ErrNotYourTurn
	}

	outcome, decided := room.round.RegisterBid(bid)
	evs := []events.Event{events.New(events.BidPlaced, code, events.BidPayload{
		PlayerID: u.ID.String(),
		Seat:     seat.String(),
		Bid:      bid.String(),
	})}

	if decided {
		switch outcome {
		case game.Play:
			room.State = RoomStatePlaying
			log.Printf("🃏 房间 %s 叫牌结束，%s 叫打", code, u.Name)
			evs = append(evs, events.New(events.RoundPlay, code, events.RoundPayload{
				Dealer:  room.round.Dealer().String(),
				Outcome: outcome.String(),
			}))
		case game.Pass:
			dealer := room.round.Dealer().Next()
			room.round = room.game.StartRoundAt(dealer)
			log.Printf("🔄 房间 %s 四家都不叫，%s 重新发牌", code, dealer)
			evs = append(evs, events.New(events.RoundRedeal, code, events.RoundPayload{
				Dealer:  dealer.String(),
				Outcome: outcome.String(),
			}))
		}
	}

	rm.commit(room, evs...)
	return outcome, decided, nil
}
