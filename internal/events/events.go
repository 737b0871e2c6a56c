// Package events describes the room lifecycle notifications a host relays to
// clients and to whatever runs the play phase.
package events

import (
	"context"
	"time"
)

// Type names an event.
type Type string

const (
	RoomCreated  Type = "room_created"
	PlayerJoined Type = "player_joined"
	PlayerLeft   Type = "player_left"
	TeamChanged  Type = "team_changed"
	PlayerReady  Type = "player_ready"
	GameStarted  Type = "game_started"
	Seating      Type = "seating"
	BidPlaced    Type = "bid_placed"
	RoundRedeal  Type = "round_redeal"
	RoundPlay    Type = "round_play"
)

// Event is a single notification about one room.
type Event struct {
	Type     Type      `json:"type"`
	RoomCode string    `json:"room_code"`
	At       time.Time `json:"at"`
	Payload  any       `json:"payload,omitempty"`
}

// New stamps an event with the current time.
func New(t Type, roomCode string, payload any) Event {
	return Event{Type: t, RoomCode: roomCode, At: time.Now().UTC(), Payload: payload}
}

// PlayerPayload accompanies join/leave/team/ready events.
type PlayerPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Team       string `json:"team,omitempty"`
	Ready      bool   `json:"ready"`
}

// SeatPayload is one seat of a table.
type SeatPayload struct {
	Seat       string `json:"seat"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Team       string `json:"team"`
	Draw       string `json:"draw"`
}

// SeatingPayload accompanies Seating.
type SeatingPayload struct {
	Seats []SeatPayload `json:"seats"`
}

// BidPayload accompanies BidPlaced.
type BidPayload struct {
	PlayerID string `json:"player_id"`
	Seat     string `json:"seat"`
	Bid      string `json:"bid"`
}

// RoundPayload accompanies GameStarted, RoundRedeal and RoundPlay.
type RoundPayload struct {
	Dealer  string `json:"dealer"`
	Outcome string `json:"outcome,omitempty"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
