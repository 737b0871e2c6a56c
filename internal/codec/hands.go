// Package codec packs dealt hands into a compact protobuf wire encoding for
// snapshots. The layout mirrors a message with one repeated bytes field:
//
//	message Hands { repeated bytes hand = 1; } // each hand: packed varint card indices
package codec

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/palemoky/partnership-table/internal/game/card"
)

const handField protowire.Number = 1

// NumHands is the number of hands in an encoded deal.
const NumHands = 4

var ErrHandCount = errors.New("codec: expected four hands")

// EncodeHands encodes four hands in seat order.
func EncodeHands(hands [NumHands]card.Hand) []byte {
	var out []byte
	for _, h := range hands {
		packed := make([]byte, 0, h.Len())
		for _, c := range h.Cards() {
			packed = protowire.AppendVarint(packed, uint64(c.Index()))
		}
		out = protowire.AppendTag(out, handField, protowire.BytesType)
		out = protowire.AppendBytes(out, packed)
	}
	return out
}

// DecodeHands reverses EncodeHands.
func DecodeHands(b []byte) ([NumHands]card.Hand, error) {
	var hands [NumHands]card.Hand
	count := 0

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return hands, fmt.Errorf("codec: read tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		if num != handField || typ != protowire.BytesType {
			return hands, fmt.Errorf("codec: unexpected field %d (wire type %d)", num, typ)
		}
		packed, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return hands, fmt.Errorf("codec: read hand: %w", protowire.ParseError(n))
		}
		b = b[n:]

		if count == NumHands {
			return hands, ErrHandCount
		}
		h, err := decodeHand(packed)
		if err != nil {
			return hands, err
		}
		hands[count] = h
		count++
	}

	if count != NumHands {
		return hands, ErrHandCount
	}
	return hands, nil
}

func decodeHand(packed []byte) (card.Hand, error) {
	cards := make([]card.Card, 0, card.HandSize)
	for len(packed) > 0 {
		v, n := protowire.ConsumeVarint(packed)
		if n < 0 {
			return card.Hand{}, fmt.Errorf("codec: read card: %w", protowire.ParseError(n))
		}
		packed = packed[n:]

		c, err := card.FromIndex(int(v))
		if err != nil {
			return card.Hand{}, fmt.Errorf("codec: %w", err)
		}
		cards = append(cards, c)
	}
	return card.HandOf(cards...), nil
}
