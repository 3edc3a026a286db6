package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/mcoot/battleshipgame-go/internal/model"
)

// DecodeCommand parses a raw inbound frame into a typed command.
// Malformed envelopes and unknown types are reported as protocol errors;
// no state is touched.
func DecodeCommand(raw []byte) (Command, error) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrBadPayload, err)
	}

	switch msg.Type {
	case MsgReg:
		var req regRequest
		if err := decodeData(msg.Data, &req); err != nil {
			return nil, err
		}
		return RegCommand{Name: req.Name}, nil

	case MsgCreateRoom:
		return CreateRoomCommand{}, nil

	case MsgAddUserToRoom:
		var req joinRoomRequest
		if err := decodeData(msg.Data, &req); err != nil {
			return nil, err
		}
		return JoinRoomCommand{RoomID: model.SessionID(req.IndexRoom)}, nil

	case MsgAddShips:
		var req addShipsRequest
		if err := decodeData(msg.Data, &req); err != nil {
			return nil, err
		}
		ships := make([]model.Ship, len(req.Ships))
		for i, p := range req.Ships {
			ships[i] = p.ToModel()
		}
		return AddShipsCommand{Ships: ships}, nil

	case MsgAttack:
		var req attackRequest
		if err := decodeData(msg.Data, &req); err != nil {
			return nil, err
		}
		return AttackCommand{X: req.X, Y: req.Y}, nil

	case MsgRandomAttack:
		return RandomAttackCommand{}, nil

	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownCommand, msg.Type)
	}
}

// decodeData parses the string-encoded data document of an envelope
func decodeData(data string, v any) error {
	if data == "" {
		return fmt.Errorf("%w: empty data", model.ErrBadPayload)
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("%w: %v", model.ErrBadPayload, err)
	}
	return nil
}

// Encode builds a wire frame of the given type around the payload.
// The payload is marshalled and then carried as a string, matching the
// double-encoded envelope the clients expect.
func Encode(msgType string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{
		Type: msgType,
		Data: string(data),
		ID:   0,
	})
}

// MustEncode is Encode for payloads that cannot fail to marshal. It is
// used by producers whose payload types are all plain structs; a marshal
// failure there is a programming error.
func MustEncode(msgType string, payload any) []byte {
	frame, err := Encode(msgType, payload)
	if err != nil {
		panic(fmt.Sprintf("protocol: encode %s: %v", msgType, err))
	}
	return frame
}
