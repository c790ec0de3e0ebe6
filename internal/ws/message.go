package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"job-listing/internal/viewer"
)

const (
	EventView  = "view"
	EventError = "error"

	MsgSearchInput   = "search_input"
	MsgSearchSubmit  = "search_submit"
	MsgSetCategory   = "set_category"
	MsgSetJobType    = "set_job_type"
	MsgSetRemoteOnly = "set_remote_only"
	MsgReset         = "reset"
	MsgToggle        = "toggle"
)

var ErrUnknownMessage = errors.New("unknown message type")

// Event is every frame the server writes.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Message is every frame a client may send.
type Message struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

func EncodeView(s viewer.State) ([]byte, error) {
	return json.Marshal(Event{Type: EventView, Data: viewer.Render(s)})
}

func EncodeError(err error) []byte {
	b, _ := json.Marshal(Event{Type: EventError, Data: err.Error()})
	return b
}

// Dispatch applies one client message to the session. Search input goes
// through the debouncer until submitted; every other message is applied at
// once.
func Dispatch(s *viewer.Session, raw []byte) error {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}

	switch strings.TrimSpace(msg.Type) {
	case MsgSearchInput:
		v, err := stringValue(msg.Value)
		if err != nil {
			return err
		}
		s.Input(v)
	case MsgSearchSubmit:
		if len(msg.Value) > 0 {
			v, err := stringValue(msg.Value)
			if err != nil {
				return err
			}
			s.Input(v)
		}
		s.FlushInput()
	case MsgSetCategory:
		v, err := stringValue(msg.Value)
		if err != nil {
			return err
		}
		s.SetCategory(v)
	case MsgSetJobType:
		v, err := stringValue(msg.Value)
		if err != nil {
			return err
		}
		s.SetJobType(v)
	case MsgSetRemoteOnly:
		var v bool
		if err := json.Unmarshal(msg.Value, &v); err != nil {
			return fmt.Errorf("%s expects a boolean value: %w", MsgSetRemoteOnly, err)
		}
		s.SetRemoteOnly(v)
	case MsgReset:
		s.Reset()
	case MsgToggle:
		v, err := stringValue(msg.Value)
		if err != nil {
			return err
		}
		s.Toggle(v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return nil
}

func stringValue(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("expected a string value: %w", err)
	}
	return v, nil
}
