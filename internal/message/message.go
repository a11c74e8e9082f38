// Package message defines the clipx IPC protocol spoken between the daemon
// and the CLI sub-commands (history, clear, status) over the local socket.
//
// All messages are newline-delimited JSON, one message per line. History
// entries embed internal/entry's JSON form, so image payloads are base64 and
// safe inside JSON strings.
package message

import (
	"encoding/json"
	"fmt"
	"time"

	"go.clipx.app/clipx/internal/entry"
)

// Type identifies the kind of message.
type Type string

const (
	// Requests.
	TypeHistory  Type = "HISTORY"
	TypeClear    Type = "CLEAR"
	TypeDelete   Type = "DELETE"
	TypeStatus   Type = "STATUS"
	TypeTakeover Type = "TAKEOVER"

	// Responses.
	TypeHistoryResponse Type = "HISTORY_RESPONSE"
	TypeStatusResponse  Type = "STATUS_RESPONSE"
	TypeOK              Type = "OK"
	TypeError           Type = "ERROR"
)

// Status describes a running daemon, used in STATUS responses.
type Status struct {
	PID         int       `json:"pid"`
	Version     string    `json:"version"`
	StartedAt   time.Time `json:"started_at"`
	HistoryLen  int       `json:"history_len"`
	Trusted     bool      `json:"trusted"`
	HotkeyReady bool      `json:"hotkey_ready"`
}

// Message is the top-level wire envelope.
type Message struct {
	Type Type `json:"type"`

	// DELETE: index into the history, most recent first.
	Index int `json:"index,omitempty"`

	// HISTORY: cap the number of entries returned; 0 means all.
	Limit int `json:"limit,omitempty"`

	// HISTORY_RESPONSE
	Entries []entry.Entry `json:"entries,omitempty"`

	// STATUS_RESPONSE
	Status *Status `json:"status,omitempty"`

	// ERROR
	Error string `json:"error,omitempty"`
}

// Encode serialises the message to JSON without a trailing newline.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode deserialises a message from raw JSON bytes.
func Decode(b []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("message decode: %w", err)
	}
	return &m, nil
}

// Err builds an ERROR response.
func Err(err error) *Message {
	return &Message{Type: TypeError, Error: err.Error()}
}

// OK builds an OK response.
func OK() *Message { return &Message{Type: TypeOK} }
