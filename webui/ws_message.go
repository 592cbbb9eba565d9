package webui

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Message types exchanged on /ws/books.
const (
	// MessageTypePage is a client request for one page of books.
	MessageTypePage = "page"

	// MessageTypeBooks carries a generated page back to the client.
	MessageTypeBooks = "books"

	// MessageTypeError reports a rejected or failed request.
	MessageTypeError = "error"

	// MessageTypePing and MessageTypePong are application-level keep-alives.
	MessageTypePing = "ping"
	MessageTypePong = "pong"
)

// ClientMessage is a message sent by a browser.
type ClientMessage struct {
	Type string `json:"type"`

	// ID is echoed back so the client can match replies to requests.
	ID string `json:"id,omitempty"`

	// Params holds seed, language (or locale), likes and reviews. Values may
	// be JSON strings or numbers.
	Params map[string]any `json:"params,omitempty"`

	Page  int `json:"page"`
	Count int `json:"count"`
}

// query flattens the message into the same form /api/books accepts.
func (m ClientMessage) query() url.Values {
	q := url.Values{}
	for k, v := range m.Params {
		switch val := v.(type) {
		case nil:
		case string:
			q.Set(k, val)
		case float64:
			q.Set(k, strconv.FormatFloat(val, 'f', -1, 64))
		default:
			q.Set(k, fmt.Sprint(val))
		}
	}
	q.Set("page", strconv.Itoa(m.Page))
	if m.Count > 0 {
		q.Set("count", strconv.Itoa(m.Count))
	}
	return q
}

// WSMessage is a message sent by the server.
type WSMessage struct {
	Type      string    `json:"type"`
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	// Page is set on books messages.
	Page *int `json:"page,omitempty"`

	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// NewWSMessage creates a message stamped with the current time.
func NewWSMessage(msgType, id string, data any) WSMessage {
	return WSMessage{
		Type:      msgType,
		ID:        id,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// NewBooksMessage wraps a generated page.
func NewBooksMessage(id string, page int, books any) WSMessage {
	msg := NewWSMessage(MessageTypeBooks, id, books)
	msg.Page = &page
	return msg
}

// NewErrorMessage reports err for the request id.
func NewErrorMessage(id, message string) WSMessage {
	msg := NewWSMessage(MessageTypeError, id, nil)
	msg.Error = message
	return msg
}
