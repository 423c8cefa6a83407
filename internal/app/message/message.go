/*
Package message builds the chat messages relayed to clients.

A Message is an immutable value: it is created once, stamped with the time of
formatting, and passed by value from then on.
*/
package message

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// AdminSender is the sender label of server-generated notices.
const AdminSender = "Admin"

// mapsURL is the link template used for shared locations.
const mapsURL = "https://google.com/maps?q=%s,%s"

// Kind distinguishes plain text from shared locations.
type Kind string

const (
	KindText     Kind = "text"
	KindLocation Kind = "location"
)

// Now is the clock used to stamp messages. Tests may replace it.
var Now = time.Now

// Message is a formatted chat message.
type Message struct {
	Kind      Kind
	Sender    string
	Text      string
	CreatedAt time.Time
}

// wireMessage is the payload shape of the message and locationMessage events.
type wireMessage struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"`
}

// MarshalJSON encodes the message with createdAt as epoch milliseconds.
// Kind is not part of the payload; it selects the event name instead.
func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireMessage{
		Sender:    m.Sender,
		Text:      m.Text,
		CreatedAt: m.CreatedAt.UnixMilli(),
	})
}

// FormatText returns a text message from sender.
func FormatText(sender, body string) Message {
	return Message{
		Kind:      KindText,
		Sender:    sender,
		Text:      body,
		CreatedAt: Now(),
	}
}

// FormatLocation returns a location message whose text is the rendered link.
func FormatLocation(sender, link string) Message {
	return Message{
		Kind:      KindLocation,
		Sender:    sender,
		Text:      link,
		CreatedAt: Now(),
	}
}

// MapLink renders a maps link for the coordinates in their shortest decimal form.
func MapLink(lat, long float64) string {
	return fmt.Sprintf(mapsURL, formatCoord(lat), formatCoord(long))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
