package dragdrop

import (
	"fmt"

	"github.com/okodanev/deskhub/internal/domain/errs"
)

// Carrier channels. The JSON channel carries the full payload envelope; the
// plain-text channel carries only a task ID for simpler consumers.
const (
	ChannelJSON = "application/json"
	ChannelText = "text/plain"
)

// Carrier mirrors the platform drag-and-drop data transfer: a small bag of
// per-channel strings populated at drag start and read once at drop.
type Carrier struct {
	Channels map[string]string `json:"channels"`
}

// NewCarrier returns an empty carrier.
func NewCarrier() *Carrier {
	return &Carrier{Channels: make(map[string]string)}
}

// Set stores a value under a channel.
func (c *Carrier) Set(channel, value string) {
	if c.Channels == nil {
		c.Channels = make(map[string]string)
	}
	c.Channels[channel] = value
}

// Get reads a channel value.
func (c *Carrier) Get(channel string) (string, bool) {
	v, ok := c.Channels[channel]
	return v, ok
}

// Arm builds the carrier for a drag gesture: the payload goes into the JSON
// channel, and task drags additionally expose the bare task ID on the
// plain-text channel.
func Arm(p Payload) (*Carrier, error) {
	raw, err := Encode(p)
	if err != nil {
		return nil, err
	}

	c := NewCarrier()
	c.Set(ChannelJSON, string(raw))
	if p.Kind() == TypeTask {
		c.Set(ChannelText, p.ID())
	}
	return c, nil
}

// Resolve extracts the payload from a dropped carrier. An absent or
// malformed JSON channel reports errs.ErrMalformedPayload.
func Resolve(c *Carrier) (Payload, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: no carrier", errs.ErrMalformedPayload)
	}
	raw, ok := c.Get(ChannelJSON)
	if !ok || raw == "" {
		return nil, fmt.Errorf("%w: json channel is empty", errs.ErrMalformedPayload)
	}
	return Decode([]byte(raw))
}
