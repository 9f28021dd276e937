// Package ajax defines the JSON envelopes exchanged with the browser
// runtime for event calls and data calls.
package ajax

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Call is the envelope posted by the browser when an event fires.
type Call struct {
	ClassName      string            `json:"className"`
	ComponentID    string            `json:"componentId,omitempty"`
	EventType      string            `json:"eventType,omitempty"`
	EventTypeFrom  string            `json:"eventTypeFrom,omitempty"`
	Value          json.RawMessage   `json:"value,omitempty"`
	Parameters     map[string]string `json:"parameters,omitempty"`
	Headers        map[string]string `json:"headers,omitempty"`
	Attributes     map[string]string `json:"attributes,omitempty"`
	LocalStorage   map[string]string `json:"localStorage,omitempty"`
	SessionStorage map[string]string `json:"sessionStorage,omitempty"`
	Datetime       *time.Time        `json:"datetime,omitempty"`
	PageCall       bool              `json:"pageCall,omitempty"`
}

// DecodeCall parses an envelope body.
func DecodeCall(body []byte) (*Call, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, fmt.Errorf("decode ajax call: empty body")
	}
	var call Call
	if err := json.Unmarshal(body, &call); err != nil {
		return nil, fmt.Errorf("decode ajax call: %w", err)
	}
	return &call, nil
}

// Merge copies the fields of incoming onto c. Maps are copied, not shared.
func (c *Call) Merge(incoming *Call) {
	if c == nil || incoming == nil {
		return
	}
	c.ClassName = incoming.ClassName
	c.ComponentID = incoming.ComponentID
	c.EventType = incoming.EventType
	c.EventTypeFrom = incoming.EventTypeFrom
	c.Value = append(json.RawMessage(nil), incoming.Value...)
	c.Parameters = copyMap(incoming.Parameters)
	c.Headers = copyMap(incoming.Headers)
	c.Attributes = copyMap(incoming.Attributes)
	c.LocalStorage = copyMap(incoming.LocalStorage)
	c.SessionStorage = copyMap(incoming.SessionStorage)
	if incoming.Datetime != nil {
		stamp := *incoming.Datetime
		c.Datetime = &stamp
	}
	c.PageCall = incoming.PageCall
}

// Parameter returns a named call parameter.
func (c *Call) Parameter(name string) string {
	if c == nil || c.Parameters == nil {
		return ""
	}
	return c.Parameters[name]
}

// DecodeValue unmarshals the event value into target.
func (c *Call) DecodeValue(target any) error {
	if c == nil || len(c.Value) == 0 {
		return fmt.Errorf("decode ajax value: value is empty")
	}
	if err := json.Unmarshal(c.Value, target); err != nil {
		return fmt.Errorf("decode ajax value: %w", err)
	}
	return nil
}

func copyMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
