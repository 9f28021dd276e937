package ajax

import (
	"encoding/json"
	"fmt"
)

// ReactionType selects how the browser runtime applies a reaction.
type ReactionType string

const (
	ReactionNone          ReactionType = "None"
	ReactionDialogDisplay ReactionType = "DialogDisplay"
	ReactionRedirectURL   ReactionType = "RedirectUrl"
	ReactionScriptExecute ReactionType = "ScriptExecute"
)

// ResponseType is the severity of a reaction.
type ResponseType string

const (
	ResponseSuccess ResponseType = "Success"
	ResponseInfo    ResponseType = "Info"
	ResponseWarning ResponseType = "Warning"
	ResponseDanger  ResponseType = "Danger"
)

// Reaction is one instruction returned to the browser.
type Reaction struct {
	Title        string       `json:"reactionTitle,omitempty"`
	Message      string       `json:"reactionMessage,omitempty"`
	ReactionType ReactionType `json:"reactionType"`
	ResponseType ResponseType `json:"type"`
}

// NewReaction returns an Info reaction.
func NewReaction(title, message string, reactionType ReactionType) Reaction {
	return Reaction{Title: title, Message: message, ReactionType: reactionType, ResponseType: ResponseInfo}
}

// ComponentUpdate replaces a rendered component in the browser.
type ComponentUpdate struct {
	ID   string `json:"id"`
	HTML string `json:"html"`
}

// Response is the envelope written back for event calls.
type Response struct {
	Success        bool              `json:"success"`
	Reactions      []Reaction        `json:"reactions,omitempty"`
	Components     []ComponentUpdate `json:"components,omitempty"`
	Events         []string          `json:"events,omitempty"`
	LocalStorage   map[string]string `json:"localStorage,omitempty"`
	SessionStorage map[string]string `json:"sessionStorage,omitempty"`
}

// NewResponse returns a successful empty response.
func NewResponse() *Response {
	return &Response{Success: true}
}

// Failure returns an unsuccessful response carrying one reaction.
func Failure(reaction Reaction) *Response {
	resp := &Response{Success: false}
	resp.AddReaction(reaction)
	return resp
}

// AddReaction appends a reaction.
func (r *Response) AddReaction(reaction Reaction) {
	if r == nil {
		return
	}
	if reaction.ReactionType == "" {
		reaction.ReactionType = ReactionNone
	}
	if reaction.ResponseType == "" {
		reaction.ResponseType = ResponseInfo
	}
	r.Reactions = append(r.Reactions, reaction)
}

// AddComponent queues a component re-render.
func (r *Response) AddComponent(id, html string) {
	if r == nil {
		return
	}
	r.Components = append(r.Components, ComponentUpdate{ID: id, HTML: html})
}

// AddEvent queues a client-side script to execute after the update.
func (r *Response) AddEvent(script string) {
	if r == nil || script == "" {
		return
	}
	r.Events = append(r.Events, script)
}

// SetLocalStorage queues a browser localStorage write.
func (r *Response) SetLocalStorage(key, value string) {
	if r == nil {
		return
	}
	if r.LocalStorage == nil {
		r.LocalStorage = make(map[string]string)
	}
	r.LocalStorage[key] = value
}

// SetSessionStorage queues a browser sessionStorage write.
func (r *Response) SetSessionStorage(key, value string) {
	if r == nil {
		return
	}
	if r.SessionStorage == nil {
		r.SessionStorage = make(map[string]string)
	}
	r.SessionStorage[key] = value
}

// JSON encodes the response.
func (r *Response) JSON() (string, error) {
	if r == nil {
		return "", fmt.Errorf("encode ajax response: response is nil")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode ajax response: %w", err)
	}
	return string(data), nil
}
