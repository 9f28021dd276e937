package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/louisbranch/jweb/internal/ngcode"
	"github.com/louisbranch/jweb/internal/services/jweb/ajax"
	"github.com/louisbranch/jweb/internal/services/jweb/data"
	"github.com/louisbranch/jweb/internal/services/jweb/event"
	"github.com/louisbranch/jweb/internal/services/jweb/html"
	"github.com/louisbranch/jweb/internal/services/jweb/page"
)

//go:generate go run ../../../tools/pagescan -pkg ./internal/services/jweb/demo

// ClockID is the id of the element showing the server clock.
const ClockID = "serverClock"

//jweb:page url=/about title="About jweb"
func aboutPage(context.Context) (*page.Document, error) {
	c := ngcode.NewComponent("AboutComponent")
	c.Config.Add(
		ngcode.Field{Value: "now?: string"},
		ngcode.HookBody{Hook: ngcode.OnInit, Value: "fetch('/jwdata?component=demo_Clock').then(r => r.json()).then(v => this.now = v.now);"},
	)
	ping := html.Button("Ping").AddAttribute("data-jw-event", pingEventName)
	body := html.Body().Add(
		html.Div().AsComponent(c).Add(
			html.Heading(1, "About jweb"),
			html.Span("").SetID(ClockID),
			ping,
		),
	)
	return &page.Document{Body: body}, nil
}

const pingEventName = "demo.PingEvent"

//jweb:event name=demo.PingEvent
func pingEvent(context.Context) (event.Event, error) {
	return event.Func(func(_ context.Context, call *ajax.Call, resp *ajax.Response) error {
		resp.AddReaction(ajax.Reaction{
			Title:        "Pong",
			Message:      fmt.Sprintf("event %s from %s", call.EventType, call.ComponentID),
			ReactionType: ajax.ReactionDialogDisplay,
			ResponseType: ajax.ResponseInfo,
		})
		return nil
	}), nil
}

//jweb:data name=demo.Clock
func clockData(context.Context) (data.Component, error) {
	return clock{now: time.Now}, nil
}

type clock struct {
	now func() time.Time
}

func (c clock) RenderData(context.Context) (string, error) {
	out, err := json.Marshal(map[string]string{"now": c.now().UTC().Format(time.RFC3339)})
	if err != nil {
		return "", fmt.Errorf("encode clock: %w", err)
	}
	return string(out), nil
}
