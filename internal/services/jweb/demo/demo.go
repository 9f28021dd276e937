// Package demo is a sample jweb application: a home page with a click
// counter and dialog, a queue page fed by a data component and an about
// page registered through generated code.
package demo

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/louisbranch/jweb/internal/services/jweb"
	"github.com/louisbranch/jweb/internal/services/jweb/ajax"
	"github.com/louisbranch/jweb/internal/services/jweb/callscope"
	"github.com/louisbranch/jweb/internal/services/jweb/data"
	"github.com/louisbranch/jweb/internal/services/jweb/event"
	"github.com/louisbranch/jweb/internal/services/jweb/html"
	"github.com/louisbranch/jweb/internal/services/jweb/intercept"
	"github.com/louisbranch/jweb/internal/services/jweb/page"
)

const (
	clickEventName   = "demo.ClickEvent"
	publishEventName = "demo.PublishEvent"
	feedName         = "demo.QueueFeed"
)

// App holds the demo state shared across requests.
type App struct {
	clicks atomic.Int64
	queue  *Queue
}

// New returns a demo application with an empty queue.
func New() *App {
	return &App{queue: NewQueue()}
}

// Queue returns the message queue behind the feed.
func (a *App) Queue() *Queue { return a.queue }

// Register installs the demo pages, events, data components and
// interceptors, including those declared with jweb directives.
func (a *App) Register(regs jweb.Registries) error {
	if _, err := regs.Pages.Register(page.Configuration{Title: "jweb example", Name: "demo.HomePage"}, a.homePage); err != nil {
		return err
	}
	if _, err := regs.Pages.Register(page.Configuration{URL: "/rabbit", Title: "Queue", Name: "demo.RabbitMQPage"}, a.rabbitPage); err != nil {
		return err
	}
	if err := regs.Events.Register(clickEventName, func(context.Context) (event.Event, error) {
		return clickEvent{clicks: &a.clicks}, nil
	}); err != nil {
		return err
	}
	if err := regs.Events.Register(publishEventName, func(context.Context) (event.Event, error) {
		return publishEvent{queue: a.queue}, nil
	}); err != nil {
		return err
	}
	if err := regs.Data.Register(feedName, func(context.Context) (data.Component, error) {
		return feedData{queue: a.queue}, nil
	}); err != nil {
		return err
	}
	if err := RegisterGenerated(regs); err != nil {
		return err
	}
	regs.Interceptors.AddAjax(intercept.AjaxFunc{Order: 100, Fn: logAjaxCall})
	regs.Interceptors.AddData(intercept.DataFunc{Order: 100, Fn: logDataCall})
	return nil
}

func (a *App) homePage(context.Context) (*page.Document, error) {
	return &page.Document{
		Body: html.Body().AddStyle("font-family", "sans-serif").Add(ExampleComponent(int(a.clicks.Load()))),
	}, nil
}

func (a *App) rabbitPage(context.Context) (*page.Document, error) {
	return &page.Document{Body: html.Body().Add(RabbitMQPage())}, nil
}

func logAjaxCall(ctx context.Context, call *ajax.Call, _ *ajax.Response) error {
	log.Printf("ajax call class=%s component=%s event=%s browser=%q", call.ClassName, call.ComponentID, call.EventType, callscope.Browser(ctx))
	return nil
}

func logDataCall(_ context.Context, call *ajax.Call, _ *ajax.Response) error {
	log.Printf("data call component=%s", call.ClassName)
	return nil
}
