// Package socket carries AJAX call envelopes over a websocket.
package socket

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/net/websocket"

	"github.com/louisbranch/jweb/internal/platform/i18n"
	"github.com/louisbranch/jweb/internal/platform/timeouts"
	"github.com/louisbranch/jweb/internal/services/jweb/ajax"
	"github.com/louisbranch/jweb/internal/services/jweb/callscope"
	"github.com/louisbranch/jweb/internal/services/jweb/dispatch"
	module "github.com/louisbranch/jweb/internal/services/jweb/module"
	"github.com/louisbranch/jweb/internal/services/jweb/platform/httpx"
	"github.com/louisbranch/jweb/internal/services/jweb/routepath"
	"github.com/louisbranch/jweb/internal/services/jweb/scope"
)

// Module mounts the websocket endpoint.
type Module struct {
	// Idle closes connections that receive nothing for this long.
	Idle time.Duration
}

// New returns the websocket module.
func New() Module { return Module{Idle: timeouts.WebSocketIdle} }

// ID returns the module id.
func (Module) ID() string { return "websocket" }

// Mount wires the websocket server. Each received message is dispatched in
// its own scope.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Scoper == nil {
		return module.Mount{}, errors.New("scoper is required")
	}
	c := conn{
		scoper:     deps.Scoper,
		dispatcher: dispatch.Ajax{Events: deps.Events, Interceptors: deps.Interceptors},
		idle:       m.Idle,
	}
	return module.Mount{
		Prefix:  routepath.WebSocket,
		Handler: websocket.Server{Handshake: sameOrigin, Handler: c.serve},
	}, nil
}

func sameOrigin(cfg *websocket.Config, r *http.Request) error {
	origin, err := websocket.Origin(cfg, r)
	if err != nil {
		return err
	}
	if origin == nil || origin.Host != r.Host {
		return fmt.Errorf("websocket origin %v does not match host %s", origin, r.Host)
	}
	cfg.Origin = origin
	return nil
}

type conn struct {
	scoper     *scope.Scoper
	dispatcher dispatch.Ajax
	idle       time.Duration
}

func (c conn) serve(ws *websocket.Conn) {
	defer ws.Close()
	req := ws.Request()
	loc := i18n.ForRequest(req)
	connID := httpx.RequestIDOf(req)
	if connID == "" {
		connID = "ws"
	}
	for n := 1; ; n++ {
		if c.idle > 0 {
			_ = ws.SetReadDeadline(time.Now().Add(c.idle))
		}
		var msg string
		if err := websocket.Message.Receive(ws, &msg); err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("websocket receive failed conn=%s err=%v", connID, err)
			}
			return
		}
		payload := c.handle(req, loc, fmt.Sprintf("%s#%d", connID, n), msg)
		if err := websocket.Message.Send(ws, payload); err != nil {
			log.Printf("websocket send failed conn=%s err=%v", connID, err)
			return
		}
	}
}

func (c conn) handle(req *http.Request, loc i18n.Localizer, streamID, msg string) string {
	var resp *ajax.Response
	err := dispatch.Within(req.Context(), c.scoper, callscope.Binding{
		Source:   scope.SourceWebSocket,
		Request:  req,
		StreamID: streamID,
	}, func(ctx context.Context) error {
		resp = c.dispatcher.Dispatch(ctx, loc, []byte(msg))
		return nil
	})
	if err != nil {
		log.Printf("websocket scope failed stream_id=%s err=%v", streamID, err)
		resp = dispatch.UnknownFailure(loc, err, "")
	}
	payload, err := resp.JSON()
	if err != nil {
		log.Printf("encode websocket response failed stream_id=%s err=%v", streamID, err)
		return `{"success":false}`
	}
	return payload
}
