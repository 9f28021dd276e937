package demo

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/louisbranch/jweb/internal/services/jweb/ajax"
	apperrors "github.com/louisbranch/jweb/internal/services/jweb/platform/errors"
)

// CounterID is the id of the element the click event re-renders.
const CounterID = "clickCounter"

// clickEvent counts clicks across requests and re-renders the counter.
type clickEvent struct {
	clicks *atomic.Int64
}

func (e clickEvent) Fire(_ context.Context, call *ajax.Call, resp *ajax.Response) error {
	n := e.clicks.Add(1)
	resp.AddComponent(CounterID, fmt.Sprintf(`<span id="%s">Clicked %d times</span>`, CounterID, n))
	if call.ComponentID != "" {
		resp.AddEvent(fmt.Sprintf("document.getElementById('%s').blur();", call.ComponentID))
	}
	return nil
}

// publishEvent appends a message to the feed queue.
type publishEvent struct {
	queue *Queue
}

type publishValue struct {
	Message string `json:"message"`
}

func (e publishEvent) Fire(_ context.Context, call *ajax.Call, resp *ajax.Response) error {
	msg := strings.TrimSpace(call.Parameter("message"))
	if msg == "" && len(call.Value) > 0 {
		var v publishValue
		if err := call.DecodeValue(&v); err != nil {
			return apperrors.Wrap(apperrors.KindInvalidRequest, "publish value is not an object", err)
		}
		msg = strings.TrimSpace(v.Message)
	}
	if msg == "" {
		return apperrors.E(apperrors.KindInvalidRequest, "message is required")
	}
	e.queue.Publish(msg)
	resp.AddReaction(ajax.Reaction{
		Title:        "Published",
		Message:      msg,
		ReactionType: ajax.ReactionNone,
		ResponseType: ajax.ResponseSuccess,
	})
	resp.SetSessionStorage("lastPublished", msg)
	return nil
}
