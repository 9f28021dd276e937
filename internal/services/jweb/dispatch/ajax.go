package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"strings"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/louisbranch/jweb/internal/platform/i18n"
	platformotel "github.com/louisbranch/jweb/internal/platform/otel"
	"github.com/louisbranch/jweb/internal/services/jweb/ajax"
	"github.com/louisbranch/jweb/internal/services/jweb/callscope"
	"github.com/louisbranch/jweb/internal/services/jweb/event"
	"github.com/louisbranch/jweb/internal/services/jweb/intercept"
	apperrors "github.com/louisbranch/jweb/internal/services/jweb/platform/errors"
	"github.com/louisbranch/jweb/internal/services/jweb/registry"
)

// Ajax dispatches AJAX call envelopes to registered events.
type Ajax struct {
	Events       *event.Registry
	Interceptors *intercept.Chains
}

// Dispatch handles one envelope inside the scope active on ctx. It never
// panics: invalid requests and unknown failures become a failed response
// carrying a dialog reaction.
func (a Ajax) Dispatch(ctx context.Context, loc i18n.Localizer, body []byte) (resp *ajax.Response) {
	ctx, span := platformotel.Tracer().Start(ctx, "ajax.dispatch")
	defer span.End()

	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		stack := string(debug.Stack())
		err := fmt.Errorf("panic: %v", rec)
		log.Printf("ajax call panicked stream_id=%s panic=%v stack=%s", streamID(ctx), rec, stack)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		resp = UnknownFailure(loc, err, stack)
	}()

	resp, err := a.dispatch(ctx, body, func(className string) {
		span.SetAttributes(attribute.String("jweb.ajax.class", registry.Decode(className)))
	})
	if err == nil {
		return resp
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if apperrors.IsInvalidRequest(err) {
		log.Printf("ajax invalid request stream_id=%s err=%v", streamID(ctx), err)
		return InvalidRequestFailure(loc, err)
	}
	stack := string(debug.Stack())
	log.Printf("ajax call failed stream_id=%s err=%v stack=%s", streamID(ctx), err, stack)
	return UnknownFailure(loc, err, stack)
}

func (a Ajax) dispatch(ctx context.Context, body []byte, annotate func(string)) (*ajax.Response, error) {
	incoming, err := ajax.DecodeCall(body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalidRequest, err.Error(), err)
	}
	call, err := callscope.Call(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := callscope.Response(ctx)
	if err != nil {
		return nil, err
	}
	call.Merge(incoming)
	call.PageCall = true
	annotate(call.ClassName)

	if a.Events == nil {
		return nil, apperrors.E(apperrors.KindUnavailable, "no event registry configured")
	}
	ev, err := a.Events.Resolve(ctx, call.ClassName)
	if err != nil {
		return nil, err
	}
	if a.Interceptors != nil {
		if err := a.Interceptors.RunAjax(ctx, call, resp); err != nil {
			return nil, err
		}
	}
	if err := ev.Fire(ctx, call, resp); err != nil {
		log.Printf("ajax event failed class=%s stream_id=%s", registry.Decode(call.ClassName), streamID(ctx))
		return nil, err
	}
	return resp, nil
}

// InvalidRequestFailure builds the failed response for a rejected request.
func InvalidRequestFailure(loc i18n.Localizer, err error) *ajax.Response {
	detail := err.Error()
	var appErr apperrors.Error
	if errors.As(err, &appErr) && strings.TrimSpace(appErr.Message) != "" {
		detail = appErr.Message
	}
	if key := apperrors.LocalizationKey(err); key != "" {
		detail = loc.Sprintf(key)
	}
	return ajax.Failure(ajax.Reaction{
		Title:        loc.Sprintf(i18n.KeyInvalidRequestTitle),
		Message:      loc.Sprintf(i18n.KeyInvalidRequestMessage) + "<br>" + templ.EscapeString(detail),
		ReactionType: ajax.ReactionDialogDisplay,
		ResponseType: ajax.ResponseDanger,
	})
}

// UnknownFailure builds the failed response for an unexpected error. The
// stack, when present, is appended to the message.
func UnknownFailure(loc i18n.Localizer, err error, stack string) *ajax.Response {
	var msg strings.Builder
	msg.WriteString(loc.Sprintf(i18n.KeyUnknownErrorMessage))
	msg.WriteString("<br>")
	msg.WriteString(templ.EscapeString(err.Error()))
	if stack = strings.TrimSpace(stack); stack != "" {
		msg.WriteString("<br><pre>")
		msg.WriteString(templ.EscapeString(stack))
		msg.WriteString("</pre>")
	}
	return ajax.Failure(ajax.Reaction{
		Title:        loc.Sprintf(i18n.KeyUnknownErrorTitle),
		Message:      msg.String(),
		ReactionType: ajax.ReactionDialogDisplay,
		ResponseType: ajax.ResponseDanger,
	})
}
