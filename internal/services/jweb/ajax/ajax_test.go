package ajax

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeCallParsesEnvelope(t *testing.T) {
	t.Parallel()

	body := `{"className":"demo_events_Click","componentId":"btn1","eventType":"click","value":{"count":2},"parameters":{"a":"1"}}`
	call, err := DecodeCall([]byte(body))
	if err != nil {
		t.Fatalf("DecodeCall() error = %v", err)
	}
	if call.ClassName != "demo_events_Click" || call.ComponentID != "btn1" {
		t.Fatalf("call = %+v", call)
	}
	var value struct {
		Count int `json:"count"`
	}
	if err := call.DecodeValue(&value); err != nil || value.Count != 2 {
		t.Fatalf("DecodeValue() = %+v, %v", value, err)
	}
	if call.Parameter("a") != "1" || call.Parameter("missing") != "" {
		t.Fatalf("Parameter() mismatch: %+v", call.Parameters)
	}
}

func TestDecodeCallRejectsBadBodies(t *testing.T) {
	t.Parallel()

	for _, body := range []string{"", "   ", "{not json"} {
		if _, err := DecodeCall([]byte(body)); err == nil {
			t.Fatalf("DecodeCall(%q) expected error", body)
		}
	}
}

func TestMergeCopiesWithoutAliasing(t *testing.T) {
	t.Parallel()

	incoming := &Call{
		ClassName:  "demo.Click",
		EventType:  "click",
		Value:      json.RawMessage(`"x"`),
		Parameters: map[string]string{"k": "v"},
	}
	scoped := &Call{}
	scoped.Merge(incoming)
	incoming.Parameters["k"] = "changed"

	want := &Call{
		ClassName:  "demo.Click",
		EventType:  "click",
		Value:      json.RawMessage(`"x"`),
		Parameters: map[string]string{"k": "v"},
	}
	if diff := cmp.Diff(want, scoped); diff != "" {
		t.Fatalf("merged call mismatch (-want +got):\n%s", diff)
	}
}

func TestFailureResponseJSON(t *testing.T) {
	t.Parallel()

	resp := Failure(Reaction{Title: "Invalid Request Value", Message: "bad", ReactionType: ReactionDialogDisplay, ResponseType: ResponseDanger})
	out, err := resp.JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	for _, marker := range []string{`"success":false`, `"reactionTitle":"Invalid Request Value"`, `"reactionType":"DialogDisplay"`, `"type":"Danger"`} {
		if !strings.Contains(out, marker) {
			t.Fatalf("json missing %s: %s", marker, out)
		}
	}
}

func TestAddReactionFillsDefaults(t *testing.T) {
	t.Parallel()

	resp := NewResponse()
	resp.AddReaction(Reaction{Title: "t"})
	resp.AddComponent("c1", "<b>x</b>")
	resp.AddEvent("")
	resp.AddEvent("console.log(1)")
	resp.SetLocalStorage("theme", "dark")
	resp.SetSessionStorage("tab", "2")

	if !resp.Success {
		t.Fatal("expected success")
	}
	if resp.Reactions[0].ReactionType != ReactionNone || resp.Reactions[0].ResponseType != ResponseInfo {
		t.Fatalf("reaction defaults = %+v", resp.Reactions[0])
	}
	if len(resp.Events) != 1 || resp.LocalStorage["theme"] != "dark" || resp.SessionStorage["tab"] != "2" {
		t.Fatalf("response = %+v", resp)
	}
	var nilResp *Response
	if _, err := nilResp.JSON(); err == nil {
		t.Fatal("expected nil response error")
	}
}
