package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/jweb/internal/platform/otel"
)

func TestSetupIsNoopWithoutEndpoint(t *testing.T) {
	t.Setenv("JWEB_OTEL_ENDPOINT", "")
	t.Setenv("JWEB_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "jweb-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupIsNoopWhenDisabled(t *testing.T) {
	t.Setenv("JWEB_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("JWEB_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "jweb-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupRejectsInvalidEnabledFlag(t *testing.T) {
	t.Setenv("JWEB_OTEL_ENABLED", "sometimes")

	if _, err := otel.Setup(context.Background(), "jweb-test"); err == nil {
		t.Fatal("expected invalid bool error")
	}
}

func TestSetupWithSettingsBuildsProvider(t *testing.T) {
	// Non-routable endpoint; nothing is exported because no spans are recorded.
	shutdown, err := otel.SetupWithSettings(context.Background(), "jweb-test", otel.Settings{
		Enabled:  true,
		Endpoint: "http://192.0.2.1:4318",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestTracerIsAvailable(t *testing.T) {
	_, span := otel.Tracer().Start(context.Background(), "probe")
	defer span.End()
	if span == nil {
		t.Fatal("expected span")
	}
}
