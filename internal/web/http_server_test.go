package web

import (
	"context"
	"net/http"
	"testing"

	"github.com/rook-computer/osdkit/internal/state"
)

func TestHTTPServerLifecycle(t *testing.T) {
	s := NewHTTPServer(ServerConfig{ListenAddr: "127.0.0.1:0"})
	s.Deps = APIV1Deps{Player: &fakePlayer{state: state.State{Phase: state.PLAYING}}}
	if got := s.ListenAddr(); got != "" {
		t.Errorf("ListenAddr() before Start = %q", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() = %v", err)
	}

	resp, err := http.Get("http://" + s.ListenAddr() + "/api/v1/state")
	if err != nil {
		t.Fatalf("GET state: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	if err := s.Stop(); err != nil {
		t.Errorf("Stop() = %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("second Stop() = %v", err)
	}
	if err := s.Start(ctx); err == nil {
		t.Error("Start() after Stop succeeded")
	}
}
