package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rook-computer/osdkit/internal/buttons"
	"github.com/rook-computer/osdkit/internal/state"
)

func newSimMux(t *testing.T) (*http.ServeMux, *buttons.ManualButtons, *state.Store) {
	t.Helper()
	btns := buttons.NewManualButtons()
	store := state.NewStore()
	mux := http.NewServeMux()
	registerSimEndpoints(mux, NewSimControl(t.Context(), btns, store, time.Hour))
	return mux, btns, store
}

func post(mux http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	return rec
}

func TestSimPress(t *testing.T) {
	mux, btns, _ := newSimMux(t)

	if rec := post(mux, "/sim/press/volume-up"); rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	select {
	case ev := <-btns.Events():
		if ev != buttons.VolumeUp {
			t.Errorf("event = %q, want %q", ev, buttons.VolumeUp)
		}
	default:
		t.Error("no event was queued")
	}

	if rec := post(mux, "/sim/press/rewind"); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown event: status = %d, want 400", rec.Code)
	}

	btns.Stop()
	if rec := post(mux, "/sim/press/exit"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("stopped buttons: status = %d, want 503", rec.Code)
	}
}

func TestSimReset(t *testing.T) {
	mux, _, store := newSimMux(t)
	store.Seek(60)
	store.ToggleMute()

	if rec := post(mux, "/sim/reset"); rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	want := state.State{Phase: state.PLAYING, Volume: 100}
	if got := store.Snapshot(); got != want {
		t.Errorf("state = %+v, want %+v", got, want)
	}
}

func TestSimDemoRunsOnce(t *testing.T) {
	mux, _, _ := newSimMux(t)

	if rec := post(mux, "/sim/demo"); rec.Code != http.StatusAccepted {
		t.Fatalf("first demo: status = %d, want 202", rec.Code)
	}
	if rec := post(mux, "/sim/demo"); rec.Code != http.StatusConflict {
		t.Errorf("second demo: status = %d, want 409", rec.Code)
	}
}

func TestTrimLeadingColon(t *testing.T) {
	for in, want := range map[string]string{
		":8080":       "127.0.0.1:8080",
		"":            "127.0.0.1:8080",
		"10.0.0.2:80": "10.0.0.2:80",
	} {
		if got := trimLeadingColon(in); got != want {
			t.Errorf("trimLeadingColon(%q) = %q, want %q", in, got, want)
		}
	}
}
