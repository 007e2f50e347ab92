package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rook-computer/osdkit/internal/buttons"
	"github.com/rook-computer/osdkit/internal/state"
)

// demoSequence walks through every widget once.
var demoSequence = []buttons.Event{
	buttons.TogglePause,
	buttons.TogglePause,
	buttons.SeekForward,
	buttons.SeekForward,
	buttons.SeekBackward,
	buttons.VolumeDown,
	buttons.VolumeDown,
	buttons.VolumeUp,
	buttons.ToggleMute,
	buttons.ToggleMute,
}

// SimControl drives the simulated player through the same button path a
// keyboard would use.
type SimControl struct {
	processCtx context.Context
	buttons    *buttons.ManualButtons
	store      *state.Store
	step       time.Duration

	demoRunning atomic.Bool
	pressed     atomic.Uint64
}

func NewSimControl(processCtx context.Context, btns *buttons.ManualButtons, store *state.Store, step time.Duration) *SimControl {
	if step <= 0 {
		step = time.Second
	}
	return &SimControl{processCtx: processCtx, buttons: btns, store: store, step: step}
}

// Press queues ev as if a key had been pressed.
func (c *SimControl) Press(ev buttons.Event) error {
	if !c.buttons.Press(ev) {
		return fmt.Errorf("button queue is full or stopped")
	}
	c.pressed.Add(1)
	return nil
}

// Reset returns the player to its startup state.
func (c *SimControl) Reset() {
	c.store.Reset()
	c.store.SetPhase(state.PLAYING)
}

// StartDemo presses the demo sequence in the background, one event per
// step. It reports false if a demo is already running.
func (c *SimControl) StartDemo() bool {
	if !c.demoRunning.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer c.demoRunning.Store(false)
		ticker := time.NewTicker(c.step)
		defer ticker.Stop()
		for _, ev := range demoSequence {
			select {
			case <-c.processCtx.Done():
				return
			case <-ticker.C:
			}
			_ = c.Press(ev)
		}
	}()
	return true
}

func registerSimEndpoints(mux *http.ServeMux, control *SimControl) {
	mux.HandleFunc("/sim/press/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sim/press/"), "/")
		ev, ok := buttons.ParseEvent(name)
		if !ok {
			writeSimError(w, http.StatusBadRequest, fmt.Sprintf("unknown event %q", name))
			return
		}
		if err := control.Press(ev); err != nil {
			writeSimError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeSimJSON(w, http.StatusAccepted, map[string]any{"ok": true, "pressed": control.pressed.Load()})
	})

	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		control.Reset()
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("/sim/demo", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if !control.StartDemo() {
			writeSimError(w, http.StatusConflict, "demo already running")
			return
		}
		writeSimJSON(w, http.StatusAccepted, map[string]any{"ok": true, "events": len(demoSequence)})
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
