package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/rook-computer/osdkit/internal/buttons"
	"github.com/rook-computer/osdkit/internal/render"
	"github.com/rook-computer/osdkit/internal/state"
	"github.com/rook-computer/osdkit/internal/widget"
)

// maxRequestBytes bounds JSON request bodies.
const maxRequestBytes = 4 << 10

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type stateResponse struct {
	Phase    string `json:"phase"`
	Position int    `json:"position"`
	Volume   int    `json:"volume"`
	Muted    bool   `json:"muted"`
}

type actionRequest struct {
	Action string `json:"action"`
}

type sliderRequest struct {
	Orientation string `json:"orientation"`
	Position    int    `json:"position"`
	Channel     int    `json:"channel"`
}

type iconRequest struct {
	Glyph   string `json:"glyph"`
	Channel int    `json:"channel"`
}

var frameContentTypes = map[string]string{
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

func apiV1RouterWithDeps(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) { handleState(w, r, deps) })
	mux.HandleFunc("/action", func(w http.ResponseWriter, r *http.Request) { handleAction(w, r, deps) })
	mux.HandleFunc("/osd/slider", func(w http.ResponseWriter, r *http.Request) { handleSlider(w, r, deps) })
	mux.HandleFunc("/osd/icon", func(w http.ResponseWriter, r *http.Request) { handleIcon(w, r, deps) })
	mux.HandleFunc("/palette.pal", handlePalette)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/frame.") {
			handleFrame(w, r, deps)
			return
		}
		writeAPIError(w, http.StatusNotFound, "not_found", "not found")
	})
	return mux
}

func handleState(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(deps.Player.State()))
}

func handleAction(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	var req actionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	ev, ok := buttons.ParseEvent(req.Action)
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "unknown_action", "unknown action "+req.Action)
		return
	}
	if err := deps.Player.Dispatch(ev); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "action_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(deps.Player.State()))
}

func handleSlider(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	req := sliderRequest{Orientation: widget.Horizontal.String()}
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	o, err := widget.ParseOrientation(req.Orientation)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_orientation", err.Error())
		return
	}
	if req.Channel < 0 {
		writeAPIError(w, http.StatusBadRequest, "invalid_channel", "channel must not be negative")
		return
	}
	// Positions outside 0..100 are clamped when the widget is created.
	deps.Player.ShowSlider(req.Channel, o, req.Position)
	writeJSON(w, http.StatusAccepted, okResponse{OK: true})
}

func handleIcon(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	var req iconRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	g, err := widget.ParseGlyph(req.Glyph)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_glyph", err.Error())
		return
	}
	if req.Channel < 0 {
		writeAPIError(w, http.StatusBadRequest, "invalid_channel", "channel must not be negative")
		return
	}
	deps.Player.ShowIcon(req.Channel, g)
	writeJSON(w, http.StatusAccepted, okResponse{OK: true})
}

func handleFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	format := strings.TrimPrefix(r.URL.Path, "/frame.")
	if !slices.Contains(render.Formats, format) {
		writeAPIError(w, http.StatusNotFound, "unknown_format", "unknown image format "+format)
		return
	}
	frame := deps.Frames.Snapshot()
	if frame == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "no_frame", "no frame rendered yet")
		return
	}

	// Encode fully before writing so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := render.Encode(&buf, frame, format); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", frameContentTypes[format])
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func handlePalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	var buf bytes.Buffer
	if err := render.WritePaletteRIFF(&buf, render.Palette()); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="osd.pal"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func newStateResponse(st state.State) stateResponse {
	return stateResponse{Phase: st.Phase.String(), Position: st.Position, Volume: st.Volume, Muted: st.Muted}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
