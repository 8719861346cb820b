package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rook-computer/bitmapfb/internal/display"
	"github.com/rook-computer/bitmapfb/internal/rect"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK  bool   `json:"ok"`
	Seq uint64 `json:"seq"`
}

type rectResponse struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type layerResponse struct {
	Name   string       `json:"name"`
	Bounds rectResponse `json:"bounds"`
}

type frameResponse struct {
	Seq    uint64          `json:"seq"`
	Phase  string          `json:"phase"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Damage []rectResponse  `json:"damage"`
	Layers []layerResponse `json:"layers"`
	Error  string          `json:"error,omitempty"`
}

func toRectResponse(r rect.Rect) rectResponse {
	return rectResponse{X: r.MinX, Y: r.MinY, Width: r.Width(), Height: r.Height()}
}

func apiV1Router(handlers APIV1Handlers, deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { handleHealthz(w, r, deps) })
	mux.HandleFunc("/frame", func(w http.ResponseWriter, r *http.Request) { handleFrame(w, r, deps) })
	mux.HandleFunc("/screen.png", func(w http.ResponseWriter, r *http.Request) { handleScreenPNG(w, r, deps) })
	mux.HandleFunc("/redraw", func(w http.ResponseWriter, r *http.Request) { handleRedraw(w, r, handlers) })
	return mux
}

func handleHealthz(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true, Seq: deps.Frames.Snapshot().Seq})
}

func handleFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	snap := deps.Frames.Snapshot()
	resp := frameResponse{
		Seq:    snap.Seq,
		Phase:  snap.Phase.String(),
		Width:  snap.Width,
		Height: snap.Height,
		Damage: make([]rectResponse, 0, len(snap.Damage)),
		Layers: make([]layerResponse, 0, len(snap.Layers)),
		Error:  snap.Err,
	}
	for _, d := range snap.Damage {
		resp.Damage = append(resp.Damage, toRectResponse(d))
	}
	for _, l := range snap.Layers {
		resp.Layers = append(resp.Layers, layerResponse{Name: l.Name, Bounds: toRectResponse(l.Bounds)})
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleScreenPNG(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	scale := 1
	if raw := r.URL.Query().Get("scale"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > display.MaxScale {
			writeAPIError(w, http.StatusBadRequest, "bad_scale", "scale must be an integer from 1 to "+strconv.Itoa(display.MaxScale))
			return
		}
		scale = parsed
	}

	snap := deps.Frames.Snapshot()
	if snap.Seq == 0 {
		writeAPIError(w, http.StatusServiceUnavailable, "no_frame", "no frame has been rendered yet")
		return
	}
	s, err := snap.Surface()
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "bad_frame", err.Error())
		return
	}

	// Encode fully before writing so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := display.EncodePNG(&buf, s, deps.Palette, scale); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Frame-Seq", strconv.FormatUint(snap.Seq, 10))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func handleRedraw(w http.ResponseWriter, r *http.Request, handlers APIV1Handlers) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if handlers.RedrawFunc == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", errRedrawNotConfigured.Error())
		return
	}
	if err := handlers.RedrawFunc(r.Context()); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "redraw_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, okResponse{OK: true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
