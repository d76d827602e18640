package health

import (
	"net/http"
	"sync/atomic"
)

// Handler serves liveness and readiness probes.
type Handler struct {
	serving atomic.Bool
	check   func() bool
}

// New returns a health handler. check, when set, must also pass for
// the handler to report ready.
func New(check func() bool) *Handler {
	return &Handler{check: check}
}

// SetReady marks the server as serving.
func (h *Handler) SetReady() {
	h.serving.Store(true)
}

// SetNotReady marks the server as draining.
func (h *Handler) SetNotReady() {
	h.serving.Store(false)
}

// Ready reports whether the server is serving and the check passes.
func (h *Handler) Ready() bool {
	if !h.serving.Load() {
		return false
	}
	return h.check == nil || h.check()
}

// Healthz handles liveness probes.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Readyz handles readiness probes.
func (h *Handler) Readyz(w http.ResponseWriter, _ *http.Request) {
	if h.Ready() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("not ready"))
}
