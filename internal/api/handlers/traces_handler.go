package handlers

import (
    "net/http"

    "github.com/go-chi/chi/v5"

    "github.com/nexusnova/atlas/internal/traces"
)

// TracesHandler serves the static trace catalogue.
type TracesHandler struct {
    cat *traces.Catalog
}

func NewTracesHandler(cat *traces.Catalog) *TracesHandler {
    return &TracesHandler{cat: cat}
}

// List returns trace summaries, filterable by service, operation, and
// trace id substrings.
func (h *TracesHandler) List(w http.ResponseWriter, r *http.Request) {
    q := r.URL.Query()
    respond(w, http.StatusOK, h.cat.List(traces.ListOptions{
        Service:   q.Get("service"),
        Operation: q.Get("operation"),
        TraceID:   q.Get("trace_id"),
    }))
}

// Get returns one full trace with its spans.
func (h *TracesHandler) Get(w http.ResponseWriter, r *http.Request) {
    t, err := h.cat.Get(chi.URLParam(r, "id"))
    if err != nil {
        respondErr(w, err)
        return
    }
    respond(w, http.StatusOK, t)
}
