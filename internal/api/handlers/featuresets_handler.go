package handlers

import (
    "net/http"
    "strings"

    "github.com/go-chi/chi/v5"

    "github.com/nexusnova/atlas/internal/api/types"
    "github.com/nexusnova/atlas/internal/flow"
    "github.com/nexusnova/atlas/internal/registry"
    "github.com/nexusnova/atlas/internal/session"
    "github.com/nexusnova/atlas/internal/views"
    appErr "github.com/nexusnova/atlas/pkg/errors"
)

// FeatureSetsHandler serves the committed feature-set graphs and their
// derived views.
type FeatureSetsHandler struct {
    reg  *registry.Registry
    sess *session.Session
}

func NewFeatureSetsHandler(reg *registry.Registry, sess *session.Session) *FeatureSetsHandler {
    return &FeatureSetsHandler{reg: reg, sess: sess}
}

// List returns feature-set names in insertion order.
func (h *FeatureSetsHandler) List(w http.ResponseWriter, r *http.Request) {
    respond(w, http.StatusOK, h.reg.Names())
}

// Create registers a blank feature set and switches the session to it.
func (h *FeatureSetsHandler) Create(w http.ResponseWriter, r *http.Request) {
    var req types.FeatureSetCreateRequest
    if err := decode(r, &req); err != nil {
        respondErr(w, err)
        return
    }
    if err := h.sess.NewFeatureSet(req.Name); err != nil {
        respondErr(w, err)
        return
    }
    respond(w, http.StatusCreated, h.sess.State())
}

// Get returns the committed graph for a feature set.
func (h *FeatureSetsHandler) Get(w http.ResponseWriter, r *http.Request) {
    name := chi.URLParam(r, "name")
    g, ok := h.reg.Get(name)
    if !ok {
        respondErr(w, appErr.Newf(appErr.CodeNotFound, "unknown feature set: %s", name))
        return
    }
    respond(w, http.StatusOK, g)
}

// View runs the filter pipeline over a committed graph.
// Query params: mode (default "all"), ids (comma allow-list),
// exclude (comma list of component categories to hide).
func (h *FeatureSetsHandler) View(w http.ResponseWriter, r *http.Request) {
    name := chi.URLParam(r, "name")
    g, ok := h.reg.Get(name)
    if !ok {
        respondErr(w, appErr.Newf(appErr.CodeNotFound, "unknown feature set: %s", name))
        return
    }
    opts, err := filterOptions(r)
    if err != nil {
        respondErr(w, err)
        return
    }
    respond(w, http.StatusOK, flow.Apply(g, opts))
}

// Path finds the shortest directed path between two nodes of a committed
// graph.
func (h *FeatureSetsHandler) Path(w http.ResponseWriter, r *http.Request) {
    name := chi.URLParam(r, "name")
    g, ok := h.reg.Get(name)
    if !ok {
        respondErr(w, appErr.Newf(appErr.CodeNotFound, "unknown feature set: %s", name))
        return
    }
    from := r.URL.Query().Get("from")
    to := r.URL.Query().Get("to")
    if from == "" || to == "" {
        respondErr(w, appErr.New(appErr.CodeInvalid, "from and to node ids are required"))
        return
    }
    p, err := flow.FindPath(g, from, to)
    if err != nil {
        respondErr(w, err)
        return
    }
    respond(w, http.StatusOK, p)
}

// Modes returns the view-mode registry.
func (h *FeatureSetsHandler) Modes(w http.ResponseWriter, r *http.Request) {
    respond(w, http.StatusOK, views.All())
}

func filterOptions(r *http.Request) (flow.FilterOptions, error) {
    q := r.URL.Query()
    modeName := q.Get("mode")
    if modeName == "" {
        modeName = "all"
    }
    mode, err := views.Resolve(modeName)
    if err != nil {
        return flow.FilterOptions{}, err
    }
    opts := flow.FilterOptions{Mode: mode}
    if ids := q.Get("ids"); ids != "" {
        opts.AllowIDs = strings.Split(ids, ",")
    }
    if excl := q.Get("exclude"); excl != "" {
        opts.Categories = map[string]bool{}
        for _, c := range strings.Split(excl, ",") {
            opts.Categories[c] = false
        }
    }
    return opts, nil
}
