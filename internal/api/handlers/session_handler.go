package handlers

import (
    "io"
    "net/http"

    "github.com/go-chi/chi/v5"

    "github.com/nexusnova/atlas/internal/api/types"
    "github.com/nexusnova/atlas/internal/flow"
    "github.com/nexusnova/atlas/internal/session"
    appErr "github.com/nexusnova/atlas/pkg/errors"
)

// SessionHandler exposes the edit session: checkout, editing mode, graph
// mutations, import/export, pick events, and sync.
type SessionHandler struct {
    sess *session.Session
}

func NewSessionHandler(sess *session.Session) *SessionHandler {
    return &SessionHandler{sess: sess}
}

// State returns the session snapshot.
func (h *SessionHandler) State(w http.ResponseWriter, r *http.Request) {
    respond(w, http.StatusOK, h.sess.State())
}

// Checkout switches the active feature set.
func (h *SessionHandler) Checkout(w http.ResponseWriter, r *http.Request) {
    var req types.CheckoutRequest
    if err := decode(r, &req); err != nil {
        respondErr(w, err)
        return
    }
    if err := h.sess.Checkout(req.FeatureSet); err != nil {
        respondErr(w, err)
        return
    }
    respond(w, http.StatusOK, h.sess.State())
}

// Editing toggles editing mode.
func (h *SessionHandler) Editing(w http.ResponseWriter, r *http.Request) {
    var req types.EditingRequest
    if err := decode(r, &req); err != nil {
        respondErr(w, err)
        return
    }
    h.sess.SetEditing(req.Editing)
    respond(w, http.StatusOK, h.sess.State())
}

// AddNode appends a node to the working copy.
func (h *SessionHandler) AddNode(w http.ResponseWriter, r *http.Request) {
    var req types.NodeCreateRequest
    if err := decode(r, &req); err != nil {
        respondErr(w, err)
        return
    }
    n, err := h.sess.AddNode(session.NodeInput{
        ID:            req.ID,
        Label:         req.Label,
        Type:          req.Type,
        Env:           req.Env,
        ComponentType: req.ComponentType,
        Attrs:         req.Attrs,
    })
    if err != nil {
        respondErr(w, err)
        return
    }
    respond(w, http.StatusCreated, n)
}

// RemoveNode removes a node and its incident edges.
func (h *SessionHandler) RemoveNode(w http.ResponseWriter, r *http.Request) {
    if err := h.sess.RemoveNode(chi.URLParam(r, "id")); err != nil {
        respondErr(w, err)
        return
    }
    respond(w, http.StatusOK, h.sess.State())
}

// AddEdge appends an edge to the working copy.
func (h *SessionHandler) AddEdge(w http.ResponseWriter, r *http.Request) {
    var req types.EdgeCreateRequest
    if err := decode(r, &req); err != nil {
        respondErr(w, err)
        return
    }
    e, err := h.sess.AddEdge(session.EdgeInput{
        Src:   req.Src,
        Dst:   req.Dst,
        Verb:  req.Verb,
        Attrs: req.Attrs,
    })
    if err != nil {
        respondErr(w, err)
        return
    }
    respond(w, http.StatusCreated, e)
}

// RemoveEdge removes an edge by id.
func (h *SessionHandler) RemoveEdge(w http.ResponseWriter, r *http.Request) {
    if err := h.sess.RemoveEdge(chi.URLParam(r, "id")); err != nil {
        respondErr(w, err)
        return
    }
    respond(w, http.StatusOK, h.sess.State())
}

// Import replaces the working copy with the posted graph JSON.
func (h *SessionHandler) Import(w http.ResponseWriter, r *http.Request) {
    raw, err := io.ReadAll(r.Body)
    if err != nil {
        respondErr(w, appErr.Wrap(err, appErr.CodeInvalid, "read request body"))
        return
    }
    if err := h.sess.Import(raw); err != nil {
        respondErr(w, err)
        return
    }
    respond(w, http.StatusOK, h.sess.State())
}

// Export writes the active graph as transferable JSON.
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
    raw, err := h.sess.Export()
    if err != nil {
        respondErr(w, appErr.Wrap(err, appErr.CodeInternal, "export graph"))
        return
    }
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write(raw)
}

// Sync commits the working copy. The handler waits for the deferred
// completion; the session itself stays responsive throughout.
func (h *SessionHandler) Sync(w http.ResponseWriter, r *http.Request) {
    done, err := h.sess.Sync()
    if err != nil {
        respondErr(w, err)
        return
    }
    res := <-done
    respond(w, http.StatusOK, res)
}

// View runs the filter pipeline over the session's active graph (working
// copy while editing).
func (h *SessionHandler) View(w http.ResponseWriter, r *http.Request) {
    opts, err := filterOptions(r)
    if err != nil {
        respondErr(w, err)
        return
    }
    respond(w, http.StatusOK, flow.Apply(h.sess.WorkingView(), opts))
}

// Path finds the shortest directed path in the session's active graph.
func (h *SessionHandler) Path(w http.ResponseWriter, r *http.Request) {
    from := r.URL.Query().Get("from")
    to := r.URL.Query().Get("to")
    if from == "" || to == "" {
        respondErr(w, appErr.New(appErr.CodeInvalid, "from and to node ids are required"))
        return
    }
    p, err := flow.FindPath(h.sess.WorkingView(), from, to)
    if err != nil {
        respondErr(w, err)
        return
    }
    respond(w, http.StatusOK, p)
}

// Pick forwards a renderer selection event; a null selection clears it.
func (h *SessionHandler) Pick(w http.ResponseWriter, r *http.Request) {
    var req types.PickRequest
    if err := decode(r, &req); err != nil {
        respondErr(w, err)
        return
    }
    if req.Selection == nil {
        h.sess.Pick(nil)
    } else {
        h.sess.Pick(&session.Selection{Type: req.Selection.Type, Data: req.Selection.Data})
    }
    respond(w, http.StatusOK, h.sess.State())
}
