// Package session implements the edit workflow over committed feature-set
// graphs: a disposable working copy, a dirty flag, validated mutations, and
// a simulated-latency sync that is the only path by which committed state
// changes.
package session

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nexusnova/atlas/internal/models"
	"github.com/nexusnova/atlas/internal/registry"
	appErr "github.com/nexusnova/atlas/pkg/errors"
	"github.com/nexusnova/atlas/pkg/logger"
)

// Session holds the mutable working copy for the active feature set.
// All mutations require editing mode; in view mode every mutation entry
// point is rejected and the committed graphs stay untouched.
type Session struct {
	mu  sync.Mutex
	reg *registry.Registry

	active  string
	working *models.Graph
	editing bool
	dirty   bool

	// syncing gates the one-pending-sync-at-a-time discipline; gen counts
	// successful mutations so a commit can tell whether edits landed while
	// the simulated latency was running.
	syncing bool
	gen     uint64

	latency      time.Duration
	lastSyncedAt *time.Time

	subs      map[uint64]func(Event)
	nextSubID uint64
}

// State is a read-only snapshot of the session for callers.
type State struct {
	ActiveFeatureSet string     `json:"active_feature_set"`
	Editing          bool       `json:"editing"`
	Dirty            bool       `json:"dirty"`
	Syncing          bool       `json:"syncing"`
	LastSyncedAt     *time.Time `json:"last_synced_at,omitempty"`
}

// New creates a session over reg with the given active feature set and
// simulated sync latency. The session starts in view mode.
func New(reg *registry.Registry, active string, latency time.Duration) *Session {
	return &Session{
		reg:     reg,
		active:  active,
		latency: latency,
		subs:    map[uint64]func(Event){},
	}
}

// State returns the current session snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ActiveFeatureSet: s.active,
		Editing:          s.editing,
		Dirty:            s.dirty,
		Syncing:          s.syncing,
		LastSyncedAt:     s.lastSyncedAt,
	}
}

// Checkout switches the active feature set, discarding any working copy in
// favor of a fresh deep copy of the newly active committed graph.
func (s *Session) Checkout(name string) error {
	s.mu.Lock()
	if !s.reg.Has(name) {
		s.mu.Unlock()
		return appErr.Newf(appErr.CodeNotFound, "unknown feature set: %s", name)
	}
	s.active = name
	s.dirty = false
	if s.editing {
		s.working = s.committed().Clone()
	} else {
		s.working = nil
	}
	s.mu.Unlock()
	s.emit(Event{Kind: EventCheckout, FeatureSet: name})
	return nil
}

// SetEditing toggles editing mode. Entering creates a fresh working copy;
// leaving discards it along with any unsynced edits.
func (s *Session) SetEditing(on bool) {
	s.mu.Lock()
	if s.editing == on {
		s.mu.Unlock()
		return
	}
	s.editing = on
	if on {
		s.working = s.committed().Clone()
	} else {
		s.working = nil
		s.dirty = false
	}
	fs := s.active
	s.mu.Unlock()
	s.emit(Event{Kind: EventEditingChanged, FeatureSet: fs, Data: on})
}

// Editing reports whether the session is in editing mode.
func (s *Session) Editing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing
}

// committed returns the committed graph for the active feature set,
// creating a blank entry on first touch. Callers hold s.mu.
func (s *Session) committed() *models.Graph {
	g, ok := s.reg.Get(s.active)
	if !ok {
		g = models.NewGraph()
		s.reg.Set(s.active, g)
	}
	return g
}

// activeGraph is the graph reads resolve against: the working copy while
// editing, otherwise the committed graph. Callers hold s.mu.
func (s *Session) activeGraph() *models.Graph {
	if s.editing {
		return s.working
	}
	return s.committed()
}

// NodeInput is the payload for AddNode. Attrs is optional; when absent the
// node gets the default attrs shape carrying its component type.
type NodeInput struct {
	ID            string          `json:"id"`
	Label         string          `json:"label"`
	Type          models.NodeType `json:"type"`
	Env           string          `json:"env"`
	ComponentType string          `json:"component_type"`
	Attrs         map[string]any  `json:"attrs"`
}

// AddNode validates and appends a node to the working copy. All-or-nothing:
// a rejected call leaves the graph untouched.
func (s *Session) AddNode(in NodeInput) (models.Node, error) {
	s.mu.Lock()
	if err := s.requireEditing(); err != nil {
		s.mu.Unlock()
		return models.Node{}, err
	}
	if in.ID == "" || in.Type == "" {
		s.mu.Unlock()
		return models.Node{}, appErr.New(appErr.CodeInvalidNode, "node id and type are required")
	}
	if !models.KnownNodeType(in.Type) {
		s.mu.Unlock()
		return models.Node{}, appErr.Newf(appErr.CodeUnknownNodeType, "unknown node type: %s", in.Type)
	}
	n := models.Node{ID: in.ID, Label: in.Label, Type: in.Type, Env: in.Env, Attrs: in.Attrs}
	if n.Label == "" {
		n.Label = n.ID
	}
	if n.Attrs == nil {
		ct := in.ComponentType
		if ct == "" {
			ct = string(in.Type)
		}
		n.Attrs = map[string]any{"componentType": ct}
	}
	if err := s.working.AddNode(n); err != nil {
		s.mu.Unlock()
		return models.Node{}, err
	}
	s.markDirty()
	fs := s.active
	s.mu.Unlock()
	s.emit(Event{Kind: EventNodeAdded, FeatureSet: fs, Data: n})
	return n, nil
}

// RemoveNode removes the node and cascades over every incident edge.
// Removing an absent id is a no-op, not an error.
func (s *Session) RemoveNode(id string) error {
	s.mu.Lock()
	if err := s.requireEditing(); err != nil {
		s.mu.Unlock()
		return err
	}
	removed := s.working.RemoveNode(id)
	if removed {
		s.markDirty()
	}
	fs := s.active
	s.mu.Unlock()
	if removed {
		s.emit(Event{Kind: EventNodeRemoved, FeatureSet: fs, Data: id})
	}
	return nil
}

// EdgeInput is the payload for AddEdge.
type EdgeInput struct {
	Src   string         `json:"src"`
	Dst   string         `json:"dst"`
	Verb  models.Verb    `json:"verb"`
	Attrs map[string]any `json:"attrs"`
}

// AddEdge validates endpoints against the working copy and appends the
// edge. An edge whose derived id already exists silently replaces the old
// one; the id being a pure function of the triple makes that the designed
// outcome rather than a conflict.
func (s *Session) AddEdge(in EdgeInput) (models.Edge, error) {
	s.mu.Lock()
	if err := s.requireEditing(); err != nil {
		s.mu.Unlock()
		return models.Edge{}, err
	}
	if in.Src == "" || in.Dst == "" || in.Verb == "" {
		s.mu.Unlock()
		return models.Edge{}, appErr.New(appErr.CodeInvalidEdge, "edge source, target and verb are required")
	}
	if !models.KnownVerb(in.Verb) {
		s.mu.Unlock()
		return models.Edge{}, appErr.Newf(appErr.CodeUnknownVerb, "unknown verb: %s", in.Verb)
	}
	if !s.working.HasNode(in.Src) || !s.working.HasNode(in.Dst) {
		s.mu.Unlock()
		return models.Edge{}, appErr.New(appErr.CodeDanglingEndpoint, "both source and target nodes must exist")
	}
	attrs := in.Attrs
	if attrs == nil {
		attrs = map[string]any{}
	}
	e := models.Edge{
		ID:    models.EdgeID(in.Src, in.Dst, in.Verb),
		Src:   in.Src,
		Dst:   in.Dst,
		Verb:  in.Verb,
		Attrs: attrs,
	}
	s.working.PutEdge(e)
	s.markDirty()
	fs := s.active
	s.mu.Unlock()
	s.emit(Event{Kind: EventEdgeAdded, FeatureSet: fs, Data: e})
	return e, nil
}

// RemoveEdge removes the edge by id; absent ids are a no-op.
func (s *Session) RemoveEdge(id string) error {
	s.mu.Lock()
	if err := s.requireEditing(); err != nil {
		s.mu.Unlock()
		return err
	}
	removed := s.working.RemoveEdge(id)
	if removed {
		s.markDirty()
	}
	fs := s.active
	s.mu.Unlock()
	if removed {
		s.emit(Event{Kind: EventEdgeRemoved, FeatureSet: fs, Data: id})
	}
	return nil
}

// importDoc distinguishes absent sequences from empty ones.
type importDoc struct {
	Nodes *[]models.Node `json:"nodes"`
	Edges *[]models.Edge `json:"edges"`
}

// Import replaces the entire working copy with the supplied graph JSON (no
// merge), forces editing mode on, and marks the session dirty. The payload
// must carry both a node and an edge sequence, node ids must be unique, and
// every edge endpoint must resolve to an imported node.
func (s *Session) Import(raw []byte) error {
	var doc importDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return appErr.Wrap(err, appErr.CodeInvalidImport, "invalid graph JSON")
	}
	if doc.Nodes == nil || doc.Edges == nil {
		return appErr.New(appErr.CodeInvalidImport, "payload must carry nodes and edges sequences")
	}
	g, err := models.FromParts(*doc.Nodes, *doc.Edges)
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInvalidImport, "invalid graph payload")
	}
	for _, e := range g.Edges() {
		if !g.HasNode(e.Src) || !g.HasNode(e.Dst) {
			return appErr.Newf(appErr.CodeInvalidImport, "edge %s references a missing node", e.ID)
		}
	}

	s.mu.Lock()
	s.editing = true
	s.working = g
	s.markDirty()
	fs := s.active
	s.mu.Unlock()
	s.emit(Event{Kind: EventImported, FeatureSet: fs})
	return nil
}

// Export serializes the currently active graph (working copy while editing,
// committed otherwise) as {"nodes":[...],"edges":[...]}. Pure.
func (s *Session) Export() ([]byte, error) {
	s.mu.Lock()
	g := s.activeGraph()
	s.mu.Unlock()
	return json.Marshal(g)
}

// SyncResult reports a completed commit.
type SyncResult struct {
	FeatureSet string    `json:"feature_set"`
	SyncedAt   time.Time `json:"synced_at"`
}

// Sync commits a snapshot of the working copy into the registry under the
// active feature-set name after the configured simulated latency. The
// returned channel resolves exactly once. Only one sync may be in flight;
// a second call is rejected with conflict. Edits issued during the latency
// window are not part of the snapshot and leave the session dirty again.
func (s *Session) Sync() (<-chan SyncResult, error) {
	s.mu.Lock()
	if !s.editing {
		s.mu.Unlock()
		return nil, appErr.New(appErr.CodeInvalid, "editing mode required")
	}
	if s.syncing {
		s.mu.Unlock()
		return nil, appErr.New(appErr.CodeConflict, "sync already in progress")
	}
	s.syncing = true
	snapshot := s.working.Clone()
	gen := s.gen
	name := s.active
	s.mu.Unlock()

	done := make(chan SyncResult, 1)
	go func() {
		time.Sleep(s.latency)

		s.mu.Lock()
		s.reg.Set(name, snapshot)
		s.syncing = false
		if s.gen == gen && s.active == name {
			s.dirty = false
		}
		now := time.Now()
		s.lastSyncedAt = &now
		s.mu.Unlock()

		logger.L().Info("feature set synced",
			zap.String("feature_set", name),
			zap.Int("nodes", snapshot.NodeCount()),
			zap.Int("edges", snapshot.EdgeCount()),
		)
		s.emit(Event{Kind: EventSynced, FeatureSet: name})
		done <- SyncResult{FeatureSet: name, SyncedAt: now}
	}()
	return done, nil
}

// NewFeatureSet creates an empty committed graph under name, switches the
// session to it, and enters editing mode with a dirty working copy.
func (s *Session) NewFeatureSet(name string) error {
	if name == "" {
		return appErr.New(appErr.CodeInvalid, "feature set name is required")
	}
	s.mu.Lock()
	if s.reg.Has(name) {
		s.mu.Unlock()
		return appErr.Newf(appErr.CodeDuplicateFeatureSet, "feature set already exists: %s", name)
	}
	s.reg.Set(name, models.NewGraph())
	s.active = name
	s.editing = true
	s.working = models.NewGraph()
	s.markDirty()
	s.mu.Unlock()
	s.emit(Event{Kind: EventFeatureSetNew, FeatureSet: name})
	return nil
}

// WorkingView returns a deep copy of the graph reads currently resolve
// against, for filtering and path queries.
func (s *Session) WorkingView() *models.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeGraph().Clone()
}

// requireEditing enforces the single mutation rule: all mutations require
// editing mode, and sync is the only way committed state changes.
// Callers hold s.mu.
func (s *Session) requireEditing() error {
	if !s.editing {
		return appErr.New(appErr.CodeInvalid, "editing mode required")
	}
	return nil
}

// markDirty flags unsynced edits and bumps the mutation generation so an
// in-flight sync knows its snapshot is stale. Callers hold s.mu.
func (s *Session) markDirty() {
	s.dirty = true
	s.gen++
}
