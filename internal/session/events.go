package session

// EventKind names a session event.
type EventKind string

const (
	EventCheckout       EventKind = "checkout"
	EventEditingChanged EventKind = "editing_changed"
	EventNodeAdded      EventKind = "node_added"
	EventNodeRemoved    EventKind = "node_removed"
	EventEdgeAdded      EventKind = "edge_added"
	EventEdgeRemoved    EventKind = "edge_removed"
	EventImported       EventKind = "imported"
	EventSynced         EventKind = "synced"
	EventFeatureSetNew  EventKind = "feature_set_created"
	EventPicked         EventKind = "picked"
)

// Event is delivered to subscribers after the session state has changed.
// Data carries the affected node, edge, or selection.
type Event struct {
	Kind       EventKind `json:"kind"`
	FeatureSet string    `json:"feature_set"`
	Data       any       `json:"data,omitempty"`
}

// Selection is the renderer-side pick contract: a node or an edge, or nil
// for a click on empty canvas.
type Selection struct {
	Type string `json:"type"` // "node" or "edge"
	Data any    `json:"data"`
}

// Subscribe registers fn for every subsequent event and returns an
// unsubscribe func. Callbacks run outside the session lock, in emit order.
func (s *Session) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Pick forwards a selection event from the rendering layer. A nil selection
// means the pick was cleared.
func (s *Session) Pick(sel *Selection) {
	s.mu.Lock()
	fs := s.active
	s.mu.Unlock()
	s.emit(Event{Kind: EventPicked, FeatureSet: fs, Data: sel})
}

func (s *Session) emit(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
