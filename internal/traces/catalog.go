// Package traces serves the static trace catalogue: summaries for the list
// view and full span trees by trace id. It is a read-only mapping layer
// with no ingestion semantics.
package traces

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	appErr "github.com/nexusnova/atlas/pkg/errors"
)

// Span is one operation within a trace.
type Span struct {
	SpanID        string         `json:"spanId"`
	ParentSpanID  string         `json:"parentSpanId"`
	ServiceName   string         `json:"serviceName"`
	OperationName string         `json:"operationName"`
	StartTime     string         `json:"startTime"`
	Duration      int64          `json:"duration"`
	Tags          map[string]any `json:"tags,omitempty"`
}

// Trace is one end-to-end request with its spans.
type Trace struct {
	TraceID       string `json:"traceId"`
	ServiceName   string `json:"serviceName"`
	OperationName string `json:"operationName"`
	StartTime     string `json:"startTime"`
	Duration      int64  `json:"duration"`
	Spans         []Span `json:"spans"`
}

// Summary is the list-view projection of a trace.
type Summary struct {
	TraceID       string `json:"traceId"`
	ServiceName   string `json:"serviceName"`
	OperationName string `json:"operationName"`
	StartTime     string `json:"startTime"`
	Duration      int64  `json:"duration"`
	SpanCount     int    `json:"spanCount"`
}

type catalogDoc struct {
	Traces []Trace `json:"traces"`
}

// Catalog indexes a fixed set of traces by id.
type Catalog struct {
	mu    sync.RWMutex
	order []Trace
	byID  map[string]Trace
}

// NewCatalog indexes the given traces.
func NewCatalog(traces []Trace) *Catalog {
	c := &Catalog{order: traces, byID: make(map[string]Trace, len(traces))}
	for _, t := range traces {
		c.byID[t.TraceID] = t
	}
	return c
}

// Load parses a traces file of shape {"traces":[...]}.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "read traces file")
	}
	var doc catalogDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, "invalid traces file")
	}
	return NewCatalog(doc.Traces), nil
}

// ListOptions filter trace summaries. Substring matches, case-insensitive.
type ListOptions struct {
	Service   string
	Operation string
	TraceID   string
}

// List returns summaries in catalogue order.
func (c *Catalog) List(opts ListOptions) []Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Summary, 0, len(c.order))
	for _, t := range c.order {
		if !contains(t.ServiceName, opts.Service) ||
			!contains(t.OperationName, opts.Operation) ||
			!contains(t.TraceID, opts.TraceID) {
			continue
		}
		out = append(out, Summary{
			TraceID:       t.TraceID,
			ServiceName:   t.ServiceName,
			OperationName: t.OperationName,
			StartTime:     t.StartTime,
			Duration:      t.Duration,
			SpanCount:     len(t.Spans),
		})
	}
	return out
}

// Get returns the full trace for id.
func (c *Catalog) Get(id string) (Trace, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.byID[id]
	if !ok {
		return Trace{}, appErr.Newf(appErr.CodeNotFound, "trace not found: %s", id)
	}
	return t, nil
}

func contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
