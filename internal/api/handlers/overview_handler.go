package handlers

import (
    "net/http"
    "strings"

    "github.com/nexusnova/atlas/internal/overview"
)

// OverviewHandler serves the classified feature-set overview.
type OverviewHandler struct {
    svc *overview.Service
}

func NewOverviewHandler(svc *overview.Service) *OverviewHandler {
    return &OverviewHandler{svc: svc}
}

// Get lists feature sets with per-component severity.
// Query params: q (component id substring), severity (comma list to keep).
func (h *OverviewHandler) Get(w http.ResponseWriter, r *http.Request) {
    q := r.URL.Query()
    opts := overview.FilterOptions{Query: q.Get("q")}
    if sev := q.Get("severity"); sev != "" {
        opts.Severities = map[overview.Severity]bool{
            overview.SeverityOK:   false,
            overview.SeverityWarn: false,
            overview.SeverityCrit: false,
        }
        for _, s := range strings.Split(sev, ",") {
            opts.Severities[overview.Severity(s)] = true
        }
    }
    respond(w, http.StatusOK, map[string]any{
        "thresholds":   h.svc.Thresholds(),
        "feature_sets": h.svc.FeatureSets(opts),
    })
}
