package handlers

import (
    "net/http"
    "testing"

    "github.com/go-chi/chi/v5"

    "github.com/nexusnova/atlas/internal/overview"
)

func overviewRouter() *chi.Mux {
    svc := overview.NewService(overview.Catalogue{
        StatusThresholds: overview.Thresholds{
            Warn: overview.Threshold{InRps: 100, OutRps: 80},
            Crit: overview.Threshold{InRps: 200, OutRps: 160},
        },
        FeatureSets: []overview.FeatureSet{
            {Name: "BILLING_CORE", Components: []overview.Component{
                {ID: "svc:billing-api", InRps: 50, OutRps: 40},
                {ID: "svc:invoice-worker", InRps: 250, OutRps: 10},
            }},
        },
    })
    r := chi.NewRouter()
    r.Get("/overview", NewOverviewHandler(svc).Get)
    return r
}

func TestOverviewGet(t *testing.T) {
    r := overviewRouter()
    rr, env := do(t, r, http.MethodGet, "/overview", "")
    if rr.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d", rr.Code)
    }
    data := env.Data.(map[string]interface{})
    sets := data["feature_sets"].([]interface{})
    if len(sets) != 1 {
        t.Fatalf("expected 1 feature set, got %d", len(sets))
    }
    comps := sets[0].(map[string]interface{})["components"].([]interface{})
    if comps[1].(map[string]interface{})["severity"] != "crit" {
        t.Fatalf("expected crit severity, got %v", comps[1])
    }
}

func TestOverviewSeverityFilter(t *testing.T) {
    r := overviewRouter()
    rr, env := do(t, r, http.MethodGet, "/overview?severity=crit", "")
    if rr.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d", rr.Code)
    }
    data := env.Data.(map[string]interface{})
    sets := data["feature_sets"].([]interface{})
    comps := sets[0].(map[string]interface{})["components"].([]interface{})
    if len(comps) != 1 {
        t.Fatalf("expected only the crit component, got %d", len(comps))
    }
}

func TestOverviewQueryFilterDropsEmptySets(t *testing.T) {
    r := overviewRouter()
    rr, env := do(t, r, http.MethodGet, "/overview?q=no-such-component", "")
    if rr.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d", rr.Code)
    }
    data := env.Data.(map[string]interface{})
    if sets := data["feature_sets"].([]interface{}); len(sets) != 0 {
        t.Fatalf("expected no feature sets, got %v", sets)
    }
}
