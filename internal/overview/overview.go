// Package overview classifies feature-set components by traffic severity
// against configured warn/crit thresholds.
package overview

import (
	"encoding/json"
	"os"
	"strings"

	appErr "github.com/nexusnova/atlas/pkg/errors"
)

// Severity is the classification of a component's traffic.
type Severity string

const (
	SeverityOK   Severity = "ok"
	SeverityWarn Severity = "warn"
	SeverityCrit Severity = "crit"
)

// Threshold is one inRps/outRps pair.
type Threshold struct {
	InRps  float64 `json:"inRps"`
	OutRps float64 `json:"outRps"`
}

// Thresholds holds the warn and crit boundaries.
type Thresholds struct {
	Warn Threshold `json:"warn"`
	Crit Threshold `json:"crit"`
}

// Component is one entry of a feature set's catalogue.
type Component struct {
	ID       string   `json:"id"`
	InRps    float64  `json:"inRps"`
	OutRps   float64  `json:"outRps"`
	Severity Severity `json:"severity,omitempty"`
}

// FeatureSet is a named group of components.
type FeatureSet struct {
	Name       string      `json:"name"`
	Components []Component `json:"components"`
}

// Catalogue is the feature-set overview document.
type Catalogue struct {
	StatusThresholds Thresholds   `json:"statusThresholds"`
	FeatureSets      []FeatureSet `json:"featureSets"`
}

// Classify applies the threshold rule: crit when either metric meets or
// exceeds its crit boundary, warn under the same rule, ok otherwise.
func Classify(inRps, outRps float64, t Thresholds) Severity {
	if inRps >= t.Crit.InRps || outRps >= t.Crit.OutRps {
		return SeverityCrit
	}
	if inRps >= t.Warn.InRps || outRps >= t.Warn.OutRps {
		return SeverityWarn
	}
	return SeverityOK
}

// Service serves the classified overview.
type Service struct {
	cat Catalogue
}

// NewService wraps a loaded catalogue.
func NewService(cat Catalogue) *Service {
	return &Service{cat: cat}
}

// LoadCatalogue parses a catalogue file.
func LoadCatalogue(path string) (Catalogue, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalogue{}, appErr.Wrap(err, appErr.CodeInternal, "read feature set catalogue")
	}
	var cat Catalogue
	if err := json.Unmarshal(raw, &cat); err != nil {
		return Catalogue{}, appErr.Wrap(err, appErr.CodeInvalid, "invalid feature set catalogue")
	}
	return cat, nil
}

// FilterOptions narrow the overview listing.
type FilterOptions struct {
	Query      string
	Severities map[Severity]bool // missing defaults to true
}

// FeatureSets returns the catalogue with per-component severity attached,
// filtered by query substring and severity flags. Feature sets left with no
// components are dropped.
func (s *Service) FeatureSets(opts FilterOptions) []FeatureSet {
	out := make([]FeatureSet, 0, len(s.cat.FeatureSets))
	q := strings.ToLower(opts.Query)
	for _, fs := range s.cat.FeatureSets {
		kept := make([]Component, 0, len(fs.Components))
		for _, c := range fs.Components {
			c.Severity = Classify(c.InRps, c.OutRps, s.cat.StatusThresholds)
			if q != "" && !strings.Contains(strings.ToLower(c.ID), q) {
				continue
			}
			if enabled, known := opts.Severities[c.Severity]; known && !enabled {
				continue
			}
			kept = append(kept, c)
		}
		if len(kept) > 0 {
			out = append(out, FeatureSet{Name: fs.Name, Components: kept})
		}
	}
	return out
}

// Thresholds exposes the configured boundaries.
func (s *Service) Thresholds() Thresholds {
	return s.cat.StatusThresholds
}
