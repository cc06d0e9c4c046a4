package overview

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testThresholds = Thresholds{
	Warn: Threshold{InRps: 100, OutRps: 80},
	Crit: Threshold{InRps: 200, OutRps: 160},
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		in     float64
		out    float64
		expect Severity
	}{
		{"both below warn", 50, 40, SeverityOK},
		{"in at warn boundary", 100, 0, SeverityWarn},
		{"out at warn boundary", 0, 80, SeverityWarn},
		{"just under warn", 99.9, 79.9, SeverityOK},
		{"in at crit boundary", 200, 0, SeverityCrit},
		{"out at crit boundary", 0, 160, SeverityCrit},
		{"either metric is enough for crit", 10, 500, SeverityCrit},
		{"between warn and crit", 150, 0, SeverityWarn},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, Classify(tc.in, tc.out, testThresholds))
		})
	}
}

func testService() *Service {
	return NewService(Catalogue{
		StatusThresholds: testThresholds,
		FeatureSets: []FeatureSet{
			{Name: "BILLING_CORE", Components: []Component{
				{ID: "svc:billing-api", InRps: 50, OutRps: 40},
				{ID: "svc:invoice-worker", InRps: 250, OutRps: 10},
			}},
			{Name: "DEVICE_MGMT", Components: []Component{
				{ID: "svc:device-registry", InRps: 120, OutRps: 20},
			}},
		},
	})
}

func TestFeatureSetsAttachesSeverity(t *testing.T) {
	got := testService().FeatureSets(FilterOptions{})
	require.Len(t, got, 2)
	require.Equal(t, SeverityOK, got[0].Components[0].Severity)
	require.Equal(t, SeverityCrit, got[0].Components[1].Severity)
	require.Equal(t, SeverityWarn, got[1].Components[0].Severity)
}

func TestFeatureSetsQueryFilter(t *testing.T) {
	got := testService().FeatureSets(FilterOptions{Query: "DEVICE"})
	require.Len(t, got, 1)
	require.Equal(t, "DEVICE_MGMT", got[0].Name)
	require.Equal(t, "svc:device-registry", got[0].Components[0].ID)
}

func TestFeatureSetsSeverityFilterDropsEmptySets(t *testing.T) {
	got := testService().FeatureSets(FilterOptions{
		Severities: map[Severity]bool{SeverityOK: false, SeverityCrit: false},
	})
	// Only the warn component survives; BILLING_CORE loses everything and
	// is dropped from the listing.
	require.Len(t, got, 1)
	require.Equal(t, "DEVICE_MGMT", got[0].Name)
}

func TestFeatureSetsMissingSeverityDefaultsToEnabled(t *testing.T) {
	got := testService().FeatureSets(FilterOptions{
		Severities: map[Severity]bool{SeverityCrit: false},
	})
	require.Len(t, got, 2)
	for _, fs := range got {
		for _, c := range fs.Components {
			require.NotEqual(t, SeverityCrit, c.Severity)
		}
	}
}
