package classifier

import (
	"math"
	"testing"
)

func mustNew(t *testing.T, tiers []Tier) *Classifier {
	t.Helper()
	c, err := New(tiers)
	if err != nil {
		t.Fatalf("New(%v) failed: %v", tiers, err)
	}
	return c
}

func TestClassifierAssignsCriticalToClosePair(t *testing.T) {
	c := mustNew(t, DefaultTiers())

	planes := []Track{{ID: "P1", Latitude: 40.7128, Longitude: -74.0060, AltitudeM: 200}}
	drones := []Track{{ID: "D1", Latitude: 40.71325, Longitude: -74.00601, AltitudeM: 220}}

	result := c.Evaluate(planes, drones)
	if len(result.Threats) != 1 {
		t.Fatalf("got %d threats, want 1", len(result.Threats))
	}
	threat := result.Threats[0]
	if threat.Tier != "critical" {
		t.Errorf("tier = %q, want critical", threat.Tier)
	}
	if threat.HorizontalKm > 0.1 {
		t.Errorf("horizontal distance = %f km, want <= 0.1", threat.HorizontalKm)
	}
	if got := threat.VerticalM; math.Abs(got-20) > 1e-9 {
		t.Errorf("vertical distance = %f m, want 20", got)
	}
}

func TestClassifierIgnoresPairBeyondLoosestTier(t *testing.T) {
	c := mustNew(t, DefaultTiers())

	planes := []Track{{ID: "P1", Latitude: 40.7128, Longitude: -74.0060, AltitudeM: 200}}
	drones := []Track{{ID: "D2", Latitude: 40.7228, Longitude: -74.0060, AltitudeM: 220}}

	result := c.Evaluate(planes, drones)
	if len(result.Threats) != 0 {
		t.Fatalf("got %d threats for a pair ~1.1 km apart, want 0", len(result.Threats))
	}
}

func TestClassifierPicksTightestMatchingTier(t *testing.T) {
	c := mustNew(t, DefaultTiers())

	// ~0.25 km apart with 40 m vertical: inside high but outside critical.
	planes := []Track{{ID: "P1", Latitude: 40.7128, Longitude: -74.0060, AltitudeM: 200}}
	drones := []Track{{ID: "D1", Latitude: 40.71505, Longitude: -74.0060, AltitudeM: 240}}

	result := c.Evaluate(planes, drones)
	if len(result.Threats) != 1 {
		t.Fatalf("got %d threats, want 1", len(result.Threats))
	}
	if result.Threats[0].Tier != "high" {
		t.Errorf("tier = %q, want high", result.Threats[0].Tier)
	}
	if result.Threats[0].TierIndex != 1 {
		t.Errorf("tier index = %d, want 1", result.Threats[0].TierIndex)
	}
}

func TestClassifierIdenticalPositionsLandInTightestTier(t *testing.T) {
	c := mustNew(t, DefaultTiers())

	planes := []Track{{ID: "P1", Latitude: 40.7128, Longitude: -74.0060, AltitudeM: 200}}
	drones := []Track{{ID: "D1", Latitude: 40.7128, Longitude: -74.0060, AltitudeM: 200}}

	result := c.Evaluate(planes, drones)
	if len(result.Threats) != 1 {
		t.Fatalf("got %d threats, want 1", len(result.Threats))
	}
	threat := result.Threats[0]
	if threat.Tier != "critical" {
		t.Errorf("tier = %q, want critical", threat.Tier)
	}
	if threat.HorizontalKm != 0 || threat.VerticalM != 0 {
		t.Errorf("distances = (%f km, %f m), want (0, 0)", threat.HorizontalKm, threat.VerticalM)
	}
}

func TestClassifierIsSymmetricInDistance(t *testing.T) {
	c := mustNew(t, DefaultTiers())

	p := Track{ID: "P1", Latitude: 40.7128, Longitude: -74.0060, AltitudeM: 200}
	d := Track{ID: "D1", Latitude: 40.71325, Longitude: -74.00601, AltitudeM: 220}

	forward := c.Evaluate([]Track{p}, []Track{d})
	reverse := c.Evaluate([]Track{d}, []Track{p})
	if len(forward.Threats) != 1 || len(reverse.Threats) != 1 {
		t.Fatalf("got %d and %d threats, want 1 and 1", len(forward.Threats), len(reverse.Threats))
	}
	if forward.Threats[0].HorizontalKm != reverse.Threats[0].HorizontalKm {
		t.Errorf("horizontal distance differs by direction: %f vs %f",
			forward.Threats[0].HorizontalKm, reverse.Threats[0].HorizontalKm)
	}
	if forward.Threats[0].Tier != reverse.Threats[0].Tier {
		t.Errorf("tier differs by direction: %q vs %q", forward.Threats[0].Tier, reverse.Threats[0].Tier)
	}
}

func TestClassifierEmptyCollectionsYieldEmptyResult(t *testing.T) {
	c := mustNew(t, DefaultTiers())

	result := c.Evaluate(nil, nil)
	if len(result.Threats) != 0 || result.SkippedA != 0 || result.SkippedB != 0 {
		t.Errorf("empty pass produced %+v, want empty result", result)
	}

	result = c.Evaluate([]Track{{ID: "P1", Latitude: 1, Longitude: 1, AltitudeM: 100}}, nil)
	if len(result.Threats) != 0 {
		t.Errorf("pass with no drones produced %d threats, want 0", len(result.Threats))
	}
}

func TestClassifierSkipsInvalidPositionsWithoutAborting(t *testing.T) {
	c := mustNew(t, DefaultTiers())

	planes := []Track{
		{ID: "BAD", Latitude: math.NaN(), Longitude: -74.0060, AltitudeM: 200},
		{ID: "P1", Latitude: 40.7128, Longitude: -74.0060, AltitudeM: 200},
	}
	drones := []Track{
		{ID: "D1", Latitude: 40.7128, Longitude: -74.0060, AltitudeM: 210},
		{ID: "OUT", Latitude: 95, Longitude: -74.0060, AltitudeM: 210},
	}

	result := c.Evaluate(planes, drones)
	if result.SkippedA != 1 {
		t.Errorf("SkippedA = %d, want 1", result.SkippedA)
	}
	if result.SkippedB != 1 {
		t.Errorf("SkippedB = %d, want 1", result.SkippedB)
	}
	if len(result.Threats) != 1 {
		t.Fatalf("got %d threats, want 1 from the remaining valid pair", len(result.Threats))
	}
	if result.Threats[0].AID != "P1" || result.Threats[0].BID != "D1" {
		t.Errorf("threat pair = (%s, %s), want (P1, D1)", result.Threats[0].AID, result.Threats[0].BID)
	}
}

func TestClassifierNeverPairsIdenticalIDs(t *testing.T) {
	c := mustNew(t, DefaultTiers())

	tracks := []Track{
		{ID: "A", Latitude: 40.7128, Longitude: -74.0060, AltitudeM: 200},
		{ID: "B", Latitude: 40.7129, Longitude: -74.0060, AltitudeM: 205},
	}

	result := c.Evaluate(tracks, tracks)
	for _, threat := range result.Threats {
		if threat.AID == threat.BID {
			t.Errorf("track %s was paired with itself", threat.AID)
		}
	}
	if len(result.Threats) != 2 {
		t.Errorf("got %d threats from a same-collection sweep, want 2", len(result.Threats))
	}
}

func TestClassifierBoundaryDistancesAreInclusive(t *testing.T) {
	c := mustNew(t, []Tier{{Name: "only", HorizontalKm: 1.0, VerticalM: 50}})

	planes := []Track{{ID: "P1", Latitude: 0, Longitude: 0, AltitudeM: 100}}
	drones := []Track{{ID: "D1", Latitude: 0, Longitude: 0, AltitudeM: 150}}

	result := c.Evaluate(planes, drones)
	if len(result.Threats) != 1 {
		t.Fatalf("vertical separation exactly at threshold produced %d threats, want 1", len(result.Threats))
	}
}

func TestValidateTiersRejectsMisconfiguration(t *testing.T) {
	cases := []struct {
		name  string
		tiers []Tier
	}{
		{"empty list", nil},
		{"unnamed tier", []Tier{{HorizontalKm: 1, VerticalM: 1}}},
		{"duplicate name", []Tier{
			{Name: "a", HorizontalKm: 1, VerticalM: 1},
			{Name: "a", HorizontalKm: 2, VerticalM: 2},
		}},
		{"non-positive horizontal", []Tier{{Name: "a", HorizontalKm: 0, VerticalM: 1}}},
		{"non-positive vertical", []Tier{{Name: "a", HorizontalKm: 1, VerticalM: -5}}},
		{"NaN threshold", []Tier{{Name: "a", HorizontalKm: math.NaN(), VerticalM: 1}}},
		{"tightening horizontal", []Tier{
			{Name: "a", HorizontalKm: 1, VerticalM: 10},
			{Name: "b", HorizontalKm: 0.5, VerticalM: 20},
		}},
		{"tightening vertical", []Tier{
			{Name: "a", HorizontalKm: 1, VerticalM: 10},
			{Name: "b", HorizontalKm: 2, VerticalM: 5},
		}},
	}

	for _, tc := range cases {
		if err := ValidateTiers(tc.tiers); err == nil {
			t.Errorf("%s: ValidateTiers accepted an invalid list", tc.name)
		}
	}

	if err := ValidateTiers(DefaultTiers()); err != nil {
		t.Errorf("ValidateTiers rejected the default tiers: %v", err)
	}
}

func TestNewRejectsMisconfiguredTiers(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New accepted an empty tier list")
	}
}

func TestTiersReturnsACopy(t *testing.T) {
	c := mustNew(t, DefaultTiers())
	tiers := c.Tiers()
	tiers[0].HorizontalKm = 999

	again := c.Tiers()
	if again[0].HorizontalKm != 0.1 {
		t.Errorf("mutating the returned slice changed the classifier's tiers")
	}
}
