package classifier

import (
	"fmt"
	"math"

	"skylink/internal/utils"
)

// Track is one positioned object fed into a classification pass. The
// caller maps aircraft and drones into this shape before invoking the
// classifier; velocity and heading are deliberately absent because they
// play no part in separation checks.
type Track struct {
	ID        string
	Latitude  float64
	Longitude float64
	AltitudeM float64
}

// HasValidPosition reports whether the track carries usable coordinates.
// NaN or out-of-range values exclude the track from a pass without
// aborting it.
func (t Track) HasValidPosition() bool {
	if math.IsNaN(t.Latitude) || math.IsNaN(t.Longitude) || math.IsNaN(t.AltitudeM) {
		return false
	}
	if t.Latitude < -90 || t.Latitude > 90 {
		return false
	}
	if t.Longitude < -180 || t.Longitude > 180 {
		return false
	}
	return true
}

// Tier is one severity bracket defined by a horizontal and vertical
// separation threshold. Tiers are evaluated tightest to loosest.
type Tier struct {
	Name         string  `yaml:"name" json:"name"`
	HorizontalKm float64 `yaml:"horizontal_km" json:"horizontal_km"`
	VerticalM    float64 `yaml:"vertical_m" json:"vertical_m"`
}

// DefaultTiers returns the standard severity brackets.
func DefaultTiers() []Tier {
	return []Tier{
		{Name: "critical", HorizontalKm: 0.1, VerticalM: 30},
		{Name: "high", HorizontalKm: 0.3, VerticalM: 50},
		{Name: "medium", HorizontalKm: 0.5, VerticalM: 100},
		{Name: "low", HorizontalKm: 1.0, VerticalM: 150},
	}
}

// ValidateTiers checks a tier list for configuration errors: an empty
// list, duplicate names, non-positive thresholds, or thresholds that do
// not grow monotonically from tightest to loosest. Errors here block the
// classifier from being constructed at all.
func ValidateTiers(tiers []Tier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("tier list must not be empty")
	}
	seen := make(map[string]bool, len(tiers))
	for i, tier := range tiers {
		if tier.Name == "" {
			return fmt.Errorf("tier %d has no name", i)
		}
		if seen[tier.Name] {
			return fmt.Errorf("duplicate tier name %q", tier.Name)
		}
		seen[tier.Name] = true
		if tier.HorizontalKm <= 0 || math.IsNaN(tier.HorizontalKm) {
			return fmt.Errorf("tier %q: horizontal threshold must be positive", tier.Name)
		}
		if tier.VerticalM <= 0 || math.IsNaN(tier.VerticalM) {
			return fmt.Errorf("tier %q: vertical threshold must be positive", tier.Name)
		}
		if i > 0 {
			prev := tiers[i-1]
			if tier.HorizontalKm < prev.HorizontalKm || tier.VerticalM < prev.VerticalM {
				return fmt.Errorf("tier %q: thresholds must not tighten after tier %q", tier.Name, prev.Name)
			}
		}
	}
	return nil
}

// Threat describes one object pair whose separation fell within a tier.
type Threat struct {
	AID          string
	BID          string
	HorizontalKm float64
	VerticalM    float64
	Tier         string
	TierIndex    int
	ALatitude    float64
	ALongitude   float64
	AAltitudeM   float64
	BLatitude    float64
	BLongitude   float64
	BAltitudeM   float64
}

// Result is the outcome of one classification pass. SkippedA and SkippedB
// count objects excluded for invalid position data; they are reported for
// observability but never fail a pass.
type Result struct {
	Threats  []Threat
	SkippedA int
	SkippedB int
}

// Classifier performs pairwise proximity classification between two
// collections of tracks. A pass holds no state and performs no I/O, so a
// single Classifier is safe for concurrent use once constructed.
type Classifier struct {
	tiers []Tier
}

// New constructs a Classifier, rejecting misconfigured tier lists up
// front so every later pass can run unconditionally.
func New(tiers []Tier) (*Classifier, error) {
	if err := ValidateTiers(tiers); err != nil {
		return nil, err
	}
	c := &Classifier{tiers: make([]Tier, len(tiers))}
	copy(c.tiers, tiers)
	return c, nil
}

// Tiers returns a copy of the configured tier list, tightest first.
func (c *Classifier) Tiers() []Tier {
	out := make([]Tier, len(c.tiers))
	copy(out, c.tiers)
	return out
}

// Evaluate runs one pass over the cross product of the two collections.
// For each pair it computes the great-circle horizontal distance and the
// absolute altitude difference, then assigns the tightest tier both
// distances satisfy. Pairs beyond the loosest tier produce no record.
// Comparisons at tier boundaries are inclusive. Tracks sharing an ID are
// never paired with themselves, which keeps the same routine usable for
// same-collection sweeps.
func (c *Classifier) Evaluate(a, b []Track) Result {
	var result Result

	validB := make([]Track, 0, len(b))
	for _, tb := range b {
		if !tb.HasValidPosition() {
			result.SkippedB++
			continue
		}
		validB = append(validB, tb)
	}

	for _, ta := range a {
		if !ta.HasValidPosition() {
			result.SkippedA++
			continue
		}
		for _, tb := range validB {
			if ta.ID == tb.ID {
				continue
			}
			horizontalKm := utils.HaversineKm(ta.Latitude, ta.Longitude, tb.Latitude, tb.Longitude)
			verticalM := math.Abs(ta.AltitudeM - tb.AltitudeM)

			tierIdx := c.classify(horizontalKm, verticalM)
			if tierIdx < 0 {
				continue
			}
			result.Threats = append(result.Threats, Threat{
				AID:          ta.ID,
				BID:          tb.ID,
				HorizontalKm: horizontalKm,
				VerticalM:    verticalM,
				Tier:         c.tiers[tierIdx].Name,
				TierIndex:    tierIdx,
				ALatitude:    ta.Latitude,
				ALongitude:   ta.Longitude,
				AAltitudeM:   ta.AltitudeM,
				BLatitude:    tb.Latitude,
				BLongitude:   tb.Longitude,
				BAltitudeM:   tb.AltitudeM,
			})
		}
	}

	return result
}

// classify walks the tiers tightest to loosest and returns the index of
// the first tier both distances satisfy, or -1 when the pair is clear of
// the loosest tier.
func (c *Classifier) classify(horizontalKm, verticalM float64) int {
	for i, tier := range c.tiers {
		if horizontalKm <= tier.HorizontalKm && verticalM <= tier.VerticalM {
			return i
		}
	}
	return -1
}
