// Package location holds the static cost-of-living table used to adjust
// budget allocations and salary brackets by where a user lives.
package location

import (
	"sort"
	"strings"

	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
)

// Tier is a cost-of-living bucket.
type Tier string

const (
	TierLow      Tier = "tier-low"
	TierStandard Tier = "tier-standard"
	TierHigh     Tier = "tier-high"
	TierVeryHigh Tier = "tier-very-high"
)

// multipliers are relative to a standard-cost city.
var multipliers = map[Tier]float64{
	TierLow:      0.85,
	TierStandard: 1.00,
	TierHigh:     1.20,
	TierVeryHigh: 1.35,
}

// Multiplier returns the cost multiplier for the tier, or 0 for an unknown tier.
func (t Tier) Multiplier() float64 {
	return multipliers[t]
}

// City is one selectable location.
type City struct {
	Value string `json:"value"`
	Name  string `json:"name"`
	Group string `json:"group"`
	Tier  Tier   `json:"tier"`
}

// Multiplier is the city's cost-of-living multiplier.
func (c City) Multiplier() float64 {
	return c.Tier.Multiplier()
}

var cities = []City{
	// Generic tiers for users who would rather not name a city.
	{Value: "tier-low", Name: "Lower cost area", Group: "General", Tier: TierLow},
	{Value: "tier-standard", Name: "Average cost area", Group: "General", Tier: TierStandard},
	{Value: "tier-high", Name: "Higher cost area", Group: "General", Tier: TierHigh},
	{Value: "tier-very-high", Name: "Very high cost area", Group: "General", Tier: TierVeryHigh},
	{Value: "other", Name: "Other / Not listed", Group: "General", Tier: TierStandard},

	{Value: "new-york", Name: "New York, NY", Group: "United States", Tier: TierVeryHigh},
	{Value: "san-francisco", Name: "San Francisco, CA", Group: "United States", Tier: TierVeryHigh},
	{Value: "boston", Name: "Boston, MA", Group: "United States", Tier: TierHigh},
	{Value: "los-angeles", Name: "Los Angeles, CA", Group: "United States", Tier: TierHigh},
	{Value: "seattle", Name: "Seattle, WA", Group: "United States", Tier: TierHigh},
	{Value: "washington-dc", Name: "Washington, DC", Group: "United States", Tier: TierHigh},
	{Value: "chicago", Name: "Chicago, IL", Group: "United States", Tier: TierStandard},
	{Value: "austin", Name: "Austin, TX", Group: "United States", Tier: TierStandard},
	{Value: "denver", Name: "Denver, CO", Group: "United States", Tier: TierStandard},
	{Value: "atlanta", Name: "Atlanta, GA", Group: "United States", Tier: TierStandard},
	{Value: "houston", Name: "Houston, TX", Group: "United States", Tier: TierLow},
	{Value: "phoenix", Name: "Phoenix, AZ", Group: "United States", Tier: TierLow},
	{Value: "detroit", Name: "Detroit, MI", Group: "United States", Tier: TierLow},

	{Value: "toronto", Name: "Toronto, ON", Group: "Canada", Tier: TierHigh},
	{Value: "vancouver", Name: "Vancouver, BC", Group: "Canada", Tier: TierHigh},
	{Value: "montreal", Name: "Montreal, QC", Group: "Canada", Tier: TierStandard},

	{Value: "london", Name: "London", Group: "Europe", Tier: TierVeryHigh},
	{Value: "zurich", Name: "Zurich", Group: "Europe", Tier: TierVeryHigh},
	{Value: "paris", Name: "Paris", Group: "Europe", Tier: TierHigh},
	{Value: "amsterdam", Name: "Amsterdam", Group: "Europe", Tier: TierHigh},
	{Value: "berlin", Name: "Berlin", Group: "Europe", Tier: TierStandard},
	{Value: "madrid", Name: "Madrid", Group: "Europe", Tier: TierStandard},
	{Value: "lisbon", Name: "Lisbon", Group: "Europe", Tier: TierLow},
	{Value: "warsaw", Name: "Warsaw", Group: "Europe", Tier: TierLow},

	{Value: "singapore", Name: "Singapore", Group: "Asia Pacific", Tier: TierVeryHigh},
	{Value: "hong-kong", Name: "Hong Kong", Group: "Asia Pacific", Tier: TierVeryHigh},
	{Value: "tokyo", Name: "Tokyo", Group: "Asia Pacific", Tier: TierHigh},
	{Value: "sydney", Name: "Sydney", Group: "Asia Pacific", Tier: TierHigh},
	{Value: "seoul", Name: "Seoul", Group: "Asia Pacific", Tier: TierStandard},
	{Value: "bangkok", Name: "Bangkok", Group: "Asia Pacific", Tier: TierLow},
	{Value: "mumbai", Name: "Mumbai", Group: "Asia Pacific", Tier: TierLow},
	{Value: "manila", Name: "Manila", Group: "Asia Pacific", Tier: TierLow},

	{Value: "dubai", Name: "Dubai", Group: "Middle East & Africa", Tier: TierHigh},
	{Value: "johannesburg", Name: "Johannesburg", Group: "Middle East & Africa", Tier: TierLow},
	{Value: "lagos", Name: "Lagos", Group: "Middle East & Africa", Tier: TierLow},

	{Value: "mexico-city", Name: "Mexico City", Group: "Latin America", Tier: TierLow},
	{Value: "sao-paulo", Name: "São Paulo", Group: "Latin America", Tier: TierLow},
	{Value: "buenos-aires", Name: "Buenos Aires", Group: "Latin America", Tier: TierLow},
}

var byValue = func() map[string]City {
	m := make(map[string]City, len(cities))
	for _, c := range cities {
		if _, dup := m[c.Value]; dup {
			panic("location: duplicate city value " + c.Value)
		}
		if c.Tier.Multiplier() <= 0 {
			panic("location: city " + c.Value + " has no tier multiplier")
		}
		m[c.Value] = c
	}
	return m
}()

// Lookup resolves a city identifier. Matching ignores case and surrounding
// whitespace. An empty value is invalid input; any other miss is an unknown
// location.
func Lookup(value string) (City, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	if key == "" {
		return City{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "city is required")
	}
	c, ok := byValue[key]
	if !ok {
		return City{}, apperrors.WithMessagef(apperrors.ErrUnknownLocation, "unknown location %q", value)
	}
	return c, nil
}

// IsKnown reports whether value resolves to a city.
func IsKnown(value string) bool {
	_, err := Lookup(value)
	return err == nil
}

// All returns every supported city in table order.
func All() []City {
	out := make([]City, len(cities))
	copy(out, cities)
	return out
}

// Group is a labelled set of cities, as shown in a location picker.
type Group struct {
	Label  string `json:"label"`
	Cities []City `json:"cities"`
}

// Groups returns the cities grouped by region, keeping table order within
// each group. A non-empty search keeps only cities whose name or value
// contains it.
func Groups(search string) []Group {
	search = strings.ToLower(strings.TrimSpace(search))

	index := map[string]int{}
	var groups []Group
	for _, c := range cities {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(c.Value, search) {
			continue
		}
		i, ok := index[c.Group]
		if !ok {
			i = len(groups)
			index[c.Group] = i
			groups = append(groups, Group{Label: c.Group})
		}
		groups[i].Cities = append(groups[i].Cities, c)
	}
	return groups
}

// Tiers returns all tiers ordered by multiplier.
func Tiers() []Tier {
	out := make([]Tier, 0, len(multipliers))
	for t := range multipliers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return multipliers[out[i]] < multipliers[out[j]] })
	return out
}
