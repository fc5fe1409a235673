// Package demographic defines the age groups and living situations that
// personalize budget allocations and career suggestions.
package demographic

import (
	"strings"

	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
)

// AgeGroup is an age bucket.
type AgeGroup string

const (
	Age18To25 AgeGroup = "18-25"
	Age26To35 AgeGroup = "26-35"
	Age36To45 AgeGroup = "36-45"
	Age46To55 AgeGroup = "46-55"
	Age56Plus AgeGroup = "56+"
)

var ageGroups = []AgeGroup{Age18To25, Age26To35, Age36To45, Age46To55, Age56Plus}

var ageLabels = map[AgeGroup]string{
	Age18To25: "Young Adult",
	Age26To35: "Early Career",
	Age36To45: "Mid Career",
	Age46To55: "Pre-Retirement",
	Age56Plus: "Near/In Retirement",
}

// AgeGroups returns every age group, youngest first.
func AgeGroups() []AgeGroup {
	out := make([]AgeGroup, len(ageGroups))
	copy(out, ageGroups)
	return out
}

// Valid reports whether g is one of the known groups.
func (g AgeGroup) Valid() bool {
	_, ok := ageLabels[g]
	return ok
}

// Label is the display label, e.g. "26-35 (Early Career)".
func (g AgeGroup) Label() string {
	return string(g) + " (" + ageLabels[g] + ")"
}

// Index is the position of g in AgeGroups, or -1.
func (g AgeGroup) Index() int {
	for i, a := range ageGroups {
		if a == g {
			return i
		}
	}
	return -1
}

// ParseAgeGroup validates a raw age group value.
func ParseAgeGroup(s string) (AgeGroup, error) {
	g := AgeGroup(strings.TrimSpace(s))
	if g == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "age group is required")
	}
	if !g.Valid() {
		return "", apperrors.WithMessagef(apperrors.ErrInvalidInput, "invalid age group %q", s)
	}
	return g, nil
}

// AgeGroupForAge buckets a numeric age. Every age of 56 and over is 56+.
func AgeGroupForAge(age int) (AgeGroup, error) {
	switch {
	case age < 18:
		return "", apperrors.WithMessagef(apperrors.ErrInvalidInput, "age %d is below the supported minimum of 18", age)
	case age <= 25:
		return Age18To25, nil
	case age <= 35:
		return Age26To35, nil
	case age <= 45:
		return Age36To45, nil
	case age <= 55:
		return Age46To55, nil
	default:
		return Age56Plus, nil
	}
}

// LivingSituation describes the household a budget is for.
type LivingSituation string

const (
	Student LivingSituation = "student"
	Single  LivingSituation = "single"
	Couple  LivingSituation = "couple"
	Family  LivingSituation = "family"
	Retiree LivingSituation = "retiree"
)

var situations = []LivingSituation{Student, Single, Couple, Family, Retiree}

var situationLabels = map[LivingSituation]string{
	Student: "Student",
	Single:  "Single Professional",
	Couple:  "Couple (No Kids)",
	Family:  "Family (With Kids)",
	Retiree: "Retiree",
}

// LivingSituations returns every living situation.
func LivingSituations() []LivingSituation {
	out := make([]LivingSituation, len(situations))
	copy(out, situations)
	return out
}

// Valid reports whether s is one of the known situations.
func (s LivingSituation) Valid() bool {
	_, ok := situationLabels[s]
	return ok
}

// Label is the display label.
func (s LivingSituation) Label() string {
	return situationLabels[s]
}

// ParseLivingSituation validates a raw living situation value. Matching
// ignores case.
func ParseLivingSituation(raw string) (LivingSituation, error) {
	s := LivingSituation(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "living situation is required")
	}
	if !s.Valid() {
		return "", apperrors.WithMessagef(apperrors.ErrInvalidInput, "invalid living situation %q", raw)
	}
	return s, nil
}

// FromRelationshipStatus is the best-effort mapping used to prefill the
// calculator from a stored profile. Only "married" and "single" map; every
// other status reports false.
func FromRelationshipStatus(status string) (LivingSituation, bool) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "married":
		return Couple, true
	case "single":
		return Single, true
	}
	return "", false
}
