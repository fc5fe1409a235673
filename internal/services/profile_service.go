package services

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wetalkinmedia/PocketWatcha2/internal/allocation"
	"github.com/wetalkinmedia/PocketWatcha2/internal/demographic"
	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
	"github.com/wetalkinmedia/PocketWatcha2/internal/location"
	"github.com/wetalkinmedia/PocketWatcha2/internal/models"
)

// DefaultCity is used when a profile has no city.
const DefaultCity = "tier-standard"

const (
	minAge = 18
	maxAge = 120
)

// profileService handles profile-related business logic.
type profileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB) ProfileServicer {
	return &profileService{db: db}
}

// GetProfile returns the user's profile.
func (s *profileService) GetProfile(userID string) (*models.UserProfile, error) {
	var p models.UserProfile
	if err := s.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &p, nil
}

// UpsertProfile validates and saves the profile, creating it on first use.
// Every field is replaced.
func (s *profileService) UpsertProfile(userID string, in ProfileInput) (*models.UserProfile, error) {
	if err := normalizeProfile(&in); err != nil {
		return nil, err
	}

	var p models.UserProfile
	err := s.db.Where("user_id = ?", userID).First(&p).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	p.UserID = userID
	p.FirstName = in.FirstName
	p.LastName = in.LastName
	p.Age = in.Age
	p.Salary = decimal.NewFromFloat(in.Salary).Round(2)
	p.ZipCode = in.ZipCode
	p.PhoneNumber = in.PhoneNumber
	p.RelationshipStatus = in.RelationshipStatus
	p.Occupation = in.Occupation
	p.City = in.City
	p.Currency = in.Currency
	p.LivingSituation = in.LivingSituation

	if err := s.db.Save(&p).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &p, nil
}

// RequireComplete loads the profile and fails with PROFILE_INCOMPLETE
// when it is missing or has empty required fields.
func (s *profileService) RequireComplete(userID string) (*models.UserProfile, error) {
	p, err := s.GetProfile(userID)
	if errors.Is(err, apperrors.ErrProfileNotFound) {
		return nil, apperrors.ErrProfileIncomplete
	}
	if err != nil {
		return nil, err
	}
	if !p.Complete() {
		return nil, apperrors.ErrProfileIncomplete
	}
	return p, nil
}

// CalculatorInputs derives planner inputs from a complete profile. The
// living situation falls back to the relationship status.
func (s *profileService) CalculatorInputs(userID string) (*PlannerInput, error) {
	p, err := s.RequireComplete(userID)
	if err != nil {
		return nil, err
	}

	age, err := demographic.AgeGroupForAge(p.Age)
	if err != nil {
		return nil, err
	}

	var situation demographic.LivingSituation
	if p.LivingSituation != "" {
		situation, err = demographic.ParseLivingSituation(p.LivingSituation)
		if err != nil {
			return nil, err
		}
	} else {
		var ok bool
		situation, ok = demographic.FromRelationshipStatus(p.RelationshipStatus)
		if !ok {
			return nil, apperrors.WithMessage(apperrors.ErrProfileIncomplete, "living situation is required")
		}
	}

	city := p.City
	if city == "" {
		city = DefaultCity
	}
	currency := p.Currency
	if currency == "" {
		currency = allocation.DefaultCurrency
	}

	monthly, _ := p.Salary.Div(decimal.NewFromInt(12)).Round(2).Float64()
	return &PlannerInput{
		MonthlyIncome:   monthly,
		Currency:        currency,
		AgeGroup:        age,
		LivingSituation: situation,
		City:            city,
	}, nil
}

func normalizeProfile(in *ProfileInput) error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.ZipCode = strings.TrimSpace(in.ZipCode)
	in.Occupation = strings.TrimSpace(in.Occupation)
	in.RelationshipStatus = strings.ToLower(strings.TrimSpace(in.RelationshipStatus))
	in.PhoneNumber = FormatPhone(in.PhoneNumber)

	if in.Age != 0 && (in.Age < minAge || in.Age > maxAge) {
		return apperrors.WithMessagef(apperrors.ErrInvalidInput, "age must be between %d and %d", minAge, maxAge)
	}
	if math.IsNaN(in.Salary) || math.IsInf(in.Salary, 0) || in.Salary < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "salary must be a positive number")
	}

	if strings.TrimSpace(in.City) != "" {
		c, err := location.Lookup(in.City)
		if err != nil {
			return err
		}
		in.City = c.Value
	} else {
		in.City = ""
	}

	if strings.TrimSpace(in.LivingSituation) != "" {
		ls, err := demographic.ParseLivingSituation(in.LivingSituation)
		if err != nil {
			return err
		}
		in.LivingSituation = string(ls)
	} else {
		in.LivingSituation = ""
	}

	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = allocation.DefaultCurrency
	}
	if len(in.Currency) != 3 {
		return apperrors.WithMessagef(apperrors.ErrInvalidInput, "invalid currency %q", in.Currency)
	}
	return nil
}

// FormatPhone keeps the digits of raw and groups them as NNN-NNN-NNNN.
// Shorter numbers are grouped as far as they go and extra digits beyond
// ten are dropped.
func FormatPhone(raw string) string {
	digits := make([]rune, 0, len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	d := string(digits)
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return d[:3] + "-" + d[3:]
	}
	if len(d) > 10 {
		d = d[:10]
	}
	return d[:3] + "-" + d[3:6] + "-" + d[6:]
}
