package services

import (
	"testing"

	"github.com/wetalkinmedia/PocketWatcha2/internal/demographic"
	"github.com/wetalkinmedia/PocketWatcha2/internal/testutil"
)

func completeInput() ProfileInput {
	return ProfileInput{
		FirstName:          "Maya",
		LastName:           "Lopez",
		Age:                29,
		Salary:             72000,
		ZipCode:            "02139",
		PhoneNumber:        "(617) 555 0199",
		RelationshipStatus: "Married",
		Occupation:         "Nurse",
		City:               "Boston",
		Currency:           "usd",
	}
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"12", "12"},
		{"123", "123"},
		{"12345", "123-45"},
		{"(555) 123-4567", "555-123-4567"},
		{"+1 555 123 4567 ext", "155-512-3456"},
		{"5551234", "555-123-4"},
	}
	for _, tt := range tests {
		if got := FormatPhone(tt.in); got != tt.want {
			t.Errorf("FormatPhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUpsertProfile(t *testing.T) {
	t.Run("creates_then_updates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db)
		user := testutil.CreateTestUser(t, db)

		p, err := svc.UpsertProfile(user.ID, completeInput())
		testutil.AssertNoError(t, err)
		if p.PhoneNumber != "617-555-0199" {
			t.Errorf("phone = %s", p.PhoneNumber)
		}
		if p.City != "boston" || p.Currency != "USD" || p.RelationshipStatus != "married" {
			t.Errorf("fields not normalized: %+v", p)
		}

		in := completeInput()
		in.Occupation = "Charge Nurse"
		updated, err := svc.UpsertProfile(user.ID, in)
		testutil.AssertNoError(t, err)
		if updated.ID != p.ID || updated.Occupation != "Charge Nurse" {
			t.Errorf("expected in-place update, got %+v", updated)
		}
	})

	t.Run("invalid_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db)
		user := testutil.CreateTestUser(t, db)

		young := completeInput()
		young.Age = 16
		_, err := svc.UpsertProfile(user.ID, young)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		city := completeInput()
		city.City = "atlantis"
		_, err = svc.UpsertProfile(user.ID, city)
		testutil.AssertAppError(t, err, "UNKNOWN_LOCATION")

		salary := completeInput()
		salary.Salary = -1
		_, err = svc.UpsertProfile(user.ID, salary)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		situation := completeInput()
		situation.LivingSituation = "nomad"
		_, err = svc.UpsertProfile(user.ID, situation)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetProfile_not_found(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db)
	user := testutil.CreateTestUser(t, db)

	_, err := svc.GetProfile(user.ID)
	testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
}

func TestRequireComplete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db)
	user := testutil.CreateTestUser(t, db)

	_, err := svc.RequireComplete(user.ID)
	testutil.AssertAppError(t, err, "PROFILE_INCOMPLETE")

	partial := completeInput()
	partial.Occupation = ""
	_, err = svc.UpsertProfile(user.ID, partial)
	testutil.AssertNoError(t, err)
	_, err = svc.RequireComplete(user.ID)
	testutil.AssertAppError(t, err, "PROFILE_INCOMPLETE")

	_, err = svc.UpsertProfile(user.ID, completeInput())
	testutil.AssertNoError(t, err)
	_, err = svc.RequireComplete(user.ID)
	testutil.AssertNoError(t, err)
}

func TestCalculatorInputs(t *testing.T) {
	t.Run("from_relationship_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpsertProfile(user.ID, completeInput())
		testutil.AssertNoError(t, err)

		in, err := svc.CalculatorInputs(user.ID)
		testutil.AssertNoError(t, err)
		if in.MonthlyIncome != 6000 {
			t.Errorf("monthly income = %v, want 6000", in.MonthlyIncome)
		}
		if in.AgeGroup != demographic.Age26To35 || in.LivingSituation != demographic.Couple {
			t.Errorf("unexpected demographics %+v", in)
		}
		if in.City != "boston" || in.Currency != "USD" {
			t.Errorf("unexpected location %+v", in)
		}
	})

	t.Run("explicit_situation_and_default_city", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db)
		user := testutil.CreateTestUser(t, db)

		p := completeInput()
		p.City = ""
		p.LivingSituation = "Family"
		_, err := svc.UpsertProfile(user.ID, p)
		testutil.AssertNoError(t, err)

		in, err := svc.CalculatorInputs(user.ID)
		testutil.AssertNoError(t, err)
		if in.LivingSituation != demographic.Family || in.City != DefaultCity {
			t.Errorf("unexpected inputs %+v", in)
		}
	})

	t.Run("unmapped_relationship_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db)
		user := testutil.CreateTestUser(t, db)

		p := completeInput()
		p.RelationshipStatus = "divorced"
		_, err := svc.UpsertProfile(user.ID, p)
		testutil.AssertNoError(t, err)

		_, err = svc.CalculatorInputs(user.ID)
		testutil.AssertAppError(t, err, "PROFILE_INCOMPLETE")
	})
}
