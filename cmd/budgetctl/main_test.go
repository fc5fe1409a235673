package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestAllocate(t *testing.T) {
	t.Run("renders a table from flags", func(t *testing.T) {
		out, err := execute(t, "allocate", "--income", "4200", "--age-group", "26-35", "--situation", "single", "--city", "boston")
		if err != nil {
			t.Fatalf("allocate: %v\n%s", err, out)
		}
		for _, want := range []string{"Housing", "Savings", "│ Total", "4200.00", "Currency: USD"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q:\n%s", want, out)
			}
		}
	})

	t.Run("reads a TOML profile", func(t *testing.T) {
		path := writeProfile(t, `
annual_salary = 60000
currency = "EUR"
age = 40
living_situation = "family"
city = "berlin"
`)
		out, err := execute(t, "allocate", "--profile", path, "--json")
		if err != nil {
			t.Fatalf("allocate: %v\n%s", err, out)
		}

		var plan struct {
			Input struct {
				MonthlyIncome float64 `json:"monthly_income"`
				AgeGroup      string  `json:"age_group"`
			} `json:"input"`
			Budget struct {
				Currency string `json:"currency"`
				Income   string `json:"income"`
			} `json:"budget"`
		}
		if err := json.Unmarshal([]byte(out), &plan); err != nil {
			t.Fatalf("decode: %v\n%s", err, out)
		}
		if plan.Input.AgeGroup != "36-45" {
			t.Errorf("expected 36-45, got %q", plan.Input.AgeGroup)
		}
		if plan.Budget.Currency != "EUR" || plan.Budget.Income != "5000" {
			t.Errorf("unexpected budget %+v", plan.Budget)
		}
	})

	t.Run("flags override the profile", func(t *testing.T) {
		path := writeProfile(t, `
monthly_income = 3000
age_group = "18-25"
living_situation = "student"
city = "boston"
`)
		out, err := execute(t, "allocate", "--profile", path, "--income", "1000")
		if err != nil {
			t.Fatalf("allocate: %v\n%s", err, out)
		}
		if !strings.Contains(out, "1000.00") {
			t.Errorf("expected the flag income in output:\n%s", out)
		}
	})

	t.Run("rejects unknown profile keys", func(t *testing.T) {
		path := writeProfile(t, "monthly_incme = 3000\n")
		if _, err := execute(t, "allocate", "--profile", path); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("requires an age", func(t *testing.T) {
		if _, err := execute(t, "allocate", "--income", "3000", "--situation", "single", "--city", "boston"); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("rejects unknown cities", func(t *testing.T) {
		_, err := execute(t, "allocate", "--income", "3000", "-a", "26-35", "-s", "single", "-c", "atlantis")
		if err == nil || !strings.Contains(err.Error(), "atlantis") {
			t.Errorf("expected unknown location error, got %v", err)
		}
	})
}

func TestCareers(t *testing.T) {
	out, err := execute(t, "careers", "--income", "2500", "--age-group", "26-35", "--situation", "single", "--city", "tier-standard", "--limit", "3")
	if err != nil {
		t.Fatalf("careers: %v\n%s", err, out)
	}

	var rows int
	header := false
	for _, l := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(l, "│ Career "):
			header = true
		case header && strings.HasPrefix(l, "│"):
			rows++
		}
	}
	if !header {
		t.Fatalf("expected a suggestion table:\n%s", out)
	}
	if rows < 1 || rows > 3 {
		t.Errorf("expected 1 to 3 suggestions, got %d:\n%s", rows, out)
	}
}

func TestCities(t *testing.T) {
	t.Run("lists groups", func(t *testing.T) {
		out, err := execute(t, "cities")
		if err != nil {
			t.Fatalf("cities: %v", err)
		}
		for _, want := range []string{"General", "United States", "boston", "x1.20"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("reports no match", func(t *testing.T) {
		out, err := execute(t, "cities", "--search", "zzzz")
		if err != nil {
			t.Fatalf("cities: %v", err)
		}
		if !strings.Contains(out, "No cities match") {
			t.Errorf("unexpected output %q", out)
		}
	})
}
