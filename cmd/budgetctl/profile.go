package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/wetalkinmedia/PocketWatcha2/internal/demographic"
	"github.com/wetalkinmedia/PocketWatcha2/internal/services"
)

// Profile is the calculator input as stored in a TOML file. Flags given on
// the command line override it.
type Profile struct {
	MonthlyIncome   float64 `toml:"monthly_income"`
	AnnualSalary    float64 `toml:"annual_salary,omitempty"`
	Currency        string  `toml:"currency,omitempty"`
	AgeGroup        string  `toml:"age_group,omitempty"`
	Age             int     `toml:"age,omitempty"`
	LivingSituation string  `toml:"living_situation"`
	City            string  `toml:"city"`
}

// loadProfile reads path. An empty path yields an empty profile.
func loadProfile(path string) (Profile, error) {
	var p Profile
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("reading profile: %w", err)
	}
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		return p, fmt.Errorf("parsing profile: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return p, fmt.Errorf("parsing profile: unknown key %q", undecoded[0].String())
	}
	return p, nil
}

// profileFlags binds the shared calculator flags.
type profileFlags struct {
	path      string
	income    float64
	salary    float64
	currency  string
	ageGroup  string
	age       int
	situation string
	city      string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.path, "profile", "p", "", "TOML profile file")
	fs.Float64VarP(&f.income, "income", "i", 0, "Monthly income")
	fs.Float64Var(&f.salary, "salary", 0, "Annual salary, used when no monthly income is given")
	fs.StringVar(&f.currency, "currency", "", "ISO 4217 currency code (default USD)")
	fs.StringVarP(&f.ageGroup, "age-group", "a", "", "Age group: 18-25, 26-35, 36-45, 46-55 or 56+")
	fs.IntVar(&f.age, "age", 0, "Age in years, used when no age group is given")
	fs.StringVarP(&f.situation, "situation", "s", "", "Living situation: student, single, couple, family or retiree")
	fs.StringVarP(&f.city, "city", "c", "", "City or tier value (see budgetctl cities)")
}

// resolve merges the profile file with the flags and validates the result.
func (f *profileFlags) resolve(cmd *cobra.Command) (services.PlannerInput, error) {
	var in services.PlannerInput

	p, err := loadProfile(f.path)
	if err != nil {
		return in, err
	}
	fs := cmd.Flags()
	if fs.Changed("income") {
		p.MonthlyIncome = f.income
	}
	if fs.Changed("salary") {
		p.AnnualSalary = f.salary
	}
	if fs.Changed("currency") {
		p.Currency = f.currency
	}
	if fs.Changed("age-group") {
		p.AgeGroup = f.ageGroup
	}
	if fs.Changed("age") {
		p.Age = f.age
	}
	if fs.Changed("situation") {
		p.LivingSituation = f.situation
	}
	if fs.Changed("city") {
		p.City = f.city
	}

	in.MonthlyIncome = p.MonthlyIncome
	if in.MonthlyIncome == 0 && p.AnnualSalary > 0 {
		in.MonthlyIncome = p.AnnualSalary / 12
	}
	in.Currency = p.Currency
	in.City = p.City

	switch {
	case p.AgeGroup != "":
		in.AgeGroup, err = demographic.ParseAgeGroup(p.AgeGroup)
	case p.Age != 0:
		in.AgeGroup, err = demographic.AgeGroupForAge(p.Age)
	default:
		err = fmt.Errorf("an age group or age is required")
	}
	if err != nil {
		return in, err
	}

	in.LivingSituation, err = demographic.ParseLivingSituation(p.LivingSituation)
	if err != nil {
		return in, err
	}
	return in, nil
}
