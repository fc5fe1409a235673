package models

import "github.com/shopspring/decimal"

// UserProfile holds the details used to personalize budgets. Salary is
// annual.
type UserProfile struct {
	Base
	UserID             string          `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FirstName          string          `json:"first_name"`
	LastName           string          `json:"last_name"`
	Age                int             `json:"age"`
	Salary             decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"salary"`
	ZipCode            string          `json:"zip_code"`
	PhoneNumber        string          `json:"phone_number"`
	RelationshipStatus string          `json:"relationship_status"`
	Occupation         string          `json:"occupation"`
	City               string          `json:"city"`
	Currency           string          `gorm:"size:3;default:USD" json:"currency"`
	LivingSituation    string          `json:"living_situation"`
}

// Complete reports whether every field needed for insights is filled in.
func (p *UserProfile) Complete() bool {
	return p != nil &&
		p.FirstName != "" &&
		p.LastName != "" &&
		p.Age > 0 &&
		p.Salary.IsPositive() &&
		p.ZipCode != "" &&
		p.PhoneNumber != "" &&
		p.RelationshipStatus != "" &&
		p.Occupation != ""
}
