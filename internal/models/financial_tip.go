package models

// FinancialTip is one entry in the daily tip rotation.
type FinancialTip struct {
	Base
	Title        string `gorm:"not null" json:"title"`
	Content      string `gorm:"not null" json:"content"`
	Category     string `json:"category"`
	DisplayOrder int    `gorm:"not null;default:0" json:"display_order"`
}
