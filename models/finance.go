package models

import "time"

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction sources. Chat-created transactions carry the platform
// they arrived on.
const (
	SourceManual     = "manual"
	SourceWhatsApp   = "whatsapp"
	SourceTelegram   = "telegram"
	SourceBankImport = "bank_import"
	SourceCSVImport  = "csv_import"
)

// DefaultScope is the shared owner of the seeded categories.
const DefaultScope = "DEFAULT"

// FallbackCategory absorbs everything no strategy can place.
const FallbackCategory = "Otros"

// Transaction is immutable once created except for deletion.
type Transaction struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Amount      float64   `bson:"amount" json:"amount"`
	Type        string    `bson:"type" json:"type"`
	Category    string    `bson:"category" json:"category"`
	Subcategory string    `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	Description string    `bson:"description" json:"description"`
	Date        string    `bson:"date" json:"date"` // YYYY-MM-DD
	Source      string    `bson:"source" json:"source"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

type Category struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Name        string    `bson:"name" json:"name"`
	Type        string    `bson:"type" json:"type"`
	Icon        string    `bson:"icon,omitempty" json:"icon,omitempty"`
	Color       string    `bson:"color,omitempty" json:"color,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Keywords    []string  `bson:"keywords" json:"keywords"`
	IsDefault   bool      `bson:"is_default" json:"is_default"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Budget stores only the period amount. Spent, Remaining and Percentage
// are recomputed from the transaction set on every read and never
// persisted.
type Budget struct {
	ID         string    `bson:"_id" json:"id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	Category   string    `bson:"category" json:"category"`
	Amount     float64   `bson:"amount" json:"amount"`
	Period     string    `bson:"period" json:"period"`
	Spent      float64   `bson:"-" json:"spent"`
	Remaining  float64   `bson:"-" json:"remaining"`
	Percentage float64   `bson:"-" json:"percentage"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// MonthlyReport is the summary behind GET /api/reports/monthly and the
// chat "reporte" reply.
type MonthlyReport struct {
	Month         string          `json:"month"` // YYYY-MM
	TotalIncome   float64         `json:"total_income"`
	TotalExpenses float64         `json:"total_expenses"`
	Balance       float64         `json:"balance"`
	ByCategory    []CategoryTotal `json:"by_category"`
}
