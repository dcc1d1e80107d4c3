package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyAmount is one entry in a savings statement, keyed by "YYYY-MM".
type MonthlyAmount struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// MonthlyAmounts is stored as a JSONB column.
type MonthlyAmounts []MonthlyAmount

func (m MonthlyAmounts) Value() (driver.Value, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(m)
}

func (m *MonthlyAmounts) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type %T for monthly savings", src)
	}
}

// Savings holds one row per user: the running balance plus the per-month
// deposit history shown on the statement.
type Savings struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	UserID         string          `json:"user_id" db:"user_id"`
	Balance        decimal.Decimal `json:"balance" db:"balance"`
	MonthlySavings MonthlyAmounts  `json:"monthly_savings" db:"monthly_savings"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

type DepositRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}
