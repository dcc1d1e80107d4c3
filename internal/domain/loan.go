package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Application states. Only the initial pending state is assigned by this
// service; the remaining transitions belong to an external decision process
// writing through the store.
const (
	LoanStatusPending  = "pending"
	LoanStatusApproved = "approved"
	LoanStatusRejected = "rejected"
	LoanStatusActive   = "active"
	LoanStatusPaid     = "paid"
)

// LoanApplication represents a loan application entity.
// MonthlyPayment and TotalInterest are derived on every read and never
// stored, so they cannot drift from the stored terms.
type LoanApplication struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          string          `json:"user_id" db:"user_id"`
	PrincipalAmount decimal.Decimal `json:"principal_amount" db:"principal_amount"`
	InterestRate    decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	TermYears       int             `json:"term_years" db:"term_years"`
	Purpose         string          `json:"purpose" db:"purpose"`
	Status          string          `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`

	MonthlyPayment decimal.Decimal `json:"monthly_payment" db:"-"`
	TotalInterest  decimal.Decimal `json:"total_interest" db:"-"`
}

// DTOs for requests and responses

type ApplyLoanRequest struct {
	PrincipalAmount decimal.Decimal `json:"principal_amount" validate:"required"`
	TermYears       int             `json:"term_years" validate:"required"`
	Purpose         string          `json:"purpose"`
}

type LoanListResponse struct {
	Loans []*LoanApplication `json:"loans"`
}
