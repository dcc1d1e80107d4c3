package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fernbank/lending-engine/internal/domain"
)

// LoanRepository defines the interface for loan application data operations
type LoanRepository interface {
	// Create inserts a new loan application
	Create(ctx context.Context, loan *domain.LoanApplication) error

	// GetByID retrieves a loan application by its id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LoanApplication, error)

	// ListByUserID retrieves a user's applications, newest first
	ListByUserID(ctx context.Context, userID string) ([]*domain.LoanApplication, error)
}

// ReferralRepository defines the interface for referral data operations
type ReferralRepository interface {
	// Create inserts a new referral allocation. The table's unique
	// constraints are the source of truth for code and owner uniqueness;
	// violations surface as ErrCodeTaken or ErrAlreadyAllocated.
	Create(ctx context.Context, referral *domain.Referral) error

	// GetByUserID retrieves the referral allocation owned by a user
	GetByUserID(ctx context.Context, userID string) (*domain.Referral, error)

	// GetByCode retrieves a referral allocation by its code
	GetByCode(ctx context.Context, code string) (*domain.Referral, error)

	// ListByUserID retrieves a user's referrals, newest first
	ListByUserID(ctx context.Context, userID string) ([]*domain.Referral, error)

	// ExpirePending marks pending referrals past their expiry as expired
	// and reports how many rows changed
	ExpirePending(ctx context.Context, cutoff time.Time) (int64, error)
}

// SavingsRepository defines the interface for savings data operations
type SavingsRepository interface {
	// GetByUserID retrieves a user's savings row
	GetByUserID(ctx context.Context, userID string) (*domain.Savings, error)

	// Upsert writes a savings row keyed on user_id
	Upsert(ctx context.Context, savings *domain.Savings) error
}
