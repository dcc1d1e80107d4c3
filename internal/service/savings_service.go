package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fernbank/lending-engine/internal/domain"
	"github.com/fernbank/lending-engine/internal/repository"
	customError "github.com/fernbank/lending-engine/pkg/errors"
)

// SavingsService maintains the per-user savings balance and its monthly
// statement entries.
type SavingsService struct {
	savingsRepo repository.SavingsRepository
}

func NewSavingsService(savingsRepo repository.SavingsRepository) *SavingsService {
	return &SavingsService{savingsRepo: savingsRepo}
}

// Get returns the user's savings row.
func (s *SavingsService) Get(ctx context.Context, userID string) (*domain.Savings, error) {
	if userID == "" {
		return nil, customError.WrapUnauthenticated()
	}

	savings, err := s.savingsRepo.GetByUserID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNotFound("Savings account")
	}
	if err != nil {
		return nil, customError.WrapStoreError(err)
	}

	return savings, nil
}

// Deposit adds a positive amount to the balance and appends a statement
// entry for the current month. The first deposit creates the row.
func (s *SavingsService) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Savings, error) {
	if userID == "" {
		return nil, customError.WrapUnauthenticated()
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapInvalidDeposit(amount.String())
	}

	now := time.Now().UTC()

	savings, err := s.savingsRepo.GetByUserID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		savings = &domain.Savings{
			ID:        uuid.New(),
			UserID:    userID,
			Balance:   decimal.Zero,
			CreatedAt: now,
		}
	} else if err != nil {
		return nil, customError.WrapStoreError(err)
	}

	savings.Balance = savings.Balance.Add(amount)
	savings.MonthlySavings = append(savings.MonthlySavings, domain.MonthlyAmount{
		Month:  now.Format("2006-01"),
		Amount: amount,
	})
	savings.UpdatedAt = now

	if err := s.savingsRepo.Upsert(ctx, savings); err != nil {
		return nil, customError.WrapStoreError(err)
	}

	return savings, nil
}
