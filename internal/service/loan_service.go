package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fernbank/lending-engine/internal/config"
	"github.com/fernbank/lending-engine/internal/domain"
	"github.com/fernbank/lending-engine/internal/repository"
	customError "github.com/fernbank/lending-engine/pkg/errors"
	"github.com/fernbank/lending-engine/pkg/finance"
)

// LoanService owns the loan application lifecycle: validation, rate
// assignment, amortization and the initial pending state. Status transitions
// past creation belong to an external decision process.
type LoanService struct {
	loanRepo repository.LoanRepository
	config   *config.Config
}

func NewLoanService(loanRepo repository.LoanRepository, config *config.Config) *LoanService {
	return &LoanService{
		loanRepo: loanRepo,
		config:   config,
	}
}

// ValidateApplication applies the business rules for a new application.
// The amount bound is checked before anything else.
func (s *LoanService) ValidateApplication(principal decimal.Decimal, termYears int, purpose string) error {
	min := s.config.GetMinPrincipal()
	max := s.config.GetMaxPrincipal()
	if principal.LessThan(min) || principal.GreaterThan(max) {
		return customError.WrapAmountOutOfRange(min.String(), max.String())
	}

	if termYears < s.config.Business.MinTermYears || termYears > s.config.Business.MaxTermYears {
		return customError.WrapTermOutOfRange(s.config.Business.MinTermYears, s.config.Business.MaxTermYears)
	}

	if strings.TrimSpace(purpose) == "" {
		return customError.WrapMissingPurpose()
	}

	return nil
}

// Submit validates an application, assigns the tiered interest rate, and
// persists it in the pending state. The returned record carries the derived
// payment figures.
func (s *LoanService) Submit(ctx context.Context, userID string, request *domain.ApplyLoanRequest) (*domain.LoanApplication, error) {
	if userID == "" {
		return nil, customError.WrapUnauthenticated()
	}

	if err := s.ValidateApplication(request.PrincipalAmount, request.TermYears, request.Purpose); err != nil {
		return nil, err
	}

	loan := &domain.LoanApplication{
		ID:              uuid.New(),
		UserID:          userID,
		PrincipalAmount: request.PrincipalAmount,
		InterestRate:    finance.RateForPrincipal(request.PrincipalAmount),
		TermYears:       request.TermYears,
		Purpose:         strings.TrimSpace(request.Purpose),
		Status:          domain.LoanStatusPending,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.Enrich(loan); err != nil {
		return nil, err
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, customError.WrapStoreError(err)
	}

	return loan, nil
}

// Enrich recomputes the derived payment figures from the stored terms.
// They are never persisted, so a read can never observe stale values.
func (s *LoanService) Enrich(loan *domain.LoanApplication) error {
	result, err := finance.Amortize(loan.PrincipalAmount, loan.InterestRate, loan.TermYears)
	if err != nil {
		return err
	}

	loan.MonthlyPayment = result.MonthlyPayment
	loan.TotalInterest = result.TotalInterest
	return nil
}

// List returns a user's applications newest first, enriched. Any of the five
// statuses may come back; the service renders them all.
func (s *LoanService) List(ctx context.Context, userID string) ([]*domain.LoanApplication, error) {
	if userID == "" {
		return nil, customError.WrapUnauthenticated()
	}

	loans, err := s.loanRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, customError.WrapStoreError(err)
	}

	for _, loan := range loans {
		if err := s.Enrich(loan); err != nil {
			return nil, err
		}
	}

	return loans, nil
}

// Get returns a single application, enriched. Records owned by other users
// are reported as not found rather than leaked.
func (s *LoanService) Get(ctx context.Context, userID string, id uuid.UUID) (*domain.LoanApplication, error) {
	if userID == "" {
		return nil, customError.WrapUnauthenticated()
	}

	loan, err := s.loanRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNotFound("Loan application")
	}
	if err != nil {
		return nil, customError.WrapStoreError(err)
	}

	if loan.UserID != userID {
		return nil, customError.WrapNotFound("Loan application")
	}

	if err := s.Enrich(loan); err != nil {
		return nil, err
	}

	return loan, nil
}
