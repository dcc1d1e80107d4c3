package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fernbank/lending-engine/internal/domain"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.LoanApplication) error {
	query := `
		INSERT INTO loans (id, user_id, principal_amount, interest_rate, term_years, purpose, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.UserID,
		loan.PrincipalAmount,
		loan.InterestRate,
		loan.TermYears,
		loan.Purpose,
		loan.Status,
		loan.CreatedAt,
	)

	return err
}

func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LoanApplication, error) {
	query := `
		SELECT id, user_id, principal_amount, interest_rate, term_years, purpose, status, created_at
		FROM loans
		WHERE id = $1
	`

	var loan domain.LoanApplication
	if err := r.db.GetContext(ctx, &loan, query, id); err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.LoanApplication, error) {
	query := `
		SELECT id, user_id, principal_amount, interest_rate, term_years, purpose, status, created_at
		FROM loans
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var loans []*domain.LoanApplication
	if err := r.db.SelectContext(ctx, &loans, query, userID); err != nil {
		return nil, err
	}

	return loans, nil
}
