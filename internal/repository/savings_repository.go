package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/fernbank/lending-engine/internal/domain"
)

type savingsRepository struct {
	db *sqlx.DB
}

func NewSavingsRepository(db *sqlx.DB) SavingsRepository {
	return &savingsRepository{db: db}
}

func (r *savingsRepository) GetByUserID(ctx context.Context, userID string) (*domain.Savings, error) {
	query := `
		SELECT id, user_id, balance, monthly_savings, created_at, updated_at
		FROM savings
		WHERE user_id = $1
	`

	var savings domain.Savings
	if err := r.db.GetContext(ctx, &savings, query, userID); err != nil {
		return nil, err
	}

	return &savings, nil
}

func (r *savingsRepository) Upsert(ctx context.Context, savings *domain.Savings) error {
	query := `
		INSERT INTO savings (id, user_id, balance, monthly_savings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = EXCLUDED.balance,
		    monthly_savings = EXCLUDED.monthly_savings,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		savings.ID,
		savings.UserID,
		savings.Balance,
		savings.MonthlySavings,
		savings.CreatedAt,
		savings.UpdatedAt,
	)

	return err
}
