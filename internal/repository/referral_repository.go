package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/fernbank/lending-engine/internal/domain"
	customError "github.com/fernbank/lending-engine/pkg/errors"
)

// Postgres unique constraint names on the referrals table. Which one fired
// tells the allocator whether to retry (code collision) or return the
// existing allocation (owner already has one).
const (
	constraintReferralCode  = "referrals_referral_code_key"
	constraintReferralOwner = "referrals_user_id_key"
)

type referralRepository struct {
	db *sqlx.DB
}

func NewReferralRepository(db *sqlx.DB) ReferralRepository {
	return &referralRepository{db: db}
}

func (r *referralRepository) Create(ctx context.Context, referral *domain.Referral) error {
	query := `
		INSERT INTO referrals (id, user_id, referred_user_id, referral_code, status, reward_amount, reward_type, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		referral.ID,
		referral.UserID,
		referral.ReferredUserID,
		referral.ReferralCode,
		referral.Status,
		referral.RewardAmount,
		referral.RewardType,
		referral.ExpiresAt,
		referral.CreatedAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case constraintReferralOwner:
			return customError.ErrAlreadyAllocated
		default:
			return customError.ErrCodeTaken
		}
	}

	return err
}

func (r *referralRepository) GetByUserID(ctx context.Context, userID string) (*domain.Referral, error) {
	query := `
		SELECT id, user_id, referred_user_id, referral_code, status, reward_amount, reward_type, expires_at, created_at
		FROM referrals
		WHERE user_id = $1
	`

	var referral domain.Referral
	if err := r.db.GetContext(ctx, &referral, query, userID); err != nil {
		return nil, err
	}

	return &referral, nil
}

func (r *referralRepository) GetByCode(ctx context.Context, code string) (*domain.Referral, error) {
	query := `
		SELECT id, user_id, referred_user_id, referral_code, status, reward_amount, reward_type, expires_at, created_at
		FROM referrals
		WHERE referral_code = $1
	`

	var referral domain.Referral
	if err := r.db.GetContext(ctx, &referral, query, code); err != nil {
		return nil, err
	}

	return &referral, nil
}

func (r *referralRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Referral, error) {
	query := `
		SELECT id, user_id, referred_user_id, referral_code, status, reward_amount, reward_type, expires_at, created_at
		FROM referrals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var referrals []*domain.Referral
	if err := r.db.SelectContext(ctx, &referrals, query, userID); err != nil {
		return nil, err
	}

	return referrals, nil
}

func (r *referralRepository) ExpirePending(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE referrals
		SET status = $1
		WHERE status = $2 AND expires_at IS NOT NULL AND expires_at < $3
	`

	result, err := r.db.ExecContext(ctx, query, domain.ReferralStatusExpired, domain.ReferralStatusPending, cutoff)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
