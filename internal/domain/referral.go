package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Referral states, progressed by the referral-tracking process, not by the
// allocator.
const (
	ReferralStatusPending   = "pending"
	ReferralStatusCompleted = "completed"
	ReferralStatusExpired   = "expired"
)

// Referral represents a referral allocation. A user owns at most one code;
// the referred-user and reward fields are filled in once somebody redeems it.
type Referral struct {
	ID             uuid.UUID           `json:"id" db:"id"`
	UserID         string              `json:"user_id" db:"user_id"`
	ReferredUserID *string             `json:"referred_user_id,omitempty" db:"referred_user_id"`
	ReferralCode   string              `json:"referral_code" db:"referral_code"`
	Status         string              `json:"status" db:"status"`
	RewardAmount   decimal.NullDecimal `json:"reward_amount,omitempty" db:"reward_amount"`
	RewardType     *string             `json:"reward_type,omitempty" db:"reward_type"`
	ExpiresAt      *time.Time          `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt      time.Time           `json:"created_at" db:"created_at"`
}

type ReferralCodeResponse struct {
	ReferralCode string `json:"referral_code"`
}

type ReferralListResponse struct {
	Referrals []*Referral `json:"referrals"`
}
