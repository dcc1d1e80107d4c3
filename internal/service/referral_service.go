package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/fernbank/lending-engine/internal/config"
	"github.com/fernbank/lending-engine/internal/domain"
	"github.com/fernbank/lending-engine/internal/repository"
	customError "github.com/fernbank/lending-engine/pkg/errors"
	"github.com/fernbank/lending-engine/pkg/refcode"
)

// Codes never change once allocated, so cached entries can live long.
const codeCacheTTL = 24 * time.Hour

// ReferralService allocates at most one referral code per user. Uniqueness
// is guaranteed by the store's constraints; the service's own code lookup is
// only an optimization to keep collisions cheap.
type ReferralService struct {
	referralRepo repository.ReferralRepository
	redis        *redis.Client
	random       io.Reader
	maxAttempts  int
}

func NewReferralService(referralRepo repository.ReferralRepository, redisClient *redis.Client, config *config.Config) *ReferralService {
	return &ReferralService{
		referralRepo: referralRepo,
		redis:        redisClient,
		random:       rand.Reader,
		maxAttempts:  config.Business.MaxCodeAttempts,
	}
}

// GetOrCreateCode returns the user's referral code, allocating one on first
// request. Repeated calls return the same code. Candidate collisions are
// retried up to the configured bound, then reported as exhausted.
func (s *ReferralService) GetOrCreateCode(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", customError.WrapUnauthenticated()
	}

	if code, ok := s.cachedCode(ctx, userID); ok {
		return code, nil
	}

	existing, err := s.referralRepo.GetByUserID(ctx, userID)
	if err == nil {
		s.cacheCode(ctx, userID, existing.ReferralCode)
		return existing.ReferralCode, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", customError.WrapStoreError(err)
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		candidate, err := refcode.New(userID, s.random)
		if err != nil {
			return "", fmt.Errorf("generating referral code: %w", err)
		}

		// Advisory pre-check; the insert below is the real guarantee.
		if _, err := s.referralRepo.GetByCode(ctx, candidate); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			return "", customError.WrapStoreError(err)
		}

		referral := &domain.Referral{
			ID:           uuid.New(),
			UserID:       userID,
			ReferralCode: candidate,
			Status:       domain.ReferralStatusPending,
			CreatedAt:    time.Now().UTC(),
		}

		err = s.referralRepo.Create(ctx, referral)
		switch {
		case err == nil:
			s.cacheCode(ctx, userID, candidate)
			return candidate, nil
		case errors.Is(err, customError.ErrCodeTaken):
			// Lost the race on this candidate, try another.
			continue
		case errors.Is(err, customError.ErrAlreadyAllocated):
			// A concurrent request for the same user won; theirs is the code.
			winner, getErr := s.referralRepo.GetByUserID(ctx, userID)
			if getErr != nil {
				return "", customError.WrapStoreError(getErr)
			}
			s.cacheCode(ctx, userID, winner.ReferralCode)
			return winner.ReferralCode, nil
		default:
			return "", customError.WrapStoreError(err)
		}
	}

	return "", customError.WrapAllocationExhausted(s.maxAttempts)
}

// List returns a user's referrals newest first.
func (s *ReferralService) List(ctx context.Context, userID string) ([]*domain.Referral, error) {
	if userID == "" {
		return nil, customError.WrapUnauthenticated()
	}

	referrals, err := s.referralRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, customError.WrapStoreError(err)
	}

	return referrals, nil
}

func (s *ReferralService) cacheKey(userID string) string {
	return "referral:code:" + userID
}

// The cache is best effort: a cold or unreachable Redis just falls through
// to the store.
func (s *ReferralService) cachedCode(ctx context.Context, userID string) (string, bool) {
	if s.redis == nil {
		return "", false
	}

	code, err := s.redis.Get(ctx, s.cacheKey(userID)).Result()
	if err != nil {
		return "", false
	}
	return code, true
}

func (s *ReferralService) cacheCode(ctx context.Context, userID, code string) {
	if s.redis == nil {
		return
	}
	s.redis.Set(ctx, s.cacheKey(userID), code, codeCacheTTL)
}
