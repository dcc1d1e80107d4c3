package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fernbank/lending-engine/internal/domain"
	customError "github.com/fernbank/lending-engine/pkg/errors"
	"github.com/fernbank/lending-engine/tests/mocks"
)

var referralCodePattern = regexp.MustCompile(`^REF-[^-]{1,4}-[A-Z0-9]{6}$`)

func TestGetOrCreateCode_ReturnsExistingCode(t *testing.T) {
	mockRepo := &mocks.MockReferralRepository{}
	service := NewReferralService(mockRepo, nil, testConfig())

	mockRepo.On("GetByUserID", mock.Anything, "user-1").Return(&domain.Referral{
		UserID:       "user-1",
		ReferralCode: "REF-user-ABC123",
		Status:       domain.ReferralStatusPending,
	}, nil)

	code, err := service.GetOrCreateCode(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "REF-user-ABC123", code)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetOrCreateCode_AllocatesOnFirstRequest(t *testing.T) {
	mockRepo := &mocks.MockReferralRepository{}
	service := NewReferralService(mockRepo, nil, testConfig())

	mockRepo.On("GetByUserID", mock.Anything, "user-1").Return(nil, sql.ErrNoRows)
	mockRepo.On("GetByCode", mock.Anything, mock.AnythingOfType("string")).Return(nil, sql.ErrNoRows)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Referral) bool {
		return r.UserID == "user-1" && r.Status == domain.ReferralStatusPending
	})).Return(nil)

	code, err := service.GetOrCreateCode(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Regexp(t, referralCodePattern, code)
	mockRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestGetOrCreateCode_IdempotentAcrossCalls(t *testing.T) {
	mockRepo := &mocks.MockReferralRepository{}
	service := NewReferralService(mockRepo, nil, testConfig())

	var allocated *domain.Referral

	mockRepo.On("GetByUserID", mock.Anything, "user-1").Return(nil, sql.ErrNoRows).Once()
	mockRepo.On("GetByCode", mock.Anything, mock.AnythingOfType("string")).Return(nil, sql.ErrNoRows)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Referral")).Run(func(args mock.Arguments) {
		allocated = args.Get(1).(*domain.Referral)
	}).Return(nil).Once()

	first, err := service.GetOrCreateCode(context.Background(), "user-1")
	require.NoError(t, err)

	mockRepo.On("GetByUserID", mock.Anything, "user-1").Return(allocated, nil).Once()

	second, err := service.GetOrCreateCode(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	mockRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestGetOrCreateCode_RetriesOnInsertCollision(t *testing.T) {
	mockRepo := &mocks.MockReferralRepository{}
	service := NewReferralService(mockRepo, nil, testConfig())

	mockRepo.On("GetByUserID", mock.Anything, "user-1").Return(nil, sql.ErrNoRows)
	mockRepo.On("GetByCode", mock.Anything, mock.AnythingOfType("string")).Return(nil, sql.ErrNoRows)
	// The store rejects the first candidate, the second sticks.
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Referral")).Return(customError.ErrCodeTaken).Once()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Referral")).Return(nil).Once()

	code, err := service.GetOrCreateCode(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Regexp(t, referralCodePattern, code)
	mockRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestGetOrCreateCode_ConcurrentOwnerInsertResolvesToWinner(t *testing.T) {
	mockRepo := &mocks.MockReferralRepository{}
	service := NewReferralService(mockRepo, nil, testConfig())

	winner := &domain.Referral{
		UserID:       "user-1",
		ReferralCode: "REF-user-WINNER",
		Status:       domain.ReferralStatusPending,
	}

	mockRepo.On("GetByUserID", mock.Anything, "user-1").Return(nil, sql.ErrNoRows).Once()
	mockRepo.On("GetByCode", mock.Anything, mock.AnythingOfType("string")).Return(nil, sql.ErrNoRows)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Referral")).Return(customError.ErrAlreadyAllocated).Once()
	mockRepo.On("GetByUserID", mock.Anything, "user-1").Return(winner, nil).Once()

	code, err := service.GetOrCreateCode(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "REF-user-WINNER", code)
}

func TestGetOrCreateCode_ExhaustsRetryBound(t *testing.T) {
	mockRepo := &mocks.MockReferralRepository{}
	cfg := testConfig()
	service := NewReferralService(mockRepo, nil, cfg)

	mockRepo.On("GetByUserID", mock.Anything, "user-1").Return(nil, sql.ErrNoRows)
	// Every candidate collides with an existing allocation.
	mockRepo.On("GetByCode", mock.Anything, mock.AnythingOfType("string")).Return(&domain.Referral{
		ReferralCode: "REF-xxxx-TAKEN1",
	}, nil)

	_, err := service.GetOrCreateCode(context.Background(), "user-1")

	assert.Equal(t, customError.ErrCodeAllocationExhausted, customError.CodeOf(err))
	mockRepo.AssertNumberOfCalls(t, "GetByCode", cfg.Business.MaxCodeAttempts)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetOrCreateCode_DistinctOwnersGetDistinctCodes(t *testing.T) {
	mockRepo := &mocks.MockReferralRepository{}
	service := NewReferralService(mockRepo, nil, testConfig())

	mockRepo.On("GetByUserID", mock.Anything, mock.AnythingOfType("string")).Return(nil, sql.ErrNoRows)
	mockRepo.On("GetByCode", mock.Anything, mock.AnythingOfType("string")).Return(nil, sql.ErrNoRows)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Referral")).Return(nil)

	first, err := service.GetOrCreateCode(context.Background(), "alice-1")
	require.NoError(t, err)
	second, err := service.GetOrCreateCode(context.Background(), "bobby-2")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestGetOrCreateCode_Unauthenticated(t *testing.T) {
	service := NewReferralService(&mocks.MockReferralRepository{}, nil, testConfig())

	_, err := service.GetOrCreateCode(context.Background(), "")

	assert.Equal(t, customError.ErrCodeUnauthenticated, customError.CodeOf(err))
}

func TestGetOrCreateCode_StoreErrorPropagates(t *testing.T) {
	mockRepo := &mocks.MockReferralRepository{}
	service := NewReferralService(mockRepo, nil, testConfig())

	mockRepo.On("GetByUserID", mock.Anything, "user-1").Return(nil, errors.New("connection refused"))

	_, err := service.GetOrCreateCode(context.Background(), "user-1")

	assert.Equal(t, customError.ErrCodeStoreUnavailable, customError.CodeOf(err))
}

func TestListReferrals(t *testing.T) {
	mockRepo := &mocks.MockReferralRepository{}
	service := NewReferralService(mockRepo, nil, testConfig())

	stored := []*domain.Referral{
		{UserID: "user-1", ReferralCode: "REF-user-AAAAAA", Status: domain.ReferralStatusCompleted},
		{UserID: "user-1", ReferralCode: "REF-user-BBBBBB", Status: domain.ReferralStatusPending},
	}
	mockRepo.On("ListByUserID", mock.Anything, "user-1").Return(stored, nil)

	referrals, err := service.List(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Len(t, referrals, 2)
}
