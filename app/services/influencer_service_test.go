package services

import (
	"context"
	"strings"
	"testing"

	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfluencerApproveKycGeneratesCodeOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewInfluencerService(repositories.NewUserRepository(db))
	ctx := context.Background()

	user := &models.User{
		Name:         "Applicant",
		Email:        "applicant@example.com",
		Password:     "hashed",
		IsInfluencer: true,
		KycStatus:    models.KycStatusPending,
	}
	require.NoError(t, db.Create(user).Error)

	approved, err := svc.ApproveKyc(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, approved.EarnCode)
	assert.Equal(t, models.KycStatusApproved, approved.KycStatus)
	assert.True(t, strings.HasPrefix(*approved.EarnCode, "EK"))
	assert.Len(t, *approved.EarnCode, 10)

	// Re-approval keeps the code stable; referral links in the wild must not
	// go stale.
	firstCode := *approved.EarnCode
	again, err := svc.ApproveKyc(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, firstCode, *again.EarnCode)
}

func TestInfluencerRejectKyc(t *testing.T) {
	db := newTestDB(t)
	svc := NewInfluencerService(repositories.NewUserRepository(db))
	ctx := context.Background()

	user := &models.User{
		Name:         "Applicant",
		Email:        "reject@example.com",
		Password:     "hashed",
		IsInfluencer: true,
		KycStatus:    models.KycStatusPending,
	}
	require.NoError(t, db.Create(user).Error)

	rejected, err := svc.RejectKyc(ctx, user.ID, "documents unreadable")
	require.NoError(t, err)
	assert.Equal(t, models.KycStatusRejected, rejected.KycStatus)
	assert.Equal(t, "documents unreadable", rejected.KycRejectReason)
	assert.Nil(t, rejected.EarnCode)
	assert.False(t, rejected.CanEarn())
}
