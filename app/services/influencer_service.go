package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/prabeshkharel/earnkart/app/repositories"
)

// InfluencerService runs the KYC review flow. An earn code is generated
// exactly once, at the moment KYC is first approved; re-approval keeps the
// existing code.
type InfluencerService struct {
	userRepo repositories.UserRepository
}

func NewInfluencerService(userRepo repositories.UserRepository) *InfluencerService {
	return &InfluencerService{userRepo: userRepo}
}

func (s *InfluencerService) ApproveKyc(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	user.KycStatus = models.KycStatusApproved
	user.KycRejectReason = ""
	if user.EarnCode == nil {
		code, err := s.generateEarnCode(ctx)
		if err != nil {
			return nil, err
		}
		user.EarnCode = &code
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user %s: %w", userID, err)
	}
	return user, nil
}

func (s *InfluencerService) RejectKyc(ctx context.Context, userID, reason string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	user.KycStatus = models.KycStatusRejected
	user.KycRejectReason = reason

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user %s: %w", userID, err)
	}
	return user, nil
}

func (s *InfluencerService) generateEarnCode(ctx context.Context) (string, error) {
	// The column is unique; retry a few times on the tiny chance of a clash.
	for i := 0; i < 5; i++ {
		code := "EK" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
		existing, err := s.userRepo.FindByEarnCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("earn code lookup failed: %w", err)
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique earn code")
}
