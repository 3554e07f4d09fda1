package services

import (
	"context"
	"fmt"
	"log"

	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"github.com/shopspring/decimal"
)

// CommissionService computes the payable referral reward for a delivered and
// paid order item. Two mutually exclusive modes exist, selected by
// Setting.CommissionMode:
//
//   - global: line total x global sale commission percent; the earn code must
//     belong to an influencer (no KYC requirement).
//   - campaign: the item's campaign defines a per-unit flat amount or a
//     percentage of the unit price; the earn code owner must be an influencer
//     with approved KYC.
//
// An earn code that does not resolve to a qualifying user is a silent skip:
// zero reward, nil recipient, no error.
type CommissionService struct {
	userRepo    repositories.UserRepository
	settingRepo repositories.SettingRepository
}

func NewCommissionService(userRepo repositories.UserRepository, settingRepo repositories.SettingRepository) *CommissionService {
	return &CommissionService{userRepo: userRepo, settingRepo: settingRepo}
}

// RewardFor returns the reward amount and its recipient for one order item.
// A zero amount with nil recipient means the item earns nothing.
func (s *CommissionService) RewardFor(ctx context.Context, item *models.OrderItem) (decimal.Decimal, *models.User, error) {
	if item.EarnCode == "" {
		return decimal.Zero, nil, nil
	}

	setting, err := s.settingRepo.Get(ctx)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to load settings: %w", err)
	}

	influencer, err := s.userRepo.FindByEarnCode(ctx, item.EarnCode)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to resolve earn code %q: %w", item.EarnCode, err)
	}
	if influencer == nil || !influencer.IsInfluencer {
		log.Printf("INFO: CommissionService: earn code %q does not resolve to an influencer, skipping item %s", item.EarnCode, item.ID)
		return decimal.Zero, nil, nil
	}

	switch setting.CommissionMode {
	case models.CommissionModeCampaign:
		if item.Campaign == nil {
			return decimal.Zero, nil, nil
		}
		if !influencer.CanEarn() {
			log.Printf("INFO: CommissionService: influencer %s has no approved KYC, skipping item %s", influencer.ID, item.ID)
			return decimal.Zero, nil, nil
		}
		return item.Campaign.RewardFor(item.Price, item.Qty), influencer, nil
	default:
		if setting.SaleCommission.IsZero() {
			return decimal.Zero, nil, nil
		}
		reward := item.Total.Mul(setting.SaleCommission).Div(decimal.NewFromInt(100))
		return reward, influencer, nil
	}
}
