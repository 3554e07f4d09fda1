package services

import (
	"context"
	"fmt"

	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemReward pairs an order item with the commission it would (or did) pay,
// for the admin order detail screen.
type ItemReward struct {
	Item   models.OrderItem
	Reward decimal.Decimal
	Earner *models.User
}

// OrderService is the admin-facing command surface over orders: status
// edits go through here so the persisted change and the fulfillment
// transition always travel together.
type OrderService struct {
	db             *gorm.DB
	orderRepo      repositories.OrderRepository
	commissionSvc  *CommissionService
	fulfillmentSvc *FulfillmentService
}

func NewOrderService(db *gorm.DB, orderRepo repositories.OrderRepository, commissionSvc *CommissionService, fulfillmentSvc *FulfillmentService) *OrderService {
	return &OrderService{db: db, orderRepo: orderRepo, commissionSvc: commissionSvc, fulfillmentSvc: fulfillmentSvc}
}

// UpdateStatuses persists the new payment/order status pair and then runs
// the fulfillment transition against the prior state. The status change is
// authoritative: a downstream stock warning does not roll it back.
func (s *OrderService) UpdateStatuses(ctx context.Context, orderID, paymentStatus, orderStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order %s: %w", orderID, err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s not found", orderID)
	}

	oldOrderStatus := order.OrderStatus

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.UpdateStatuses(ctx, tx, order.ID, paymentStatus, orderStatus)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", order.ID, err)
	}

	order.PaymentStatus = paymentStatus
	order.OrderStatus = orderStatus

	if err := s.fulfillmentSvc.HandleStatusChange(ctx, order, oldOrderStatus); err != nil {
		return order, fmt.Errorf("fulfillment pipeline for order %s: %w", order.ID, err)
	}
	return order, nil
}

// RewardPreviews computes the commission each item pays once the order is
// delivered and paid. For orders not in that state the amounts are what the
// items would pay.
func (s *OrderService) RewardPreviews(ctx context.Context, order *models.Order) ([]ItemReward, error) {
	previews := make([]ItemReward, 0, len(order.OrderItems))
	for i := range order.OrderItems {
		item := order.OrderItems[i]
		reward, earner, err := s.commissionSvc.RewardFor(ctx, &item)
		if err != nil {
			return nil, err
		}
		previews = append(previews, ItemReward{Item: item, Reward: reward, Earner: earner})
	}
	return previews, nil
}
